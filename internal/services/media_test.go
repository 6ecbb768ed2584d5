package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedMediaFile(t *testing.T) {
	tests := []struct {
		filename string
		allowed  bool
	}{
		{"a.png", true},
		{"a.jpg", true},
		{"a.jpeg", true},
		{"a.gif", true},
		{"a.mp4", true},
		{"a.mov", true},
		{"A.PNG", true},
		{"video.MoV", true},
		{"a.exe", false},
		{"a.svg", false},
		{"noext", false},
		{"a.", false},
		{"", false},
		{".png", true}, // dotfile with an accepted extension shape
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.allowed, AllowedMediaFile(tt.filename))
		})
	}
}

package services

import (
	"path/filepath"
	"strings"
)

// 接受的附件类型（图片与短视频）
var allowedMediaExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".mp4":  true,
	".mov":  true,
}

// AllowedMediaFile reports whether filename carries an accepted upload
// extension. The filename must contain a dot and a non-empty extension;
// comparison is case-insensitive.
func AllowedMediaFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || ext == "." {
		return false
	}
	return allowedMediaExtensions[ext]
}

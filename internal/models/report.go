package models

import (
	"time"
)

type Report struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"not null;index" json:"username"`          // reporter
	CommentID string    `gorm:"size:36;not null;index" json:"comment_id"`
	Reason    string    `gorm:"size:200" json:"reason"`                  // optional free text
	CreatedAt time.Time `json:"created_at"`
}

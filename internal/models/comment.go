package models

import (
	"time"
)

type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`             // uuid, assigned at creation
	Username  string    `gorm:"not null;index" json:"username"`           // author, immutable
	Text      string    `gorm:"type:text;not null" json:"text"`           // mutable by the author only
	Media     *string   `json:"media,omitempty"`                          // /uploads/<name>, immutable once set
	Likes     int       `gorm:"default:0;not null" json:"likes"`          // increment only
	ParentID  *string   `gorm:"size:36;index" json:"parent_id,omitempty"` // nil for top-level comments
	CreatedAt time.Time `json:"created_at"`
}

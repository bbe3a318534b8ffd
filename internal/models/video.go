package models

import (
	"time"
)

// Video is a catalog entry for one uploaded media file. Filename is the
// server-assigned storage key and never changes after creation; Views
// only ever grows.
type Video struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	Description   *string   `json:"description"`
	Filename      string    `gorm:"uniqueIndex;not null" json:"filename"`
	MimeType      string    `gorm:"not null" json:"mimeType"`
	UploadedAt    time.Time `gorm:"autoCreateTime" json:"uploadedAt"`
	ThumbnailPath *string   `json:"thumbnailPath"`
	Views         int64     `gorm:"not null;default:0" json:"views"`
}

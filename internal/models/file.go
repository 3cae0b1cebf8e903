package models

import (
	"time"
)

// AssessmentFile is the metadata record for an uploaded evidence document.
// The binary itself lives on disk at FilePath.
type AssessmentFile struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint64    `gorm:"not null;index" json:"userId"`
	QuestionID *uint64   `gorm:"index" json:"questionId"`
	FileName   string    `gorm:"size:255;not null" json:"fileName"`
	FileType   string    `gorm:"size:128;not null" json:"fileType"`
	FileSize   int64     `gorm:"not null" json:"fileSize"`
	FilePath   string    `gorm:"size:512;not null" json:"filePath"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploadedAt"`
}

// TableName overrides the table name for AssessmentFile
func (AssessmentFile) TableName() string {
	return "assessment_files"
}

package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/evalsec/cyberassess/internal/models"
	"gorm.io/gorm"
)

// allowedUploadExtensions maps accepted evidence document extensions to the
// content types a well-behaved client declares for them.
var allowedUploadExtensions = map[string][]string{
	".pdf":  {"application/pdf"},
	".doc":  {"application/msword"},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	".txt":  {"text/plain"},
}

// ValidateUpload rejects an upload before anything is written: unsupported
// extension, mismatched content type, or an oversized payload.
func ValidateUpload(fileName, contentType string, size int64, maxBytes int) error {
	ext := strings.ToLower(filepath.Ext(fileName))
	accepted, ok := allowedUploadExtensions[ext]
	if !ok {
		return fmt.Errorf("unsupported file type %q: only pdf, doc, docx and txt are accepted", ext)
	}

	if contentType != "" {
		matched := false
		for _, want := range accepted {
			if strings.HasPrefix(strings.ToLower(contentType), want) {
				matched = true
				break
			}
		}
		// Browsers occasionally send the generic type for docx and txt
		if !matched && strings.HasPrefix(strings.ToLower(contentType), "application/octet-stream") {
			matched = true
		}
		if !matched {
			return fmt.Errorf("content type %q does not match extension %q", contentType, ext)
		}
	}

	if size <= 0 {
		return fmt.Errorf("empty upload")
	}
	if size > int64(maxBytes) {
		return fmt.Errorf("file exceeds the %d byte limit", maxBytes)
	}

	return nil
}

// RecordUpload stores the metadata row for a saved file and, when the upload
// answers a question, upserts the Response with the original filename as the
// answer. Both writes share one transaction so a failed response upsert does
// not leave a dangling file row.
func RecordUpload(db *gorm.DB, userID uint64, questionID *uint64, fileName, fileType string, size int64, path string) (*models.AssessmentFile, error) {
	file := models.AssessmentFile{
		UserID:     userID,
		QuestionID: questionID,
		FileName:   fileName,
		FileType:   fileType,
		FileSize:   size,
		FilePath:   path,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&file).Error; err != nil {
			return err
		}
		if questionID != nil {
			if _, err := UpsertResponse(tx, userID, *questionID, fileName); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// GetFilesByUser retrieves a user's uploaded file records.
func GetFilesByUser(db *gorm.DB, userID uint64) ([]models.AssessmentFile, error) {
	var files []models.AssessmentFile
	if err := db.Where("user_id = ?", userID).Order("uploaded_at ASC").
		Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

package services

import (
	"errors"
	"time"

	"github.com/evalsec/cyberassess/internal/models"
	"gorm.io/gorm"
)

// ErrDuplicateAssessment is returned when a (user, year) assessment already
// exists. Handlers map it to 409.
var ErrDuplicateAssessment = errors.New("assessment already exists for this user and year")

// CreateAssessment inserts a new yearly assessment for a user. Answer fields
// present in the body are stored immediately.
func CreateAssessment(db *gorm.DB, userID uint64, year int, answers models.JSONMap) (*models.Assessment, error) {
	// The user must exist; a dangling assessment is useless to the admin view.
	if _, err := GetUser(db, userID); err != nil {
		return nil, err
	}

	var count int64
	if err := db.Model(&models.Assessment{}).
		Where("user_id = ? AND year = ?", userID, year).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateAssessment
	}

	if answers == nil {
		answers = models.JSONMap{}
	}
	assessment := models.Assessment{
		UserID:  userID,
		Year:    year,
		Answers: answers,
	}
	if err := db.Create(&assessment).Error; err != nil {
		return nil, err
	}
	return &assessment, nil
}

// GetAssessment retrieves an assessment by id
func GetAssessment(db *gorm.DB, id uint64) (*models.Assessment, error) {
	var assessment models.Assessment
	if err := db.First(&assessment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &assessment, nil
}

// GetAssessmentsByUser retrieves all assessments of a user
func GetAssessmentsByUser(db *gorm.DB, userID uint64) ([]models.Assessment, error) {
	var assessments []models.Assessment
	if err := db.Where("user_id = ?", userID).Order("year ASC").
		Find(&assessments).Error; err != nil {
		return nil, err
	}
	return assessments, nil
}

// UpdateAssessment merges the given answer fields into the stored answers map
// and bumps updatedAt. The merge is partial: keys absent from the request
// keep their stored values. Saves are unconditional, the autosaving client
// sends the same payload repeatedly.
func UpdateAssessment(db *gorm.DB, id uint64, answers models.JSONMap) (*models.Assessment, error) {
	var assessment models.Assessment

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&assessment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if assessment.Answers == nil {
			assessment.Answers = models.JSONMap{}
		}
		for k, v := range answers {
			assessment.Answers[k] = v
		}

		return tx.Model(&assessment).
			Updates(map[string]interface{}{
				"answers":    assessment.Answers,
				"updated_at": time.Now(),
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

// CompleteAssessment marks an assessment completed. The transition is
// one-way: a second call keeps the original completedAt and never reverts
// isCompleted.
func CompleteAssessment(db *gorm.DB, id uint64) (*models.Assessment, error) {
	var assessment models.Assessment

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&assessment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if assessment.IsCompleted {
			return nil
		}

		now := time.Now()
		assessment.IsCompleted = true
		assessment.CompletedAt = &now
		return tx.Model(&assessment).
			Updates(map[string]interface{}{
				"is_completed": true,
				"completed_at": now,
				"updated_at":   now,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

package services

import (
	"github.com/evalsec/cyberassess/internal/models"
	"gorm.io/gorm"
)

// GetAllQuestions retrieves every question with its ordered options, sorted
// by section then display order.
func GetAllQuestions(db *gorm.DB) ([]models.Question, error) {
	var questions []models.Question
	err := db.
		Preload("Options", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("display_order ASC")
		}).
		Order("section ASC, display_order ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// GetQuestionsBySection retrieves the questions of one wizard section in
// display order, each with its ordered options.
func GetQuestionsBySection(db *gorm.DB, section string) ([]models.Question, error) {
	var questions []models.Question
	err := db.
		Preload("Options", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("display_order ASC")
		}).
		Where("section = ?", section).
		Order("display_order ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// CreateQuestion inserts a question with its options. Used by the seeder.
func CreateQuestion(db *gorm.DB, question *models.Question) error {
	return db.Create(question).Error
}

// CountQuestions returns the number of question rows.
func CountQuestions(db *gorm.DB) (int64, error) {
	var count int64
	if err := db.Model(&models.Question{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

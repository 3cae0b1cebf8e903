// Seed helpers for unit and integration tests.

package helpers

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/evalsec/cyberassess/internal/database"
	"github.com/evalsec/cyberassess/internal/models"
)

// SetupTestDB opens an in-memory sqlite database with the full schema.
func SetupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// CreateTestUser inserts a user with deterministic contact fields.
func CreateTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	user := &models.User{
		FullName:      "Test User",
		Email:         email,
		Company:       "Test Company",
		Position:      "CISO",
		Phone:         "+1-555-0100",
		EmployeeCount: "51-200",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestQuestion inserts a question with the given options in order.
func CreateTestQuestion(t *testing.T, db *gorm.DB, section, qtype string, optionTexts ...string) *models.Question {
	question := &models.Question{
		Text:    fmt.Sprintf("Test question for %s", section),
		Type:    qtype,
		Section: section,
		Order:   1,
	}
	if err := db.Create(question).Error; err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}
	for i, text := range optionTexts {
		option := &models.Option{
			QuestionID: question.ID,
			Text:       text,
			Value:      text,
			Order:      i + 1,
		}
		if err := db.Create(option).Error; err != nil {
			t.Fatalf("Failed to create test option: %v", err)
		}
		question.Options = append(question.Options, *option)
	}
	return question
}

// CreateTestResponse inserts a response row directly.
func CreateTestResponse(t *testing.T, db *gorm.DB, userID, questionID uint64, answer string) *models.Response {
	response := &models.Response{
		UserID:     userID,
		QuestionID: questionID,
		Answer:     answer,
	}
	if err := db.Create(response).Error; err != nil {
		t.Fatalf("Failed to create test response: %v", err)
	}
	return response
}

// CreateTestAssessment inserts an assessment row directly.
func CreateTestAssessment(t *testing.T, db *gorm.DB, userID uint64, year int) *models.Assessment {
	assessment := &models.Assessment{
		UserID:  userID,
		Year:    year,
		Answers: models.JSONMap{},
	}
	if err := db.Create(assessment).Error; err != nil {
		t.Fatalf("Failed to create test assessment: %v", err)
	}
	return assessment
}

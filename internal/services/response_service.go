package services

import (
	"errors"

	"github.com/evalsec/cyberassess/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertResponse writes the answer for one (user, question) pair as a single
// atomic insert-or-update on the composite unique key. Concurrent writers for
// the same pair cannot create a duplicate row; the last write wins.
func UpsertResponse(db *gorm.DB, userID, questionID uint64, answer string) (*models.Response, error) {
	resp := models.Response{
		UserID:     userID,
		QuestionID: questionID,
		Answer:     answer,
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"answer", "updated_at"}),
	}).Create(&resp).Error
	if err != nil {
		return nil, err
	}

	// Re-read so the returned row carries the id and timestamps of the
	// surviving row, not the transient insert candidate.
	var saved models.Response
	if err := db.Where("user_id = ? AND question_id = ?", userID, questionID).
		First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// GetResponsesByUser retrieves a user's responses with the question embedded,
// ordered for section display.
func GetResponsesByUser(db *gorm.DB, userID uint64) ([]models.Response, error) {
	var responses []models.Response
	err := db.
		Preload("Question").
		Joins("JOIN questions ON questions.id = responses.question_id").
		Where("responses.user_id = ?", userID).
		Order("questions.section ASC, questions.display_order ASC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// GetResponse retrieves the response for one (user, question) pair.
func GetResponse(db *gorm.DB, userID, questionID uint64) (*models.Response, error) {
	var resp models.Response
	err := db.Where("user_id = ? AND question_id = ?", userID, questionID).
		First(&resp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &resp, nil
}

// UserSubmission is one user's slice of the admin view: the user plus every
// stored response and assessment.
type UserSubmission struct {
	User        models.User         `json:"user"`
	Responses   []models.Response   `json:"responses"`
	Assessments []models.Assessment `json:"assessments"`
}

// GetAllResponsesGroupedByUser builds the admin aggregate: every user joined
// with their responses (question embedded) and assessments, then users with
// neither a response nor an assessment are dropped. The filter runs after
// grouping; a user with only an empty assessment still appears.
func GetAllResponsesGroupedByUser(db *gorm.DB) ([]UserSubmission, error) {
	var users []models.User
	if err := db.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	var responses []models.Response
	err := db.
		Preload("Question").
		Joins("JOIN questions ON questions.id = responses.question_id").
		Order("questions.section ASC, questions.display_order ASC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}

	var assessments []models.Assessment
	if err := db.Order("year ASC").Find(&assessments).Error; err != nil {
		return nil, err
	}

	responsesByUser := make(map[uint64][]models.Response)
	for _, r := range responses {
		responsesByUser[r.UserID] = append(responsesByUser[r.UserID], r)
	}
	assessmentsByUser := make(map[uint64][]models.Assessment)
	for _, a := range assessments {
		assessmentsByUser[a.UserID] = append(assessmentsByUser[a.UserID], a)
	}

	result := make([]UserSubmission, 0, len(users))
	for _, u := range users {
		sub := UserSubmission{
			User:        u,
			Responses:   responsesByUser[u.ID],
			Assessments: assessmentsByUser[u.ID],
		}
		if len(sub.Responses) == 0 && len(sub.Assessments) == 0 {
			continue
		}
		if sub.Responses == nil {
			sub.Responses = []models.Response{}
		}
		if sub.Assessments == nil {
			sub.Assessments = []models.Assessment{}
		}
		result = append(result, sub)
	}

	return result, nil
}

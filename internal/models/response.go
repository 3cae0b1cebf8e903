package models

import (
	"time"
)

// Response is a stored answer for one (user, question) pair. The composite
// unique index backs the upsert in the response service: at most one row
// exists per pair.
type Response struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint64    `gorm:"not null;index:idx_user_question,unique" json:"userId"`
	QuestionID uint64    `gorm:"not null;index:idx_user_question,unique" json:"questionId"`
	Answer     string    `gorm:"type:text;not null" json:"answer"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Question   *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}

// TableName overrides the table name for Response
func (Response) TableName() string {
	return "responses"
}

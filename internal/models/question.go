package models

import (
	"time"
)

// Question types. The type decides whether Option rows apply and how the
// stored answer string is read back (checkbox answers are comma-joined).
const (
	QuestionTypeText     = "text"
	QuestionTypeRadio    = "radio"
	QuestionTypeCheckbox = "checkbox"
	QuestionTypeFile     = "file"
)

// Question is one prompt of the questionnaire. Section and order define the
// display sequence only; they carry no other semantics.
type Question struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Type      string    `gorm:"size:16;not null" json:"type"`
	Section   string    `gorm:"size:64;not null;index" json:"section"`
	Order     int       `gorm:"column:display_order;not null" json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	Options   []Option  `gorm:"foreignKey:QuestionID" json:"options"`
}

// Option is one selectable value of a radio or checkbox question.
type Option struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	QuestionID uint64 `gorm:"not null;index" json:"questionId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	Value      string `gorm:"size:255;not null" json:"value"`
	Order      int    `gorm:"column:display_order;not null" json:"order"`
}

// TableName overrides the table name for Question
func (Question) TableName() string {
	return "questions"
}

// TableName overrides the table name for Option
func (Option) TableName() string {
	return "options"
}

// ValidQuestionType reports whether t is one of the supported question types.
func ValidQuestionType(t string) bool {
	switch t {
	case QuestionTypeText, QuestionTypeRadio, QuestionTypeCheckbox, QuestionTypeFile:
		return true
	}
	return false
}

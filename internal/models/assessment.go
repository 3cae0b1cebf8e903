package models

import (
	"encoding/json"
	"time"
)

// Assessment is the yearly container of a user's answers. Per-question
// values live in the Answers JSON map rather than one column per question;
// the wire format stays flat (see MarshalJSON), so clients still read and
// write answer fields at the top level of the object.
type Assessment struct {
	ID          uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint64     `gorm:"not null;index:idx_user_year,unique" json:"userId"`
	Year        int        `gorm:"not null;index:idx_user_year,unique" json:"year"`
	IsCompleted bool       `gorm:"not null;default:false" json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt"`
	Answers     JSONMap    `json:"-"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TableName overrides the table name for Assessment
func (Assessment) TableName() string {
	return "assessments"
}

// fixedAssessmentKeys are the top-level wire fields that are not answers.
var fixedAssessmentKeys = map[string]struct{}{
	"id":          {},
	"userId":      {},
	"year":        {},
	"isCompleted": {},
	"completedAt": {},
	"createdAt":   {},
	"updatedAt":   {},
}

// MarshalJSON flattens the answers map into the top-level object. Fixed
// fields win on a key collision.
func (a Assessment) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(a.Answers)+8)
	for k, v := range a.Answers {
		if _, fixed := fixedAssessmentKeys[k]; fixed {
			continue
		}
		out[k] = v
	}

	out["id"] = a.ID
	out["userId"] = a.UserID
	out["year"] = a.Year
	out["isCompleted"] = a.IsCompleted
	out["completedAt"] = a.CompletedAt
	out["createdAt"] = a.CreatedAt
	out["updatedAt"] = a.UpdatedAt

	return json.Marshal(out)
}

// SplitAssessmentBody separates the fixed fields of a flat request body from
// the answer fields. Unknown keys are answers.
func SplitAssessmentBody(body map[string]interface{}) (fixed map[string]interface{}, answers JSONMap) {
	fixed = make(map[string]interface{})
	answers = make(JSONMap)
	for k, v := range body {
		if _, ok := fixedAssessmentKeys[k]; ok {
			fixed[k] = v
			continue
		}
		answers[k] = v
	}
	return fixed, answers
}

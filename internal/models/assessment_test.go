package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestAssessmentMarshalFlattensAnswers(t *testing.T) {
	now := time.Now()
	a := Assessment{
		ID:     1,
		UserID: 2,
		Year:   2026,
		Answers: JSONMap{
			"gdprCompliance": "yes",
			// A hostile answer key cannot shadow a fixed field
			"id": "evil",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	out := map[string]interface{}{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if out["gdprCompliance"] != "yes" {
		t.Errorf("Expected flattened answer, got %v", out["gdprCompliance"])
	}
	if out["id"].(float64) != 1 {
		t.Errorf("Expected fixed field to win the collision, got %v", out["id"])
	}
	if out["year"].(float64) != 2026 {
		t.Errorf("Expected year 2026, got %v", out["year"])
	}
	if out["completedAt"] != nil {
		t.Errorf("Expected null completedAt, got %v", out["completedAt"])
	}
	if _, present := out["answers"]; present {
		t.Error("Expected no nested answers object on the wire")
	}
}

func TestSplitAssessmentBody(t *testing.T) {
	fixed, answers := SplitAssessmentBody(map[string]interface{}{
		"userId":         float64(1),
		"year":           float64(2026),
		"isCompleted":    true,
		"gdprCompliance": "yes",
		"securityTools":  "firewall,antivirus",
	})

	if len(fixed) != 3 {
		t.Errorf("Expected three fixed fields, got %v", fixed)
	}
	if len(answers) != 2 {
		t.Errorf("Expected two answer fields, got %v", answers)
	}
	if answers["gdprCompliance"] != "yes" {
		t.Errorf("Expected answer field, got %v", answers)
	}
	if _, ok := answers["isCompleted"]; ok {
		t.Error("Expected completion state to be a fixed field, not an answer")
	}
}

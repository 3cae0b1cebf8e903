package services

import (
	"testing"

	"github.com/evalsec/cyberassess/internal/models"
	"github.com/evalsec/cyberassess/tests/helpers"
)

func TestGetAllQuestionsOrdering(t *testing.T) {
	db := helpers.SetupTestDB(t)

	// Insert out of order; retrieval sorts by section then display order
	second := &models.Question{Text: "B", Type: models.QuestionTypeText, Section: "encryption", Order: 2}
	first := &models.Question{Text: "A", Type: models.QuestionTypeRadio, Section: "encryption", Order: 1}
	other := &models.Question{Text: "C", Type: models.QuestionTypeText, Section: "antivirus", Order: 1}
	for _, q := range []*models.Question{second, first, other} {
		if err := CreateQuestion(db, q); err != nil {
			t.Fatalf("CreateQuestion failed: %v", err)
		}
	}

	questions, err := GetAllQuestions(db)
	if err != nil {
		t.Fatalf("GetAllQuestions failed: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("Expected three questions, got %d", len(questions))
	}
	if questions[0].Section != "antivirus" {
		t.Errorf("Expected antivirus section first, got %s", questions[0].Section)
	}
	if questions[1].Text != "A" || questions[2].Text != "B" {
		t.Errorf("Expected display order within section, got %s then %s", questions[1].Text, questions[2].Text)
	}
}

func TestGetQuestionsBySectionWithOptions(t *testing.T) {
	db := helpers.SetupTestDB(t)

	helpers.CreateTestQuestion(t, db, "password-policy", models.QuestionTypeRadio, "yes", "partially", "no")
	helpers.CreateTestQuestion(t, db, "encryption", models.QuestionTypeRadio, "yes", "no")

	questions, err := GetQuestionsBySection(db, "password-policy")
	if err != nil {
		t.Fatalf("GetQuestionsBySection failed: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("Expected one question, got %d", len(questions))
	}
	options := questions[0].Options
	if len(options) != 3 {
		t.Fatalf("Expected three options, got %d", len(options))
	}
	for i, want := range []string{"yes", "partially", "no"} {
		if options[i].Text != want {
			t.Errorf("Expected option %q at position %d, got %q", want, i, options[i].Text)
		}
	}
}

func TestCountQuestions(t *testing.T) {
	db := helpers.SetupTestDB(t)

	count, err := CountQuestions(db)
	if err != nil {
		t.Fatalf("CountQuestions failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected empty catalog, got %d", count)
	}

	helpers.CreateTestQuestion(t, db, "training", models.QuestionTypeText)
	count, err = CountQuestions(db)
	if err != nil {
		t.Fatalf("CountQuestions failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected one question, got %d", count)
	}
}

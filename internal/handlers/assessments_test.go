package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/evalsec/cyberassess/tests/helpers"
)

func TestCreateAssessmentEndpoint(t *testing.T) {
	app, db, _ := newHandlerTest(t)
	user := helpers.CreateTestUser(t, db, "assess@example.com")

	resp := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/assessments", map[string]interface{}{
		"userId": user.ID,
		"year":   2026,
	}))
	helpers.AssertStatus(t, resp, http.StatusCreated)

	body := helpers.ParseJSONMap(t, resp)
	if body["isCompleted"] != false {
		t.Errorf("Expected new assessment to be incomplete, got %v", body["isCompleted"])
	}
	if body["year"].(float64) != 2026 {
		t.Errorf("Expected year 2026, got %v", body["year"])
	}

	// Same year again is a conflict
	resp = doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/assessments", map[string]interface{}{
		"userId": user.ID,
		"year":   2026,
	}))
	helpers.AssertStatus(t, resp, http.StatusConflict)
	body = helpers.ParseJSONMap(t, resp)
	if body["type"] != "conflict" {
		t.Errorf("Expected conflict type, got %v", body["type"])
	}
}

func TestCreateAssessmentStringIDs(t *testing.T) {
	app, db, _ := newHandlerTest(t)
	helpers.CreateTestUser(t, db, "stringid@example.com")

	// Form-driven clients send ids and years as strings
	resp := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/assessments", map[string]interface{}{
		"userId": "1",
		"year":   "2026",
	}))
	helpers.AssertStatus(t, resp, http.StatusCreated)
}

func TestCreateAssessmentUnknownUser(t *testing.T) {
	app, _, _ := newHandlerTest(t)

	resp := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/assessments", map[string]interface{}{
		"userId": 9999,
		"year":   2026,
	}))
	helpers.AssertStatus(t, resp, http.StatusNotFound)
}

func TestCreateAssessmentValidation(t *testing.T) {
	app, _, _ := newHandlerTest(t)

	resp := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/assessments", map[string]interface{}{
		"year": 2026,
	}))
	helpers.AssertStatus(t, resp, http.StatusBadRequest)

	resp = doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/assessments", map[string]interface{}{
		"userId": 1,
	}))
	helpers.AssertStatus(t, resp, http.StatusBadRequest)
}

func TestAssessmentAnswerRoundTrip(t *testing.T) {
	app, db, _ := newHandlerTest(t)
	user := helpers.CreateTestUser(t, db, "roundtrip@example.com")
	assessment := helpers.CreateTestAssessment(t, db, user.ID, 2026)

	time.Sleep(10 * time.Millisecond)

	resp := doRequest(t, app, jsonRequest(t, http.MethodPut, "/api/assessments/1", map[string]interface{}{
		"gdprCompliance": "yes",
	}))
	helpers.AssertStatus(t, resp, http.StatusOK)

	resp = doRequest(t, app, jsonRequest(t, http.MethodGet, "/api/assessments/1", nil))
	helpers.AssertStatus(t, resp, http.StatusOK)
	body := helpers.ParseJSONMap(t, resp)

	// Answers come back flattened at the top level
	if body["gdprCompliance"] != "yes" {
		t.Errorf("Expected saved answer at top level, got %v", body["gdprCompliance"])
	}
	if uint64(body["id"].(float64)) != assessment.ID {
		t.Errorf("Expected assessment %d, got %v", assessment.ID, body["id"])
	}

	createdAt, err := time.Parse(time.RFC3339Nano, body["createdAt"].(string))
	if err != nil {
		t.Fatalf("Failed to parse createdAt: %v", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, body["updatedAt"].(string))
	if err != nil {
		t.Fatalf("Failed to parse updatedAt: %v", err)
	}
	if !updatedAt.After(createdAt) {
		t.Errorf("Expected updatedAt %v to advance past createdAt %v", updatedAt, createdAt)
	}
}

func TestUpdateAssessmentPartialMerge(t *testing.T) {
	app, db, _ := newHandlerTest(t)
	user := helpers.CreateTestUser(t, db, "partial@example.com")
	helpers.CreateTestAssessment(t, db, user.ID, 2026)

	resp := doRequest(t, app, jsonRequest(t, http.MethodPut, "/api/assessments/1", map[string]interface{}{
		"gdprCompliance": "yes",
	}))
	helpers.AssertStatus(t, resp, http.StatusOK)

	resp = doRequest(t, app, jsonRequest(t, http.MethodPut, "/api/assessments/1", map[string]interface{}{
		"passwordPolicy": "no",
	}))
	helpers.AssertStatus(t, resp, http.StatusOK)

	resp = doRequest(t, app, jsonRequest(t, http.MethodGet, "/api/assessments/1", nil))
	body := helpers.ParseJSONMap(t, resp)
	if body["gdprCompliance"] != "yes" || body["passwordPolicy"] != "no" {
		t.Errorf("Expected both answers after partial updates, got %v", body)
	}
}

func TestUpdateAssessmentCannotChangeFixedFields(t *testing.T) {
	app, db, _ := newHandlerTest(t)
	user := helpers.CreateTestUser(t, db, "fixed@example.com")
	helpers.CreateTestAssessment(t, db, user.ID, 2026)

	resp := doRequest(t, app, jsonRequest(t, http.MethodPut, "/api/assessments/1", map[string]interface{}{
		"year":        1999,
		"isCompleted": true,
		"siemVendor":  "acme",
	}))
	helpers.AssertStatus(t, resp, http.StatusOK)

	resp = doRequest(t, app, jsonRequest(t, http.MethodGet, "/api/assessments/1", nil))
	body := helpers.ParseJSONMap(t, resp)
	if body["year"].(float64) != 2026 {
		t.Errorf("Expected year to be immutable, got %v", body["year"])
	}
	if body["isCompleted"] != false {
		t.Errorf("Expected completion state to be immutable via update, got %v", body["isCompleted"])
	}
	if body["siemVendor"] != "acme" {
		t.Errorf("Expected answer field to be stored, got %v", body["siemVendor"])
	}
}

func TestCompleteAssessmentEndpoint(t *testing.T) {
	app, db, _ := newHandlerTest(t)
	user := helpers.CreateTestUser(t, db, "finish@example.com")
	helpers.CreateTestAssessment(t, db, user.ID, 2026)

	resp := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/assessments/1/complete", nil))
	helpers.AssertStatus(t, resp, http.StatusOK)
	body := helpers.ParseJSONMap(t, resp)
	if body["isCompleted"] != true {
		t.Errorf("Expected isCompleted true, got %v", body["isCompleted"])
	}
	firstCompletedAt, err := time.Parse(time.RFC3339Nano, body["completedAt"].(string))
	if err != nil {
		t.Fatalf("Failed to parse completedAt: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	// Completing again keeps the original timestamp
	resp = doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/assessments/1/complete", nil))
	helpers.AssertStatus(t, resp, http.StatusOK)
	body = helpers.ParseJSONMap(t, resp)
	secondCompletedAt, err := time.Parse(time.RFC3339Nano, body["completedAt"].(string))
	if err != nil {
		t.Fatalf("Failed to parse completedAt: %v", err)
	}
	// Storage may round the timestamp, but a reset would move it by the
	// full 100ms gap.
	if drift := secondCompletedAt.Sub(firstCompletedAt); drift < -time.Millisecond || drift > 50*time.Millisecond {
		t.Errorf("Expected stable completedAt, got %v then %v", firstCompletedAt, secondCompletedAt)
	}

	resp = doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/assessments/9999/complete", nil))
	helpers.AssertStatus(t, resp, http.StatusNotFound)
}

func TestGetAssessmentsByUserEndpoint(t *testing.T) {
	app, db, _ := newHandlerTest(t)
	user := helpers.CreateTestUser(t, db, "list@example.com")
	helpers.CreateTestAssessment(t, db, user.ID, 2025)
	helpers.CreateTestAssessment(t, db, user.ID, 2026)

	resp := doRequest(t, app, jsonRequest(t, http.MethodGet, "/api/users/1/assessments", nil))
	helpers.AssertStatus(t, resp, http.StatusOK)

	var list []map[string]interface{}
	helpers.ParseJSON(t, resp, &list)
	if len(list) != 2 {
		t.Fatalf("Expected two assessments, got %d", len(list))
	}
	if list[0]["year"].(float64) != 2025 || list[1]["year"].(float64) != 2026 {
		t.Errorf("Expected assessments ordered by year, got %v", list)
	}
}

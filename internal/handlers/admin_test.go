package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/evalsec/cyberassess/internal/middleware"
	"github.com/evalsec/cyberassess/internal/models"
	"github.com/evalsec/cyberassess/tests/helpers"
)

func TestAdminAuthEndpoint(t *testing.T) {
	app, _, _ := newHandlerTest(t)

	// Wrong password
	resp := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/admin/auth", map[string]interface{}{
		"password": "wrong",
	}))
	helpers.AssertStatus(t, resp, http.StatusUnauthorized)

	// Missing password
	resp = doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/admin/auth", map[string]interface{}{}))
	helpers.AssertStatus(t, resp, http.StatusBadRequest)

	// Correct password issues a token and a session cookie
	resp = doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/admin/auth", map[string]interface{}{
		"password": "test-admin-password",
	}))
	helpers.AssertStatus(t, resp, http.StatusOK)

	body := helpers.ParseJSONMap(t, resp)
	if body["success"] != true {
		t.Errorf("Expected success, got %v", body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("Expected session token in body")
	}

	cookieSet := false
	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			cookieSet = true
			if cookie.Value != token {
				t.Error("Expected cookie to carry the issued token")
			}
			if !cookie.HttpOnly {
				t.Error("Expected session cookie to be HTTP-only")
			}
		}
	}
	if !cookieSet {
		t.Error("Expected session cookie to be set")
	}
}

func TestAdminResponsesRequiresSession(t *testing.T) {
	app, _, _ := newHandlerTest(t)

	// No credentials
	resp := doRequest(t, app, jsonRequest(t, http.MethodGet, "/api/admin/responses", nil))
	helpers.AssertStatus(t, resp, http.StatusUnauthorized)
	body := helpers.ParseJSONMap(t, resp)
	if body["type"] != "admin.authorization" {
		t.Errorf("Expected authorization error type, got %v", body["type"])
	}

	// Garbage bearer token
	req := jsonRequest(t, http.MethodGet, "/api/admin/responses", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp = doRequest(t, app, req)
	helpers.AssertStatus(t, resp, http.StatusForbidden)

	// Garbage cookie
	req = jsonRequest(t, http.MethodGet, "/api/admin/responses", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "not-a-token"})
	resp = doRequest(t, app, req)
	helpers.AssertStatus(t, resp, http.StatusForbidden)
}

func TestAdminResponsesGrouping(t *testing.T) {
	app, db, _ := newHandlerTest(t)

	user := helpers.CreateTestUser(t, db, "respondent@example.com")
	question := helpers.CreateTestQuestion(t, db, "cyber-risk", models.QuestionTypeRadio, "low", "medium", "high")
	helpers.CreateTestResponse(t, db, user.ID, question.ID, "high")
	helpers.CreateTestUser(t, db, "silent@example.com")

	// Login for a token
	resp := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/admin/auth", map[string]interface{}{
		"password": "test-admin-password",
	}))
	helpers.AssertStatus(t, resp, http.StatusOK)
	token := helpers.ParseJSONMap(t, resp)["token"].(string)

	// Bearer access
	req := jsonRequest(t, http.MethodGet, "/api/admin/responses", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp = doRequest(t, app, req)
	helpers.AssertStatus(t, resp, http.StatusOK)

	var submissions []map[string]interface{}
	helpers.ParseJSON(t, resp, &submissions)
	if len(submissions) != 1 {
		t.Fatalf("Expected one submission, got %d", len(submissions))
	}

	submittedUser, _ := submissions[0]["user"].(map[string]interface{})
	if submittedUser == nil || submittedUser["email"] != "respondent@example.com" {
		t.Errorf("Expected respondent user, got %v", submissions[0]["user"])
	}
	responses, _ := submissions[0]["responses"].([]interface{})
	if len(responses) != 1 {
		t.Fatalf("Expected one response, got %v", submissions[0]["responses"])
	}
	first, _ := responses[0].(map[string]interface{})
	if first["answer"] != "high" {
		t.Errorf("Expected answer high, got %v", first["answer"])
	}
	embedded, _ := first["question"].(map[string]interface{})
	if embedded == nil || !strings.Contains(embedded["text"].(string), "cyber-risk") {
		t.Errorf("Expected embedded question, got %v", first["question"])
	}

	// Cookie access works too
	req = jsonRequest(t, http.MethodGet, "/api/admin/responses", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	resp = doRequest(t, app, req)
	helpers.AssertStatus(t, resp, http.StatusOK)
}

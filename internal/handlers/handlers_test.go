package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/evalsec/cyberassess/internal/config"
	"github.com/evalsec/cyberassess/internal/middleware"
	"github.com/evalsec/cyberassess/internal/types"
	"github.com/evalsec/cyberassess/tests/helpers"
)

// newTestConfig returns a config with a throwaway upload dir.
func newTestConfig(t *testing.T) *config.Config {
	return &config.Config{
		AdminPassword:  "test-admin-password",
		SessionSecret:  "test-session-secret",
		SessionTTL:     time.Hour,
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 10 * 1024 * 1024,
	}
}

// newTestApp wires the routes the way the server binary does, including the
// global error handler that renders the standard error envelope.
func newTestApp(db *gorm.DB, cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := err.Error()
			errorType := "unknown"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}
			if e, ok := err.(*types.CustomError); ok {
				code = e.Code
				message = e.Message
				errorType = e.Type
			}
			return c.Status(code).JSON(fiber.Map{
				"status":    code,
				"message":   message,
				"ok":        false,
				"timestamp": time.Now().UTC().Format(time.RFC3339),
				"url":       c.OriginalURL(),
				"type":      errorType,
			})
		},
	})

	userHandler := &UserHandler{DB: db}
	assessmentHandler := &AssessmentHandler{DB: db}
	questionHandler := &QuestionHandler{DB: db}
	responseHandler := &ResponseHandler{DB: db}
	uploadHandler := &UploadHandler{DB: db, Cfg: cfg}
	adminHandler := &AdminHandler{DB: db, Cfg: cfg}

	api := app.Group("/api")
	api.Post("/users", userHandler.CreateUser)
	api.Get("/users/email/:email", userHandler.GetUserByEmail)
	api.Get("/users/:id", userHandler.GetUser)
	api.Post("/assessments", assessmentHandler.CreateAssessment)
	api.Get("/assessments/:id", assessmentHandler.GetAssessment)
	api.Put("/assessments/:id", assessmentHandler.UpdateAssessment)
	api.Post("/assessments/:id/complete", assessmentHandler.CompleteAssessment)
	api.Get("/users/:userId/assessments", assessmentHandler.GetAssessmentsByUser)
	api.Get("/questions", questionHandler.GetQuestions)
	api.Get("/questions/section/:section", questionHandler.GetQuestionsBySection)
	api.Post("/responses", responseHandler.SaveResponse)
	api.Get("/users/:userId/responses", responseHandler.GetResponsesByUser)
	api.Post("/upload", uploadHandler.Upload)
	api.Post("/admin/auth", adminHandler.Auth)
	api.Get("/admin/responses", middleware.AuthAdmin(cfg), adminHandler.Responses)

	return app
}

// newHandlerTest builds an app over a fresh in-memory database.
func newHandlerTest(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	db := helpers.SetupTestDB(t)
	cfg := newTestConfig(t)
	return newTestApp(db, cfg), db, cfg
}

func jsonRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request %s %s failed: %v", req.Method, req.URL.Path, err)
	}
	return resp
}

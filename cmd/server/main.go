package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	"github.com/evalsec/cyberassess/internal/config"
	"github.com/evalsec/cyberassess/internal/database"
	"github.com/evalsec/cyberassess/internal/handlers"
	"github.com/evalsec/cyberassess/internal/middleware"
	"github.com/evalsec/cyberassess/internal/types"
	"github.com/evalsec/cyberassess/internal/utils"

	_ "github.com/evalsec/cyberassess/docs/api" // Swagger docs
)

// @title CyberAssess API
// @version 1.0.0
// @description Cybersecurity self-assessment questionnaire service
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/evalsec/cyberassess

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name admin_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// The upload directory must be writable before the first upload arrives
	if err := utils.EnsureUploadDir(cfg.UploadDir); err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		// Multipart overhead on top of the raw file cap
		BodyLimit: cfg.MaxUploadBytes + 1024*1024,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("cyberassess")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.APIVersion())

	// Create handlers
	userHandler := &handlers.UserHandler{DB: db}
	assessmentHandler := &handlers.AssessmentHandler{DB: db}
	questionHandler := &handlers.QuestionHandler{DB: db}
	responseHandler := &handlers.ResponseHandler{DB: db}
	uploadHandler := &handlers.UploadHandler{DB: db, Cfg: cfg}
	adminHandler := &handlers.AdminHandler{DB: db, Cfg: cfg}
	healthHandler := &handlers.HealthHandler{DB: db, Cfg: cfg}

	// Health
	api.Get("/health", healthHandler.Health)

	// Users
	api.Post("/users", userHandler.CreateUser)
	api.Get("/users/email/:email", userHandler.GetUserByEmail)
	api.Get("/users/:id", userHandler.GetUser)

	// Assessments
	api.Post("/assessments", assessmentHandler.CreateAssessment)
	api.Get("/assessments/:id", assessmentHandler.GetAssessment)
	api.Put("/assessments/:id", assessmentHandler.UpdateAssessment)
	api.Post("/assessments/:id/complete", assessmentHandler.CompleteAssessment)
	api.Get("/users/:userId/assessments", assessmentHandler.GetAssessmentsByUser)

	// Question catalog
	api.Get("/questions", questionHandler.GetQuestions)
	api.Get("/questions/section/:section", questionHandler.GetQuestionsBySection)

	// Responses (autosave)
	api.Post("/responses", responseHandler.SaveResponse)
	api.Get("/users/:userId/responses", responseHandler.GetResponsesByUser)

	// Uploads
	api.Post("/upload", uploadHandler.Upload)

	// Admin
	api.Post("/admin/auth", adminHandler.Auth)
	api.Get("/admin/responses", middleware.AuthAdmin(cfg), adminHandler.Responses)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Errors raised by middleware carry their own status and type
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
}

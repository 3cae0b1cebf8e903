package handlers

import (
	"time"

	"github.com/evalsec/cyberassess/internal/config"
	"github.com/evalsec/cyberassess/internal/middleware"
	"github.com/evalsec/cyberassess/internal/services"
	"github.com/evalsec/cyberassess/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminHandler handles the admin login and the submissions dashboard
type AdminHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

type adminAuthInput struct {
	Password string `json:"password"`
}

// Auth handles POST /api/admin/auth
// @Summary Admin login
// @Description Verifies the admin password and issues a session token, returned in the body and set as a cookie.
// @Tags Admin
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /admin/auth [post]
func (h *AdminHandler) Auth(c *fiber.Ctx) error {
	var input adminAuthInput
	if err := c.BodyParser(&input); err != nil || input.Password == "" {
		return utils.ErrorResponse(c, "password is required", fiber.StatusBadRequest, "admin.validation")
	}

	if err := services.VerifyAdminPassword(h.Cfg, input.Password); err != nil {
		return utils.ErrorResponse(c, "Invalid password", fiber.StatusUnauthorized, "admin.authorization")
	}

	token, err := services.IssueSessionToken(h.Cfg)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "adminAuth")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(h.Cfg.SessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"token":   token,
	})
}

// Responses handles GET /api/admin/responses
// @Summary All submissions grouped by user
// @Description Every user with at least one response or assessment, with nested responses (question embedded) and assessments.
// @Tags Admin
// @Produce json
// @Success 200 {array} services.UserSubmission
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /admin/responses [get]
func (h *AdminHandler) Responses(c *fiber.Ctx) error {
	submissions, err := services.GetAllResponsesGroupedByUser(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "adminResponses")
	}
	return c.Status(fiber.StatusOK).JSON(submissions)
}

package handlers

import (
	"errors"
	"fmt"

	"github.com/evalsec/cyberassess/internal/services"
	"github.com/evalsec/cyberassess/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserHandler handles respondent routes
type UserHandler struct {
	DB *gorm.DB
}

// CreateUser handles POST /api/users
// @Summary Create a respondent
// @Description Register a new questionnaire respondent
// @Tags Users
// @Accept json
// @Produce json
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var input services.UserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid user data: "+err.Error(), fiber.StatusBadRequest, "users.validation")
	}
	if err := input.Validate(); err != nil {
		return utils.ErrorResponse(c, "Invalid user data: "+err.Error(), fiber.StatusBadRequest, "users.validation")
	}

	user, err := services.CreateUser(h.DB, input)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createUser")
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUser handles GET /api/users/:id
// @Summary Get a respondent
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "users.validation")
	}

	user, err := services.GetUser(h.DB, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, fmt.Sprintf("User %d not found", id))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getUser")
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// GetUserByEmail handles GET /api/users/email/:email
// @Summary Look up a returning respondent by email
// @Tags Users
// @Produce json
// @Param email path string true "Email address"
// @Success 200 {object} models.User
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /users/email/{email} [get]
func (h *UserHandler) GetUserByEmail(c *fiber.Ctx) error {
	email := c.Params("email")
	if email == "" {
		return utils.ErrorResponse(c, "email is required", fiber.StatusBadRequest, "users.validation")
	}

	user, err := services.GetUserByEmail(h.DB, email)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, fmt.Sprintf("User with email %q not found", email))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getUserByEmail")
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

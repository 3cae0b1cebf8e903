package handlers

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/evalsec/cyberassess/internal/models"
	"github.com/evalsec/cyberassess/internal/services"
	"github.com/evalsec/cyberassess/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AssessmentHandler handles yearly assessment routes
type AssessmentHandler struct {
	DB *gorm.DB
}

// CreateAssessment handles POST /api/assessments
// @Summary Create a yearly assessment
// @Description Create the per-year answer container for a user. Answer fields in the body are stored immediately.
// @Tags Assessments
// @Accept json
// @Produce json
// @Success 201 {object} models.Assessment
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /assessments [post]
func (h *AssessmentHandler) CreateAssessment(c *fiber.Ctx) error {
	body, err := flatBody(c)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid assessment data: "+err.Error(), fiber.StatusBadRequest, "assessments.validation")
	}

	userID, err := numberFromBody(body, "userId")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "assessments.validation")
	}
	year, err := numberFromBody(body, "year")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "assessments.validation")
	}

	_, answers := models.SplitAssessmentBody(body)

	assessment, err := services.CreateAssessment(h.DB, userID, int(year), answers)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, fmt.Sprintf("User %d not found", userID))
		}
		if errors.Is(err, services.ErrDuplicateAssessment) {
			return utils.ConflictResponse(c, err.Error())
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createAssessment")
	}

	return c.Status(fiber.StatusCreated).JSON(assessment)
}

// GetAssessment handles GET /api/assessments/:id
// @Summary Get an assessment
// @Tags Assessments
// @Produce json
// @Param id path int true "Assessment ID"
// @Success 200 {object} models.Assessment
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /assessments/{id} [get]
func (h *AssessmentHandler) GetAssessment(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "assessments.validation")
	}

	assessment, err := services.GetAssessment(h.DB, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, fmt.Sprintf("Assessment %d not found", id))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getAssessment")
	}

	return c.Status(fiber.StatusOK).JSON(assessment)
}

// UpdateAssessment handles PUT /api/assessments/:id
// @Summary Update assessment answers
// @Description Merge answer fields into the stored answers. Partial bodies leave other answers untouched.
// @Tags Assessments
// @Accept json
// @Produce json
// @Param id path int true "Assessment ID"
// @Success 200 {object} models.Assessment
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /assessments/{id} [put]
func (h *AssessmentHandler) UpdateAssessment(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "assessments.validation")
	}

	body, err := flatBody(c)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid assessment data: "+err.Error(), fiber.StatusBadRequest, "assessments.validation")
	}

	// Fixed fields (userId, year, completion state) are not updatable here.
	_, answers := models.SplitAssessmentBody(body)

	assessment, err := services.UpdateAssessment(h.DB, id, answers)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, fmt.Sprintf("Assessment %d not found", id))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateAssessment")
	}

	return c.Status(fiber.StatusOK).JSON(assessment)
}

// CompleteAssessment handles POST /api/assessments/:id/complete
// @Summary Complete an assessment
// @Description One-way transition; repeat calls keep the original completion time.
// @Tags Assessments
// @Produce json
// @Param id path int true "Assessment ID"
// @Success 200 {object} models.Assessment
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /assessments/{id}/complete [post]
func (h *AssessmentHandler) CompleteAssessment(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "assessments.validation")
	}

	assessment, err := services.CompleteAssessment(h.DB, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, fmt.Sprintf("Assessment %d not found", id))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "completeAssessment")
	}

	return c.Status(fiber.StatusOK).JSON(assessment)
}

// GetAssessmentsByUser handles GET /api/users/:userId/assessments
// @Summary List a user's assessments
// @Tags Assessments
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {array} models.Assessment
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /users/{userId}/assessments [get]
func (h *AssessmentHandler) GetAssessmentsByUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "assessments.validation")
	}

	assessments, err := services.GetAssessmentsByUser(h.DB, userID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getAssessmentsByUser")
	}

	return c.Status(fiber.StatusOK).JSON(assessments)
}

// flatBody decodes a JSON object body into a map.
func flatBody(c *fiber.Ctx) (map[string]interface{}, error) {
	body := map[string]interface{}{}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return nil, err
	}
	return body, nil
}

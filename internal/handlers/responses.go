package handlers

import (
	"github.com/evalsec/cyberassess/internal/services"
	"github.com/evalsec/cyberassess/internal/types"
	"github.com/evalsec/cyberassess/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ResponseHandler handles answer autosave routes
type ResponseHandler struct {
	DB *gorm.DB
}

// responseInput is the POST /api/responses body. Ids tolerate string form;
// the answer tolerates a checkbox array, which is normalized to the stored
// comma-joined string.
type responseInput struct {
	UserID     types.FlexUint64 `json:"userId"`
	QuestionID types.FlexUint64 `json:"questionId"`
	Answer     types.FlexAnswer `json:"answer"`
}

// SaveResponse handles POST /api/responses
// @Summary Save an answer
// @Description Atomic upsert keyed on (userId, questionId). The autosaving client calls this unconditionally; an empty answer clears a checkbox selection.
// @Tags Responses
// @Accept json
// @Produce json
// @Success 200 {object} models.Response
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /responses [post]
func (h *ResponseHandler) SaveResponse(c *fiber.Ctx) error {
	var input responseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid response data: "+err.Error(), fiber.StatusBadRequest, "responses.validation")
	}
	if input.UserID == 0 || input.QuestionID == 0 {
		return utils.ErrorResponse(c, "userId and questionId are required", fiber.StatusBadRequest, "responses.validation")
	}

	resp, err := services.UpsertResponse(h.DB, input.UserID.Uint64(), input.QuestionID.Uint64(), input.Answer.String())
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "saveResponse")
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetResponsesByUser handles GET /api/users/:userId/responses
// @Summary List a user's answers
// @Description Responses with the question embedded, in section display order.
// @Tags Responses
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {array} models.Response
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /users/{userId}/responses [get]
func (h *ResponseHandler) GetResponsesByUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "responses.validation")
	}

	responses, err := services.GetResponsesByUser(h.DB, userID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getResponsesByUser")
	}

	return c.Status(fiber.StatusOK).JSON(responses)
}

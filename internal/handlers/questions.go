package handlers

import (
	"github.com/evalsec/cyberassess/internal/services"
	"github.com/evalsec/cyberassess/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// QuestionHandler handles question catalog routes
type QuestionHandler struct {
	DB *gorm.DB
}

// GetQuestions handles GET /api/questions
// @Summary List all questions
// @Description Every question with its ordered options, sorted by section then order.
// @Tags Questions
// @Produce json
// @Success 200 {array} models.Question
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /questions [get]
func (h *QuestionHandler) GetQuestions(c *fiber.Ctx) error {
	questions, err := services.GetAllQuestions(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getQuestions")
	}
	return c.Status(fiber.StatusOK).JSON(questions)
}

// GetQuestionsBySection handles GET /api/questions/section/:section
// @Summary List the questions of one section
// @Tags Questions
// @Produce json
// @Param section path string true "Section id, e.g. password-policy"
// @Success 200 {array} models.Question
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /questions/section/{section} [get]
func (h *QuestionHandler) GetQuestionsBySection(c *fiber.Ctx) error {
	section := c.Params("section")
	if section == "" {
		return utils.ErrorResponse(c, "section is required", fiber.StatusBadRequest, "questions.validation")
	}

	questions, err := services.GetQuestionsBySection(h.DB, section)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getQuestionsBySection")
	}
	return c.Status(fiber.StatusOK).JSON(questions)
}

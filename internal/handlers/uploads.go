package handlers

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/evalsec/cyberassess/internal/config"
	"github.com/evalsec/cyberassess/internal/services"
	"github.com/evalsec/cyberassess/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UploadHandler handles evidence document uploads
type UploadHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// Upload handles POST /api/upload (multipart)
// @Summary Upload an evidence document
// @Description Accepts pdf, doc, docx or txt up to the configured size cap. Stores the file on disk, records its metadata and, when questionId is present, saves the filename as that question's answer. A rejected upload writes nothing.
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document"
// @Param userId formData int true "User ID"
// @Param questionId formData int false "Question the document answers"
// @Success 201 {object} models.AssessmentFile
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /upload [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, "file is required", fiber.StatusBadRequest, "upload.validation")
	}

	userID, err := strconv.ParseUint(c.FormValue("userId"), 10, 64)
	if err != nil || userID == 0 {
		return utils.ErrorResponse(c, "userId is required", fiber.StatusBadRequest, "upload.validation")
	}

	var questionID *uint64
	if raw := c.FormValue("questionId"); raw != "" {
		qid, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || qid == 0 {
			return utils.ErrorResponse(c, fmt.Sprintf("invalid questionId %q", raw), fiber.StatusBadRequest, "upload.validation")
		}
		questionID = &qid
	}

	contentType := header.Header.Get(fiber.HeaderContentType)
	if err := services.ValidateUpload(header.Filename, contentType, header.Size, h.Cfg.MaxUploadBytes); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "upload.validation")
	}

	// Stored name is uuid-prefixed so concurrent uploads of the same
	// filename cannot collide on disk.
	storedName := uuid.New().String() + "-" + filepath.Base(header.Filename)
	storedPath := filepath.Join(h.Cfg.UploadDir, storedName)

	if err := c.SaveFile(header, storedPath); err != nil {
		return utils.ErrorResponse(c, "failed to store file: "+err.Error(), fiber.StatusInternalServerError, "upload")
	}

	file, err := services.RecordUpload(h.DB, userID, questionID, header.Filename, contentType, header.Size, storedPath)
	if err != nil {
		// The metadata row is the source of truth; an orphaned blob must not
		// outlive a failed record.
		_ = os.Remove(storedPath)
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "upload")
	}

	return c.Status(fiber.StatusCreated).JSON(file)
}

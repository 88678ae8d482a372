package handlers

import (
	"io"
	"net/http"
	"strings"

	"rallyround/internal/db"
	"rallyround/internal/models"
	"rallyround/internal/utils/logger"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/labstack/echo/v4"
)

type UploadHandler struct {
	log *logger.Logger
	acl types.ObjectCannedACL
}

func NewUploadHandler(acl types.ObjectCannedACL) *UploadHandler {
	if acl == "" {
		acl = types.ObjectCannedACLPublicRead
	}
	return &UploadHandler{
		log: logger.New("upload_handler"),
		acl: acl,
	}
}

// UploadMedia stores an uploaded asset (fundraiser cover, event banner) and
// records it as a Media row
// @Summary Upload a media asset
// @Description Upload a media file to the server
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 200 {object} map[string]string "File uploaded successfully"
// @Failure 400 {object} map[string]string "Validation error or file not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/media/upload [post]
func (h *UploadHandler) UploadMedia(c echo.Context) error {
	contentType := c.Request().Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Content-Type must be multipart/form-data",
		})
	}

	storage := GetStorageHandler()
	if storage == nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Storage handler not configured",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		h.log.Error("Failed to get file from request", err)
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "No file provided",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": "Failed to read file",
		})
	}

	url, err := storage.UploadFile(c.Request().Context(), content, file.Filename, h.acl, file.Header.Get("Content-Type"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": "Failed to upload file",
		})
	}

	h.log.Success("File uploaded successfully: %s", url)

	userID, _ := c.Get("userID").(string)

	media := &models.Media{
		OrgID:  c.QueryParam("orgId"),
		UserID: userID,
		Path:   url[strings.LastIndex(url, "/")+1:],
		Name:   file.Filename,
		Size:   file.Size,
		Type:   file.Header.Get("Content-Type"),
	}

	if err := db.GetDB().Create(media).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": "Failed to record media",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "File uploaded successfully",
		"media":   media.ID,
	})
}

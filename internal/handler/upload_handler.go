package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bigbrother/internal/service"
)

// UploadHandler proxies file uploads to the content-manager service.
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// UploadImage godoc
// @Summary Upload an image
// @Tags uploads
// @Accept multipart/form-data
// @Produce plain
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 200 {string} string
// @Failure 500 {string} string
// @Router /upload/image [post]
func (h *UploadHandler) UploadImage(c echo.Context) error {
	return h.uploadFile(c, "images")
}

// UploadVideo godoc
// @Summary Upload a video
// @Tags uploads
// @Accept multipart/form-data
// @Produce plain
// @Security BearerAuth
// @Param file formData file true "Video file"
// @Success 200 {string} string
// @Failure 500 {string} string
// @Router /upload/video [post]
func (h *UploadHandler) UploadVideo(c echo.Context) error {
	return h.uploadFile(c, "videos")
}

func (h *UploadHandler) uploadFile(c echo.Context, folder string) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.String(http.StatusInternalServerError, "Error uploading file: "+err.Error())
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.String(http.StatusInternalServerError, "Error uploading file: "+err.Error())
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.uploadService.Forward(c.Request().Context(), folder, fileHeader.Filename, contentType, src); err != nil {
		return c.String(http.StatusInternalServerError, "Error uploading file: "+err.Error())
	}

	return c.String(http.StatusOK, "File uploaded successfully: "+fileHeader.Filename)
}

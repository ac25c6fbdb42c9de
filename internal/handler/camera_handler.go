package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "bigbrother/internal/errors"
	"bigbrother/internal/model"
	"bigbrother/internal/service"
)

// CameraHandler handles camera CRUD endpoints.
type CameraHandler struct {
	cameraService service.CameraService
}

// NewCameraHandler creates a new camera handler.
func NewCameraHandler(cameraService service.CameraService) *CameraHandler {
	return &CameraHandler{cameraService: cameraService}
}

// UpdateCameraRequest represents a partial camera update; absent fields are
// left untouched.
type UpdateCameraRequest struct {
	Name       *string `json:"name"`
	Device     *string `json:"device"`
	Resolution *string `json:"resolution"`
	FPS        *string `json:"fps"`
	PostURL    *string `json:"postUrl"`
	Codec      *string `json:"codec"`
	Preset     *string `json:"preset"`
	Tune       *string `json:"tune"`
	Buffer     *string `json:"buffer"`
	Rotation   *string `json:"rotation"`
}

// ListCameras godoc
// @Summary List cameras
// @Tags cameras
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Camera
// @Failure 401 {object} errors.ErrorResponse
// @Router /cameras [get]
func (h *CameraHandler) ListCameras(c echo.Context) error {
	cameras, err := h.cameraService.ListCameras(c.Request().Context())
	if err != nil {
		return h.respondError(c, err, 0)
	}
	return c.JSON(http.StatusOK, cameras)
}

// GetCamera godoc
// @Summary Get camera by id
// @Tags cameras
// @Produce json
// @Security BearerAuth
// @Param id path int true "Camera ID"
// @Success 200 {object} model.Camera
// @Failure 404 {object} errors.ErrorResponse
// @Router /cameras/{id} [get]
func (h *CameraHandler) GetCamera(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	camera, err := h.cameraService.GetCamera(c.Request().Context(), id)
	if err != nil {
		return h.respondError(c, err, id)
	}
	return c.JSON(http.StatusOK, camera)
}

// CreateCamera godoc
// @Summary Create camera
// @Tags cameras
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param camera body model.Camera true "Camera payload"
// @Success 201 {object} model.Camera
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /cameras [post]
func (h *CameraHandler) CreateCamera(c echo.Context) error {
	var camera model.Camera
	if err := c.Bind(&camera); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	camera.ID = 0

	if err := h.cameraService.CreateCamera(c.Request().Context(), &camera); err != nil {
		return h.respondError(c, err, 0)
	}
	return c.JSON(http.StatusCreated, camera)
}

// UpdateCamera godoc
// @Summary Update camera by id
// @Tags cameras
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Camera ID"
// @Param camera body UpdateCameraRequest true "Fields to update"
// @Success 200 {object} model.Camera
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /cameras/{id} [put]
func (h *CameraHandler) UpdateCamera(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req UpdateCameraRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	camera, err := h.cameraService.UpdateCamera(c.Request().Context(), id, service.CameraUpdate{
		Name:       req.Name,
		Device:     req.Device,
		Resolution: req.Resolution,
		FPS:        req.FPS,
		PostURL:    req.PostURL,
		Codec:      req.Codec,
		Preset:     req.Preset,
		Tune:       req.Tune,
		Buffer:     req.Buffer,
		Rotation:   req.Rotation,
	})
	if err != nil {
		return h.respondError(c, err, id)
	}
	return c.JSON(http.StatusOK, camera)
}

// DeleteCamera godoc
// @Summary Delete camera by id
// @Tags cameras
// @Security BearerAuth
// @Param id path int true "Camera ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /cameras/{id} [delete]
func (h *CameraHandler) DeleteCamera(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.cameraService.DeleteCamera(c.Request().Context(), id); err != nil {
		return h.respondError(c, err, id)
	}
	return c.NoContent(http.StatusNoContent)
}

// SearchCameras godoc
// @Summary Search cameras by name
// @Tags cameras
// @Produce json
// @Security BearerAuth
// @Param name query string true "Name substring"
// @Success 200 {array} model.Camera
// @Router /cameras/search [get]
func (h *CameraHandler) SearchCameras(c echo.Context) error {
	cameras, err := h.cameraService.SearchCameras(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return h.respondError(c, err, 0)
	}
	return c.JSON(http.StatusOK, cameras)
}

func (h *CameraHandler) respondError(c echo.Context, err error, id uint) error {
	if errors.Is(err, apperrors.ErrCameraNotFound) {
		return c.JSON(http.StatusNotFound, apperrors.ErrorResponse{
			Message: fmt.Sprintf("Camera not found with id: %d", id),
			Error:   "Resource not found",
		})
	}
	he := apperrors.MapErrorToHTTP(err)
	return c.JSON(he.StatusCode, he.ToErrorResponse())
}

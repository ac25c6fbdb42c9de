package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"bigbrother/internal/cache"
	apperrors "bigbrother/internal/errors"
	"bigbrother/internal/model"
	"bigbrother/internal/repository"
)

const cameraCacheTTL = 5 * time.Minute

// CameraUpdate carries the optional fields of a partial camera update; nil
// fields are left untouched.
type CameraUpdate struct {
	Name       *string
	Device     *string
	Resolution *string
	FPS        *string
	PostURL    *string
	Codec      *string
	Preset     *string
	Tune       *string
	Buffer     *string
	Rotation   *string
}

// CameraService exposes camera management operations.
type CameraService interface {
	ListCameras(ctx context.Context) ([]model.Camera, error)
	GetCamera(ctx context.Context, id uint) (*model.Camera, error)
	CreateCamera(ctx context.Context, camera *model.Camera) error
	UpdateCamera(ctx context.Context, id uint, update CameraUpdate) (*model.Camera, error)
	DeleteCamera(ctx context.Context, id uint) error
	SearchCameras(ctx context.Context, name string) ([]model.Camera, error)
}

type cameraService struct {
	repo  repository.CameraRepository
	cache *cache.Client
}

// NewCameraService builds a CameraService with repository and cache.
func NewCameraService(repo repository.CameraRepository, cache *cache.Client) CameraService {
	return &cameraService{repo: repo, cache: cache}
}

func (s *cameraService) cacheKey(id uint) string {
	return fmt.Sprintf("camera:%d", id)
}

func (s *cameraService) ListCameras(ctx context.Context) ([]model.Camera, error) {
	return s.repo.List(ctx)
}

func (s *cameraService) GetCamera(ctx context.Context, id uint) (*model.Camera, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Camera
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	camera, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCameraNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(camera); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, cameraCacheTTL)
	}
	return camera, nil
}

// CreateCamera persists a camera after validating its name. The name is
// trimmed before storage; uniqueness is case-insensitive.
func (s *cameraService) CreateCamera(ctx context.Context, camera *model.Camera) error {
	name := strings.TrimSpace(camera.Name)
	if name == "" {
		return apperrors.ErrCameraNameRequired
	}
	camera.Name = name

	if err := s.checkDuplicateName(ctx, name, 0); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, camera); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if existing, lookupErr := s.repo.FindByName(ctx, name); lookupErr == nil {
				return &apperrors.DuplicateCameraError{Existing: existing}
			}
		}
		return fmt.Errorf("create camera: %w", err)
	}
	return nil
}

func (s *cameraService) UpdateCamera(ctx context.Context, id uint, update CameraUpdate) (*model.Camera, error) {
	camera, err := s.GetCamera(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, apperrors.ErrCameraNameRequired
		}
		if err := s.checkDuplicateName(ctx, name, id); err != nil {
			return nil, err
		}
		camera.Name = name
	}
	if update.Device != nil {
		camera.Device = *update.Device
	}
	if update.Resolution != nil {
		camera.Resolution = *update.Resolution
	}
	if update.FPS != nil {
		camera.FPS = *update.FPS
	}
	if update.PostURL != nil {
		camera.PostURL = *update.PostURL
	}
	if update.Codec != nil {
		camera.Codec = *update.Codec
	}
	if update.Preset != nil {
		camera.Preset = *update.Preset
	}
	if update.Tune != nil {
		camera.Tune = *update.Tune
	}
	if update.Buffer != nil {
		camera.Buffer = *update.Buffer
	}
	if update.Rotation != nil {
		camera.Rotation = *update.Rotation
	}

	if err := s.repo.Update(ctx, camera); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if existing, lookupErr := s.repo.FindByName(ctx, camera.Name); lookupErr == nil && existing.ID != id {
				return nil, &apperrors.DuplicateCameraError{Existing: existing}
			}
		}
		return nil, fmt.Errorf("update camera: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return camera, nil
}

func (s *cameraService) DeleteCamera(ctx context.Context, id uint) error {
	if _, err := s.GetCamera(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

func (s *cameraService) SearchCameras(ctx context.Context, name string) ([]model.Camera, error) {
	return s.repo.SearchByName(ctx, name)
}

// checkDuplicateName returns a DuplicateCameraError when another record
// already holds the name. selfID excludes the record being updated.
func (s *cameraService) checkDuplicateName(ctx context.Context, name string, selfID uint) error {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("check camera name: %w", err)
	}
	if existing.ID == selfID {
		return nil
	}
	return &apperrors.DuplicateCameraError{Existing: existing}
}

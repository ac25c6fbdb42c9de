package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"bigbrother/internal/model"
)

// CameraRepository defines camera persistence operations.
type CameraRepository interface {
	Create(ctx context.Context, camera *model.Camera) error
	Update(ctx context.Context, camera *model.Camera) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Camera, error)
	// FindByName matches the name case-insensitively.
	FindByName(ctx context.Context, name string) (*model.Camera, error)
	List(ctx context.Context) ([]model.Camera, error)
	// SearchByName returns cameras whose name contains the given substring,
	// case-insensitively.
	SearchByName(ctx context.Context, name string) ([]model.Camera, error)
}

type cameraRepository struct {
	db *gorm.DB
}

// NewCameraRepository builds a GORM-backed repository.
func NewCameraRepository(db *gorm.DB) CameraRepository {
	return &cameraRepository{db: db}
}

func (r *cameraRepository) Create(ctx context.Context, camera *model.Camera) error {
	return r.db.WithContext(ctx).Create(camera).Error
}

func (r *cameraRepository) Update(ctx context.Context, camera *model.Camera) error {
	return r.db.WithContext(ctx).Save(camera).Error
}

func (r *cameraRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Camera{}, id).Error
}

func (r *cameraRepository) FindByID(ctx context.Context, id uint) (*model.Camera, error) {
	var camera model.Camera
	if err := r.db.WithContext(ctx).First(&camera, id).Error; err != nil {
		return nil, err
	}
	return &camera, nil
}

func (r *cameraRepository) FindByName(ctx context.Context, name string) (*model.Camera, error) {
	var camera model.Camera
	if err := r.db.WithContext(ctx).Where("LOWER(name) = ?", strings.ToLower(name)).First(&camera).Error; err != nil {
		return nil, err
	}
	return &camera, nil
}

func (r *cameraRepository) List(ctx context.Context) ([]model.Camera, error) {
	var cameras []model.Camera
	if err := r.db.WithContext(ctx).Find(&cameras).Error; err != nil {
		return nil, err
	}
	return cameras, nil
}

func (r *cameraRepository) SearchByName(ctx context.Context, name string) ([]model.Camera, error) {
	var cameras []model.Camera
	pattern := "%" + strings.ToLower(name) + "%"
	if err := r.db.WithContext(ctx).Where("LOWER(name) LIKE ?", pattern).Find(&cameras).Error; err != nil {
		return nil, err
	}
	return cameras, nil
}

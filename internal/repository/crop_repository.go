package repository

import (
	"context"

	"gorm.io/gorm"

	"agrimarket/internal/model"
)

// CropRepository defines crop listing persistence operations.
type CropRepository interface {
	Create(ctx context.Context, crop *model.Crop) error
	FindByID(ctx context.Context, id uint) (*model.Crop, error)
	ListAvailable(ctx context.Context) ([]model.Crop, error)
	ListByOwner(ctx context.Context, userID uint) ([]model.Crop, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type cropRepository struct {
	db *gorm.DB
}

// NewCropRepository creates a new crop repository.
func NewCropRepository(db *gorm.DB) CropRepository {
	return &cropRepository{db: db}
}

func (r *cropRepository) Create(ctx context.Context, crop *model.Crop) error {
	return r.db.WithContext(ctx).Create(crop).Error
}

func (r *cropRepository) FindByID(ctx context.Context, id uint) (*model.Crop, error) {
	var crop model.Crop
	if err := r.db.WithContext(ctx).First(&crop, id).Error; err != nil {
		return nil, err
	}
	return &crop, nil
}

// ListAvailable returns crops flagged available, in insertion order for a
// stable listing.
func (r *cropRepository) ListAvailable(ctx context.Context) ([]model.Crop, error) {
	var crops []model.Crop
	if err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Order("id").
		Find(&crops).Error; err != nil {
		return nil, err
	}
	return crops, nil
}

// ListByOwner returns all of a user's crops regardless of availability.
func (r *cropRepository) ListByOwner(ctx context.Context, userID uint) ([]model.Crop, error) {
	var crops []model.Crop
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&crops).Error; err != nil {
		return nil, err
	}
	return crops, nil
}

// UpdateFields applies only the supplied columns to the crop row.
func (r *cropRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Crop{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *cropRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Crop{}, id).Error
}

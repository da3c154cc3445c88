package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"agrimarket/internal/cache"
	"agrimarket/internal/errors"
	"agrimarket/internal/model"
	"agrimarket/internal/repository"
)

const (
	availableCropsCacheKey = "crops:available"
	availableCropsCacheTTL = time.Minute
	cropCacheTTL           = 5 * time.Minute
)

// CropCreate is the input for a new listing. Crop, Quantity, Location, and
// Price are required; the rest default.
type CropCreate struct {
	Crop        string
	Quantity    float64
	Location    string
	Price       float64
	Description string
	Category    string
	Unit        string
	Images      []string
}

// CropUpdate is the allow-list of mutable listing fields. Nil means leave
// unchanged. Owner and id are deliberately not here.
type CropUpdate struct {
	Crop        *string
	Quantity    *float64
	Location    *string
	Price       *float64
	Description *string
	Category    *string
	Available   *bool
	Unit        *string
	Images      *[]string
}

// CropService handles crop listings scoped by ownership.
type CropService interface {
	ListAvailable(ctx context.Context) ([]model.Crop, error)
	GetByID(ctx context.Context, id uint) (*model.Crop, error)
	Create(ctx context.Context, ownerID uint, in CropCreate) (*model.Crop, error)
	Update(ctx context.Context, ownerID, id uint, in CropUpdate) (*model.Crop, error)
	Delete(ctx context.Context, ownerID, id uint) error
	ListMine(ctx context.Context, ownerID uint) ([]model.Crop, error)
}

type cropService struct {
	cropRepo repository.CropRepository
	userRepo repository.UserRepository
	cache    *cache.Client
}

// NewCropService creates a new crop listing service.
func NewCropService(cropRepo repository.CropRepository, userRepo repository.UserRepository, cache *cache.Client) CropService {
	return &cropService{
		cropRepo: cropRepo,
		userRepo: userRepo,
		cache:    cache,
	}
}

func cropCacheKey(id uint) string {
	return fmt.Sprintf("crop:%d", id)
}

// ListAvailable returns all crops flagged available, with a short read-through
// cache in front of the store.
func (s *cropService) ListAvailable(ctx context.Context) ([]model.Crop, error) {
	if data, _ := s.cache.Get(ctx, availableCropsCacheKey); data != nil {
		var cached []model.Crop
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	crops, err := s.cropRepo.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("list crops: %w", err)
	}

	if payload, err := json.Marshal(crops); err == nil {
		_ = s.cache.Set(ctx, availableCropsCacheKey, payload, availableCropsCacheTTL)
	}
	return crops, nil
}

// GetByID returns a single listing regardless of availability.
func (s *cropService) GetByID(ctx context.Context, id uint) (*model.Crop, error) {
	if data, _ := s.cache.Get(ctx, cropCacheKey(id)); data != nil {
		var cached model.Crop
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	crop, err := s.cropRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCropNotFound
		}
		return nil, fmt.Errorf("get crop: %w", err)
	}

	if payload, err := json.Marshal(crop); err == nil {
		_ = s.cache.Set(ctx, cropCacheKey(id), payload, cropCacheTTL)
	}
	return crop, nil
}

// Create validates the payload, denormalizes the owner's name into the
// listing, and returns the stored record.
func (s *cropService) Create(ctx context.Context, ownerID uint, in CropCreate) (*model.Crop, error) {
	if in.Crop == "" || in.Quantity == 0 || in.Location == "" || in.Price == 0 {
		return nil, errors.ErrMissingCropFields
	}

	owner, err := s.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find owner: %w", err)
	}

	category := in.Category
	if category == "" {
		category = model.CategoryOther
	}
	unit := in.Unit
	if unit == "" {
		unit = "kg"
	}
	images := in.Images
	if images == nil {
		images = []string{}
	}

	crop := &model.Crop{
		FarmerName:  owner.Name,
		UserID:      owner.ID,
		Crop:        in.Crop,
		Quantity:    in.Quantity,
		Location:    in.Location,
		Price:       in.Price,
		Description: in.Description,
		Category:    category,
		Available:   true,
		Unit:        unit,
		Images:      images,
	}
	if err := s.cropRepo.Create(ctx, crop); err != nil {
		return nil, fmt.Errorf("create crop: %w", err)
	}

	created, err := s.cropRepo.FindByID(ctx, crop.ID)
	if err != nil {
		return nil, fmt.Errorf("reload crop: %w", err)
	}

	_ = s.cache.Delete(ctx, availableCropsCacheKey)
	return created, nil
}

// Update applies the supplied fields to a listing the caller owns.
func (s *cropService) Update(ctx context.Context, ownerID, id uint, in CropUpdate) (*model.Crop, error) {
	crop, err := s.cropRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCropNotFound
		}
		return nil, fmt.Errorf("find crop: %w", err)
	}
	if crop.UserID != ownerID {
		return nil, errors.ErrNotCropOwner
	}

	fields := map[string]interface{}{}
	if in.Crop != nil {
		fields["crop"] = *in.Crop
	}
	if in.Quantity != nil {
		fields["quantity"] = *in.Quantity
	}
	if in.Location != nil {
		fields["location"] = *in.Location
	}
	if in.Price != nil {
		fields["price"] = *in.Price
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Category != nil {
		fields["category"] = *in.Category
	}
	if in.Available != nil {
		fields["available"] = *in.Available
	}
	if in.Unit != nil {
		fields["unit"] = *in.Unit
	}
	if in.Images != nil {
		fields["images"] = *in.Images
	}

	if len(fields) > 0 {
		if err := s.cropRepo.UpdateFields(ctx, id, fields); err != nil {
			return nil, fmt.Errorf("update crop: %w", err)
		}
	}

	updated, err := s.cropRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload crop: %w", err)
	}

	_ = s.cache.Delete(ctx, availableCropsCacheKey, cropCacheKey(id))
	return updated, nil
}

// Delete removes a listing the caller owns.
func (s *cropService) Delete(ctx context.Context, ownerID, id uint) error {
	crop, err := s.cropRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrCropNotFound
		}
		return fmt.Errorf("find crop: %w", err)
	}
	if crop.UserID != ownerID {
		return errors.ErrNotCropOwner
	}

	if err := s.cropRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete crop: %w", err)
	}

	_ = s.cache.Delete(ctx, availableCropsCacheKey, cropCacheKey(id))
	return nil
}

// ListMine returns all of the caller's listings regardless of availability.
func (s *cropService) ListMine(ctx context.Context, ownerID uint) ([]model.Crop, error) {
	crops, err := s.cropRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list own crops: %w", err)
	}
	return crops, nil
}

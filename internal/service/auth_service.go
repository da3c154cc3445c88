package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"agrimarket/internal/auth"
	"agrimarket/internal/errors"
	"agrimarket/internal/model"
	"agrimarket/internal/repository"
)

const bcryptCost = 10

// ProfileUpdate carries the optional profile fields. Empty strings are
// treated as absent, matching the partial-update contract.
type ProfileUpdate struct {
	Name     string
	Phone    string
	Address  string
	UserType string
}

// AuthService handles registration, login, and bearer-token resolution.
type AuthService interface {
	Register(ctx context.Context, name, email, password, userType string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	ResolveUser(ctx context.Context, userID uint) (*model.AuthUser, error)
	GetProfile(ctx context.Context, userID uint) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a user with a bcrypt-hashed password and returns the
// record plus a fresh bearer token.
func (s *authService) Register(ctx context.Context, name, email, password, userType string) (*model.User, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", errors.ErrMissingFields
	}
	if len(password) < 6 {
		return nil, "", errors.ErrPasswordLength
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", errors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	if userType == "" {
		userType = model.UserTypeConsumer
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		UserType:     userType,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

// Login authenticates credentials and returns the user plus a fresh token.
// Unknown email and wrong password fail identically.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if email == "" || password == "" {
		return nil, "", errors.ErrMissingCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

// ResolveUser loads the minimal projection for the id a verified token
// carries. A valid token whose user has disappeared resolves to not-found.
func (s *authService) ResolveUser(ctx context.Context, userID uint) (*model.AuthUser, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	return user.Project(), nil
}

// GetProfile returns the full user record for the /me endpoint.
func (s *authService) GetProfile(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return user, nil
}

// UpdateProfile applies only the supplied fields and returns the updated
// record.
func (s *authService) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*model.User, error) {
	fields := map[string]interface{}{}
	if update.Name != "" {
		fields["name"] = update.Name
	}
	if update.Phone != "" {
		fields["phone"] = update.Phone
	}
	if update.Address != "" {
		fields["address"] = update.Address
	}
	if update.UserType != "" {
		fields["user_type"] = update.UserType
	}
	if len(fields) == 0 {
		return nil, errors.ErrNoFields
	}

	if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return s.GetProfile(ctx, userID)
}

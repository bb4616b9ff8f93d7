package service

import (
	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/repository"
	"go-restaurant-api/pkg/apperrors"
	"go-restaurant-api/pkg/jwt"
	"go-restaurant-api/pkg/validator"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type AuthService interface {
	Login(req *LoginRequest) (*LoginResponse, error)
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Login(req *LoginRequest) (*LoginResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperrors.Validation("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// Lookup spans all lifecycle states so a deleted account gets a distinct
	// message instead of a generic credential failure.
	user, err := s.userRepo.FindByUsername(req.Username)
	if err != nil {
		return nil, apperrors.NotFound("user %s not found", req.Username)
	}
	if user.Status == model.StatusDeleted {
		return nil, apperrors.InvalidState("user %s is deleted", req.Username)
	}

	if !user.CheckPassword(req.Password) {
		return nil, apperrors.Validation("invalid username or password")
	}

	// Rotating the token version invalidates every previously issued token,
	// so only the newest login stays usable.
	version := uuid.New().String()
	if err := s.userRepo.UpdateTokenVersion(user.ID, version); err != nil {
		return nil, err
	}

	token, err := jwt.GenerateToken(user.ID, user.Username, user.FullName(), user.TypeName(), version)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: token, User: user.ToResponse()}, nil
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Claims, error) {
	return jwt.ValidateToken(tokenString)
}

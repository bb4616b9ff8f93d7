package service

import (
	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/repository"
	"go-restaurant-api/pkg/apperrors"
	"go-restaurant-api/pkg/validator"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Gender     string `json:"gender" validate:"omitempty,oneof=male female"`
	UserTypeID uint   `json:"user_type_id" validate:"required"`
}

type UpdateUserRequest struct {
	Username   *string `json:"username,omitempty"`
	Password   *string `json:"password,omitempty"`
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Gender     *string `json:"gender,omitempty"`
	UserTypeID *uint   `json:"user_type_id,omitempty"`
}

type UserService interface {
	Create(req *CreateUserRequest) (*model.UserResponse, error)
	Update(id uuid.UUID, req *UpdateUserRequest) (*model.UserResponse, error)
	Delete(id uuid.UUID) error
	GetAll() ([]model.UserResponse, error)
	GetOne(id uuid.UUID) (*model.UserResponse, error)
	GetUserTypes() ([]model.UserType, error)
}

type userService struct {
	userRepo     repository.UserRepository
	userTypeRepo repository.UserTypeRepository
}

func NewUserService(uRepo repository.UserRepository, utRepo repository.UserTypeRepository) UserService {
	return &userService{
		userRepo:     uRepo,
		userTypeRepo: utRepo,
	}
}

// civilityFor derives the salutation stored alongside the gender.
func civilityFor(gender string) string {
	switch gender {
	case "male":
		return "mr"
	case "female":
		return "mrs"
	default:
		return ""
	}
}

func (s *userService) Create(req *CreateUserRequest) (*model.UserResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperrors.Validation("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if !validator.ValidPassword(req.Password) {
		return nil, apperrors.Validation("password must be 8-72 characters with at least one lowercase letter, one uppercase letter and one digit")
	}

	existing, _ := s.userRepo.FindActiveByUsername(req.Username)
	if existing != nil {
		return nil, apperrors.Conflict("username already existed")
	}

	userType, err := s.userTypeRepo.FindByID(req.UserTypeID)
	if err != nil {
		return nil, apperrors.NotFound("user type %d not found", req.UserTypeID)
	}

	typeID := userType.ID
	user := &model.User{
		Username:   req.Username,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Gender:     req.Gender,
		Civility:   civilityFor(req.Gender),
		UserTypeID: &typeID,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	user.UserType = userType
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) Update(id uuid.UUID, req *UpdateUserRequest) (*model.UserResponse, error) {
	user, err := s.userRepo.FindActiveByID(id)
	if err != nil {
		return nil, apperrors.NotFound("user not found")
	}

	if req.Username != nil && *req.Username != user.Username {
		if *req.Username == "" {
			return nil, apperrors.Validation("username must not be empty")
		}
		duplicate, _ := s.userRepo.FindActiveByUsername(*req.Username)
		if duplicate != nil {
			return nil, apperrors.Conflict("username already existed")
		}
		user.Username = *req.Username
	}
	if req.Password != nil {
		if !validator.ValidPassword(*req.Password) {
			return nil, apperrors.Validation("password must be 8-72 characters with at least one lowercase letter, one uppercase letter and one digit")
		}
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Gender != nil {
		if *req.Gender != "male" && *req.Gender != "female" && *req.Gender != "" {
			return nil, apperrors.Validation("gender must be male or female")
		}
		user.Gender = *req.Gender
		user.Civility = civilityFor(*req.Gender)
	}
	if req.UserTypeID != nil {
		userType, err := s.userTypeRepo.FindByID(*req.UserTypeID)
		if err != nil {
			return nil, apperrors.NotFound("user type %d not found", *req.UserTypeID)
		}
		typeID := userType.ID
		user.UserTypeID = &typeID
		user.UserType = userType
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) Delete(id uuid.UUID) error {
	user, err := s.userRepo.FindActiveByID(id)
	if err != nil {
		return apperrors.NotFound("user not found")
	}

	// The General Admin account is permanent
	if user.TypeName() == model.TypeGeneralAdmin {
		return apperrors.InvalidState("a General Admin account cannot be deleted")
	}

	return s.userRepo.SoftDelete(id)
}

func (s *userService) GetAll() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAllActive()
	if err != nil {
		return nil, err
	}
	responses := make([]model.UserResponse, len(users))
	for i := range users {
		responses[i] = users[i].ToResponse()
	}
	return responses, nil
}

func (s *userService) GetOne(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindActiveByID(id)
	if err != nil {
		return nil, apperrors.NotFound("user not found")
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) GetUserTypes() ([]model.UserType, error) {
	return s.userTypeRepo.FindAll()
}

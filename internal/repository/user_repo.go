package repository

import (
	"go-restaurant-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindAllActive() ([]model.User, error)
	FindActiveByID(id uuid.UUID) (*model.User, error)
	// FindByUsername looks across all lifecycle states so login can report
	// a deleted account explicitly
	FindByUsername(username string) (*model.User, error)
	FindActiveByUsername(username string) (*model.User, error)
	Update(user *model.User) error
	UpdatePassword(userID uuid.UUID, hashedPassword string) error
	UpdateTokenVersion(userID uuid.UUID, version string) error
	SoftDelete(id uuid.UUID) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepo) FindAllActive() ([]model.User, error) {
	var users []model.User
	err := r.db.Preload("UserType").Where("status = ?", model.StatusActive).Order("username ASC").Find(&users).Error
	return users, err
}

func (r *userRepo) FindActiveByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.Preload("UserType").First(&user, "id = ? AND status = ?", id, model.StatusActive).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.db.Preload("UserType").First(&user, "username = ?", username).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindActiveByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.db.Preload("UserType").First(&user, "username = ? AND status = ?", username, model.StatusActive).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Update(user *model.User) error {
	return r.db.Omit("UserType").Save(user).Error
}

func (r *userRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Update("password", hashedPassword).Error
}

func (r *userRepo) UpdateTokenVersion(userID uuid.UUID, version string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Update("token_version", version).Error
}

func (r *userRepo) SoftDelete(id uuid.UUID) error {
	return r.db.Model(&model.User{}).
		Where("id = ?", id).
		Update("status", model.StatusDeleted).Error
}

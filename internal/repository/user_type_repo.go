package repository

import (
	"go-restaurant-api/internal/model"

	"gorm.io/gorm"
)

type UserTypeRepository interface {
	FindAll() ([]model.UserType, error)
	FindByID(id uint) (*model.UserType, error)
	FindByName(name string) (*model.UserType, error)
	SeedDefaults() error
}

type userTypeRepo struct {
	db *gorm.DB
}

func NewUserTypeRepo(db *gorm.DB) UserTypeRepository {
	return &userTypeRepo{db: db}
}

func (r *userTypeRepo) FindAll() ([]model.UserType, error) {
	var userTypes []model.UserType
	err := r.db.Where("status = ?", model.StatusActive).Find(&userTypes).Error
	return userTypes, err
}

func (r *userTypeRepo) FindByID(id uint) (*model.UserType, error) {
	var userType model.UserType
	err := r.db.First(&userType, "id = ? AND status = ?", id, model.StatusActive).Error
	if err != nil {
		return nil, err
	}
	return &userType, nil
}

func (r *userTypeRepo) FindByName(name string) (*model.UserType, error) {
	var userType model.UserType
	err := r.db.First(&userType, "name = ? AND status = ?", name, model.StatusActive).Error
	if err != nil {
		return nil, err
	}
	return &userType, nil
}

func (r *userTypeRepo) SeedDefaults() error {
	for _, defaultType := range model.DefaultUserTypes {
		var existing model.UserType
		err := r.db.Where("name = ?", defaultType.Name).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			// Type doesn't exist, create it
			if err := r.db.Create(&defaultType).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

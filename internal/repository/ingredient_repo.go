package repository

import (
	"go-restaurant-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IngredientRepository interface {
	Create(ingredient *model.Ingredient) error
	FindAllActive() ([]model.Ingredient, error)
	FindActiveByID(id uuid.UUID) (*model.Ingredient, error)
	// FindByID resolves soft-deleted rows too, for history rendering
	FindByID(id uuid.UUID) (*model.Ingredient, error)
	FindActiveByName(name string) (*model.Ingredient, error)
	Update(ingredient *model.Ingredient) error
	SoftDelete(id uuid.UUID) error
}

type ingredientRepo struct {
	db *gorm.DB
}

func NewIngredientRepo(db *gorm.DB) IngredientRepository {
	return &ingredientRepo{db}
}

func (r *ingredientRepo) Create(ingredient *model.Ingredient) error {
	return r.db.Create(ingredient).Error
}

func (r *ingredientRepo) FindAllActive() ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	err := r.db.Where("status = ?", model.StatusActive).Order("name ASC").Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepo) FindActiveByID(id uuid.UUID) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	err := r.db.First(&ingredient, "id = ? AND status = ?", id, model.StatusActive).Error
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepo) FindByID(id uuid.UUID) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	err := r.db.First(&ingredient, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepo) FindActiveByName(name string) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	err := r.db.First(&ingredient, "name = ? AND status = ?", name, model.StatusActive).Error
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepo) Update(ingredient *model.Ingredient) error {
	return r.db.Save(ingredient).Error
}

func (r *ingredientRepo) SoftDelete(id uuid.UUID) error {
	return r.db.Model(&model.Ingredient{}).
		Where("id = ?", id).
		Update("status", model.StatusDeleted).Error
}

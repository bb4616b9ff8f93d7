package repository

import (
	"strings"

	"go-restaurant-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pagination is page index times page size, with a total-count side channel
// on the list queries that accept it.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// RecipeFilter narrows the recipe list. Name is a case-insensitive substring
// match; the flags are tri-state (nil = no filter).
type RecipeFilter struct {
	Name       string
	Published  *bool
	Discounted *bool
	BestSeller *bool
}

// RecipeSorting picks one sort key; direction is "asc" or "desc".
type RecipeSorting struct {
	Field     string // name, price, discount
	Direction string
}

type RecipeRepository interface {
	Create(recipe *model.Recipe) error
	FindActiveByID(id uuid.UUID) (*model.Recipe, error)
	// FindByID resolves soft-deleted rows too, for history rendering
	FindByID(id uuid.UUID) (*model.Recipe, error)
	FindActiveByName(name string) (*model.Recipe, error)
	Update(recipe *model.Recipe) error
	ReplaceDetails(recipeID uuid.UUID, details []model.IngredientDetail) error
	SoftDelete(id uuid.UUID) error
	List(filter RecipeFilter, sorting *RecipeSorting, pagination *Pagination) ([]model.Recipe, int64, error)
	// CountPublishedReferences counts active published recipes using the
	// ingredient, the guard for ingredient deletion
	CountPublishedReferences(ingredientID uuid.UUID) (int64, error)
}

type recipeRepo struct {
	db *gorm.DB
}

func NewRecipeRepo(db *gorm.DB) RecipeRepository {
	return &recipeRepo{db}
}

func preloadDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("IngredientDetails", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("IngredientDetails.Ingredient")
}

func (r *recipeRepo) Create(recipe *model.Recipe) error {
	return r.db.Create(recipe).Error
}

func (r *recipeRepo) FindActiveByID(id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	err := preloadDetails(r.db).First(&recipe, "id = ? AND status = ?", id, model.StatusActive).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepo) FindByID(id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	err := preloadDetails(r.db).First(&recipe, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// FindActiveByName matches the name exactly (case-sensitive); the list
// filter is the place for fuzzy search.
func (r *recipeRepo) FindActiveByName(name string) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.First(&recipe, "name = ? AND status = ?", name, model.StatusActive).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepo) Update(recipe *model.Recipe) error {
	return r.db.Omit("IngredientDetails").Save(recipe).Error
}

func (r *recipeRepo) ReplaceDetails(recipeID uuid.UUID, details []model.IngredientDetail) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.IngredientDetail{}, "recipe_id = ?", recipeID).Error; err != nil {
			return err
		}
		for i := range details {
			details[i].RecipeID = recipeID
			details[i].Position = i
		}
		if len(details) == 0 {
			return nil
		}
		return tx.Create(&details).Error
	})
}

func (r *recipeRepo) SoftDelete(id uuid.UUID) error {
	return r.db.Model(&model.Recipe{}).
		Where("id = ?", id).
		Update("status", model.StatusDeleted).Error
}

func (r *recipeRepo) List(filter RecipeFilter, sorting *RecipeSorting, pagination *Pagination) ([]model.Recipe, int64, error) {
	query := r.db.Model(&model.Recipe{}).Where("status = ?", model.StatusActive)

	if filter.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Published != nil {
		query = query.Where("is_published = ?", *filter.Published)
	}
	if filter.Discounted != nil {
		query = query.Where("is_discount = ?", *filter.Discounted)
	}
	if filter.BestSeller != nil {
		query = query.Where("is_best_seller = ?", *filter.BestSeller)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if sorting != nil {
		direction := "ASC"
		if strings.EqualFold(sorting.Direction, "desc") {
			direction = "DESC"
		}
		switch sorting.Field {
		case "name":
			order = "name " + direction
		case "price":
			order = "price " + direction
		case "discount":
			order = "discount " + direction
		}
	}
	query = query.Order(order)

	if pagination != nil && pagination.Limit > 0 {
		query = query.Offset(pagination.Page * pagination.Limit).Limit(pagination.Limit)
	}

	var recipes []model.Recipe
	if err := preloadDetails(query).Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

func (r *recipeRepo) CountPublishedReferences(ingredientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.IngredientDetail{}).
		Joins("JOIN recipes ON recipes.id = ingredient_details.recipe_id").
		Where("ingredient_details.ingredient_id = ?", ingredientID).
		Where("recipes.is_published = ? AND recipes.status = ?", true, model.StatusActive).
		Count(&count).Error
	return count, err
}

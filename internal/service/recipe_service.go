package service

import (
	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/repository"
	"go-restaurant-api/pkg/apperrors"
	"go-restaurant-api/pkg/validator"

	"github.com/google/uuid"
)

// RecipeIngredientInput is one (ingredient, stock_used) pair of a recipe.
type RecipeIngredientInput struct {
	IngredientID uuid.UUID `json:"ingredient_id" validate:"uuid_required"`
	StockUsed    int64     `json:"stock_used" validate:"required,gt=0"`
}

type CreateRecipeRequest struct {
	Name              string                  `json:"name" validate:"required"`
	Price             int64                   `json:"price" validate:"gte=0"`
	IsDiscount        bool                    `json:"is_discount"`
	Discount          int64                   `json:"discount" validate:"gte=0,lte=100"`
	IsBestSeller      bool                    `json:"is_best_seller"`
	IngredientDetails []RecipeIngredientInput `json:"ingredient_details" validate:"omitempty,dive"`
}

// UpdateRecipeRequest carries only the fields the caller wants to change.
type UpdateRecipeRequest struct {
	Name              *string                  `json:"name,omitempty"`
	Price             *int64                   `json:"price,omitempty"`
	IsDiscount        *bool                    `json:"is_discount,omitempty"`
	Discount          *int64                   `json:"discount,omitempty"`
	IsBestSeller      *bool                    `json:"is_best_seller,omitempty"`
	IngredientDetails *[]RecipeIngredientInput `json:"ingredient_details,omitempty"`
}

// RecipeView is a recipe plus its derived available portion count.
type RecipeView struct {
	model.Recipe
	Available int64 `json:"available"`
}

type RecipeService interface {
	Create(req *CreateRecipeRequest) (*RecipeView, error)
	Update(id uuid.UUID, req *UpdateRecipeRequest) (*RecipeView, error)
	TogglePublish(id uuid.UUID) (*model.Recipe, error)
	Delete(id uuid.UUID) error
	GetOne(id uuid.UUID) (*RecipeView, error)
	List(filter repository.RecipeFilter, sorting *repository.RecipeSorting, pagination *repository.Pagination) ([]RecipeView, int64, error)
}

type recipeService struct {
	recipeRepo     repository.RecipeRepository
	ingredientRepo repository.IngredientRepository
}

func NewRecipeService(rRepo repository.RecipeRepository, iRepo repository.IngredientRepository) RecipeService {
	return &recipeService{
		recipeRepo:     rRepo,
		ingredientRepo: iRepo,
	}
}

// computeAvailable derives the portion count from the preloaded ingredients.
// Ingredients deleted since the recipe was composed count as zero stock.
func computeAvailable(recipe *model.Recipe) int64 {
	stocks := make(map[uuid.UUID]int64, len(recipe.IngredientDetails))
	for _, detail := range recipe.IngredientDetails {
		if detail.Ingredient != nil && detail.Ingredient.Status == model.StatusActive {
			stocks[detail.IngredientID] = detail.Ingredient.StockAmount
		}
	}
	return recipe.AvailableCount(stocks)
}

func (s *recipeService) view(recipe *model.Recipe) *RecipeView {
	return &RecipeView{Recipe: *recipe, Available: computeAvailable(recipe)}
}

// buildDetails validates the ingredient refs and turns input rows into owned
// detail rows, preserving order.
func (s *recipeService) buildDetails(inputs []RecipeIngredientInput) ([]model.IngredientDetail, error) {
	details := make([]model.IngredientDetail, 0, len(inputs))
	for i, input := range inputs {
		ingredient, err := s.ingredientRepo.FindActiveByID(input.IngredientID)
		if err != nil {
			return nil, apperrors.NotFound("ingredient %s not found", input.IngredientID)
		}
		details = append(details, model.IngredientDetail{
			IngredientID: ingredient.ID,
			StockUsed:    input.StockUsed,
			Position:     i,
		})
	}
	return details, nil
}

func (s *recipeService) Create(req *CreateRecipeRequest) (*RecipeView, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperrors.Validation("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// Duplicate check is a case-sensitive exact match among active recipes
	existing, _ := s.recipeRepo.FindActiveByName(req.Name)
	if existing != nil {
		return nil, apperrors.Conflict("recipe name already existed")
	}

	if req.IsDiscount && req.Discount <= 0 {
		return nil, apperrors.Validation("discount must be greater than 0 when is_discount is set")
	}
	if !req.IsDiscount {
		req.Discount = 0
	}

	details, err := s.buildDetails(req.IngredientDetails)
	if err != nil {
		return nil, err
	}

	recipe := &model.Recipe{
		Name:              req.Name,
		Price:             req.Price,
		IsDiscount:        req.IsDiscount,
		Discount:          req.Discount,
		IsBestSeller:      req.IsBestSeller,
		IngredientDetails: details,
	}

	if err := s.recipeRepo.Create(recipe); err != nil {
		return nil, err
	}

	return s.GetOne(recipe.ID)
}

func (s *recipeService) Update(id uuid.UUID, req *UpdateRecipeRequest) (*RecipeView, error) {
	recipe, err := s.recipeRepo.FindActiveByID(id)
	if err != nil {
		return nil, apperrors.NotFound("recipe not found")
	}

	// Once published, every field is frozen; the publish toggle is the only
	// mutation path left.
	if recipe.IsPublished {
		return nil, apperrors.InvalidState("recipe %s is already published", recipe.Name)
	}

	if req.Name != nil && *req.Name != recipe.Name {
		if *req.Name == "" {
			return nil, apperrors.Validation("recipe name must not be empty")
		}
		duplicate, _ := s.recipeRepo.FindActiveByName(*req.Name)
		if duplicate != nil {
			return nil, apperrors.Conflict("recipe name already existed")
		}
		recipe.Name = *req.Name
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, apperrors.Validation("price must not be negative")
		}
		recipe.Price = *req.Price
	}
	if req.IsDiscount != nil {
		recipe.IsDiscount = *req.IsDiscount
	}
	if req.Discount != nil {
		if *req.Discount < 0 || *req.Discount > 100 {
			return nil, apperrors.Validation("discount must be between 0 and 100")
		}
		recipe.Discount = *req.Discount
	}
	if recipe.IsDiscount && recipe.Discount <= 0 {
		return nil, apperrors.Validation("discount must be greater than 0 when is_discount is set")
	}
	if !recipe.IsDiscount {
		// Dropping the discount flag clears the percentage
		recipe.Discount = 0
	}
	if req.IsBestSeller != nil {
		recipe.IsBestSeller = *req.IsBestSeller
	}

	if req.IngredientDetails != nil {
		details, err := s.buildDetails(*req.IngredientDetails)
		if err != nil {
			return nil, err
		}
		if err := s.recipeRepo.ReplaceDetails(recipe.ID, details); err != nil {
			return nil, err
		}
	}

	if err := s.recipeRepo.Update(recipe); err != nil {
		return nil, err
	}

	return s.GetOne(recipe.ID)
}

func (s *recipeService) TogglePublish(id uuid.UUID) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.FindActiveByID(id)
	if err != nil {
		return nil, apperrors.NotFound("recipe not found")
	}

	recipe.IsPublished = !recipe.IsPublished
	if err := s.recipeRepo.Update(recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) Delete(id uuid.UUID) error {
	recipe, err := s.recipeRepo.FindActiveByID(id)
	if err != nil {
		return apperrors.NotFound("recipe not found")
	}

	if recipe.IsPublished {
		return apperrors.InvalidState("recipe %s is already published", recipe.Name)
	}

	return s.recipeRepo.SoftDelete(id)
}

func (s *recipeService) GetOne(id uuid.UUID) (*RecipeView, error) {
	// History rendering needs soft-deleted recipes to stay resolvable
	recipe, err := s.recipeRepo.FindByID(id)
	if err != nil {
		return nil, apperrors.NotFound("recipe not found")
	}
	return s.view(recipe), nil
}

func (s *recipeService) List(filter repository.RecipeFilter, sorting *repository.RecipeSorting, pagination *repository.Pagination) ([]RecipeView, int64, error) {
	recipes, total, err := s.recipeRepo.List(filter, sorting, pagination)
	if err != nil {
		return nil, 0, err
	}

	views := make([]RecipeView, len(recipes))
	for i := range recipes {
		views[i] = *s.view(&recipes[i])
	}
	return views, total, nil
}

package service

import (
	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/repository"
	"go-restaurant-api/internal/ws"
	"go-restaurant-api/pkg/apperrors"
	"go-restaurant-api/pkg/validator"

	"github.com/google/uuid"
)

type IngredientService interface {
	Create(req *model.Ingredient) error
	Update(id uuid.UUID, req *model.Ingredient) (*model.Ingredient, error)
	Delete(id uuid.UUID) error
	GetAll() ([]model.Ingredient, error)
	GetOne(id uuid.UUID) (*model.Ingredient, error)
}

type ingredientService struct {
	ingredientRepo repository.IngredientRepository
	recipeRepo     repository.RecipeRepository
	wsHub          *ws.Hub
}

func NewIngredientService(iRepo repository.IngredientRepository, rRepo repository.RecipeRepository, hub *ws.Hub) IngredientService {
	return &ingredientService{
		ingredientRepo: iRepo,
		recipeRepo:     rRepo,
		wsHub:          hub,
	}
}

func (s *ingredientService) Create(req *model.Ingredient) error {
	// 1. Validate struct
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return apperrors.Validation("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// 2. Check duplicate name among active ingredients
	existing, _ := s.ingredientRepo.FindActiveByName(req.Name)
	if existing != nil {
		return apperrors.Conflict("ingredient name already existed")
	}

	// 3. Availability follows the stock amount
	req.RefreshAvailability()

	// 4. Save to database
	if err := s.ingredientRepo.Create(req); err != nil {
		return err
	}

	s.wsHub.Publish(ws.EventStockChanged, map[string]interface{}{
		"ingredient_id": req.ID,
		"name":          req.Name,
		"stock_amount":  req.StockAmount,
		"is_available":  req.IsAvailable,
	})

	return nil
}

func (s *ingredientService) Update(id uuid.UUID, req *model.Ingredient) (*model.Ingredient, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperrors.Validation("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	existing, err := s.ingredientRepo.FindActiveByID(id)
	if err != nil {
		return nil, apperrors.NotFound("ingredient not found")
	}

	// Renaming must not collide with another active ingredient
	if req.Name != existing.Name {
		duplicate, _ := s.ingredientRepo.FindActiveByName(req.Name)
		if duplicate != nil {
			return nil, apperrors.Conflict("ingredient name already existed")
		}
	}

	existing.Name = req.Name
	existing.StockAmount = req.StockAmount
	existing.IsAdditional = req.IsAdditional
	existing.RefreshAvailability()

	if err := s.ingredientRepo.Update(existing); err != nil {
		return nil, err
	}

	s.wsHub.Publish(ws.EventStockChanged, map[string]interface{}{
		"ingredient_id": existing.ID,
		"name":          existing.Name,
		"stock_amount":  existing.StockAmount,
		"is_available":  existing.IsAvailable,
	})

	return existing, nil
}

func (s *ingredientService) Delete(id uuid.UUID) error {
	existing, err := s.ingredientRepo.FindActiveByID(id)
	if err != nil {
		return apperrors.NotFound("ingredient not found")
	}

	refs, err := s.recipeRepo.CountPublishedReferences(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return apperrors.InvalidState("ingredient %s is used in published recipe", existing.Name)
	}

	return s.ingredientRepo.SoftDelete(id)
}

func (s *ingredientService) GetAll() ([]model.Ingredient, error) {
	return s.ingredientRepo.FindAllActive()
}

func (s *ingredientService) GetOne(id uuid.UUID) (*model.Ingredient, error) {
	ingredient, err := s.ingredientRepo.FindActiveByID(id)
	if err != nil {
		return nil, apperrors.NotFound("ingredient not found")
	}
	return ingredient, nil
}

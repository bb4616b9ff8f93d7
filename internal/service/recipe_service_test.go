package service

import (
	"testing"

	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/repository"
	"go-restaurant-api/pkg/apperrors"

	"gorm.io/gorm"
)

func newRecipeService(db *gorm.DB) RecipeService {
	return NewRecipeService(repository.NewRecipeRepo(db), repository.NewIngredientRepo(db))
}

func TestCreateRecipeComputesAvailability(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	svc := newRecipeService(db)

	rice := seedIngredient(t, db, "Rice", 10)
	egg := seedIngredient(t, db, "Egg", 9)

	recipe, err := svc.Create(&CreateRecipeRequest{
		Name:  "Fried Rice",
		Price: 15000,
		IngredientDetails: []RecipeIngredientInput{
			{IngredientID: rice.ID, StockUsed: 2},
			{IngredientID: egg.ID, StockUsed: 3},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// min(10/2, 9/3) = min(5, 3) = 3
	if recipe.Available != 3 {
		t.Errorf("available = %d, want 3", recipe.Available)
	}
}

func TestCreateRecipeWithoutIngredientsHasZeroAvailability(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	svc := newRecipeService(db)

	recipe, err := svc.Create(&CreateRecipeRequest{Name: "Water", Price: 1000})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if recipe.Available != 0 {
		t.Errorf("available = %d, want 0", recipe.Available)
	}
}

func TestCreateRecipeRejectsDuplicateName(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	svc := newRecipeService(db)

	if _, err := svc.Create(&CreateRecipeRequest{Name: "Satay", Price: 1000}); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	_, err := svc.Create(&CreateRecipeRequest{Name: "Satay", Price: 2000})
	if !apperrors.IsKind(err, apperrors.KindConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestCreateRecipeRejectsDiscountFlagWithoutPercentage(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	svc := newRecipeService(db)

	_, err := svc.Create(&CreateRecipeRequest{Name: "Satay", Price: 1000, IsDiscount: true})
	if !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestCreateRecipeClearsDiscountWhenFlagOff(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	svc := newRecipeService(db)

	recipe, err := svc.Create(&CreateRecipeRequest{Name: "Satay", Price: 1000, Discount: 30})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if recipe.Discount != 0 {
		t.Errorf("discount = %d, want 0 when is_discount is false", recipe.Discount)
	}
}

func TestCreateRecipeRejectsUnknownIngredient(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	svc := newRecipeService(db)

	ghost := seedIngredient(t, db, "Ghost", 10)
	if err := db.Model(ghost).Update("status", model.StatusDeleted).Error; err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	_, err := svc.Create(&CreateRecipeRequest{
		Name:  "Haunted Soup",
		Price: 1000,
		IngredientDetails: []RecipeIngredientInput{
			{IngredientID: ghost.ID, StockUsed: 1},
		},
	})
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("err = %v, want not_found", err)
	}
}

func TestPublishedRecipeIsFrozen(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	svc := newRecipeService(db)

	created, err := svc.Create(&CreateRecipeRequest{Name: "Satay", Price: 1000})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.TogglePublish(created.ID); err != nil {
		t.Fatalf("TogglePublish: %v", err)
	}

	newPrice := int64(2000)
	_, err = svc.Update(created.ID, &UpdateRecipeRequest{Price: &newPrice})
	if !apperrors.IsKind(err, apperrors.KindInvalidState) {
		t.Errorf("Update err = %v, want invalid_state", err)
	}

	if err := svc.Delete(created.ID); !apperrors.IsKind(err, apperrors.KindInvalidState) {
		t.Errorf("Delete err = %v, want invalid_state", err)
	}

	// Unpublishing reopens the recipe for edits
	if _, err := svc.TogglePublish(created.ID); err != nil {
		t.Fatalf("TogglePublish back: %v", err)
	}
	if _, err := svc.Update(created.ID, &UpdateRecipeRequest{Price: &newPrice}); err != nil {
		t.Errorf("Update after unpublish: %v", err)
	}
}

func TestUpdateRecipeReplacesIngredients(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	svc := newRecipeService(db)

	rice := seedIngredient(t, db, "Rice", 10)
	egg := seedIngredient(t, db, "Egg", 30)

	created, err := svc.Create(&CreateRecipeRequest{
		Name:  "Fried Rice",
		Price: 1000,
		IngredientDetails: []RecipeIngredientInput{
			{IngredientID: rice.ID, StockUsed: 2},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	details := []RecipeIngredientInput{{IngredientID: egg.ID, StockUsed: 3}}
	updated, err := svc.Update(created.ID, &UpdateRecipeRequest{IngredientDetails: &details})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if len(updated.IngredientDetails) != 1 || updated.IngredientDetails[0].IngredientID != egg.ID {
		t.Fatalf("ingredient_details = %+v, want only egg", updated.IngredientDetails)
	}
	if updated.Available != 10 {
		t.Errorf("available = %d, want 10", updated.Available)
	}
}

func TestDeletedRecipeNameCanBeReused(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	svc := newRecipeService(db)

	created, err := svc.Create(&CreateRecipeRequest{Name: "Satay", Price: 1000})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := svc.Create(&CreateRecipeRequest{Name: "Satay", Price: 2000}); err != nil {
		t.Fatalf("Create after delete: %v", err)
	}

	// The deleted recipe stays resolvable for history
	old, err := svc.GetOne(created.ID)
	if err != nil {
		t.Fatalf("GetOne deleted: %v", err)
	}
	if old.Status != model.StatusDeleted {
		t.Errorf("status = %q, want deleted", old.Status)
	}
}

func TestListRecipesFilters(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	svc := newRecipeService(db)

	satay, _ := svc.Create(&CreateRecipeRequest{Name: "Chicken Satay", Price: 1000})
	svc.Create(&CreateRecipeRequest{Name: "Fried Rice", Price: 2000, IsBestSeller: true})
	if _, err := svc.TogglePublish(satay.ID); err != nil {
		t.Fatalf("TogglePublish: %v", err)
	}

	published := true
	recipes, total, err := svc.List(repository.RecipeFilter{Published: &published}, nil, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || recipes[0].Name != "Chicken Satay" {
		t.Errorf("published filter: total = %d, got %+v", total, recipes)
	}

	recipes, total, err = svc.List(repository.RecipeFilter{Name: "rice"}, nil, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || recipes[0].Name != "Fried Rice" {
		t.Errorf("name filter: total = %d, got %+v", total, recipes)
	}
}

package service

import (
	"testing"

	"go-restaurant-api/internal/model"
	"go-restaurant-api/pkg/apperrors"
)

func TestReserveDebitsStock(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	ledger := NewStockLedger()

	flour := seedIngredient(t, db, "Flour", 10)

	needs := StockNeeds{flour.ID: 4}
	if err := ledger.Reserve(db, needs); err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	got := reloadIngredient(t, db, flour)
	if got.StockAmount != 6 {
		t.Errorf("stock_amount = %d, want 6", got.StockAmount)
	}
	if !got.IsAvailable {
		t.Error("is_available = false, want true")
	}
}

func TestReserveFailsWhenRemainingWouldHitZero(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	ledger := NewStockLedger()

	flour := seedIngredient(t, db, "Flour", 4)

	// 4 - 4 = 0 remaining is not enough; stock must stay strictly positive
	err := ledger.Reserve(db, StockNeeds{flour.ID: 4})
	if !apperrors.IsKind(err, apperrors.KindInsufficientStock) {
		t.Fatalf("Reserve err = %v, want insufficient_stock", err)
	}

	got := reloadIngredient(t, db, flour)
	if got.StockAmount != 4 {
		t.Errorf("stock_amount = %d, want 4 (unchanged)", got.StockAmount)
	}
}

func TestReserveAllOrNothing(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	ledger := NewStockLedger()

	flour := seedIngredient(t, db, "Flour", 100)
	egg := seedIngredient(t, db, "Egg", 2)

	err := ledger.Reserve(db, StockNeeds{flour.ID: 10, egg.ID: 5})
	if !apperrors.IsKind(err, apperrors.KindInsufficientStock) {
		t.Fatalf("Reserve err = %v, want insufficient_stock", err)
	}

	// The passing ingredient must not have been debited
	if got := reloadIngredient(t, db, flour); got.StockAmount != 100 {
		t.Errorf("flour stock_amount = %d, want 100", got.StockAmount)
	}
	if got := reloadIngredient(t, db, egg); got.StockAmount != 2 {
		t.Errorf("egg stock_amount = %d, want 2", got.StockAmount)
	}
}

func TestReserveUnknownIngredient(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	ledger := NewStockLedger()

	ghost := seedIngredient(t, db, "Ghost", 10)
	if err := db.Model(ghost).Update("status", model.StatusDeleted).Error; err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	err := ledger.Reserve(db, StockNeeds{ghost.ID: 1})
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("Reserve err = %v, want not_found", err)
	}
}

func TestCreditRestoresStockAndAvailability(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	ledger := NewStockLedger()

	flour := seedIngredient(t, db, "Flour", 5)

	if err := ledger.Reserve(db, StockNeeds{flour.ID: 4}); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if err := ledger.Credit(db, StockNeeds{flour.ID: 4}); err != nil {
		t.Fatalf("Credit: %v", err)
	}

	got := reloadIngredient(t, db, flour)
	if got.StockAmount != 5 {
		t.Errorf("stock_amount = %d, want 5 after round trip", got.StockAmount)
	}
	if !got.IsAvailable {
		t.Error("is_available = false, want true")
	}
}

func TestStockNeedsAddRecipe(t *testing.T) {
	t.Parallel()

	flour := seedIngredient(t, openTestDB(t), "Flour", 1)
	details := []model.IngredientDetail{
		{IngredientID: flour.ID, StockUsed: 3},
	}

	needs := make(StockNeeds)
	needs.AddRecipe(details, 2)
	needs.AddRecipe(details, 1)

	if needs[flour.ID] != 9 {
		t.Errorf("needs = %d, want 9 (3*2 + 3*1)", needs[flour.ID])
	}
}

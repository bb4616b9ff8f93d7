package model

import (
	"testing"

	"github.com/google/uuid"
)

func TestEffectiveUnitPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		price      int64
		isDiscount bool
		discount   int64
		want       int64
	}{
		{"no discount", 10000, false, 0, 10000},
		{"flag off ignores percentage", 10000, false, 50, 10000},
		{"half off", 10000, true, 50, 5000},
		{"truncates toward zero", 10999, true, 15, 9350},
		{"full discount", 10000, true, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Recipe{Price: tt.price, IsDiscount: tt.isDiscount, Discount: tt.discount}
			if got := r.EffectiveUnitPrice(); got != tt.want {
				t.Errorf("EffectiveUnitPrice() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAvailableCount(t *testing.T) {
	t.Parallel()

	rice := uuid.New()
	egg := uuid.New()

	recipe := Recipe{IngredientDetails: []IngredientDetail{
		{IngredientID: rice, StockUsed: 2},
		{IngredientID: egg, StockUsed: 3},
	}}

	// min(10/2, 9/3) = 3
	if got := recipe.AvailableCount(map[uuid.UUID]int64{rice: 10, egg: 9}); got != 3 {
		t.Errorf("AvailableCount = %d, want 3", got)
	}

	// A missing ingredient counts as zero stock
	if got := recipe.AvailableCount(map[uuid.UUID]int64{rice: 10}); got != 0 {
		t.Errorf("AvailableCount with missing ingredient = %d, want 0", got)
	}

	// Zero stock on any term yields zero
	if got := recipe.AvailableCount(map[uuid.UUID]int64{rice: 10, egg: 0}); got != 0 {
		t.Errorf("AvailableCount with empty stock = %d, want 0", got)
	}

	empty := Recipe{}
	if got := empty.AvailableCount(nil); got != 0 {
		t.Errorf("AvailableCount with no ingredients = %d, want 0", got)
	}
}

func TestIngredientRefreshAvailability(t *testing.T) {
	t.Parallel()

	ingredient := Ingredient{StockAmount: 1}
	ingredient.RefreshAvailability()
	if !ingredient.IsAvailable {
		t.Error("is_available = false, want true for stock 1")
	}

	ingredient.StockAmount = 0
	ingredient.RefreshAvailability()
	if ingredient.IsAvailable {
		t.Error("is_available = true, want false for stock 0")
	}
}

package service

import (
	"go-restaurant-api/internal/model"
	"go-restaurant-api/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockNeeds aggregates the stock units an operation consumes per ingredient,
// summed across every menu line before any check or debit runs.
type StockNeeds map[uuid.UUID]int64

// AddRecipe accumulates stock_used * amount for every ingredient of a recipe.
func (n StockNeeds) AddRecipe(details []model.IngredientDetail, amount int64) {
	for _, detail := range details {
		n[detail.IngredientID] += detail.StockUsed * amount
	}
}

// StockLedger performs stock checks and mutations inside a caller-supplied
// database transaction, so reconciliation commits or rolls back as one unit
// with the order that triggered it.
type StockLedger struct{}

func NewStockLedger() *StockLedger {
	return &StockLedger{}
}

// CheckAvailability returns stock_amount - requested without mutating.
func (l *StockLedger) CheckAvailability(tx *gorm.DB, ingredientID uuid.UUID, requested int64) (int64, error) {
	var ingredient model.Ingredient
	if err := tx.First(&ingredient, "id = ? AND status = ?", ingredientID, model.StatusActive).Error; err != nil {
		return 0, apperrors.NotFound("ingredient %s not found", ingredientID)
	}
	return ingredient.StockAmount - requested, nil
}

// Reserve checks every ingredient before applying any debit: all remaining
// values are computed first, and only if every one stays strictly positive
// does the debit step run. The debit itself is a guarded decrement, so a
// concurrent reservation that slipped between check and apply fails here and
// rolls the whole transaction back instead of driving stock to zero or below.
func (l *StockLedger) Reserve(tx *gorm.DB, needs StockNeeds) error {
	if len(needs) == 0 {
		return nil
	}

	for ingredientID, units := range needs {
		remaining, err := l.CheckAvailability(tx, ingredientID, units)
		if err != nil {
			return err
		}
		if remaining <= 0 {
			return apperrors.InsufficientStock("your request amount is more than available stock")
		}
	}

	return l.Debit(tx, needs)
}

// Debit subtracts the needed units per ingredient, recomputing is_available
// in the same statement. The stock_amount > units guard is the
// compare-and-swap that keeps stock strictly positive under concurrency.
func (l *StockLedger) Debit(tx *gorm.DB, needs StockNeeds) error {
	for ingredientID, units := range needs {
		if units <= 0 {
			continue
		}
		res := tx.Model(&model.Ingredient{}).
			Where("id = ? AND status = ? AND stock_amount > ?", ingredientID, model.StatusActive, units).
			Updates(map[string]interface{}{
				"stock_amount": gorm.Expr("stock_amount - ?", units),
				"is_available": gorm.Expr("stock_amount - ? > 0", units),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.InsufficientStock("your request amount is more than available stock")
		}
	}
	return nil
}

// Credit is the inverse of Debit, used on order reduction and cancellation.
// Ingredients deleted since the order was created are skipped.
func (l *StockLedger) Credit(tx *gorm.DB, needs StockNeeds) error {
	for ingredientID, units := range needs {
		if units <= 0 {
			continue
		}
		err := tx.Model(&model.Ingredient{}).
			Where("id = ?", ingredientID).
			Updates(map[string]interface{}{
				"stock_amount": gorm.Expr("stock_amount + ?", units),
				"is_available": gorm.Expr("stock_amount + ? > 0", units),
			}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

package service

import (
	"fmt"
	"time"

	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/repository"
	"go-restaurant-api/internal/ws"
	"go-restaurant-api/pkg/apperrors"
	"go-restaurant-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Actor is the resolved caller identity, passed explicitly into every
// operation instead of living in ambient request state.
type Actor struct {
	UserID   uuid.UUID
	UserType string
}

// MenuInput is one requested order line. ID is set when the caller refers to
// an existing line of the transaction; lines without an id (or with an id the
// transaction does not know) are treated as additions.
type MenuInput struct {
	ID       *uuid.UUID `json:"id,omitempty"`
	RecipeID uuid.UUID  `json:"recipe_id" validate:"uuid_required"`
	Amount   int        `json:"amount" validate:"required,gte=1"`
	Note     string     `json:"note"`
}

type CreateTransactionRequest struct {
	Menus []MenuInput `json:"menus" validate:"required,min=1,dive"`
}

type UpdateTransactionRequest struct {
	Menus             *[]MenuInput             `json:"menus,omitempty"`
	TransactionStatus *model.TransactionStatus `json:"transaction_status,omitempty"`
	PaymentMethod     *string                  `json:"payment_method,omitempty"`
}

// TransactionUpdateResult carries the updated order and the human-readable
// status message keyed to the resulting transaction_status.
type TransactionUpdateResult struct {
	Transaction *model.Transaction `json:"transaction"`
	Message     string             `json:"message"`
}

type TransactionService interface {
	Create(req *CreateTransactionRequest, actor Actor) (*model.Transaction, error)
	Update(id uuid.UUID, req *UpdateTransactionRequest, actor Actor) (*TransactionUpdateResult, error)
	Delete(id uuid.UUID, actor Actor) error
	GetOne(id uuid.UUID) (*model.Transaction, error)
	List(filter repository.TransactionFilter, sorting *repository.TransactionSorting, pagination *repository.Pagination) ([]model.Transaction, int64, error)
}

type transactionService struct {
	txRepo repository.TransactionRepository
	ledger *StockLedger
	db     *gorm.DB
	wsHub  *ws.Hub
}

func NewTransactionService(txRepo repository.TransactionRepository, ledger *StockLedger, db *gorm.DB, hub *ws.Hub) TransactionService {
	return &transactionService{
		txRepo: txRepo,
		ledger: ledger,
		db:     db,
		wsHub:  hub,
	}
}

// loadRecipe fetches a recipe with its ingredient list inside the current
// database transaction. Orders keep referencing soft-deleted recipes, so
// stock credits resolve across all lifecycle states; reservations for new
// lines go through loadActiveRecipe instead.
func (s *transactionService) loadRecipe(tx *gorm.DB, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	err := tx.Preload("IngredientDetails", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&recipe, "id = ?", id).Error
	if err != nil {
		return nil, apperrors.NotFound("recipe %s not found", id)
	}
	return &recipe, nil
}

func (s *transactionService) loadActiveRecipe(tx *gorm.DB, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	err := tx.Preload("IngredientDetails", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&recipe, "id = ? AND status = ?", id, model.StatusActive).Error
	if err != nil {
		return nil, apperrors.NotFound("recipe %s not found", id)
	}
	return &recipe, nil
}

func (s *transactionService) Create(req *CreateTransactionRequest, actor Actor) (*model.Transaction, error) {
	if actor.UserType != model.TypeRestaurantAdmin {
		return nil, apperrors.PermissionDenied("only a Restaurant Admin can create transactions")
	}

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperrors.Validation("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	var created *model.Transaction

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Gather every line's ingredient requirements before touching stock,
		// so the whole creation is one check-then-apply unit.
		needs := make(StockNeeds)
		menus := make([]model.Menu, 0, len(req.Menus))
		var total int64

		for i, input := range req.Menus {
			recipe, err := s.loadActiveRecipe(tx, input.RecipeID)
			if err != nil {
				return err
			}

			needs.AddRecipe(recipe.IngredientDetails, int64(input.Amount))

			lineTotal := recipe.EffectiveUnitPrice() * int64(input.Amount)
			total += lineTotal
			menus = append(menus, model.Menu{
				RecipeID: recipe.ID,
				Amount:   input.Amount,
				Note:     input.Note,
				Total:    lineTotal,
				Position: i,
			})
		}

		if err := s.ledger.Reserve(tx, needs); err != nil {
			return err
		}

		queueNumber, err := s.txRepo.NextQueueNumber(tx, time.Now().UTC().Format("2006-01-02"))
		if err != nil {
			return err
		}

		transaction := &model.Transaction{
			Menus:             menus,
			TotalPrice:        total,
			TransactionStatus: model.TransactionInCart,
			QueueNumber:       queueNumber,
		}
		if err := s.txRepo.Create(tx, transaction); err != nil {
			return err
		}

		created = transaction
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish(ws.EventOrderCreated, map[string]interface{}{
		"transaction_id": created.ID,
		"queue_number":   created.QueueNumber,
		"total_price":    created.TotalPrice,
	})

	return s.txRepo.FindActiveByID(created.ID)
}

func (s *transactionService) Update(id uuid.UUID, req *UpdateTransactionRequest, actor Actor) (*TransactionUpdateResult, error) {
	switch actor.UserType {
	case model.TypeRestaurantAdmin:
		return s.updateAsRestaurantAdmin(id, req)
	case model.TypeCashier:
		return s.updateAsCashier(id, req, actor)
	default:
		return nil, apperrors.PermissionDenied("user type '%s' may not update transactions", actor.UserType)
	}
}

func (s *transactionService) updateAsRestaurantAdmin(id uuid.UUID, req *UpdateTransactionRequest) (*TransactionUpdateResult, error) {
	var result *TransactionUpdateResult
	var checkedOut bool

	err := s.db.Transaction(func(tx *gorm.DB) error {
		transaction, err := s.txRepo.FindActiveByIDForUpdate(tx, id)
		if err != nil {
			return apperrors.NotFound("transaction not found")
		}

		if transaction.TransactionStatus == model.TransactionPaid {
			return apperrors.InvalidState("transaction is already paid")
		}

		if req.PaymentMethod != nil {
			return apperrors.PermissionDenied("only a Cashier can set payment_method")
		}

		if req.TransactionStatus != nil {
			switch *req.TransactionStatus {
			case model.TransactionPaid:
				return apperrors.PermissionDenied("only a Cashier can finalize payment")
			case model.TransactionPending:
				checkedOut = transaction.TransactionStatus == model.TransactionInCart
				transaction.TransactionStatus = model.TransactionPending
			case model.TransactionInCart:
				// The state machine only moves forward
				if transaction.TransactionStatus != model.TransactionInCart {
					return apperrors.InvalidState("transaction already left the cart")
				}
			default:
				return apperrors.Validation("unknown transaction_status '%s'", *req.TransactionStatus)
			}
		}

		if req.Menus != nil {
			if err := s.reconcileMenus(tx, transaction, *req.Menus); err != nil {
				return err
			}
		}

		if err := s.txRepo.Save(tx, transaction); err != nil {
			return err
		}

		message := "cart updated"
		if transaction.TransactionStatus == model.TransactionPending {
			message = fmt.Sprintf("checkout success, queue number %d", transaction.QueueNumber)
		}
		result = &TransactionUpdateResult{Transaction: transaction, Message: message}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if checkedOut {
		s.wsHub.Publish(ws.EventOrderCheckedOut, map[string]interface{}{
			"transaction_id": result.Transaction.ID,
			"queue_number":   result.Transaction.QueueNumber,
		})
	}

	return result, nil
}

func (s *transactionService) updateAsCashier(id uuid.UUID, req *UpdateTransactionRequest, actor Actor) (*TransactionUpdateResult, error) {
	var result *TransactionUpdateResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		transaction, err := s.txRepo.FindActiveByIDForUpdate(tx, id)
		if err != nil {
			return apperrors.NotFound("transaction not found")
		}

		if transaction.TransactionStatus == model.TransactionPaid {
			return apperrors.InvalidState("transaction is already paid")
		}
		if req.Menus != nil {
			return apperrors.PermissionDenied("a Cashier may not modify menus")
		}
		if req.TransactionStatus == nil || *req.TransactionStatus != model.TransactionPaid {
			return apperrors.InvalidState("a Cashier may only set transaction_status to paid")
		}
		if req.PaymentMethod == nil || *req.PaymentMethod == "" {
			return apperrors.Validation("payment_method is required")
		}

		cashierID := actor.UserID
		transaction.TransactionStatus = model.TransactionPaid
		transaction.PaymentMethod = *req.PaymentMethod
		transaction.CashierID = &cashierID

		if err := s.txRepo.Save(tx, transaction); err != nil {
			return err
		}

		result = &TransactionUpdateResult{Transaction: transaction, Message: "transaction successful"}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish(ws.EventOrderPaid, map[string]interface{}{
		"transaction_id": result.Transaction.ID,
		"queue_number":   result.Transaction.QueueNumber,
		"total_price":    result.Transaction.TotalPrice,
	})

	return result, nil
}

// reconcileMenus diffs the stored menu list against the requested one by menu
// line id and applies the resulting changeset uniformly: additions reserve
// their full requirements, removals credit theirs back, amount changes move
// only the delta. Per-ingredient deltas are netted before any stock check so
// the whole update is a single check-then-apply unit.
func (s *transactionService) reconcileMenus(tx *gorm.DB, transaction *model.Transaction, inputs []MenuInput) error {
	oldByID := make(map[uuid.UUID]*model.Menu, len(transaction.Menus))
	for i := range transaction.Menus {
		oldByID[transaction.Menus[i].ID] = &transaction.Menus[i]
	}

	credits := make(StockNeeds)
	debits := make(StockNeeds)
	seen := make(map[uuid.UUID]bool, len(inputs))
	newMenus := make([]model.Menu, 0, len(inputs))
	var total int64

	for i, input := range inputs {
		if input.Amount < 1 {
			return apperrors.Validation("menu amount must be at least 1")
		}

		var old *model.Menu
		if input.ID != nil {
			if m, ok := oldByID[*input.ID]; ok && m.RecipeID == input.RecipeID {
				old = m
				seen[*input.ID] = true
			}
		}

		if old == nil {
			// Added line: reserve its full requirements
			recipe, err := s.loadActiveRecipe(tx, input.RecipeID)
			if err != nil {
				return err
			}
			debits.AddRecipe(recipe.IngredientDetails, int64(input.Amount))
			lineTotal := recipe.EffectiveUnitPrice() * int64(input.Amount)
			total += lineTotal
			newMenus = append(newMenus, model.Menu{
				RecipeID: input.RecipeID,
				Amount:   input.Amount,
				Note:     input.Note,
				Total:    lineTotal,
				Position: i,
			})
			continue
		}

		lineTotal := old.Total
		if delta := input.Amount - old.Amount; delta != 0 {
			recipe, err := s.loadRecipe(tx, old.RecipeID)
			if err != nil {
				return err
			}
			if delta > 0 {
				debits.AddRecipe(recipe.IngredientDetails, int64(delta))
			} else {
				credits.AddRecipe(recipe.IngredientDetails, int64(-delta))
			}
			lineTotal = recipe.EffectiveUnitPrice() * int64(input.Amount)
		}
		total += lineTotal
		newMenus = append(newMenus, model.Menu{
			ID:       old.ID,
			RecipeID: old.RecipeID,
			Amount:   input.Amount,
			Note:     input.Note,
			Total:    lineTotal,
			Position: i,
		})
	}

	// Removed lines: credit their full requirements back
	for oldID, old := range oldByID {
		if seen[oldID] {
			continue
		}
		recipe, err := s.loadRecipe(tx, old.RecipeID)
		if err != nil {
			// Recipe rows are never hard deleted, so this only happens on
			// corrupted references; there is nothing to credit then.
			continue
		}
		credits.AddRecipe(recipe.IngredientDetails, int64(old.Amount))
	}

	// Net both sides per ingredient, then credit before reserving so freed
	// stock is visible to the availability check.
	for ingredientID, creditUnits := range credits {
		debitUnits := debits[ingredientID]
		if debitUnits == 0 {
			continue
		}
		switch {
		case debitUnits > creditUnits:
			debits[ingredientID] = debitUnits - creditUnits
			delete(credits, ingredientID)
		case debitUnits < creditUnits:
			credits[ingredientID] = creditUnits - debitUnits
			delete(debits, ingredientID)
		default:
			delete(credits, ingredientID)
			delete(debits, ingredientID)
		}
	}

	if err := s.ledger.Credit(tx, credits); err != nil {
		return err
	}
	if err := s.ledger.Reserve(tx, debits); err != nil {
		return err
	}

	if err := s.txRepo.ReplaceMenus(tx, transaction.ID, newMenus); err != nil {
		return err
	}
	transaction.Menus = newMenus
	transaction.TotalPrice = total
	return nil
}

func (s *transactionService) Delete(id uuid.UUID, actor Actor) error {
	if actor.UserType != model.TypeRestaurantAdmin && actor.UserType != model.TypeCashier {
		return apperrors.PermissionDenied("user type '%s' may not delete transactions", actor.UserType)
	}

	var queueNumber int

	err := s.db.Transaction(func(tx *gorm.DB) error {
		transaction, err := s.txRepo.FindActiveByIDForUpdate(tx, id)
		if err != nil {
			return apperrors.NotFound("transaction not found")
		}

		// Stock returns only while the sale is not final
		if transaction.TransactionStatus != model.TransactionPaid {
			needs := make(StockNeeds)
			for _, menu := range transaction.Menus {
				recipe, err := s.loadRecipe(tx, menu.RecipeID)
				if err != nil {
					continue
				}
				needs.AddRecipe(recipe.IngredientDetails, int64(menu.Amount))
			}
			if err := s.ledger.Credit(tx, needs); err != nil {
				return err
			}
		}

		queueNumber = transaction.QueueNumber
		return s.txRepo.SoftDelete(tx, id)
	})
	if err != nil {
		return err
	}

	s.wsHub.Publish(ws.EventOrderDeleted, map[string]interface{}{
		"transaction_id": id,
		"queue_number":   queueNumber,
	})

	return nil
}

func (s *transactionService) GetOne(id uuid.UUID) (*model.Transaction, error) {
	transaction, err := s.txRepo.FindActiveByID(id)
	if err != nil {
		return nil, apperrors.NotFound("transaction not found")
	}
	return transaction, nil
}

func (s *transactionService) List(filter repository.TransactionFilter, sorting *repository.TransactionSorting, pagination *repository.Pagination) ([]model.Transaction, int64, error) {
	return s.txRepo.List(filter, sorting, pagination)
}

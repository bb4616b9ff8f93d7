package policy

import (
	"strings"

	"go-restaurant-api/internal/model"
)

// Operation names every gated entry point. The capability table below is the
// single place role checks live; handlers and services never compare role
// strings on their own except for the transaction update branch, which is
// open here and narrowed per actor inside the service.
type Operation string

const (
	OpIngredientCreate Operation = "ingredient:create"
	OpIngredientUpdate Operation = "ingredient:update"
	OpIngredientDelete Operation = "ingredient:delete"

	OpRecipeCreate  Operation = "recipe:create"
	OpRecipeUpdate  Operation = "recipe:update"
	OpRecipeDelete  Operation = "recipe:delete"
	OpRecipePublish Operation = "recipe:publish"

	OpTransactionCreate Operation = "transaction:create"
	OpTransactionUpdate Operation = "transaction:update"
	OpTransactionDelete Operation = "transaction:delete"

	OpUserCreate Operation = "user:create"
	OpUserUpdate Operation = "user:update"
	OpUserDelete Operation = "user:delete"

	OpDashboardView Operation = "dashboard:view"
)

var anyRole = []string{
	model.TypeGeneralAdmin,
	model.TypeStockAdmin,
	model.TypeRestaurantAdmin,
	model.TypeCashier,
}

var capabilities = map[Operation][]string{
	OpIngredientCreate: {model.TypeStockAdmin, model.TypeGeneralAdmin},
	OpIngredientUpdate: {model.TypeStockAdmin, model.TypeGeneralAdmin},
	OpIngredientDelete: {model.TypeStockAdmin, model.TypeGeneralAdmin},

	OpRecipeCreate:  {model.TypeGeneralAdmin, model.TypeStockAdmin},
	OpRecipeUpdate:  {model.TypeGeneralAdmin, model.TypeStockAdmin},
	OpRecipeDelete:  {model.TypeGeneralAdmin, model.TypeStockAdmin},
	OpRecipePublish: {model.TypeGeneralAdmin, model.TypeStockAdmin},

	OpTransactionCreate: {model.TypeRestaurantAdmin},
	// Coarse-grained entry is open to every role; the service enforces the
	// actor-specific permitted fields.
	OpTransactionUpdate: anyRole,
	OpTransactionDelete: {model.TypeRestaurantAdmin, model.TypeCashier},

	OpUserCreate: {model.TypeGeneralAdmin},
	OpUserUpdate: {model.TypeGeneralAdmin},
	// Anyone may delete users; deleting a General Admin account is rejected
	// by the user service regardless of caller.
	OpUserDelete: anyRole,

	OpDashboardView: {model.TypeGeneralAdmin},
}

// Allows reports whether the given user type may invoke the operation.
func Allows(op Operation, userType string) bool {
	for _, allowed := range capabilities[op] {
		if allowed == userType {
			return true
		}
	}
	return false
}

// AllowedRoles returns the permitted role names, for error messages.
func AllowedRoles(op Operation) string {
	return strings.Join(capabilities[op], ", ")
}

package model

// UserType is a role in the closed set the authorization logic recognizes.
// The permission matrix is data consumed by clients to toggle UI affordances;
// server-side gating works on the type name alone.
type UserType struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Name          string        `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	AppPermission AppPermission `gorm:"serializer:json" json:"app_permission"`
	Status        Status        `gorm:"type:varchar(10);not null;default:'active'" json:"status"`
}

// User type names as constants
const (
	TypeGeneralAdmin    = "General Admin"
	TypeStockAdmin      = "Stock Admin"
	TypeRestaurantAdmin = "Restaurant Admin"
	TypeCashier         = "Cashier"
)

type CrudPermission struct {
	View      bool `json:"view"`
	Edit      bool `json:"edit"`
	AddButton bool `json:"add_button"`
	Delete    bool `json:"delete"`
}

type RecipePermission struct {
	CrudPermission
	Publish bool `json:"publish"`
}

type TransactionViewPermission struct {
	History bool `json:"history"`
	Cart    bool `json:"cart"`
}

type TransactionPermission struct {
	View      TransactionViewPermission `json:"view"`
	Edit      bool                      `json:"edit"`
	AddButton bool                      `json:"add_button"`
	Delete    bool                      `json:"delete"`
}

type AppPermission struct {
	Homepage     bool                  `json:"homepage"`
	Ingredients  CrudPermission        `json:"ingredients"`
	Recipes      RecipePermission      `json:"recipes"`
	Transactions TransactionPermission `json:"transactions"`
	Users        CrudPermission        `json:"users"`
}

func fullCrud() CrudPermission {
	return CrudPermission{View: true, Edit: true, AddButton: true, Delete: true}
}

// DefaultUserTypes defines the seeded roles
var DefaultUserTypes = []UserType{
	{
		Name: TypeGeneralAdmin,
		AppPermission: AppPermission{
			Homepage:    true,
			Ingredients: fullCrud(),
			Recipes:     RecipePermission{CrudPermission: fullCrud(), Publish: true},
			Transactions: TransactionPermission{
				View: TransactionViewPermission{History: true, Cart: true},
				Edit: true, AddButton: false, Delete: false,
			},
			Users: fullCrud(),
		},
	},
	{
		Name: TypeStockAdmin,
		AppPermission: AppPermission{
			Homepage:    true,
			Ingredients: fullCrud(),
			Recipes:     RecipePermission{CrudPermission: fullCrud(), Publish: true},
		},
	},
	{
		Name: TypeRestaurantAdmin,
		AppPermission: AppPermission{
			Homepage:    true,
			Ingredients: CrudPermission{View: true},
			Recipes:     RecipePermission{CrudPermission: CrudPermission{View: true}},
			Transactions: TransactionPermission{
				View: TransactionViewPermission{History: true, Cart: true},
				Edit: true, AddButton: true, Delete: true,
			},
		},
	},
	{
		Name: TypeCashier,
		AppPermission: AppPermission{
			Homepage: true,
			Transactions: TransactionPermission{
				View: TransactionViewPermission{History: true, Cart: true},
				Edit: true, AddButton: false, Delete: true,
			},
		},
	},
}

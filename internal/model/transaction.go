package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionStatus is the order state machine: in_cart -> pending -> paid.
// Soft deletion (BaseModel.Status) is orthogonal to it.
type TransactionStatus string

const (
	TransactionInCart  TransactionStatus = "in_cart"
	TransactionPending TransactionStatus = "pending"
	TransactionPaid    TransactionStatus = "paid"
)

type Transaction struct {
	BaseModel
	Menus []Menu `gorm:"foreignKey:TransactionID" json:"menus"`
	// Invariant: TotalPrice == sum over menus of effective unit price * amount
	TotalPrice        int64             `gorm:"not null;default:0" json:"total_price"`
	TransactionStatus TransactionStatus `gorm:"type:varchar(10);not null;default:'in_cart'" json:"transaction_status"`
	CashierID         *uuid.UUID        `gorm:"type:uuid" json:"cashier_id,omitempty"`
	Cashier           *User             `gorm:"foreignKey:CashierID" json:"cashier,omitempty"`
	PaymentMethod     string            `gorm:"type:varchar(50)" json:"payment_method"`
	// Assigned once at creation from the per-day counter, never reassigned
	QueueNumber int `gorm:"not null;default:0" json:"queue_number"`
}

// Menu is one order line. It has no identity outside its transaction.
type Menu struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	RecipeID      uuid.UUID `gorm:"type:uuid;not null" json:"recipe_id" validate:"uuid_required"`
	Recipe        *Recipe   `gorm:"foreignKey:RecipeID" json:"recipe,omitempty" validate:"-"`
	Amount        int       `gorm:"not null" json:"amount" validate:"required,gte=1"`
	Note          string    `gorm:"type:text" json:"note"`
	Total         int64     `gorm:"not null;default:0" json:"total"` // line total snapshot
	Position      int       `gorm:"not null;default:0" json:"-"`
}

func (m *Menu) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}

// QueueCounter backs atomic queue number assignment, one row per UTC day.
type QueueCounter struct {
	Day   string `gorm:"type:varchar(10);primaryKey" json:"day"` // YYYY-MM-DD
	Value int    `gorm:"not null" json:"value"`
}

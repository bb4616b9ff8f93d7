package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the lifecycle flag shared by every aggregate. Rows are never hard
// deleted: transaction history must still resolve recipes and ingredients
// that were removed from the menu.
type Status string

const (
	StatusActive  Status = "active"
	StatusDeleted Status = "deleted"
)

// BaseModel handles ID (UUID), timestamps, and the lifecycle flag
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Status    Status    `gorm:"type:varchar(10);not null;default:'active';index" json:"status"`
}

// Hook Before Create to generate the UUID and default the lifecycle flag
func (base *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	if base.Status == "" {
		base.Status = StatusActive
	}
	return
}

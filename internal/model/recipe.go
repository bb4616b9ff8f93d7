package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	BaseModel
	Name         string `gorm:"type:varchar(255);not null;index" json:"name" validate:"required"`
	Price        int64  `gorm:"not null;default:0" json:"price" validate:"gte=0"`
	IsDiscount   bool   `gorm:"not null;default:false" json:"is_discount"`
	Discount     int64  `gorm:"not null;default:0" json:"discount" validate:"gte=0,lte=100"`
	IsPublished  bool   `gorm:"not null;default:false" json:"is_published"`
	IsBestSeller bool   `gorm:"not null;default:false" json:"is_best_seller"`

	// Owned ingredient list, ordered by Position
	IngredientDetails []IngredientDetail `gorm:"foreignKey:RecipeID" json:"ingredient_details"`
}

// IngredientDetail links one ingredient to a recipe with the stock units a
// single portion consumes.
type IngredientDetail struct {
	ID           uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"-"`
	IngredientID uuid.UUID   `gorm:"type:uuid;not null" json:"ingredient_id" validate:"uuid_required"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty" validate:"-"`
	StockUsed    int64       `gorm:"not null" json:"stock_used" validate:"required,gt=0"`
	Position     int         `gorm:"not null;default:0" json:"-"`
}

func (d *IngredientDetail) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}

// EffectiveUnitPrice applies the discount percentage with integer truncation.
func (r *Recipe) EffectiveUnitPrice() int64 {
	if r.IsDiscount {
		return r.Price - r.Price*r.Discount/100
	}
	return r.Price
}

// AvailableCount returns how many portions the current ingredient stocks can
// produce: floor of the minimum stock_amount/stock_used ratio, or 0 when the
// ingredient list is empty or any term is not positive.
func (r *Recipe) AvailableCount(stocks map[uuid.UUID]int64) int64 {
	if len(r.IngredientDetails) == 0 {
		return 0
	}
	min := int64(-1)
	for _, detail := range r.IngredientDetails {
		stock := stocks[detail.IngredientID]
		if stock <= 0 || detail.StockUsed <= 0 {
			return 0
		}
		portions := stock / detail.StockUsed
		if min < 0 || portions < min {
			min = portions
		}
	}
	if min < 0 {
		return 0
	}
	return min
}

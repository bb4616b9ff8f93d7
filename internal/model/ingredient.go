package model

type Ingredient struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null;index" json:"name" validate:"required"`
	StockAmount int64  `gorm:"not null;default:0" json:"stock_amount" validate:"gte=0"`
	// Invariant: IsAvailable == StockAmount > 0, recomputed on every stock
	// mutation.
	IsAvailable  bool `gorm:"not null;default:false" json:"is_available"`
	IsAdditional bool `gorm:"not null;default:false" json:"is_additional"`
}

// RefreshAvailability recomputes the availability flag from the stock amount.
func (i *Ingredient) RefreshAvailability() {
	i.IsAvailable = i.StockAmount > 0
}

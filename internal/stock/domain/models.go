package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Stock is an inventory item. It is low when quantity <= threshold.
type Stock struct {
	ID        snowflake.ID    `json:"id" gorm:"primaryKey"`
	Name      string          `json:"name" gorm:"type:text;not null"`
	SKU       string          `json:"sku" gorm:"type:varchar(64);index"`
	Unit      string          `json:"unit" gorm:"type:varchar(32)"`
	Quantity  decimal.Decimal `json:"quantity" gorm:"type:numeric(14,3);not null"`
	Threshold decimal.Decimal `json:"threshold" gorm:"type:numeric(14,3);not null"`
	Notes     string          `json:"notes" gorm:"type:text"`
	CreatedAt time.Time       `json:"createdAt" gorm:"not null"`
	UpdatedAt time.Time       `json:"updatedAt" gorm:"not null"`
	DeletedAt *time.Time      `json:"deletedAt"`
}

func (Stock) TableName() string { return "stocks" }

func (s Stock) Low() bool {
	return s.Quantity.LessThanOrEqual(s.Threshold)
}

func (s Stock) Deleted() bool {
	return s.DeletedAt != nil
}

package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/hoteldesk/internal/pricing"
	"gorm.io/datatypes"
)

// Service is a bookable hotel service such as a hall, room or catering
// package.
type Service struct {
	ID           snowflake.ID                 `json:"id" gorm:"primaryKey"`
	Name         string                       `json:"name" gorm:"type:text;not null"`
	Slug         string                       `json:"slug" gorm:"type:text;not null;index"`
	Description  string                       `json:"description" gorm:"type:text"`
	AllowOverlap bool                         `json:"allowOverlap" gorm:"not null;default:false"`
	Variants     datatypes.JSONSlice[Variant] `json:"variants" gorm:"not null"`
	CreatedAt    time.Time                    `json:"createdAt" gorm:"not null"`
	UpdatedAt    time.Time                    `json:"updatedAt" gorm:"not null"`
	DeletedAt    *time.Time                   `json:"deletedAt" gorm:"index"`
}

func (Service) TableName() string { return "services" }

func (s Service) Deleted() bool { return s.DeletedAt != nil }

type Variant struct {
	Name   string  `json:"name"`
	Prices []Price `json:"prices"`
}

type Price struct {
	Type  pricing.PriceType `json:"type"`
	Price decimal.Decimal   `json:"price"`
}

package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/hoteldesk/internal/pricing"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Booking reserves one or more services for the half-open range
// [StartAt, EndAt).
type Booking struct {
	ID             snowflake.ID              `json:"id" gorm:"primaryKey"`
	CustomerName   string                    `json:"customerName" gorm:"type:text;not null"`
	CustomerPhone  string                    `json:"customerPhone" gorm:"type:text"`
	CustomerEmail  string                    `json:"customerEmail" gorm:"type:text"`
	EventName      string                    `json:"eventName" gorm:"type:text"`
	Notes          string                    `json:"notes" gorm:"type:text"`
	StartAt        time.Time                 `json:"startAt" gorm:"not null;index:idx_bookings_range,priority:1"`
	EndAt          time.Time                 `json:"endAt" gorm:"not null;index:idx_bookings_range,priority:2"`
	Status         Status                    `json:"status" gorm:"type:varchar(16);not null;default:pending;index"`
	Items          datatypes.JSONSlice[Item] `json:"items" gorm:"not null"`
	Subtotal       decimal.Decimal           `json:"subtotal" gorm:"type:numeric(14,2);not null;default:0"`
	DiscountAmount decimal.Decimal           `json:"discountAmount" gorm:"type:numeric(14,2);not null;default:0"`
	Total          decimal.Decimal           `json:"total" gorm:"type:numeric(14,2);not null;default:0"`
	CreatedBy      string                    `json:"createdBy" gorm:"type:varchar(64)"`
	CreatedAt      time.Time                 `json:"createdAt" gorm:"not null"`
	UpdatedAt      time.Time                 `json:"updatedAt" gorm:"not null"`
	DeletedAt      *time.Time                `json:"deletedAt" gorm:"index"`
}

func (Booking) TableName() string { return "bookings" }

func (b Booking) Deleted() bool { return b.DeletedAt != nil }

// Item is a line of a booking. Service name, overlap flag and price inputs
// are copied from the catalog when the line is written.
type Item struct {
	ServiceID      snowflake.ID      `json:"serviceId"`
	ServiceName    string            `json:"serviceName"`
	VariantName    string            `json:"variantName,omitempty"`
	AllowOverlap   bool              `json:"allowOverlap"`
	PriceType      pricing.PriceType `json:"priceType"`
	UnitPrice      decimal.Decimal   `json:"unitPrice"`
	Units          decimal.Decimal   `json:"units"`
	CustomPrice    decimal.Decimal   `json:"customPrice"`
	DiscountAmount decimal.Decimal   `json:"discountAmount"`
	Total          decimal.Decimal   `json:"total"`
}

func (i Item) Line() pricing.Line {
	return pricing.Line{
		Type:        i.PriceType,
		UnitPrice:   i.UnitPrice,
		Units:       i.Units,
		CustomPrice: i.CustomPrice,
		Discount:    i.DiscountAmount,
	}
}

// ExclusiveServiceIDs returns the distinct services of the booking that may
// not be double booked.
func ExclusiveServiceIDs(items []Item) []snowflake.ID {
	seen := make(map[snowflake.ID]struct{}, len(items))
	ids := make([]snowflake.ID, 0, len(items))
	for _, item := range items {
		if item.AllowOverlap {
			continue
		}
		if _, ok := seen[item.ServiceID]; ok {
			continue
		}
		seen[item.ServiceID] = struct{}{}
		ids = append(ids, item.ServiceID)
	}
	return ids
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share an instant.
// Touching ranges do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

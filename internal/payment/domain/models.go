package domain

import (
	"database/sql/driver"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type Kind string

const (
	KindOneTime   Kind = "one_time"
	KindRecurring Kind = "recurring"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

type Direction string

const (
	DirectionReceived Direction = "received"
	DirectionSent     Direction = "sent"
)

type LogType string

const (
	LogTypeIncome  LogType = "income"
	LogTypeExpense LogType = "expense"
)

type Mode string

const (
	ModeCash         Mode = "cash"
	ModeBankTransfer Mode = "bank_transfer"
	ModeCard         Mode = "card"
	ModeOther        Mode = "other"
)

type BookingPaymentType string

const (
	BookingPaymentReceipt BookingPaymentType = "receipt"
	BookingPaymentRefund  BookingPaymentType = "refund"
)

// Payment is an expected cash flow, either once or on a schedule.
type Payment struct {
	ID          snowflake.ID    `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"type:text;not null"`
	Description string          `json:"description" gorm:"type:text"`
	Kind        Kind            `json:"kind" gorm:"type:varchar(16);not null;index"`
	Frequency   Frequency       `json:"frequency,omitempty" gorm:"type:varchar(16)"`
	Direction   Direction       `json:"direction" gorm:"type:varchar(16);not null;index"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric(14,2);not null"`
	StartDate   time.Time       `json:"startDate" gorm:"not null"`
	EndDate     *time.Time      `json:"endDate"`
	CreatedAt   time.Time       `json:"createdAt" gorm:"not null"`
	UpdatedAt   time.Time       `json:"updatedAt" gorm:"not null"`
}

func (Payment) TableName() string { return "payments" }

// Log is one actual transaction against a Payment.
type Log struct {
	ID        snowflake.ID    `json:"id" gorm:"primaryKey"`
	PaymentID snowflake.ID    `json:"paymentId" gorm:"not null;index"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:numeric(14,2);not null"`
	PaidAt    time.Time       `json:"paidAt" gorm:"not null"`
	Type      LogType         `json:"type" gorm:"type:varchar(16);not null"`
	Mode      Mode            `json:"mode" gorm:"type:varchar(16);not null"`
	Reference string          `json:"reference" gorm:"type:text"`
	Notes     string          `json:"notes" gorm:"type:text"`
	CreatedAt time.Time       `json:"createdAt" gorm:"not null"`
}

func (Log) TableName() string { return "payment_logs" }

// BookingPayment is a receipt or refund recorded directly on a booking with
// at least one proof image.
type BookingPayment struct {
	ID        snowflake.ID       `json:"id" gorm:"primaryKey"`
	BookingID snowflake.ID       `json:"bookingId" gorm:"not null;index"`
	Type      BookingPaymentType `json:"type" gorm:"type:varchar(16);not null"`
	Amount    decimal.Decimal    `json:"amount" gorm:"type:numeric(14,2);not null"`
	Mode      Mode               `json:"mode" gorm:"type:varchar(16);not null"`
	PaidAt    time.Time          `json:"paidAt" gorm:"not null"`
	Notes     string             `json:"notes" gorm:"type:text"`
	Images    ImageList          `json:"images" gorm:"not null"`
	CreatedBy string             `json:"createdBy" gorm:"type:varchar(64)"`
	CreatedAt time.Time          `json:"createdAt" gorm:"not null"`
}

func (BookingPayment) TableName() string { return "booking_payments" }

// ImageList is stored as a postgres text[] and as its text literal elsewhere.
type ImageList []string

func (l ImageList) Value() (driver.Value, error) {
	return pq.StringArray(l).Value()
}

func (l *ImageList) Scan(src any) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	*l = ImageList(arr)
	return nil
}

func (ImageList) GormDataType() string {
	return "text"
}

func (ImageList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

func (k Kind) Valid() bool {
	return k == KindOneTime || k == KindRecurring
}

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	default:
		return false
	}
}

func (d Direction) Valid() bool {
	return d == DirectionReceived || d == DirectionSent
}

func (t LogType) Valid() bool {
	return t == LogTypeIncome || t == LogTypeExpense
}

func (m Mode) Valid() bool {
	switch m {
	case ModeCash, ModeBankTransfer, ModeCard, ModeOther:
		return true
	default:
		return false
	}
}

func (t BookingPaymentType) Valid() bool {
	return t == BookingPaymentReceipt || t == BookingPaymentRefund
}

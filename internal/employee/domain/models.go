package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID        snowflake.ID    `json:"id" gorm:"primaryKey"`
	FullName  string          `json:"fullName" gorm:"type:text;not null"`
	Position  string          `json:"position" gorm:"type:text"`
	Phone     string          `json:"phone" gorm:"type:varchar(32)"`
	Email     string          `json:"email" gorm:"type:text"`
	Salary    decimal.Decimal `json:"salary" gorm:"type:numeric(14,2);not null"`
	JoinedAt  *time.Time      `json:"joinedAt"`
	Active    bool            `json:"active" gorm:"not null;index"`
	Notes     string          `json:"notes" gorm:"type:text"`
	CreatedAt time.Time       `json:"createdAt" gorm:"not null"`
	UpdatedAt time.Time       `json:"updatedAt" gorm:"not null"`
	DeletedAt *time.Time      `json:"deletedAt"`
}

func (Employee) TableName() string { return "employees" }

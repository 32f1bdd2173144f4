package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Provider is an outside vendor the hotel books for events (catering,
// decoration, entertainment).
type Provider struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	Name        string       `json:"name" gorm:"type:text;not null"`
	Category    string       `json:"category" gorm:"type:varchar(64);index"`
	ContactName string       `json:"contactName" gorm:"type:text"`
	Phone       string       `json:"phone" gorm:"type:varchar(32)"`
	Email       string       `json:"email" gorm:"type:text"`
	Address     string       `json:"address" gorm:"type:text"`
	Notes       string       `json:"notes" gorm:"type:text"`
	CreatedAt   time.Time    `json:"createdAt" gorm:"not null"`
	UpdatedAt   time.Time    `json:"updatedAt" gorm:"not null"`
	DeletedAt   *time.Time   `json:"deletedAt"`
}

func (Provider) TableName() string { return "providers" }

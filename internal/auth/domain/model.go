// Package domain contains core types for hotel staff accounts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager
}

// User is a staff account allowed into the back office.
type User struct {
	ID           snowflake.ID `json:"id" gorm:"primaryKey"`
	Email        string       `json:"email" gorm:"type:text;not null;uniqueIndex"`
	Name         string       `json:"name" gorm:"type:text;not null"`
	Role         Role         `json:"role" gorm:"type:varchar(16);not null"`
	PasswordHash string       `json:"-" gorm:"type:text;not null"`
	CreatedAt    time.Time    `json:"createdAt" gorm:"not null"`
	UpdatedAt    time.Time    `json:"updatedAt" gorm:"not null"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// Principal is the identity carried by a valid session token.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

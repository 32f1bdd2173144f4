package domain

import "time"

const (
	ProfileID       = 1
	DefaultCurrency = "IDR"
)

// Profile is the single company_profiles row printed on receipts.
type Profile struct {
	ID          uint      `json:"-" gorm:"primaryKey;autoIncrement:false"`
	Name        string    `json:"name" gorm:"type:text;not null"`
	LegalName   string    `json:"legalName" gorm:"type:text"`
	Address     string    `json:"address" gorm:"type:text"`
	Phone       string    `json:"phone" gorm:"type:varchar(32)"`
	Email       string    `json:"email" gorm:"type:text"`
	TaxID       string    `json:"taxId" gorm:"type:varchar(64)"`
	Currency    string    `json:"currency" gorm:"type:varchar(3);not null"`
	LogoURL     string    `json:"logoUrl" gorm:"type:text"`
	BankDetails string    `json:"bankDetails" gorm:"type:text"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"not null"`
}

func (Profile) TableName() string { return "company_profiles" }

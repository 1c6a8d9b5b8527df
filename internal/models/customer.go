package models

import (
	"time"
)

// Address is a reusable geographical address.
type Address struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Address string `gorm:"size:120;not null" json:"address"`
	City    string `gorm:"size:120;not null" json:"city"`
	State   string `gorm:"size:120;not null" json:"state"`
	ZipCode string `gorm:"size:120;not null" json:"zip_code"`
	Country string `gorm:"size:120;not null" json:"country"`
}

// Company is a business organization customers belong to. The address is
// optional so the company record survives address removal.
type Company struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	AddressID *uint64   `gorm:"index" json:"address_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Address *Address `gorm:"foreignKey:AddressID" json:"address,omitempty"`
}

// CustomerProfile links a user account to its company, created by customer
// service staff.
type CustomerProfile struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	CompanyID   uint64    `gorm:"index;not null" json:"company_id"`
	PhoneNumber string    `gorm:"size:20" json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User    User    `gorm:"foreignKey:UserID" json:"user"`
	Company Company `gorm:"foreignKey:CompanyID" json:"company"`
}

// TableName overrides the table name for Address
func (Address) TableName() string {
	return "addresses"
}

// TableName overrides the table name for Company
func (Company) TableName() string {
	return "companies"
}

// TableName overrides the table name for CustomerProfile
func (CustomerProfile) TableName() string {
	return "customer_profiles"
}

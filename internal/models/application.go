package models

import (
	"time"
)

// Application statuses over the review lifecycle.
const (
	StatusPending  = "pending"
	StatusInReview = "in_review"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidStatus reports whether s is a known application status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Application is a submitted product-certification application. Drafts never
// touch this table; a row appears only when a draft is submitted, already
// normalized and validated.
type Application struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string    `gorm:"size:120;not null" json:"name"`
	Description     string    `gorm:"type:text" json:"description"`
	Status          string    `gorm:"size:120;not null;default:pending" json:"status"`
	RejectionReason string    `gorm:"type:text" json:"rejection_reason,omitempty"`
	SubmissionDate  time.Time `json:"submission_date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	CompanyInfo ApplicationCompanyInfo          `gorm:"foreignKey:ApplicationID" json:"company_info"`
	Partners    []ApplicationSupplyChainPartner `gorm:"foreignKey:ApplicationID" json:"supply_chain_partners"`
}

// ApplicationCompanyInfo is the single company block of an application.
type ApplicationCompanyInfo struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ApplicationID   uint64    `gorm:"not null;uniqueIndex" json:"application_id"`
	Name            string    `gorm:"size:120;not null" json:"name"`
	Address         string    `gorm:"size:120;not null" json:"address"`
	City            string    `gorm:"size:120" json:"city"`
	State           string    `gorm:"size:120" json:"state"`
	ZipCode         string    `gorm:"size:120" json:"zip_code"`
	Country         string    `gorm:"size:120" json:"country"`
	IsApproved      bool      `gorm:"not null;default:false" json:"is_approved"`
	RejectionReason string    `gorm:"type:text" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ApplicationSupplyChainPartner is one supply chain partner of an
// application, ordered by Position as submitted.
type ApplicationSupplyChainPartner struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ApplicationID   uint64    `gorm:"not null;index" json:"application_id"`
	Position        int       `gorm:"not null" json:"position"`
	Name            string    `gorm:"size:120;not null" json:"name"`
	Address         string    `gorm:"size:120" json:"address"`
	City            string    `gorm:"size:120" json:"city"`
	State           string    `gorm:"size:120" json:"state"`
	ZipCode         string    `gorm:"size:120" json:"zip_code"`
	Country         string    `gorm:"size:120" json:"country"`
	IsApproved      bool      `gorm:"not null;default:false" json:"is_approved"`
	RejectionReason string    `gorm:"type:text" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Products []ApplicationProduct `gorm:"foreignKey:PartnerID" json:"products"`
}

// ApplicationProduct is one product under a supply chain partner. The raw
// partner name column is the denormalized copy resolved at submission time.
type ApplicationProduct struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ApplicationID    uint64    `gorm:"not null;index" json:"application_id"`
	PartnerID        uint64    `gorm:"not null;index" json:"partner_id"`
	Position         int       `gorm:"not null" json:"position"`
	PartnerNameRaw   string    `gorm:"column:supply_chain_partner_name_raw;size:120" json:"supply_chain_partner_name_raw"`
	ProductName      string    `gorm:"size:120;not null" json:"product_name"`
	ProductCategory  string    `gorm:"size:120;not null" json:"product_category"`
	RawMaterialsList string    `gorm:"type:text" json:"raw_materials_list"`
	IsApproved       bool      `gorm:"not null;default:false" json:"is_approved"`
	RejectionReason  string    `gorm:"type:text" json:"rejection_reason,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ApplicationEvent is an audit row written on submission and on every status
// transition. Detail holds a free-form JSON payload.
type ApplicationEvent struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ApplicationID uint64    `gorm:"not null;index" json:"application_id"`
	EventType     string    `gorm:"size:64;not null" json:"event_type"`
	Detail        JSON      `gorm:"type:json" json:"detail"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName overrides the table name for Application
func (Application) TableName() string {
	return "applications"
}

// TableName overrides the table name for ApplicationCompanyInfo
func (ApplicationCompanyInfo) TableName() string {
	return "application_company_infos"
}

// TableName overrides the table name for ApplicationSupplyChainPartner
func (ApplicationSupplyChainPartner) TableName() string {
	return "application_supply_chain_partners"
}

// TableName overrides the table name for ApplicationProduct
func (ApplicationProduct) TableName() string {
	return "application_products"
}

// TableName overrides the table name for ApplicationEvent
func (ApplicationEvent) TableName() string {
	return "application_events"
}

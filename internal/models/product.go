package models

// ProductCategory is a selectable category code for the product form.
// Inactive categories stay in the table for historical applications.
type ProductCategory struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string `gorm:"uniqueIndex;size:120;not null" json:"code"`
	Description string `gorm:"size:120;not null" json:"description"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`
}

// RawMaterial is a known raw material or component code.
type RawMaterial struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string `gorm:"uniqueIndex;size:120;not null" json:"code"`
	Description string `gorm:"size:120;not null" json:"description"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`
}

// TableName overrides the table name for ProductCategory
func (ProductCategory) TableName() string {
	return "product_categories"
}

// TableName overrides the table name for RawMaterial
func (RawMaterial) TableName() string {
	return "raw_materials"
}

package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/opencertify/certify/internal/draft"
	"github.com/opencertify/certify/internal/models"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// CreatedProduct is the product part of a creation response, carrying the
// server-assigned id.
type CreatedProduct struct {
	ID               uint64 `json:"id"`
	PartnerNameRaw   string `json:"supply_chain_partner_name_raw"`
	ProductName      string `json:"product_name"`
	ProductCategory  string `json:"product_category"`
	RawMaterialsList string `json:"raw_materials_list"`
}

// CreatedPartner is the partner part of a creation response.
type CreatedPartner struct {
	ID       uint64           `json:"id"`
	Name     string           `json:"name"`
	Address  string           `json:"address"`
	City     string           `json:"city"`
	State    string           `json:"state"`
	ZipCode  string           `json:"zip_code"`
	Country  string           `json:"country"`
	Products []CreatedProduct `json:"products"`
}

// CreatedCompanyInfo is the company block of a creation response.
type CreatedCompanyInfo struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// CreatedApplication is returned after a successful submission. It is kept by
// the client for a one-time success display and never merged back into a
// draft.
type CreatedApplication struct {
	ID             uint64             `json:"id"`
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	Status         string             `json:"status"`
	SubmissionDate time.Time          `json:"submission_date"`
	CompanyInfo    CreatedCompanyInfo `json:"company_info"`
	Partners       []CreatedPartner   `json:"supply_chain_partners"`
}

// CreateApplication persists a normalized submission as one transaction:
// the application row, its company info, each partner in order, and each
// partner's products in order, plus a "submitted" audit event. Either the
// whole hierarchy lands or nothing does.
func CreateApplication(db *gorm.DB, s draft.Submission) (*CreatedApplication, error) {
	var out *CreatedApplication

	err := db.Transaction(func(tx *gorm.DB) error {
		app := models.Application{
			Name:           s.Name,
			Description:    s.Description,
			Status:         models.StatusPending,
			SubmissionDate: time.Now().UTC(),
		}
		if err := tx.Create(&app).Error; err != nil {
			return fmt.Errorf("create application: %w", err)
		}

		info := models.ApplicationCompanyInfo{
			ApplicationID: app.ID,
			Name:          s.CompanyInfo.Name,
			Address:       s.CompanyInfo.Address,
			City:          s.CompanyInfo.City,
			State:         s.CompanyInfo.State,
			ZipCode:       s.CompanyInfo.ZipCode,
			Country:       s.CompanyInfo.Country,
		}
		if err := tx.Create(&info).Error; err != nil {
			return fmt.Errorf("create company info: %w", err)
		}

		created := &CreatedApplication{
			ID:             app.ID,
			Name:           app.Name,
			Description:    app.Description,
			Status:         app.Status,
			SubmissionDate: app.SubmissionDate,
			CompanyInfo: CreatedCompanyInfo{
				ID:      info.ID,
				Name:    info.Name,
				Address: info.Address,
				City:    info.City,
				State:   info.State,
				ZipCode: info.ZipCode,
				Country: info.Country,
			},
			Partners: make([]CreatedPartner, 0, len(s.Partners)),
		}

		productCount := 0
		for i, sp := range s.Partners {
			partner := models.ApplicationSupplyChainPartner{
				ApplicationID: app.ID,
				Position:      i,
				Name:          sp.Name,
				Address:       sp.Address,
				City:          sp.City,
				State:         sp.State,
				ZipCode:       sp.ZipCode,
				Country:       sp.Country,
			}
			if err := tx.Create(&partner).Error; err != nil {
				return fmt.Errorf("create partner %d: %w", i, err)
			}

			cp := CreatedPartner{
				ID:       partner.ID,
				Name:     partner.Name,
				Address:  partner.Address,
				City:     partner.City,
				State:    partner.State,
				ZipCode:  partner.ZipCode,
				Country:  partner.Country,
				Products: make([]CreatedProduct, 0, len(sp.Products)),
			}

			for j, spr := range sp.Products {
				product := models.ApplicationProduct{
					ApplicationID:    app.ID,
					PartnerID:        partner.ID,
					Position:         j,
					PartnerNameRaw:   spr.PartnerNameRaw,
					ProductName:      spr.ProductName,
					ProductCategory:  spr.ProductCategory,
					RawMaterialsList: spr.RawMaterialsList,
				}
				if err := tx.Create(&product).Error; err != nil {
					return fmt.Errorf("create product %d of partner %d: %w", j, i, err)
				}
				productCount++
				cp.Products = append(cp.Products, CreatedProduct{
					ID:               product.ID,
					PartnerNameRaw:   product.PartnerNameRaw,
					ProductName:      product.ProductName,
					ProductCategory:  product.ProductCategory,
					RawMaterialsList: product.RawMaterialsList,
				})
			}

			created.Partners = append(created.Partners, cp)
		}

		if err := writeEvent(tx, app.ID, "submitted", map[string]interface{}{
			"partners": len(s.Partners),
			"products": productCount,
		}); err != nil {
			return err
		}

		out = created
		return nil
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetApplication loads one application with its full hierarchy.
func GetApplication(db *gorm.DB, id uint64) (*models.Application, error) {
	var app models.Application
	err := db.
		Preload("CompanyInfo").
		Preload("Partners", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		Preload("Partners.Products", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		First(&app, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}
	return &app, nil
}

// ListApplications returns applications newest first, optionally filtered by
// status.
func ListApplications(db *gorm.DB, status string) ([]models.Application, error) {
	var apps []models.Application
	query := db.
		Preload("CompanyInfo").
		Preload("Partners", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		Preload("Partners.Products", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		Order("submission_date DESC")

	// Cap the scan on MySQL; other dialects ignore the hint clause safely.
	if db.Dialector.Name() == "mysql" {
		query = query.Clauses(hints.New("MAX_EXECUTION_TIME(5000)"))
	}

	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// UpdateApplicationStatus transitions an application's review status and
// records an audit event. A rejection reason is stored only with "rejected".
func UpdateApplicationStatus(db *gorm.DB, id uint64, status, rejectionReason string) (*models.Application, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var app models.Application
		if err := tx.First(&app, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("not found")
			}
			return err
		}

		previous := app.Status
		app.Status = status
		if status == models.StatusRejected {
			app.RejectionReason = rejectionReason
		} else {
			app.RejectionReason = ""
		}
		if err := tx.Save(&app).Error; err != nil {
			return err
		}

		return writeEvent(tx, app.ID, "status_changed", map[string]interface{}{
			"from": previous,
			"to":   status,
		})
	})
	if err != nil {
		return nil, err
	}

	return GetApplication(db, id)
}

// writeEvent appends an audit row with a JSON detail payload.
func writeEvent(tx *gorm.DB, appID uint64, eventType string, detail map[string]interface{}) error {
	raw, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("encode event detail: %w", err)
	}
	event := models.ApplicationEvent{
		ApplicationID: appID,
		EventType:     eventType,
	}
	if err := event.Detail.Scan(raw); err != nil {
		return fmt.Errorf("set event detail: %w", err)
	}
	if err := tx.Create(&event).Error; err != nil {
		return fmt.Errorf("create %s event: %w", eventType, err)
	}
	return nil
}

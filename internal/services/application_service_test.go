package services

import (
	"testing"

	"github.com/opencertify/certify/internal/draft"
	"github.com/opencertify/certify/internal/models"
)

// testSubmission builds a normalized two-partner submission: the first
// partner carries one product, the second two.
func testSubmission() draft.Submission {
	return draft.Submission{
		Name:        "Widget Certification",
		Description: "annual renewal",
		CompanyInfo: draft.SubmissionCompany{
			Name:    "Acme",
			Address: "1 Main St",
			City:    "Springfield",
			ZipCode: "62701",
			Country: "USA",
		},
		Partners: []draft.SubmissionPartner{
			{
				Name: "Supplier A",
				City: "Chicago",
				Products: []draft.SubmissionProduct{
					{PartnerNameRaw: "Supplier A", ProductName: "Gadget", ProductCategory: "PC0001"},
				},
			},
			{
				Name: "Supplier B",
				Products: []draft.SubmissionProduct{
					{PartnerNameRaw: "Supplier B", ProductName: "Widget", ProductCategory: "PC0002"},
					{PartnerNameRaw: "Supplier B", ProductName: "Sprocket", ProductCategory: "PC0003", RawMaterialsList: "RM0001, RM0002"},
				},
			},
		},
	}
}

func TestCreateApplicationHierarchy(t *testing.T) {
	db := setupTestDB(t)

	created, err := CreateApplication(db, testSubmission())
	if err != nil {
		t.Fatalf("CreateApplication failed: %v", err)
	}

	if created.ID == 0 {
		t.Error("Expected application id assigned")
	}
	if created.Status != models.StatusPending {
		t.Errorf("Expected pending status, got %q", created.Status)
	}
	if created.CompanyInfo.Name != "Acme" {
		t.Errorf("Unexpected company info: %+v", created.CompanyInfo)
	}
	if len(created.Partners) != 2 {
		t.Fatalf("Expected 2 partners, got %d", len(created.Partners))
	}
	if len(created.Partners[0].Products) != 1 || len(created.Partners[1].Products) != 2 {
		t.Errorf("Unexpected product counts: %d and %d",
			len(created.Partners[0].Products), len(created.Partners[1].Products))
	}
	if created.Partners[1].Products[1].RawMaterialsList != "RM0001, RM0002" {
		t.Errorf("Unexpected product payload: %+v", created.Partners[1].Products[1])
	}

	// A "submitted" audit event is written with the tree counts.
	var events []models.ApplicationEvent
	if err := db.Where("application_id = ?", created.ID).Find(&events).Error; err != nil {
		t.Fatalf("Failed to load events: %v", err)
	}
	if len(events) != 1 || events[0].EventType != "submitted" {
		t.Fatalf("Expected one submitted event, got %+v", events)
	}
}

func TestGetApplicationOrdering(t *testing.T) {
	db := setupTestDB(t)

	created, err := CreateApplication(db, testSubmission())
	if err != nil {
		t.Fatalf("CreateApplication failed: %v", err)
	}

	app, err := GetApplication(db, created.ID)
	if err != nil {
		t.Fatalf("GetApplication failed: %v", err)
	}
	if len(app.Partners) != 2 {
		t.Fatalf("Expected 2 partners, got %d", len(app.Partners))
	}
	if app.Partners[0].Name != "Supplier A" || app.Partners[1].Name != "Supplier B" {
		t.Errorf("Expected submission order preserved, got [%s %s]",
			app.Partners[0].Name, app.Partners[1].Name)
	}
	products := app.Partners[1].Products
	if len(products) != 2 || products[0].ProductName != "Widget" || products[1].ProductName != "Sprocket" {
		t.Errorf("Expected product order preserved, got %+v", products)
	}

	if _, err := GetApplication(db, 9999); err == nil {
		t.Error("Expected error for missing application")
	}
}

func TestListApplicationsStatusFilter(t *testing.T) {
	db := setupTestDB(t)

	first, err := CreateApplication(db, testSubmission())
	if err != nil {
		t.Fatalf("CreateApplication failed: %v", err)
	}
	if _, err := CreateApplication(db, testSubmission()); err != nil {
		t.Fatalf("CreateApplication failed: %v", err)
	}
	if _, err := UpdateApplicationStatus(db, first.ID, models.StatusApproved, ""); err != nil {
		t.Fatalf("UpdateApplicationStatus failed: %v", err)
	}

	all, err := ListApplications(db, "")
	if err != nil {
		t.Fatalf("ListApplications failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 applications, got %d", len(all))
	}

	approved, err := ListApplications(db, models.StatusApproved)
	if err != nil {
		t.Fatalf("ListApplications failed: %v", err)
	}
	if len(approved) != 1 || approved[0].ID != first.ID {
		t.Errorf("Expected only the approved application, got %+v", approved)
	}
}

func TestUpdateApplicationStatus(t *testing.T) {
	db := setupTestDB(t)

	created, err := CreateApplication(db, testSubmission())
	if err != nil {
		t.Fatalf("CreateApplication failed: %v", err)
	}

	app, err := UpdateApplicationStatus(db, created.ID, models.StatusInReview, "")
	if err != nil {
		t.Fatalf("UpdateApplicationStatus failed: %v", err)
	}
	if app.Status != models.StatusInReview {
		t.Errorf("Expected in_review, got %q", app.Status)
	}

	app, err = UpdateApplicationStatus(db, created.ID, models.StatusRejected, "incomplete partner data")
	if err != nil {
		t.Fatalf("UpdateApplicationStatus failed: %v", err)
	}
	if app.RejectionReason != "incomplete partner data" {
		t.Errorf("Expected rejection reason stored, got %q", app.RejectionReason)
	}

	// Moving away from rejected clears the reason.
	app, err = UpdateApplicationStatus(db, created.ID, models.StatusApproved, "ignored")
	if err != nil {
		t.Fatalf("UpdateApplicationStatus failed: %v", err)
	}
	if app.RejectionReason != "" {
		t.Errorf("Expected rejection reason cleared, got %q", app.RejectionReason)
	}

	if _, err := UpdateApplicationStatus(db, created.ID, "archived", ""); err == nil {
		t.Error("Expected error for invalid status")
	}
	if _, err := UpdateApplicationStatus(db, 9999, models.StatusApproved, ""); err == nil {
		t.Error("Expected error for missing application")
	}

	// Each successful transition wrote a status_changed event.
	var count int64
	db.Model(&models.ApplicationEvent{}).
		Where("application_id = ? AND event_type = ?", created.ID, "status_changed").
		Count(&count)
	if count != 3 {
		t.Errorf("Expected 3 status_changed events, got %d", count)
	}
}

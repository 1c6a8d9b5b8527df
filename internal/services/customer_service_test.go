package services

import (
	"errors"
	"testing"

	"github.com/opencertify/certify/internal/models"
)

func TestCreateCustomerProfile(t *testing.T) {
	db := setupTestDB(t)
	company, err := CreateCompany(db, "Acme", &models.Address{Address: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701", Country: "USA"})
	if err != nil {
		t.Fatalf("CreateCompany failed: %v", err)
	}

	result, err := CreateCustomerProfile(db, CustomerProfileInput{
		CompanyID:   company.ID,
		FirstName:   "Alice",
		LastName:    "Smith",
		Email:       "alice@example.com",
		Username:    "asmith",
		PhoneNumber: "555-0100",
	})
	if err != nil {
		t.Fatalf("CreateCustomerProfile failed: %v", err)
	}

	if result.Username != "asmith" || result.Company != "Acme" || result.Role != models.RoleCustomer {
		t.Errorf("Unexpected result: %+v", result)
	}
	if result.Message != `User "asmith" created successfully with Customer role` {
		t.Errorf("Unexpected message: %q", result.Message)
	}

	// The initial password is the username.
	login, err := Login(db, "asmith", "asmith")
	if err != nil {
		t.Fatalf("Expected new user to log in with username as password: %v", err)
	}
	if login.Role != models.RoleCustomer {
		t.Errorf("Expected customer role, got %q", login.Role)
	}
}

func TestCreateCustomerProfileValidation(t *testing.T) {
	db := setupTestDB(t)
	company, err := CreateCompany(db, "Acme", nil)
	if err != nil {
		t.Fatalf("CreateCompany failed: %v", err)
	}

	valid := CustomerProfileInput{
		CompanyID: company.ID,
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.com",
		Username:  "asmith",
	}
	if _, err := CreateCustomerProfile(db, valid); err != nil {
		t.Fatalf("CreateCustomerProfile failed: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(CustomerProfileInput) CustomerProfileInput
		message string
	}{
		{
			name:    "missing fields",
			mutate:  func(in CustomerProfileInput) CustomerProfileInput { in.FirstName = " "; return in },
			message: "Please fill in all required fields",
		},
		{
			name:    "unknown company",
			mutate:  func(in CustomerProfileInput) CustomerProfileInput { in.CompanyID = 9999; return in },
			message: "Company with this ID does not exist.",
		},
		{
			name:    "duplicate username",
			mutate:  func(in CustomerProfileInput) CustomerProfileInput { in.Email = "other@example.com"; return in },
			message: "A user with this username already exists.",
		},
		{
			name:    "duplicate email",
			mutate:  func(in CustomerProfileInput) CustomerProfileInput { in.Username = "other"; return in },
			message: "A user with this email already exists.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateCustomerProfile(db, tt.mutate(valid))
			var verr *ProfileValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected validation error, got %v", err)
			}
			if verr.Message != tt.message {
				t.Errorf("Expected %q, got %q", tt.message, verr.Message)
			}
		})
	}
}

func TestListCustomerProfiles(t *testing.T) {
	db := setupTestDB(t)
	acme, _ := CreateCompany(db, "Acme", nil)
	globex, _ := CreateCompany(db, "Globex", nil)

	for _, in := range []CustomerProfileInput{
		{CompanyID: acme.ID, FirstName: "Alice", LastName: "Smith", Email: "a@example.com", Username: "alice"},
		{CompanyID: acme.ID, FirstName: "Bob", LastName: "Jones", Email: "b@example.com", Username: "bob"},
		{CompanyID: globex.ID, FirstName: "Carol", LastName: "Brown", Email: "c@example.com", Username: "carol"},
	} {
		if _, err := CreateCustomerProfile(db, in); err != nil {
			t.Fatalf("CreateCustomerProfile failed: %v", err)
		}
	}

	all, err := ListCustomerProfiles(db, 0)
	if err != nil {
		t.Fatalf("ListCustomerProfiles failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 profiles, got %d", len(all))
	}

	acmeOnly, err := ListCustomerProfiles(db, acme.ID)
	if err != nil {
		t.Fatalf("ListCustomerProfiles failed: %v", err)
	}
	if len(acmeOnly) != 2 {
		t.Errorf("Expected 2 Acme profiles, got %d", len(acmeOnly))
	}
	for _, p := range acmeOnly {
		if p.Company.Name != "Acme" {
			t.Errorf("Expected company preloaded, got %+v", p.Company)
		}
		if p.User.Username == "" {
			t.Error("Expected user preloaded")
		}
	}

	got, err := GetCustomerProfile(db, acmeOnly[0].ID)
	if err != nil {
		t.Fatalf("GetCustomerProfile failed: %v", err)
	}
	if got.User.Username != acmeOnly[0].User.Username {
		t.Errorf("Unexpected profile: %+v", got)
	}
	if _, err := GetCustomerProfile(db, 9999); err == nil {
		t.Error("Expected error for missing profile")
	}
}

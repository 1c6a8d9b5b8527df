package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/opencertify/certify/internal/database"
	"github.com/opencertify/certify/internal/draft"
	"github.com/opencertify/certify/internal/handlers"
	"github.com/opencertify/certify/internal/middleware"
	"github.com/opencertify/certify/internal/models"
	"github.com/opencertify/certify/internal/services"
	"github.com/opencertify/certify/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestApp wires the API routes against an in-memory database and the
// in-memory draft store, matching the server's route table.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	store := draft.NewMemoryStore()

	app := fiber.New(fiber.Config{ErrorHandler: testErrorHandler})
	api := app.Group("/api")

	authHandler := &handlers.AuthHandler{DB: db}
	draftHandler := &handlers.DraftHandler{DB: db, Store: store}
	appHandler := &handlers.ApplicationHandler{DB: db}
	companyHandler := &handlers.CompanyHandler{DB: db}
	profileHandler := &handlers.CustomerProfileHandler{DB: db}
	reviewHandler := &handlers.ReviewHandler{DB: db}
	catalogHandler := &handlers.CatalogHandler{DB: db}

	api.Post("/auth/login", authHandler.Login)

	auth := middleware.Auth(db)
	api.Post("/auth/logout", auth, authHandler.Logout)

	customer := middleware.RequireRole(models.RoleCustomer)
	cservice := middleware.RequireRole(models.RoleCService)
	reviewer := middleware.RequireRole(models.RoleReviewer)

	drafts := api.Group("/draft", auth, customer)
	drafts.Get("/", draftHandler.GetDraft)
	drafts.Patch("/", draftHandler.SetField)
	drafts.Delete("/", draftHandler.DiscardDraft)
	drafts.Patch("/company-info", draftHandler.SetCompanyField)
	drafts.Post("/partners", draftHandler.AddPartner)
	drafts.Patch("/partners/:index", draftHandler.SetPartnerField)
	drafts.Delete("/partners/:index", draftHandler.RemovePartner)
	drafts.Post("/partners/:index/products", draftHandler.AddProduct)
	drafts.Patch("/partners/:index/products/:pindex", draftHandler.SetProductField)
	drafts.Delete("/partners/:index/products/:pindex", draftHandler.RemoveProduct)
	drafts.Post("/submit", draftHandler.Submit)

	api.Post("/applications", auth, customer, appHandler.Create)
	api.Get("/applications", auth, appHandler.List)
	api.Get("/applications/:id", auth, appHandler.Get)

	api.Get("/product-categories", auth, catalogHandler.ProductCategories)
	api.Get("/raw-materials", auth, catalogHandler.RawMaterials)

	api.Get("/companies", auth, companyHandler.List)
	api.Get("/companies/:id", auth, companyHandler.Get)
	api.Post("/customer-profiles", auth, cservice, profileHandler.Create)
	api.Get("/customer-profiles", auth, cservice, profileHandler.List)
	api.Get("/customer-profiles/:id", auth, cservice, profileHandler.Get)

	api.Get("/review/applications", auth, reviewer, reviewHandler.Queue)
	api.Patch("/review/applications/:id", auth, reviewer, reviewHandler.UpdateStatus)

	return app, db
}

func testErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
	}
	return c.Status(code).JSON(fiber.Map{"status": code, "message": message, "ok": false})
}

// createUser inserts a user with password equal to the username and returns
// its API token.
func createUser(t *testing.T, app *fiber.App, db *gorm.DB, username, role string) string {
	t.Helper()

	hash, err := services.HashPassword(username)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	body, _ := json.Marshal(map[string]string{"username": username, "password": username})
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Login request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected login 200, got %d", resp.StatusCode)
	}

	var result services.LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode login response: %v", err)
	}
	return result.Token
}

// doJSON performs a request with an optional token and JSON body and decodes
// the response into out when non-nil.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}, out interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request %s %s failed: %v", method, path, err)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("Failed to decode response of %s %s: %v", method, path, err)
		}
	}
	return resp
}

// fieldBody builds the {field, value} update payload.
func fieldBody(field, value string) map[string]string {
	return map[string]string{"field": field, "value": value}
}

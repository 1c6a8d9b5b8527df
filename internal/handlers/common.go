package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/opencertify/certify/internal/models"
)

// currentUser extracts the authenticated user placed in locals by the auth
// middleware.
func currentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals("user").(*models.User)
	if !ok || user == nil {
		return nil, fmt.Errorf("user not found in context")
	}
	return user, nil
}

// draftOwnerKey is the per-user key drafts are stored under.
func draftOwnerKey(user *models.User) string {
	return strconv.FormatUint(user.ID, 10)
}

// parseIDParam parses a numeric path parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// parseIndexParam parses a positional index path parameter. Range checking is
// left to the draft operations, which own the index contract.
func parseIndexParam(c *fiber.Ctx, name string) (int, error) {
	raw := c.Params(name)
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return index, nil
}

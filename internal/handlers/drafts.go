package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/opencertify/certify/internal/draft"
	"github.com/opencertify/certify/internal/services"
	"github.com/opencertify/certify/internal/utils"
	"gorm.io/gorm"
)

// DraftHandler exposes the nested application draft: one tree per
// authenticated customer, mutated through the structural operations and
// submitted as a whole. Partners and products are addressed purely by
// position, so clients must re-read the tree after every remove.
type DraftHandler struct {
	DB    *gorm.DB
	Store draft.Store
}

type fieldUpdate struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// load fetches the user's draft, creating the empty one-partner-one-product
// tree on first access.
func (h *DraftHandler) load(c *fiber.Ctx) (draft.Draft, string, error) {
	user, err := currentUser(c)
	if err != nil {
		return draft.Draft{}, "", err
	}
	owner := draftOwnerKey(user)

	d, err := h.Store.Get(c.Context(), owner)
	if err == nil {
		return d, owner, nil
	}
	if !errors.Is(err, draft.ErrNotFound) {
		return draft.Draft{}, "", err
	}

	d = draft.New()
	if err := h.Store.Put(c.Context(), owner, d); err != nil {
		return draft.Draft{}, "", err
	}
	return d, owner, nil
}

// save persists the transformed tree and returns it to the client.
func (h *DraftHandler) save(c *fiber.Ctx, owner string, d draft.Draft) error {
	if err := h.Store.Put(c.Context(), owner, d); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "draft.store")
	}
	return c.Status(fiber.StatusOK).JSON(d)
}

// mutationError maps a failed draft operation to a response.
func mutationError(c *fiber.Ctx, err error) error {
	if errors.Is(err, draft.ErrIndexOutOfRange) || errors.Is(err, draft.ErrUnknownField) {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "draft.validation.input")
	}
	return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "draft")
}

// GetDraft handles GET /api/draft
// @Summary Get the current draft
// @Description Return the caller's in-progress application draft, creating an empty one on first access
// @Tags Draft
// @Produce json
// @Success 200 {object} draft.Draft
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security TokenAuth
// @Router /draft [get]
func (h *DraftHandler) GetDraft(c *fiber.Ctx) error {
	d, _, err := h.load(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "draft.load")
	}
	return c.Status(fiber.StatusOK).JSON(d)
}

// DiscardDraft handles DELETE /api/draft
// @Summary Discard the current draft
// @Tags Draft
// @Success 204
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security TokenAuth
// @Router /draft [delete]
func (h *DraftHandler) DiscardDraft(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "draft.authorization")
	}
	if err := h.Store.Delete(c.Context(), draftOwnerKey(user)); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "draft.store")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetField handles PATCH /api/draft
// @Summary Set an application-level field
// @Description Replace a top-level scalar field (name, description) of the draft
// @Tags Draft
// @Accept json
// @Produce json
// @Param body body object true "Field update"
// @Success 200 {object} draft.Draft
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security TokenAuth
// @Router /draft [patch]
func (h *DraftHandler) SetField(c *fiber.Ctx) error {
	var body fieldUpdate
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "draft.validation.input")
	}

	d, owner, err := h.load(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "draft.load")
	}

	next, err := d.SetField(body.Field, body.Value)
	if err != nil {
		return mutationError(c, err)
	}
	return h.save(c, owner, next)
}

// SetCompanyField handles PATCH /api/draft/company-info
// @Summary Set a company info field
// @Tags Draft
// @Accept json
// @Produce json
// @Param body body object true "Field update"
// @Success 200 {object} draft.Draft
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security TokenAuth
// @Router /draft/company-info [patch]
func (h *DraftHandler) SetCompanyField(c *fiber.Ctx) error {
	var body fieldUpdate
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "draft.validation.input")
	}

	d, owner, err := h.load(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "draft.load")
	}

	next, err := d.SetCompanyField(body.Field, body.Value)
	if err != nil {
		return mutationError(c, err)
	}
	return h.save(c, owner, next)
}

// AddPartner handles POST /api/draft/partners
// @Summary Append a supply chain partner
// @Description Append a new partner seeded with one empty product; existing partners keep their indices
// @Tags Draft
// @Produce json
// @Success 200 {object} draft.Draft
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security TokenAuth
// @Router /draft/partners [post]
func (h *DraftHandler) AddPartner(c *fiber.Ctx) error {
	d, owner, err := h.load(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "draft.load")
	}
	return h.save(c, owner, d.AddPartner())
}

// SetPartnerField handles PATCH /api/draft/partners/:index
// @Summary Set a partner field
// @Tags Draft
// @Accept json
// @Produce json
// @Param index path int true "Partner index"
// @Param body body object true "Field update"
// @Success 200 {object} draft.Draft
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security TokenAuth
// @Router /draft/partners/{index} [patch]
func (h *DraftHandler) SetPartnerField(c *fiber.Ctx) error {
	index, err := parseIndexParam(c, "index")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "draft.validation.input")
	}

	var body fieldUpdate
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "draft.validation.input")
	}

	d, owner, err := h.load(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "draft.load")
	}

	next, err := d.SetPartnerField(index, body.Field, body.Value)
	if err != nil {
		return mutationError(c, err)
	}
	return h.save(c, owner, next)
}

// RemovePartner handles DELETE /api/draft/partners/:index
// @Summary Remove a supply chain partner
// @Description Remove the partner at the index; higher-index partners shift down. Removing the only partner is a no-op.
// @Tags Draft
// @Produce json
// @Param index path int true "Partner index"
// @Success 200 {object} draft.Draft
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security TokenAuth
// @Router /draft/partners/{index} [delete]
func (h *DraftHandler) RemovePartner(c *fiber.Ctx) error {
	index, err := parseIndexParam(c, "index")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "draft.validation.input")
	}

	d, owner, err := h.load(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "draft.load")
	}

	next, err := d.RemovePartner(index)
	if err != nil {
		return mutationError(c, err)
	}
	return h.save(c, owner, next)
}

// AddProduct handles POST /api/draft/partners/:index/products
// @Summary Append a product to a partner
// @Tags Draft
// @Produce json
// @Param index path int true "Partner index"
// @Success 200 {object} draft.Draft
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security TokenAuth
// @Router /draft/partners/{index}/products [post]
func (h *DraftHandler) AddProduct(c *fiber.Ctx) error {
	index, err := parseIndexParam(c, "index")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "draft.validation.input")
	}

	d, owner, err := h.load(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "draft.load")
	}

	next, err := d.AddProduct(index)
	if err != nil {
		return mutationError(c, err)
	}
	return h.save(c, owner, next)
}

// SetProductField handles PATCH /api/draft/partners/:index/products/:pindex
// @Summary Set a product field
// @Tags Draft
// @Accept json
// @Produce json
// @Param index path int true "Partner index"
// @Param pindex path int true "Product index"
// @Param body body object true "Field update"
// @Success 200 {object} draft.Draft
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security TokenAuth
// @Router /draft/partners/{index}/products/{pindex} [patch]
func (h *DraftHandler) SetProductField(c *fiber.Ctx) error {
	index, err := parseIndexParam(c, "index")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "draft.validation.input")
	}
	pindex, err := parseIndexParam(c, "pindex")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "draft.validation.input")
	}

	var body fieldUpdate
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "draft.validation.input")
	}

	d, owner, err := h.load(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "draft.load")
	}

	next, err := d.SetProductField(index, pindex, body.Field, body.Value)
	if err != nil {
		return mutationError(c, err)
	}
	return h.save(c, owner, next)
}

// RemoveProduct handles DELETE /api/draft/partners/:index/products/:pindex
// @Summary Remove a product from a partner
// @Description Remove the product at the index; higher-index products shift down. Removing the partner's only product is a no-op.
// @Tags Draft
// @Produce json
// @Param index path int true "Partner index"
// @Param pindex path int true "Product index"
// @Success 200 {object} draft.Draft
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security TokenAuth
// @Router /draft/partners/{index}/products/{pindex} [delete]
func (h *DraftHandler) RemoveProduct(c *fiber.Ctx) error {
	index, err := parseIndexParam(c, "index")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "draft.validation.input")
	}
	pindex, err := parseIndexParam(c, "pindex")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "draft.validation.input")
	}

	d, owner, err := h.load(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "draft.load")
	}

	next, err := d.RemoveProduct(index, pindex)
	if err != nil {
		return mutationError(c, err)
	}
	return h.save(c, owner, next)
}

// Submit handles POST /api/draft/submit
// @Summary Submit the current draft
// @Description Validate the draft, normalize it, create the application, and reset the draft. Validation failure returns the single fail-fast message and leaves the draft untouched.
// @Tags Draft
// @Produce json
// @Success 201 {object} services.CreatedApplication
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security TokenAuth
// @Router /draft/submit [post]
func (h *DraftHandler) Submit(c *fiber.Ctx) error {
	d, owner, err := h.load(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "draft.load")
	}

	// Local validation aborts before any persistence; draft is untouched.
	if err := draft.Validate(d); err != nil {
		return utils.ValidationErrorResponse(c, err.Error())
	}

	created, err := services.CreateApplication(h.DB, draft.Normalize(d))
	if err != nil {
		// Draft is preserved so the user can retry without re-entering data.
		return utils.ErrorResponse(c, "Failed to create application. Please try again.", fiber.StatusInternalServerError, "application.create")
	}

	if err := h.Store.Put(c.Context(), owner, draft.New()); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "draft.store")
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// Package draft owns the in-progress certification application document: a
// tree of application -> company info and application -> supply chain
// partners -> products. Every structural operation is a pure transformation
// that returns a new tree, leaving the input untouched, so a caller can never
// alias the current and next states of a draft.
package draft

import (
	"fmt"

	"github.com/google/uuid"
)

// Product is a product entry owned by a supply chain partner. It has no
// server identity until the application is submitted; Key is a locally
// generated rendering key, never part of the submission payload.
type Product struct {
	Key              string `json:"key"`
	PartnerNameRaw   string `json:"supply_chain_partner_name_raw"`
	ProductName      string `json:"product_name"`
	ProductCategory  string `json:"product_category"`
	RawMaterialsList string `json:"raw_materials_list"`
}

// Partner is a supply chain partner owned by a draft, addressed by position.
type Partner struct {
	Key      string    `json:"key"`
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	City     string    `json:"city"`
	State    string    `json:"state"`
	ZipCode  string    `json:"zip_code"`
	Country  string    `json:"country"`
	Products []Product `json:"products"`
}

// CompanyInfo is the single company block of a draft.
type CompanyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// Draft is the root of the in-progress application document.
// Invariants: exactly one CompanyInfo, at least one partner, and at least one
// product per partner. The remove operations enforce the floor silently.
type Draft struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	CompanyInfo CompanyInfo `json:"company_info"`
	Partners    []Partner   `json:"supply_chain_partners"`
}

// ErrIndexOutOfRange reports a partner or product index that does not address
// an existing entry. Indices are positional and shift on every remove, so
// callers must re-derive them from the current tree.
var ErrIndexOutOfRange = fmt.Errorf("draft: index out of range")

// ErrUnknownField reports a field name outside the draft schema.
var ErrUnknownField = fmt.Errorf("draft: unknown field")

func newProduct() Product {
	return Product{Key: uuid.NewString()}
}

func newPartner() Partner {
	return Partner{
		Key:      uuid.NewString(),
		Products: []Product{newProduct()},
	}
}

// New returns the empty draft a form session starts from: one partner seeded
// with one empty product.
func New() Draft {
	return Draft{Partners: []Partner{newPartner()}}
}

// clone deep-copies the draft tree.
func (d Draft) clone() Draft {
	out := d
	out.Partners = make([]Partner, len(d.Partners))
	for i, p := range d.Partners {
		cp := p
		cp.Products = make([]Product, len(p.Products))
		copy(cp.Products, p.Products)
		out.Partners[i] = cp
	}
	return out
}

// SetField replaces a top-level scalar field of the draft.
func (d Draft) SetField(field, value string) (Draft, error) {
	out := d.clone()
	switch field {
	case "name":
		out.Name = value
	case "description":
		out.Description = value
	default:
		return d, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return out, nil
}

// SetCompanyField replaces a scalar field of the draft's company info block.
func (d Draft) SetCompanyField(field, value string) (Draft, error) {
	out := d.clone()
	switch field {
	case "name":
		out.CompanyInfo.Name = value
	case "address":
		out.CompanyInfo.Address = value
	case "city":
		out.CompanyInfo.City = value
	case "state":
		out.CompanyInfo.State = value
	case "zip_code":
		out.CompanyInfo.ZipCode = value
	case "country":
		out.CompanyInfo.Country = value
	default:
		return d, fmt.Errorf("%w: company_info.%q", ErrUnknownField, field)
	}
	return out, nil
}

// SetPartnerField replaces a scalar field on the partner at partnerIndex.
// Sibling partners and all products are unchanged.
func (d Draft) SetPartnerField(partnerIndex int, field, value string) (Draft, error) {
	if partnerIndex < 0 || partnerIndex >= len(d.Partners) {
		return d, fmt.Errorf("%w: partner %d", ErrIndexOutOfRange, partnerIndex)
	}
	out := d.clone()
	p := &out.Partners[partnerIndex]
	switch field {
	case "name":
		p.Name = value
	case "address":
		p.Address = value
	case "city":
		p.City = value
	case "state":
		p.State = value
	case "zip_code":
		p.ZipCode = value
	case "country":
		p.Country = value
	default:
		return d, fmt.Errorf("%w: partner.%q", ErrUnknownField, field)
	}
	return out, nil
}

// SetProductField replaces a scalar field on the product at productIndex of
// the partner at partnerIndex.
func (d Draft) SetProductField(partnerIndex, productIndex int, field, value string) (Draft, error) {
	if partnerIndex < 0 || partnerIndex >= len(d.Partners) {
		return d, fmt.Errorf("%w: partner %d", ErrIndexOutOfRange, partnerIndex)
	}
	if productIndex < 0 || productIndex >= len(d.Partners[partnerIndex].Products) {
		return d, fmt.Errorf("%w: partner %d product %d", ErrIndexOutOfRange, partnerIndex, productIndex)
	}
	out := d.clone()
	pr := &out.Partners[partnerIndex].Products[productIndex]
	switch field {
	case "supply_chain_partner_name_raw":
		pr.PartnerNameRaw = value
	case "product_name":
		pr.ProductName = value
	case "product_category":
		pr.ProductCategory = value
	case "raw_materials_list":
		pr.RawMaterialsList = value
	default:
		return d, fmt.Errorf("%w: product.%q", ErrUnknownField, field)
	}
	return out, nil
}

// AddPartner appends a new partner seeded with one empty product. Existing
// partners keep their indices.
func (d Draft) AddPartner() Draft {
	out := d.clone()
	out.Partners = append(out.Partners, newPartner())
	return out
}

// RemovePartner removes the partner at partnerIndex; partners at higher
// indices shift down by one. Removing the only remaining partner is a silent
// no-op so the draft never holds an empty partner list.
func (d Draft) RemovePartner(partnerIndex int) (Draft, error) {
	if partnerIndex < 0 || partnerIndex >= len(d.Partners) {
		return d, fmt.Errorf("%w: partner %d", ErrIndexOutOfRange, partnerIndex)
	}
	if len(d.Partners) == 1 {
		return d.clone(), nil
	}
	out := d.clone()
	out.Partners = append(out.Partners[:partnerIndex], out.Partners[partnerIndex+1:]...)
	return out, nil
}

// AddProduct appends an empty product to the partner at partnerIndex.
func (d Draft) AddProduct(partnerIndex int) (Draft, error) {
	if partnerIndex < 0 || partnerIndex >= len(d.Partners) {
		return d, fmt.Errorf("%w: partner %d", ErrIndexOutOfRange, partnerIndex)
	}
	out := d.clone()
	p := &out.Partners[partnerIndex]
	p.Products = append(p.Products, newProduct())
	return out, nil
}

// RemoveProduct removes the product at productIndex from the partner at
// partnerIndex; higher-index products in the same partner shift down.
// Removing the partner's only product is a silent no-op.
func (d Draft) RemoveProduct(partnerIndex, productIndex int) (Draft, error) {
	if partnerIndex < 0 || partnerIndex >= len(d.Partners) {
		return d, fmt.Errorf("%w: partner %d", ErrIndexOutOfRange, partnerIndex)
	}
	p := d.Partners[partnerIndex]
	if productIndex < 0 || productIndex >= len(p.Products) {
		return d, fmt.Errorf("%w: partner %d product %d", ErrIndexOutOfRange, partnerIndex, productIndex)
	}
	if len(p.Products) == 1 {
		return d.clone(), nil
	}
	out := d.clone()
	cp := &out.Partners[partnerIndex]
	cp.Products = append(cp.Products[:productIndex], cp.Products[productIndex+1:]...)
	return out, nil
}

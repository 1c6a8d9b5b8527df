package draft

import (
	"github.com/opencertify/certify/internal/types"
)

// Submission is the wire shape accepted by the application create endpoint.
// It mirrors the draft tree without the local rendering keys. The partner and
// product lists are flexible so a lone object is accepted where an array is
// expected.
type Submission struct {
	Name        string                            `json:"name"`
	Description string                            `json:"description"`
	CompanyInfo SubmissionCompany                 `json:"company_info"`
	Partners    types.FlexList[SubmissionPartner] `json:"supply_chain_partners"`
}

// SubmissionCompany carries the company info block of a submission.
type SubmissionCompany struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// SubmissionPartner carries one supply chain partner of a submission.
type SubmissionPartner struct {
	Name     string                            `json:"name"`
	Address  string                            `json:"address"`
	City     string                            `json:"city"`
	State    string                            `json:"state"`
	ZipCode  string                            `json:"zip_code"`
	Country  string                            `json:"country"`
	Products types.FlexList[SubmissionProduct] `json:"products"`
}

// SubmissionProduct carries one product of a submission partner.
type SubmissionProduct struct {
	PartnerNameRaw   string `json:"supply_chain_partner_name_raw"`
	ProductName      string `json:"product_name"`
	ProductCategory  string `json:"product_category"`
	RawMaterialsList string `json:"raw_materials_list"`
}

// Normalize projects a draft into its submission payload. Each product's
// denormalized partner name is recomputed from the owning partner's current
// name when that name is non-empty; otherwise the product's prior raw value is
// kept. This is a one-time projection at submission time and is never written
// back into the draft.
func Normalize(d Draft) Submission {
	s := Submission{
		Name:        d.Name,
		Description: d.Description,
		CompanyInfo: SubmissionCompany{
			Name:    d.CompanyInfo.Name,
			Address: d.CompanyInfo.Address,
			City:    d.CompanyInfo.City,
			State:   d.CompanyInfo.State,
			ZipCode: d.CompanyInfo.ZipCode,
			Country: d.CompanyInfo.Country,
		},
		Partners: make([]SubmissionPartner, len(d.Partners)),
	}

	for i, partner := range d.Partners {
		sp := SubmissionPartner{
			Name:     partner.Name,
			Address:  partner.Address,
			City:     partner.City,
			State:    partner.State,
			ZipCode:  partner.ZipCode,
			Country:  partner.Country,
			Products: make([]SubmissionProduct, len(partner.Products)),
		}
		for j, product := range partner.Products {
			raw := product.PartnerNameRaw
			if partner.Name != "" {
				raw = partner.Name
			}
			sp.Products[j] = SubmissionProduct{
				PartnerNameRaw:   raw,
				ProductName:      product.ProductName,
				ProductCategory:  product.ProductCategory,
				RawMaterialsList: product.RawMaterialsList,
			}
		}
		s.Partners[i] = sp
	}

	return s
}

// FromSubmission rebuilds a draft tree from a submission payload so direct
// POST bodies can run through the same validation as interactive drafts.
// Rendering keys are regenerated.
func FromSubmission(s Submission) Draft {
	d := Draft{
		Name:        s.Name,
		Description: s.Description,
		CompanyInfo: CompanyInfo{
			Name:    s.CompanyInfo.Name,
			Address: s.CompanyInfo.Address,
			City:    s.CompanyInfo.City,
			State:   s.CompanyInfo.State,
			ZipCode: s.CompanyInfo.ZipCode,
			Country: s.CompanyInfo.Country,
		},
		Partners: make([]Partner, len(s.Partners)),
	}
	for i, sp := range s.Partners {
		p := newPartner()
		p.Name = sp.Name
		p.Address = sp.Address
		p.City = sp.City
		p.State = sp.State
		p.ZipCode = sp.ZipCode
		p.Country = sp.Country
		p.Products = make([]Product, len(sp.Products))
		for j, spr := range sp.Products {
			pr := newProduct()
			pr.PartnerNameRaw = spr.PartnerNameRaw
			pr.ProductName = spr.ProductName
			pr.ProductCategory = spr.ProductCategory
			pr.RawMaterialsList = spr.RawMaterialsList
			p.Products[j] = pr
		}
		d.Partners[i] = p
	}
	return d
}

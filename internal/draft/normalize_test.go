package draft

import (
	"encoding/json"
	"testing"
)

// TestNormalizePartnerNameRaw verifies the denormalized partner name on each
// product: the owning partner's current name wins, the prior raw value is kept
// only when the partner name is empty.
func TestNormalizePartnerNameRaw(t *testing.T) {
	d := New()
	d, _ = d.SetPartnerField(0, "name", "Renamed Supplier")
	d, _ = d.SetProductField(0, 0, "supply_chain_partner_name_raw", "Old Supplier")
	d, _ = d.SetProductField(0, 0, "product_name", "Gadget")

	d = d.AddPartner()
	d, _ = d.SetProductField(1, 0, "supply_chain_partner_name_raw", "Kept Raw")

	s := Normalize(d)

	if got := s.Partners[0].Products[0].PartnerNameRaw; got != "Renamed Supplier" {
		t.Errorf("Expected partner name to win, got %q", got)
	}
	if got := s.Partners[1].Products[0].PartnerNameRaw; got != "Kept Raw" {
		t.Errorf("Expected prior raw value kept for unnamed partner, got %q", got)
	}

	// Normalization is a projection, never written back.
	if d.Partners[0].Products[0].PartnerNameRaw != "Old Supplier" {
		t.Error("Expected draft untouched by Normalize")
	}
}

// TestNormalizePayloadShape verifies the wire payload carries no rendering
// keys and uses the snake_case field names.
func TestNormalizePayloadShape(t *testing.T) {
	d := New()
	d, _ = d.SetField("name", "App")
	d, _ = d.SetCompanyField("zip_code", "62701")
	d, _ = d.SetPartnerField(0, "name", "Supplier")
	d, _ = d.SetProductField(0, 0, "product_name", "Gadget")

	raw, err := json.Marshal(Normalize(d))
	if err != nil {
		t.Fatalf("Failed to marshal submission: %v", err)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("Failed to unmarshal payload: %v", err)
	}

	company, ok := payload["company_info"].(map[string]interface{})
	if !ok {
		t.Fatal("Expected company_info object")
	}
	if company["zip_code"] != "62701" {
		t.Errorf("Expected zip_code in payload, got %v", company["zip_code"])
	}

	partners, ok := payload["supply_chain_partners"].([]interface{})
	if !ok || len(partners) != 1 {
		t.Fatalf("Expected 1 partner in payload, got %v", payload["supply_chain_partners"])
	}
	partner := partners[0].(map[string]interface{})
	if _, present := partner["key"]; present {
		t.Error("Expected no rendering key on partner payload")
	}
	product := partner["products"].([]interface{})[0].(map[string]interface{})
	if _, present := product["key"]; present {
		t.Error("Expected no rendering key on product payload")
	}
	if product["supply_chain_partner_name_raw"] != "Supplier" {
		t.Errorf("Expected raw partner name, got %v", product["supply_chain_partner_name_raw"])
	}
}

// TestFromSubmissionRoundtrip verifies a direct payload rebuilds a draft that
// validates like an interactive one.
func TestFromSubmissionRoundtrip(t *testing.T) {
	s := Submission{
		Name: "App",
		CompanyInfo: SubmissionCompany{
			Name:    "Acme",
			Address: "1 Main St",
		},
		Partners: []SubmissionPartner{
			{
				Name: "Supplier",
				Products: []SubmissionProduct{
					{ProductName: "Gadget", ProductCategory: "PC0001"},
				},
			},
		},
	}

	d := FromSubmission(s)
	if err := Validate(d); err != nil {
		t.Errorf("Expected rebuilt draft to validate, got %v", err)
	}
	if d.Partners[0].Key == "" || d.Partners[0].Products[0].Key == "" {
		t.Error("Expected rendering keys regenerated")
	}
}

// TestSubmissionFlexibleLists verifies a lone object is accepted where an
// array is expected.
func TestSubmissionFlexibleLists(t *testing.T) {
	raw := []byte(`{
		"name": "App",
		"company_info": {"name": "Acme", "address": "1 Main St"},
		"supply_chain_partners": {
			"name": "Supplier",
			"products": {"product_name": "Gadget", "product_category": "PC0001"}
		}
	}`)

	var s Submission
	if err := json.Unmarshal(raw, &s); err != nil {
		t.Fatalf("Failed to unmarshal submission: %v", err)
	}
	if len(s.Partners) != 1 {
		t.Fatalf("Expected 1 partner, got %d", len(s.Partners))
	}
	if len(s.Partners[0].Products) != 1 {
		t.Fatalf("Expected 1 product, got %d", len(s.Partners[0].Products))
	}
	if s.Partners[0].Products[0].ProductName != "Gadget" {
		t.Errorf("Unexpected product: %+v", s.Partners[0].Products[0])
	}
}

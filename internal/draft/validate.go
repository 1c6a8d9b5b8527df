package draft

import (
	"fmt"
	"strings"
)

// ValidationError is a local pre-submission failure. It carries the single
// human-readable message shown to the user; the draft is never modified by a
// failed validation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Validate checks the draft before submission, short-circuiting on the first
// failure: application name, company name, company address, then each partner
// in order and each of its products in order. Returns nil when the draft is
// submittable.
func Validate(d Draft) error {
	if strings.TrimSpace(d.Name) == "" {
		return invalid("Application name is required")
	}
	if strings.TrimSpace(d.CompanyInfo.Name) == "" {
		return invalid("Company name is required")
	}
	if strings.TrimSpace(d.CompanyInfo.Address) == "" {
		return invalid("Company address is required")
	}

	for i, partner := range d.Partners {
		if strings.TrimSpace(partner.Name) == "" {
			return invalid("Supply chain partner #%d name is required", i+1)
		}
		for j, product := range partner.Products {
			if strings.TrimSpace(product.ProductName) == "" {
				return invalid("Product name is required for partner #%d, product #%d", i+1, j+1)
			}
			if strings.TrimSpace(product.ProductCategory) == "" {
				return invalid("Product category is required for partner #%d, product #%d", i+1, j+1)
			}
		}
	}

	return nil
}

package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/posadmin/backend/internal/domain/shared"
)

// ProductSummary is the read-only list view of a product supplied by the
// upstream retail API.
type ProductSummary struct {
	ID          string `json:"id"`
	ModelNumber string `json:"modelNumber"`
	CompanyName string `json:"companyName"`
}

// ProductDetail is the full product representation returned by the
// upstream API on reads and after an update.
type ProductDetail struct {
	ID          string `json:"id"`
	ModelNumber string `json:"modelNumber"`
	CompanyName string `json:"companyName"`
	ProductType string `json:"productType"`
	StorePrice  string `json:"storePrice"`
	OnlinePrice string `json:"onlinePrice"`
}

// ProductUpdate is the editable set of product fields sent upstream on a
// product edit. Prices are decimal strings on the wire.
type ProductUpdate struct {
	ModelNumber string `json:"modelNumber"`
	CompanyName string `json:"companyName"`
	ProductType string `json:"productType"`
	StorePrice  string `json:"storePrice"`
	OnlinePrice string `json:"onlinePrice"`
}

// Validate runs the schema check over a product edit, reporting every
// failing constraint together. Pure and network-free.
func (u ProductUpdate) Validate() *shared.ValidationErrors {
	ve := &shared.ValidationErrors{}

	if u.ModelNumber == "" {
		ve.Add("modelNumber", "Model number is required")
	}
	if u.CompanyName == "" {
		ve.Add("companyName", "Company name is required")
	}
	if u.ProductType == "" {
		ve.Add("productType", "Product type is required")
	}
	validatePrice(ve, "storePrice", u.StorePrice)
	validatePrice(ve, "onlinePrice", u.OnlinePrice)

	return ve
}

func validatePrice(ve *shared.ValidationErrors, field, value string) {
	if value == "" {
		ve.Add(field, "Price is required")
		return
	}
	price, err := decimal.NewFromString(value)
	if err != nil {
		ve.Add(field, "Price must be a decimal number")
		return
	}
	if price.IsNegative() {
		ve.Add(field, "Price cannot be negative")
	}
}

package returns

import (
	"fmt"

	"github.com/posadmin/backend/internal/domain/shared"
)

// Validate runs the full schema check over a draft and reports every
// failing constraint together, keyed by field path. It is pure: no
// network, no mutation of the draft. Evaluation order only affects the
// ordering of the reported errors, never the outcome.
func Validate(d *Draft) *shared.ValidationErrors {
	ve := &shared.ValidationErrors{}

	if d.OriginalSaleID == "" {
		ve.Add(FieldOriginalSaleID, "Original sale is required")
	}
	if d.ReturnType == "" {
		ve.Add(FieldReturnType, "Return type is required")
	} else if !ReturnType(d.ReturnType).IsValid() {
		ve.Add(FieldReturnType, "Return type must be refund or exchange")
	}
	if d.RefundAmount == "" {
		ve.Add(FieldRefundAmount, "Refund amount is required")
	}
	if len(d.Items) == 0 {
		ve.Add("items", "At least one return item is required")
	}

	for idx, item := range d.Items {
		validateItem(ve, idx, item)
	}

	return ve
}

// validateItem checks one line item independently of the others
func validateItem(ve *shared.ValidationErrors, idx int, item ItemDraft) {
	if item.ProductID == "" {
		ve.Add(itemField(idx, "productId"), "Product is required")
	}
	if item.Color == "" {
		ve.Add(itemField(idx, "color"), "Color is required")
	}
	if item.Size == "" {
		ve.Add(itemField(idx, "size"), "Size is required")
	}
	if item.Quantity < 1 {
		ve.Add(itemField(idx, "quantity"), "Quantity must be at least 1")
	}
}

func itemField(idx int, name string) string {
	return fmt.Sprintf("items[%d].%s", idx, name)
}

package returns

import (
	"time"

	"github.com/google/uuid"

	"github.com/posadmin/backend/internal/domain/returns"
	"github.com/posadmin/backend/internal/domain/shared"
)

// ItemInput carries one line item's fields from the form
type ItemInput struct {
	ProductID string `json:"productId"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// toDomain converts form input to the domain item draft
func (i ItemInput) toDomain() returns.ItemDraft {
	return returns.ItemDraft{
		ProductID: i.ProductID,
		Color:     i.Color,
		Size:      i.Size,
		Quantity:  i.Quantity,
	}
}

// ItemResponse is one line item in draft responses
type ItemResponse struct {
	ProductID string `json:"productId"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// DraftResponse is the full draft view returned to the form, including
// the current validation state so the UI can render per-field errors
// without a separate round trip.
type DraftResponse struct {
	ID             uuid.UUID           `json:"id"`
	OriginalSaleID string              `json:"originalSaleId"`
	ReturnType     string              `json:"returnType"`
	RefundAmount   string              `json:"refundAmount"`
	Items          []ItemResponse      `json:"items"`
	Valid          bool                `json:"valid"`
	FieldErrors    []shared.FieldError `json:"fieldErrors,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// SubmitResponse reports a successful submission
type SubmitResponse struct {
	ReturnID string `json:"returnId"`
	Message  string `json:"message"`
}

// ToDraftResponse converts a domain draft plus its validation state
func ToDraftResponse(d *returns.Draft) DraftResponse {
	items := make([]ItemResponse, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, ItemResponse{
			ProductID: item.ProductID,
			Color:     item.Color,
			Size:      item.Size,
			Quantity:  item.Quantity,
		})
	}

	ve := returns.Validate(d)

	return DraftResponse{
		ID:             d.ID,
		OriginalSaleID: d.OriginalSaleID,
		ReturnType:     d.ReturnType,
		RefundAmount:   d.RefundAmount,
		Items:          items,
		Valid:          !ve.HasErrors(),
		FieldErrors:    ve.Errors,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

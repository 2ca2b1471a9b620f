package returns

import (
	"time"

	"github.com/google/uuid"

	"github.com/posadmin/backend/internal/domain/sales"
	"github.com/posadmin/backend/internal/domain/shared"
)

// ReturnType represents how a returned sale is settled
type ReturnType string

const (
	ReturnTypeRefund   ReturnType = "refund"
	ReturnTypeExchange ReturnType = "exchange"
)

// IsValid checks if the return type is a known settlement type
func (t ReturnType) IsValid() bool {
	switch t {
	case ReturnTypeRefund, ReturnTypeExchange:
		return true
	}
	return false
}

// String returns the string representation of ReturnType
func (t ReturnType) String() string {
	return string(t)
}

// Header field names accepted by SetField. They match the wire names of
// the upstream returns payload.
const (
	FieldOriginalSaleID = "originalSaleId"
	FieldReturnType     = "returnType"
	FieldRefundAmount   = "refundAmount"
)

// ItemDraft is one line of a return being composed. All fields are plain
// user input until validation runs.
type ItemDraft struct {
	ProductID string `json:"productId"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// NewItemDraft returns the default empty line added to a fresh draft
// and by AppendDefaultItem.
func NewItemDraft() ItemDraft {
	return ItemDraft{Quantity: 1}
}

// Draft is the in-memory representation of a return being composed:
// header fields, an ordered list of line items, and timestamps for the
// session store. It lives only for the duration of a form session and is
// discarded on cancel or successful submission.
type Draft struct {
	ID             uuid.UUID   `json:"id"`
	OriginalSaleID string      `json:"originalSaleId"`
	ReturnType     string      `json:"returnType"`
	RefundAmount   string      `json:"refundAmount"`
	Items          []ItemDraft `json:"items"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// NewDraft creates a draft the way the form opens: empty header, refund
// amount "0", and a single empty line item.
func NewDraft() *Draft {
	now := time.Now()
	return &Draft{
		ID:           uuid.New(),
		RefundAmount: "0",
		Items:        []ItemDraft{NewItemDraft()},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// SetField overwrites the named header field. Updates are total
// overwrites of the named field; no merge semantics.
func (d *Draft) SetField(name, value string) error {
	switch name {
	case FieldOriginalSaleID:
		d.OriginalSaleID = value
	case FieldReturnType:
		d.ReturnType = value
	case FieldRefundAmount:
		d.RefundAmount = value
	default:
		return shared.NewDomainError("UNKNOWN_FIELD", "Unknown draft field: "+name)
	}
	d.UpdatedAt = time.Now()
	return nil
}

// AppendItem adds an item at the end of the sequence, preserving the
// ordering of existing lines.
func (d *Draft) AppendItem(item ItemDraft) {
	d.Items = append(d.Items, item)
	d.UpdatedAt = time.Now()
}

// AppendDefaultItem adds an empty line item at the end of the sequence
func (d *Draft) AppendDefaultItem() {
	d.AppendItem(NewItemDraft())
}

// UpdateItem overwrites the item at the given index
func (d *Draft) UpdateItem(index int, item ItemDraft) error {
	if index < 0 || index >= len(d.Items) {
		return shared.NewDomainError("ITEM_NOT_FOUND", "Return item index out of range")
	}
	d.Items[index] = item
	d.UpdatedAt = time.Now()
	return nil
}

// RemoveItem removes the item at the given index. Removing the sole
// remaining item is rejected: a draft never has an empty item list.
func (d *Draft) RemoveItem(index int) error {
	if index < 0 || index >= len(d.Items) {
		return shared.NewDomainError("ITEM_NOT_FOUND", "Return item index out of range")
	}
	if len(d.Items) == 1 {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove the last remaining return item")
	}
	d.Items = append(d.Items[:index], d.Items[index+1:]...)
	d.UpdatedAt = time.Now()
	return nil
}

// SelectSale records the selected sale and derives the default refund
// amount from it. The selection overwrites the refund amount exactly
// once; the field stays freely editable afterwards. An id absent from the
// supplied collection leaves the current amount untouched.
func (d *Draft) SelectSale(summaries []sales.SaleSummary, saleID string) {
	d.OriginalSaleID = saleID
	if amount, ok := DeriveDefaultRefund(summaries, saleID); ok {
		d.RefundAmount = amount
	}
	d.UpdatedAt = time.Now()
}

// ItemCount returns the number of line items in the draft
func (d *Draft) ItemCount() int {
	return len(d.Items)
}

// Clone returns a deep copy of the draft, detached from the session store
func (d *Draft) Clone() *Draft {
	cp := *d
	cp.Items = make([]ItemDraft, len(d.Items))
	copy(cp.Items, d.Items)
	return &cp
}

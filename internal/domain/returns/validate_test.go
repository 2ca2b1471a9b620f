package returns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/posadmin/backend/internal/domain/sales"
)

func validDraft() *Draft {
	d := NewDraft()
	d.OriginalSaleID = "S1"
	d.ReturnType = string(ReturnTypeRefund)
	d.RefundAmount = "150.00"
	d.Items = []ItemDraft{{ProductID: "P1", Color: "أسود", Size: "L", Quantity: 2}}
	return d
}

func TestValidate(t *testing.T) {
	t.Run("valid draft has no field errors", func(t *testing.T) {
		ve := Validate(validDraft())
		assert.False(t, ve.HasErrors())
		assert.Empty(t, ve.Errors)
	})

	t.Run("reports all header errors together", func(t *testing.T) {
		d := validDraft()
		d.OriginalSaleID = ""
		d.ReturnType = ""
		d.RefundAmount = ""

		ve := Validate(d)
		require.True(t, ve.HasErrors())
		assert.Len(t, ve.Errors, 3)
		assert.NotEmpty(t, ve.ForField(FieldOriginalSaleID))
		assert.NotEmpty(t, ve.ForField(FieldReturnType))
		assert.NotEmpty(t, ve.ForField(FieldRefundAmount))
	})

	t.Run("rejects unknown return type", func(t *testing.T) {
		d := validDraft()
		d.ReturnType = "store-credit"

		ve := Validate(d)
		require.True(t, ve.HasErrors())
		assert.Contains(t, ve.ForField(FieldReturnType)[0], "refund or exchange")
	})

	t.Run("empty items sequence yields an items-count error", func(t *testing.T) {
		d := validDraft()
		d.Items = nil

		ve := Validate(d)
		require.True(t, ve.HasErrors())
		assert.NotEmpty(t, ve.ForField("items"))
	})

	t.Run("every item is checked independently", func(t *testing.T) {
		d := validDraft()
		d.Items = []ItemDraft{
			{ProductID: "", Color: "", Size: "", Quantity: 1},
			{ProductID: "P2", Color: "red", Size: "M", Quantity: 0},
		}

		ve := Validate(d)
		require.True(t, ve.HasErrors())
		assert.NotEmpty(t, ve.ForField("items[0].productId"))
		assert.NotEmpty(t, ve.ForField("items[0].color"))
		assert.NotEmpty(t, ve.ForField("items[0].size"))
		assert.Empty(t, ve.ForField("items[0].quantity"))
		assert.NotEmpty(t, ve.ForField("items[1].quantity"))
		assert.Empty(t, ve.ForField("items[1].productId"))
	})

	t.Run("validation does not mutate the draft", func(t *testing.T) {
		d := validDraft()
		before := d.Clone()

		_ = Validate(d)

		assert.Equal(t, before.Items, d.Items)
		assert.Equal(t, before.RefundAmount, d.RefundAmount)
	})
}

func TestDeriveDefaultRefund(t *testing.T) {
	summaries := []sales.SaleSummary{
		{ID: "S1", InvoiceNumber: "INV-001", Total: "150.00"},
		{ID: "S2", InvoiceNumber: "INV-002", Total: "0.99"},
	}

	t.Run("returns the sale total unchanged", func(t *testing.T) {
		amount, ok := DeriveDefaultRefund(summaries, "S2")
		require.True(t, ok)
		assert.Equal(t, "0.99", amount)
	})

	t.Run("absent id reports not found", func(t *testing.T) {
		_, ok := DeriveDefaultRefund(summaries, "S9")
		assert.False(t, ok)
	})

	t.Run("empty collection reports not found", func(t *testing.T) {
		_, ok := DeriveDefaultRefund(nil, "S1")
		assert.False(t, ok)
	})
}

package returns

import (
	"github.com/posadmin/backend/internal/domain/sales"
)

// DeriveDefaultRefund looks up the sale by id in the supplied collection
// and returns its total, unchanged, as the new default refund amount.
// An absent id is not an error: the second return value is false and the
// caller keeps the current amount. A sale removed between fetch and
// selection therefore degrades to a silent no-op.
func DeriveDefaultRefund(summaries []sales.SaleSummary, saleID string) (string, bool) {
	sale := sales.FindByID(summaries, saleID)
	if sale == nil {
		return "", false
	}
	return sale.Total, true
}

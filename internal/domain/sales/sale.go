package sales

import (
	"github.com/shopspring/decimal"

	"github.com/posadmin/backend/internal/domain/shared"
)

// Channel represents the sales channel a sale was made through
type Channel string

const (
	ChannelOnline  Channel = "online"
	ChannelInStore Channel = "in-store"
)

// IsValid checks if the channel is a known sales channel
func (c Channel) IsValid() bool {
	switch c {
	case ChannelOnline, ChannelInStore:
		return true
	}
	return false
}

// String returns the string representation of Channel
func (c Channel) String() string {
	return string(c)
}

// SaleSummary is the read-only view of a completed sale supplied by the
// upstream retail API. Total is kept as the upstream decimal string; it is
// passed through unchanged when used as a default refund amount.
type SaleSummary struct {
	ID            string  `json:"id"`
	InvoiceNumber string  `json:"invoiceNumber"`
	Total         string  `json:"total"`
	Channel       Channel `json:"channel"`
	PaymentMethod string  `json:"paymentMethod"`
}

// TotalDecimal parses the sale total into a decimal
func (s SaleSummary) TotalDecimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s.Total)
	if err != nil {
		return decimal.Zero, shared.NewDomainError("INVALID_AMOUNT", "Sale total is not a valid decimal: "+s.Total)
	}
	return d, nil
}

// FindByID looks up a sale by id in a fetched collection.
// Returns nil when the id is absent.
func FindByID(summaries []SaleSummary, id string) *SaleSummary {
	for idx := range summaries {
		if summaries[idx].ID == id {
			return &summaries[idx]
		}
	}
	return nil
}

package gateway

import (
	"context"

	"github.com/posadmin/backend/internal/domain/catalog"
	"github.com/posadmin/backend/internal/domain/sales"
)

// RetailGateway is the client contract for the upstream retail API, the
// authoritative owner of products, sales and returns. All local state is
// either a cached copy of its collections or a draft not yet submitted.
type RetailGateway interface {
	ListProducts(ctx context.Context) ([]catalog.ProductSummary, error)
	ListSales(ctx context.Context) ([]sales.SaleSummary, error)
	CreateReturn(ctx context.Context, payload ReturnPayload) (*CreatedReturn, error)
	UpdateProduct(ctx context.Context, productID string, update catalog.ProductUpdate) (*catalog.ProductDetail, error)
}

// ReturnHeader carries the header fields of a submitted return,
// separated from the line items on the wire.
type ReturnHeader struct {
	OriginalSaleID string `json:"originalSaleId"`
	ReturnType     string `json:"returnType"`
	RefundAmount   string `json:"refundAmount"`
}

// ReturnItem is one submitted return line. Transient session identifiers
// are already stripped; only the upstream-relevant fields remain.
type ReturnItem struct {
	ProductID string `json:"productId"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// ReturnPayload is the body of the upstream create-return request
type ReturnPayload struct {
	Return ReturnHeader `json:"return"`
	Items  []ReturnItem `json:"items"`
}

// CreatedReturn is the upstream representation of a successfully created
// return.
type CreatedReturn struct {
	ID     string       `json:"id"`
	Return ReturnHeader `json:"return"`
	Items  []ReturnItem `json:"items"`
}

// UpstreamError is a non-2xx response from the retail API. Message holds
// the upstream error payload's message when one was provided.
type UpstreamError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "upstream request failed"
}

// UserMessage returns the message to surface to the user, falling back
// to a generic one when the upstream provided none.
func (e *UpstreamError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return "The request could not be completed. Please try again."
}

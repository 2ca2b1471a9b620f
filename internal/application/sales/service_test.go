package sales

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/posadmin/backend/internal/domain/catalog"
	"github.com/posadmin/backend/internal/domain/sales"
	"github.com/posadmin/backend/internal/infrastructure/cache"
	"github.com/posadmin/backend/internal/infrastructure/gateway"
)

type stubGateway struct {
	listCalls int
	list      []sales.SaleSummary
}

func (g *stubGateway) ListProducts(ctx context.Context) ([]catalog.ProductSummary, error) {
	return nil, nil
}

func (g *stubGateway) ListSales(ctx context.Context) ([]sales.SaleSummary, error) {
	g.listCalls++
	return g.list, nil
}

func (g *stubGateway) CreateReturn(ctx context.Context, payload gateway.ReturnPayload) (*gateway.CreatedReturn, error) {
	return nil, nil
}

func (g *stubGateway) UpdateProduct(ctx context.Context, productID string, update catalog.ProductUpdate) (*catalog.ProductDetail, error) {
	return nil, nil
}

func fixtureSales() []sales.SaleSummary {
	return []sales.SaleSummary{
		{ID: "s1", InvoiceNumber: "INV-1001", Total: "150.00", Channel: sales.ChannelInStore, PaymentMethod: "cash"},
		{ID: "s2", InvoiceNumber: "INV-1002", Total: "89.50", Channel: sales.ChannelOnline, PaymentMethod: "card"},
		{ID: "s3", InvoiceNumber: "INV-2001", Total: "12.00", Channel: sales.ChannelOnline, PaymentMethod: "cash"},
	}
}

func TestService_List(t *testing.T) {
	gw := &stubGateway{list: fixtureSales()}
	qc := cache.NewQueryCache(5*time.Minute, 10*time.Minute)
	svc := NewService(gw, qc, 5*time.Minute, nil)
	ctx := context.Background()

	t.Run("unfiltered returns everything", func(t *testing.T) {
		result, err := svc.List(ctx, ListFilter{})
		require.NoError(t, err)
		assert.Len(t, result, 3)
	})

	t.Run("filter by channel", func(t *testing.T) {
		result, err := svc.List(ctx, ListFilter{Channel: "online"})
		require.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("filter by payment method", func(t *testing.T) {
		result, err := svc.List(ctx, ListFilter{PaymentMethod: "cash"})
		require.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("search on invoice number is case-insensitive", func(t *testing.T) {
		result, err := svc.List(ctx, ListFilter{Search: "inv-10"})
		require.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("filters combine", func(t *testing.T) {
		result, err := svc.List(ctx, ListFilter{Channel: "online", PaymentMethod: "cash"})
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "s3", result[0].ID)
	})

	t.Run("no match yields an empty list", func(t *testing.T) {
		result, err := svc.List(ctx, ListFilter{Search: "INV-9999"})
		require.NoError(t, err)
		assert.Empty(t, result)
	})
}

func TestService_Collection_Caching(t *testing.T) {
	gw := &stubGateway{list: fixtureSales()}
	qc := cache.NewQueryCache(5*time.Minute, 10*time.Minute)
	svc := NewService(gw, qc, 5*time.Minute, nil)
	ctx := context.Background()

	_, err := svc.Collection(ctx)
	require.NoError(t, err)
	_, err = svc.Collection(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, gw.listCalls)

	qc.Drop(cache.TopicSales)

	_, err = svc.Collection(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, gw.listCalls)
}

package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/posadmin/backend/internal/domain/catalog"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(ClientConfig{BaseURL: srv.URL, GetRetryMax: 0}, nil)
}

func TestClient_ListSales(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/sales", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"S1","invoiceNumber":"INV-001","total":"150.00","channel":"in-store","paymentMethod":"cash"}]`))
	})

	summaries, err := client.ListSales(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "S1", summaries[0].ID)
	assert.Equal(t, "150.00", summaries[0].Total)
}

func TestClient_ListProducts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"P1","modelNumber":"MN-1","companyName":"Acme"}]`))
	})

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "MN-1", products[0].ModelNumber)
}

func TestClient_CreateReturn(t *testing.T) {
	payload := ReturnPayload{
		Return: ReturnHeader{OriginalSaleID: "S1", ReturnType: "refund", RefundAmount: "150.00"},
		Items:  []ReturnItem{{ProductID: "P1", Color: "black", Size: "L", Quantity: 2}},
	}

	t.Run("success returns the created representation", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/returns", r.URL.Path)

			var received ReturnPayload
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			assert.Equal(t, payload, received)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(CreatedReturn{ID: "R1", Return: payload.Return, Items: payload.Items})
		})

		created, err := client.CreateReturn(context.Background(), payload)
		require.NoError(t, err)
		assert.Equal(t, "R1", created.ID)
	})

	t.Run("non-2xx surfaces the upstream message", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"stock mismatch"}`))
		})

		_, err := client.CreateReturn(context.Background(), payload)
		require.Error(t, err)

		upErr, ok := err.(*UpstreamError)
		require.True(t, ok)
		assert.Equal(t, http.StatusInternalServerError, upErr.StatusCode)
		assert.Equal(t, "stock mismatch", upErr.Message)
		assert.Equal(t, "stock mismatch", upErr.UserMessage())
	})

	t.Run("missing error payload falls back to a generic message", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.CreateReturn(context.Background(), payload)
		require.Error(t, err)

		upErr, ok := err.(*UpstreamError)
		require.True(t, ok)
		assert.Empty(t, upErr.Message)
		assert.NotEmpty(t, upErr.UserMessage())
	})

	t.Run("submission is sent exactly once even on failure", func(t *testing.T) {
		attempts := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		// A generous GET retry budget must not leak into writes
		client := NewClient(ClientConfig{BaseURL: srv.URL, GetRetryMax: 3}, nil)

		_, err := client.CreateReturn(context.Background(), payload)
		require.Error(t, err)
		assert.Equal(t, 1, attempts)
	})
}

func TestClient_UpdateProduct(t *testing.T) {
	update := catalog.ProductUpdate{
		ModelNumber: "MN-2",
		CompanyName: "Acme",
		ProductType: "shoes",
		StorePrice:  "99.00",
		OnlinePrice: "89.00",
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/products/P1", r.URL.Path)

		var received catalog.ProductUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		assert.Equal(t, update, received)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(catalog.ProductDetail{ID: "P1", ModelNumber: "MN-2", CompanyName: "Acme", ProductType: "shoes", StorePrice: "99.00", OnlinePrice: "89.00"})
	})

	detail, err := client.UpdateProduct(context.Background(), "P1", update)
	require.NoError(t, err)
	assert.Equal(t, "MN-2", detail.ModelNumber)
}

func TestClient_UpdateProductNotRetried(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, GetRetryMax: 3}, nil)

	_, err := client.UpdateProduct(context.Background(), "P1", catalog.ProductUpdate{ModelNumber: "MN-2"})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestClient_GetRetries(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, GetRetryMax: 2}, nil)

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Equal(t, 2, attempts)
}

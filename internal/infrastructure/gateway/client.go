package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/posadmin/backend/internal/domain/catalog"
	"github.com/posadmin/backend/internal/domain/sales"
)

// Client is the HTTP implementation of RetailGateway. Idempotent GETs go
// through a retrying transport; POST and PUT are sent exactly once — a
// failed submission is terminal for that attempt and the user resubmits
// explicitly.
type Client struct {
	baseURL     string
	getClient   *retryablehttp.Client
	writeClient *http.Client
	logger      *zap.Logger
}

// ClientConfig holds the upstream connection settings
type ClientConfig struct {
	BaseURL     string
	GetRetryMax int
}

// NewClient creates a retail API client
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	getClient := retryablehttp.NewClient()
	getClient.RetryMax = cfg.GetRetryMax
	getClient.Logger = nil

	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		getClient:   getClient,
		writeClient: &http.Client{},
		logger:      logger,
	}
}

// ListProducts fetches the products collection
func (c *Client) ListProducts(ctx context.Context) ([]catalog.ProductSummary, error) {
	var products []catalog.ProductSummary
	if err := c.get(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListSales fetches the sales collection
func (c *Client) ListSales(ctx context.Context) ([]sales.SaleSummary, error) {
	var summaries []sales.SaleSummary
	if err := c.get(ctx, "/sales", &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// CreateReturn submits a return. Never retried.
func (c *Client) CreateReturn(ctx context.Context, payload ReturnPayload) (*CreatedReturn, error) {
	var created CreatedReturn
	if err := c.write(ctx, http.MethodPost, "/returns", payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct replaces the editable fields of a product. Never retried.
func (c *Client) UpdateProduct(ctx context.Context, productID string, update catalog.ProductUpdate) (*catalog.ProductDetail, error) {
	var detail catalog.ProductDetail
	if err := c.write(ctx, http.MethodPut, "/products/"+productID, update, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// get performs a GET through the retrying transport
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.getClient.Do(req)
	if err != nil {
		return fmt.Errorf("upstream GET %s failed: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	return c.decode(path, resp, out)
}

// write performs a POST or PUT exactly once
func (c *Client) write(ctx context.Context, method, path string, body, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode upstream request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("failed to build upstream request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.writeClient.Do(req)
	if err != nil {
		return fmt.Errorf("upstream %s %s failed: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	return c.decode(path, resp, out)
}

// decode reads a response, converting non-2xx statuses into UpstreamError
func (c *Client) decode(path string, resp *http.Response, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		upErr := &UpstreamError{StatusCode: resp.StatusCode}

		var payload struct {
			Message string `json:"message"`
		}
		raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if err == nil && json.Unmarshal(raw, &payload) == nil {
			upErr.Message = payload.Message
		}

		c.logger.Warn("Upstream request rejected",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", upErr.Message),
		)
		return upErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode upstream response: %w", err)
	}
	return nil
}

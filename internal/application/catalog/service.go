package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/posadmin/backend/internal/domain/catalog"
	"github.com/posadmin/backend/internal/infrastructure/cache"
	"github.com/posadmin/backend/internal/infrastructure/gateway"
	"github.com/posadmin/backend/internal/infrastructure/notify"
)

// ListFilter narrows and pages the product listing
type ListFilter struct {
	Search   string // matched against model numbers and company names
	Page     int
	PageSize int
}

// Service handles the product catalog admin operations: listing with
// search over the cached collection, and edits pushed upstream followed
// by a products cache invalidation.
type Service struct {
	gw          gateway.RetailGateway
	cache       *cache.QueryCache
	invalidator cache.Invalidator
	notifier    notify.Notifier
	ttl         time.Duration
	logger      *zap.Logger
}

// NewService creates a catalog admin service
func NewService(
	gw gateway.RetailGateway,
	qc *cache.QueryCache,
	invalidator cache.Invalidator,
	notifier notify.Notifier,
	ttl time.Duration,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gw: gw, cache: qc, invalidator: invalidator, notifier: notifier, ttl: ttl, logger: logger}
}

// Collection returns the full cached products collection, fetching it
// from upstream on a cache miss.
func (s *Service) Collection(ctx context.Context) ([]catalog.ProductSummary, error) {
	if v, ok := s.cache.Get(cache.TopicProducts); ok {
		if list, ok := v.([]catalog.ProductSummary); ok {
			return list, nil
		}
	}

	list, err := s.gw.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetWithTTL(cache.TopicProducts, list, s.ttl)
	s.logger.Debug("Products collection fetched", zap.Int("count", len(list)))
	return list, nil
}

// List returns one page of the filtered product listing plus the total
// number of filtered entries.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]catalog.ProductSummary, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	collection, err := s.Collection(ctx)
	if err != nil {
		return nil, 0, err
	}

	search := strings.ToLower(filter.Search)
	filtered := lo.Filter(collection, func(p catalog.ProductSummary, _ int) bool {
		if search == "" {
			return true
		}
		return strings.Contains(strings.ToLower(p.ModelNumber), search) ||
			strings.Contains(strings.ToLower(p.CompanyName), search)
	})

	total := int64(len(filtered))
	start := (filter.Page - 1) * filter.PageSize
	if start >= len(filtered) {
		return []catalog.ProductSummary{}, total, nil
	}
	end := start + filter.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], total, nil
}

// Update validates a product edit, pushes it upstream, and invalidates
// the products topic so the listing refetches. A failed upstream call
// leaves the cache untouched.
func (s *Service) Update(ctx context.Context, productID string, update catalog.ProductUpdate) (*catalog.ProductDetail, error) {
	if ve := update.Validate(); ve.HasErrors() {
		return nil, ve
	}

	detail, err := s.gw.UpdateProduct(ctx, productID, update)
	if err != nil {
		if upErr, ok := err.(*gateway.UpstreamError); ok {
			s.notifier.Notify(ctx, notify.Notification{Severity: notify.SeverityError, Message: upErr.UserMessage()})
		}
		return nil, err
	}

	s.invalidator.Invalidate(ctx, cache.TopicProducts)
	s.notifier.Notify(ctx, notify.Notification{Severity: notify.SeveritySuccess, Message: "Product updated successfully"})

	return detail, nil
}

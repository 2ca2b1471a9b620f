package sales

import (
	"context"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/posadmin/backend/internal/domain/sales"
	"github.com/posadmin/backend/internal/infrastructure/cache"
	"github.com/posadmin/backend/internal/infrastructure/gateway"
)

// ListFilter narrows the sales listing for the return form's sale picker
type ListFilter struct {
	Channel       string
	PaymentMethod string
	Search        string // matched against invoice numbers
}

// Service serves the read-only sales collection. The collection is
// fetched from the upstream API once per cache window and never mutated
// locally; invalidating the sales topic forces a refetch.
type Service struct {
	gw     gateway.RetailGateway
	cache  *cache.QueryCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewService creates a sales listing service
func NewService(gw gateway.RetailGateway, qc *cache.QueryCache, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gw: gw, cache: qc, ttl: ttl, logger: logger}
}

// Collection returns the full cached sales collection, fetching it from
// upstream on a cache miss.
func (s *Service) Collection(ctx context.Context) ([]sales.SaleSummary, error) {
	if v, ok := s.cache.Get(cache.TopicSales); ok {
		if list, ok := v.([]sales.SaleSummary); ok {
			return list, nil
		}
	}

	list, err := s.gw.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetWithTTL(cache.TopicSales, list, s.ttl)
	s.logger.Debug("Sales collection fetched", zap.Int("count", len(list)))
	return list, nil
}

// List returns the sales collection narrowed by the filter
func (s *Service) List(ctx context.Context, filter ListFilter) ([]sales.SaleSummary, error) {
	collection, err := s.Collection(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(filter.Search)
	return lo.Filter(collection, func(sale sales.SaleSummary, _ int) bool {
		if filter.Channel != "" && sale.Channel.String() != filter.Channel {
			return false
		}
		if filter.PaymentMethod != "" && sale.PaymentMethod != filter.PaymentMethod {
			return false
		}
		if search != "" && !strings.Contains(strings.ToLower(sale.InvoiceNumber), search) {
			return false
		}
		return true
	}), nil
}

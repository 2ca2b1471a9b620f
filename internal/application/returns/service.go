package returns

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/posadmin/backend/internal/domain/returns"
	"github.com/posadmin/backend/internal/domain/sales"
	"github.com/posadmin/backend/internal/domain/shared"
	"github.com/posadmin/backend/internal/infrastructure/cache"
	"github.com/posadmin/backend/internal/infrastructure/gateway"
	"github.com/posadmin/backend/internal/infrastructure/notify"
)

// SalesReader supplies the cached sales collection for refund derivation
// and the sale picker
type SalesReader interface {
	Collection(ctx context.Context) ([]sales.SaleSummary, error)
}

// DraftService holds the return form sessions and orchestrates
// submission: validate, send upstream, invalidate dependent caches,
// notify, discard the draft. Drafts for abandoned sessions expire from
// the store on their TTL.
type DraftService struct {
	gw          gateway.RetailGateway
	salesReader SalesReader
	invalidator cache.Invalidator
	notifier    notify.Notifier
	logger      *zap.Logger

	drafts *gocache.Cache

	// mu guards draft mutation and the in-flight submission set. Form
	// events are serial per user, the store is shared across users.
	mu         sync.Mutex
	submitting map[uuid.UUID]struct{}
}

// NewDraftService creates the return draft service
func NewDraftService(
	gw gateway.RetailGateway,
	salesReader SalesReader,
	invalidator cache.Invalidator,
	notifier notify.Notifier,
	draftTTL, cleanupInterval time.Duration,
	logger *zap.Logger,
) *DraftService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftService{
		gw:          gw,
		salesReader: salesReader,
		invalidator: invalidator,
		notifier:    notifier,
		logger:      logger,
		drafts:      gocache.New(draftTTL, cleanupInterval),
		submitting:  make(map[uuid.UUID]struct{}),
	}
}

// Open starts a form session: a fresh draft with one empty item. The
// sales collection is warmed so the first sale selection derives its
// refund amount without an upstream round trip.
func (s *DraftService) Open(ctx context.Context) (*DraftResponse, error) {
	if _, err := s.salesReader.Collection(ctx); err != nil {
		// The picker will retry on selection; opening the form still works
		s.logger.Warn("Failed to warm sales collection for new draft", zap.Error(err))
	}

	draft := returns.NewDraft()

	s.mu.Lock()
	s.drafts.SetDefault(draft.ID.String(), draft)
	s.mu.Unlock()

	resp := ToDraftResponse(draft)
	return &resp, nil
}

// Get returns the draft with its current validation state
func (s *DraftService) Get(ctx context.Context, draftID uuid.UUID) (*DraftResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.find(draftID)
	if err != nil {
		return nil, err
	}
	resp := ToDraftResponse(draft)
	return &resp, nil
}

// SetField overwrites a header field on the draft
func (s *DraftService) SetField(ctx context.Context, draftID uuid.UUID, name, value string) (*DraftResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.find(draftID)
	if err != nil {
		return nil, err
	}
	if err := draft.SetField(name, value); err != nil {
		return nil, err
	}
	resp := ToDraftResponse(draft)
	return &resp, nil
}

// SelectSale records the selected sale and derives the default refund
// amount from its total. A sale id missing from the collection leaves
// the amount untouched.
func (s *DraftService) SelectSale(ctx context.Context, draftID uuid.UUID, saleID string) (*DraftResponse, error) {
	collection, err := s.salesReader.Collection(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.find(draftID)
	if err != nil {
		return nil, err
	}
	draft.SelectSale(collection, saleID)
	resp := ToDraftResponse(draft)
	return &resp, nil
}

// AddItem appends a line item at the end of the draft. A nil input adds
// the default empty line.
func (s *DraftService) AddItem(ctx context.Context, draftID uuid.UUID, input *ItemInput) (*DraftResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.find(draftID)
	if err != nil {
		return nil, err
	}
	if input == nil {
		draft.AppendDefaultItem()
	} else {
		draft.AppendItem(input.toDomain())
	}
	resp := ToDraftResponse(draft)
	return &resp, nil
}

// UpdateItem overwrites the line item at the given index
func (s *DraftService) UpdateItem(ctx context.Context, draftID uuid.UUID, index int, input ItemInput) (*DraftResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.find(draftID)
	if err != nil {
		return nil, err
	}
	if err := draft.UpdateItem(index, input.toDomain()); err != nil {
		return nil, err
	}
	resp := ToDraftResponse(draft)
	return &resp, nil
}

// RemoveItem removes the line item at the given index. The sole
// remaining item cannot be removed.
func (s *DraftService) RemoveItem(ctx context.Context, draftID uuid.UUID, index int) (*DraftResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.find(draftID)
	if err != nil {
		return nil, err
	}
	if err := draft.RemoveItem(index); err != nil {
		return nil, err
	}
	resp := ToDraftResponse(draft)
	return &resp, nil
}

// Cancel discards the draft session
func (s *DraftService) Cancel(ctx context.Context, draftID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.find(draftID); err != nil {
		return err
	}
	s.drafts.Delete(draftID.String())
	return nil
}

// Submit runs the submission pipeline. Validation failures never reach
// the network and come back as ValidationErrors. An upstream failure is
// notified once and leaves the draft intact for an explicit retry; a
// success invalidates the products, returns and dashboard topics and
// discards the draft.
func (s *DraftService) Submit(ctx context.Context, draftID uuid.UUID) (*SubmitResponse, error) {
	s.mu.Lock()
	draft, err := s.find(draftID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if _, inFlight := s.submitting[draftID]; inFlight {
		s.mu.Unlock()
		return nil, shared.NewDomainError("SUBMISSION_IN_FLIGHT", "A submission for this draft is already in progress")
	}

	if ve := returns.Validate(draft); ve.HasErrors() {
		s.mu.Unlock()
		return nil, ve
	}

	s.submitting[draftID] = struct{}{}
	payload := buildPayload(draft)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.submitting, draftID)
		s.mu.Unlock()
	}()

	// The upstream POST is not retried, so a caller disconnect must not
	// cancel it mid-flight and leave the outcome unknown.
	created, err := s.gw.CreateReturn(context.WithoutCancel(ctx), payload)
	if err != nil {
		message := "The return could not be submitted. Please try again."
		if upErr, ok := err.(*gateway.UpstreamError); ok {
			message = upErr.UserMessage()
		}
		s.notifier.Notify(ctx, notify.Notification{Severity: notify.SeverityError, Message: message})
		s.logger.Warn("Return submission failed",
			zap.String("draft_id", draftID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.invalidator.Invalidate(ctx, cache.TopicProducts, cache.TopicReturns, cache.TopicDashboard)
	s.notifier.Notify(ctx, notify.Notification{Severity: notify.SeveritySuccess, Message: "Return submitted successfully"})

	s.mu.Lock()
	s.drafts.Delete(draftID.String())
	s.mu.Unlock()

	s.logger.Info("Return submitted",
		zap.String("draft_id", draftID.String()),
		zap.String("return_id", created.ID),
	)

	return &SubmitResponse{ReturnID: created.ID, Message: "Return submitted successfully"}, nil
}

// find looks a draft up in the session store. Callers hold s.mu.
func (s *DraftService) find(draftID uuid.UUID) (*returns.Draft, error) {
	v, ok := s.drafts.Get(draftID.String())
	if !ok {
		return nil, shared.ErrNotFound
	}
	return v.(*returns.Draft), nil
}

// buildPayload separates header fields from line items, dropping the
// transient session identifier.
func buildPayload(d *returns.Draft) gateway.ReturnPayload {
	items := make([]gateway.ReturnItem, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, gateway.ReturnItem{
			ProductID: item.ProductID,
			Color:     item.Color,
			Size:      item.Size,
			Quantity:  item.Quantity,
		})
	}
	return gateway.ReturnPayload{
		Return: gateway.ReturnHeader{
			OriginalSaleID: d.OriginalSaleID,
			ReturnType:     d.ReturnType,
			RefundAmount:   d.RefundAmount,
		},
		Items: items,
	}
}

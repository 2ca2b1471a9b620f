package notify

import (
	"context"

	"go.uber.org/zap"
)

// Severity classifies a user-facing notification
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a single user-facing message. Delivery (toast, banner)
// belongs to the presentation layer; this service only emits them.
type Notification struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Notifier delivers user-facing notifications
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// ZapNotifier logs notifications; the default sink when no presentation
// channel is attached.
type ZapNotifier struct {
	logger *zap.Logger
}

// NewZapNotifier creates a logging notifier
func NewZapNotifier(logger *zap.Logger) *ZapNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapNotifier{logger: logger}
}

// Notify implements Notifier
func (n *ZapNotifier) Notify(_ context.Context, notification Notification) {
	switch notification.Severity {
	case SeverityError:
		n.logger.Warn("User notification", zap.String("severity", string(notification.Severity)), zap.String("message", notification.Message))
	default:
		n.logger.Info("User notification", zap.String("severity", string(notification.Severity)), zap.String("message", notification.Message))
	}
}

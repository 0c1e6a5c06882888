package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/hospital-console/internal/events"
	"github.com/spec-kit/hospital-console/internal/observability"
)

// AuditService records session transitions in the log and the counters.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventSessionRestored, a.handleSessionStarted)
	a.dispatcher.Subscribe(events.EventSessionAuthenticated, a.handleSessionStarted)
	a.dispatcher.Subscribe(events.EventLoginFailed, a.handleLoginFailed)
	a.dispatcher.Subscribe(events.EventSessionLoggedOut, a.handleSessionEnded)
	a.dispatcher.Subscribe(events.EventSessionInvalidated, a.handleSessionEnded)
}

func (a *AuditService) handleSessionStarted(_ context.Context, event events.Event) error {
	a.metrics.RecordSessionEvent(string(event.Type))
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("username", event.Username),
		zap.Int64("user_id", event.UserID),
	}
	if payload, ok := event.Payload.(events.SessionStartedPayload); ok {
		fields = append(fields, zap.Strings("roles", payload.Roles), zap.Time("expires_at", payload.ExpiresAt))
	}
	a.logger.Info(string(event.Type), fields...)
	return nil
}

func (a *AuditService) handleLoginFailed(_ context.Context, event events.Event) error {
	a.metrics.RecordSessionEvent(string(event.Type))
	payload, _ := event.Payload.(events.LoginFailedPayload)
	a.logger.Warn(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("username", event.Username),
		zap.String("code", payload.Code))
	return nil
}

func (a *AuditService) handleSessionEnded(_ context.Context, event events.Event) error {
	a.metrics.RecordSessionEvent(string(event.Type))
	payload, _ := event.Payload.(events.SessionEndedPayload)
	a.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("username", event.Username),
		zap.String("reason", payload.Reason))
	return nil
}

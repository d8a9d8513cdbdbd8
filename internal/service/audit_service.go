package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/staff-service/internal/config"
	"github.com/spec-kit/staff-service/internal/events"
)

// AuditService records staff lifecycle events.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.AuditConfig
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.AuditConfig) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventStaffCreated, a.handleStaffCreated)
	a.dispatcher.Subscribe(events.EventStaffUpdated, a.handleStaffUpdated)
	a.dispatcher.Subscribe(events.EventStaffDeleted, a.handleStaffDeleted)
	a.dispatcher.Subscribe(events.EventStaffLogin, a.handleStaffLogin)
}

func (a *AuditService) handleStaffCreated(ctx context.Context, event events.Event) error {
	a.logger.Info("StaffCreated", zap.String("staff_id", event.StaffID), zap.Any("payload", event.Payload))
	a.sendWebhookStub(ctx, event)
	return nil
}

func (a *AuditService) handleStaffUpdated(ctx context.Context, event events.Event) error {
	a.logger.Info("StaffUpdated", zap.String("staff_id", event.StaffID), zap.Any("payload", event.Payload))
	a.sendWebhookStub(ctx, event)
	return nil
}

func (a *AuditService) handleStaffDeleted(ctx context.Context, event events.Event) error {
	a.logger.Info("StaffDeleted", zap.String("staff_id", event.StaffID), zap.Any("payload", event.Payload))
	a.sendWebhookStub(ctx, event)
	return nil
}

func (a *AuditService) handleStaffLogin(ctx context.Context, event events.Event) error {
	a.logger.Info("StaffLogin", zap.String("staff_id", event.StaffID))
	return nil
}

func (a *AuditService) sendWebhookStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(a.cfg.WebhookURL) == "" {
		return
	}
	a.logger.Debug("sendWebhookStub",
		zap.String("url", a.cfg.WebhookURL),
		zap.String("staff_id", event.StaffID),
		zap.String("event_type", string(event.Type)))
}

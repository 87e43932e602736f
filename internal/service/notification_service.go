package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-service/internal/config"
	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/events"
	"github.com/spec-kit/maintenance-service/internal/repository"
)

// Mailer delivers a notification intent. Delivery is best-effort; the
// engine never fails a mutation because a mailer did.
type Mailer interface {
	Deliver(ctx context.Context, intent *domain.NotificationIntent) error
}

// NotificationService turns committed domain events into notification
// intents and hands them to the mailer.
type NotificationService struct {
	dispatcher events.Dispatcher
	intents    repository.NotificationRepository
	mailer     Mailer
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, intents repository.NotificationRepository, mailer Mailer, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		intents:    intents,
		mailer:     mailer,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventMaintenanceCreated, n.handleCreated)
	n.dispatcher.Subscribe(events.EventScheduledMaintenanceCreated, n.handleCreated)
	n.dispatcher.Subscribe(events.EventMaintenanceUpdated, n.handleUpdated)
	n.dispatcher.Subscribe(events.EventMaintenanceStatusToggled, n.handleStatusToggled)
	n.dispatcher.Subscribe(events.EventMaintenanceReviewed, n.handleReviewed)
	n.dispatcher.Subscribe(events.EventMaintenanceDue, n.handleDue)
}

func (n *NotificationService) handleCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MaintenanceCreatedPayload)
	if !ok {
		return nil
	}
	subject := fmt.Sprintf("Maintenance %s assigned to you", payload.Code)
	body := fmt.Sprintf("A new %s-priority maintenance work order %s was created and assigned to you.",
		strings.ToLower(string(payload.Priority)), payload.Code)
	n.emit(ctx, payload.ResponsibleID, subject, body)
	return nil
}

func (n *NotificationService) handleUpdated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MaintenanceUpdatedPayload)
	if !ok {
		return nil
	}
	n.emit(ctx, payload.ResponsibleID,
		fmt.Sprintf("Maintenance %s updated", payload.Code),
		fmt.Sprintf("Work order %s has been updated.", payload.Code))
	return nil
}

func (n *NotificationService) handleStatusToggled(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MaintenanceStatusToggledPayload)
	if !ok {
		return nil
	}
	state := "deactivated"
	if payload.Active {
		state = "activated"
	}
	n.emit(ctx, payload.ResponsibleID,
		fmt.Sprintf("Maintenance %s %s", payload.Code, state),
		fmt.Sprintf("Work order %s has been %s.", payload.Code, state))
	return nil
}

func (n *NotificationService) handleReviewed(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MaintenanceReviewedPayload)
	if !ok || payload.RequestedByID == nil {
		return nil
	}
	body := fmt.Sprintf("Work order %s review outcome: %s.", payload.Code, payload.Outcome)
	if payload.RejectionReason != nil {
		body += " Reason: " + *payload.RejectionReason
	}
	n.emit(ctx, *payload.RequestedByID,
		fmt.Sprintf("Maintenance %s reviewed", payload.Code), body)
	return nil
}

func (n *NotificationService) handleDue(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MaintenanceDuePayload)
	if !ok {
		return nil
	}
	n.emit(ctx, payload.ResponsibleID,
		fmt.Sprintf("Maintenance %s is due", payload.Code),
		fmt.Sprintf("Scheduled maintenance %s was due on %s.", payload.Code, payload.DueAt.Format("2006-01-02")))
	return nil
}

// emit records the intent and hands it to the mailer. Failures are logged
// and swallowed.
func (n *NotificationService) emit(ctx context.Context, recipientID, subject, body string) {
	intent := &domain.NotificationIntent{
		RecipientID: recipientID,
		Subject:     subject,
		Body:        body,
	}
	if n.intents != nil {
		if err := n.intents.Create(ctx, intent); err != nil {
			n.logger.Warn("failed to record notification intent",
				zap.String("recipient", recipientID), zap.Error(err))
		}
	}
	if n.mailer != nil {
		if err := n.mailer.Deliver(ctx, intent); err != nil {
			n.logger.Warn("notification delivery failed",
				zap.String("recipient", recipientID),
				zap.String("subject", subject),
				zap.Error(err))
		}
	}
}

// logMailer writes deliveries to the log; a real SMTP or webhook adapter
// slots in behind the same interface.
type logMailer struct {
	logger *zap.Logger
	from   string
}

// NewLogMailer builds the logging mailer.
func NewLogMailer(logger *zap.Logger, cfg config.NotificationConfig) Mailer {
	return &logMailer{logger: logger, from: cfg.EmailFrom}
}

func (m *logMailer) Deliver(_ context.Context, intent *domain.NotificationIntent) error {
	m.logger.Info("notification delivered",
		zap.String("from", m.from),
		zap.String("recipient", intent.RecipientID),
		zap.String("subject", intent.Subject))
	return nil
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/events"
	"github.com/spec-kit/maintenance-service/internal/repository"
	"github.com/spec-kit/maintenance-service/internal/schedule"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// Work order code prefixes.
const (
	codePrefixAdHoc     = "MNT"
	codePrefixScheduled = "SCHED"
)

// maxCodeAttempts bounds retries when a generated code collides.
const maxCodeAttempts = 3

// MaintenanceService orchestrates the work order lifecycle: reference
// validation, code generation, the review state machine, the audit trail and
// event emission.
type MaintenanceService struct {
	uow        repository.UnitOfWork
	equipment  repository.EquipmentRepository
	types      repository.MaintenanceTypeRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// MaintenanceDependencies bundles collaborators for the service.
type MaintenanceDependencies struct {
	UnitOfWork          repository.UnitOfWork
	EquipmentRepo       repository.EquipmentRepository
	MaintenanceTypeRepo repository.MaintenanceTypeRepository
	UserRepo            repository.UserRepository
	Dispatcher          events.Dispatcher
	Logger              *zap.Logger
}

// NewMaintenanceService constructs the service.
func NewMaintenanceService(deps MaintenanceDependencies) *MaintenanceService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MaintenanceService{
		uow:        deps.UnitOfWork,
		equipment:  deps.EquipmentRepo,
		types:      deps.MaintenanceTypeRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// MaintenanceCreateInput describes work order creation payload.
type MaintenanceCreateInput struct {
	Description    string
	Priority       domain.MaintenancePriority
	EquipmentID    string
	TypeID         string
	ResponsibleID  string
	RequiresReview bool
}

// ScheduledCreateInput extends creation with the recurrence. The initial
// next-maintenance date is caller-supplied: it is the first due date, not a
// computed one.
type ScheduledCreateInput struct {
	MaintenanceCreateInput
	FrequencyKind   domain.FrequencyKind
	FrequencyEvery  int
	NextMaintenance time.Time
}

// MaintenanceUpdateInput describes an update. Recurrence fields apply only
// when the order carries an occurrence.
type MaintenanceUpdateInput struct {
	Description     string
	Priority        domain.MaintenancePriority
	EquipmentID     string
	TypeID          string
	ResponsibleID   string
	FrequencyKind   *domain.FrequencyKind
	FrequencyEvery  *int
	NextMaintenance *time.Time
}

// ReviewDecision names the requested review transition.
type ReviewDecision string

const (
	DecisionApprove  ReviewDecision = "APPROVE"
	DecisionReject   ReviewDecision = "REJECT"
	DecisionResubmit ReviewDecision = "RESUBMIT"
)

// CreateWorkOrder creates an ad hoc work order.
func (s *MaintenanceService) CreateWorkOrder(ctx context.Context, actorID string, input MaintenanceCreateInput) (*domain.MaintenanceWorkOrder, error) {
	order, err := s.prepareOrder(ctx, actorID, input)
	if err != nil {
		return nil, err
	}

	err = s.persistWithCode(ctx, order, codePrefixAdHoc, func(st repository.Stores) error {
		if err := st.Maintenances.Create(ctx, order); err != nil {
			return err
		}
		return st.Audit.Create(ctx, &domain.AuditEntry{
			MaintenanceID: order.ID,
			Action:        domain.AuditCreate,
			ActorID:       actorID,
			Detail:        map[string]any{"code": order.Code},
		})
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:          events.EventMaintenanceCreated,
		MaintenanceID: order.ID,
		ActorID:       actorID,
		Payload: events.MaintenanceCreatedPayload{
			Code:          order.Code,
			Priority:      order.Priority,
			EquipmentID:   order.EquipmentID,
			ResponsibleID: order.ResponsibleID,
		},
	})
	return order, nil
}

// CreateScheduledWorkOrder creates a recurring work order and its occurrence
// atomically: both rows commit or neither does.
func (s *MaintenanceService) CreateScheduledWorkOrder(ctx context.Context, actorID string, input ScheduledCreateInput) (*domain.MaintenanceWorkOrder, error) {
	if err := validateRecurrence(input.FrequencyKind, input.FrequencyEvery, input.NextMaintenance); err != nil {
		return nil, err
	}
	order, err := s.prepareOrder(ctx, actorID, input.MaintenanceCreateInput)
	if err != nil {
		return nil, err
	}

	occ := &domain.ScheduledOccurrence{
		FrequencyKind:   input.FrequencyKind,
		FrequencyEvery:  input.FrequencyEvery,
		NextMaintenance: input.NextMaintenance,
	}

	err = s.persistWithCode(ctx, order, codePrefixScheduled, func(st repository.Stores) error {
		if err := st.Maintenances.Create(ctx, order); err != nil {
			return err
		}
		occ.MaintenanceID = order.ID
		if err := st.Occurrences.Create(ctx, occ); err != nil {
			return err
		}
		return st.Audit.Create(ctx, &domain.AuditEntry{
			MaintenanceID: order.ID,
			Action:        domain.AuditCreateScheduled,
			ActorID:       actorID,
			Detail: map[string]any{
				"code":      order.Code,
				"frequency": string(input.FrequencyKind),
				"every":     input.FrequencyEvery,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	order.Occurrence = occ

	s.publishEvent(ctx, events.Event{
		Type:          events.EventScheduledMaintenanceCreated,
		MaintenanceID: order.ID,
		ActorID:       actorID,
		Payload: events.MaintenanceCreatedPayload{
			Code:          order.Code,
			Priority:      order.Priority,
			EquipmentID:   order.EquipmentID,
			ResponsibleID: order.ResponsibleID,
			Scheduled:     true,
		},
	})
	return order, nil
}

// UpdateWorkOrder re-resolves references and overwrites the mutable fields.
// When the order is recurring and the input carries recurrence fields, the
// occurrence is updated in the same transaction.
func (s *MaintenanceService) UpdateWorkOrder(ctx context.Context, actorID, id string, input MaintenanceUpdateInput) (*domain.MaintenanceWorkOrder, error) {
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}
	if input.Priority != "" && !domain.ValidPriority(input.Priority) {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": input.Priority})
	}
	if input.FrequencyKind != nil || input.FrequencyEvery != nil || input.NextMaintenance != nil {
		if input.FrequencyKind == nil || input.FrequencyEvery == nil || input.NextMaintenance == nil {
			return nil, apperrors.NewValidationError("frequency_kind, frequency_every and next_maintenance must be supplied together", nil)
		}
		if err := validateRecurrence(*input.FrequencyKind, *input.FrequencyEvery, *input.NextMaintenance); err != nil {
			return nil, err
		}
	}
	if err := s.resolveReferences(ctx, input.EquipmentID, input.TypeID, input.ResponsibleID); err != nil {
		return nil, err
	}

	var order *domain.MaintenanceWorkOrder
	err := s.uow.InTx(ctx, func(st repository.Stores) error {
		var err error
		order, err = st.Maintenances.GetByID(ctx, id)
		if err != nil {
			return err
		}
		order.Description = strings.TrimSpace(input.Description)
		if input.Priority != "" {
			order.Priority = input.Priority
		}
		order.EquipmentID = input.EquipmentID
		order.TypeID = input.TypeID
		order.ResponsibleID = input.ResponsibleID
		if err := st.Maintenances.Update(ctx, order); err != nil {
			return err
		}

		action := domain.AuditUpdate
		if order.Occurrence != nil && input.FrequencyKind != nil {
			order.Occurrence.FrequencyKind = *input.FrequencyKind
			order.Occurrence.FrequencyEvery = *input.FrequencyEvery
			order.Occurrence.NextMaintenance = *input.NextMaintenance
			if err := st.Occurrences.Update(ctx, order.Occurrence); err != nil {
				return err
			}
			action = domain.AuditUpdateScheduled
		}
		return st.Audit.Create(ctx, &domain.AuditEntry{
			MaintenanceID: order.ID,
			Action:        action,
			ActorID:       actorID,
			Detail:        map[string]any{"code": order.Code},
		})
	})
	if err != nil {
		return nil, mapStoreError(err, "maintenance")
	}

	s.publishEvent(ctx, events.Event{
		Type:          events.EventMaintenanceUpdated,
		MaintenanceID: order.ID,
		ActorID:       actorID,
		Payload: events.MaintenanceUpdatedPayload{
			Code:          order.Code,
			ResponsibleID: order.ResponsibleID,
		},
	})
	return order, nil
}

// UpdateScheduledWorkOrder updates a recurring order; it fails when the order
// carries no occurrence.
func (s *MaintenanceService) UpdateScheduledWorkOrder(ctx context.Context, actorID, id string, input MaintenanceUpdateInput) (*domain.MaintenanceWorkOrder, error) {
	if input.FrequencyKind == nil || input.FrequencyEvery == nil || input.NextMaintenance == nil {
		return nil, apperrors.NewValidationError("recurrence fields are required", nil)
	}
	existing, err := s.GetScheduledByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.UpdateWorkOrder(ctx, actorID, existing.ID, input)
}

// ToggleStatus flips the active flag. Toggling never touches the review
// status.
func (s *MaintenanceService) ToggleStatus(ctx context.Context, actorID, id string) (*domain.MaintenanceWorkOrder, error) {
	var order *domain.MaintenanceWorkOrder
	err := s.uow.InTx(ctx, func(st repository.Stores) error {
		var err error
		order, err = st.Maintenances.GetByID(ctx, id)
		if err != nil {
			return err
		}
		order.Active = !order.Active
		if err := st.Maintenances.Update(ctx, order); err != nil {
			return err
		}
		return st.Audit.Create(ctx, &domain.AuditEntry{
			MaintenanceID: order.ID,
			Action:        domain.AuditToggleStatus,
			ActorID:       actorID,
			Detail:        map[string]any{"active": order.Active},
		})
	})
	if err != nil {
		return nil, mapStoreError(err, "maintenance")
	}

	s.publishEvent(ctx, events.Event{
		Type:          events.EventMaintenanceStatusToggled,
		MaintenanceID: order.ID,
		ActorID:       actorID,
		Payload: events.MaintenanceStatusToggledPayload{
			Code:          order.Code,
			Active:        order.Active,
			ResponsibleID: order.ResponsibleID,
		},
	})
	return order, nil
}

// LogicalDelete retires a work order. The row and its occurrence survive;
// the order is marked deleted and deactivated.
func (s *MaintenanceService) LogicalDelete(ctx context.Context, actorID, id string) (*domain.MaintenanceWorkOrder, error) {
	var order *domain.MaintenanceWorkOrder
	err := s.uow.InTx(ctx, func(st repository.Stores) error {
		var err error
		order, err = st.Maintenances.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if order.Deleted() {
			return apperrors.NewConflict("maintenance already deleted", map[string]any{"id": id})
		}
		now := time.Now()
		order.DeletedAt = &now
		order.Active = false
		if err := st.Maintenances.Update(ctx, order); err != nil {
			return err
		}
		return st.Audit.Create(ctx, &domain.AuditEntry{
			MaintenanceID: order.ID,
			Action:        domain.AuditDelete,
			ActorID:       actorID,
			Detail:        map[string]any{"code": order.Code},
		})
	})
	if err != nil {
		return nil, mapStoreError(err, "maintenance")
	}

	s.publishEvent(ctx, events.Event{
		Type:          events.EventMaintenanceDeleted,
		MaintenanceID: order.ID,
		ActorID:       actorID,
		Payload: events.MaintenanceDeletedPayload{
			Code:          order.Code,
			ResponsibleID: order.ResponsibleID,
		},
	})
	return order, nil
}

// ReviewWorkOrder applies a review transition.
func (s *MaintenanceService) ReviewWorkOrder(ctx context.Context, actorID, id string, decision ReviewDecision, reason *string) (*domain.MaintenanceWorkOrder, error) {
	target, err := targetStatus(decision)
	if err != nil {
		return nil, err
	}
	if target == domain.ReviewRejected {
		if reason == nil || strings.TrimSpace(*reason) == "" {
			return nil, apperrors.NewMissingRejectionReason()
		}
		if len(*reason) > domain.MaxRejectionReasonLen {
			return nil, apperrors.NewValidationError("rejection reason too long", map[string]any{"max": domain.MaxRejectionReasonLen})
		}
	}

	var order *domain.MaintenanceWorkOrder
	err = s.uow.InTx(ctx, func(st repository.Stores) error {
		var err error
		order, err = st.Maintenances.GetByID(ctx, id)
		if err != nil {
			return err
		}
		current := currentReviewStatus(order)
		if !reviewTransitionAllowed(current, target) {
			return apperrors.NewInvalidTransition(current, string(target))
		}
		if target != domain.ReviewPending && order.RequestedByID != nil && *order.RequestedByID == actorID {
			return apperrors.NewForbidden("requester cannot review their own work order")
		}

		status := target
		order.ReviewStatus = &status
		switch target {
		case domain.ReviewApproved:
			order.ReviewedByID = &actorID
			order.RejectionReason = nil
		case domain.ReviewRejected:
			trimmed := strings.TrimSpace(*reason)
			order.ReviewedByID = &actorID
			order.RejectionReason = &trimmed
		case domain.ReviewPending:
			// resubmission resets the review
			order.ReviewedByID = nil
			order.RejectionReason = nil
		}
		if err := st.Maintenances.Update(ctx, order); err != nil {
			return err
		}

		detail := map[string]any{"outcome": string(target)}
		if order.RejectionReason != nil {
			detail["reason"] = *order.RejectionReason
		}
		return st.Audit.Create(ctx, &domain.AuditEntry{
			MaintenanceID: order.ID,
			Action:        domain.AuditReview,
			ActorID:       actorID,
			Detail:        detail,
		})
	})
	if err != nil {
		return nil, mapStoreError(err, "maintenance")
	}

	s.publishEvent(ctx, events.Event{
		Type:          events.EventMaintenanceReviewed,
		MaintenanceID: order.ID,
		ActorID:       actorID,
		Payload: events.MaintenanceReviewedPayload{
			Code:            order.Code,
			Outcome:         *order.ReviewStatus,
			RejectionReason: order.RejectionReason,
			RequestedByID:   order.RequestedByID,
		},
	})
	return order, nil
}

// GetByID fetches a work order, including soft-deleted ones.
func (s *MaintenanceService) GetByID(ctx context.Context, id string) (*domain.MaintenanceWorkOrder, error) {
	order, err := s.uow.Stores().Maintenances.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "maintenance")
	}
	return order, nil
}

// GetScheduledByID fetches a recurring work order.
func (s *MaintenanceService) GetScheduledByID(ctx context.Context, id string) (*domain.MaintenanceWorkOrder, error) {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Scheduled() {
		return nil, apperrors.NewNotFound("scheduled maintenance", map[string]any{"id": id})
	}
	return order, nil
}

// ListAll returns non-deleted work orders.
func (s *MaintenanceService) ListAll(ctx context.Context, limit, offset int) ([]domain.MaintenanceWorkOrder, error) {
	return s.list(ctx, repository.MaintenanceFilter{Limit: limit, Offset: offset})
}

// ListAllScheduled returns non-deleted work orders carrying an occurrence.
func (s *MaintenanceService) ListAllScheduled(ctx context.Context, limit, offset int) ([]domain.MaintenanceWorkOrder, error) {
	return s.list(ctx, repository.MaintenanceFilter{ScheduledOnly: true, Limit: limit, Offset: offset})
}

// ListCreatedBy returns work orders requested by the given user.
func (s *MaintenanceService) ListCreatedBy(ctx context.Context, userID string, limit, offset int) ([]domain.MaintenanceWorkOrder, error) {
	return s.list(ctx, repository.MaintenanceFilter{RequestedBy: &userID, Limit: limit, Offset: offset})
}

// ListAssignedTo returns work orders whose responsible user is the given one.
func (s *MaintenanceService) ListAssignedTo(ctx context.Context, userID string, limit, offset int) ([]domain.MaintenanceWorkOrder, error) {
	return s.list(ctx, repository.MaintenanceFilter{ResponsibleID: &userID, Limit: limit, Offset: offset})
}

// ListAudit returns the audit trail of one work order.
func (s *MaintenanceService) ListAudit(ctx context.Context, maintenanceID string, limit, offset int) ([]domain.AuditEntry, error) {
	entries, err := s.uow.Stores().Audit.ListByMaintenance(ctx, maintenanceID, limit, offset)
	if err != nil {
		return nil, apperrors.NewPersistenceFailure(err)
	}
	return entries, nil
}

// ProcessDueOccurrences scans for occurrences whose next date has passed,
// emits a due event per item and advances the next date. Items are processed
// independently: one failure does not block the rest.
func (s *MaintenanceService) ProcessDueOccurrences(ctx context.Context, now time.Time, limit int) (int, error) {
	stores := s.uow.Stores()
	due, err := stores.Occurrences.ListDue(ctx, now, limit)
	if err != nil {
		return 0, apperrors.NewPersistenceFailure(err)
	}

	processed := 0
	for i := range due {
		occ := due[i]
		if err := s.processDueOccurrence(ctx, &occ); err != nil {
			s.logger.Warn("due occurrence processing failed",
				zap.String("maintenance_id", occ.MaintenanceID),
				zap.Error(err))
			continue
		}
		processed++
	}
	return processed, nil
}

func (s *MaintenanceService) processDueOccurrence(ctx context.Context, occ *domain.ScheduledOccurrence) error {
	order, err := s.uow.Stores().Maintenances.GetByID(ctx, occ.MaintenanceID)
	if err != nil {
		return err
	}
	dueAt := occ.NextMaintenance

	next, err := schedule.NextOccurrence(occ.NextMaintenance, occ.FrequencyKind, occ.FrequencyEvery)
	if err != nil {
		return err
	}
	occ.NextMaintenance = next
	if err := s.uow.Stores().Occurrences.Update(ctx, occ); err != nil {
		return err
	}

	s.publishEvent(ctx, events.Event{
		Type:          events.EventMaintenanceDue,
		MaintenanceID: order.ID,
		ActorID:       "system",
		Payload: events.MaintenanceDuePayload{
			Code:          order.Code,
			ResponsibleID: order.ResponsibleID,
			DueAt:         dueAt,
		},
	})
	return nil
}

func (s *MaintenanceService) list(ctx context.Context, filter repository.MaintenanceFilter) ([]domain.MaintenanceWorkOrder, error) {
	orders, err := s.uow.Stores().Maintenances.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewPersistenceFailure(err)
	}
	return orders, nil
}

// prepareOrder validates input and resolves references, returning an
// unpersisted work order.
func (s *MaintenanceService) prepareOrder(ctx context.Context, actorID string, input MaintenanceCreateInput) (*domain.MaintenanceWorkOrder, error) {
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}
	if input.Priority == "" {
		input.Priority = domain.PriorityMedium
	}
	if !domain.ValidPriority(input.Priority) {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": input.Priority})
	}
	if err := s.resolveReferences(ctx, input.EquipmentID, input.TypeID, input.ResponsibleID); err != nil {
		return nil, err
	}

	order := &domain.MaintenanceWorkOrder{
		Description:   strings.TrimSpace(input.Description),
		Priority:      input.Priority,
		Active:        true,
		EquipmentID:   input.EquipmentID,
		TypeID:        input.TypeID,
		ResponsibleID: input.ResponsibleID,
		RequestedByID: &actorID,
	}
	if input.RequiresReview {
		pending := domain.ReviewPending
		order.ReviewStatus = &pending
	}
	return order, nil
}

// persistWithCode runs persist under a fresh generated code, retrying on
// code collisions up to maxCodeAttempts.
func (s *MaintenanceService) persistWithCode(ctx context.Context, order *domain.MaintenanceWorkOrder, prefix string, persist func(repository.Stores) error) error {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		order.Code = GenerateCode(prefix)
		err := s.uow.InTx(ctx, func(st repository.Stores) error {
			return persist(st)
		})
		if err == nil {
			return nil
		}
		if repository.IsUniqueViolation(err) {
			s.logger.Debug("work order code collision, regenerating",
				zap.String("code", order.Code), zap.Int("attempt", attempt+1))
			continue
		}
		return mapStoreError(err, "maintenance")
	}
	return apperrors.NewCodeGenerationExhausted(maxCodeAttempts)
}

func (s *MaintenanceService) resolveReferences(ctx context.Context, equipmentID, typeID, responsibleID string) error {
	if equipmentID == "" || typeID == "" || responsibleID == "" {
		return apperrors.NewValidationError("equipment_id, type_id and responsible_id are required", nil)
	}
	if _, err := s.equipment.GetByID(ctx, equipmentID); err != nil {
		return referenceError(err, "equipment", equipmentID)
	}
	if _, err := s.types.GetByID(ctx, typeID); err != nil {
		return referenceError(err, "maintenance_type", typeID)
	}
	if _, err := s.users.GetByID(ctx, responsibleID); err != nil {
		return referenceError(err, "responsible_user", responsibleID)
	}
	return nil
}

func (s *MaintenanceService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func validateDescription(description string) error {
	if len(description) > domain.MaxDescriptionLen {
		return apperrors.NewValidationError("description too long", map[string]any{"max": domain.MaxDescriptionLen})
	}
	return nil
}

func validateRecurrence(kind domain.FrequencyKind, every int, next time.Time) error {
	if !domain.ValidFrequencyKind(kind) {
		return apperrors.NewValidationError("unknown frequency kind", map[string]any{"frequency_kind": kind})
	}
	if every < 1 {
		return apperrors.NewValidationError("frequency interval must be >= 1", map[string]any{"frequency_every": every})
	}
	if next.IsZero() {
		return apperrors.NewValidationError("next_maintenance is required", nil)
	}
	return nil
}

func referenceError(err error, field, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewReferenceNotFound(field, id)
	}
	return apperrors.NewPersistenceFailure(err)
}

func mapStoreError(err error, resource string) error {
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, nil)
	}
	return apperrors.NewPersistenceFailure(err)
}

// Review state machine. UNREVIEWED is the absent review status used by
// orders that are not subject to approval.
const reviewStatusUnreviewed = "UNREVIEWED"

var allowedReviewTransitions = map[string][]domain.ReviewStatus{
	string(domain.ReviewPending):  {domain.ReviewApproved, domain.ReviewRejected},
	string(domain.ReviewRejected): {domain.ReviewPending},
}

func currentReviewStatus(order *domain.MaintenanceWorkOrder) string {
	if order.ReviewStatus == nil {
		return reviewStatusUnreviewed
	}
	return string(*order.ReviewStatus)
}

func reviewTransitionAllowed(current string, target domain.ReviewStatus) bool {
	for _, candidate := range allowedReviewTransitions[current] {
		if candidate == target {
			return true
		}
	}
	return false
}

func targetStatus(decision ReviewDecision) (domain.ReviewStatus, error) {
	switch decision {
	case DecisionApprove:
		return domain.ReviewApproved, nil
	case DecisionReject:
		return domain.ReviewRejected, nil
	case DecisionResubmit:
		return domain.ReviewPending, nil
	default:
		return "", apperrors.NewValidationError("unknown review decision", map[string]any{"decision": decision})
	}
}

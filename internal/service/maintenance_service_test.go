package service

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/maintenance-service/internal/config"
	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/events"
	"github.com/spec-kit/maintenance-service/internal/repository"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// memStore is an in-memory stand-in for the Postgres repositories. It
// enforces the unique code index the same way the real schema does.
type memStore struct {
	mu          sync.Mutex
	orders      map[string]*domain.MaintenanceWorkOrder
	codes       map[string]string
	occurrences map[string]*domain.ScheduledOccurrence
	audit       []domain.AuditEntry
	failCreates int
}

func newMemStore() *memStore {
	return &memStore{
		orders:      make(map[string]*domain.MaintenanceWorkOrder),
		codes:       make(map[string]string),
		occurrences: make(map[string]*domain.ScheduledOccurrence),
	}
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "idx_maintenances_code"}
}

func cloneOrder(order *domain.MaintenanceWorkOrder) *domain.MaintenanceWorkOrder {
	clone := *order
	if order.Occurrence != nil {
		occ := *order.Occurrence
		clone.Occurrence = &occ
	}
	return &clone
}

type memMaintenanceRepo struct{ store *memStore }

func (r memMaintenanceRepo) Create(_ context.Context, order *domain.MaintenanceWorkOrder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failCreates > 0 {
		r.store.failCreates--
		return uniqueViolation()
	}
	if _, taken := r.store.codes[order.Code]; taken {
		return uniqueViolation()
	}
	order.ID = uuid.NewString()
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	r.store.orders[order.ID] = cloneOrder(order)
	r.store.codes[order.Code] = order.ID
	return nil
}

func (r memMaintenanceRepo) Update(_ context.Context, order *domain.MaintenanceWorkOrder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.orders[order.ID]; !ok {
		return pgx.ErrNoRows
	}
	order.UpdatedAt = time.Now()
	r.store.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r memMaintenanceRepo) GetByID(_ context.Context, id string) (*domain.MaintenanceWorkOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	order, ok := r.store.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := cloneOrder(order)
	if occ, ok := r.store.occurrences[id]; ok {
		occClone := *occ
		clone.Occurrence = &occClone
	}
	return clone, nil
}

func (r memMaintenanceRepo) List(_ context.Context, filter repository.MaintenanceFilter) ([]domain.MaintenanceWorkOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []domain.MaintenanceWorkOrder
	for _, order := range r.store.orders {
		if order.Deleted() && !filter.IncludeDeleted {
			continue
		}
		_, scheduled := r.store.occurrences[order.ID]
		if filter.ScheduledOnly && !scheduled {
			continue
		}
		if filter.RequestedBy != nil && (order.RequestedByID == nil || *order.RequestedByID != *filter.RequestedBy) {
			continue
		}
		if filter.ResponsibleID != nil && order.ResponsibleID != *filter.ResponsibleID {
			continue
		}
		out = append(out, *cloneOrder(order))
	}
	return out, nil
}

type memOccurrenceRepo struct{ store *memStore }

func (r memOccurrenceRepo) Create(_ context.Context, occ *domain.ScheduledOccurrence) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	occ.CreatedAt = time.Now()
	occ.UpdatedAt = occ.CreatedAt
	clone := *occ
	r.store.occurrences[occ.MaintenanceID] = &clone
	return nil
}

func (r memOccurrenceRepo) Update(_ context.Context, occ *domain.ScheduledOccurrence) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.occurrences[occ.MaintenanceID]; !ok {
		return pgx.ErrNoRows
	}
	occ.UpdatedAt = time.Now()
	clone := *occ
	r.store.occurrences[occ.MaintenanceID] = &clone
	return nil
}

func (r memOccurrenceRepo) GetByMaintenanceID(_ context.Context, maintenanceID string) (*domain.ScheduledOccurrence, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	occ, ok := r.store.occurrences[maintenanceID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *occ
	return &clone, nil
}

func (r memOccurrenceRepo) ListDue(_ context.Context, cutoff time.Time, limit int) ([]domain.ScheduledOccurrence, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []domain.ScheduledOccurrence
	for id, occ := range r.store.occurrences {
		order, ok := r.store.orders[id]
		if !ok || !order.Active || order.Deleted() {
			continue
		}
		if occ.NextMaintenance.After(cutoff) {
			continue
		}
		out = append(out, *occ)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

type memAuditRepo struct{ store *memStore }

func (r memAuditRepo) Create(_ context.Context, entry *domain.AuditEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now()
	r.store.audit = append(r.store.audit, *entry)
	return nil
}

func (r memAuditRepo) ListByMaintenance(_ context.Context, maintenanceID string, _, _ int) ([]domain.AuditEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []domain.AuditEntry
	for _, entry := range r.store.audit {
		if entry.MaintenanceID == maintenanceID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r memAuditRepo) ListByActor(_ context.Context, actorID string, _, _ int) ([]domain.AuditEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []domain.AuditEntry
	for _, entry := range r.store.audit {
		if entry.ActorID == actorID {
			out = append(out, entry)
		}
	}
	return out, nil
}

type memUnitOfWork struct{ store *memStore }

func (u memUnitOfWork) InTx(_ context.Context, fn func(repository.Stores) error) error {
	return fn(u.Stores())
}

func (u memUnitOfWork) Stores() repository.Stores {
	return repository.Stores{
		Maintenances: memMaintenanceRepo{u.store},
		Occurrences:  memOccurrenceRepo{u.store},
		Audit:        memAuditRepo{u.store},
	}
}

type memEquipmentRepo struct{ ids map[string]bool }

func (r memEquipmentRepo) GetByID(_ context.Context, id string) (*domain.Equipment, error) {
	if !r.ids[id] {
		return nil, pgx.ErrNoRows
	}
	return &domain.Equipment{ID: id, Active: true}, nil
}

type memTypeRepo struct{ ids map[string]bool }

func (r memTypeRepo) GetByID(_ context.Context, id string) (*domain.MaintenanceType, error) {
	if !r.ids[id] {
		return nil, pgx.ErrNoRows
	}
	return &domain.MaintenanceType{ID: id, Active: true}, nil
}

type memUserRepo struct{ ids map[string]bool }

func (r memUserRepo) Create(_ context.Context, _ *domain.User) error { return nil }
func (r memUserRepo) Update(_ context.Context, _ *domain.User) error { return nil }

func (r memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if !r.ids[id] {
		return nil, pgx.ErrNoRows
	}
	return &domain.User{ID: id, Role: domain.RoleTechnician, Status: domain.UserStatusActive}, nil
}

func (r memUserRepo) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *eventRecorder) record(_ context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *eventRecorder) byType(eventType events.EventType) []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []events.Event
	for _, event := range r.events {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}

const (
	testEquipmentID = "eq-1"
	testTypeID      = "type-1"
	testUserID      = "user-1"
	testReviewerID  = "user-2"
)

func newTestService(store *memStore) (*MaintenanceService, *eventRecorder) {
	dispatcher := events.NewInMemoryDispatcher()
	recorder := &eventRecorder{}
	for _, eventType := range []events.EventType{
		events.EventMaintenanceCreated,
		events.EventScheduledMaintenanceCreated,
		events.EventMaintenanceUpdated,
		events.EventMaintenanceStatusToggled,
		events.EventMaintenanceDeleted,
		events.EventMaintenanceReviewed,
		events.EventMaintenanceDue,
	} {
		dispatcher.Subscribe(eventType, recorder.record)
	}

	svc := NewMaintenanceService(MaintenanceDependencies{
		UnitOfWork:          memUnitOfWork{store},
		EquipmentRepo:       memEquipmentRepo{ids: map[string]bool{testEquipmentID: true}},
		MaintenanceTypeRepo: memTypeRepo{ids: map[string]bool{testTypeID: true}},
		UserRepo:            memUserRepo{ids: map[string]bool{testUserID: true, testReviewerID: true}},
		Dispatcher:          dispatcher,
	})
	return svc, recorder
}

func validCreateInput() MaintenanceCreateInput {
	return MaintenanceCreateInput{
		Description:   "replace hydraulic filter",
		Priority:      domain.PriorityHigh,
		EquipmentID:   testEquipmentID,
		TypeID:        testTypeID,
		ResponsibleID: testUserID,
	}
}

func domainErrCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	return domainErr.Code
}

var (
	adHocCodePattern     = regexp.MustCompile(`^MNT-[A-Z0-9]{8}$`)
	scheduledCodePattern = regexp.MustCompile(`^SCHED-[A-Z0-9]{8}$`)
)

func TestCreateWorkOrder(t *testing.T) {
	store := newMemStore()
	svc, recorder := newTestService(store)

	order, err := svc.CreateWorkOrder(context.Background(), testUserID, validCreateInput())
	require.NoError(t, err)

	assert.Regexp(t, adHocCodePattern, order.Code)
	assert.True(t, order.Active)
	assert.Nil(t, order.ReviewStatus)
	require.NotNil(t, order.RequestedByID)
	assert.Equal(t, testUserID, *order.RequestedByID)

	entries, err := svc.ListAudit(context.Background(), order.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditCreate, entries[0].Action)
	assert.Equal(t, testUserID, entries[0].ActorID)

	created := recorder.byType(events.EventMaintenanceCreated)
	require.Len(t, created, 1)
	assert.Equal(t, order.ID, created[0].MaintenanceID)
}

func TestCreateWorkOrder_DefaultsPriority(t *testing.T) {
	svc, _ := newTestService(newMemStore())
	input := validCreateInput()
	input.Priority = ""

	order, err := svc.CreateWorkOrder(context.Background(), testUserID, input)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, order.Priority)
}

func TestCreateWorkOrder_RequiresReview(t *testing.T) {
	svc, _ := newTestService(newMemStore())
	input := validCreateInput()
	input.RequiresReview = true

	order, err := svc.CreateWorkOrder(context.Background(), testUserID, input)
	require.NoError(t, err)
	require.NotNil(t, order.ReviewStatus)
	assert.Equal(t, domain.ReviewPending, *order.ReviewStatus)
}

func TestCreateWorkOrder_UnknownReferences(t *testing.T) {
	svc, _ := newTestService(newMemStore())

	tests := []struct {
		name   string
		mutate func(*MaintenanceCreateInput)
	}{
		{"equipment", func(in *MaintenanceCreateInput) { in.EquipmentID = "missing" }},
		{"type", func(in *MaintenanceCreateInput) { in.TypeID = "missing" }},
		{"responsible", func(in *MaintenanceCreateInput) { in.ResponsibleID = "missing" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := validCreateInput()
			tc.mutate(&input)
			_, err := svc.CreateWorkOrder(context.Background(), testUserID, input)
			assert.Equal(t, "REFERENCE_NOT_FOUND", domainErrCode(t, err))
		})
	}
}

func TestCreateWorkOrder_CodeCollisionRetries(t *testing.T) {
	store := newMemStore()
	store.failCreates = 1
	svc, _ := newTestService(store)

	order, err := svc.CreateWorkOrder(context.Background(), testUserID, validCreateInput())
	require.NoError(t, err)
	assert.Regexp(t, adHocCodePattern, order.Code)
}

func TestCreateWorkOrder_CodeCollisionExhausted(t *testing.T) {
	store := newMemStore()
	store.failCreates = maxCodeAttempts
	svc, _ := newTestService(store)

	_, err := svc.CreateWorkOrder(context.Background(), testUserID, validCreateInput())
	assert.Equal(t, "CODE_GENERATION_EXHAUSTED", domainErrCode(t, err))
}

func TestCreateWorkOrder_ConcurrentCodesUnique(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestService(store)

	const total = 20
	var wg sync.WaitGroup
	errs := make([]error, total)
	for i := 0; i < total; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateWorkOrder(context.Background(), testUserID, validCreateInput())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Len(t, store.codes, total)
}

func TestCreateScheduledWorkOrder(t *testing.T) {
	store := newMemStore()
	svc, recorder := newTestService(store)
	next := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	order, err := svc.CreateScheduledWorkOrder(context.Background(), testUserID, ScheduledCreateInput{
		MaintenanceCreateInput: validCreateInput(),
		FrequencyKind:          domain.FrequencyMonthly,
		FrequencyEvery:         1,
		NextMaintenance:        next,
	})
	require.NoError(t, err)

	assert.Regexp(t, scheduledCodePattern, order.Code)
	require.NotNil(t, order.Occurrence)
	assert.Equal(t, domain.FrequencyMonthly, order.Occurrence.FrequencyKind)
	assert.Equal(t, next, order.Occurrence.NextMaintenance)

	entries, err := svc.ListAudit(context.Background(), order.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditCreateScheduled, entries[0].Action)

	require.Len(t, recorder.byType(events.EventScheduledMaintenanceCreated), 1)
}

func TestCreateScheduledWorkOrder_BadRecurrence(t *testing.T) {
	svc, _ := newTestService(newMemStore())
	next := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		kind  domain.FrequencyKind
		every int
		next  time.Time
	}{
		{"unknown kind", "HOURLY", 1, next},
		{"zero interval", domain.FrequencyWeekly, 0, next},
		{"negative interval", domain.FrequencyWeekly, -2, next},
		{"zero date", domain.FrequencyWeekly, 1, time.Time{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateScheduledWorkOrder(context.Background(), testUserID, ScheduledCreateInput{
				MaintenanceCreateInput: validCreateInput(),
				FrequencyKind:          tc.kind,
				FrequencyEvery:         tc.every,
				NextMaintenance:        tc.next,
			})
			assert.Equal(t, "VALIDATION_FAILED", domainErrCode(t, err))
		})
	}
}

func TestUpdateWorkOrder_KeepsCode(t *testing.T) {
	svc, _ := newTestService(newMemStore())
	order, err := svc.CreateWorkOrder(context.Background(), testUserID, validCreateInput())
	require.NoError(t, err)

	updated, err := svc.UpdateWorkOrder(context.Background(), testUserID, order.ID, MaintenanceUpdateInput{
		Description:   "replace hydraulic filter and hoses",
		Priority:      domain.PriorityCritical,
		EquipmentID:   testEquipmentID,
		TypeID:        testTypeID,
		ResponsibleID: testUserID,
	})
	require.NoError(t, err)
	assert.Equal(t, order.Code, updated.Code)
	assert.Equal(t, domain.PriorityCritical, updated.Priority)
	assert.Equal(t, "replace hydraulic filter and hoses", updated.Description)
}

func TestUpdateScheduledWorkOrder_ChangesInterval(t *testing.T) {
	svc, _ := newTestService(newMemStore())
	next := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	order, err := svc.CreateScheduledWorkOrder(context.Background(), testUserID, ScheduledCreateInput{
		MaintenanceCreateInput: validCreateInput(),
		FrequencyKind:          domain.FrequencyMonthly,
		FrequencyEvery:         1,
		NextMaintenance:        next,
	})
	require.NoError(t, err)

	kind := domain.FrequencyMonthly
	every := 3
	updated, err := svc.UpdateScheduledWorkOrder(context.Background(), testUserID, order.ID, MaintenanceUpdateInput{
		Description:     order.Description,
		Priority:        order.Priority,
		EquipmentID:     testEquipmentID,
		TypeID:          testTypeID,
		ResponsibleID:   testUserID,
		FrequencyKind:   &kind,
		FrequencyEvery:  &every,
		NextMaintenance: &next,
	})
	require.NoError(t, err)
	assert.Equal(t, order.Code, updated.Code)
	require.NotNil(t, updated.Occurrence)
	assert.Equal(t, 3, updated.Occurrence.FrequencyEvery)
}

func TestUpdateScheduledWorkOrder_NotScheduled(t *testing.T) {
	svc, _ := newTestService(newMemStore())
	order, err := svc.CreateWorkOrder(context.Background(), testUserID, validCreateInput())
	require.NoError(t, err)

	kind := domain.FrequencyWeekly
	every := 1
	next := time.Now().Add(24 * time.Hour)
	_, err = svc.UpdateScheduledWorkOrder(context.Background(), testUserID, order.ID, MaintenanceUpdateInput{
		Description:     order.Description,
		EquipmentID:     testEquipmentID,
		TypeID:          testTypeID,
		ResponsibleID:   testUserID,
		FrequencyKind:   &kind,
		FrequencyEvery:  &every,
		NextMaintenance: &next,
	})
	assert.Equal(t, "NOT_FOUND", domainErrCode(t, err))
}

func TestToggleStatus_Involution(t *testing.T) {
	svc, recorder := newTestService(newMemStore())
	order, err := svc.CreateWorkOrder(context.Background(), testUserID, validCreateInput())
	require.NoError(t, err)
	require.True(t, order.Active)

	toggled, err := svc.ToggleStatus(context.Background(), testUserID, order.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Active)

	restored, err := svc.ToggleStatus(context.Background(), testUserID, order.ID)
	require.NoError(t, err)
	assert.True(t, restored.Active)
	assert.Nil(t, restored.ReviewStatus)

	assert.Len(t, recorder.byType(events.EventMaintenanceStatusToggled), 2)
}

func TestLogicalDelete(t *testing.T) {
	store := newMemStore()
	svc, recorder := newTestService(store)
	order, err := svc.CreateWorkOrder(context.Background(), testUserID, validCreateInput())
	require.NoError(t, err)

	deleted, err := svc.LogicalDelete(context.Background(), testUserID, order.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted.DeletedAt)
	assert.False(t, deleted.Active)

	// the row survives and stays addressable
	fetched, err := svc.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, fetched.Deleted())

	// but it disappears from listings
	listed, err := svc.ListAll(context.Background(), 100, 0)
	require.NoError(t, err)
	assert.Empty(t, listed)

	_, err = svc.LogicalDelete(context.Background(), testUserID, order.ID)
	assert.Equal(t, "CONFLICT", domainErrCode(t, err))

	assert.Len(t, recorder.byType(events.EventMaintenanceDeleted), 1)
}

func createPendingOrder(t *testing.T, svc *MaintenanceService) *domain.MaintenanceWorkOrder {
	t.Helper()
	input := validCreateInput()
	input.RequiresReview = true
	order, err := svc.CreateWorkOrder(context.Background(), testUserID, input)
	require.NoError(t, err)
	return order
}

func TestReviewWorkOrder_Approve(t *testing.T) {
	svc, recorder := newTestService(newMemStore())
	order := createPendingOrder(t, svc)

	reviewed, err := svc.ReviewWorkOrder(context.Background(), testReviewerID, order.ID, DecisionApprove, nil)
	require.NoError(t, err)
	require.NotNil(t, reviewed.ReviewStatus)
	assert.Equal(t, domain.ReviewApproved, *reviewed.ReviewStatus)
	require.NotNil(t, reviewed.ReviewedByID)
	assert.Equal(t, testReviewerID, *reviewed.ReviewedByID)
	assert.Nil(t, reviewed.RejectionReason)

	require.Len(t, recorder.byType(events.EventMaintenanceReviewed), 1)
}

func TestReviewWorkOrder_RejectRequiresReason(t *testing.T) {
	svc, _ := newTestService(newMemStore())
	order := createPendingOrder(t, svc)

	_, err := svc.ReviewWorkOrder(context.Background(), testReviewerID, order.ID, DecisionReject, nil)
	assert.Equal(t, "MISSING_REJECTION_REASON", domainErrCode(t, err))

	blank := "   "
	_, err = svc.ReviewWorkOrder(context.Background(), testReviewerID, order.ID, DecisionReject, &blank)
	assert.Equal(t, "MISSING_REJECTION_REASON", domainErrCode(t, err))

	reason := "  missing safety checklist  "
	reviewed, err := svc.ReviewWorkOrder(context.Background(), testReviewerID, order.ID, DecisionReject, &reason)
	require.NoError(t, err)
	require.NotNil(t, reviewed.RejectionReason)
	assert.Equal(t, "missing safety checklist", *reviewed.RejectionReason)
}

func TestReviewWorkOrder_ResubmitClearsRejection(t *testing.T) {
	svc, _ := newTestService(newMemStore())
	order := createPendingOrder(t, svc)

	reason := "wrong equipment"
	_, err := svc.ReviewWorkOrder(context.Background(), testReviewerID, order.ID, DecisionReject, &reason)
	require.NoError(t, err)

	resubmitted, err := svc.ReviewWorkOrder(context.Background(), testUserID, order.ID, DecisionResubmit, nil)
	require.NoError(t, err)
	require.NotNil(t, resubmitted.ReviewStatus)
	assert.Equal(t, domain.ReviewPending, *resubmitted.ReviewStatus)
	assert.Nil(t, resubmitted.RejectionReason)
	assert.Nil(t, resubmitted.ReviewedByID)
}

func TestReviewWorkOrder_InvalidTransitions(t *testing.T) {
	svc, _ := newTestService(newMemStore())

	t.Run("unreviewed order cannot be approved", func(t *testing.T) {
		order, err := svc.CreateWorkOrder(context.Background(), testUserID, validCreateInput())
		require.NoError(t, err)
		_, err = svc.ReviewWorkOrder(context.Background(), testReviewerID, order.ID, DecisionApprove, nil)
		assert.Equal(t, "INVALID_TRANSITION", domainErrCode(t, err))
	})

	t.Run("approved order cannot be re-reviewed", func(t *testing.T) {
		order := createPendingOrder(t, svc)
		_, err := svc.ReviewWorkOrder(context.Background(), testReviewerID, order.ID, DecisionApprove, nil)
		require.NoError(t, err)
		reason := "changed my mind"
		_, err = svc.ReviewWorkOrder(context.Background(), testReviewerID, order.ID, DecisionReject, &reason)
		assert.Equal(t, "INVALID_TRANSITION", domainErrCode(t, err))
	})

	t.Run("pending order cannot be resubmitted", func(t *testing.T) {
		order := createPendingOrder(t, svc)
		_, err := svc.ReviewWorkOrder(context.Background(), testUserID, order.ID, DecisionResubmit, nil)
		assert.Equal(t, "INVALID_TRANSITION", domainErrCode(t, err))
	})

	t.Run("unknown decision", func(t *testing.T) {
		order := createPendingOrder(t, svc)
		_, err := svc.ReviewWorkOrder(context.Background(), testReviewerID, order.ID, "DEFER", nil)
		assert.Equal(t, "VALIDATION_FAILED", domainErrCode(t, err))
	})
}

func TestReviewWorkOrder_SelfReviewForbidden(t *testing.T) {
	svc, _ := newTestService(newMemStore())
	order := createPendingOrder(t, svc)

	_, err := svc.ReviewWorkOrder(context.Background(), testUserID, order.ID, DecisionApprove, nil)
	assert.Equal(t, "FORBIDDEN", domainErrCode(t, err))
}

func TestListFilters(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestService(store)

	_, err := svc.CreateWorkOrder(context.Background(), testUserID, validCreateInput())
	require.NoError(t, err)
	_, err = svc.CreateScheduledWorkOrder(context.Background(), testUserID, ScheduledCreateInput{
		MaintenanceCreateInput: validCreateInput(),
		FrequencyKind:          domain.FrequencyWeekly,
		FrequencyEvery:         2,
		NextMaintenance:        time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)

	all, err := svc.ListAll(context.Background(), 100, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scheduled, err := svc.ListAllScheduled(context.Background(), 100, 0)
	require.NoError(t, err)
	assert.Len(t, scheduled, 1)

	requested, err := svc.ListCreatedBy(context.Background(), testUserID, 100, 0)
	require.NoError(t, err)
	assert.Len(t, requested, 2)

	assigned, err := svc.ListAssignedTo(context.Background(), "someone-else", 100, 0)
	require.NoError(t, err)
	assert.Empty(t, assigned)
}

func TestProcessDueOccurrences(t *testing.T) {
	store := newMemStore()
	svc, recorder := newTestService(store)

	due := time.Date(2024, 1, 31, 8, 0, 0, 0, time.UTC)
	order, err := svc.CreateScheduledWorkOrder(context.Background(), testUserID, ScheduledCreateInput{
		MaintenanceCreateInput: validCreateInput(),
		FrequencyKind:          domain.FrequencyMonthly,
		FrequencyEvery:         1,
		NextMaintenance:        due,
	})
	require.NoError(t, err)

	now := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
	processed, err := svc.ProcessDueOccurrences(context.Background(), now, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, processed)

	refreshed, err := svc.GetScheduledByID(context.Background(), order.ID)
	require.NoError(t, err)
	// Jan 31 + 1 month clamps to Feb 29 in a leap year
	assert.Equal(t, time.Date(2024, 2, 29, 8, 0, 0, 0, time.UTC), refreshed.Occurrence.NextMaintenance)

	dueEvents := recorder.byType(events.EventMaintenanceDue)
	require.Len(t, dueEvents, 1)
	payload, ok := dueEvents[0].Payload.(events.MaintenanceDuePayload)
	require.True(t, ok)
	assert.Equal(t, due, payload.DueAt)
	assert.Equal(t, "system", dueEvents[0].ActorID)

	// nothing due on the next pass
	processed, err = svc.ProcessDueOccurrences(context.Background(), now, 10)
	require.NoError(t, err)
	assert.Zero(t, processed)
}

func TestProcessDueOccurrences_SkipsInactive(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestService(store)

	order, err := svc.CreateScheduledWorkOrder(context.Background(), testUserID, ScheduledCreateInput{
		MaintenanceCreateInput: validCreateInput(),
		FrequencyKind:          domain.FrequencyDaily,
		FrequencyEvery:         1,
		NextMaintenance:        time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)
	_, err = svc.ToggleStatus(context.Background(), testUserID, order.ID)
	require.NoError(t, err)

	processed, err := svc.ProcessDueOccurrences(context.Background(), time.Now(), 10)
	require.NoError(t, err)
	assert.Zero(t, processed)
}

func TestScheduledCreateEmitsIntentToResponsible(t *testing.T) {
	store := newMemStore()
	dispatcher := events.NewInMemoryDispatcher()
	intents := &memIntentRepo{}

	notifier := NewNotificationService(dispatcher, intents, nil, nil, config.NotificationConfig{})
	notifier.RegisterHandlers()

	svc := NewMaintenanceService(MaintenanceDependencies{
		UnitOfWork:          memUnitOfWork{store},
		EquipmentRepo:       memEquipmentRepo{ids: map[string]bool{testEquipmentID: true}},
		MaintenanceTypeRepo: memTypeRepo{ids: map[string]bool{testTypeID: true}},
		UserRepo:            memUserRepo{ids: map[string]bool{testUserID: true}},
		Dispatcher:          dispatcher,
	})

	order, err := svc.CreateScheduledWorkOrder(context.Background(), testUserID, ScheduledCreateInput{
		MaintenanceCreateInput: validCreateInput(),
		FrequencyKind:          domain.FrequencyMonthly,
		FrequencyEvery:         1,
		NextMaintenance:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	recorded, err := intents.ListByRecipient(context.Background(), testUserID, 10, 0)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Contains(t, recorded[0].Subject, order.Code)
}

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateCode("MNT")
		assert.Regexp(t, adHocCodePattern, code)
		assert.False(t, seen[code], fmt.Sprintf("duplicate code %s", code))
		seen[code] = true
	}
}

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahaan1984/dee-portal-backend/internal/dto"
	"github.com/ahaan1984/dee-portal-backend/internal/empid"
	"github.com/ahaan1984/dee-portal-backend/internal/models"
	"github.com/ahaan1984/dee-portal-backend/internal/repository"
	appErrors "github.com/ahaan1984/dee-portal-backend/pkg/errors"
)

type changeStoreStub struct {
	changes       map[string]*models.PendingChange
	lastApprove   *repository.ApproveParams
	lastFilter    models.PendingChangeFilter
	nextID        int
	applyOverride error
}

func newChangeStoreStub() *changeStoreStub {
	return &changeStoreStub{changes: make(map[string]*models.PendingChange)}
}

func (s *changeStoreStub) Create(ctx context.Context, change *models.PendingChange) error {
	s.nextID++
	change.ID = "chg-" + string(rune('0'+s.nextID))
	change.RequestedAt = time.Now().UTC()
	s.changes[change.ID] = change
	return nil
}

func (s *changeStoreStub) GetByID(ctx context.Context, id string) (*models.PendingChange, error) {
	if change, ok := s.changes[id]; ok {
		copied := *change
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (s *changeStoreStub) List(ctx context.Context, filter models.PendingChangeFilter) ([]models.PendingChange, error) {
	s.lastFilter = filter
	result := make([]models.PendingChange, 0, len(s.changes))
	for _, change := range s.changes {
		if filter.RequestedBy != "" && change.RequestedBy != filter.RequestedBy {
			continue
		}
		result = append(result, *change)
	}
	return result, nil
}

func (s *changeStoreStub) ApproveAndApply(ctx context.Context, params repository.ApproveParams) error {
	if s.applyOverride != nil {
		return s.applyOverride
	}
	change, ok := s.changes[params.ID]
	if !ok || change.Status != models.ChangeStatusPending {
		return sql.ErrNoRows
	}
	s.lastApprove = &params
	change.Status = models.ChangeStatusApproved
	change.ReviewedBy = &params.ReviewedBy
	reviewedAt := params.ReviewedAt
	change.ReviewedAt = &reviewedAt
	return nil
}

func (s *changeStoreStub) Reject(ctx context.Context, id, reviewedBy string, reviewedAt time.Time) error {
	change, ok := s.changes[id]
	if !ok || change.Status != models.ChangeStatusPending {
		return sql.ErrNoRows
	}
	change.Status = models.ChangeStatusRejected
	change.ReviewedBy = &reviewedBy
	change.ReviewedAt = &reviewedAt
	return nil
}

func seedPending(store *changeStoreStub, id, employeeID, requestedBy string, diff string) {
	store.changes[id] = &models.PendingChange{
		ID:               id,
		EmployeeID:       employeeID,
		RequestedChanges: []byte(diff),
		Status:           models.ChangeStatusPending,
		RequestedBy:      requestedBy,
		RequestedAt:      time.Now().UTC(),
	}
}

func TestCreateStoresPendingChange(t *testing.T) {
	store := newChangeStoreStub()
	svc := NewPendingChangeService(store, nil, nil)

	actor := &models.JWTClaims{Username: "17101", Role: empid.RoleDistrictAdmin, District: "Kamrup"}
	change, err := svc.Create(context.Background(), dto.CreateChangeRequest{
		EmployeeID: "17100",
		Changes:    json.RawMessage(`{"name":"Updated"}`),
	}, actor)
	require.NoError(t, err)
	assert.Equal(t, models.ChangeStatusPending, change.Status)
	assert.Equal(t, "17101", change.RequestedBy)
}

func TestCreateRejectsUnparsedDiffLater(t *testing.T) {
	// Creation accepts any payload; only approval parses the diff.
	store := newChangeStoreStub()
	svc := NewPendingChangeService(store, nil, nil)

	actor := &models.JWTClaims{Username: "17101", Role: empid.RoleDistrictAdmin}
	change, err := svc.Create(context.Background(), dto.CreateChangeRequest{
		EmployeeID: "17100",
		Changes:    json.RawMessage(`"not an object"`),
	}, actor)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), change.ID, "00101")
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrMalformedChange)
}

func TestApproveFiltersDiffThroughWhitelist(t *testing.T) {
	store := newChangeStoreStub()
	svc := NewPendingChangeService(store, nil, nil)

	seedPending(store, "chg-1", "17100", "17101",
		`{"employee_id":"17199","unknown_field":"x","name":"Updated"}`)

	change, err := svc.Approve(context.Background(), "chg-1", "00101")
	require.NoError(t, err)
	assert.Equal(t, models.ChangeStatusApproved, change.Status)

	require.NotNil(t, store.lastApprove)
	assert.Equal(t, map[string]interface{}{
		"employee_id": "17199",
		"name":        "Updated",
	}, store.lastApprove.Fields)
}

func TestApproveEmptyAfterFiltering(t *testing.T) {
	store := newChangeStoreStub()
	svc := NewPendingChangeService(store, nil, nil)

	seedPending(store, "chg-1", "17100", "17101", `{"unknown_field":"x"}`)

	_, err := svc.Approve(context.Background(), "chg-1", "00101")
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrEmptyChange)

	// The row stays pending when filtering fails.
	change, getErr := store.GetByID(context.Background(), "chg-1")
	require.NoError(t, getErr)
	assert.Equal(t, models.ChangeStatusPending, change.Status)
}

func TestApproveMissingChange(t *testing.T) {
	store := newChangeStoreStub()
	svc := NewPendingChangeService(store, nil, nil)

	_, err := svc.Approve(context.Background(), "missing", "00101")
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestApproveIsOneShot(t *testing.T) {
	store := newChangeStoreStub()
	svc := NewPendingChangeService(store, nil, nil)

	seedPending(store, "chg-1", "17100", "17101", `{"name":"Updated"}`)

	_, err := svc.Approve(context.Background(), "chg-1", "00101")
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), "chg-1", "00101")
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.Reject(context.Background(), "chg-1", "00101")
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestApproveRacedReviewSurfacesAsNotFound(t *testing.T) {
	store := newChangeStoreStub()
	svc := NewPendingChangeService(store, nil, nil)

	seedPending(store, "chg-1", "17100", "17101", `{"name":"Updated"}`)
	store.applyOverride = sql.ErrNoRows

	_, err := svc.Approve(context.Background(), "chg-1", "00101")
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestRejectLeavesEmployeeUntouched(t *testing.T) {
	store := newChangeStoreStub()
	svc := NewPendingChangeService(store, nil, nil)

	seedPending(store, "chg-1", "17100", "17101", `{"name":"Updated"}`)

	change, err := svc.Reject(context.Background(), "chg-1", "00101")
	require.NoError(t, err)
	assert.Equal(t, models.ChangeStatusRejected, change.Status)
	assert.Nil(t, store.lastApprove)
}

func TestListScopesToRequesterForNonAdmins(t *testing.T) {
	store := newChangeStoreStub()
	svc := NewPendingChangeService(store, nil, nil)

	viewer := &models.JWTClaims{Username: "17102", Role: empid.RoleDistrictViewer, District: "Kamrup"}
	_, err := svc.List(context.Background(), dto.ChangeQuery{}, viewer)
	require.NoError(t, err)
	assert.Equal(t, "17102", store.lastFilter.RequestedBy)

	admin := &models.JWTClaims{Username: "00101", Role: empid.RoleAdmin}
	_, err = svc.List(context.Background(), dto.ChangeQuery{Status: "pending,approved"}, admin)
	require.NoError(t, err)
	assert.Empty(t, store.lastFilter.RequestedBy)
	assert.Equal(t, []models.ChangeStatus{models.ChangeStatusPending, models.ChangeStatusApproved}, store.lastFilter.Status)
}

func TestGetScopesToRequester(t *testing.T) {
	store := newChangeStoreStub()
	svc := NewPendingChangeService(store, nil, nil)

	seedPending(store, "chg-1", "17100", "17101", `{"name":"Updated"}`)

	other := &models.JWTClaims{Username: "17102", Role: empid.RoleDistrictViewer}
	_, err := svc.Get(context.Background(), "chg-1", other)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	owner := &models.JWTClaims{Username: "17101", Role: empid.RoleDistrictAdmin}
	change, err := svc.Get(context.Background(), "chg-1", owner)
	require.NoError(t, err)
	assert.Equal(t, "chg-1", change.ID)
}

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ahaan1984/dee-portal-backend/internal/dto"
	"github.com/ahaan1984/dee-portal-backend/internal/empid"
	"github.com/ahaan1984/dee-portal-backend/internal/models"
	"github.com/ahaan1984/dee-portal-backend/internal/repository"
	appErrors "github.com/ahaan1984/dee-portal-backend/pkg/errors"
)

// mutableEmployeeFields is the whitelist applied to approved diffs. It
// deliberately still contains employee_id: the legacy approval path allowed
// identifier rewrites and product has not yet ruled on removing that.
var mutableEmployeeFields = map[string]struct{}{
	"employee_id":                {},
	"name":                       {},
	"designation":                {},
	"gender":                     {},
	"place_of_posting":           {},
	"date_of_birth":              {},
	"date_of_joining":            {},
	"cause_of_vacancy":           {},
	"caste":                      {},
	"posted_against_reservation": {},
	"pwd":                        {},
	"ex_servicemen":              {},
	"assembly_constituency":      {},
	"creation_no":                {},
	"retention_no":               {},
	"treasury_name":              {},
}

type changeStore interface {
	Create(ctx context.Context, change *models.PendingChange) error
	GetByID(ctx context.Context, id string) (*models.PendingChange, error)
	List(ctx context.Context, filter models.PendingChangeFilter) ([]models.PendingChange, error)
	ApproveAndApply(ctx context.Context, params repository.ApproveParams) error
	Reject(ctx context.Context, id, reviewedBy string, reviewedAt time.Time) error
}

// PendingChangeService mediates the two-step edit approval workflow.
type PendingChangeService struct {
	repo   changeStore
	cache  cacheInvalidator
	logger *zap.Logger
}

// NewPendingChangeService constructs the service.
func NewPendingChangeService(repo changeStore, cache cacheInvalidator, logger *zap.Logger) *PendingChangeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PendingChangeService{repo: repo, cache: cache, logger: logger}
}

// Create stores a proposed diff as pending. Diff contents are not validated
// here; the whitelist filter runs at approval time.
func (s *PendingChangeService) Create(ctx context.Context, req dto.CreateChangeRequest, actor *models.JWTClaims) (*models.PendingChange, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if strings.TrimSpace(req.EmployeeID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "employee_id is required")
	}
	if len(req.Changes) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "changes payload is required")
	}
	change := &models.PendingChange{
		EmployeeID:       req.EmployeeID,
		RequestedChanges: append([]byte(nil), req.Changes...),
		Status:           models.ChangeStatusPending,
		RequestedBy:      actor.Username,
	}
	if err := s.repo.Create(ctx, change); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to create pending change")
	}
	s.logger.Info("pending change created",
		zap.String("change_id", change.ID),
		zap.String("employee_id", change.EmployeeID),
		zap.String("requested_by", change.RequestedBy),
	)
	return change, nil
}

// List returns changes visible to the actor: superadmin and admin see all,
// everyone else only their own submissions.
func (s *PendingChangeService) List(ctx context.Context, query dto.ChangeQuery, actor *models.JWTClaims) ([]models.PendingChange, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	filter := models.PendingChangeFilter{
		EmployeeID: strings.TrimSpace(query.EmployeeID),
	}
	if raw := strings.TrimSpace(query.Status); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part == "" {
				continue
			}
			filter.Status = append(filter.Status, models.ChangeStatus(part))
		}
	}
	switch actor.Role {
	case empid.RoleSuperAdmin, empid.RoleAdmin:
	default:
		filter.RequestedBy = actor.Username
	}
	changes, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list pending changes")
	}
	return changes, nil
}

// Get returns a single change, scoped the same way List is.
func (s *PendingChangeService) Get(ctx context.Context, id string, actor *models.JWTClaims) (*models.PendingChange, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	change, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load pending change")
	}
	switch actor.Role {
	case empid.RoleSuperAdmin, empid.RoleAdmin:
	default:
		if change.RequestedBy != actor.Username {
			return nil, appErrors.ErrForbidden
		}
	}
	return change, nil
}

// Approve moves a pending row to approved and merges the whitelist-filtered
// diff into the employee record in one transaction. A row that is absent or
// no longer pending is NOT_FOUND by contract.
func (s *PendingChangeService) Approve(ctx context.Context, id, reviewer string) (*models.PendingChange, error) {
	change, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "pending change not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load pending change")
	}
	if change.Status != models.ChangeStatusPending {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "pending change not found")
	}

	fields, err := filterChanges(change.RequestedChanges)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	err = s.repo.ApproveAndApply(ctx, repository.ApproveParams{
		ID:         change.ID,
		EmployeeID: change.EmployeeID,
		ReviewedBy: reviewer,
		ReviewedAt: now,
		Fields:     fields,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "pending change not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to approve pending change")
	}

	change.Status = models.ChangeStatusApproved
	change.ReviewedBy = &reviewer
	change.ReviewedAt = &now
	s.invalidateReports(ctx)
	s.logger.Info("pending change approved",
		zap.String("change_id", change.ID),
		zap.String("employee_id", change.EmployeeID),
		zap.String("reviewed_by", reviewer),
	)
	return change, nil
}

// Reject terminates a pending row with no data-mutation side effect.
func (s *PendingChangeService) Reject(ctx context.Context, id, reviewer string) (*models.PendingChange, error) {
	change, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "pending change not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load pending change")
	}
	if change.Status != models.ChangeStatusPending {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "pending change not found")
	}

	now := time.Now().UTC()
	if err := s.repo.Reject(ctx, change.ID, reviewer, now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "pending change not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to reject pending change")
	}

	change.Status = models.ChangeStatusRejected
	change.ReviewedBy = &reviewer
	change.ReviewedAt = &now
	s.logger.Info("pending change rejected",
		zap.String("change_id", change.ID),
		zap.String("reviewed_by", reviewer),
	)
	return change, nil
}

// filterChanges parses a stored diff and keeps only whitelisted employee
// fields.
func filterChanges(raw []byte) (map[string]interface{}, error) {
	var diff map[string]interface{}
	if err := json.Unmarshal(raw, &diff); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrMalformedChange.Code, appErrors.ErrMalformedChange.Status, appErrors.ErrMalformedChange.Message)
	}
	fields := make(map[string]interface{}, len(diff))
	for key, value := range diff {
		if _, ok := mutableEmployeeFields[key]; ok {
			fields[key] = value
		}
	}
	if len(fields) == 0 {
		return nil, appErrors.Clone(appErrors.ErrEmptyChange, "")
	}
	return fields, nil
}

func (s *PendingChangeService) invalidateReports(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "reports:*"); err != nil {
		s.logger.Warn("failed to invalidate report cache", zap.Error(err))
	}
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ahaan1984/dee-portal-backend/internal/district"
	"github.com/ahaan1984/dee-portal-backend/internal/dto"
	"github.com/ahaan1984/dee-portal-backend/internal/empid"
	"github.com/ahaan1984/dee-portal-backend/internal/models"
	"github.com/ahaan1984/dee-portal-backend/internal/repository"
	appErrors "github.com/ahaan1984/dee-portal-backend/pkg/errors"
)

type employeeStore interface {
	Provision(ctx context.Context, fn func(tx repository.ProvisionTx) error) error
	GetByID(ctx context.Context, employeeID string) (*models.Employee, error)
	List(ctx context.Context, filter models.EmployeeFilter) ([]models.Employee, error)
	Delete(ctx context.Context, employeeID string) error
}

type cacheInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

// EmployeeService orchestrates provisioning and roster reads.
type EmployeeService struct {
	repo      employeeStore
	registry  district.Registry
	cache     cacheInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEmployeeService constructs an EmployeeService instance.
func NewEmployeeService(repo employeeStore, registry district.Registry, cache cacheInvalidator, validate *validator.Validate, logger *zap.Logger) *EmployeeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &EmployeeService{repo: repo, registry: registry, cache: cache, validator: validate, logger: logger}
}

// Provision creates an employee record and its paired authentication account
// under one identifier, inside a single transaction. When no identifier is
// supplied one is allocated from the posting district's sequence with the
// district-admin role digit; a supplied identifier is used as-is. The
// identifier's embedded district always wins over the caller-supplied posting
// district.
func (s *EmployeeService) Provision(ctx context.Context, req dto.CreateEmployeeRequest) (*dto.ProvisionResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid employee payload")
	}

	var result dto.ProvisionResult
	err := s.repo.Provision(ctx, func(tx repository.ProvisionTx) error {
		id := strings.TrimSpace(req.EmployeeID)
		if id == "" {
			position := s.registry.IndexOf(req.PlaceOfPosting)
			districtCode := fmt.Sprintf("%02d", position)
			sequence, err := tx.NextSequence(ctx, districtCode, strconv.Itoa(empid.DistrictAdminDigit))
			if err != nil {
				return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to allocate sequence")
			}
			id, err = empid.Encode(position, empid.DistrictAdminDigit, sequence)
			if err != nil {
				return err
			}
		}

		decoded, err := empid.Decode(id)
		if err != nil {
			return err
		}
		role, err := empid.Resolve(decoded.DistrictCode, decoded.RoleDigit)
		if err != nil {
			return err
		}

		districtName := req.PlaceOfPosting
		if name, ok := empid.DistrictOf(id, s.registry); ok {
			districtName = name
		}

		employee := &models.Employee{
			EmployeeID:               id,
			Name:                     req.Name,
			Designation:              req.Designation,
			Gender:                   req.Gender,
			PlaceOfPosting:           districtName,
			DateOfBirth:              req.DateOfBirth,
			DateOfJoining:            req.DateOfJoining,
			CauseOfVacancy:           req.CauseOfVacancy,
			Caste:                    req.Caste,
			PostedAgainstReservation: req.PostedAgainstReservation,
			PwD:                      req.PwD,
			ExServicemen:             req.ExServicemen,
			AssemblyConstituency:     req.AssemblyConstituency,
			CreationNo:               req.CreationNo,
			RetentionNo:              req.RetentionNo,
			TreasuryName:             req.TreasuryName,
		}
		if err := tx.InsertEmployee(ctx, employee); err != nil {
			return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to insert employee")
		}

		account := &models.User{
			Username: id,
			Role:     role,
		}
		if districtName != "" {
			account.District = &districtName
		}
		if err := tx.InsertAccount(ctx, account); err != nil {
			return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to insert auth account")
		}

		result = dto.ProvisionResult{
			EmployeeID: id,
			Role:       string(role),
			District:   districtName,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateReports(ctx)
	s.logger.Info("employee provisioned",
		zap.String("employee_id", result.EmployeeID),
		zap.String("role", result.Role),
		zap.String("district", result.District),
	)
	return &result, nil
}

// Get returns a single employee. District-scoped actors may only read records
// posted in their own district.
func (s *EmployeeService) Get(ctx context.Context, employeeID string, actor *models.JWTClaims) (*models.Employee, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	employee, err := s.repo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load employee")
	}
	if actor.Role.DistrictScoped() && employee.PlaceOfPosting != actor.District {
		return nil, appErrors.ErrForbidden
	}
	return employee, nil
}

// List returns roster records. For district-scoped actors the district filter
// is forced to the actor's own district regardless of what was requested.
func (s *EmployeeService) List(ctx context.Context, query dto.EmployeeQuery, actor *models.JWTClaims) ([]models.Employee, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	filter := models.EmployeeFilter{
		District: strings.TrimSpace(query.District),
		Search:   strings.TrimSpace(query.Search),
		Limit:    query.Limit,
		Offset:   query.Offset,
	}
	if actor.Role.DistrictScoped() {
		filter.District = actor.District
	}
	employees, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list employees")
	}
	return employees, nil
}

// Delete removes an employee and its account.
func (s *EmployeeService) Delete(ctx context.Context, employeeID string) error {
	if err := s.repo.Delete(ctx, employeeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "employee not found")
		}
		return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to delete employee")
	}
	s.invalidateReports(ctx)
	return nil
}

func (s *EmployeeService) invalidateReports(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "reports:*"); err != nil {
		s.logger.Warn("failed to invalidate report cache", zap.Error(err))
	}
}

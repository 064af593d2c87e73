package service

import (
	"context"
	"database/sql"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahaan1984/dee-portal-backend/internal/district"
	"github.com/ahaan1984/dee-portal-backend/internal/dto"
	"github.com/ahaan1984/dee-portal-backend/internal/empid"
	"github.com/ahaan1984/dee-portal-backend/internal/models"
	"github.com/ahaan1984/dee-portal-backend/internal/repository"
	appErrors "github.com/ahaan1984/dee-portal-backend/pkg/errors"
)

// provisionStoreStub keeps the roster in memory and serialises transactions
// with a mutex, mirroring the row-lock behaviour of the real store.
type provisionStoreStub struct {
	mu         sync.Mutex
	employees  map[string]*models.Employee
	accounts   map[string]*models.User
	lastFilter models.EmployeeFilter
	deleted    []string
}

func newProvisionStoreStub() *provisionStoreStub {
	return &provisionStoreStub{
		employees: make(map[string]*models.Employee),
		accounts:  make(map[string]*models.User),
	}
}

type provisionTxStub struct {
	store     *provisionStoreStub
	employees []*models.Employee
	accounts  []*models.User
}

func (s *provisionStoreStub) Provision(ctx context.Context, fn func(tx repository.ProvisionTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := &provisionTxStub{store: s}
	if err := fn(tx); err != nil {
		return err
	}
	for _, e := range tx.employees {
		s.employees[e.EmployeeID] = e
	}
	for _, a := range tx.accounts {
		s.accounts[a.Username] = a
	}
	return nil
}

func (tx *provisionTxStub) NextSequence(ctx context.Context, districtCode, roleDigit string) (int, error) {
	prefix := districtCode + roleDigit
	max := -1
	for id := range tx.store.employees {
		if len(id) != 5 || id[:3] != prefix {
			continue
		}
		seq, err := strconv.Atoi(id[3:])
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return max + 1, nil
}

func (tx *provisionTxStub) InsertEmployee(ctx context.Context, employee *models.Employee) error {
	tx.employees = append(tx.employees, employee)
	return nil
}

func (tx *provisionTxStub) InsertAccount(ctx context.Context, account *models.User) error {
	tx.accounts = append(tx.accounts, account)
	return nil
}

func (s *provisionStoreStub) GetByID(ctx context.Context, employeeID string) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.employees[employeeID]; ok {
		return e, nil
	}
	return nil, sql.ErrNoRows
}

func (s *provisionStoreStub) List(ctx context.Context, filter models.EmployeeFilter) ([]models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFilter = filter
	result := make([]models.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		if filter.District != "" && e.PlaceOfPosting != filter.District {
			continue
		}
		result = append(result, *e)
	}
	return result, nil
}

func (s *provisionStoreStub) Delete(ctx context.Context, employeeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[employeeID]; !ok {
		return sql.ErrNoRows
	}
	delete(s.employees, employeeID)
	delete(s.accounts, employeeID)
	s.deleted = append(s.deleted, employeeID)
	return nil
}

func validCreateRequest() dto.CreateEmployeeRequest {
	return dto.CreateEmployeeRequest{
		Name:           "Bhaskar Das",
		Designation:    "LDA",
		Gender:         "M",
		PlaceOfPosting: "Kamrup",
		DateOfBirth:    "1990-01-15",
		DateOfJoining:  "2015-07-01",
	}
}

func TestProvisionAllocatesIdentifierFromDistrict(t *testing.T) {
	store := newProvisionStoreStub()
	svc := NewEmployeeService(store, district.Default(), nil, nil, nil)

	result, err := svc.Provision(context.Background(), validCreateRequest())
	require.NoError(t, err)

	// Kamrup is the 17th district, district-admin role digit, first sequence.
	assert.Equal(t, "17100", result.EmployeeID)
	assert.Equal(t, string(empid.RoleDistrictAdmin), result.Role)
	assert.Equal(t, "Kamrup", result.District)

	account, ok := store.accounts["17100"]
	require.True(t, ok)
	assert.Equal(t, empid.RoleDistrictAdmin, account.Role)
	require.NotNil(t, account.District)
	assert.Equal(t, "Kamrup", *account.District)
}

func TestProvisionSequenceAdvances(t *testing.T) {
	store := newProvisionStoreStub()
	store.employees["17100"] = &models.Employee{EmployeeID: "17100", PlaceOfPosting: "Kamrup"}
	store.employees["17103"] = &models.Employee{EmployeeID: "17103", PlaceOfPosting: "Kamrup"}
	svc := NewEmployeeService(store, district.Default(), nil, nil, nil)

	result, err := svc.Provision(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, "17104", result.EmployeeID)
}

func TestProvisionSuppliedIdentifierWins(t *testing.T) {
	store := newProvisionStoreStub()
	svc := NewEmployeeService(store, district.Default(), nil, nil, nil)

	req := validCreateRequest()
	req.EmployeeID = "00205"
	req.PlaceOfPosting = "Barpeta"

	result, err := svc.Provision(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "00205", result.EmployeeID)
	assert.Equal(t, string(empid.RoleAdmin), result.Role)

	// The identifier says statewide, so the supplied posting district does
	// not end up on the account.
	employee := store.employees["00205"]
	require.NotNil(t, employee)
	assert.Equal(t, "Barpeta", employee.PlaceOfPosting)
	account := store.accounts["00205"]
	require.NotNil(t, account)
	assert.Equal(t, empid.RoleAdmin, account.Role)
}

func TestProvisionInvalidRoleDigitAbortsEverything(t *testing.T) {
	store := newProvisionStoreStub()
	svc := NewEmployeeService(store, district.Default(), nil, nil, nil)

	req := validCreateRequest()
	req.EmployeeID = "05205"

	_, err := svc.Provision(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrInvalidRoleDigit)
	assert.Empty(t, store.employees)
	assert.Empty(t, store.accounts)
}

func TestProvisionSequenceExhausted(t *testing.T) {
	store := newProvisionStoreStub()
	store.employees["17199"] = &models.Employee{EmployeeID: "17199", PlaceOfPosting: "Kamrup"}
	svc := NewEmployeeService(store, district.Default(), nil, nil, nil)

	_, err := svc.Provision(context.Background(), validCreateRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrSequenceExhausted)
	assert.Empty(t, store.accounts)
}

func TestProvisionValidationFailure(t *testing.T) {
	store := newProvisionStoreStub()
	svc := NewEmployeeService(store, district.Default(), nil, nil, nil)

	req := validCreateRequest()
	req.Name = ""

	_, err := svc.Provision(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Empty(t, store.employees)
}

func TestProvisionConcurrentAllocationsAreDistinct(t *testing.T) {
	store := newProvisionStoreStub()
	svc := NewEmployeeService(store, district.Default(), nil, nil, nil)

	const workers = 8
	results := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := svc.Provision(context.Background(), validCreateRequest())
			if assert.NoError(t, err) {
				results[i] = result.EmployeeID
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]struct{}, workers)
	for _, id := range results {
		_, dup := seen[id]
		assert.False(t, dup, "duplicate identifier %s", id)
		seen[id] = struct{}{}
	}
	assert.Len(t, store.employees, workers)
}

func TestGetEnforcesDistrictScope(t *testing.T) {
	store := newProvisionStoreStub()
	store.employees["17100"] = &models.Employee{EmployeeID: "17100", PlaceOfPosting: "Kamrup"}
	svc := NewEmployeeService(store, district.Default(), nil, nil, nil)

	actor := &models.JWTClaims{Username: "02101", Role: empid.RoleDistrictViewer, District: "Barpeta"}
	_, err := svc.Get(context.Background(), "17100", actor)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	actor.District = "Kamrup"
	employee, err := svc.Get(context.Background(), "17100", actor)
	require.NoError(t, err)
	assert.Equal(t, "17100", employee.EmployeeID)
}

func TestGetMissingEmployee(t *testing.T) {
	store := newProvisionStoreStub()
	svc := NewEmployeeService(store, district.Default(), nil, nil, nil)

	actor := &models.JWTClaims{Username: "00101", Role: empid.RoleSuperAdmin}
	_, err := svc.Get(context.Background(), "99999", actor)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestListForcesActorDistrict(t *testing.T) {
	store := newProvisionStoreStub()
	svc := NewEmployeeService(store, district.Default(), nil, nil, nil)

	actor := &models.JWTClaims{Username: "17101", Role: empid.RoleDistrictAdmin, District: "Kamrup"}
	_, err := svc.List(context.Background(), dto.EmployeeQuery{District: "Barpeta"}, actor)
	require.NoError(t, err)
	assert.Equal(t, "Kamrup", store.lastFilter.District)

	admin := &models.JWTClaims{Username: "00101", Role: empid.RoleAdmin}
	_, err = svc.List(context.Background(), dto.EmployeeQuery{District: "Barpeta"}, admin)
	require.NoError(t, err)
	assert.Equal(t, "Barpeta", store.lastFilter.District)
}

func TestDeleteMissingEmployee(t *testing.T) {
	store := newProvisionStoreStub()
	svc := NewEmployeeService(store, district.Default(), nil, nil, nil)

	err := svc.Delete(context.Background(), "99999")
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

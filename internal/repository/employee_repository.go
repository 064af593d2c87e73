package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ahaan1984/dee-portal-backend/internal/models"
)

const employeeColumns = `employee_id, name, designation, gender, place_of_posting, date_of_birth, date_of_joining,
       cause_of_vacancy, caste, posted_against_reservation, pwd, ex_servicemen,
       assembly_constituency, creation_no, retention_no, treasury_name, created_at, updated_at`

// EmployeeRepository provides database access for the employee roster.
type EmployeeRepository struct {
	db *sqlx.DB
}

// NewEmployeeRepository creates a new instance of EmployeeRepository.
func NewEmployeeRepository(db *sqlx.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// ProvisionTx is the transaction-scoped store handed to the provisioning
// workflow. Sequence allocation and both inserts run against the same
// transaction, and the allocator's advisory bucket lock holds until commit,
// so concurrent provisioning cannot mint duplicate identifiers.
type ProvisionTx interface {
	NextSequence(ctx context.Context, districtCode, roleDigit string) (int, error)
	InsertEmployee(ctx context.Context, employee *models.Employee) error
	InsertAccount(ctx context.Context, account *models.User) error
}

// Provision runs fn inside a transaction. Any error from fn rolls the whole
// transaction back; the commit happens only when fn returns nil.
func (r *EmployeeRepository) Provision(ctx context.Context, fn func(tx ProvisionTx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin provisioning tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(&provisionTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit provisioning tx: %w", err)
	}
	return nil
}

type provisionTx struct {
	tx *sqlx.Tx
}

// NextSequence returns the numeric maximum of the trailing two-digit field in
// the district+role bucket plus one (0 for an empty bucket). Allocation is
// serialised by a transaction-scoped advisory lock on the bucket prefix: row
// locks cannot do this, since an empty bucket has no rows to lock and a row a
// concurrent transaction inserted is invisible to this snapshot either way.
func (p *provisionTx) NextSequence(ctx context.Context, districtCode, roleDigit string) (int, error) {
	bucket := districtCode + roleDigit
	if _, err := p.tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, bucket); err != nil {
		return 0, fmt.Errorf("lock sequence bucket %s: %w", bucket, err)
	}

	const query = `SELECT employee_id FROM employees WHERE employee_id LIKE $1`
	var ids []string
	if err := p.tx.SelectContext(ctx, &ids, query, bucket+"%"); err != nil {
		return 0, fmt.Errorf("scan sequence bucket %s: %w", bucket, err)
	}

	max := -1
	for _, id := range ids {
		if len(id) < 2 {
			continue
		}
		seq, err := strconv.Atoi(id[len(id)-2:])
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return max + 1, nil
}

// InsertEmployee adds a roster row within the provisioning transaction.
func (p *provisionTx) InsertEmployee(ctx context.Context, employee *models.Employee) error {
	now := time.Now().UTC()
	if employee.CreatedAt.IsZero() {
		employee.CreatedAt = now
	}
	employee.UpdatedAt = now

	const query = `INSERT INTO employees (employee_id, name, designation, gender, place_of_posting, date_of_birth, date_of_joining,
		cause_of_vacancy, caste, posted_against_reservation, pwd, ex_servicemen,
		assembly_constituency, creation_no, retention_no, treasury_name, created_at, updated_at)
	VALUES (:employee_id, :name, :designation, :gender, :place_of_posting, :date_of_birth, :date_of_joining,
		:cause_of_vacancy, :caste, :posted_against_reservation, :pwd, :ex_servicemen,
		:assembly_constituency, :creation_no, :retention_no, :treasury_name, :created_at, :updated_at)`
	if _, err := p.tx.NamedExecContext(ctx, query, employee); err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// InsertAccount adds the paired authentication account within the
// provisioning transaction.
func (p *provisionTx) InsertAccount(ctx context.Context, account *models.User) error {
	now := time.Now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	const query = `INSERT INTO users (username, password, role, district, created_at, updated_at)
	VALUES (:username, :password, :role, :district, :created_at, :updated_at)`
	if _, err := p.tx.NamedExecContext(ctx, query, account); err != nil {
		return fmt.Errorf("insert auth account: %w", err)
	}
	return nil
}

// GetByID returns an employee by identifier.
func (r *EmployeeRepository) GetByID(ctx context.Context, employeeID string) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1 LIMIT 1`
	var employee models.Employee
	if err := r.db.GetContext(ctx, &employee, query, employeeID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find employee by id: %w", err)
	}
	return &employee, nil
}

// List returns employees matching the filter, ordered by identifier.
func (r *EmployeeRepository) List(ctx context.Context, filter models.EmployeeFilter) ([]models.Employee, error) {
	builder := strings.Builder{}
	builder.WriteString(`SELECT ` + employeeColumns + ` FROM employees`)
	var conditions []string
	var args []interface{}

	if filter.District != "" {
		args = append(args, filter.District)
		conditions = append(conditions, fmt.Sprintf("place_of_posting = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(designation) LIKE $%d)", len(args), len(args)))
	}
	if len(conditions) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}
	builder.WriteString(" ORDER BY employee_id")

	limit := filter.Limit
	switch {
	case limit <= 0:
		limit = 100
	case limit > 500:
		limit = 500
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	builder.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset))

	var employees []models.Employee
	if err := r.db.SelectContext(ctx, &employees, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

// Delete removes an employee and its paired authentication account in one
// transaction. Returns sql.ErrNoRows when no employee matched.
func (r *EmployeeRepository) Delete(ctx context.Context, employeeID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx, `DELETE FROM employees WHERE employee_id = $1`, employeeID)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check delete rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE username = $1`, employeeID); err != nil {
		return fmt.Errorf("delete auth account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete tx: %w", err)
	}
	return nil
}

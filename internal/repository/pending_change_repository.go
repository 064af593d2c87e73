package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ahaan1984/dee-portal-backend/internal/models"
)

const pendingChangeColumns = `id, employee_id, requested_changes, status, requested_by, reviewed_by, requested_at, reviewed_at`

// PendingChangeRepository persists the edit-approval workflow.
type PendingChangeRepository struct {
	db *sqlx.DB
}

// NewPendingChangeRepository constructs the repository.
func NewPendingChangeRepository(db *sqlx.DB) *PendingChangeRepository {
	return &PendingChangeRepository{db: db}
}

// Create inserts a new pending change row.
func (r *PendingChangeRepository) Create(ctx context.Context, change *models.PendingChange) error {
	if change.ID == "" {
		change.ID = uuid.NewString()
	}
	if change.Status == "" {
		change.Status = models.ChangeStatusPending
	}
	if change.RequestedAt.IsZero() {
		change.RequestedAt = time.Now().UTC()
	}
	const query = `INSERT INTO pending_changes (id, employee_id, requested_changes, status, requested_by, reviewed_by, requested_at, reviewed_at)
	VALUES (:id, :employee_id, :requested_changes, :status, :requested_by, :reviewed_by, :requested_at, :reviewed_at)`
	if _, err := r.db.NamedExecContext(ctx, query, change); err != nil {
		return fmt.Errorf("create pending change: %w", err)
	}
	return nil
}

// GetByID fetches a pending change by identifier.
func (r *PendingChangeRepository) GetByID(ctx context.Context, id string) (*models.PendingChange, error) {
	query := `SELECT ` + pendingChangeColumns + ` FROM pending_changes WHERE id = $1`
	var change models.PendingChange
	if err := r.db.GetContext(ctx, &change, query, id); err != nil {
		return nil, err
	}
	return &change, nil
}

// List returns pending changes matching the filter, newest first.
func (r *PendingChangeRepository) List(ctx context.Context, filter models.PendingChangeFilter) ([]models.PendingChange, error) {
	builder := strings.Builder{}
	args := make([]interface{}, 0, 4)
	builder.WriteString(`SELECT ` + pendingChangeColumns + ` FROM pending_changes`)

	conditions := make([]string, 0, 3)
	if len(filter.Status) > 0 {
		placeholders := make([]string, len(filter.Status))
		for i, status := range filter.Status {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		conditions = append(conditions, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	if filter.RequestedBy != "" {
		args = append(args, filter.RequestedBy)
		conditions = append(conditions, fmt.Sprintf("requested_by = $%d", len(args)))
	}
	if len(conditions) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}
	builder.WriteString(" ORDER BY requested_at DESC")

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	builder.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset))

	var changes []models.PendingChange
	if err := r.db.SelectContext(ctx, &changes, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list pending changes: %w", err)
	}
	return changes, nil
}

// ApproveParams carries the reviewed outcome plus the filtered fields to
// merge into the employee row.
type ApproveParams struct {
	ID         string
	EmployeeID string
	ReviewedBy string
	ReviewedAt time.Time
	Fields     map[string]interface{}
}

// ApproveAndApply marks a pending row approved and applies the filtered
// fields to the target employee, both inside one transaction. The status
// update is guarded by status='pending'; zero affected rows surfaces as
// sql.ErrNoRows so a raced or already-reviewed row is indistinguishable from
// an absent one. A missing target employee also rolls everything back.
func (r *PendingChangeRepository) ApproveAndApply(ctx context.Context, params ApproveParams) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin approve tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx,
		`UPDATE pending_changes SET status = $2, reviewed_by = $3, reviewed_at = $4 WHERE id = $1 AND status = $5`,
		params.ID, models.ChangeStatusApproved, params.ReviewedBy, params.ReviewedAt, models.ChangeStatusPending)
	if err != nil {
		return fmt.Errorf("mark change approved: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check approve rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	setParts := make([]string, 0, len(params.Fields)+1)
	args := make([]interface{}, 0, len(params.Fields)+2)
	columns := make([]string, 0, len(params.Fields))
	for column := range params.Fields {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	for _, column := range columns {
		args = append(args, params.Fields[column])
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	args = append(args, params.ReviewedAt)
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", len(args)))
	args = append(args, params.EmployeeID)
	query := fmt.Sprintf("UPDATE employees SET %s WHERE employee_id = $%d", strings.Join(setParts, ", "), len(args))

	result, err = tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("apply change fields: %w", err)
	}
	rows, err = result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check apply rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit approve tx: %w", err)
	}
	return nil
}

// Reject marks a pending row rejected. Zero affected rows surfaces as
// sql.ErrNoRows, matching ApproveAndApply's contract.
func (r *PendingChangeRepository) Reject(ctx context.Context, id, reviewedBy string, reviewedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE pending_changes SET status = $2, reviewed_by = $3, reviewed_at = $4 WHERE id = $1 AND status = $5`,
		id, models.ChangeStatusRejected, reviewedBy, reviewedAt, models.ChangeStatusPending)
	if err != nil {
		return fmt.Errorf("mark change rejected: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check reject rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

package models

import "time"

// ChangeStatus captures the pending-change lifecycle. Transitions are
// one-shot: pending rows move to approved or rejected exactly once.
type ChangeStatus string

const (
	ChangeStatusPending  ChangeStatus = "pending"
	ChangeStatusApproved ChangeStatus = "approved"
	ChangeStatusRejected ChangeStatus = "rejected"
)

// PendingChange is a proposed field-level edit to an employee record awaiting
// superadmin disposition.
type PendingChange struct {
	ID               string       `db:"id" json:"id"`
	EmployeeID       string       `db:"employee_id" json:"employee_id"`
	RequestedChanges []byte       `db:"requested_changes" json:"requested_changes"`
	Status           ChangeStatus `db:"status" json:"status"`
	RequestedBy      string       `db:"requested_by" json:"requested_by"`
	ReviewedBy       *string      `db:"reviewed_by" json:"reviewed_by,omitempty"`
	RequestedAt      time.Time    `db:"requested_at" json:"requested_at"`
	ReviewedAt       *time.Time   `db:"reviewed_at" json:"reviewed_at,omitempty"`
}

// PendingChangeFilter constrains listing queries.
type PendingChangeFilter struct {
	Status      []ChangeStatus
	EmployeeID  string
	RequestedBy string
	Limit       int
	Offset      int
}

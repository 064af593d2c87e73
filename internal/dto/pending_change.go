package dto

import "encoding/json"

// CreateChangeRequest submits a proposed field diff for an employee record.
// The diff is stored untouched; validation happens at approval time.
type CreateChangeRequest struct {
	EmployeeID string          `json:"employee_id" validate:"required"`
	Changes    json.RawMessage `json:"changes" validate:"required"`
}

// ChangeQuery captures pending-change list filters.
type ChangeQuery struct {
	Status     string `form:"status"`
	EmployeeID string `form:"employee_id"`
}

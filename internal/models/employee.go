package models

import "time"

// Employee represents a roster record keyed by its employee identifier. Rows
// are created by the provisioning workflow and mutated only through approved
// pending changes.
type Employee struct {
	EmployeeID               string    `db:"employee_id" json:"employee_id"`
	Name                     string    `db:"name" json:"name"`
	Designation              string    `db:"designation" json:"designation"`
	Gender                   string    `db:"gender" json:"gender"`
	PlaceOfPosting           string    `db:"place_of_posting" json:"place_of_posting"`
	DateOfBirth              string    `db:"date_of_birth" json:"date_of_birth"`
	DateOfJoining            string    `db:"date_of_joining" json:"date_of_joining"`
	CauseOfVacancy           *string   `db:"cause_of_vacancy" json:"cause_of_vacancy,omitempty"`
	Caste                    *string   `db:"caste" json:"caste,omitempty"`
	PostedAgainstReservation *string   `db:"posted_against_reservation" json:"posted_against_reservation,omitempty"`
	PwD                      bool      `db:"pwd" json:"pwd"`
	ExServicemen             bool      `db:"ex_servicemen" json:"ex_servicemen"`
	AssemblyConstituency     *string   `db:"assembly_constituency" json:"assembly_constituency,omitempty"`
	CreationNo               *string   `db:"creation_no" json:"creation_no,omitempty"`
	RetentionNo              *string   `db:"retention_no" json:"retention_no,omitempty"`
	TreasuryName             *string   `db:"treasury_name" json:"treasury_name,omitempty"`
	CreatedAt                time.Time `db:"created_at" json:"created_at"`
	UpdatedAt                time.Time `db:"updated_at" json:"updated_at"`
}

// EmployeeFilter constrains roster listing queries. District, when set, is a
// mandatory narrowing applied for district-scoped roles.
type EmployeeFilter struct {
	District string
	Search   string
	Limit    int
	Offset   int
}

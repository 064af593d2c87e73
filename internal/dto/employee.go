package dto

// CreateEmployeeRequest carries the attributes for provisioning a new
// employee. EmployeeID is optional: when empty an identifier is allocated
// from the posting district's sequence.
type CreateEmployeeRequest struct {
	EmployeeID               string  `json:"employee_id"`
	Name                     string  `json:"name" validate:"required"`
	Designation              string  `json:"designation" validate:"required"`
	Gender                   string  `json:"gender" validate:"required"`
	PlaceOfPosting           string  `json:"place_of_posting"`
	DateOfBirth              string  `json:"date_of_birth" validate:"required"`
	DateOfJoining            string  `json:"date_of_joining" validate:"required"`
	CauseOfVacancy           *string `json:"cause_of_vacancy"`
	Caste                    *string `json:"caste"`
	PostedAgainstReservation *string `json:"posted_against_reservation"`
	PwD                      bool    `json:"pwd"`
	ExServicemen             bool    `json:"ex_servicemen"`
	AssemblyConstituency     *string `json:"assembly_constituency"`
	CreationNo               *string `json:"creation_no"`
	RetentionNo              *string `json:"retention_no"`
	TreasuryName             *string `json:"treasury_name"`
}

// ProvisionResult is the outcome of the provisioning workflow.
type ProvisionResult struct {
	EmployeeID string `json:"employee_id"`
	Role       string `json:"role"`
	District   string `json:"district,omitempty"`
}

// EmployeeQuery captures list filters from the query string.
type EmployeeQuery struct {
	District string `form:"district"`
	Search   string `form:"search"`
	Limit    int    `form:"limit"`
	Offset   int    `form:"offset"`
}

package empid

import (
	"fmt"

	appErrors "github.com/ahaan1984/dee-portal-backend/pkg/errors"
)

// RoleClass is the symbolic role derived from an identifier. It is produced
// only by Resolve, never inferred elsewhere.
type RoleClass string

const (
	RoleSuperAdmin     RoleClass = "superadmin"
	RoleAdmin          RoleClass = "admin"
	RoleViewer         RoleClass = "viewer"
	RoleDistrictAdmin  RoleClass = "district_admin"
	RoleDistrictViewer RoleClass = "district_viewer"
)

// DistrictAdminDigit is the role digit assigned to employees provisioned
// without an explicit identifier.
const DistrictAdminDigit = 1

// Resolve maps the (district code, role digit) pair onto one of the five
// legal role classes.
func Resolve(districtCode, roleDigit string) (RoleClass, error) {
	global := districtCode == NoDistrictCode
	switch {
	case global && roleDigit == "1":
		return RoleSuperAdmin, nil
	case global && roleDigit == "2":
		return RoleAdmin, nil
	case global && roleDigit == "0":
		return RoleViewer, nil
	case !global && roleDigit == "1":
		return RoleDistrictAdmin, nil
	case !global && roleDigit == "0":
		return RoleDistrictViewer, nil
	}
	return "", appErrors.Clone(appErrors.ErrInvalidRoleDigit,
		fmt.Sprintf("role digit %q is not valid for district code %q", roleDigit, districtCode))
}

// DistrictScoped reports whether the role carries a mandatory district scope.
func (r RoleClass) DistrictScoped() bool {
	return r == RoleDistrictAdmin || r == RoleDistrictViewer
}

// CanProvision reports whether the role may create employees and propose edits.
func (r RoleClass) CanProvision() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleDistrictAdmin:
		return true
	}
	return false
}

// CanApprove reports whether the role may resolve pending changes and delete
// records.
func (r RoleClass) CanApprove() bool {
	return r == RoleSuperAdmin
}

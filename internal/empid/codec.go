// Package empid owns the fixed-width employee identifier format: two district
// digits, one role digit and a two-digit sequence number. Identifiers are only
// ever assembled here.
package empid

import (
	"fmt"
	"strconv"

	"github.com/ahaan1984/dee-portal-backend/internal/district"
	appErrors "github.com/ahaan1984/dee-portal-backend/pkg/errors"
)

// IDLength is the exact width of an employee identifier.
const IDLength = 5

// NoDistrictCode marks district-independent identifiers.
const NoDistrictCode = "00"

// Decoded holds the positional fields of an identifier.
type Decoded struct {
	DistrictCode string
	RoleDigit    string
	Sequence     int
}

// Encode assembles an identifier from a 1-based district position (0 meaning
// no district), a role digit and a per-bucket sequence number. The role digit
// is emitted verbatim; whether it is legal for the district is the resolver's
// concern. Sequences beyond 99 cannot be represented in two digits and fail
// instead of wrapping.
func Encode(districtPosition, roleDigit, sequence int) (string, error) {
	if districtPosition < 0 || districtPosition > 99 {
		return "", appErrors.Wrap(fmt.Errorf("district position %d out of range", districtPosition),
			appErrors.ErrMalformedIdentifier.Code, appErrors.ErrMalformedIdentifier.Status, appErrors.ErrMalformedIdentifier.Message)
	}
	if roleDigit < 0 || roleDigit > 9 {
		return "", appErrors.Wrap(fmt.Errorf("role digit %d out of range", roleDigit),
			appErrors.ErrInvalidRoleDigit.Code, appErrors.ErrInvalidRoleDigit.Status, appErrors.ErrInvalidRoleDigit.Message)
	}
	if sequence < 0 || sequence > 99 {
		return "", appErrors.Clone(appErrors.ErrSequenceExhausted,
			fmt.Sprintf("sequence %d does not fit the two-digit field", sequence))
	}
	return fmt.Sprintf("%02d%d%02d", districtPosition, roleDigit, sequence), nil
}

// Decode splits an identifier into its positional fields.
func Decode(id string) (Decoded, error) {
	if len(id) != IDLength {
		return Decoded{}, appErrors.Clone(appErrors.ErrMalformedIdentifier,
			fmt.Sprintf("identifier must be exactly %d characters", IDLength))
	}
	if _, err := strconv.Atoi(id[:2]); err != nil {
		return Decoded{}, appErrors.Wrap(err, appErrors.ErrMalformedIdentifier.Code,
			appErrors.ErrMalformedIdentifier.Status, "district code is not numeric")
	}
	seq, err := strconv.Atoi(id[3:])
	if err != nil {
		return Decoded{}, appErrors.Wrap(err, appErrors.ErrMalformedIdentifier.Code,
			appErrors.ErrMalformedIdentifier.Status, "sequence is not numeric")
	}
	return Decoded{
		DistrictCode: id[:2],
		RoleDigit:    id[2:3],
		Sequence:     seq,
	}, nil
}

// DistrictOf resolves the district name embedded in an identifier. The second
// return is false for the "00" code, for codes beyond the registry size, and
// for identifiers that do not decode at all.
func DistrictOf(id string, registry district.Registry) (string, bool) {
	decoded, err := Decode(id)
	if err != nil {
		return "", false
	}
	if decoded.DistrictCode == NoDistrictCode {
		return "", false
	}
	code, err := strconv.Atoi(decoded.DistrictCode)
	if err != nil {
		return "", false
	}
	return registry.NameAt(code)
}

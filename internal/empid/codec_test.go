package empid

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahaan1984/dee-portal-backend/internal/district"
	appErrors "github.com/ahaan1984/dee-portal-backend/pkg/errors"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		position int
		digit    int
		sequence int
		want     string
	}{
		{"no district", 0, 1, 0, "00100"},
		{"single digit district", 5, 0, 7, "05007"},
		{"kamrup", 17, 1, 12, "17112"},
		{"last district", 35, 1, 99, "35199"},
		{"admin digit", 0, 2, 3, "00203"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.position, tt.digit, tt.sequence)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeSequenceExhausted(t *testing.T) {
	_, err := Encode(17, 1, 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrSequenceExhausted))

	_, err = Encode(17, 1, -1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrSequenceExhausted))
}

func TestEncodeInvalidInputs(t *testing.T) {
	_, err := Encode(-1, 1, 0)
	assert.True(t, errors.Is(err, appErrors.ErrMalformedIdentifier))

	_, err = Encode(100, 1, 0)
	assert.True(t, errors.Is(err, appErrors.ErrMalformedIdentifier))

	_, err = Encode(1, 10, 0)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidRoleDigit))
}

func TestDecodeRoundTrip(t *testing.T) {
	for _, position := range []int{0, 1, 5, 17, 34, 35} {
		for _, digit := range []int{0, 1, 2} {
			for _, sequence := range []int{0, 9, 42, 99} {
				id, err := Encode(position, digit, sequence)
				require.NoError(t, err)

				decoded, err := Decode(id)
				require.NoError(t, err)
				assert.Equal(t, fmt.Sprintf("%02d", position), decoded.DistrictCode)
				assert.Equal(t, fmt.Sprintf("%d", digit), decoded.RoleDigit)
				assert.Equal(t, sequence, decoded.Sequence)
			}
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, id := range []string{"", "1", "1711", "171123", "ab1cd"} {
		_, err := Decode(id)
		require.Error(t, err, "id %q", id)
		assert.True(t, errors.Is(err, appErrors.ErrMalformedIdentifier), "id %q", id)
	}
}

func TestDistrictOf(t *testing.T) {
	reg := district.Default()

	name, ok := DistrictOf("17101", reg)
	require.True(t, ok)
	assert.Equal(t, "Kamrup", name)

	// "00" is always district-independent, whatever the rest of the id says.
	for _, digit := range []int{0, 1, 2} {
		for _, sequence := range []int{0, 50, 99} {
			id, err := Encode(0, digit, sequence)
			require.NoError(t, err)
			_, ok := DistrictOf(id, reg)
			assert.False(t, ok, "id %s", id)
		}
	}

	// Codes past the registry size decode to "no district", not an error.
	_, ok = DistrictOf("99105", reg)
	assert.False(t, ok)

	_, ok = DistrictOf("bogus", reg)
	assert.False(t, ok)
}

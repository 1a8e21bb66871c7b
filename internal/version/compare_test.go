package version

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.2", "1.2.0", 0},
		{"2.0.0", "1.9.9", 1},
		{"1.2.3", "1.3.0", -1},
		{"2", "1.9.9", 1},
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "1.0.1", -1},
		{"1.10", "1.9", 1},
		{"0", "0.0.0.0", 0},
		{"01.2", "1.2", 0},
		{"1.0.0.1", "1", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			got, err := Compare(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompare_AntisymmetricAndReflexive(t *testing.T) {
	versions := []string{"0", "1", "1.0", "1.0.1", "1.2", "1.10", "2.0.0", "10.0", "3.4.5.6"}

	for _, a := range versions {
		self, err := Compare(a, a)
		require.NoError(t, err)
		assert.Equal(t, 0, self, "Compare(%q, %q)", a, a)

		for _, b := range versions {
			ab, err := Compare(a, b)
			require.NoError(t, err)
			ba, err := Compare(b, a)
			require.NoError(t, err)
			assert.Equal(t, -ba, ab, "Compare(%q, %q) should negate Compare(%q, %q)", a, b, b, a)
		}
	}
}

func TestCompare_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		segment string
	}{
		{"letters", "1.x", "1.0", "x"},
		{"prerelease suffix", "1.0.0", "1.0.0-rc1", "0-rc1"},
		{"empty segment", "1..2", "1.0", ""},
		{"empty string", "", "1", ""},
		{"negative", "1.0", "1.-1", "-1"},
		{"whitespace", " 1", "1", " 1"},
		{"order decided before bad segment", "2.x", "1", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compare(tt.a, tt.b)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed))

			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.segment, fe.Segment)
		})
	}
}

func TestReached_InclusiveBoundary(t *testing.T) {
	reached, err := Reached("1.0.0", "1.0.0")
	require.NoError(t, err)
	assert.True(t, reached, "reaching the exact threshold is already a violation")

	reached, err = Reached("1.0.0", "1.0.1")
	require.NoError(t, err)
	assert.False(t, reached)

	reached, err = Reached("3.0.0", "2.0.0")
	require.NoError(t, err)
	assert.True(t, reached)
}

func TestReached_MalformedThreshold(t *testing.T) {
	reached, err := Reached("1.0.0", "soon")
	assert.False(t, reached)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("1.2.3"))
	assert.NoError(t, Validate("7"))
	assert.ErrorIs(t, Validate("1.2.3-SNAPSHOT"), ErrMalformed)
	assert.ErrorIs(t, Validate(""), ErrMalformed)
}

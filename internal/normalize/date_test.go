package normalize

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbbrevMonthDate(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"07-Mar-24", "2024-03-07"},
		{"15-jan-25", "2025-01-15"},
		{"01-DEC-23", "2023-12-01"},
		{"29-Feb-24", "2024-02-29"},
	}
	for _, tt := range tests {
		got, ok := AbbrevMonthDate(tt.token)
		require.True(t, ok, "AbbrevMonthDate(%q)", tt.token)
		assert.Equal(t, tt.want, got)
	}
}

func TestAbbrevMonthDate_Rejects(t *testing.T) {
	for _, token := range []string{"7-Mar-24", "07-Mzo-24", "07-Mar-2024", "07-03-24", "29-Feb-23", "", "07 Mar 24"} {
		_, ok := AbbrevMonthDate(token)
		assert.False(t, ok, "expected %q to be rejected", token)
	}
}

func TestNumericDate(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"15-03-24", "2024-03-15"},
		{"01-01-00", "2000-01-01"},
		{"31-12-99", "2099-12-31"},
	}
	for _, tt := range tests {
		got, ok := NumericDate(tt.token)
		require.True(t, ok, "NumericDate(%q)", tt.token)
		assert.Equal(t, tt.want, got)
	}
}

func TestNumericDate_Rejects(t *testing.T) {
	for _, token := range []string{"15-13-24", "00-01-24", "31-04-24", "1-03-24", "15/03/24", "15-03-2024", "abc"} {
		_, ok := NumericDate(token)
		assert.False(t, ok, "expected %q to be rejected", token)
	}
}

func TestTwoDigitYearsAlwaysLandInTwoThousands(t *testing.T) {
	for yy := 0; yy <= 99; yy++ {
		want := fmt.Sprintf("%04d-06-10", 2000+yy)

		got, ok := NumericDate(fmt.Sprintf("10-06-%02d", yy))
		require.True(t, ok)
		assert.Equal(t, want, got)

		got, ok = AbbrevMonthDate(fmt.Sprintf("10-Jun-%02d", yy))
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestSlashDate(t *testing.T) {
	tests := []struct {
		token string
		want  string
		ok    bool
	}{
		{"5/3/2024", "2024-03-05", true},
		{"15/03/2024", "2024-03-15", true},
		{"1/12/2023", "2023-12-01", true},
		{"15/03/24", "", false},
		{"32/01/2024", "", false},
		{"15-03-2024", "", false},
	}
	for _, tt := range tests {
		got, ok := SlashDate(tt.token)
		assert.Equal(t, tt.ok, ok, "SlashDate(%q)", tt.token)
		assert.Equal(t, tt.want, got)
	}
}

func TestFormatISO(t *testing.T) {
	assert.Equal(t, "2024-01-09", FormatISO(time.Date(2024, 1, 9, 23, 0, 0, 0, time.UTC)))
}

func TestParseISO(t *testing.T) {
	d, ok := ParseISO("2024-02-29")
	require.True(t, ok)
	assert.Equal(t, time.February, d.Month())

	for _, bad := range []string{"", "2023-02-29", "2024-2-9", "29/02/2024", "2024-13-01"} {
		_, ok := ParseISO(bad)
		assert.False(t, ok, "ParseISO(%q)", bad)
	}
}

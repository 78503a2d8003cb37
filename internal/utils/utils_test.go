package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgeFromBirthDate(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want int
	}{
		{"15/06/2000", 25},
		{"16/06/2000", 24},
		{"01/01/1990", 35},
		{"31/12/2024", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := AgeFromBirthDate(tt.in, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"2000-06-15", "32/01/2000", "01/01/2030", ""} {
		_, err := AgeFromBirthDate(bad, now)
		assert.Errorf(t, err, "expected error for %q", bad)
	}
}

func TestNewOrderNo(t *testing.T) {
	now := time.Date(2025, time.March, 4, 5, 6, 7, 0, time.UTC)

	a := NewOrderNo("RDM", now)
	b := NewOrderNo("RDM", now)

	assert.True(t, strings.HasPrefix(a, "RDM20250304050607"))
	assert.Len(t, a, len("RDM")+14+8)
	assert.NotEqual(t, a, b)
}

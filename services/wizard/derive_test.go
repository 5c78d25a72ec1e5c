package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeAge(t *testing.T) {
	now := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

	age, err := ComputeAge("2000-06-15", now)
	require.NoError(t, err)
	assert.Equal(t, 24, age, "day before the birthday")

	age, err = ComputeAge("2000-06-15", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 25, age, "on the birthday")

	age, err = ComputeAge("2000-01-01", now)
	require.NoError(t, err)
	assert.Equal(t, 25, age)

	_, err = ComputeAge("15-06-2000", now)
	assert.Error(t, err)

	_, err = ComputeAge("", now)
	assert.Error(t, err)
}

func TestComputeTenure(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want string
	}{
		{"invalid from", "not-a-date", "2024-01-01", TenureInvalidFormat},
		{"invalid to", "2024-01-01", "junk", TenureInvalidFormat},
		{"both empty", "", "", TenureInvalidFormat},
		{"to before from", "2024-05-01", "2024-04-01", TenureInvalidOrder},
		{"same day", "2024-03-10", "2024-03-10", "Less than a month"},
		{"under a month", "2024-03-10", "2024-04-05", "Less than a month"},
		{"single month", "2024-03-10", "2024-04-10", "1 month"},
		{"months only", "2024-01-15", "2024-06-20", "5 months"},
		{"single year", "2023-02-01", "2024-02-01", "1 year"},
		{"years only", "2020-06-01", "2024-06-01", "4 years"},
		{"years and months", "2020-01-10", "2023-04-15", "3 years, 3 months"},
		{"singular pair", "2023-01-10", "2024-02-12", "1 year, 1 month"},
		{"day borrow", "2023-01-20", "2024-01-10", "11 months"},
		{"borrow across year", "2022-12-20", "2024-01-10", "1 year"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeTenure(tt.from, tt.to))
		})
	}
}

func TestIsInvalidTenure(t *testing.T) {
	assert.True(t, IsInvalidTenure(TenureInvalidFormat))
	assert.True(t, IsInvalidTenure(TenureInvalidOrder))
	assert.False(t, IsInvalidTenure("2 years, 3 months"))
	assert.False(t, IsInvalidTenure("Less than a month"))
	assert.False(t, IsInvalidTenure(""))
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 0, CountWords("   \n\t "))
	assert.Equal(t, 1, CountWords("hello"))
	assert.Equal(t, 3, CountWords("  one   two\nthree "))
}

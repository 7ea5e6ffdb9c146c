package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSameDay(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a    time.Time
		b    time.Time
		want bool
	}{
		{
			name: "same instant",
			a:    day,
			b:    day,
			want: true,
		},
		{
			name: "last minute of the same day",
			a:    day,
			b:    time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "first second of the next day",
			a:    day,
			b:    time.Date(2024, 1, 16, 0, 0, 1, 0, time.UTC),
			want: false,
		},
		{
			name: "non-UTC location normalised to UTC",
			a:    time.Date(2024, 1, 15, 22, 0, 0, 0, time.FixedZone("CET", 3600)),
			b:    time.Date(2024, 1, 15, 21, 30, 0, 0, time.UTC),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SameDay(tt.a, tt.b))
		})
	}
}

func TestTruncateToDay(t *testing.T) {
	got := TruncateToDay(time.Date(2024, 3, 10, 18, 45, 12, 999, time.UTC))
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), got)
}

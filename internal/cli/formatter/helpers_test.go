package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"tomorrow", now.Add(24 * time.Hour), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"3 months future", now.Add(90 * 24 * time.Hour), "In 3mo"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
		{"3 months past", now.Add(-90 * 24 * time.Hour), "3mo ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestTimestampFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "Just now", TimestampFrom(now.Add(-10*time.Second), now))
	assert.Equal(t, "5m ago", TimestampFrom(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3h ago", TimestampFrom(now.Add(-3*time.Hour), now))
	assert.Equal(t, "Feb 1, 2026", TimestampFrom(now.AddDate(0, 0, -6), now))
}

func TestMoney(t *testing.T) {
	tests := map[float64]string{
		0:          "$0",
		999:        "$999",
		1000:       "$1,000",
		1234567.6:  "$1,234,568",
		-25000:     "-$25,000",
		4200000000: "$4,200,000,000",
	}
	for in, want := range tests {
		assert.Equal(t, want, Money(in), "Money(%v)", in)
	}
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "abcdef12", TruncID("abcdef12-3456-7890"))
	assert.Equal(t, "short", TruncID("short"))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "In Progress", label("in_progress"))
	assert.Equal(t, "Archived", label("archived"))
}

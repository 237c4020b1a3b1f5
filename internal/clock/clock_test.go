package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatLayout(t *testing.T) {
	ts := time.Date(2026, 1, 2, 15, 4, 5, 0, time.Local)
	formatted := Format(ts)
	// Exact offset depends on the host's local zone, but the layout's
	// fixed-width components must always be present.
	assert.Contains(t, formatted, "Jan 02 15:04:05 2026")
}

func TestSystemClockAdvances(t *testing.T) {
	s := System{}
	a := s.Now()
	b := s.Now()
	assert.False(t, b.Before(a))
}

func TestEpochIsUnixZero(t *testing.T) {
	assert.Equal(t, int64(0), Epoch().Unix())
}

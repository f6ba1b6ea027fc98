package library

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateOfIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2025, 3, 10, 0, 5, 0, 0, time.UTC)
	night := time.Date(2025, 3, 10, 23, 55, 0, 0, time.UTC)
	assert.Equal(t, dateOf(morning), dateOf(night))
}

func TestDaysBetween(t *testing.T) {
	a := dateOf(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	b := dateOf(time.Date(2025, 3, 13, 1, 0, 0, 0, time.UTC))
	assert.Equal(t, 3, daysBetween(a, b))
	assert.Equal(t, -3, daysBetween(b, a))
	assert.Equal(t, 0, daysBetween(a, a))
}

package clock

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
)

func TestFakeClock(t *testing.T) {
	start := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)
	c := NewFake(start)

	assert.Equal(t, start, c.Now())
	assert.Equal(t, civil.Date{Year: 2024, Month: time.March, Day: 10}, Today(c))

	c.Advance(time.Hour)
	assert.Equal(t, civil.Date{Year: 2024, Month: time.March, Day: 11}, Today(c))

	c.AdvanceDays(2)
	assert.Equal(t, start.Add(time.Hour).AddDate(0, 0, 2), c.Now())

	c.Set(start)
	assert.Equal(t, start, c.Now())
}

func TestRealClockIsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, RealClock{}.Now().Location())
}

func TestToday_Zoned(t *testing.T) {
	// 23:30 UTC on March 1st is already March 2nd nine hours east.
	fake := NewFake(time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC))
	east := Zoned{Clock: fake, Location: time.FixedZone("UTC+9", 9*60*60)}

	assert.Equal(t, civil.Date{Year: 2026, Month: 3, Day: 1}, Today(fake))
	assert.Equal(t, civil.Date{Year: 2026, Month: 3, Day: 2}, Today(east))
	assert.Equal(t, time.UTC, east.Now().Location())

	assert.Equal(t, Today(fake), Today(Zoned{Clock: fake}))
}

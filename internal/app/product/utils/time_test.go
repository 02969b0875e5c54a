package utils

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime_UTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2026, 5, 1, 12, 0, 0, 0, loc)
	assert.Equal(t, "2026-05-01T10:00:00Z", FormatTime(ts))
}

func TestFormatDatePtr(t *testing.T) {
	assert.Nil(t, FormatDatePtr(nil))
	d := civil.Date{Year: 2026, Month: 1, Day: 9}
	got := FormatDatePtr(&d)
	require.NotNil(t, got)
	assert.Equal(t, "2026-01-09", *got)
}

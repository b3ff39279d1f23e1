package pkg_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athletica/backend/pkg"
)

func TestDate_JSON(t *testing.T) {
	d := pkg.DateFrom(2026, 3, 14)

	dateJson, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-14"`, string(dateJson))

	var parsed pkg.Date
	require.NoError(t, json.Unmarshal(dateJson, &parsed))
	assert.Equal(t, d, parsed)

	var zero pkg.Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &zero))
	assert.True(t, zero.IsZero())

	zeroJson, err := json.Marshal(pkg.Date{})
	require.NoError(t, err)
	assert.Equal(t, `""`, string(zeroJson))
}

func TestNewDate(t *testing.T) {
	lateEvening := time.Date(2026, 3, 14, 23, 45, 12, 999, time.UTC)
	assert.Equal(t, pkg.DateFrom(2026, 3, 14), pkg.NewDate(lateEvening))

	// the calendar day of the given zone counts, not the UTC day
	berlin := time.FixedZone("CET", 60*60)
	justPastMidnight := time.Date(2026, 3, 15, 0, 30, 0, 0, berlin)
	assert.Equal(t, "2026-03-15", pkg.NewDate(justPastMidnight).String())
}

func TestParseDate(t *testing.T) {
	d, err := pkg.ParseDate("2026-03-14")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", d.String())

	_, err = pkg.ParseDate("14.03.2026")
	assert.Error(t, err)
}

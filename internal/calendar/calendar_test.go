package calendar_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athletica/backend/internal/calendar"
	"github.com/athletica/backend/pkg"
)

func TestRow_MarshalJSON(t *testing.T) {
	strengthRow := calendar.NewStrengthRow(7, "Bench Press", 2)
	strengthJson, err := json.Marshal(strengthRow)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"exercise_id": 7,
		"name": "Bench Press",
		"exercise_type": "strength",
		"set_number": 2,
		"reps": 10
	}`, string(strengthJson))

	cardioRow := calendar.NewCardioRow(12, "Treadmill", 1)
	cardioJson, err := json.Marshal(cardioRow)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"exercise_id": 12,
		"name": "Treadmill",
		"exercise_type": "cardio",
		"set_number": 1,
		"duration_minutes": 20
	}`, string(cardioJson))
}

func TestRow_UnmarshalJSON(t *testing.T) {
	var row calendar.Row
	require.NoError(t, json.Unmarshal([]byte(`{
		"exercise_id": 7,
		"exercise_type": "strength",
		"set_number": 3,
		"reps": 5,
		"weight_kg": 82.5
	}`), &row))

	assert.Equal(t, 7, row.ExerciseID)
	assert.Equal(t, 3, row.SetNumber)
	assert.Equal(t, calendar.StrengthSet{Reps: 5, WeightKg: 82.5}, row.Set)
}

func TestRow_UnmarshalJSON_untaggedPayloads(t *testing.T) {
	// payloads without exercise_type: the numbers decide the kind
	var cardioRow calendar.Row
	require.NoError(t, json.Unmarshal(
		[]byte(`{"exercise_id": 12, "set_number": 1, "duration_minutes": 25}`),
		&cardioRow,
	))
	assert.Equal(t, calendar.CardioSet{DurationMinutes: 25}, cardioRow.Set)

	var strengthRow calendar.Row
	require.NoError(t, json.Unmarshal(
		[]byte(`{"exercise_id": 7, "set_number": 1, "reps": 8, "weight_kg": 60}`),
		&strengthRow,
	))
	assert.Equal(t, calendar.StrengthSet{Reps: 8, WeightKg: 60}, strengthRow.Set)
}

func TestValidate(t *testing.T) {
	rows := calendar.ExpandTemplate(nil)

	violations := calendar.Validate(pkg.Date{}, 0, rows)
	assert.Len(t, violations, 3)

	violations = calendar.Validate(pkg.DateFrom(2026, 3, 14), 1, []calendar.Row{
		calendar.NewStrengthRow(7, "Bench Press", 1),
	})
	assert.Empty(t, violations)
}

package calendar

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/athletica/backend/pkg"
)

// Fallback volumes for rows created without explicit numbers.
const (
	DefaultStrengthReps          = 10
	DefaultCardioDurationMinutes = 20
)

// Item is one scheduled workout day. NameSnapshot is copied from the
// template at schedule time, so later template renames leave history intact.
type Item struct {
	ID                int      `json:"id"`
	Date              pkg.Date `json:"date"`
	WorkoutTemplateID int      `json:"workout_template_id"`
	NameSnapshot      string   `json:"name_snapshot"`
}

// Detail is an item together with its expanded set rows.
type Detail struct {
	Item
	Exercises []Row `json:"exercises"`
}

// Set is the per-kind payload of a row. Exactly one concrete type
// exists per exercise kind, so a row can never carry both strength
// and cardio numbers.
type Set interface {
	Kind() string
}

type StrengthSet struct {
	Reps     int     `json:"reps"`
	WeightKg float64 `json:"weight_kg"`
}

func (s StrengthSet) Kind() string { return "strength" }

type CardioSet struct {
	DurationMinutes int `json:"duration_minutes"`
}

func (s CardioSet) Kind() string { return "cardio" }

// Row is one planned set of one exercise on one day. ID identifies the
// row for edits within a planning session and is never serialized.
type Row struct {
	ID           uuid.UUID `json:"-"`
	ExerciseID   int       `json:"exercise_id"`
	ExerciseName string    `json:"name,omitempty"`
	SetNumber    int       `json:"set_number"`
	Set          Set       `json:"-"`
}

// NewStrengthRow returns a row with the default strength volume.
func NewStrengthRow(exerciseID int, exerciseName string, setNumber int) Row {
	return Row{
		ID:           uuid.New(),
		ExerciseID:   exerciseID,
		ExerciseName: exerciseName,
		SetNumber:    setNumber,
		Set: StrengthSet{
			Reps:     DefaultStrengthReps,
			WeightKg: 0,
		},
	}
}

// NewCardioRow returns a row with the default cardio duration.
func NewCardioRow(exerciseID int, exerciseName string, setNumber int) Row {
	return Row{
		ID:           uuid.New(),
		ExerciseID:   exerciseID,
		ExerciseName: exerciseName,
		SetNumber:    setNumber,
		Set: CardioSet{
			DurationMinutes: DefaultCardioDurationMinutes,
		},
	}
}

// rowWire is the flat shape rows take on the wire and in storage.
type rowWire struct {
	ExerciseID      int     `json:"exercise_id"`
	ExerciseName    string  `json:"name,omitempty"`
	ExerciseType    string  `json:"exercise_type,omitempty"`
	SetNumber       int     `json:"set_number"`
	Reps            int     `json:"reps,omitempty"`
	WeightKg        float64 `json:"weight_kg,omitempty"`
	DurationMinutes int     `json:"duration_minutes,omitempty"`
}

func (row Row) MarshalJSON() ([]byte, error) {
	wire := rowWire{
		ExerciseID:   row.ExerciseID,
		ExerciseName: row.ExerciseName,
		SetNumber:    row.SetNumber,
	}
	switch s := row.Set.(type) {
	case StrengthSet:
		wire.ExerciseType = s.Kind()
		wire.Reps = s.Reps
		wire.WeightKg = s.WeightKg
	case CardioSet:
		wire.ExerciseType = s.Kind()
		wire.DurationMinutes = s.DurationMinutes
	}
	return json.Marshal(wire)
}

func (row *Row) UnmarshalJSON(data []byte) error {
	var wire rowWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	row.ID = uuid.New()
	row.ExerciseID = wire.ExerciseID
	row.ExerciseName = wire.ExerciseName
	row.SetNumber = wire.SetNumber

	kind := wire.ExerciseType
	if kind == "" {
		// older payloads carry no type tag, the numbers tell it apart
		if wire.DurationMinutes > 0 && wire.Reps == 0 {
			kind = "cardio"
		} else {
			kind = "strength"
		}
	}

	switch kind {
	case "cardio":
		row.Set = CardioSet{DurationMinutes: wire.DurationMinutes}
	default:
		row.Set = StrengthSet{Reps: wire.Reps, WeightKg: wire.WeightKg}
	}
	return nil
}

// Validate returns the violations blocking a schedule from being saved.
func Validate(date pkg.Date, templateID int, rows []Row) []string {
	var violations []string
	if date.IsZero() {
		violations = append(violations, "a date must be chosen")
	}
	if templateID <= 0 {
		violations = append(violations, "a workout template must be selected")
	}
	if len(rows) == 0 {
		violations = append(violations, "the schedule must contain at least one set row")
	}
	return violations
}

package workouts

import (
	"fmt"

	"github.com/athletica/backend/pkg"
)

// Workout is a logged training session, as opposed to a scheduled one.
type Workout struct {
	ID                int      `json:"id"`
	Date              pkg.Date `json:"date"`
	DurationMinutes   int      `json:"duration_minutes"`
	SubjectiveFatigue int      `json:"subjective_fatigue"`
	WorkoutQuality    int      `json:"workout_quality"`
	WorkoutTemplateID *int     `json:"workout_template_id,omitempty"`

	Exercises []WorkoutExercise `json:"exercises"`
}

// WorkoutExercise is one performed set within a logged workout.
type WorkoutExercise struct {
	ExerciseID      int     `json:"exercise_id"`
	SetNumber       int     `json:"set_number"`
	Reps            int     `json:"reps,omitempty"`
	WeightKg        float64 `json:"weight_kg,omitempty"`
	DurationMinutes int     `json:"duration_minutes,omitempty"`
	RPE             float64 `json:"rpe,omitempty"`
}

// Validate returns the violations blocking a workout log from being saved.
func Validate(w Workout) []string {
	var violations []string
	if w.Date.IsZero() {
		violations = append(violations, "a date must be chosen")
	}
	if w.DurationMinutes <= 0 {
		violations = append(violations, "duration_minutes must be positive")
	}
	for _, rating := range []struct {
		name  string
		value int
	}{
		{"subjective_fatigue", w.SubjectiveFatigue},
		{"workout_quality", w.WorkoutQuality},
	} {
		if rating.value < 1 || rating.value > 10 {
			violations = append(violations, fmt.Sprintf("%s must be between 1 and 10", rating.name))
		}
	}
	for i, e := range w.Exercises {
		if e.ExerciseID <= 0 {
			violations = append(violations, fmt.Sprintf("exercise %d: an exercise must be selected", i+1))
		}
		if e.RPE != 0 && (e.RPE < 1 || e.RPE > 10) {
			violations = append(violations, fmt.Sprintf("exercise %d: rpe must be between 1 and 10", i+1))
		}
	}
	return violations
}

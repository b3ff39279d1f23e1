package programs

import (
	"github.com/athletica/backend/internal/exercises"
)

// Program is a long-running training plan. Unlike a workout template it
// is not expanded into schedules directly: it groups named days, each
// day holding its own exercise prescriptions with free-form names.
type Program struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// Day is one named slot of a program, "Push A" or "Rest" style.
type Day struct {
	ID        int    `json:"id"`
	ProgramID int    `json:"program_id"`
	DayName   string `json:"day_name"`
}

// DayExercise is a prescription inside a program day. The exercise is
// described inline, it does not reference the exercise library.
type DayExercise struct {
	ID                    int      `json:"id"`
	ProgramDayID          int      `json:"program_day_id"`
	ExerciseType          string   `json:"exercise_type"`
	ExerciseName          string   `json:"exercise_name"`
	MuscleGroup           string   `json:"muscle_group,omitempty"`
	Equipment             string   `json:"equipment,omitempty"`
	TargetSets            int      `json:"target_sets"`
	TargetReps            int      `json:"target_reps"`
	TargetWeightKg        *float64 `json:"target_weight_kg,omitempty"`
	TargetDurationMinutes *int     `json:"target_duration_minutes,omitempty"`
}

func Validate(p Program) []string {
	var violations []string
	if p.Name == "" {
		violations = append(violations, "program name must not be empty")
	}
	return violations
}

func ValidateDay(d Day) []string {
	var violations []string
	if d.DayName == "" {
		violations = append(violations, "day name must not be empty")
	}
	return violations
}

// ValidateDayExercise returns the list of violations for a new
// prescription, empty when it is fine to store.
func ValidateDayExercise(e DayExercise) []string {
	var violations []string
	if e.ExerciseName == "" {
		violations = append(violations, "exercise name must not be empty")
	}
	if e.ExerciseType != "" && !exercises.IsValidType(e.ExerciseType) {
		violations = append(violations, "exercise type must be strength or cardio")
	}
	if e.TargetSets < 1 {
		violations = append(violations, "target sets must be positive")
	}
	if e.TargetReps < 1 {
		violations = append(violations, "target reps must be positive")
	}
	return violations
}

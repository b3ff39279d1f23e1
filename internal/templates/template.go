package templates

// WorkoutTemplate is a named, reusable ordered list of exercises.
type WorkoutTemplate struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TemplateExercise is one ordered entry of a template. TargetSets of 0 means
// "not set"; consumers treat anything below 1 as a single set.
type TemplateExercise struct {
	ExerciseID int `json:"exercise_id"`
	OrderIndex int `json:"order_index"`
	TargetSets int `json:"target_sets"`
}

// ExerciseDetail is a template entry joined with its library exercise,
// ordered by OrderIndex. This is the shape the calendar expansion consumes.
type ExerciseDetail struct {
	ExerciseID   int    `json:"exercise_id"`
	Name         string `json:"name"`
	ExerciseType string `json:"exercise_type"`
	MuscleGroup  string `json:"muscle_group"`
	Equipment    string `json:"equipment"`
	OrderIndex   int    `json:"order_index"`
	TargetSets   int    `json:"target_sets"`
}

// Validate returns the list of violations for a new template, empty when ok.
func Validate(t WorkoutTemplate) []string {
	var violations []string
	if t.Name == "" {
		violations = append(violations, "template name must not be empty")
	}
	return violations
}

// ValidateLink checks that both sides of a template-exercise link are chosen
// before any add-to-template action is attempted.
func ValidateLink(templateID, exerciseID int) []string {
	var violations []string
	if templateID <= 0 {
		violations = append(violations, "a template must be selected")
	}
	if exerciseID <= 0 {
		violations = append(violations, "an exercise must be selected")
	}
	return violations
}

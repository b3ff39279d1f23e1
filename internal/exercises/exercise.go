package exercises

// Exercise is an entry in the exercise library. The library is append-only
// reference data: entries are created once and never modified.
type Exercise struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	ExerciseType string `json:"exercise_type"`
	MuscleGroup  string `json:"muscle_group"`
	Equipment    string `json:"equipment"`
}

const (
	TypeStrength = "strength"
	TypeCardio   = "cardio"
)

var MuscleGroups = []string{
	"Chest",
	"Back",
	"Arms",
	"Core",
	"Fullbody",
	"Legs",
	"Shoulders",
	"Other",
}

var Equipment = []string{
	"Barbell",
	"Bodyweight",
	"Dumbbell",
	"Machine",
	"Medicine ball",
	"Plyo box",
	"Pull up bar",
	"Stability ball",
	"Other",
}

func IsValidType(exerciseType string) bool {
	return exerciseType == TypeStrength || exerciseType == TypeCardio
}

// Validate returns the list of violations for a new library entry,
// empty when the entry is fine to store.
func Validate(e Exercise) []string {
	var violations []string
	if e.Name == "" {
		violations = append(violations, "exercise name must not be empty")
	}
	if e.ExerciseType != "" && !IsValidType(e.ExerciseType) {
		violations = append(violations, "exercise type must be strength or cardio")
	}
	return violations
}

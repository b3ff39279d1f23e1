package goals

import (
	"github.com/athletica/backend/pkg"
)

// Goal is a training phase the user is in (bulking, cutting, maintaining).
// Across the whole collection at most one goal is active at a time; the
// activation logic lives in Service, never mutate IsActive directly.
type Goal struct {
	ID                   int       `json:"id"`
	GoalType             string    `json:"goal_type"`
	StartDate            pkg.Date  `json:"start_date"`
	EndDate              *pkg.Date `json:"end_date,omitempty"`
	PriorityMuscleGroups []string  `json:"priority_muscle_groups,omitempty"`
	IsActive             bool      `json:"is_active"`
}

const (
	GoalTypeBulk     = "bulk"
	GoalTypeCut      = "cut"
	GoalTypeMaintain = "maintain"
)

// Validate returns the list of violations for a goal form submission,
// empty when the goal is fine to store. Callers must not hit the store
// when violations are returned.
func Validate(g Goal) []string {
	var violations []string
	if g.GoalType == "" {
		violations = append(violations, "goal type must not be empty")
	}
	if g.StartDate.IsZero() {
		violations = append(violations, "start date must be set")
	}
	if g.EndDate != nil && !g.EndDate.IsZero() && g.EndDate.Before(g.StartDate.Time) {
		violations = append(violations, "end date must not be before start date")
	}
	return violations
}

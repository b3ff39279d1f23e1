package nutrition

import (
	"fmt"

	"github.com/athletica/backend/pkg"
)

// Entry is the daily nutrition log. One entry per date: logging the
// same date again overwrites all four values.
type Entry struct {
	ID       int      `json:"id"`
	Date     pkg.Date `json:"date"`
	Calories float64  `json:"calories"`
	ProteinG float64  `json:"protein_g"`
	FatG     float64  `json:"fat_g"`
	CarbsG   float64  `json:"carbs_g"`
}

// Validate returns the violations blocking an entry from being saved.
func Validate(e Entry) []string {
	var violations []string
	if e.Date.IsZero() {
		violations = append(violations, "a date must be chosen")
	}
	for _, check := range []struct {
		name  string
		value float64
	}{
		{"calories", e.Calories},
		{"protein_g", e.ProteinG},
		{"fat_g", e.FatG},
		{"carbs_g", e.CarbsG},
	} {
		if check.value < 0 {
			violations = append(violations, fmt.Sprintf("%s must not be negative", check.name))
		}
	}
	return violations
}

package calendar

import (
	"github.com/athletica/backend/internal/exercises"
	"github.com/athletica/backend/internal/templates"
)

// ExpandTemplate turns a template's entries into the full list of set
// rows for one day. Each entry contributes target_sets rows, numbered
// 1..N, exercise after exercise in template order. A target below one
// still yields a single row.
func ExpandTemplate(details []templates.ExerciseDetail) []Row {
	rows := make([]Row, 0, len(details))
	for _, d := range details {
		targetSets := d.TargetSets
		if targetSets < 1 {
			targetSets = 1
		}
		for setNumber := 1; setNumber <= targetSets; setNumber++ {
			if d.ExerciseType == exercises.TypeCardio {
				rows = append(rows, NewCardioRow(d.ExerciseID, d.Name, setNumber))
			} else {
				rows = append(rows, NewStrengthRow(d.ExerciseID, d.Name, setNumber))
			}
		}
	}
	return rows
}

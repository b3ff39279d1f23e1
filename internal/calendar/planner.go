package calendar

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/athletica/backend/internal/exercises"
	"github.com/athletica/backend/internal/templates"
	"github.com/athletica/backend/pkg"
)

var ErrRowNotFound = errors.New("set row not found")

// CommitPayload is what a finished planning session hands over for storage.
type CommitPayload struct {
	Date              pkg.Date `json:"date"`
	WorkoutTemplateID int      `json:"workout_template_id"`
	Exercises         []Row    `json:"exercises"`
}

// Planner is the working state of one schedule being put together or
// edited. Rows are the data, collapsed is presentation only: collapsing
// an exercise never touches its rows. The planner is used from a single
// request at a time and does no locking of its own.
type Planner struct {
	itemID     int
	date       pkg.Date
	templateID int
	rows       []Row
	collapsed  map[int]bool
}

func NewPlanner() *Planner {
	return &Planner{
		rows:      make([]Row, 0),
		collapsed: make(map[int]bool),
	}
}

func (p *Planner) SetDate(date pkg.Date) {
	p.date = date
}

// SelectTemplate replaces the whole row list with the fresh expansion of
// the given template. Edits made under a previously selected template are
// discarded, not merged.
func (p *Planner) SelectTemplate(templateID int, details []templates.ExerciseDetail) {
	p.templateID = templateID
	p.rows = ExpandTemplate(details)
	p.collapsed = make(map[int]bool)
}

// LoadExisting primes the planner with a stored schedule for editing.
// Rows are taken verbatim, they are not re-expanded from the template.
func (p *Planner) LoadExisting(detail Detail) {
	p.itemID = detail.ID
	p.date = detail.Date
	p.templateID = detail.WorkoutTemplateID
	p.rows = make([]Row, len(detail.Exercises))
	copy(p.rows, detail.Exercises)
	p.collapsed = make(map[int]bool)
}

func (p *Planner) ItemID() int {
	return p.itemID
}

// Rows returns a copy of the current row list.
func (p *Planner) Rows() []Row {
	rows := make([]Row, len(p.rows))
	copy(rows, p.rows)
	return rows
}

// AddRow appends one more set of the given exercise to the end of the
// list. The new row gets set number one above the highest existing
// number for that exercise, so numbering stays monotonic even when
// earlier sets were removed.
func (p *Planner) AddRow(exercise exercises.Exercise) Row {
	maxSetNumber := 0
	for _, row := range p.rows {
		if row.ExerciseID == exercise.ID && row.SetNumber > maxSetNumber {
			maxSetNumber = row.SetNumber
		}
	}

	var newRow Row
	if exercise.ExerciseType == exercises.TypeCardio {
		newRow = NewCardioRow(exercise.ID, exercise.Name, maxSetNumber+1)
	} else {
		newRow = NewStrengthRow(exercise.ID, exercise.Name, maxSetNumber+1)
	}

	p.rows = append(p.rows, newRow)
	return newRow
}

// RemoveRow deletes one row. Remaining rows of the same exercise keep
// their set numbers, gaps in the sequence are fine.
func (p *Planner) RemoveRow(id uuid.UUID) error {
	for i, row := range p.rows {
		if row.ID == id {
			p.rows = append(p.rows[:i], p.rows[i+1:]...)
			return nil
		}
	}
	return ErrRowNotFound
}

// UpdateRow swaps the set payload of one row. The row's identity and
// number are untouched, and the payload kind cannot change.
func (p *Planner) UpdateRow(id uuid.UUID, set Set) error {
	for i, row := range p.rows {
		if row.ID != id {
			continue
		}
		if row.Set.Kind() != set.Kind() {
			return fmt.Errorf("cannot change a %s row into %s", row.Set.Kind(), set.Kind())
		}
		p.rows[i].Set = set
		return nil
	}
	return ErrRowNotFound
}

// ToggleCollapsed flips the view state of one exercise's rows.
func (p *Planner) ToggleCollapsed(exerciseID int) {
	p.collapsed[exerciseID] = !p.collapsed[exerciseID]
}

func (p *Planner) IsCollapsed(exerciseID int) bool {
	return p.collapsed[exerciseID]
}

// Commit validates the session and hands back the storable payload,
// then resets the planner for the next schedule. On violations the
// state is kept so the caller can fix it up and retry.
func (p *Planner) Commit() (*CommitPayload, []string) {
	if violations := Validate(p.date, p.templateID, p.rows); len(violations) > 0 {
		return nil, violations
	}

	payload := &CommitPayload{
		Date:              p.date,
		WorkoutTemplateID: p.templateID,
		Exercises:         p.rows,
	}

	p.Reset()
	return payload, nil
}

// Reset clears all session state, data and view alike.
func (p *Planner) Reset() {
	p.itemID = 0
	p.date = pkg.Date{}
	p.templateID = 0
	p.rows = make([]Row, 0)
	p.collapsed = make(map[int]bool)
}

package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/athletica/backend/internal/exercises"
	"github.com/athletica/backend/internal/telemetry/tracing"
	"github.com/athletica/backend/pkg"
)

var (
	ErrItemNotFound     = errors.New("calendar item not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrExerciseNotFound = errors.New("exercise not found")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// ListParams narrows the listed items to a date window. Zero bounds
// mean unbounded on that side.
type ListParams struct {
	From pkg.Date
	To   pkg.Date
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []Item, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.calendar.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	query := `SELECT id, day, workout_template_id, name_snapshot FROM calendar_item`
	var args []interface{}
	if !params.From.IsZero() {
		args = append(args, params.From.Time)
		query += fmt.Sprintf(" WHERE day >= $%d", len(args))
	}
	if !params.To.IsZero() {
		args = append(args, params.To.Time)
		if len(args) == 1 {
			query += fmt.Sprintf(" WHERE day <= $%d", len(args))
		} else {
			query += fmt.Sprintf(" AND day <= $%d", len(args))
		}
	}
	query += " ORDER BY day ASC, id ASC;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	items := make([]Item, 0)
	for rows.Next() {
		var item Item
		var day time.Time
		if err := rows.Scan(&item.ID, &day, &item.WorkoutTemplateID, &item.NameSnapshot); err != nil {
			return nil, err
		}
		item.Date = pkg.NewDate(day)
		items = append(items, item)
	}

	return items, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Detail, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.calendar.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var detail Detail
	var day time.Time
	if err := r.db.QueryRow(
		ctx,
		`SELECT id, day, workout_template_id, name_snapshot FROM calendar_item WHERE id = $1;`,
		id,
	).Scan(&detail.ID, &day, &detail.WorkoutTemplateID, &detail.NameSnapshot); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	detail.Date = pkg.NewDate(day)

	setRows, err := r.db.Query(
		ctx,
		`
			SELECT
				sr.exercise_id, e.name, e.exercise_type,
				sr.set_number, sr.reps, sr.weight_kg, sr.duration_minutes
			FROM calendar_set_row sr
			JOIN exercise e ON e.id = sr.exercise_id
			WHERE sr.calendar_item_id = $1
			ORDER BY sr.order_index ASC;`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("query set rows: %w", err)
	}
	defer setRows.Close()

	if err := setRows.Err(); err != nil {
		return nil, fmt.Errorf("set rows: %w", err)
	}

	detail.Exercises, err = r.rows2setRows(setRows)
	if err != nil {
		return nil, err
	}

	return &detail, nil
}

// Create stores a committed schedule. The template name is snapshotted
// into the item, and each row's kind comes from the exercise library,
// never from the payload.
func (r *Repo) Create(ctx context.Context, payload CommitPayload) (_ *Item, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.calendar.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("template.id", payload.WorkoutTemplateID))
	span.SetAttributes(attribute.Int("rows", len(payload.Exercises)))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	nameSnapshot, err := r.templateName(ctx, tx, payload.WorkoutTemplateID)
	if err != nil {
		return nil, err
	}

	var itemID int
	if err = tx.QueryRow(
		ctx,
		`INSERT INTO calendar_item (day, workout_template_id, name_snapshot)
			VALUES ($1, $2, $3) RETURNING id;`,
		payload.Date.Time, payload.WorkoutTemplateID, nameSnapshot,
	).Scan(&itemID); err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}

	if err = r.insertSetRows(ctx, tx, itemID, payload.Exercises); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	span.SetAttributes(attribute.Int("item.id", itemID))

	return &Item{
		ID:                itemID,
		Date:              payload.Date,
		WorkoutTemplateID: payload.WorkoutTemplateID,
		NameSnapshot:      nameSnapshot,
	}, nil
}

// Update replaces a stored schedule wholesale: item fields and the full
// row list. The name snapshot is retaken from the current template.
func (r *Repo) Update(ctx context.Context, id int, payload CommitPayload) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.calendar.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	nameSnapshot, err := r.templateName(ctx, tx, payload.WorkoutTemplateID)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(
		ctx,
		`UPDATE calendar_item SET day = $1, workout_template_id = $2, name_snapshot = $3
			WHERE id = $4;`,
		payload.Date.Time, payload.WorkoutTemplateID, nameSnapshot, id,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	if _, err = tx.Exec(
		ctx,
		`DELETE FROM calendar_set_row WHERE calendar_item_id = $1;`,
		id,
	); err != nil {
		return fmt.Errorf("delete old set rows: %w", err)
	}

	if err = r.insertSetRows(ctx, tx, id, payload.Exercises); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.calendar.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(
		ctx,
		`DELETE FROM calendar_set_row WHERE calendar_item_id = $1;`,
		id,
	); err != nil {
		return fmt.Errorf("delete set rows: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM calendar_item WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	return tx.Commit(ctx)
}

func (r *Repo) templateName(ctx context.Context, tx pgx.Tx, templateID int) (string, error) {
	var name string
	if err := tx.QueryRow(
		ctx,
		`SELECT name FROM workout_template WHERE id = $1;`,
		templateID,
	).Scan(&name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrTemplateNotFound
		}
		return "", fmt.Errorf("get template name: %w", err)
	}
	return name, nil
}

func (r *Repo) insertSetRows(ctx context.Context, tx pgx.Tx, itemID int, rows []Row) error {
	kinds := make(map[int]string)
	for orderIndex, row := range rows {
		kind, ok := kinds[row.ExerciseID]
		if !ok {
			if err := tx.QueryRow(
				ctx,
				`SELECT exercise_type FROM exercise WHERE id = $1;`,
				row.ExerciseID,
			).Scan(&kind); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return ErrExerciseNotFound
				}
				return fmt.Errorf("get exercise %d type: %w", row.ExerciseID, err)
			}
			kinds[row.ExerciseID] = kind
		}

		var reps int
		var weightKg float64
		var durationMinutes int
		if kind == exercises.TypeCardio {
			cardioSet, ok := row.Set.(CardioSet)
			if !ok {
				cardioSet = CardioSet{DurationMinutes: DefaultCardioDurationMinutes}
			}
			durationMinutes = cardioSet.DurationMinutes
		} else {
			strengthSet, ok := row.Set.(StrengthSet)
			if !ok {
				strengthSet = StrengthSet{Reps: DefaultStrengthReps}
			}
			reps = strengthSet.Reps
			weightKg = strengthSet.WeightKg
		}

		if _, err := tx.Exec(
			ctx,
			`INSERT INTO calendar_set_row
					(calendar_item_id, exercise_id, set_number, reps, weight_kg, duration_minutes, order_index)
					VALUES ($1, $2, $3, $4, $5, $6, $7);`,
			itemID, row.ExerciseID, row.SetNumber, reps, weightKg, durationMinutes, orderIndex,
		); err != nil {
			return fmt.Errorf("insert set row for exercise %d: %w", row.ExerciseID, err)
		}
	}
	return nil
}

func (r *Repo) rows2setRows(rows pgx.Rows) ([]Row, error) {
	setRows := make([]Row, 0)
	for rows.Next() {
		var row Row
		var exerciseType string
		var reps int
		var weightKg float64
		var durationMinutes int
		if err := rows.Scan(
			&row.ExerciseID, &row.ExerciseName, &exerciseType,
			&row.SetNumber, &reps, &weightKg, &durationMinutes,
		); err != nil {
			return nil, err
		}

		row.ID = uuid.New()
		if exerciseType == exercises.TypeCardio {
			row.Set = CardioSet{DurationMinutes: durationMinutes}
		} else {
			row.Set = StrengthSet{Reps: reps, WeightKg: weightKg}
		}

		setRows = append(setRows, row)
	}
	return setRows, nil
}

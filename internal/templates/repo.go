package templates

import (
	"context"
	"errors"
	"fmt"

	"github.com/athletica/backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrTemplateNotFound         = errors.New("template not found")
	ErrExerciseNotFound         = errors.New("exercise not found")
	ErrTemplateExerciseNotFound = errors.New("exercise not found in template")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) List(ctx context.Context) (_ []WorkoutTemplate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name FROM workout_template ORDER BY id DESC;`,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	templates := make([]WorkoutTemplate, 0)
	for rows.Next() {
		var t WorkoutTemplate
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}

	return templates, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *WorkoutTemplate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var t WorkoutTemplate
	if err := r.db.QueryRow(
		ctx,
		`SELECT id, name FROM workout_template WHERE id = $1;`,
		id,
	).Scan(&t.ID, &t.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *Repo) Add(ctx context.Context, template WorkoutTemplate) (_ *WorkoutTemplate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO workout_template (name) VALUES ($1) RETURNING id;`,
		template.Name,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("template.id", id))

	template.ID = id
	return &template, nil
}

// ListExercises returns the template entries joined with the library,
// in template order.
func (r *Repo) ListExercises(ctx context.Context, templateID int) (_ []ExerciseDetail, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.listexercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("template.id", templateID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				e.id, e.name, e.exercise_type, e.muscle_group, e.equipment,
				te.order_index, COALESCE(te.target_sets, 0)
			FROM workout_template_exercise te
			JOIN exercise e ON e.id = te.exercise_id
			WHERE te.workout_template_id = $1
			ORDER BY te.order_index ASC;`,
		templateID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return r.rows2details(rows)
}

func (r *Repo) AddExercise(ctx context.Context, templateID int, te TemplateExercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.addexercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("template.id", templateID))
	span.SetAttributes(attribute.Int("exercise.id", te.ExerciseID))

	if err := r.checkTemplateExists(ctx, templateID); err != nil {
		return err
	}
	if err := r.checkExerciseExists(ctx, te.ExerciseID); err != nil {
		return err
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO workout_template_exercise
				(workout_template_id, exercise_id, order_index, target_sets)
				VALUES ($1, $2, $3, $4);`,
		templateID, te.ExerciseID, te.OrderIndex, te.TargetSets,
	)
	return err
}

// ReplaceExercises swaps the whole entry list of a template in one transaction.
func (r *Repo) ReplaceExercises(ctx context.Context, templateID int, entries []TemplateExercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.replaceexercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("template.id", templateID))
	span.SetAttributes(attribute.Int("entries", len(entries)))

	if err := r.checkTemplateExists(ctx, templateID); err != nil {
		return err
	}

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
		`DELETE FROM workout_template_exercise WHERE workout_template_id = $1;`,
		templateID,
	); err != nil {
		return fmt.Errorf("delete old entries: %w", err)
	}

	for _, te := range entries {
		if _, err = tx.Exec(
			ctx,
			`INSERT INTO workout_template_exercise
					(workout_template_id, exercise_id, order_index, target_sets)
					VALUES ($1, $2, $3, $4);`,
			templateID, te.ExerciseID, te.OrderIndex, te.TargetSets,
		); err != nil {
			return fmt.Errorf("insert entry for exercise %d: %w", te.ExerciseID, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *Repo) RemoveExercise(ctx context.Context, templateID, exerciseID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.removeexercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("template.id", templateID))
	span.SetAttributes(attribute.Int("exercise.id", exerciseID))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM workout_template_exercise
			WHERE workout_template_id = $1 AND exercise_id = $2;`,
		templateID, exerciseID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateExerciseNotFound
	}
	return nil
}

// GetName returns just the template name, used for the calendar name snapshot.
func (r *Repo) GetName(ctx context.Context, templateID int) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.getname")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("template.id", templateID))

	var name string
	if err := r.db.QueryRow(
		ctx,
		`SELECT name FROM workout_template WHERE id = $1;`,
		templateID,
	).Scan(&name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrTemplateNotFound
		}
		return "", err
	}
	return name, nil
}

func (r *Repo) checkTemplateExists(ctx context.Context, templateID int) error {
	_, err := r.GetName(ctx, templateID)
	return err
}

func (r *Repo) checkExerciseExists(ctx context.Context, exerciseID int) error {
	var id int
	if err := r.db.QueryRow(
		ctx,
		`SELECT id FROM exercise WHERE id = $1;`,
		exerciseID,
	).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrExerciseNotFound
		}
		return err
	}
	return nil
}

func (r *Repo) rows2details(rows pgx.Rows) ([]ExerciseDetail, error) {
	details := make([]ExerciseDetail, 0)
	for rows.Next() {
		var d ExerciseDetail
		if err := rows.Scan(
			&d.ExerciseID, &d.Name, &d.ExerciseType, &d.MuscleGroup, &d.Equipment,
			&d.OrderIndex, &d.TargetSets,
		); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

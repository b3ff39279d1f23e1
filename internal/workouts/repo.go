package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/athletica/backend/internal/telemetry/tracing"
	"github.com/athletica/backend/pkg"
)

var ErrWorkoutNotFound = errors.New("workout not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("sets", len(workout.Exercises)))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var id int
	if err = tx.QueryRow(
		ctx,
		`INSERT INTO workout
				(day, duration_minutes, subjective_fatigue, workout_quality, workout_template_id)
				VALUES ($1, $2, $3, $4, $5)
			RETURNING id;`,
		workout.Date.Time, workout.DurationMinutes,
		workout.SubjectiveFatigue, workout.WorkoutQuality, workout.WorkoutTemplateID,
	).Scan(&id); err != nil {
		return nil, fmt.Errorf("insert workout: %w", err)
	}

	for orderIndex, e := range workout.Exercises {
		if _, err = tx.Exec(
			ctx,
			`INSERT INTO workout_exercise
					(workout_id, exercise_id, set_number, reps, weight_kg, duration_minutes, rpe, order_index)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
			id, e.ExerciseID, e.SetNumber, e.Reps, e.WeightKg, e.DurationMinutes, e.RPE, orderIndex,
		); err != nil {
			return nil, fmt.Errorf("insert workout set for exercise %d: %w", e.ExerciseID, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	span.SetAttributes(attribute.Int("workout.id", id))

	workout.ID = id
	return &workout, nil
}

// LastParams narrows the last-workout lookup. Zero values mean no filter.
type LastParams struct {
	TemplateID int
	ExerciseID int
}

// Last returns the most recently dated logged workout with its sets,
// optionally only among workouts of one template or ones that contain
// a given exercise.
func (r *Repo) Last(ctx context.Context, params LastParams) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.last")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("template.id", params.TemplateID))
	span.SetAttributes(attribute.Int("exercise.id", params.ExerciseID))

	var workout Workout
	var day time.Time
	if err := r.db.QueryRow(
		ctx,
		`SELECT id, day, duration_minutes, subjective_fatigue, workout_quality, workout_template_id
			FROM workout w
			WHERE ($1 = 0 OR w.workout_template_id = $1)
				AND ($2 = 0 OR EXISTS (
					SELECT 1 FROM workout_exercise we
					WHERE we.workout_id = w.id AND we.exercise_id = $2
				))
			ORDER BY day DESC, id DESC LIMIT 1;`,
		params.TemplateID, params.ExerciseID,
	).Scan(
		&workout.ID, &day, &workout.DurationMinutes,
		&workout.SubjectiveFatigue, &workout.WorkoutQuality, &workout.WorkoutTemplateID,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	workout.Date = pkg.NewDate(day)

	rows, err := r.db.Query(
		ctx,
		`SELECT exercise_id, set_number, reps, weight_kg, duration_minutes, rpe
			FROM workout_exercise WHERE workout_id = $1 ORDER BY order_index ASC;`,
		workout.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("query workout sets: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	workout.Exercises = make([]WorkoutExercise, 0)
	for rows.Next() {
		var e WorkoutExercise
		if err := rows.Scan(
			&e.ExerciseID, &e.SetNumber, &e.Reps, &e.WeightKg, &e.DurationMinutes, &e.RPE,
		); err != nil {
			return nil, err
		}
		workout.Exercises = append(workout.Exercises, e)
	}

	return &workout, nil
}

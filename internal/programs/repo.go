package programs

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
	ErrProgramNotFound    = errors.New("program not found")
	ErrProgramDayNotFound = errors.New("program day not found")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) List(ctx context.Context) (_ []Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, is_active FROM training_program ORDER BY id DESC;`,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	programs, err := r.rows2programs(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2programs: %w", err)
	}
	return programs, nil
}

// Add stores a new program. New programs start out active.
func (r *Repo) Add(ctx context.Context, program Program) (_ *Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	program.IsActive = true

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO training_program (name, is_active)
				VALUES ($1, $2)
			RETURNING id;`,
		program.Name, program.IsActive,
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

	span.SetAttributes(attribute.Int("program.id", id))

	program.ID = id
	return &program, nil
}

func (r *Repo) AddDay(ctx context.Context, day Day) (_ *Day, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.addday")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("program.id", day.ProgramID))

	if err := r.checkProgramExists(ctx, day.ProgramID); err != nil {
		return nil, err
	}

	var id int
	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO program_day (program_id, day_name)
				VALUES ($1, $2)
			RETURNING id;`,
		day.ProgramID, day.DayName,
	).Scan(&id); err != nil {
		return nil, fmt.Errorf("insert program day: %w", err)
	}

	day.ID = id
	return &day, nil
}

func (r *Repo) AddExercise(ctx context.Context, exercise DayExercise) (_ *DayExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.addexercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("day.id", exercise.ProgramDayID))

	if err := r.checkDayExists(ctx, exercise.ProgramDayID); err != nil {
		return nil, err
	}

	var id int
	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO program_exercise
				(program_day_id, exercise_type, exercise_name, muscle_group, equipment,
					target_sets, target_reps, target_weight_kg, target_duration_minutes)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id;`,
		exercise.ProgramDayID, exercise.ExerciseType, exercise.ExerciseName,
		exercise.MuscleGroup, exercise.Equipment,
		exercise.TargetSets, exercise.TargetReps,
		exercise.TargetWeightKg, exercise.TargetDurationMinutes,
	).Scan(&id); err != nil {
		return nil, fmt.Errorf("insert program exercise: %w", err)
	}

	exercise.ID = id
	return &exercise, nil
}

func (r *Repo) checkProgramExists(ctx context.Context, id int) error {
	var found int
	if err := r.db.QueryRow(
		ctx,
		`SELECT id FROM training_program WHERE id = $1;`,
		id,
	).Scan(&found); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrProgramNotFound
		}
		return err
	}
	return nil
}

func (r *Repo) checkDayExists(ctx context.Context, id int) error {
	var found int
	if err := r.db.QueryRow(
		ctx,
		`SELECT id FROM program_day WHERE id = $1;`,
		id,
	).Scan(&found); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrProgramDayNotFound
		}
		return err
	}
	return nil
}

func (r *Repo) rows2programs(rows pgx.Rows) ([]Program, error) {
	programs := make([]Program, 0)
	for rows.Next() {
		var p Program
		if err := rows.Scan(&p.ID, &p.Name, &p.IsActive); err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, nil
}

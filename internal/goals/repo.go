package goals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/athletica/backend/internal/telemetry/tracing"
	"github.com/athletica/backend/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrGoalNotFound = errors.New("goal not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Insert(ctx context.Context, goal Goal) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.insert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var endDate *time.Time
	if goal.EndDate != nil && !goal.EndDate.IsZero() {
		endDate = &goal.EndDate.Time
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO user_goal
				(goal_type, start_date, end_date, priority_muscle_groups, is_active)
				VALUES ($1, $2, $3, $4, $5)
			RETURNING id;`,
		goal.GoalType, goal.StartDate.Time, endDate, goal.PriorityMuscleGroups, goal.IsActive,
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

	span.SetAttributes(attribute.Int("goal.id", id))

	goal.ID = id
	return &goal, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, goal_type, start_date, end_date, priority_muscle_groups, is_active
			FROM user_goal WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	goals, err := r.rows2goals(rows)
	if err != nil {
		return nil, err
	}

	if len(goals) != 1 {
		return nil, ErrGoalNotFound
	}

	return &goals[0], nil
}

func (r *Repo) List(ctx context.Context) (_ []Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, goal_type, start_date, end_date, priority_muscle_groups, is_active
			FROM user_goal
			ORDER BY id DESC;`,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	goals, err := r.rows2goals(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2goals: %w", err)
	}
	return goals, nil
}

// Update replaces the stored fields of one goal in place. It never touches
// the is_active flag of any other goal.
func (r *Repo) Update(ctx context.Context, goal *Goal) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", goal.ID))

	var endDate *time.Time
	if goal.EndDate != nil && !goal.EndDate.IsZero() {
		endDate = &goal.EndDate.Time
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE user_goal
			SET goal_type = $1, start_date = $2, end_date = $3, priority_muscle_groups = $4
			WHERE id = $5;`,
		goal.GoalType, goal.StartDate.Time, endDate, goal.PriorityMuscleGroups, goal.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM user_goal WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (r *Repo) DeactivateAll(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.deactivateall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(ctx, `UPDATE user_goal SET is_active = FALSE WHERE is_active;`)
	return err
}

func (r *Repo) SetActive(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.setactive")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `UPDATE user_goal SET is_active = TRUE WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (r *Repo) rows2goals(rows pgx.Rows) ([]Goal, error) {
	var goals []Goal
	for rows.Next() {
		var id int
		var goalType string
		var startDate time.Time
		var endDate *time.Time
		var priorityMuscleGroups []string
		var isActive bool
		if err := rows.Scan(&id, &goalType, &startDate, &endDate, &priorityMuscleGroups, &isActive); err != nil {
			return nil, err
		}

		g := Goal{
			ID:                   id,
			GoalType:             goalType,
			StartDate:            pkg.NewDate(startDate),
			PriorityMuscleGroups: priorityMuscleGroups,
			IsActive:             isActive,
		}
		if endDate != nil {
			end := pkg.NewDate(*endDate)
			g.EndDate = &end
		}

		goals = append(goals, g)
	}

	if goals == nil {
		goals = make([]Goal, 0)
	}

	return goals, nil
}

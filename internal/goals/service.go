package goals

import (
	"context"
	"fmt"

	"github.com/athletica/backend/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=goals_test

type goalsRepo interface {
	List(ctx context.Context) ([]Goal, error)
	Get(ctx context.Context, id int) (*Goal, error)
	Insert(ctx context.Context, goal Goal) (*Goal, error)
	Update(ctx context.Context, goal *Goal) error
	Delete(ctx context.Context, id int) error
	DeactivateAll(ctx context.Context) error
	SetActive(ctx context.Context, id int) error
}

// Service owns the goal collection invariant: at most one goal is active.
// Every code path that creates or promotes a goal has to go through here,
// so the deactivate-then-activate pair stays in one place.
type Service struct {
	repo goalsRepo
}

func NewService(repo goalsRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) List(ctx context.Context) (_ []Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	goals, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

// Create stores the new goal as the single active one: all existing goals
// are deactivated first. The new goal is returned with its assigned id.
func (s *Service) Create(ctx context.Context, goal Goal) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.repo.DeactivateAll(ctx); err != nil {
		return nil, fmt.Errorf("deactivate goals: %w", err)
	}

	goal.IsActive = true
	created, err := s.repo.Insert(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("insert goal: %w", err)
	}
	return created, nil
}

// Activate promotes an existing goal, demoting whichever goal was active.
func (s *Service) Activate(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.activate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := s.repo.Get(ctx, id); err != nil {
		return fmt.Errorf("get goal %d: %w", id, err)
	}

	if err := s.repo.DeactivateAll(ctx); err != nil {
		return fmt.Errorf("deactivate goals: %w", err)
	}
	if err := s.repo.SetActive(ctx, id); err != nil {
		return fmt.Errorf("set goal %d active: %w", id, err)
	}
	return nil
}

// Update edits a goal in place, identity preserved. The active flag of
// every goal, this one included, stays as it was. The goal is read back
// after the write, so the caller gets the record as stored and not the
// payload it sent in.
func (s *Service) Update(ctx context.Context, goal *Goal) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("update goal %d: %w", goal.ID, err)
	}

	updated, err := s.repo.Get(ctx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("get goal %d: %w", goal.ID, err)
	}
	return updated, nil
}

// Delete removes a goal. No other goal gets promoted: a collection with
// zero active goals is a valid state.
func (s *Service) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete goal %d: %w", id, err)
	}
	return nil
}

package goals_test

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athletica/backend/internal/goals"
	"github.com/athletica/backend/pkg"
)

type repoFake struct {
	nextID int
	goals  map[int]*goals.Goal
}

func newRepoFake() *repoFake {
	return &repoFake{
		nextID: 1,
		goals:  make(map[int]*goals.Goal),
	}
}

func (r *repoFake) List(_ context.Context) ([]goals.Goal, error) {
	list := make([]goals.Goal, 0, len(r.goals))
	for _, g := range r.goals {
		list = append(list, *g)
	}
	return list, nil
}

func (r *repoFake) Get(_ context.Context, id int) (*goals.Goal, error) {
	g, ok := r.goals[id]
	if !ok {
		return nil, goals.ErrGoalNotFound
	}
	goal := *g
	return &goal, nil
}

func (r *repoFake) Insert(_ context.Context, goal goals.Goal) (*goals.Goal, error) {
	goal.ID = r.nextID
	r.nextID++
	stored := goal
	r.goals[goal.ID] = &stored
	return &goal, nil
}

func (r *repoFake) Update(_ context.Context, goal *goals.Goal) error {
	stored, ok := r.goals[goal.ID]
	if !ok {
		return goals.ErrGoalNotFound
	}
	isActive := stored.IsActive
	updated := *goal
	updated.IsActive = isActive
	r.goals[goal.ID] = &updated
	return nil
}

func (r *repoFake) Delete(_ context.Context, id int) error {
	if _, ok := r.goals[id]; !ok {
		return goals.ErrGoalNotFound
	}
	delete(r.goals, id)
	return nil
}

func (r *repoFake) DeactivateAll(_ context.Context) error {
	for _, g := range r.goals {
		g.IsActive = false
	}
	return nil
}

func (r *repoFake) SetActive(_ context.Context, id int) error {
	g, ok := r.goals[id]
	if !ok {
		return goals.ErrGoalNotFound
	}
	g.IsActive = true
	return nil
}

func (r *repoFake) activeCount() int {
	count := 0
	for _, g := range r.goals {
		if g.IsActive {
			count++
		}
	}
	return count
}

func newTestGoal() goals.Goal {
	return goals.Goal{
		GoalType:  gofakeit.RandomString([]string{goals.GoalTypeBulk, goals.GoalTypeCut, goals.GoalTypeMaintain}),
		StartDate: pkg.DateFrom(2026, 1, 1),
	}
}

func TestService_Create_newGoalIsTheOnlyActiveOne(t *testing.T) {
	ctx := context.Background()
	repo := newRepoFake()
	service := goals.NewService(repo)

	first, err := service.Create(ctx, newTestGoal())
	require.NoError(t, err)
	assert.True(t, first.IsActive)
	assert.Equal(t, 1, repo.activeCount())

	second, err := service.Create(ctx, newTestGoal())
	require.NoError(t, err)
	assert.True(t, second.IsActive)

	assert.Equal(t, 1, repo.activeCount())
	stored, err := repo.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestService_Activate(t *testing.T) {
	ctx := context.Background()
	repo := newRepoFake()
	service := goals.NewService(repo)

	first, err := service.Create(ctx, newTestGoal())
	require.NoError(t, err)
	second, err := service.Create(ctx, newTestGoal())
	require.NoError(t, err)

	require.NoError(t, service.Activate(ctx, first.ID))

	assert.Equal(t, 1, repo.activeCount())
	promoted, err := repo.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, promoted.IsActive)
	demoted, err := repo.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.False(t, demoted.IsActive)
}

func TestService_Activate_notFound(t *testing.T) {
	ctx := context.Background()
	repo := newRepoFake()
	service := goals.NewService(repo)

	active, err := service.Create(ctx, newTestGoal())
	require.NoError(t, err)

	err = service.Activate(ctx, 555)
	assert.True(t, errors.Is(err, goals.ErrGoalNotFound))

	// the failed activation changed nothing
	assert.Equal(t, 1, repo.activeCount())
	stored, err := repo.Get(ctx, active.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
}

func TestService_Update_neverChangesActiveFlag(t *testing.T) {
	ctx := context.Background()
	repo := newRepoFake()
	service := goals.NewService(repo)

	active, err := service.Create(ctx, newTestGoal())
	require.NoError(t, err)
	inactive, err := service.Create(ctx, newTestGoal())
	require.NoError(t, err)
	require.NoError(t, service.Activate(ctx, active.ID))

	endDate := pkg.DateFrom(2026, 6, 1)
	inactive.EndDate = &endDate
	inactive.PriorityMuscleGroups = []string{"chest", "back"}
	inactive.IsActive = true // lies in the payload do not stick
	updated, err := service.Update(ctx, inactive)
	require.NoError(t, err)

	// the returned record is the stored one, flag included
	assert.Equal(t, []string{"chest", "back"}, updated.PriorityMuscleGroups)
	assert.False(t, updated.IsActive)

	stored, err := repo.Get(ctx, inactive.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.Equal(t, 1, repo.activeCount())
}

func TestService_Delete_activeGoalLeavesNoneActive(t *testing.T) {
	ctx := context.Background()
	repo := newRepoFake()
	service := goals.NewService(repo)

	_, err := service.Create(ctx, newTestGoal())
	require.NoError(t, err)
	active, err := service.Create(ctx, newTestGoal())
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, active.ID))

	// no promotion happens, zero active goals is a valid state
	assert.Equal(t, 0, repo.activeCount())
	remaining, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

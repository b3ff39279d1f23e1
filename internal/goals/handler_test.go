package goals_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/athletica/backend/internal/goals"
	"github.com/athletica/backend/internal/instrumentation"
)

// TestMain will run goleak after all tests have been run in the package
// to detect any goroutine leaks
func TestMain(m *testing.M) {
	m.Run()
	goleak.VerifyTestMain(m)
}

func TestHandler_HandleUpdate_responseCarriesStoredActiveFlag(t *testing.T) {
	ctx := context.Background()
	repo := newRepoFake()
	service := goals.NewService(repo)
	handler := goals.NewHandler(service, instrumentation.NewTestInstrumentation())

	inactive, err := service.Create(ctx, newTestGoal())
	require.NoError(t, err)
	active, err := service.Create(ctx, newTestGoal())
	require.NoError(t, err)
	require.NoError(t, service.Activate(ctx, active.ID))

	// the payload claims the goal is active, the stored row says otherwise
	payload := *inactive
	payload.IsActive = true
	payloadJson, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", fmt.Sprintf("/goals/%d", inactive.ID), bytes.NewReader(payloadJson))
	req.Header.Set("Content-Type", "application/json")
	req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprintf("%d", inactive.ID)})
	rr := httptest.NewRecorder()

	handler.HandleUpdate(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var updated goals.Goal
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, inactive.ID, updated.ID)
	assert.False(t, updated.IsActive)

	stored, err := repo.Get(ctx, inactive.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestHandler_HandleUpdate_notFound(t *testing.T) {
	repo := newRepoFake()
	handler := goals.NewHandler(goals.NewService(repo), instrumentation.NewTestInstrumentation())

	goalJson, err := json.Marshal(newTestGoal())
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", "/goals/555", bytes.NewReader(goalJson))
	req.Header.Set("Content-Type", "application/json")
	req = mux.SetURLVars(req, map[string]string{"id": "555"})
	rr := httptest.NewRecorder()

	handler.HandleUpdate(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

package exercises_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/athletica/backend/internal/exercises"
)

// TestMain will run goleak after all tests have been run in the package
// to detect any goroutine leaks
func TestMain(m *testing.M) {
	m.Run()
	goleak.VerifyTestMain(m)
}

func TestHandler_HandleList_cached(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockexercisesRepo(ctrl)
	h := exercises.NewHandler(repoMock)

	library := []exercises.Exercise{
		{ID: 1, Name: "Bench Press", ExerciseType: exercises.TypeStrength, MuscleGroup: "chest"},
		{ID: 2, Name: "Treadmill", ExerciseType: exercises.TypeCardio},
	}

	// one repo hit serves both requests, the second comes from the cache
	repoMock.EXPECT().
		List(gomock.Any()).
		Return(library, nil).
		Times(1)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req, err := http.NewRequest("GET", "/exercises", nil)
		require.NoError(t, err)

		h.HandleList(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var listed []exercises.Exercise
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
		assert.Equal(t, library, listed)
	}
}

func TestHandler_HandleAdd(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockexercisesRepo(ctrl)
	h := exercises.NewHandler(repoMock)

	newExercise := exercises.Exercise{
		Name:        "Incline Dumbbell Press",
		MuscleGroup: "chest",
		Equipment:   "dumbbell",
	}
	newExerciseJson, err := json.Marshal(newExercise)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("POST", "/exercises", bytes.NewReader(newExerciseJson))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	repoMock.EXPECT().
		Add(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ex exercises.Exercise) (*exercises.Exercise, error) {
			assert.Equal(t, newExercise.Name, ex.Name)
			// type defaults to strength when the client sends none
			assert.Equal(t, exercises.TypeStrength, ex.ExerciseType)
			ex.ID = 3
			return &ex, nil
		})

	h.HandleAdd(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var added exercises.Exercise
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	assert.Equal(t, 3, added.ID)
	assert.Equal(t, exercises.TypeStrength, added.ExerciseType)
}

func TestHandler_HandleAdd_violations(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockexercisesRepo(ctrl)
	h := exercises.NewHandler(repoMock)

	// empty name, bogus type: nothing may reach the repo
	badExerciseJson, err := json.Marshal(exercises.Exercise{ExerciseType: "yoga"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("POST", "/exercises", bytes.NewReader(badExerciseJson))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	h.HandleAdd(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Violations []string `json:"violations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Violations, 2)
}

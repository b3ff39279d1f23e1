package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/athletica/backend/internal/telemetry/tracing"
	"github.com/athletica/backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	Add(ctx context.Context, workout Workout) (*Workout, error)
	Last(ctx context.Context, params LastParams) (*Workout, error)
}

type Handler struct {
	repo workoutsRepo
}

func NewHandler(repo workoutsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var workout Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		log.Tracef("new workout, unmarshal json params: %s", err)
		http.Error(w, "log workout failed", http.StatusBadRequest)
		return
	}

	if violations := Validate(workout); len(violations) > 0 {
		pkg.WriteViolations(w, violations)
		return
	}

	addedWorkout, err := handler.repo.Add(ctx, workout)
	if err != nil {
		log.Errorf("failed to log workout for %s: %s", workout.Date, err)
		http.Error(w, "error, failed to log workout", http.StatusInternalServerError)
		return
	}

	addedWorkoutJson, err := json.Marshal(addedWorkout)
	if err != nil {
		log.Errorf("failed to marshal logged workout: %s", err)
		http.Error(w, "error, failed to log workout", http.StatusInternalServerError)
		return
	}

	log.Debugf("workout logged: %s", addedWorkoutJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedWorkoutJson, http.StatusCreated)
}

func (handler *Handler) HandleLast(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.last")
	defer span.End()

	var params LastParams
	if templateIDStr := r.URL.Query().Get("template_id"); templateIDStr != "" {
		templateID, err := strconv.Atoi(templateIDStr)
		if err != nil {
			http.Error(w, "error, template_id NaN", http.StatusBadRequest)
			return
		}
		params.TemplateID = templateID
	}
	if exerciseIDStr := r.URL.Query().Get("exercise_id"); exerciseIDStr != "" {
		exerciseID, err := strconv.Atoi(exerciseIDStr)
		if err != nil {
			http.Error(w, "error, exercise_id NaN", http.StatusBadRequest)
			return
		}
		params.ExerciseID = exerciseID
	}

	workout, err := handler.repo.Last(ctx, params)
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "no workouts logged yet", http.StatusNotFound)
			return
		}
		log.Errorf("get last workout error: %s", err)
		http.Error(w, "failed to get last workout", http.StatusInternalServerError)
		return
	}

	workoutJson, err := json.Marshal(workout)
	if err != nil {
		log.Errorf("marshal last workout error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, workoutJson)
}

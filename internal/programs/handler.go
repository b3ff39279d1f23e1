package programs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/athletica/backend/internal/exercises"
	"github.com/athletica/backend/internal/telemetry/tracing"
	"github.com/athletica/backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=programs_test

type programsRepo interface {
	List(ctx context.Context) ([]Program, error)
	Add(ctx context.Context, program Program) (*Program, error)
	AddDay(ctx context.Context, day Day) (*Day, error)
	AddExercise(ctx context.Context, exercise DayExercise) (*DayExercise, error)
}

type Handler struct {
	repo programsRepo
}

func NewHandler(repo programsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.list")
	defer span.End()

	programs, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list programs error: %s", err)
		http.Error(w, "failed to get programs", http.StatusInternalServerError)
		return
	}

	programsJson, err := json.Marshal(programs)
	if err != nil {
		log.Errorf("marshal programs error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, programsJson)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.create")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var program Program
	if err := json.NewDecoder(r.Body).Decode(&program); err != nil {
		log.Tracef("new program, unmarshal json params: %s", err)
		http.Error(w, "add program failed", http.StatusBadRequest)
		return
	}

	if violations := Validate(program); len(violations) > 0 {
		pkg.WriteViolations(w, violations)
		return
	}

	createdProgram, err := handler.repo.Add(ctx, program)
	if err != nil {
		log.Errorf("failed to create program [%s]: %s", program.Name, err)
		http.Error(w, "error, failed to create program", http.StatusInternalServerError)
		return
	}

	createdProgramJson, err := json.Marshal(createdProgram)
	if err != nil {
		log.Errorf("failed to marshal created program: %s", err)
		http.Error(w, "error, failed to create program", http.StatusInternalServerError)
		return
	}

	log.Debugf("new program created: %s", createdProgramJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, createdProgramJson, http.StatusCreated)
}

func (handler *Handler) HandleCreateDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.createday")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	programID, err := idFromRequest(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var day Day
	if err := json.NewDecoder(r.Body).Decode(&day); err != nil {
		log.Tracef("new program day, unmarshal json params: %s", err)
		http.Error(w, "add program day failed", http.StatusBadRequest)
		return
	}
	day.ProgramID = programID

	if violations := ValidateDay(day); len(violations) > 0 {
		pkg.WriteViolations(w, violations)
		return
	}

	createdDay, err := handler.repo.AddDay(ctx, day)
	if err != nil {
		if errors.Is(err, ErrProgramNotFound) {
			http.Error(w, "program not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to add day to program %d: %s", programID, err)
		http.Error(w, "error, failed to add program day", http.StatusInternalServerError)
		return
	}

	createdDayJson, err := json.Marshal(createdDay)
	if err != nil {
		log.Errorf("failed to marshal created program day: %s", err)
		http.Error(w, "error, failed to add program day", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, createdDayJson, http.StatusCreated)
}

func (handler *Handler) HandleCreateExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.createexercise")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	dayID, err := idFromRequest(r, "dayId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var exercise DayExercise
	if err := json.NewDecoder(r.Body).Decode(&exercise); err != nil {
		log.Tracef("new program exercise, unmarshal json params: %s", err)
		http.Error(w, "add program exercise failed", http.StatusBadRequest)
		return
	}
	exercise.ProgramDayID = dayID

	if violations := ValidateDayExercise(exercise); len(violations) > 0 {
		pkg.WriteViolations(w, violations)
		return
	}

	if exercise.ExerciseType == "" {
		exercise.ExerciseType = exercises.TypeStrength
	}

	createdExercise, err := handler.repo.AddExercise(ctx, exercise)
	if err != nil {
		if errors.Is(err, ErrProgramDayNotFound) {
			http.Error(w, "program day not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to add exercise to program day %d: %s", dayID, err)
		http.Error(w, "error, failed to add program exercise", http.StatusInternalServerError)
		return
	}

	createdExerciseJson, err := json.Marshal(createdExercise)
	if err != nil {
		log.Errorf("failed to marshal created program exercise: %s", err)
		http.Error(w, "error, failed to add program exercise", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, createdExerciseJson, http.StatusCreated)
}

func idFromRequest(r *http.Request, varName string) (int, error) {
	vars := mux.Vars(r)
	idStr := vars[varName]
	if idStr == "" {
		return 0, errors.New("error, " + varName + " empty")
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, errors.New("error, " + varName + " NaN")
	}
	return id, nil
}

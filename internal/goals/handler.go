package goals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/athletica/backend/internal/instrumentation"
	"github.com/athletica/backend/internal/telemetry/tracing"
	"github.com/athletica/backend/pkg"
)

type Handler struct {
	service *Service
	instr   *instrumentation.Instrumentation
}

func NewHandler(service *Service, instr *instrumentation.Instrumentation) *Handler {
	return &Handler{
		service: service,
		instr:   instr,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.list")
	defer span.End()

	goals, err := handler.service.List(ctx)
	if err != nil {
		log.Errorf("list goals error: %s", err)
		http.Error(w, "failed to get goals", http.StatusInternalServerError)
		return
	}

	goalsJson, err := json.Marshal(goals)
	if err != nil {
		log.Errorf("marshal goals error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, goalsJson)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.create")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var goal Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		log.Tracef("new goal, unmarshal json params: %s", err)
		http.Error(w, "add goal failed", http.StatusBadRequest)
		return
	}

	if violations := Validate(goal); len(violations) > 0 {
		pkg.WriteViolations(w, violations)
		return
	}

	createdGoal, err := handler.service.Create(ctx, goal)
	if err != nil {
		log.Errorf("failed to create goal [%s]: %s", goal.GoalType, err)
		http.Error(w, "error, failed to create goal", http.StatusInternalServerError)
		return
	}

	handler.instr.CounterGoalActivations.Inc()

	createdGoalJson, err := json.Marshal(createdGoal)
	if err != nil {
		log.Errorf("failed to marshal created goal: %s", err)
		http.Error(w, "error, failed to create goal", http.StatusInternalServerError)
		return
	}

	log.Debugf("new goal created: %s", createdGoalJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, createdGoalJson, http.StatusCreated)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.update")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	id, err := idFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var goal Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		log.Tracef("update goal, unmarshal json params: %s", err)
		http.Error(w, "update goal failed", http.StatusBadRequest)
		return
	}
	goal.ID = id

	if violations := Validate(goal); len(violations) > 0 {
		pkg.WriteViolations(w, violations)
		return
	}

	updatedGoal, err := handler.service.Update(ctx, &goal)
	if err != nil {
		if errors.Is(err, ErrGoalNotFound) {
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update goal %d: %s", goal.ID, err)
		http.Error(w, "error, failed to update goal", http.StatusInternalServerError)
		return
	}

	updatedGoalJson, err := json.Marshal(updatedGoal)
	if err != nil {
		log.Errorf("failed to marshal updated goal: %s", err)
		http.Error(w, "failed to marshal updated goal", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(updatedGoalJson))
}

func (handler *Handler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.activate")
	defer span.End()

	id, err := idFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.service.Activate(ctx, id); err != nil {
		if errors.Is(err, ErrGoalNotFound) {
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to activate goal %d: %s", id, err)
		http.Error(w, "error, failed to activate goal", http.StatusInternalServerError)
		return
	}

	handler.instr.CounterGoalActivations.Inc()

	pkg.WriteJSONResponseOK(w, `{"status": "ok"}`)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.delete")
	defer span.End()

	id, err := idFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrGoalNotFound) {
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete goal %d: %s", id, err)
		http.Error(w, "goal not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(struct {
		DeletedID int `json:"deletedId"`
	}{DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func idFromRequest(r *http.Request) (int, error) {
	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		return 0, errors.New("error, id empty")
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, errors.New("error, id NaN")
	}
	return id, nil
}

package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/athletica/backend/internal/instrumentation"
	"github.com/athletica/backend/internal/telemetry/tracing"
	"github.com/athletica/backend/internal/templates"
	"github.com/athletica/backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=calendar_test

type calendarRepo interface {
	List(ctx context.Context, params ListParams) ([]Item, error)
	Get(ctx context.Context, id int) (*Detail, error)
	Create(ctx context.Context, payload CommitPayload) (*Item, error)
	Update(ctx context.Context, id int, payload CommitPayload) error
	Delete(ctx context.Context, id int) error
}

type templateExercises interface {
	ListExercises(ctx context.Context, templateID int) ([]templates.ExerciseDetail, error)
}

type Handler struct {
	repo          calendarRepo
	templatesRepo templateExercises
	instr         *instrumentation.Instrumentation
}

func NewHandler(
	repo calendarRepo,
	templatesRepo templateExercises,
	instr *instrumentation.Instrumentation,
) *Handler {
	return &Handler{
		repo:          repo,
		templatesRepo: templatesRepo,
		instr:         instr,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calendar.list")
	defer span.End()

	params, err := listParamsFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items, err := handler.repo.List(ctx, params)
	if err != nil {
		log.Errorf("list calendar items error: %s", err)
		http.Error(w, "failed to get calendar items", http.StatusInternalServerError)
		return
	}

	itemsJson, err := json.Marshal(items)
	if err != nil {
		log.Errorf("marshal calendar items error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, itemsJson)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calendar.get")
	defer span.End()

	id, err := idFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	detail, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			http.Error(w, "calendar item not found", http.StatusNotFound)
			return
		}
		log.Errorf("get calendar item %d error: %s", id, err)
		http.Error(w, "failed to get calendar item", http.StatusInternalServerError)
		return
	}

	detailJson, err := json.Marshal(detail)
	if err != nil {
		log.Errorf("marshal calendar item error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, detailJson)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calendar.create")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var payload CommitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Tracef("new calendar item, unmarshal json params: %s", err)
		http.Error(w, "schedule workout failed", http.StatusBadRequest)
		return
	}

	if violations := Validate(payload.Date, payload.WorkoutTemplateID, payload.Exercises); len(violations) > 0 {
		pkg.WriteViolations(w, violations)
		return
	}

	item, err := handler.repo.Create(ctx, payload)
	if err != nil {
		switch {
		case errors.Is(err, ErrTemplateNotFound):
			http.Error(w, "template not found", http.StatusNotFound)
		case errors.Is(err, ErrExerciseNotFound):
			http.Error(w, "exercise not found", http.StatusNotFound)
		default:
			log.Errorf("failed to schedule workout: %s", err)
			http.Error(w, "error, failed to schedule workout", http.StatusInternalServerError)
		}
		return
	}

	handler.instr.CounterCalendarCommits.Inc()

	itemJson, err := json.Marshal(item)
	if err != nil {
		log.Errorf("failed to marshal scheduled workout: %s", err)
		http.Error(w, "error, failed to schedule workout", http.StatusInternalServerError)
		return
	}

	log.Debugf("workout scheduled: %s", itemJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, itemJson, http.StatusCreated)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calendar.update")
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

	var payload CommitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Tracef("update calendar item, unmarshal json params: %s", err)
		http.Error(w, "update schedule failed", http.StatusBadRequest)
		return
	}

	if violations := Validate(payload.Date, payload.WorkoutTemplateID, payload.Exercises); len(violations) > 0 {
		pkg.WriteViolations(w, violations)
		return
	}

	if err := handler.repo.Update(ctx, id, payload); err != nil {
		switch {
		case errors.Is(err, ErrItemNotFound):
			http.Error(w, "calendar item not found", http.StatusNotFound)
		case errors.Is(err, ErrTemplateNotFound):
			http.Error(w, "template not found", http.StatusNotFound)
		case errors.Is(err, ErrExerciseNotFound):
			http.Error(w, "exercise not found", http.StatusNotFound)
		default:
			log.Errorf("failed to update calendar item %d: %s", id, err)
			http.Error(w, "error, failed to update schedule", http.StatusInternalServerError)
		}
		return
	}

	handler.instr.CounterCalendarCommits.Inc()

	pkg.WriteJSONResponseOK(w, `{"status": "ok"}`)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calendar.delete")
	defer span.End()

	id, err := idFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			http.Error(w, "calendar item not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete calendar item %d: %s", id, err)
		http.Error(w, "calendar item not deleted", http.StatusInternalServerError)
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

// HandleExpandTemplate previews the set rows a template would produce,
// without storing anything.
func (handler *Handler) HandleExpandTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calendar.expandtemplate")
	defer span.End()

	vars := mux.Vars(r)
	templateID, err := strconv.Atoi(vars["templateId"])
	if err != nil {
		http.Error(w, "error, template id NaN", http.StatusBadRequest)
		return
	}

	details, err := handler.templatesRepo.ListExercises(ctx, templateID)
	if err != nil {
		if errors.Is(err, templates.ErrTemplateNotFound) {
			http.Error(w, "template not found", http.StatusNotFound)
			return
		}
		log.Errorf("list exercises for template %d error: %s", templateID, err)
		http.Error(w, "failed to expand template", http.StatusInternalServerError)
		return
	}

	rows := ExpandTemplate(details)
	rowsJson, err := json.Marshal(rows)
	if err != nil {
		log.Errorf("marshal expanded rows error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, rowsJson)
}

func listParamsFromRequest(r *http.Request) (ListParams, error) {
	var params ListParams
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := pkg.ParseDate(fromStr)
		if err != nil {
			return ListParams{}, errors.New("error, invalid from date")
		}
		params.From = from
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := pkg.ParseDate(toStr)
		if err != nil {
			return ListParams{}, errors.New("error, invalid to date")
		}
		params.To = to
	}
	return params, nil
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

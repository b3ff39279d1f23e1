package templates

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/athletica/backend/internal/telemetry/tracing"
	"github.com/athletica/backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=templates_test

type templatesRepo interface {
	List(ctx context.Context) ([]WorkoutTemplate, error)
	Add(ctx context.Context, template WorkoutTemplate) (*WorkoutTemplate, error)
	ListExercises(ctx context.Context, templateID int) ([]ExerciseDetail, error)
	AddExercise(ctx context.Context, templateID int, te TemplateExercise) error
	ReplaceExercises(ctx context.Context, templateID int, entries []TemplateExercise) error
	RemoveExercise(ctx context.Context, templateID, exerciseID int) error
}

type Handler struct {
	repo templatesRepo
}

func NewHandler(repo templatesRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.list")
	defer span.End()

	templates, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list templates error: %s", err)
		http.Error(w, "failed to get templates", http.StatusInternalServerError)
		return
	}

	templatesJson, err := json.Marshal(templates)
	if err != nil {
		log.Errorf("marshal templates error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, templatesJson)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var template WorkoutTemplate
	if err := json.NewDecoder(r.Body).Decode(&template); err != nil {
		log.Tracef("new template, unmarshal json params: %s", err)
		http.Error(w, "add template failed", http.StatusBadRequest)
		return
	}

	if violations := Validate(template); len(violations) > 0 {
		pkg.WriteViolations(w, violations)
		return
	}

	addedTemplate, err := handler.repo.Add(ctx, template)
	if err != nil {
		log.Errorf("failed to add template [%s]: %s", template.Name, err)
		http.Error(w, "error, failed to add template", http.StatusInternalServerError)
		return
	}

	addedTemplateJson, err := json.Marshal(addedTemplate)
	if err != nil {
		log.Errorf("failed to marshal added template: %s", err)
		http.Error(w, "error, failed to add template", http.StatusInternalServerError)
		return
	}

	log.Debugf("new template added: %s", addedTemplateJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedTemplateJson, http.StatusCreated)
}

func (handler *Handler) HandleListExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.listexercises")
	defer span.End()

	templateID, err := templateIDFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	details, err := handler.repo.ListExercises(ctx, templateID)
	if err != nil {
		log.Errorf("list exercises for template %d error: %s", templateID, err)
		http.Error(w, "failed to get template exercises", http.StatusInternalServerError)
		return
	}

	detailsJson, err := json.Marshal(details)
	if err != nil {
		log.Errorf("marshal template exercises error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, detailsJson)
}

func (handler *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.addexercise")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	templateID, err := templateIDFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var te TemplateExercise
	if err := json.NewDecoder(r.Body).Decode(&te); err != nil {
		log.Tracef("add template exercise, unmarshal json params: %s", err)
		http.Error(w, "add template exercise failed", http.StatusBadRequest)
		return
	}

	if violations := ValidateLink(templateID, te.ExerciseID); len(violations) > 0 {
		pkg.WriteViolations(w, violations)
		return
	}

	if err := handler.repo.AddExercise(ctx, templateID, te); err != nil {
		switch {
		case errors.Is(err, ErrTemplateNotFound):
			http.Error(w, "template not found", http.StatusNotFound)
		case errors.Is(err, ErrExerciseNotFound):
			http.Error(w, "exercise not found", http.StatusNotFound)
		default:
			log.Errorf("failed to add exercise %d to template %d: %s", te.ExerciseID, templateID, err)
			http.Error(w, "error, failed to add exercise to template", http.StatusInternalServerError)
		}
		return
	}

	pkg.WriteResponse(w, pkg.ContentType.JSON, `{"status": "ok"}`, http.StatusCreated)
}

// HandleReplaceExercises takes the full new entry list and swaps it in.
// Reordering and target set edits both come through here.
func (handler *Handler) HandleReplaceExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.replaceexercises")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	templateID, err := templateIDFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var entries []TemplateExercise
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		log.Tracef("replace template exercises, unmarshal json params: %s", err)
		http.Error(w, "replace template exercises failed", http.StatusBadRequest)
		return
	}

	for _, te := range entries {
		if violations := ValidateLink(templateID, te.ExerciseID); len(violations) > 0 {
			pkg.WriteViolations(w, violations)
			return
		}
	}

	if err := handler.repo.ReplaceExercises(ctx, templateID, entries); err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			http.Error(w, "template not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to replace exercises of template %d: %s", templateID, err)
		http.Error(w, "error, failed to replace template exercises", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"status": "ok"}`)
}

func (handler *Handler) HandleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.removeexercise")
	defer span.End()

	templateID, err := templateIDFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)
	exerciseID, err := strconv.Atoi(vars["exerciseId"])
	if err != nil {
		http.Error(w, "error, exercise id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.RemoveExercise(ctx, templateID, exerciseID); err != nil {
		if errors.Is(err, ErrTemplateExerciseNotFound) {
			http.Error(w, "exercise not found in template", http.StatusNotFound)
			return
		}
		log.Errorf("failed to remove exercise %d from template %d: %s", exerciseID, templateID, err)
		http.Error(w, "exercise not removed", http.StatusInternalServerError)
		return
	}

	removeRespJson, err := json.Marshal(struct {
		DeletedID int `json:"deletedId"`
	}{DeletedID: exerciseID})
	if err != nil {
		log.Errorf("failed to marshal remove response: %s", err)
		http.Error(w, "failed to marshal remove response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(removeRespJson))
}

func templateIDFromRequest(r *http.Request) (int, error) {
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

package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/athletica/backend/internal/instrumentation"
	"github.com/athletica/backend/internal/telemetry/tracing"
	"github.com/athletica/backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=nutrition_test

type nutritionRepo interface {
	List(ctx context.Context, params ListParams) ([]Entry, error)
	Upsert(ctx context.Context, entry Entry) (*Entry, error)
}

const (
	trendCacheKey = "nutrition-trend"
	trendCacheTTL = 10 * time.Minute
)

type Handler struct {
	repo  nutritionRepo
	rdb   *redis.Client
	instr *instrumentation.Instrumentation
}

func NewHandler(
	repo nutritionRepo,
	rdb *redis.Client,
	instr *instrumentation.Instrumentation,
) *Handler {
	return &Handler{
		repo:  repo,
		rdb:   rdb,
		instr: instr,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.list")
	defer span.End()

	params, err := listParamsFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := handler.repo.List(ctx, params)
	if err != nil {
		log.Errorf("list nutrition entries error: %s", err)
		http.Error(w, "failed to get nutrition entries", http.StatusInternalServerError)
		return
	}

	entriesJson, err := json.Marshal(entries)
	if err != nil {
		log.Errorf("marshal nutrition entries error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, entriesJson)
}

func (handler *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.upsert")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var entry Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Tracef("new nutrition entry, unmarshal json params: %s", err)
		http.Error(w, "log nutrition failed", http.StatusBadRequest)
		return
	}

	if violations := Validate(entry); len(violations) > 0 {
		pkg.WriteViolations(w, violations)
		return
	}

	savedEntry, err := handler.repo.Upsert(ctx, entry)
	if err != nil {
		log.Errorf("failed to log nutrition for %s: %s", entry.Date, err)
		http.Error(w, "error, failed to log nutrition", http.StatusInternalServerError)
		return
	}

	handler.instr.CounterNutritionUpserts.Inc()

	// the stored values changed, the cached trend is stale now
	if err := handler.rdb.Del(ctx, trendCacheKey).Err(); err != nil {
		log.Errorf("failed to invalidate trend cache: %s", err)
	}

	savedEntryJson, err := json.Marshal(savedEntry)
	if err != nil {
		log.Errorf("failed to marshal saved nutrition entry: %s", err)
		http.Error(w, "error, failed to log nutrition", http.StatusInternalServerError)
		return
	}

	log.Debugf("nutrition logged: %s", savedEntryJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, savedEntryJson, http.StatusCreated)
}

func (handler *Handler) HandleTrend(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.trend")
	defer span.End()

	cached, err := handler.rdb.Get(ctx, trendCacheKey).Bytes()
	if err == nil {
		pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, cached)
		return
	}
	if !errors.Is(err, redis.Nil) {
		log.Errorf("get cached trend error: %s", err)
	}

	entries, err := handler.repo.List(ctx, ListParams{})
	if err != nil {
		log.Errorf("list nutrition entries for trend error: %s", err)
		http.Error(w, "failed to get nutrition trend", http.StatusInternalServerError)
		return
	}

	trend := RecentTrend(entries)
	trendJson, err := json.Marshal(trend)
	if err != nil {
		log.Errorf("marshal nutrition trend error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := handler.rdb.Set(ctx, trendCacheKey, trendJson, trendCacheTTL).Err(); err != nil {
		log.Errorf("failed to cache trend: %s", err)
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, trendJson)
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

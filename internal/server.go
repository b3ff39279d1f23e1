package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/athletica/backend/internal/calendar"
	"github.com/athletica/backend/internal/config"
	"github.com/athletica/backend/internal/db"
	"github.com/athletica/backend/internal/exercises"
	"github.com/athletica/backend/internal/goals"
	"github.com/athletica/backend/internal/instrumentation"
	"github.com/athletica/backend/internal/middleware"
	"github.com/athletica/backend/internal/nutrition"
	"github.com/athletica/backend/internal/programs"
	"github.com/athletica/backend/internal/telemetry/tracing"
	"github.com/athletica/backend/internal/templates"
	"github.com/athletica/backend/internal/workouts"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool

	redisClient *redis.Client

	// telemetry
	instr        *instrumentation.Instrumentation
	promRegistry *prometheus.Registry
	otelShutdown func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := instrumentation.SetupPrometheus(pgxpoolCollector)
	instr := instrumentation.NewInstrumentation("athletica", "backend", promRegistry)
	instr.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "athletica-backend", rdb)
	if err != nil {
		return nil, err
	}

	return &Server{
		config:      params.Config,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,
		redisClient: rdb,

		instr:        instr,
		promRegistry: promRegistry,
		otelShutdown: otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	goalsHandler := goals.NewHandler(
		goals.NewService(goals.NewRepo(s.dbPool)),
		s.instr,
	)
	r.HandleFunc("/goals", goalsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-goals")
	r.HandleFunc("/goals", goalsHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-goal")
	r.HandleFunc("/goals/{id}", goalsHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-goal")
	r.HandleFunc("/goals/{id}", goalsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("remove-goal")
	r.HandleFunc("/goals/{id}/activate", goalsHandler.HandleActivate).Methods("POST", "OPTIONS").Name("activate-goal")

	exercisesHandler := exercises.NewHandler(exercises.NewRepo(s.dbPool))
	r.HandleFunc("/exercises", exercisesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-exercises")
	r.HandleFunc("/exercises", exercisesHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-exercise")

	templatesRepo := templates.NewRepo(s.dbPool)
	templatesHandler := templates.NewHandler(templatesRepo)
	r.HandleFunc("/workouts/templates", templatesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-templates")
	r.HandleFunc("/workouts/templates", templatesHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-template")
	r.HandleFunc("/workouts/templates/{id}/exercises", templatesHandler.HandleListExercises).Methods("GET", "OPTIONS").Name("list-template-exercises")
	r.HandleFunc("/workouts/templates/{id}/exercises", templatesHandler.HandleAddExercise).Methods("POST", "OPTIONS").Name("add-template-exercise")
	r.HandleFunc("/workouts/templates/{id}/exercises", templatesHandler.HandleReplaceExercises).Methods("PUT", "OPTIONS").Name("replace-template-exercises")
	r.HandleFunc("/workouts/templates/{id}/exercises/{exerciseId}", templatesHandler.HandleRemoveExercise).Methods("DELETE", "OPTIONS").Name("remove-template-exercise")

	calendarHandler := calendar.NewHandler(
		calendar.NewRepo(s.dbPool),
		templatesRepo,
		s.instr,
	)
	r.HandleFunc("/calendar", calendarHandler.HandleList).Methods("GET", "OPTIONS").Name("list-calendar")
	r.HandleFunc("/calendar", calendarHandler.HandleCreate).Methods("POST", "OPTIONS").Name("schedule-workout")
	r.HandleFunc("/calendar/expand/{templateId}", calendarHandler.HandleExpandTemplate).Methods("GET", "OPTIONS").Name("expand-template")
	r.HandleFunc("/calendar/{id}", calendarHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-calendar-item")
	r.HandleFunc("/calendar/{id}", calendarHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-calendar-item")
	r.HandleFunc("/calendar/{id}", calendarHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("remove-calendar-item")

	programsHandler := programs.NewHandler(programs.NewRepo(s.dbPool))
	r.HandleFunc("/programs", programsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-programs")
	r.HandleFunc("/programs", programsHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-program")
	r.HandleFunc("/programs/{id}/days", programsHandler.HandleCreateDay).Methods("POST", "OPTIONS").Name("new-program-day")
	r.HandleFunc("/program-days/{dayId}/exercises", programsHandler.HandleCreateExercise).Methods("POST", "OPTIONS").Name("new-program-exercise")

	nutritionHandler := nutrition.NewHandler(
		nutrition.NewRepo(s.dbPool),
		s.redisClient,
		s.instr,
	)
	r.HandleFunc("/nutrition", nutritionHandler.HandleList).Methods("GET", "OPTIONS").Name("list-nutrition")
	r.HandleFunc("/nutrition", nutritionHandler.HandleUpsert).Methods("POST", "OPTIONS").Name("log-nutrition")
	r.HandleFunc("/nutrition/trend", nutritionHandler.HandleTrend).Methods("GET", "OPTIONS").Name("nutrition-trend")

	workoutsHandler := workouts.NewHandler(workouts.NewRepo(s.dbPool))
	r.HandleFunc("/workouts", workoutsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("log-workout")
	r.HandleFunc("/workouts/last", workoutsHandler.HandleLast).Methods("GET", "OPTIONS").Name("last-workout")

	r.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte(s.versionInfo)); err != nil {
			log.Errorf("failed to write version response: %s", err)
		}
	}).Methods("GET").Name("version")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.instr))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.instr))
	r.Use(middleware.Cors())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(_ context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.instr.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.instr.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.instr.GaugeRequests.Add(1)
	case http.StateClosed:
		s.instr.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}

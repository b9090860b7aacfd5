package progression

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"time"

	"github.com/2beens/fitprogress/internal/progress"
	"github.com/2beens/fitprogress/internal/schedule"
	"github.com/2beens/fitprogress/internal/telemetry/tracing"
	"github.com/2beens/fitprogress/internal/workouts"
	"github.com/2beens/fitprogress/pkg"

	"github.com/coocood/freecache"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=progression_test

const (
	catalogCacheKey = "catalog||all"
	maxBodyBytes    = 64 * 1024
	megabyte        = 1024 * 1024
)

type progressionService interface {
	RegisterUser(ctx context.Context, email string) (progress.UserProgress, error)
	GetProgress(ctx context.Context, email string) (progress.UserProgress, error)
	GetCatalog(ctx context.Context) []workouts.Workout
	GetCatalogTree(ctx context.Context, email string) ([]CatalogNode, error)
	CompleteWorkout(ctx context.Context, email, workoutID string) (progress.UserProgress, error)
	GetWeekSchedule(ctx context.Context, email, weekStart string) (WeekSchedule, error)
	AddScheduleEntry(ctx context.Context, email, date, workoutID string) ([]schedule.Entry, error)
	RemoveScheduleEntry(ctx context.Context, email, date, workoutID string) ([]schedule.Entry, error)
}

type Handler struct {
	service  progressionService
	cache    *freecache.Cache
	cacheTTL time.Duration
}

type emailRequest struct {
	Email string `json:"email"`
}

type completeRequest struct {
	Email     string `json:"email"`
	WorkoutID string `json:"workoutId"`
}

type scheduleRequest struct {
	Email     string `json:"email"`
	Date      string `json:"date"`
	WorkoutID string `json:"workoutId"`
}

type progressResponse struct {
	Email string `json:"email"`
	progress.UserProgress
}

type scheduleResponse struct {
	Email   string           `json:"email"`
	Entries []schedule.Entry `json:"entries"`
}

// NewHandler builds the HTTP handler. The encoded catalog is cached for
// cacheTTL, a non-positive TTL disables the cache. freecache refuses entries
// above 1/1024 of its size, so a 1 MB cache holds a catalog of up to 1 KB.
func NewHandler(service progressionService, cacheTTL time.Duration, cacheSizeMegabytes int) *Handler {
	if cacheSizeMegabytes < 1 {
		cacheSizeMegabytes = 1
	}
	return &Handler{
		service:  service,
		cache:    freecache.NewCache(cacheSizeMegabytes * megabyte),
		cacheTTL: cacheTTL,
	}
}

// SetupRoutes registers the API under /api. The given middleware wraps the
// mutating routes only.
func (h *Handler) SetupRoutes(r *mux.Router, mutationMiddleware ...mux.MiddlewareFunc) {
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/progress/tree/all", h.HandleGetCatalog).Methods("GET").Name("progress-tree-all")
	api.HandleFunc("/progress/tree/{email}", h.HandleGetCatalogTree).Methods("GET").Name("progress-tree-user")
	api.HandleFunc("/progress/{email}", h.HandleGetProgress).Methods("GET").Name("progress-user")
	api.HandleFunc("/schedule/{email}", h.HandleGetWeekSchedule).Methods("GET").Name("schedule-week")

	mutating := api.NewRoute().Subrouter()
	mutating.Use(mutationMiddleware...)
	mutating.HandleFunc("/register", h.HandleRegister).Methods("POST").Name("register")
	mutating.HandleFunc("/progress/complete", h.HandleCompleteWorkout).Methods("POST").Name("progress-complete")
	mutating.HandleFunc("/schedule/add", h.HandleAddScheduleEntry).Methods("POST").Name("schedule-add")
	mutating.HandleFunc("/schedule/remove", h.HandleRemoveScheduleEntry).Methods("POST").Name("schedule-remove")
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progression.register")
	defer span.End()

	var req emailRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.service.RegisterUser(ctx, req.Email)
	if err != nil {
		writeServiceError(w, "register", err)
		return
	}

	email, _ := NormalizeEmail(req.Email)
	pkg.WriteJSON(w, progressResponse{Email: email, UserProgress: p}, http.StatusCreated)
}

func (h *Handler) HandleGetProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progression.progress")
	defer span.End()

	email := mux.Vars(r)["email"]
	p, err := h.service.GetProgress(ctx, email)
	if err != nil {
		writeServiceError(w, "get progress", err)
		return
	}

	normalized, _ := NormalizeEmail(email)
	pkg.WriteJSON(w, progressResponse{Email: normalized, UserProgress: p}, http.StatusOK)
}

func (h *Handler) HandleGetCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progression.catalog")
	defer span.End()

	if cached, err := h.cache.Get([]byte(catalogCacheKey)); err == nil {
		pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, cached)
		return
	} else if !errors.Is(err, freecache.ErrNotFound) {
		log.Warnf("catalog cache get: %s", err)
	}

	encoded, err := json.Marshal(h.service.GetCatalog(ctx))
	if err != nil {
		log.Errorf("marshal catalog: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if h.cacheTTL > 0 {
		if err := h.cache.Set([]byte(catalogCacheKey), encoded, int(h.cacheTTL.Seconds())); err != nil {
			log.Warnf("catalog cache set: %s", err)
		}
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, encoded)
}

func (h *Handler) HandleGetCatalogTree(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progression.tree")
	defer span.End()

	nodes, err := h.service.GetCatalogTree(ctx, mux.Vars(r)["email"])
	if err != nil {
		writeServiceError(w, "get catalog tree", err)
		return
	}
	pkg.WriteJSON(w, nodes, http.StatusOK)
}

func (h *Handler) HandleCompleteWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progression.complete")
	defer span.End()

	var req completeRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.service.CompleteWorkout(ctx, req.Email, req.WorkoutID)
	if err != nil {
		writeServiceError(w, "complete workout", err)
		return
	}

	email, _ := NormalizeEmail(req.Email)
	pkg.WriteJSON(w, progressResponse{Email: email, UserProgress: p}, http.StatusOK)
}

func (h *Handler) HandleGetWeekSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progression.week")
	defer span.End()

	weekStart := r.URL.Query().Get("weekStart")
	if weekStart == "" {
		http.Error(w, "missing weekStart", http.StatusBadRequest)
		return
	}

	week, err := h.service.GetWeekSchedule(ctx, mux.Vars(r)["email"], weekStart)
	if err != nil {
		writeServiceError(w, "get week schedule", err)
		return
	}
	pkg.WriteJSON(w, week, http.StatusOK)
}

func (h *Handler) HandleAddScheduleEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progression.schedule.add")
	defer span.End()

	h.handleScheduleMutation(w, r, "add schedule entry", func(req scheduleRequest) ([]schedule.Entry, error) {
		return h.service.AddScheduleEntry(ctx, req.Email, req.Date, req.WorkoutID)
	})
}

func (h *Handler) HandleRemoveScheduleEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progression.schedule.remove")
	defer span.End()

	h.handleScheduleMutation(w, r, "remove schedule entry", func(req scheduleRequest) ([]schedule.Entry, error) {
		return h.service.RemoveScheduleEntry(ctx, req.Email, req.Date, req.WorkoutID)
	})
}

func (h *Handler) handleScheduleMutation(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	mutate func(req scheduleRequest) ([]schedule.Entry, error),
) {
	var req scheduleRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := mutate(req)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}

	email, _ := NormalizeEmail(req.Email)
	pkg.WriteJSON(w, scheduleResponse{Email: email, Entries: entries}, http.StatusOK)
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return errors.New("invalid content type")
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// StatusCode maps an error kind to its HTTP status.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeServiceError(w http.ResponseWriter, op string, err error) {
	code := StatusCode(err)
	if code == http.StatusInternalServerError {
		log.Errorf("%s: %s", op, err)
		http.Error(w, "internal error", code)
		return
	}
	log.Tracef("%s: %s", op, err)
	http.Error(w, err.Error(), code)
}

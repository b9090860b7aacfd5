package progression

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/2beens/fitprogress/internal/progress"
	"github.com/2beens/fitprogress/internal/schedule"
	"github.com/2beens/fitprogress/internal/telemetry/metrics"
	"github.com/2beens/fitprogress/internal/telemetry/tracing"
	"github.com/2beens/fitprogress/internal/users"
	"github.com/2beens/fitprogress/internal/workouts"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=progression_test

type userStore interface {
	Create(ctx context.Context, email string) (*users.Record, error)
	Get(ctx context.Context, email string) (*users.Record, error)
	Update(ctx context.Context, email string, fn users.UpdateFunc) (*users.Record, error)
}

// CatalogNode is a workout annotated with the user's state.
type CatalogNode struct {
	workouts.Workout
	Unlocked  bool `json:"unlocked"`
	Completed bool `json:"completed"`
}

type WeekItem struct {
	Date      schedule.Date    `json:"date"`
	WorkoutID string           `json:"workoutId"`
	Workout   workouts.Workout `json:"workout"`
}

type WeekSchedule struct {
	WeekStart schedule.Date `json:"weekStart"`
	Items     []WeekItem    `json:"items"`
}

// Service answers progression questions for a user: what is unlocked, what
// level they are at, and what they planned for a week. Every mutation is a
// single atomic update of the user's record.
type Service struct {
	catalog        *workouts.Catalog
	users          userStore
	metricsManager *metrics.Manager
}

func NewService(catalog *workouts.Catalog, users userStore, metricsManager *metrics.Manager) *Service {
	return &Service{
		catalog:        catalog,
		users:          users,
		metricsManager: metricsManager,
	}
}

// NormalizeEmail trims and lowercases the address, rejecting obviously
// malformed ones.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", fmt.Errorf("%w: empty email", ErrInvalidArgument)
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.Count(email, "@") != 1 || strings.ContainsAny(email, " \t\n/") {
		return "", fmt.Errorf("%w: malformed email [%s]", ErrInvalidArgument, email)
	}
	return email, nil
}

func parseDate(value string) (schedule.Date, error) {
	date, err := schedule.ParseDate(value)
	if err != nil {
		return schedule.Date{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return date, nil
}

func (s *Service) RegisterUser(ctx context.Context, email string) (_ progress.UserProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progression.register")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	email, err = NormalizeEmail(email)
	if err != nil {
		return progress.UserProgress{}, err
	}

	rec, err := s.users.Create(ctx, email)
	if err != nil {
		return progress.UserProgress{}, storeErr(err)
	}

	s.metricsManager.CounterRegistrations.Inc()
	log.Debugf("user [%s] registered", email)
	return rec.Progress, nil
}

func (s *Service) GetProgress(ctx context.Context, email string) (_ progress.UserProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progression.progress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	email, err = NormalizeEmail(email)
	if err != nil {
		return progress.UserProgress{}, err
	}

	rec, err := s.users.Get(ctx, email)
	if err != nil {
		return progress.UserProgress{}, storeErr(err)
	}
	return rec.Progress, nil
}

// GetCatalog returns every workout ordered by level, then display order.
func (s *Service) GetCatalog(_ context.Context) []workouts.Workout {
	return s.catalog.AllNodes()
}

// GetCatalogTree returns the catalog with each workout marked unlocked or
// completed for the given user.
func (s *Service) GetCatalogTree(ctx context.Context, email string) (_ []CatalogNode, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progression.tree")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p, err := s.GetProgress(ctx, email)
	if err != nil {
		return nil, err
	}

	all := s.catalog.AllNodes()
	nodes := make([]CatalogNode, 0, len(all))
	for _, w := range all {
		nodes = append(nodes, CatalogNode{
			Workout:   w,
			Unlocked:  progress.IsUnlocked(w, p),
			Completed: p.HasCompleted(w.ID),
		})
	}
	return nodes, nil
}

// CompleteWorkout records the workout as done and re-derives the level.
// Completing an already completed workout changes nothing.
func (s *Service) CompleteWorkout(ctx context.Context, email, workoutID string) (_ progress.UserProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progression.complete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	email, err = NormalizeEmail(email)
	if err != nil {
		return progress.UserProgress{}, err
	}
	if !s.catalog.Has(workoutID) {
		return progress.UserProgress{}, fmt.Errorf("%w: workout [%s]", ErrNotFound, workoutID)
	}

	var levelBefore int
	var newlyCompleted bool
	rec, err := s.users.Update(ctx, email, func(rec *users.Record) error {
		levelBefore = rec.Progress.Level
		newlyCompleted = !rec.Progress.HasCompleted(workoutID)

		updated, err := progress.RecordCompletion(s.catalog, rec.Progress, workoutID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		rec.Progress = updated
		return nil
	})
	if err != nil {
		return progress.UserProgress{}, storeErr(err)
	}

	if newlyCompleted {
		s.metricsManager.CounterWorkoutsCompleted.Inc()
	}
	if gained := rec.Progress.Level - levelBefore; gained > 0 {
		s.metricsManager.CounterLevelUps.Add(float64(gained))
		log.Infof("user [%s] reached level %d", email, rec.Progress.Level)
	}

	return rec.Progress, nil
}

// GetWeekSchedule returns the user's entries for the 7 days starting at
// weekStart, joined with the catalog. Entries referencing workouts that are
// no longer in the catalog are left out.
func (s *Service) GetWeekSchedule(ctx context.Context, email, weekStart string) (_ WeekSchedule, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progression.week")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	start, err := parseDate(weekStart)
	if err != nil {
		return WeekSchedule{}, err
	}
	email, err = NormalizeEmail(email)
	if err != nil {
		return WeekSchedule{}, err
	}

	rec, err := s.users.Get(ctx, email)
	if err != nil {
		return WeekSchedule{}, storeErr(err)
	}

	week := WeekSchedule{
		WeekStart: start,
		Items:     []WeekItem{},
	}
	for _, entry := range rec.Schedule.Window(start) {
		workout, err := s.catalog.ByID(entry.WorkoutID)
		if err != nil {
			log.Debugf("user [%s] schedule references unknown workout [%s], skipping", email, entry.WorkoutID)
			continue
		}
		week.Items = append(week.Items, WeekItem{
			Date:      entry.Date,
			WorkoutID: entry.WorkoutID,
			Workout:   workout,
		})
	}
	return week, nil
}

// AddScheduleEntry puts an unlocked workout on the given day. Adding the
// same entry twice keeps a single one.
func (s *Service) AddScheduleEntry(ctx context.Context, email, date, workoutID string) (_ []schedule.Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progression.schedule.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	email, err = NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	workout, err := s.catalog.ByID(workoutID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	var changed bool
	rec, err := s.users.Update(ctx, email, func(rec *users.Record) error {
		if !progress.IsUnlocked(workout, rec.Progress) {
			return fmt.Errorf("%w [%s]", ErrLocked, workoutID)
		}
		changed = rec.Schedule.Add(day, workoutID)
		return nil
	})
	if err != nil {
		return nil, storeErr(err)
	}

	if changed {
		s.metricsManager.CounterScheduleMutations.WithLabelValues("add").Inc()
	}
	return sortedEntries(rec.Schedule), nil
}

// RemoveScheduleEntry drops the entry if present. Workouts that are locked or
// unknown to the catalog can still be removed.
func (s *Service) RemoveScheduleEntry(ctx context.Context, email, date, workoutID string) (_ []schedule.Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progression.schedule.remove")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	email, err = NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(workoutID) == "" {
		return nil, fmt.Errorf("%w: empty workout id", ErrInvalidArgument)
	}

	var changed bool
	rec, err := s.users.Update(ctx, email, func(rec *users.Record) error {
		changed = rec.Schedule.Remove(day, workoutID)
		return nil
	})
	if err != nil {
		return nil, storeErr(err)
	}

	if changed {
		s.metricsManager.CounterScheduleMutations.WithLabelValues("remove").Inc()
	}
	return sortedEntries(rec.Schedule), nil
}

func sortedEntries(s schedule.Schedule) []schedule.Entry {
	entries := s.Entries()
	slices.SortStableFunc(entries, func(a, b schedule.Entry) int {
		return a.Date.Compare(b.Date)
	})
	return entries
}

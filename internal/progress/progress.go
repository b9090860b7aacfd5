package progress

import (
	"fmt"
	"slices"

	"github.com/2beens/fitprogress/internal/workouts"
)

const StartingLevel = 1

// UserProgress is a user's level and the workouts they completed.
// Level is always derived from CompletedWorkouts, see DeriveLevel.
type UserProgress struct {
	Level             int      `json:"level"`
	CompletedWorkouts []string `json:"completedWorkouts"`
}

// New returns the progress of a freshly registered user.
func New() UserProgress {
	return UserProgress{
		Level:             StartingLevel,
		CompletedWorkouts: []string{},
	}
}

func (p UserProgress) HasCompleted(workoutID string) bool {
	return slices.Contains(p.CompletedWorkouts, workoutID)
}

func (p UserProgress) Clone() UserProgress {
	p.CompletedWorkouts = slices.Clone(p.CompletedWorkouts)
	if p.CompletedWorkouts == nil {
		p.CompletedWorkouts = []string{}
	}
	return p
}

// IsUnlocked reports whether the workout can be done: the user's level
// reached its required level and every direct prerequisite is completed.
func IsUnlocked(workout workouts.Workout, p UserProgress) bool {
	if p.Level < workout.LevelRequired {
		return false
	}
	for _, prereq := range workout.Prerequisites {
		if !p.HasCompleted(prereq) {
			return false
		}
	}
	return true
}

// DeriveLevel walks levels upwards from 1. Every level whose workouts are
// all completed moves the user one level up, the first level with a missing
// workout (or no workouts at all) stops the walk. The result is capped at
// the catalog's max level.
func DeriveLevel(catalog *workouts.Catalog, completed []string) int {
	done := make(map[string]struct{}, len(completed))
	for _, id := range completed {
		done[id] = struct{}{}
	}

	level := StartingLevel
	for l := StartingLevel; l <= catalog.MaxLevel(); l++ {
		atLevel := catalog.AtLevel(l)
		if len(atLevel) == 0 || !allDone(atLevel, done) {
			break
		}
		level = l + 1
	}

	return max(StartingLevel, min(level, catalog.MaxLevel()))
}

func allDone(atLevel []workouts.Workout, done map[string]struct{}) bool {
	for _, w := range atLevel {
		if _, ok := done[w.ID]; !ok {
			return false
		}
	}
	return true
}

// RecordCompletion returns the progress with workoutID completed and the
// level derived again. The given progress is never modified. Completing
// the same workout twice yields the same progress as completing it once.
// Unknown workouts fail with workouts.ErrWorkoutNotFound.
func RecordCompletion(catalog *workouts.Catalog, p UserProgress, workoutID string) (UserProgress, error) {
	if !catalog.Has(workoutID) {
		return p, fmt.Errorf("record completion: %w: [%s]", workouts.ErrWorkoutNotFound, workoutID)
	}

	updated := p.Clone()
	if !updated.HasCompleted(workoutID) {
		updated.CompletedWorkouts = append(updated.CompletedWorkouts, workoutID)
	}
	updated.Level = DeriveLevel(catalog, updated.CompletedWorkouts)

	return updated, nil
}

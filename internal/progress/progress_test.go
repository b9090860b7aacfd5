package progress

import (
	"testing"

	"github.com/2beens/fitprogress/internal/workouts"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func abcCatalog(t *testing.T) *workouts.Catalog {
	t.Helper()
	catalog, err := workouts.NewCatalog([]workouts.Workout{
		{ID: "A", Name: "A", LevelRequired: 1},
		{ID: "B", Name: "B", LevelRequired: 1},
		{ID: "C", Name: "C", LevelRequired: 2, Prerequisites: []string{"A", "B"}},
	})
	require.NoError(t, err)
	return catalog
}

func defaultCatalog(t *testing.T) *workouts.Catalog {
	t.Helper()
	catalog, err := workouts.NewCatalog(workouts.DefaultWorkouts())
	require.NoError(t, err)
	return catalog
}

func mustComplete(t *testing.T, catalog *workouts.Catalog, p UserProgress, ids ...string) UserProgress {
	t.Helper()
	var err error
	for _, id := range ids {
		p, err = RecordCompletion(catalog, p, id)
		require.NoError(t, err)
	}
	return p
}

func TestNew(t *testing.T) {
	p := New()
	assert.Equal(t, StartingLevel, p.Level)
	assert.NotNil(t, p.CompletedWorkouts)
	assert.Empty(t, p.CompletedWorkouts)
}

func TestRecordCompletion_Scenario(t *testing.T) {
	catalog := abcCatalog(t)
	c, err := catalog.ByID("C")
	require.NoError(t, err)

	p := mustComplete(t, catalog, New(), "A")
	assert.Equal(t, 1, p.Level)
	assert.False(t, IsUnlocked(c, p))

	p = mustComplete(t, catalog, p, "B")
	assert.Equal(t, 2, p.Level)
	assert.True(t, IsUnlocked(c, p))
	assert.Equal(t, []string{"A", "B"}, p.CompletedWorkouts)
}

func TestRecordCompletion_Idempotent(t *testing.T) {
	catalog := abcCatalog(t)

	once := mustComplete(t, catalog, New(), "A")
	twice := mustComplete(t, catalog, New(), "A", "A")
	assert.Equal(t, once, twice)

	again, err := RecordCompletion(catalog, once, "A")
	require.NoError(t, err)
	assert.Equal(t, once, again)
}

func TestRecordCompletion_UnknownWorkout(t *testing.T) {
	catalog := abcCatalog(t)
	p := mustComplete(t, catalog, New(), "A")

	updated, err := RecordCompletion(catalog, p, "Z")
	require.ErrorIs(t, err, workouts.ErrWorkoutNotFound)
	assert.Equal(t, p, updated)
	assert.Equal(t, []string{"A"}, p.CompletedWorkouts)
}

func TestRecordCompletion_DoesNotMutateInput(t *testing.T) {
	catalog := abcCatalog(t)
	p := UserProgress{Level: 1, CompletedWorkouts: make([]string, 0, 10)}

	updated, err := RecordCompletion(catalog, p, "A")
	require.NoError(t, err)
	assert.Empty(t, p.CompletedWorkouts)
	assert.Equal(t, []string{"A"}, updated.CompletedWorkouts)

	updated.CompletedWorkouts[0] = "mutated"
	assert.Empty(t, p.CompletedWorkouts[:cap(p.CompletedWorkouts)][0])
}

func TestRecordCompletion_OutOfOrderCompletions(t *testing.T) {
	catalog := defaultCatalog(t)

	// level 3 workout done before the level 1 set is finished
	p := mustComplete(t, catalog, New(), "squats", "dynamicstretch", "armcircles")
	assert.Equal(t, 1, p.Level)

	p = mustComplete(t, catalog, p, "highknees")
	assert.Equal(t, 2, p.Level)

	p = mustComplete(t, catalog, p, "pushups")
	assert.Equal(t, 3, p.Level, "squats was completed early, planks still missing")

	p = mustComplete(t, catalog, p, "planks")
	assert.Equal(t, 4, p.Level)
}

func TestRecordCompletion_CappedAtMaxLevel(t *testing.T) {
	catalog := defaultCatalog(t)

	p := New()
	for _, w := range catalog.AllNodes() {
		p = mustComplete(t, catalog, p, w.ID)
	}
	assert.Equal(t, catalog.MaxLevel(), p.Level)
	assert.Len(t, p.CompletedWorkouts, catalog.Len())
}

func TestDeriveLevel_GapStopsTheWalk(t *testing.T) {
	catalog, err := workouts.NewCatalog([]workouts.Workout{
		{ID: "one", LevelRequired: 1},
		{ID: "three", LevelRequired: 3},
		{ID: "four", LevelRequired: 4},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, DeriveLevel(catalog, nil))
	assert.Equal(t, 2, DeriveLevel(catalog, []string{"one"}))
	// level 2 has no workouts, so it can never be completed
	assert.Equal(t, 2, DeriveLevel(catalog, []string{"one", "three", "four"}))
}

func TestDeriveLevel_SingleLevelCatalog(t *testing.T) {
	catalog, err := workouts.NewCatalog([]workouts.Workout{
		{ID: "a", LevelRequired: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, DeriveLevel(catalog, []string{"a"}))
}

func TestIsUnlocked(t *testing.T) {
	catalog := defaultCatalog(t)
	pushups, err := catalog.ByID("pushups")
	require.NoError(t, err)
	stretch, err := catalog.ByID("dynamicstretch")
	require.NoError(t, err)

	assert.True(t, IsUnlocked(stretch, New()))

	// all prerequisites done, but level too low
	lowLevel := UserProgress{
		Level:             1,
		CompletedWorkouts: []string{"dynamicstretch", "armcircles", "highknees"},
	}
	assert.False(t, IsUnlocked(pushups, lowLevel))

	// level reached, prerequisite missing
	missingPrereq := UserProgress{
		Level:             2,
		CompletedWorkouts: []string{"dynamicstretch", "armcircles"},
	}
	assert.False(t, IsUnlocked(pushups, missingPrereq))

	lowLevel.Level = 2
	assert.True(t, IsUnlocked(pushups, lowLevel))
}

func TestIsUnlocked_NeverAboveLevel(t *testing.T) {
	catalog := defaultCatalog(t)

	everything := make([]string, 0, catalog.Len())
	for _, w := range catalog.AllNodes() {
		everything = append(everything, w.ID)
	}

	for level := 1; level <= catalog.MaxLevel(); level++ {
		p := UserProgress{Level: level, CompletedWorkouts: everything}
		for _, w := range catalog.AllNodes() {
			if w.LevelRequired > level {
				assert.False(t, IsUnlocked(w, p), "%s at level %d", w.ID, level)
			}
		}
	}
}

func TestRecordCompletion_MonotonicLevel(t *testing.T) {
	catalog := defaultCatalog(t)
	faker := gofakeit.New(7)

	ids := make([]string, 0, catalog.Len())
	for _, w := range catalog.AllNodes() {
		ids = append(ids, w.ID)
	}

	for round := 0; round < 50; round++ {
		sequence := make([]string, 0, 2*len(ids))
		sequence = append(sequence, ids...)
		sequence = append(sequence, ids[:faker.Number(0, len(ids))]...)
		faker.ShuffleStrings(sequence)

		p := New()
		for _, id := range sequence {
			next, err := RecordCompletion(catalog, p, id)
			require.NoError(t, err)
			require.GreaterOrEqual(t, next.Level, p.Level, "round %d, sequence %v", round, sequence)
			require.Equal(t, DeriveLevel(catalog, next.CompletedWorkouts), next.Level)
			p = next
		}
		assert.Equal(t, catalog.MaxLevel(), p.Level)
	}
}

package workouts

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrInvalidCatalog  = errors.New("invalid workout catalog")
)

// Catalog is the immutable set of workouts and their prerequisite graph.
// It is built once at startup and shared by all requests.
type Catalog struct {
	byID     map[string]Workout
	ordered  []Workout
	byLevel  map[int][]Workout
	maxLevel int
}

// NewCatalog validates the given workouts and builds the catalog.
// It fails on empty or duplicate ids, levels below 1, prerequisites
// missing from the catalog and prerequisite cycles.
func NewCatalog(workouts []Workout) (*Catalog, error) {
	if len(workouts) == 0 {
		return nil, fmt.Errorf("%w: no workouts", ErrInvalidCatalog)
	}

	c := &Catalog{
		byID:    make(map[string]Workout, len(workouts)),
		byLevel: make(map[int][]Workout),
	}

	for _, w := range workouts {
		w = w.clone()
		w.ID = strings.TrimSpace(w.ID)
		if w.ID == "" {
			return nil, fmt.Errorf("%w: workout [%s] has empty id", ErrInvalidCatalog, w.Name)
		}
		if _, exists := c.byID[w.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate workout id [%s]", ErrInvalidCatalog, w.ID)
		}
		if w.LevelRequired < 1 {
			return nil, fmt.Errorf("%w: workout [%s] requires level %d", ErrInvalidCatalog, w.ID, w.LevelRequired)
		}
		w.Prerequisites = dedupe(w.Prerequisites)
		c.byID[w.ID] = w
	}

	for _, w := range c.byID {
		for _, prereq := range w.Prerequisites {
			if _, ok := c.byID[prereq]; !ok {
				return nil, fmt.Errorf("%w: workout [%s] references unknown prerequisite [%s]", ErrInvalidCatalog, w.ID, prereq)
			}
		}
	}

	if err := detectCycle(c.byID); err != nil {
		return nil, err
	}

	c.ordered = make([]Workout, 0, len(c.byID))
	for _, w := range c.byID {
		c.ordered = append(c.ordered, w)
	}
	slices.SortFunc(c.ordered, func(a, b Workout) int {
		return cmp.Or(
			cmp.Compare(a.LevelRequired, b.LevelRequired),
			cmp.Compare(a.Order, b.Order),
			cmp.Compare(a.ID, b.ID),
		)
	})

	for _, w := range c.ordered {
		c.byLevel[w.LevelRequired] = append(c.byLevel[w.LevelRequired], w)
		c.maxLevel = max(c.maxLevel, w.LevelRequired)
	}

	return c, nil
}

// AllNodes returns every workout sorted by (level required, order).
func (c *Catalog) AllNodes() []Workout {
	return cloneAll(c.ordered)
}

func (c *Catalog) ByID(id string) (Workout, error) {
	w, ok := c.byID[id]
	if !ok {
		return Workout{}, fmt.Errorf("%w: [%s]", ErrWorkoutNotFound, id)
	}
	return w.clone(), nil
}

func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// AtLevel returns the workouts whose required level is exactly level.
func (c *Catalog) AtLevel(level int) []Workout {
	return cloneAll(c.byLevel[level])
}

// MaxLevel is the highest required level defined in the catalog.
func (c *Catalog) MaxLevel() int {
	return c.maxLevel
}

func (c *Catalog) Len() int {
	return len(c.ordered)
}

// detectCycle walks the prerequisite graph depth first. A prerequisite
// reached while still in progress closes a cycle.
func detectCycle(byID map[string]Workout) error {
	const (
		unvisited = iota
		inProgress
		done
	)

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	state := make(map[string]int, len(byID))
	var path []string

	var visit func(id string) error
	visit = func(id string) error {
		switch state[id] {
		case inProgress:
			start := slices.Index(path, id)
			cycle := append(slices.Clone(path[start:]), id)
			return fmt.Errorf("%w: prerequisite cycle %s", ErrInvalidCatalog, strings.Join(cycle, " -> "))
		case done:
			return nil
		}

		state[id] = inProgress
		path = append(path, id)
		for _, prereq := range byID[id].Prerequisites {
			if err := visit(prereq); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[id] = done
		return nil
	}

	for _, id := range ids {
		if state[id] != unvisited {
			continue
		}
		if err := visit(id); err != nil {
			return err
		}
	}

	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func cloneAll(workouts []Workout) []Workout {
	out := make([]Workout, 0, len(workouts))
	for _, w := range workouts {
		out = append(out, w.clone())
	}
	return out
}

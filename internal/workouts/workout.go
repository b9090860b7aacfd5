package workouts

import "slices"

// Workout is a single node of the progression tree.
// Prerequisites reference other workouts by id.
type Workout struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	LevelRequired int      `json:"levelRequired"`
	Prerequisites []string `json:"prerequisites"`
	Order         int      `json:"order"`
}

func (w Workout) clone() Workout {
	w.Prerequisites = slices.Clone(w.Prerequisites)
	if w.Prerequisites == nil {
		w.Prerequisites = []string{}
	}
	return w
}

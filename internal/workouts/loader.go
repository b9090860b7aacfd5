package workouts

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Loader supplies the raw workout definitions the catalog is built from.
type Loader interface {
	LoadWorkouts(ctx context.Context) ([]Workout, error)
}

// EmbeddedLoader serves DefaultWorkouts.
type EmbeddedLoader struct{}

func (EmbeddedLoader) LoadWorkouts(context.Context) ([]Workout, error) {
	return DefaultWorkouts(), nil
}

// Load reads the workouts from the loader and builds a validated catalog.
func Load(ctx context.Context, loader Loader) (*Catalog, error) {
	loaded, err := loader.LoadWorkouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load workouts: %w", err)
	}

	catalog, err := NewCatalog(loaded)
	if err != nil {
		return nil, err
	}

	log.Debugf("workout catalog loaded: %d workouts, max level %d", catalog.Len(), catalog.MaxLevel())
	return catalog, nil
}

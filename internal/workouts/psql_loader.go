package workouts

import (
	"context"
	"fmt"

	"github.com/2beens/fitprogress/internal/telemetry/tracing"
	"github.com/2beens/fitprogress/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type PsqlLoader struct {
	db *pgxpool.Pool
}

func NewPsqlLoader(db *pgxpool.Pool) *PsqlLoader {
	return &PsqlLoader{
		db: db,
	}
}

func (l *PsqlLoader) LoadWorkouts(ctx context.Context) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := l.db.Query(
		ctx,
		`
			SELECT
			    id, name, description, level_required, prerequisites, sort_order
			FROM workout
			ORDER BY level_required, sort_order
		`,
	)
	if err != nil {
		if pkg.IsUndefinedTableError(err) {
			return nil, fmt.Errorf("workouts [query]: workout table missing, run the migrations and cmd/seed: %w", err)
		}
		return nil, fmt.Errorf("workouts [query]: %w", err)
	}
	defer rows.Close()

	var loaded []Workout
	for rows.Next() {
		var w Workout
		if err := rows.Scan(
			&w.ID,
			&w.Name,
			&w.Description,
			&w.LevelRequired,
			&w.Prerequisites,
			&w.Order,
		); err != nil {
			return nil, fmt.Errorf("workouts [rows scan]: %w", err)
		}
		loaded = append(loaded, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("workouts [rows error]: %w", err)
	}

	span.SetAttributes(attribute.Int("workouts.count", len(loaded)))
	return loaded, nil
}

// ReplaceAll swaps the stored catalog with the given workouts in one transaction.
// The workouts are validated first, an invalid catalog is never written.
func (l *PsqlLoader) ReplaceAll(ctx context.Context, workouts []Workout) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.replace_all")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	catalog, err := NewCatalog(workouts)
	if err != nil {
		return err
	}

	return pgx.BeginFunc(ctx, l.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM workout`); err != nil {
			return fmt.Errorf("delete workouts: %w", err)
		}

		batch := &pgx.Batch{}
		for _, w := range catalog.AllNodes() {
			batch.Queue(
				`
					INSERT INTO workout
					    (id, name, description, level_required, prerequisites, sort_order)
					VALUES ($1, $2, $3, $4, $5, $6)
				`,
				w.ID, w.Name, w.Description, w.LevelRequired, w.Prerequisites, w.Order,
			)
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert workouts: %w", err)
		}
		return nil
	})
}

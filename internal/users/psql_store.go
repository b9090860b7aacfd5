package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitprogress/internal/schedule"
	"github.com/2beens/fitprogress/internal/telemetry/tracing"
	"github.com/2beens/fitprogress/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PsqlStore keeps records in postgres. Update locks the user row
// (SELECT ... FOR UPDATE) for the whole read-modify-write transaction.
type PsqlStore struct {
	db *pgxpool.Pool
}

func NewPsqlStore(db *pgxpool.Pool) *PsqlStore {
	return &PsqlStore{
		db: db,
	}
}

func (s *PsqlStore) Create(ctx context.Context, email string) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.psql.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rec := NewRecord(email, time.Now())
	_, err = s.db.Exec(
		ctx,
		`
			INSERT INTO app_user
			    (email, level, completed_workouts, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
		`,
		rec.Email,
		rec.Progress.Level,
		rec.Progress.CompletedWorkouts,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("user [insert]: %w", err)
	}

	return rec, nil
}

func (s *PsqlStore) Get(ctx context.Context, email string) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.psql.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return getRecord(ctx, s.db, email, false)
}

func (s *PsqlStore) Update(ctx context.Context, email string, fn UpdateFunc) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.psql.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var updated *Record
	err = pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		rec, err := getRecord(ctx, tx, email, true)
		if err != nil {
			return err
		}
		original := rec.Clone()

		if err := fn(rec); err != nil {
			return err
		}
		rec.Email = email
		rec.UpdatedAt = time.Now()

		if _, err := tx.Exec(
			ctx,
			`
				UPDATE app_user
				SET level = $2, completed_workouts = $3, updated_at = $4
				WHERE email = $1
			`,
			email,
			rec.Progress.Level,
			rec.Progress.CompletedWorkouts,
			rec.UpdatedAt,
		); err != nil {
			return fmt.Errorf("user [update]: %w", err)
		}

		if err := syncSchedule(ctx, tx, email, original.Schedule, rec.Schedule); err != nil {
			return err
		}

		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func getRecord(ctx context.Context, q querier, email string, forUpdate bool) (*Record, error) {
	query := `
		SELECT
		    email, level, completed_workouts, created_at, updated_at
		FROM app_user
		WHERE email = $1
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	rec := &Record{}
	err := q.QueryRow(ctx, query, email).Scan(
		&rec.Email,
		&rec.Progress.Level,
		&rec.Progress.CompletedWorkouts,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user [query row]: %w", err)
	}
	rec.Progress = rec.Progress.Clone()

	rows, err := q.Query(
		ctx,
		`
			SELECT day, workout_id
			FROM schedule_entry
			WHERE email = $1
			ORDER BY position
		`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("schedule entries [query]: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var day, workoutID string
		if err := rows.Scan(&day, &workoutID); err != nil {
			return nil, fmt.Errorf("schedule entries [rows scan]: %w", err)
		}
		date, err := schedule.ParseDate(day)
		if err != nil {
			return nil, fmt.Errorf("schedule entry of [%s]: %w", email, err)
		}
		rec.Schedule.Add(date, workoutID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("schedule entries [rows error]: %w", err)
	}

	return rec, nil
}

// syncSchedule writes only the difference between the stored and the new schedule.
func syncSchedule(ctx context.Context, tx pgx.Tx, email string, before, after schedule.Schedule) error {
	for _, e := range before.Entries() {
		if after.Contains(e.Date, e.WorkoutID) {
			continue
		}
		if _, err := tx.Exec(
			ctx,
			`DELETE FROM schedule_entry WHERE email = $1 AND day = $2 AND workout_id = $3`,
			email, e.Date.String(), e.WorkoutID,
		); err != nil {
			return fmt.Errorf("schedule entry [delete]: %w", err)
		}
	}

	for _, e := range after.Entries() {
		if before.Contains(e.Date, e.WorkoutID) {
			continue
		}
		if _, err := tx.Exec(
			ctx,
			`
				INSERT INTO schedule_entry (email, day, workout_id)
				VALUES ($1, $2, $3)
				ON CONFLICT DO NOTHING
			`,
			email, e.Date.String(), e.WorkoutID,
		); err != nil {
			if pkg.IsForeignKeyViolationError(err) {
				return ErrUserNotFound
			}
			return fmt.Errorf("schedule entry [insert]: %w", err)
		}
	}

	return nil
}

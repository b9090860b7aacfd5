package users

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/fitprogress/internal/progress"
	"github.com/2beens/fitprogress/internal/schedule"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

// Record is everything stored for one user, keyed by email.
type Record struct {
	Email     string                `json:"email"`
	Progress  progress.UserProgress `json:"progress"`
	Schedule  schedule.Schedule     `json:"schedule"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

func NewRecord(email string, now time.Time) *Record {
	return &Record{
		Email:     email,
		Progress:  progress.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (r *Record) Clone() *Record {
	c := *r
	c.Progress = r.Progress.Clone()
	c.Schedule = r.Schedule.Clone()
	return &c
}

// UpdateFunc mutates the record in place. Returning an error aborts the
// update and nothing is written.
type UpdateFunc func(rec *Record) error

// Store keeps user records. Update is an atomic read-modify-write: two
// concurrent updates of the same user never lose each other's changes.
type Store interface {
	Create(ctx context.Context, email string) (*Record, error)
	Get(ctx context.Context, email string) (*Record, error)
	Update(ctx context.Context, email string, fn UpdateFunc) (*Record, error)
}

package schedule

import (
	"encoding/json"
	"slices"
)

// Entry assigns one workout to one calendar day.
type Entry struct {
	Date      Date   `json:"date"`
	WorkoutID string `json:"workoutId"`
}

// Schedule is a user's set of entries. A (date, workout) pair is stored at
// most once, insertion order is kept for display.
// The zero value is an empty schedule.
type Schedule struct {
	entries []Entry
}

func New(entries ...Entry) Schedule {
	var s Schedule
	for _, e := range entries {
		s.Add(e.Date, e.WorkoutID)
	}
	return s
}

// Add inserts the pair unless it is already present. Reports whether the schedule changed.
func (s *Schedule) Add(date Date, workoutID string) bool {
	if s.Contains(date, workoutID) {
		return false
	}
	s.entries = append(s.entries, Entry{Date: date, WorkoutID: workoutID})
	return true
}

// Remove deletes the pair if present. Reports whether the schedule changed.
func (s *Schedule) Remove(date Date, workoutID string) bool {
	i := s.index(date, workoutID)
	if i < 0 {
		return false
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	return true
}

func (s Schedule) Contains(date Date, workoutID string) bool {
	return s.index(date, workoutID) >= 0
}

func (s Schedule) index(date Date, workoutID string) int {
	return slices.IndexFunc(s.entries, func(e Entry) bool {
		return e.Date == date && e.WorkoutID == workoutID
	})
}

// Entries returns a copy of all entries in insertion order.
func (s Schedule) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Window returns the entries dated within the WeekDays days starting at
// weekStart, inclusive, ordered by date and then insertion order.
func (s Schedule) Window(weekStart Date) []Entry {
	weekEnd := weekStart.AddDays(WeekDays - 1)

	var inWindow []Entry
	for _, e := range s.entries {
		if e.Date.Before(weekStart) || e.Date.After(weekEnd) {
			continue
		}
		inWindow = append(inWindow, e)
	}

	slices.SortStableFunc(inWindow, func(a, b Entry) int {
		return a.Date.Compare(b.Date)
	})
	return inWindow
}

func (s Schedule) Len() int {
	return len(s.entries)
}

func (s Schedule) Clone() Schedule {
	return Schedule{entries: slices.Clone(s.entries)}
}

func (s Schedule) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Entries())
}

func (s *Schedule) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*s = New(entries...)
	return nil
}

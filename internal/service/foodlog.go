package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/calovate/backend/internal/models"
	"github.com/calovate/backend/internal/nutrition"
)

// EntryInput carries the mutable fields of a food entry across the API
// boundary. Numeric fields are validated here, never coerced.
type EntryInput struct {
	Name     string
	Calories float64
	Protein  float64
	Carbs    float64
	Sugar    float64
	Fat      float64
	// Date, when non-nil, overrides the entry timestamp on edit. Add always
	// stamps the current time.
	Date *time.Time
}

// FoodLog maintains the authoritative in-memory list of one user's food
// entries and keeps it synchronized with the persistence collaborator. Every
// mutation triggers exactly one persistence call; there is no batching and no
// merging of concurrent remote changes.
type FoodLog struct {
	mu      sync.Mutex
	session *Session
	store   EntryStore
	entries []models.FoodEntry
	loaded  bool
}

func NewFoodLog(session *Session, store EntryStore) *FoodLog {
	return &FoodLog{
		session: session,
		store:   store,
	}
}

// Load fetches all of the user's entries from the collaborator and replaces
// the mirror. On failure the existing mirror is left untouched so data the
// user has already seen is not cleared. Racing loads resolve to whichever
// response was observed last.
func (l *FoodLog) Load(ctx context.Context) error {
	entries, err := l.store.List(ctx, l.session.UserID)
	if err != nil {
		return &PersistenceError{Op: "load", Err: err}
	}

	l.mu.Lock()
	l.entries = entries
	l.loaded = true
	l.mu.Unlock()
	return nil
}

// Loaded reports whether the mirror has been populated at least once.
func (l *FoodLog) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

// Add assigns a fresh id and the current timestamp, appends the entry to the
// mirror and persists it. If persistence fails the append is rolled back and
// the failure surfaced, keeping the mirror a faithful image of the store.
func (l *FoodLog) Add(ctx context.Context, in EntryInput) (models.FoodEntry, error) {
	entry := models.FoodEntry{
		ID:       uuid.New(),
		UserID:   l.session.UserID,
		Name:     in.Name,
		Calories: in.Calories,
		Protein:  in.Protein,
		Carbs:    in.Carbs,
		Sugar:    in.Sugar,
		Fat:      in.Fat,
		Date:     time.Now(),
	}
	if err := nutrition.Validate(entry); err != nil {
		return models.FoodEntry{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)
	if err := l.store.Insert(ctx, &entry); err != nil {
		l.entries = l.entries[:len(l.entries)-1]
		return models.FoodEntry{}, &PersistenceError{Op: "insert", Err: err}
	}
	return entry, nil
}

// Edit replaces the mutable fields of the entry with the given id, preserving
// its id and original date unless the input explicitly carries a new date.
// The mirror is unchanged when the id is unknown or persistence fails.
func (l *FoodLog) Edit(ctx context.Context, id uuid.UUID, in EntryInput) (models.FoodEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(id)
	if idx < 0 {
		return models.FoodEntry{}, ErrEntryNotFound
	}

	updated := l.entries[idx]
	updated.Name = in.Name
	updated.Calories = in.Calories
	updated.Protein = in.Protein
	updated.Carbs = in.Carbs
	updated.Sugar = in.Sugar
	updated.Fat = in.Fat
	if in.Date != nil {
		updated.Date = *in.Date
	}
	if err := nutrition.Validate(updated); err != nil {
		return models.FoodEntry{}, err
	}

	if err := l.store.Update(ctx, &updated); err != nil {
		return models.FoodEntry{}, &PersistenceError{Op: "update", Err: err}
	}
	l.entries[idx] = updated
	return updated, nil
}

// Remove deletes the entry with the given id from the mirror and the store.
func (l *FoodLog) Remove(ctx context.Context, id uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(id)
	if idx < 0 {
		return ErrEntryNotFound
	}

	if err := l.store.Delete(ctx, id); err != nil {
		return &PersistenceError{Op: "delete", Err: err}
	}
	l.entries = append(l.entries[:idx], l.entries[idx+1:]...)
	return nil
}

// Entries returns a copy of the mirror in insertion order.
func (l *FoodLog) Entries() []models.FoodEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.FoodEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// EntriesForDay returns the ordered subset of entries falling on the same
// local calendar day as date.
func (l *FoodLog) EntriesForDay(date time.Time) []models.FoodEntry {
	key := models.DayKey(date)

	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.FoodEntry, 0)
	for _, e := range l.entries {
		if models.DayKey(e.Date) == key {
			out = append(out, e)
		}
	}
	return out
}

// EntriesForRange returns the subset of entries with timestamps in
// [start, end] inclusive, used for monthly aggregation.
func (l *FoodLog) EntriesForRange(start, end time.Time) []models.FoodEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.FoodEntry, 0)
	for _, e := range l.entries {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// indexOf must be called with the mutex held.
func (l *FoodLog) indexOf(id uuid.UUID) int {
	for i, e := range l.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

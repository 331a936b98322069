// Package ledger maintains the observable in-memory view of calorie entries
// and computes date-scoped aggregates against the stored profile goal.
package ledger

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/KondratDima/TrackCaloryGraduationProject/internal/log"
	"github.com/KondratDima/TrackCaloryGraduationProject/internal/model"
)

// EntryStorage is the entry persistence collaborator.
type EntryStorage interface {
	GetAllEntries(ctx context.Context) ([]model.CalorieEntry, error)
	EntriesByDateRange(ctx context.Context, start, end time.Time) ([]model.CalorieEntry, error)
	SaveEntry(ctx context.Context, e *model.CalorieEntry) (int64, error)
	DeleteEntry(ctx context.Context, e model.CalorieEntry) error
	CountEntries(ctx context.Context) (int, error)
}

// ProfileStorage is the profile persistence collaborator.
type ProfileStorage interface {
	GetProfile(ctx context.Context) (*model.UserProfile, error)
}

// EventKind describes how the in-memory view changed.
type EventKind int

const (
	// EventReset fires after a full reload replaced the view.
	EventReset EventKind = iota
	// EventAdded fires after an entry was persisted and added to the view.
	EventAdded
	// EventRemoved fires after an entry was deleted.
	EventRemoved
)

// Event is delivered to registered listeners on every view mutation.
type Event struct {
	Kind  EventKind
	Entry *model.CalorieEntry
}

// Listener receives view-change events.
type Listener func(Event)

// Ledger is the aggregator. Construct one at startup with its storage
// collaborators and pass it by reference; it holds no global state.
//
// The app has a single logical consumer, so Ledger does not lock its view.
type Ledger struct {
	entries   EntryStorage
	profiles  ProfileStorage
	logger    *log.Logger
	view      []model.CalorieEntry
	listeners []Listener
}

// New builds a Ledger over the given collaborators.
func New(entries EntryStorage, profiles ProfileStorage, logger *log.Logger) *Ledger {
	if logger == nil {
		logger = log.Default()
	}
	return &Ledger{
		entries:  entries,
		profiles: profiles,
		logger:   logger.WithComponent("ledger"),
		view:     make([]model.CalorieEntry, 0),
	}
}

// Subscribe registers a listener for view changes.
func (l *Ledger) Subscribe(fn Listener) {
	if fn != nil {
		l.listeners = append(l.listeners, fn)
	}
}

func (l *Ledger) notify(ev Event) {
	for _, fn := range l.listeners {
		fn(ev)
	}
}

// Entries returns the current in-memory view, date-descending.
func (l *Ledger) Entries() []model.CalorieEntry {
	return l.view
}

// LoadAll replaces the in-memory view with the full persisted set, ordered
// date-descending. A storage failure is logged and leaves an empty view;
// reads degrade to safe defaults instead of propagating.
func (l *Ledger) LoadAll(ctx context.Context) []model.CalorieEntry {
	entries, err := l.entries.GetAllEntries(ctx)
	if err != nil {
		l.logger.Error("load entries failed", "error", err)
		entries = make([]model.CalorieEntry, 0)
	}
	sortByDateDesc(entries)
	l.view = entries
	l.notify(Event{Kind: EventReset})
	return l.view
}

// Add persists the entry (upsert keyed on id presence) and refreshes the
// view. Unlike reads, a write failure is logged and returned so the caller
// can tell the user the write did not happen.
func (l *Ledger) Add(ctx context.Context, e *model.CalorieEntry) error {
	if _, err := l.entries.SaveEntry(ctx, e); err != nil {
		l.logger.Error("save entry failed", "error", err)
		return fmt.Errorf("save entry: %w", err)
	}
	// One ordering rule everywhere: the view is re-sorted by date after
	// every mutation, not pinned to insertion order.
	l.view = upsertView(l.view, *e)
	sortByDateDesc(l.view)
	l.notify(Event{Kind: EventAdded, Entry: e})
	return nil
}

// Remove deletes the entry from storage and drops it from the view. The
// caller owns the photo lifecycle: an entry with a photo must have its file
// deleted by the workflow that invoked Remove.
func (l *Ledger) Remove(ctx context.Context, e model.CalorieEntry) error {
	if err := l.entries.DeleteEntry(ctx, e); err != nil {
		l.logger.Error("delete entry failed", "error", err, "id", e.ID)
		return fmt.Errorf("delete entry: %w", err)
	}
	for i := range l.view {
		if l.view[i].ID == e.ID {
			l.view = append(l.view[:i], l.view[i+1:]...)
			break
		}
	}
	l.notify(Event{Kind: EventRemoved, Entry: &e})
	return nil
}

// EntriesForDate returns the entries in the day bucket
// [midnight, midnight+24h) of the given date, newest first. Failures
// degrade to an empty list.
func (l *Ledger) EntriesForDate(ctx context.Context, date time.Time) []model.CalorieEntry {
	start := startOfDay(date)
	entries, err := l.entries.EntriesByDateRange(ctx, start, start.Add(24*time.Hour))
	if err != nil {
		l.logger.Error("load entries for date failed", "error", err, "date", start.Format("2006-01-02"))
		return make([]model.CalorieEntry, 0)
	}
	sortByDateDesc(entries)
	return entries
}

// TotalCaloriesForDate sums calories over the day bucket. A day with no
// entries (or a failed read) totals 0.
func (l *Ledger) TotalCaloriesForDate(ctx context.Context, date time.Time) float64 {
	var total float64
	for _, e := range l.EntriesForDate(ctx, date) {
		total += e.Calories
	}
	return total
}

// Macros holds summed macro grams for a day.
type Macros struct {
	ProteinG float64
	FatG     float64
	CarbsG   float64
}

// MacrosForDate sums each macro over the day bucket, treating absent values
// as zero.
func (l *Ledger) MacrosForDate(ctx context.Context, date time.Time) Macros {
	var m Macros
	for _, e := range l.EntriesForDate(ctx, date) {
		if e.ProteinG != nil {
			m.ProteinG += *e.ProteinG
		}
		if e.FatG != nil {
			m.FatG += *e.FatG
		}
		if e.CarbsG != nil {
			m.CarbsG += *e.CarbsG
		}
	}
	return m
}

// WeeklyTotals groups the last seven days of entries by calendar day and
// sums calories per day. Days without entries are absent from the map; the
// presentation layer decides whether to zero-fill.
func (l *Ledger) WeeklyTotals(ctx context.Context) map[string]float64 {
	today := startOfDay(time.Now())
	start := today.Add(-7 * 24 * time.Hour)
	end := today.Add(24 * time.Hour)
	entries, err := l.entries.EntriesByDateRange(ctx, start, end)
	if err != nil {
		l.logger.Error("load weekly entries failed", "error", err)
		return map[string]float64{}
	}
	totals := make(map[string]float64, 8)
	for _, e := range entries {
		totals[e.Date.Local().Format("2006-01-02")] += e.Calories
	}
	return totals
}

// RemainingCalories returns goal minus the day's total. Positive means
// budget left, zero exactly met, negative exceeded. Without a profile the
// goal is 0.
func (l *Ledger) RemainingCalories(ctx context.Context, date time.Time) float64 {
	return l.dailyGoal(ctx) - l.TotalCaloriesForDate(ctx, date)
}

// ProgressRatio returns the day's total divided by the calorie goal, or 0
// when the goal is zero or unset.
func (l *Ledger) ProgressRatio(ctx context.Context, date time.Time) float64 {
	g := l.dailyGoal(ctx)
	if g == 0 {
		return 0
	}
	return l.TotalCaloriesForDate(ctx, date) / g
}

func (l *Ledger) dailyGoal(ctx context.Context) float64 {
	p, err := l.profiles.GetProfile(ctx)
	if err != nil {
		l.logger.Error("load profile failed", "error", err)
		return 0
	}
	if p == nil {
		return 0
	}
	return p.DailyCalorieGoal
}

// DateIndicator labels a date relative to today: "today", "yesterday",
// "tomorrow", "N days ago", or "in N days".
func DateIndicator(date, today time.Time) string {
	days := int(math.Round(startOfDay(today).Sub(startOfDay(date)).Hours() / 24))
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "yesterday"
	case days == -1:
		return "tomorrow"
	case days > 1:
		return fmt.Sprintf("%d days ago", days)
	default:
		return fmt.Sprintf("in %d days", -days)
	}
}

func startOfDay(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
}

func sortByDateDesc(entries []model.CalorieEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
}

func upsertView(view []model.CalorieEntry, e model.CalorieEntry) []model.CalorieEntry {
	for i := range view {
		if view[i].ID == e.ID {
			view[i] = e
			return view
		}
	}
	return append(view, e)
}

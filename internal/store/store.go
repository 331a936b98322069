// Package store persists calorie entries and the singleton user profile in a
// local sqlite database. The database is opened lazily on first use; every
// operation goes through ensureOpen, which is safe to call concurrently and
// performs setup at most once.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/KondratDima/TrackCaloryGraduationProject/internal/app"
	"github.com/KondratDima/TrackCaloryGraduationProject/internal/db"
	"github.com/KondratDima/TrackCaloryGraduationProject/internal/log"
	"github.com/KondratDima/TrackCaloryGraduationProject/internal/model"
)

// Store owns the sqlite connection and implements the entry and profile
// storage collaborators.
type Store struct {
	path   string
	logger *log.Logger

	once    sync.Once
	sqldb   *sql.DB
	openErr error
}

// Open returns a Store bound to the database at path. The file is not
// touched until the first operation.
func Open(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{path: path, logger: logger.WithComponent("store")}
}

// NewWithDB wraps an already-open database handle. Used by tests and by
// callers that manage the connection themselves.
func NewWithDB(sqldb *sql.DB, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{logger: logger.WithComponent("store")}
	s.once.Do(func() { s.sqldb = sqldb })
	return s
}

// ensureOpen opens the database and applies migrations exactly once. A
// failed open is terminal for this Store; subsequent calls return the same
// error instead of retrying.
func (s *Store) ensureOpen() error {
	s.once.Do(func() {
		if err := app.EnsureDBDir(s.path); err != nil {
			s.openErr = err
			return
		}
		sqldb, err := db.Open(s.path)
		if err != nil {
			s.openErr = err
			return
		}
		if err := db.ApplyMigrations(sqldb); err != nil {
			_ = sqldb.Close()
			s.openErr = err
			return
		}
		s.sqldb = sqldb
	})
	return s.openErr
}

// Close releases the underlying connection if one was opened.
func (s *Store) Close() error {
	if s.sqldb == nil {
		return nil
	}
	return s.sqldb.Close()
}

const entryColumns = `id, consumed_at, calories, IFNULL(description, ''), category, protein_g, fat_g, carbs_g, IFNULL(photo_path, ''), created_at, updated_at`

// GetAllEntries returns every entry, newest consumption date first.
func (s *Store) GetAllEntries(ctx context.Context) ([]model.CalorieEntry, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}
	rows, err := s.sqldb.QueryContext(ctx, `
SELECT `+entryColumns+`
FROM entries
ORDER BY consumed_at DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return scanEntries(rows)
}

// EntriesByDateRange returns entries with start <= date < end, newest first.
func (s *Store) EntriesByDateRange(ctx context.Context, start, end time.Time) ([]model.CalorieEntry, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}
	rows, err := s.sqldb.QueryContext(ctx, `
SELECT `+entryColumns+`
FROM entries
WHERE consumed_at >= ? AND consumed_at < ?
ORDER BY consumed_at DESC
`, start.Format(time.RFC3339), end.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("list entries by date range: %w", err)
	}
	return scanEntries(rows)
}

// EntryByID returns a single entry.
func (s *Store) EntryByID(ctx context.Context, id int64) (*model.CalorieEntry, error) {
	if id <= 0 {
		return nil, fmt.Errorf("entry id must be > 0")
	}
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}
	rows, err := s.sqldb.QueryContext(ctx, `
SELECT `+entryColumns+`
FROM entries
WHERE id = ?
`, id)
	if err != nil {
		return nil, fmt.Errorf("get entry %d: %w", id, err)
	}
	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("entry %d not found", id)
	}
	return &entries[0], nil
}

// SaveEntry upserts keyed on id presence: a zero id inserts and stamps
// created_at, a non-zero id updates the existing row and stamps updated_at.
// The entry's ID and timestamps are updated in place.
func (s *Store) SaveEntry(ctx context.Context, e *model.CalorieEntry) (int64, error) {
	if err := validateEntry(e); err != nil {
		return 0, err
	}
	if err := s.ensureOpen(); err != nil {
		return 0, err
	}
	now := time.Now()

	if e.ID != 0 {
		e.UpdatedAt = now
		res, err := s.sqldb.ExecContext(ctx, `
UPDATE entries
SET consumed_at = ?, calories = ?, description = ?, category = ?, protein_g = ?, fat_g = ?, carbs_g = ?, photo_path = ?, updated_at = ?
WHERE id = ?
`, e.Date.Format(time.RFC3339), e.Calories, e.Description, e.Category, e.ProteinG, e.FatG, e.CarbsG, e.PhotoPath, e.UpdatedAt.Format(time.RFC3339), e.ID)
		if err != nil {
			return 0, fmt.Errorf("update entry %d: %w", e.ID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("read rows affected for entry %d: %w", e.ID, err)
		}
		if affected == 0 {
			return 0, fmt.Errorf("entry %d not found", e.ID)
		}
		return e.ID, nil
	}

	e.CreatedAt = now
	e.UpdatedAt = now
	res, err := s.sqldb.ExecContext(ctx, `
INSERT INTO entries(consumed_at, calories, description, category, protein_g, fat_g, carbs_g, photo_path, created_at, updated_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, e.Date.Format(time.RFC3339), e.Calories, e.Description, e.Category, e.ProteinG, e.FatG, e.CarbsG, e.PhotoPath, e.CreatedAt.Format(time.RFC3339), e.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("insert entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve inserted entry id: %w", err)
	}
	e.ID = id
	return id, nil
}

// DeleteEntry removes the entry by id.
func (s *Store) DeleteEntry(ctx context.Context, e model.CalorieEntry) error {
	if e.ID <= 0 {
		return fmt.Errorf("entry id must be > 0")
	}
	if err := s.ensureOpen(); err != nil {
		return err
	}
	res, err := s.sqldb.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, e.ID)
	if err != nil {
		return fmt.Errorf("delete entry %d: %w", e.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for entry %d: %w", e.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("entry %d not found", e.ID)
	}
	return nil
}

// CountEntries reports how many entries exist.
func (s *Store) CountEntries(ctx context.Context) (int, error) {
	if err := s.ensureOpen(); err != nil {
		return 0, err
	}
	var n int
	if err := s.sqldb.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

// GetProfile returns the stored profile, or nil when setup has not run yet.
func (s *Store) GetProfile(ctx context.Context) (*model.UserProfile, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}
	var (
		p         model.UserProfile
		createdAt string
		updatedAt string
	)
	err := s.sqldb.QueryRowContext(ctx, `
SELECT id, gender, weight_kg, height_cm, age_years, activity_level, goal,
       daily_calorie_goal, daily_protein_goal, daily_fat_goal, daily_carbs_goal,
       created_at, updated_at
FROM profile
LIMIT 1
`).Scan(&p.ID, &p.Gender, &p.WeightKg, &p.HeightCm, &p.AgeYears, &p.ActivityLevel, &p.Goal,
		&p.DailyCalorieGoal, &p.DailyProteinGoal, &p.DailyFatGoal, &p.DailyCarbsGoal,
		&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	p.CreatedAt = parseStoredTime(createdAt)
	p.UpdatedAt = parseStoredTime(updatedAt)
	return &p, nil
}

// SaveProfile upserts the singleton profile. A second save overwrites the
// first in place, preserving its id and created_at.
func (s *Store) SaveProfile(ctx context.Context, p *model.UserProfile) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	existing, err := s.GetProfile(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	p.UpdatedAt = now

	if existing != nil {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
		_, err := s.sqldb.ExecContext(ctx, `
UPDATE profile
SET gender = ?, weight_kg = ?, height_cm = ?, age_years = ?, activity_level = ?, goal = ?,
    daily_calorie_goal = ?, daily_protein_goal = ?, daily_fat_goal = ?, daily_carbs_goal = ?,
    updated_at = ?
WHERE id = ?
`, p.Gender, p.WeightKg, p.HeightCm, p.AgeYears, p.ActivityLevel, p.Goal,
			p.DailyCalorieGoal, p.DailyProteinGoal, p.DailyFatGoal, p.DailyCarbsGoal,
			p.UpdatedAt.Format(time.RFC3339), p.ID)
		if err != nil {
			return fmt.Errorf("update profile: %w", err)
		}
		return nil
	}

	p.CreatedAt = now
	res, err := s.sqldb.ExecContext(ctx, `
INSERT INTO profile(gender, weight_kg, height_cm, age_years, activity_level, goal,
                    daily_calorie_goal, daily_protein_goal, daily_fat_goal, daily_carbs_goal,
                    created_at, updated_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, p.Gender, p.WeightKg, p.HeightCm, p.AgeYears, p.ActivityLevel, p.Goal,
		p.DailyCalorieGoal, p.DailyProteinGoal, p.DailyFatGoal, p.DailyCarbsGoal,
		p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("resolve inserted profile id: %w", err)
	}
	p.ID = id
	return nil
}

// HasProfile reports whether setup has been completed.
func (s *Store) HasProfile(ctx context.Context) (bool, error) {
	if err := s.ensureOpen(); err != nil {
		return false, err
	}
	var n int
	if err := s.sqldb.QueryRowContext(ctx, `SELECT COUNT(*) FROM profile`).Scan(&n); err != nil {
		return false, fmt.Errorf("count profile rows: %w", err)
	}
	return n > 0, nil
}

func validateEntry(e *model.CalorieEntry) error {
	if e == nil {
		return fmt.Errorf("entry is required")
	}
	if math.IsNaN(e.Calories) || math.IsInf(e.Calories, 0) {
		return fmt.Errorf("calories must be a finite number")
	}
	if e.Calories < 0 {
		return fmt.Errorf("calories must be >= 0")
	}
	if len(e.Description) > model.MaxDescriptionLen {
		return fmt.Errorf("description must be at most %d characters", model.MaxDescriptionLen)
	}
	if strings.TrimSpace(e.Category) == "" {
		e.Category = model.DefaultCategory
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	return nil
}

func scanEntries(rows *sql.Rows) ([]model.CalorieEntry, error) {
	defer rows.Close()

	entries := make([]model.CalorieEntry, 0)
	for rows.Next() {
		var (
			e          model.CalorieEntry
			consumedAt string
			createdAt  string
			updatedAt  string
			protein    sql.NullFloat64
			fat        sql.NullFloat64
			carbs      sql.NullFloat64
		)
		if err := rows.Scan(&e.ID, &consumedAt, &e.Calories, &e.Description, &e.Category, &protein, &fat, &carbs, &e.PhotoPath, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		date, err := time.Parse(time.RFC3339, consumedAt)
		if err != nil {
			return nil, fmt.Errorf("parse consumed_at for entry %d: %w", e.ID, err)
		}
		e.Date = date
		e.CreatedAt = parseStoredTime(createdAt)
		e.UpdatedAt = parseStoredTime(updatedAt)
		if protein.Valid {
			v := protein.Float64
			e.ProteinG = &v
		}
		if fat.Valid {
			v := fat.Float64
			e.FatG = &v
		}
		if carbs.Valid {
			v := carbs.Float64
			e.CarbsG = &v
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// parseStoredTime accepts both RFC3339 stamps written by this code and the
// sqlite CURRENT_TIMESTAMP format used by column defaults.
func parseStoredTime(value string) time.Time {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", value); err == nil {
		return t
	}
	return time.Time{}
}

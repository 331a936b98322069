package store_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/KondratDima/TrackCaloryGraduationProject/internal/model"
	"github.com/KondratDima/TrackCaloryGraduationProject/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.Open(filepath.Join(t.TempDir(), "trackcal.db"), nil)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func floatPtr(v float64) *float64 { return &v }

func TestSaveEntryInsertThenUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	e := model.CalorieEntry{
		Date:        time.Date(2026, 8, 29, 13, 30, 0, 0, time.Local),
		Calories:    540,
		Description: "varenyky with potato",
		ProteinG:    floatPtr(14),
	}
	id, err := s.SaveEntry(ctx, &e)
	if err != nil {
		t.Fatalf("insert entry: %v", err)
	}
	if id == 0 || e.ID != id {
		t.Fatalf("expected assigned id, got %d (entry id %d)", id, e.ID)
	}
	if e.Category != model.DefaultCategory {
		t.Fatalf("expected default category %q, got %q", model.DefaultCategory, e.Category)
	}
	if e.CreatedAt.IsZero() || e.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be stamped on insert")
	}

	created := e.CreatedAt
	e.Calories = 620
	if _, err := s.SaveEntry(ctx, &e); err != nil {
		t.Fatalf("update entry: %v", err)
	}
	if !e.CreatedAt.Equal(created) {
		t.Fatalf("update must not restamp created_at")
	}

	all, err := s.GetAllEntries(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 entry after upsert, got %d", len(all))
	}
	if all[0].Calories != 620 {
		t.Fatalf("expected updated calories 620, got %v", all[0].Calories)
	}
	if all[0].ProteinG == nil || *all[0].ProteinG != 14 {
		t.Fatalf("expected protein 14 to round-trip, got %+v", all[0].ProteinG)
	}
	if all[0].FatG != nil {
		t.Fatalf("expected absent fat to stay nil")
	}
}

func TestSaveEntryRejectsInvalid(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.SaveEntry(ctx, &model.CalorieEntry{Calories: -10}); err == nil {
		t.Fatalf("expected error for negative calories")
	}
	long := make([]byte, model.MaxDescriptionLen+1)
	for i := range long {
		long[i] = 'x'
	}
	if _, err := s.SaveEntry(ctx, &model.CalorieEntry{Calories: 100, Description: string(long)}); err == nil {
		t.Fatalf("expected error for overlong description")
	}
}

func TestDeleteEntry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	e := model.CalorieEntry{Date: time.Now(), Calories: 200}
	if _, err := s.SaveEntry(ctx, &e); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.DeleteEntry(ctx, e); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteEntry(ctx, e); err == nil {
		t.Fatalf("expected error deleting a missing entry")
	}
	n, err := s.CountEntries(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 entries, got %d", n)
	}
}

func TestEntriesByDateRangeHalfOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.Local)
	for _, e := range []model.CalorieEntry{
		{Date: day, Calories: 100, Description: "midnight snack"},
		{Date: day.Add(12 * time.Hour), Calories: 300, Description: "lunch"},
		{Date: day.Add(24 * time.Hour), Calories: 500, Description: "next day"},
	} {
		entry := e
		if _, err := s.SaveEntry(ctx, &entry); err != nil {
			t.Fatalf("insert %q: %v", e.Description, err)
		}
	}

	got, err := s.EntriesByDateRange(ctx, day, day.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("range query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries in [day, day+24h), got %d", len(got))
	}
	// midnight of day D is inside the bucket, midnight of D+1 is not
	if got[0].Description != "lunch" || got[1].Description != "midnight snack" {
		t.Fatalf("expected date-descending order, got %q then %q", got[0].Description, got[1].Description)
	}
}

func TestProfileSingletonUpsert(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	has, err := s.HasProfile(ctx)
	if err != nil {
		t.Fatalf("has profile: %v", err)
	}
	if has {
		t.Fatalf("expected no profile before setup")
	}
	p, err := s.GetProfile(ctx)
	if err != nil {
		t.Fatalf("get missing profile: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil profile, got %+v", p)
	}

	first := model.UserProfile{
		Gender:        model.GenderMale,
		WeightKg:      80,
		HeightCm:      180,
		AgeYears:      30,
		ActivityLevel: model.ActivityModerate,
		Goal:          model.GoalMaintain,
	}
	if err := s.SaveProfile(ctx, &first); err != nil {
		t.Fatalf("save first profile: %v", err)
	}
	if first.ID == 0 {
		t.Fatalf("expected assigned profile id")
	}

	second := model.UserProfile{
		Gender:        model.GenderMale,
		WeightKg:      78,
		HeightCm:      180,
		AgeYears:      30,
		ActivityLevel: model.ActivityActive,
		Goal:          model.GoalLose,
	}
	if err := s.SaveProfile(ctx, &second); err != nil {
		t.Fatalf("save second profile: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("second save must preserve the singleton id: got %d, want %d", second.ID, first.ID)
	}

	stored, err := s.GetProfile(ctx)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if stored == nil || stored.WeightKg != 78 || stored.Goal != model.GoalLose {
		t.Fatalf("expected overwritten profile, got %+v", stored)
	}
}

func TestEnsureOpenConcurrentFirstUse(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CountEntries(ctx)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent first use: %v", err)
		}
	}
}

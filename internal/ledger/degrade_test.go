package ledger_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/KondratDima/TrackCaloryGraduationProject/internal/ledger"
	"github.com/KondratDima/TrackCaloryGraduationProject/internal/log"
	"github.com/KondratDima/TrackCaloryGraduationProject/internal/model"
	"github.com/KondratDima/TrackCaloryGraduationProject/internal/store"
)

// newFailingStore backs the ledger with a database where every statement
// errors, to exercise the degradation paths.
func newFailingStore(t *testing.T) *store.Store {
	t.Helper()
	sqldb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })

	ioErr := errors.New("disk I/O error")
	mock.ExpectQuery(".*").WillReturnError(ioErr)
	mock.MatchExpectationsInOrder(false)
	for i := 0; i < 16; i++ {
		mock.ExpectQuery(".*").WillReturnError(ioErr)
		mock.ExpectExec(".*").WillReturnError(ioErr)
	}
	return store.NewWithDB(sqldb, quietLogger())
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, slog.LevelError)
}

func TestReadsDegradeToDefaultsOnStorageFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newFailingStore(t)
	l := ledger.New(s, s, quietLogger())

	if got := l.LoadAll(ctx); len(got) != 0 {
		t.Fatalf("expected empty view on failed load, got %d entries", len(got))
	}
	if got := l.EntriesForDate(ctx, time.Now()); len(got) != 0 {
		t.Fatalf("expected empty day bucket on failure, got %d entries", len(got))
	}
	if got := l.TotalCaloriesForDate(ctx, time.Now()); got != 0 {
		t.Fatalf("expected zero total on failure, got %v", got)
	}
	if m := l.MacrosForDate(ctx, time.Now()); m != (ledger.Macros{}) {
		t.Fatalf("expected zero macros on failure, got %+v", m)
	}
	if got := l.WeeklyTotals(ctx); len(got) != 0 {
		t.Fatalf("expected empty weekly totals on failure, got %v", got)
	}
	if got := l.RemainingCalories(ctx, time.Now()); got != 0 {
		t.Fatalf("expected zero remaining when profile read fails, got %v", got)
	}
	if got := l.ProgressRatio(ctx, time.Now()); got != 0 {
		t.Fatalf("expected zero progress when profile read fails, got %v", got)
	}
}

func TestWritesPropagateStorageFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newFailingStore(t)
	l := ledger.New(s, s, quietLogger())

	e := model.CalorieEntry{Date: time.Now(), Calories: 500}
	if err := l.Add(ctx, &e); err == nil {
		t.Fatalf("expected add to surface the storage error")
	}
	if err := l.Remove(ctx, model.CalorieEntry{ID: 7}); err == nil {
		t.Fatalf("expected remove to surface the storage error")
	}
	if len(l.Entries()) != 0 {
		t.Fatalf("failed writes must not mutate the view")
	}
}

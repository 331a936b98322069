package trackcal

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/KondratDima/TrackCaloryGraduationProject/internal/app"
	"github.com/KondratDima/TrackCaloryGraduationProject/internal/config"
	"github.com/KondratDima/TrackCaloryGraduationProject/internal/ledger"
	"github.com/KondratDima/TrackCaloryGraduationProject/internal/log"
	"github.com/KondratDima/TrackCaloryGraduationProject/internal/photo"
	"github.com/KondratDima/TrackCaloryGraduationProject/internal/store"
)

// withApp opens the store lazily, builds the ledger over it and runs fn.
// The ledger is constructed here, once per invocation, and handed down by
// reference; nothing holds it globally.
func withApp(fn func(ctx context.Context, s *store.Store, l *ledger.Ledger) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	logger := log.Default()
	s := store.Open(path, logger)
	defer s.Close()

	l := ledger.New(s, s, logger)
	return fn(context.Background(), s, l)
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if env := config.Load().DBPath; env != "" {
		return env, nil
	}
	return app.DefaultDBPath()
}

func resolvePhotoDir() (*photo.Dir, error) {
	if dir := config.Load().PhotoDir; dir != "" {
		return photo.New(dir)
	}
	dir, err := app.DefaultPhotoDir()
	if err != nil {
		return nil, err
	}
	return photo.New(dir)
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

func parseDateTimeOrNow(date, timeStr string) (time.Time, error) {
	date = strings.TrimSpace(date)
	timeStr = strings.TrimSpace(timeStr)
	if date == "" && timeStr == "" {
		return time.Now(), nil
	}
	if date == "" {
		return time.Time{}, fmt.Errorf("--date is required when --time is set")
	}
	if timeStr == "" {
		t, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
		}
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date/--time (expected YYYY-MM-DD and HH:MM)")
	}
	return t, nil
}

func parseDateOrToday(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
	}
	return t, nil
}

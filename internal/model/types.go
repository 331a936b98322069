package model

import (
	"os"
	"strings"
	"time"
)

// DefaultCategory is applied when an entry is logged without an explicit category.
const DefaultCategory = "main dish"

// MaxDescriptionLen caps entry descriptions.
const MaxDescriptionLen = 500

// UserProfile is the single per-device profile. The Daily* fields are derived
// from the others by the goal package and stored alongside them.
type UserProfile struct {
	ID               int64
	Gender           string
	WeightKg         float64
	HeightCm         float64
	AgeYears         int
	ActivityLevel    string
	Goal             string
	DailyCalorieGoal float64
	DailyProteinGoal float64
	DailyFatGoal     float64
	DailyCarbsGoal   float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CalorieEntry is one logged meal.
type CalorieEntry struct {
	ID          int64
	Date        time.Time
	Calories    float64
	Description string
	Category    string
	ProteinG    *float64
	FatG        *float64
	CarbsG      *float64
	PhotoPath   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasPhoto reports whether the entry references a photo file that still
// exists on disk. Derived, never stored.
func (e CalorieEntry) HasPhoto() bool {
	if strings.TrimSpace(e.PhotoPath) == "" {
		return false
	}
	_, err := os.Stat(e.PhotoPath)
	return err == nil
}

// Gender values.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Activity levels.
const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"
)

// Goals.
const (
	GoalLose     = "lose"
	GoalMaintain = "maintain"
	GoalGain     = "gain"
)

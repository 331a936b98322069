// Package goal computes daily calorie and macro targets from a user profile.
// Everything here is a pure function; callers are expected to pass sane
// positive inputs. Out-of-range inputs produce arithmetically valid but
// meaningless results rather than errors.
package goal

import "github.com/KondratDima/TrackCaloryGraduationProject/internal/model"

// activityMultipliers maps activity level to its TDEE multiplier.
var activityMultipliers = map[string]float64{
	model.ActivitySedentary:  1.2,
	model.ActivityLight:      1.375,
	model.ActivityModerate:   1.55,
	model.ActivityActive:     1.725,
	model.ActivityVeryActive: 1.9,
}

// proteinPerKg maps activity level to grams of protein per kg of body weight.
var proteinPerKg = map[string]float64{
	model.ActivitySedentary:  1.0,
	model.ActivityLight:      1.2,
	model.ActivityModerate:   1.5,
	model.ActivityActive:     1.8,
	model.ActivityVeryActive: 2.0,
}

const (
	defaultActivityMultiplier = 1.2
	defaultProteinPerKg       = 1.2

	// Fixed kcal offset applied for lose/gain goals.
	goalOffset = 400

	kcalPerGramProtein = 4
	kcalPerGramFat     = 9
	kcalPerGramCarbs   = 4

	fatCalorieShare = 0.25
)

// BMR estimates basal metabolic rate with the Mifflin-St Jeor formula.
// Any gender other than male uses the female constant.
func BMR(gender string, weightKg, heightCm float64, ageYears int) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	if gender == model.GenderMale {
		return bmr + 5
	}
	return bmr - 161
}

// TDEE scales BMR by the activity multiplier. Unrecognized levels fall back
// to the sedentary multiplier.
func TDEE(bmr float64, activityLevel string) float64 {
	mult, ok := activityMultipliers[activityLevel]
	if !ok {
		mult = defaultActivityMultiplier
	}
	return bmr * mult
}

// DailyCalories adjusts TDEE for the stated goal: a flat -400 for lose,
// +400 for gain, unchanged otherwise.
func DailyCalories(tdee float64, g string) float64 {
	switch g {
	case model.GoalLose:
		return tdee - goalOffset
	case model.GoalGain:
		return tdee + goalOffset
	default:
		return tdee
	}
}

// DailyProtein returns the daily protein target in grams: a per-kg multiplier
// by activity level, plus 0.3 g/kg when building mass.
func DailyProtein(weightKg float64, activityLevel, g string) float64 {
	perKg, ok := proteinPerKg[activityLevel]
	if !ok {
		perKg = defaultProteinPerKg
	}
	if g == model.GoalGain {
		perKg += 0.3
	}
	return weightKg * perKg
}

// DailyFat returns the daily fat target in grams: 25% of calories at
// 9 kcal per gram.
func DailyFat(dailyCalories float64) float64 {
	return dailyCalories * fatCalorieShare / kcalPerGramFat
}

// DailyCarbs returns the daily carbohydrate target in grams: whatever
// calories remain after protein and fat, at 4 kcal per gram. The result can
// go negative when protein and fat already exceed the calorie budget; it is
// deliberately not clamped.
func DailyCarbs(dailyCalories, proteinG, fatG float64) float64 {
	remaining := dailyCalories - proteinG*kcalPerGramProtein - fatG*kcalPerGramFat
	return remaining / kcalPerGramCarbs
}

// FullGoal runs the BMR -> TDEE -> calorie-goal pipeline on a profile.
func FullGoal(p model.UserProfile) float64 {
	bmr := BMR(p.Gender, p.WeightKg, p.HeightCm, p.AgeYears)
	tdee := TDEE(bmr, p.ActivityLevel)
	return DailyCalories(tdee, p.Goal)
}

// Targets fills in the four derived goal fields of a profile and returns it.
func Targets(p model.UserProfile) model.UserProfile {
	p.DailyCalorieGoal = FullGoal(p)
	p.DailyProteinGoal = DailyProtein(p.WeightKg, p.ActivityLevel, p.Goal)
	p.DailyFatGoal = DailyFat(p.DailyCalorieGoal)
	p.DailyCarbsGoal = DailyCarbs(p.DailyCalorieGoal, p.DailyProteinGoal, p.DailyFatGoal)
	return p
}

// ActivityLevels lists the recognized activity levels in ascending order of
// exertion, for input validation and help text.
func ActivityLevels() []string {
	return []string{
		model.ActivitySedentary,
		model.ActivityLight,
		model.ActivityModerate,
		model.ActivityActive,
		model.ActivityVeryActive,
	}
}

package trackcal

import (
	"context"
	"fmt"
	"strings"

	"github.com/KondratDima/TrackCaloryGraduationProject/internal/goal"
	"github.com/KondratDima/TrackCaloryGraduationProject/internal/ledger"
	"github.com/KondratDima/TrackCaloryGraduationProject/internal/model"
	"github.com/KondratDima/TrackCaloryGraduationProject/internal/store"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the user profile and derived daily goals",
}

var (
	profileGender   string
	profileWeight   float64
	profileHeight   float64
	profileAge      int
	profileActivity string
	profileGoal     string
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or overwrite the profile and recompute daily goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := model.UserProfile{
			Gender:        strings.ToLower(strings.TrimSpace(profileGender)),
			WeightKg:      profileWeight,
			HeightCm:      profileHeight,
			AgeYears:      profileAge,
			ActivityLevel: strings.ToLower(strings.TrimSpace(profileActivity)),
			Goal:          strings.ToLower(strings.TrimSpace(profileGoal)),
		}
		if err := validateProfileInput(p); err != nil {
			return err
		}
		p = goal.Targets(p)

		return withApp(func(ctx context.Context, s *store.Store, _ *ledger.Ledger) error {
			if err := s.SaveProfile(ctx, &p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile saved. Daily goal: %.0f kcal (protein %.0f g, fat %.0f g, carbs %.0f g)\n",
				p.DailyCalorieGoal, p.DailyProteinGoal, p.DailyFatGoal, p.DailyCarbsGoal)
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored profile and daily goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, s *store.Store, _ *ledger.Ledger) error {
			p, err := s.GetProfile(ctx)
			if err != nil {
				return err
			}
			if p == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No profile yet. Run: trackcal profile set")
				return nil
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Gender: %s\n", p.Gender)
			fmt.Fprintf(out, "Weight: %.1f kg\n", p.WeightKg)
			fmt.Fprintf(out, "Height: %.1f cm\n", p.HeightCm)
			fmt.Fprintf(out, "Age: %d\n", p.AgeYears)
			fmt.Fprintf(out, "Activity: %s\n", p.ActivityLevel)
			fmt.Fprintf(out, "Goal: %s\n", p.Goal)
			fmt.Fprintf(out, "Daily calories: %.0f kcal\n", p.DailyCalorieGoal)
			fmt.Fprintf(out, "Daily protein: %.0f g\n", p.DailyProteinGoal)
			fmt.Fprintf(out, "Daily fat: %.0f g\n", p.DailyFatGoal)
			fmt.Fprintf(out, "Daily carbs: %.0f g\n", p.DailyCarbsGoal)
			return nil
		})
	},
}

func validateProfileInput(p model.UserProfile) error {
	if p.Gender != model.GenderMale && p.Gender != model.GenderFemale {
		return fmt.Errorf("--gender must be %q or %q", model.GenderMale, model.GenderFemale)
	}
	if p.WeightKg <= 0 {
		return fmt.Errorf("--weight must be > 0")
	}
	if p.HeightCm <= 0 {
		return fmt.Errorf("--height must be > 0")
	}
	if p.AgeYears <= 0 {
		return fmt.Errorf("--age must be > 0")
	}
	valid := false
	for _, level := range goal.ActivityLevels() {
		if p.ActivityLevel == level {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("--activity must be one of: %s", strings.Join(goal.ActivityLevels(), ", "))
	}
	switch p.Goal {
	case model.GoalLose, model.GoalMaintain, model.GoalGain:
	default:
		return fmt.Errorf("--goal must be one of: %s, %s, %s", model.GoalLose, model.GoalMaintain, model.GoalGain)
	}
	return nil
}

func init() {
	profileSetCmd.Flags().StringVar(&profileGender, "gender", "", "Gender: male or female")
	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "Weight in kg")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height in cm")
	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "Age in years")
	profileSetCmd.Flags().StringVar(&profileActivity, "activity", "", "Activity level: sedentary, light, moderate, active, very_active")
	profileSetCmd.Flags().StringVar(&profileGoal, "goal", "", "Goal: lose, maintain or gain")

	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileShowCmd)
	rootCmd.AddCommand(profileCmd)
}

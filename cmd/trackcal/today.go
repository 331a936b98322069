package trackcal

import (
	"context"
	"fmt"
	"time"

	"github.com/KondratDima/TrackCaloryGraduationProject/internal/ledger"
	"github.com/KondratDima/TrackCaloryGraduationProject/internal/store"
	"github.com/spf13/cobra"
)

var todayDate string

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show totals and goal progress for a day (default today)",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDateOrToday(todayDate)
		if err != nil {
			return err
		}
		return withApp(func(ctx context.Context, s *store.Store, l *ledger.Ledger) error {
			total := l.TotalCaloriesForDate(ctx, day)
			macros := l.MacrosForDate(ctx, day)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", day.Format("2006-01-02"), ledger.DateIndicator(day, time.Now()))
			fmt.Fprintf(out, "Calories: %.0f kcal\n", total)
			fmt.Fprintf(out, "Macros: protein %.1f g, fat %.1f g, carbs %.1f g\n", macros.ProteinG, macros.FatG, macros.CarbsG)

			p, err := s.GetProfile(ctx)
			if err != nil || p == nil {
				fmt.Fprintln(out, "No profile yet; set one to see remaining calories.")
				return nil
			}
			remaining := l.RemainingCalories(ctx, day)
			ratio := l.ProgressRatio(ctx, day)
			fmt.Fprintf(out, "Goal: %.0f kcal\n", p.DailyCalorieGoal)
			switch {
			case remaining > 0:
				fmt.Fprintf(out, "Remaining: %.0f kcal (%.0f%% of goal used)\n", remaining, ratio*100)
			case remaining == 0:
				fmt.Fprintln(out, "Goal exactly met")
			default:
				fmt.Fprintf(out, "Exceeded by %.0f kcal (%.0f%% of goal)\n", -remaining, ratio*100)
			}
			return nil
		})
	},
}

func init() {
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Day to summarize (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(todayCmd)
}

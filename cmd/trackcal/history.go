package trackcal

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/KondratDima/TrackCaloryGraduationProject/internal/ledger"
	"github.com/KondratDima/TrackCaloryGraduationProject/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show calorie totals for the last week",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, _ *store.Store, l *ledger.Ledger) error {
			totals := l.WeeklyTotals(ctx)
			if len(totals) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No entries in the last week.")
				return nil
			}

			days := make([]string, 0, len(totals))
			for day := range totals {
				days = append(days, day)
			}
			sort.Sort(sort.Reverse(sort.StringSlice(days)))

			now := time.Now()
			for _, day := range days {
				date, err := time.ParseInLocation("2006-01-02", day, time.Local)
				if err != nil {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%-12s\t%.0f kcal\n", day, ledger.DateIndicator(date, now), totals[day])
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

package trackcal

import (
	"context"
	"fmt"

	"github.com/KondratDima/TrackCaloryGraduationProject/internal/ledger"
	"github.com/KondratDima/TrackCaloryGraduationProject/internal/model"
	"github.com/KondratDima/TrackCaloryGraduationProject/internal/store"
	"github.com/spf13/cobra"
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Manage logged meals",
}

var (
	entryDescription string
	entryCalories    float64
	entryCategory    string
	entryProtein     float64
	entryFat         float64
	entryCarbs       float64
	entryDate        string
	entryTime        string
	entryPhoto       string
)

var entryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a meal",
	RunE: func(cmd *cobra.Command, args []string) error {
		consumed, err := parseDateTimeOrNow(entryDate, entryTime)
		if err != nil {
			return err
		}
		if entryCalories < 0 {
			return fmt.Errorf("--calories must be >= 0")
		}

		e := model.CalorieEntry{
			Date:        consumed,
			Calories:    entryCalories,
			Description: entryDescription,
			Category:    entryCategory,
		}
		if cmd.Flags().Changed("protein") {
			e.ProteinG = &entryProtein
		}
		if cmd.Flags().Changed("fat") {
			e.FatG = &entryFat
		}
		if cmd.Flags().Changed("carbs") {
			e.CarbsG = &entryCarbs
		}
		if entryPhoto != "" {
			photos, err := resolvePhotoDir()
			if err != nil {
				return err
			}
			stored, err := photos.Import(entryPhoto)
			if err != nil {
				return err
			}
			e.PhotoPath = stored
		}

		return withApp(func(ctx context.Context, _ *store.Store, l *ledger.Ledger) error {
			if err := l.Add(ctx, &e); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added entry %d\n", e.ID)
			return nil
		})
	},
}

var entryListDate string

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries, optionally for one day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, _ *store.Store, l *ledger.Ledger) error {
			var entries []model.CalorieEntry
			if entryListDate != "" {
				day, err := parseDateOrToday(entryListDate)
				if err != nil {
					return err
				}
				entries = l.EntriesForDate(ctx, day)
			} else {
				entries = l.LoadAll(ctx)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tCATEGORY\tKCAL\tPHOTO\tDESCRIPTION")
			for _, e := range entries {
				photoMark := ""
				if e.HasPhoto() {
					photoMark = "yes"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%.0f\t%s\t%s\n",
					e.ID, e.Date.Local().Format("2006-01-02 15:04"), e.Category, e.Calories, photoMark, e.Description)
			}
			return nil
		})
	},
}

var entryShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("entry id", args[0])
		if err != nil {
			return err
		}
		return withApp(func(ctx context.Context, s *store.Store, _ *ledger.Ledger) error {
			e, err := s.EntryByID(ctx, id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID: %d\n", e.ID)
			fmt.Fprintf(out, "Date: %s\n", e.Date.Local().Format("2006-01-02 15:04"))
			fmt.Fprintf(out, "Category: %s\n", e.Category)
			fmt.Fprintf(out, "Calories: %.0f\n", e.Calories)
			if e.ProteinG != nil {
				fmt.Fprintf(out, "Protein: %.1f g\n", *e.ProteinG)
			}
			if e.FatG != nil {
				fmt.Fprintf(out, "Fat: %.1f g\n", *e.FatG)
			}
			if e.CarbsG != nil {
				fmt.Fprintf(out, "Carbs: %.1f g\n", *e.CarbsG)
			}
			if e.HasPhoto() {
				fmt.Fprintf(out, "Photo: %s\n", e.PhotoPath)
			}
			fmt.Fprintf(out, "Description: %s\n", e.Description)
			return nil
		})
	},
}

var entryUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("entry id", args[0])
		if err != nil {
			return err
		}
		return withApp(func(ctx context.Context, s *store.Store, l *ledger.Ledger) error {
			e, err := s.EntryByID(ctx, id)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("description") {
				e.Description = entryDescription
			}
			if cmd.Flags().Changed("calories") {
				if entryCalories < 0 {
					return fmt.Errorf("--calories must be >= 0")
				}
				e.Calories = entryCalories
			}
			if cmd.Flags().Changed("category") {
				e.Category = entryCategory
			}
			if cmd.Flags().Changed("protein") {
				e.ProteinG = &entryProtein
			}
			if cmd.Flags().Changed("fat") {
				e.FatG = &entryFat
			}
			if cmd.Flags().Changed("carbs") {
				e.CarbsG = &entryCarbs
			}
			if cmd.Flags().Changed("date") || cmd.Flags().Changed("time") {
				consumed, err := parseDateTimeOrNow(entryDate, entryTime)
				if err != nil {
					return err
				}
				e.Date = consumed
			}
			if err := l.Add(ctx, e); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated entry %d\n", id)
			return nil
		})
	},
}

var entryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an entry (and its photo file, if any)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("entry id", args[0])
		if err != nil {
			return err
		}
		return withApp(func(ctx context.Context, s *store.Store, l *ledger.Ledger) error {
			e, err := s.EntryByID(ctx, id)
			if err != nil {
				return err
			}
			if err := l.Remove(ctx, *e); err != nil {
				return err
			}
			// The aggregator does not own the photo lifecycle; the delete
			// workflow does.
			if e.PhotoPath != "" {
				photos, err := resolvePhotoDir()
				if err == nil {
					_ = photos.Delete(e.PhotoPath)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %d\n", id)
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{entryAddCmd, entryUpdateCmd} {
		c.Flags().StringVar(&entryDescription, "description", "", "What was eaten")
		c.Flags().Float64Var(&entryCalories, "calories", 0, "Calories for the portion")
		c.Flags().StringVar(&entryCategory, "category", "", "Category (default \"main dish\")")
		c.Flags().Float64Var(&entryProtein, "protein", 0, "Protein in grams")
		c.Flags().Float64Var(&entryFat, "fat", 0, "Fat in grams")
		c.Flags().Float64Var(&entryCarbs, "carbs", 0, "Carbs in grams")
		c.Flags().StringVar(&entryDate, "date", "", "Consumption date (YYYY-MM-DD)")
		c.Flags().StringVar(&entryTime, "time", "", "Consumption time (HH:MM)")
	}
	entryAddCmd.Flags().StringVar(&entryPhoto, "photo", "", "Path to a meal photo to attach")
	entryListCmd.Flags().StringVar(&entryListDate, "date", "", "Only entries for this day (YYYY-MM-DD)")

	entryCmd.AddCommand(entryAddCmd)
	entryCmd.AddCommand(entryListCmd)
	entryCmd.AddCommand(entryShowCmd)
	entryCmd.AddCommand(entryUpdateCmd)
	entryCmd.AddCommand(entryDeleteCmd)
	rootCmd.AddCommand(entryCmd)
}

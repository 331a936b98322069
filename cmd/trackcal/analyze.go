package trackcal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KondratDima/TrackCaloryGraduationProject/internal/config"
	"github.com/KondratDima/TrackCaloryGraduationProject/internal/ledger"
	"github.com/KondratDima/TrackCaloryGraduationProject/internal/model"
	"github.com/KondratDima/TrackCaloryGraduationProject/internal/provider/gemini"
	"github.com/KondratDima/TrackCaloryGraduationProject/internal/store"
	"github.com/spf13/cobra"
)

var analyzeLog bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <photo>",
	Short: "Recognize a food photo with Gemini and optionally log it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if cfg.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is not set (put it in the environment or a .env file)")
		}

		client := &gemini.Client{
			APIKey:      cfg.GeminiAPIKey,
			Model:       cfg.GeminiModel,
			Temperature: cfg.GeminiTemperature,
			MaxTokens:   cfg.GeminiMaxTokens,
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.GeminiTimeout)
		defer cancel()

		result, err := client.AnalyzeFile(ctx, args[0])
		if err != nil {
			switch {
			case errors.Is(err, gemini.ErrNoInternet):
				return fmt.Errorf("no internet connection, check the network and try again")
			case errors.Is(err, gemini.ErrRateLimited):
				return fmt.Errorf("request limit exceeded, try again in a minute")
			case errors.Is(err, gemini.ErrUnrecognized):
				return fmt.Errorf("couldn't understand the photo, try a clearer shot of the food")
			default:
				return err
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Dish: %s\n", result.DishName)
		fmt.Fprintf(out, "Calories: %.0f kcal\n", result.Calories)
		if result.Protein != nil {
			fmt.Fprintf(out, "Protein: %.1f g\n", *result.Protein)
		}
		if result.Fat != nil {
			fmt.Fprintf(out, "Fat: %.1f g\n", *result.Fat)
		}
		if result.Carbs != nil {
			fmt.Fprintf(out, "Carbs: %.1f g\n", *result.Carbs)
		}
		if result.WeightG != nil {
			fmt.Fprintf(out, "Portion: ~%.0f g\n", *result.WeightG)
		}
		if result.Confidence != nil {
			fmt.Fprintf(out, "Confidence: %.0f%%\n", *result.Confidence*100)
		}

		if !analyzeLog {
			return nil
		}

		photos, err := resolvePhotoDir()
		if err != nil {
			return err
		}
		stored, err := photos.Import(args[0])
		if err != nil {
			return err
		}
		e := model.CalorieEntry{
			Date:        time.Now(),
			Calories:    result.Calories,
			Description: result.DishName,
			ProteinG:    result.Protein,
			FatG:        result.Fat,
			CarbsG:      result.Carbs,
			PhotoPath:   stored,
		}
		return withApp(func(ctx context.Context, _ *store.Store, l *ledger.Ledger) error {
			if err := l.Add(ctx, &e); err != nil {
				return err
			}
			fmt.Fprintf(out, "Logged as entry %d\n", e.ID)
			return nil
		})
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeLog, "log", false, "Log the recognized meal as an entry")
	rootCmd.AddCommand(analyzeCmd)
}

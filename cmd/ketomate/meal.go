// ABOUTME: CLI commands for logging, listing, and deleting meals.
// ABOUTME: Meals are logged with their macros against the daily budget.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/itstoasti/ketomate/internal/ledger"
	"github.com/itstoasti/ketomate/internal/models"
	"github.com/spf13/cobra"
)

var (
	mealType     string
	mealDate     string
	mealCarbs    float64
	mealProtein  float64
	mealFat      float64
	mealCalories float64
	mealListDate string
	mealLimit    int
)

var mealCmd = &cobra.Command{
	Use:     "meal",
	Aliases: []string{"m"},
	Short:   "Log and manage meals",
}

var mealLogCmd = &cobra.Command{
	Use:     "log <name>",
	Aliases: []string{"add"},
	Short:   "Log a meal",
	Long: `Log a meal with its macros. The macros count against the daily budget
shown by 'ketomate day'.

Examples:
  ketomate meal log "Bacon and Eggs" -t breakfast -c 2 -p 24 -f 30 --cal 380
  ketomate meal log "Cobb Salad" -t lunch -c 6 -p 28 -f 35 --cal 460
  ketomate meal log "Leftovers" -t dinner -c 8 --date 2026-08-30`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !models.IsValidMealType(mealType) {
			return fmt.Errorf("unknown meal type: %s\nValid types: breakfast, lunch, dinner, snack", mealType)
		}

		day := time.Now()
		if mealDate != "" {
			t, err := time.Parse("2006-01-02", mealDate)
			if err != nil {
				return fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", mealDate)
			}
			day = t
		}

		m := models.NewMeal(args[0], models.MealType(mealType), day, models.Macro{
			Carbs:    mealCarbs,
			Protein:  mealProtein,
			Fat:      mealFat,
			Calories: mealCalories,
		})

		if err := repo.CreateMeal(m); err != nil {
			return fmt.Errorf("failed to create meal: %w", err)
		}

		color.Green("✓ Logged %s: %s", m.Type, m.Name)
		fmt.Printf("  %s %.1fc %.1fp %.1ff %.0f kcal\n",
			color.New(color.Faint).Sprint(m.ID.String()[:8]),
			m.Macros.Carbs, m.Macros.Protein, m.Macros.Fat, m.Macros.Calories)

		printRemaining(day)
		return nil
	},
}

var mealListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List meals",
	Long: `List recent meals, newest first.

Each line shows: ID  DATE  TIME  TYPE  NAME  MACROS

The ID is an 8-character prefix you can use with 'meal delete'.

Examples:
  ketomate meal list                  # Last 20 meals
  ketomate meal list -n 50            # Last 50 meals
  ketomate meal list --date 2026-08-30`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var meals []*models.Meal
		var err error

		if mealListDate != "" {
			day, perr := time.Parse("2006-01-02", mealListDate)
			if perr != nil {
				return fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", mealListDate)
			}
			meals, err = repo.ListMealsByDate(day)
		} else {
			meals, err = repo.ListMeals(mealLimit)
		}
		if err != nil {
			return fmt.Errorf("failed to list meals: %w", err)
		}

		if len(meals) == 0 {
			fmt.Println("No meals found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, m := range meals {
			fmt.Printf("%s %s %s %s %s  %.1fc %.1fp %.1ff %.0f kcal\n",
				faint.Sprint(m.ID.String()[:8]),
				faint.Sprint(m.Date),
				faint.Sprint(m.Time),
				padRight(string(m.Type), 9),
				m.Name,
				m.Macros.Carbs, m.Macros.Protein, m.Macros.Fat, m.Macros.Calories)
		}

		return nil
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a meal",
	Long: `Delete a meal by its ID or ID prefix. The prefix is shown in the first
column of 'meal list' output. If the prefix matches multiple meals, an
error is returned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := repo.GetMeal(args[0])
		if err != nil {
			return fmt.Errorf("meal not found: %s", args[0])
		}

		if err := repo.DeleteMeal(args[0]); err != nil {
			return fmt.Errorf("failed to delete meal: %w", err)
		}

		color.Yellow("✗ Deleted %s: %s", m.Type, m.Name)
		return nil
	},
}

// printRemaining prints the day's remaining budget after a log, in
// faint text so the headline stays the logged meal.
func printRemaining(day time.Time) {
	profile, err := repo.GetProfile()
	if err != nil {
		return
	}
	meals, err := repo.ListMealsByDate(day)
	if err != nil {
		return
	}
	summary := ledger.ComputeDaily(meals, day, profile.MacroLimit())
	color.New(color.Faint).Printf("  remaining today: %.1fc %.1fp %.1ff %.0f kcal\n",
		summary.Remaining.Carbs, summary.Remaining.Protein,
		summary.Remaining.Fat, summary.Remaining.Calories)
}

func init() {
	mealLogCmd.Flags().StringVarP(&mealType, "type", "t", "snack", "meal type (breakfast, lunch, dinner, snack)")
	mealLogCmd.Flags().StringVar(&mealDate, "date", "", "calendar day (YYYY-MM-DD, default today)")
	mealLogCmd.Flags().Float64VarP(&mealCarbs, "carbs", "c", 0, "net carbs in grams")
	mealLogCmd.Flags().Float64VarP(&mealProtein, "protein", "p", 0, "protein in grams")
	mealLogCmd.Flags().Float64VarP(&mealFat, "fat", "f", 0, "fat in grams")
	mealLogCmd.Flags().Float64Var(&mealCalories, "cal", 0, "calories")

	mealListCmd.Flags().StringVar(&mealListDate, "date", "", "filter to a single day (YYYY-MM-DD)")
	mealListCmd.Flags().IntVarP(&mealLimit, "limit", "n", 20, "max number of results")

	mealCmd.AddCommand(mealLogCmd)
	mealCmd.AddCommand(mealListCmd)
	mealCmd.AddCommand(mealDeleteCmd)
	rootCmd.AddCommand(mealCmd)
}

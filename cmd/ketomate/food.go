// ABOUTME: CLI commands for food lookup: barcode, AI analysis, label photos.
// ABOUTME: Looked-up foods can be logged directly as meals with --log.
package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/itstoasti/ketomate/internal/ai"
	"github.com/itstoasti/ketomate/internal/config"
	"github.com/itstoasti/ketomate/internal/models"
	"github.com/itstoasti/ketomate/internal/provider/openfoodfacts"
	"github.com/spf13/cobra"
)

var (
	foodLog      string
	foodServings float64
)

var foodCmd = &cobra.Command{
	Use:     "food",
	Aliases: []string{"f"},
	Short:   "Look up foods by barcode, description, or label photo",
}

var foodBarcodeCmd = &cobra.Command{
	Use:   "barcode <code>",
	Short: "Look up a packaged food by barcode",
	Long: `Look up a packaged food by its EAN/UPC barcode in the Open Food Facts
shared database.

Examples:
  ketomate food barcode 737628064502
  ketomate food barcode 737628064502 --log snack
  ketomate food barcode 737628064502 --log snack --servings 2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := args[0]
		if !openfoodfacts.IsValidBarcode(code) {
			return fmt.Errorf("invalid barcode: %s (expect 8-14 digits)", code)
		}

		client := &openfoodfacts.Client{}
		food, err := client.LookupBarcode(context.Background(), code)
		if err != nil {
			return fmt.Errorf("barcode lookup failed: %w", err)
		}

		printFood(food)
		return maybeLogFood(food)
	},
}

var foodSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search foods by name",
	Long: `Search the Open Food Facts shared database by name. When no match is
found and an AI proxy is configured, falls back to AI nutrition
estimation for the query text.

With --log, the first match is logged.

Examples:
  ketomate food search "greek yogurt"
  ketomate food search "cauliflower rice" --log dinner`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]
		client := &openfoodfacts.Client{}

		foods, err := client.SearchFoods(context.Background(), query)
		if err != nil || len(foods) == 0 {
			// Shared database first, AI second.
			aiCli, aiErr := aiClient()
			if aiErr != nil {
				if err != nil {
					return fmt.Errorf("food search failed: %w", err)
				}
				return fmt.Errorf("no foods found for %q", query)
			}
			food, aiErr := aiCli.AnalyzeFoodText(context.Background(), query)
			if aiErr != nil {
				return fmt.Errorf("food search failed: %w", aiErr)
			}
			color.New(color.Faint).Println("(no database match, AI estimate)")
			printFood(food)
			return maybeLogFood(food)
		}

		for i, f := range foods {
			if i > 0 {
				fmt.Println()
			}
			printFood(f)
		}
		return maybeLogFood(foods[0])
	},
}

var foodAnalyzeCmd = &cobra.Command{
	Use:   "analyze <description>",
	Short: "Estimate nutrition facts for a food description",
	Long: `Ask the configured AI proxy to estimate nutrition facts for a free-text
food description. If the analysis does not answer within 8 seconds, a
zero-macro placeholder named after your description is returned for
manual editing.

Requires ai_proxy_url in the config file ('ketomate config path').

Examples:
  ketomate food analyze "two scrambled eggs with cheddar"
  ketomate food analyze "8oz ribeye" --log dinner`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := aiClient()
		if err != nil {
			return err
		}

		food, err := client.AnalyzeFoodText(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("food analysis failed: %w", err)
		}

		printFood(food)
		return maybeLogFood(food)
	},
}

var foodLabelCmd = &cobra.Command{
	Use:   "label <image-file>",
	Short: "Read a nutrition label photo",
	Long: `Send a photo of a nutrition label to the configured AI proxy and parse
the reported facts.

Requires ai_proxy_url in the config file ('ketomate config path').

Examples:
  ketomate food label label.jpg
  ketomate food label label.jpg --log snack`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := aiClient()
		if err != nil {
			return err
		}

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}

		food, err := client.AnalyzeLabelImage(context.Background(), base64.StdEncoding.EncodeToString(raw))
		if err != nil {
			return fmt.Errorf("label analysis failed: %w", err)
		}

		printFood(food)
		return maybeLogFood(food)
	},
}

func aiClient() (*ai.Client, error) {
	if cfg == nil || cfg.AIProxyURL == "" {
		return nil, fmt.Errorf("food analysis is not configured (set ai_proxy_url in %s)", config.GetConfigPath())
	}
	return &ai.Client{BaseURL: cfg.AIProxyURL, APIKey: cfg.AIProxyKey}, nil
}

func printFood(f *models.Food) {
	name := f.Name
	if f.Brand != "" {
		name = fmt.Sprintf("%s (%s)", f.Name, f.Brand)
	}
	fmt.Printf("%s\n", color.New(color.Bold).Sprint(name))
	if f.ServingSize != "" {
		color.New(color.Faint).Printf("  per %s\n", f.ServingSize)
	}
	fmt.Printf("  %.1fg carbs (%.1fg net), %.1fg protein, %.1fg fat, %.0f kcal\n",
		f.Macros.Carbs, f.NetCarbs(), f.Macros.Protein, f.Macros.Fat, f.Macros.Calories)

	rating := f.KetoRating()
	switch rating {
	case models.RatingKetoFriendly:
		color.Green("  ✓ %s", rating)
	case models.RatingLimit:
		color.Yellow("  ~ %s", rating)
	default:
		color.Red("  ✗ %s", rating)
	}
}

// maybeLogFood logs the looked-up food as a meal when --log was given.
// Macros are scaled by --servings.
func maybeLogFood(f *models.Food) error {
	if foodLog == "" {
		return nil
	}
	if !models.IsValidMealType(foodLog) {
		return fmt.Errorf("unknown meal type: %s\nValid types: breakfast, lunch, dinner, snack", foodLog)
	}

	servings := foodServings
	if servings <= 0 {
		servings = 1
	}

	m := models.NewMeal(f.Name, models.MealType(foodLog), time.Now(), f.Macros.Scale(servings))
	m.WithFoods(*f)

	if err := repo.CreateMeal(m); err != nil {
		return fmt.Errorf("failed to create meal: %w", err)
	}

	color.Green("✓ Logged %s: %s", m.Type, m.Name)
	printRemaining(time.Now())
	return nil
}

func init() {
	for _, c := range []*cobra.Command{foodBarcodeCmd, foodSearchCmd, foodAnalyzeCmd, foodLabelCmd} {
		c.Flags().StringVar(&foodLog, "log", "", "log the result as a meal (breakfast, lunch, dinner, snack)")
		c.Flags().Float64Var(&foodServings, "servings", 1, "serving multiplier when logging")
	}

	foodCmd.AddCommand(foodBarcodeCmd)
	foodCmd.AddCommand(foodSearchCmd)
	foodCmd.AddCommand(foodAnalyzeCmd)
	foodCmd.AddCommand(foodLabelCmd)
	rootCmd.AddCommand(foodCmd)
}

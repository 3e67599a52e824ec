// ABOUTME: CLI commands for viewing and editing the user profile.
// ABOUTME: Covers units, height/weight, goal, and the daily macro budget.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/itstoasti/ketomate/internal/models"
	"github.com/itstoasti/ketomate/internal/units"
	"github.com/spf13/cobra"
)

var (
	profileName     string
	profileWeight   string
	profileHeight   string
	profileWUnit    string
	profileHUnit    string
	profileGoal     string
	profileCarbs    float64
	profileProtein  float64
	profileFat      float64
	profileCalories float64
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the user profile",
	Long: `Show the user profile: name, weight, height, unit preferences, goal,
and the daily macro budget. Use 'profile set' to change fields.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := repo.GetProfile()
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}

		if p.Name != "" {
			fmt.Printf("%s\n\n", color.New(color.Bold).Sprint(p.Name))
		}

		if p.WeightKg > 0 {
			fmt.Printf("  weight  %s\n", formatWeight(p.WeightKg, p.WeightUnit))
		}
		if p.HeightCm > 0 {
			fmt.Printf("  height  %s\n", formatHeight(p.HeightCm, p.HeightUnit))
		}
		fmt.Printf("  units   %s / %s\n", p.WeightUnit, p.HeightUnit)
		if p.Goal != "" {
			fmt.Printf("  goal    %s\n", p.Goal)
		}

		limit := p.MacroLimit()
		fmt.Printf("\n  daily budget: %.0fg net carbs, %.0fg protein, %.0fg fat, %.0f kcal\n",
			limit.Carbs, limit.Protein, limit.Fat, limit.Calories)

		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	Long: `Update one or more profile fields.

Weight and height are read in the profile's units unless new units are
set in the same invocation. Height in ft/in uses FEET'INCHES, e.g. 5'11.

Examples:
  ketomate profile set --name "Sam" --weight 82.5
  ketomate profile set --weight-unit lb --height-unit ft
  ketomate profile set --height 5'11 --height-unit ft
  ketomate profile set --carbs 20 --protein 120 --fat 150 --cal 1800`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := repo.GetProfile()
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}

		if profileName != "" {
			p.Name = profileName
		}
		if profileGoal != "" {
			p.Goal = profileGoal
		}

		switch profileWUnit {
		case "":
		case "kg":
			p.WeightUnit = models.WeightKg
		case "lb", "lbs":
			p.WeightUnit = models.WeightLb
		default:
			return fmt.Errorf("unknown weight unit: %s (use kg or lb)", profileWUnit)
		}

		switch profileHUnit {
		case "":
		case "cm":
			p.HeightUnit = models.HeightCm
		case "ft", "ftin":
			p.HeightUnit = models.HeightFtIn
		default:
			return fmt.Errorf("unknown height unit: %s (use cm or ft)", profileHUnit)
		}

		if profileWeight != "" {
			v, err := strconv.ParseFloat(profileWeight, 64)
			if err != nil || v <= 0 {
				return fmt.Errorf("invalid weight: %s", profileWeight)
			}
			if p.WeightUnit == models.WeightLb {
				v = units.LbToKg(v)
			}
			p.WeightKg = v
		}

		if profileHeight != "" {
			cm, err := parseHeight(profileHeight, p.HeightUnit)
			if err != nil {
				return err
			}
			p.HeightCm = cm
		}

		if profileCarbs > 0 {
			p.DailyMacroLimit.Carbs = profileCarbs
		}
		if profileProtein > 0 {
			p.DailyMacroLimit.Protein = profileProtein
		}
		if profileFat > 0 {
			p.DailyMacroLimit.Fat = profileFat
		}
		if profileCalories > 0 {
			p.DailyMacroLimit.Calories = profileCalories
		}
		if p.DailyMacroLimit.IsZero() {
			p.DailyMacroLimit = models.DefaultMacroLimit
		}

		if err := repo.SaveProfile(p); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}

		if cfg != nil && !cfg.OnboardingComplete {
			cfg.OnboardingComplete = true
			_ = cfg.Save()
		}

		color.Green("✓ Profile updated")
		return nil
	},
}

// parseHeight reads a height value: plain centimeters, or FEET'INCHES
// when the unit is ft/in.
func parseHeight(s string, unit models.HeightUnit) (float64, error) {
	if unit == models.HeightFtIn {
		var feet, inches int
		if n, err := fmt.Sscanf(s, "%d'%d", &feet, &inches); err != nil || n < 1 {
			return 0, fmt.Errorf("invalid height: %s (use FEET'INCHES, e.g. 5'11)", s)
		}
		return units.FtInToCm(feet, inches), nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid height: %s", s)
	}
	return v, nil
}

func formatHeight(cm float64, unit models.HeightUnit) string {
	if unit == models.HeightFtIn {
		feet, inches := units.CmToFtIn(cm)
		return fmt.Sprintf("%d'%d\"", feet, inches)
	}
	return fmt.Sprintf("%.0f cm", cm)
}

func init() {
	profileSetCmd.Flags().StringVar(&profileName, "name", "", "display name")
	profileSetCmd.Flags().StringVar(&profileWeight, "weight", "", "current weight (in weight unit)")
	profileSetCmd.Flags().StringVar(&profileHeight, "height", "", "height (cm, or FEET'INCHES with ft unit)")
	profileSetCmd.Flags().StringVar(&profileWUnit, "weight-unit", "", "weight unit (kg or lb)")
	profileSetCmd.Flags().StringVar(&profileHUnit, "height-unit", "", "height unit (cm or ft)")
	profileSetCmd.Flags().StringVar(&profileGoal, "goal", "", "goal note (e.g. \"lose 5kg\")")
	profileSetCmd.Flags().Float64Var(&profileCarbs, "carbs", 0, "daily net carb budget in grams")
	profileSetCmd.Flags().Float64Var(&profileProtein, "protein", 0, "daily protein budget in grams")
	profileSetCmd.Flags().Float64Var(&profileFat, "fat", 0, "daily fat budget in grams")
	profileSetCmd.Flags().Float64Var(&profileCalories, "cal", 0, "daily calorie budget")

	profileCmd.AddCommand(profileSetCmd)
	rootCmd.AddCommand(profileCmd)
}

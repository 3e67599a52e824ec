// ABOUTME: CLI commands for weight history: add, list, edit, delete.
// ABOUTME: Values are stored in kilograms and displayed in the profile's unit.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/itstoasti/ketomate/internal/models"
	"github.com/itstoasti/ketomate/internal/units"
	"github.com/spf13/cobra"
)

var (
	weightUnit  string
	weightAt    string
	weightNotes string
	weightLimit int
)

var weightCmd = &cobra.Command{
	Use:     "weight",
	Aliases: []string{"w"},
	Short:   "Track body weight",
}

var weightAddCmd = &cobra.Command{
	Use:   "add <value>",
	Short: "Record a weight entry",
	Long: `Record a body weight entry. The value is read in your profile's weight
unit (kg by default); override with --unit. Storage is always in
kilograms.

Examples:
  ketomate weight add 82.5
  ketomate weight add 181.9 --unit lb
  ketomate weight add 82.1 --at "2026-08-30 07:00" --notes "after fast"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid value: %s", args[0])
		}
		if value <= 0 {
			return fmt.Errorf("weight must be positive")
		}

		unit, err := resolveWeightUnit()
		if err != nil {
			return err
		}

		kg := value
		if unit == models.WeightLb {
			kg = units.LbToKg(value)
		}

		w := models.NewWeightEntry(kg)

		if weightAt != "" {
			t, err := parseTime(weightAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", weightAt)
			}
			w.WithRecordedAt(t)
		}
		if weightNotes != "" {
			w.WithNotes(weightNotes)
		}

		if err := repo.CreateWeightEntry(w); err != nil {
			return fmt.Errorf("failed to create weight entry: %w", err)
		}

		color.Green("✓ Recorded %s", formatWeight(kg, unit))
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(w.ID.String()[:8]))
		return nil
	},
}

var weightListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List weight entries",
	Long: `List recent weight entries, newest first, in your profile's weight
unit. Each entry shows the change against the previous one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		unit, err := resolveWeightUnit()
		if err != nil {
			return err
		}

		entries, err := repo.ListWeightEntries(weightLimit)
		if err != nil {
			return fmt.Errorf("failed to list weight entries: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No weight entries found.")
			return nil
		}

		faint := color.New(color.Faint)
		for i, w := range entries {
			delta := ""
			if i+1 < len(entries) {
				diff := w.WeightKg - entries[i+1].WeightKg
				if unit == models.WeightLb {
					diff = units.KgToLb(w.WeightKg) - units.KgToLb(entries[i+1].WeightKg)
				}
				delta = faint.Sprintf("  (%+.1f)", diff)
			}
			notes := ""
			if w.Notes != nil && *w.Notes != "" {
				notes = faint.Sprintf(" (%s)", truncate(*w.Notes, 30))
			}
			fmt.Printf("%s %s %s%s%s\n",
				faint.Sprint(w.ID.String()[:8]),
				faint.Sprint(w.RecordedAt.Format("2006-01-02 15:04")),
				formatWeight(w.WeightKg, unit),
				delta,
				notes)
		}

		return nil
	},
}

var weightEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a weight entry",
	Long: `Edit a recorded weight entry. Only the given flags change; a bare value
argument updates the weight itself.

Examples:
  ketomate weight edit a1b2c3d4 81.8
  ketomate weight edit a1b2c3d4 --notes "morning, fasted"
  ketomate weight edit a1b2c3d4 --at "2026-08-30 07:00"`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := repo.GetWeightEntry(args[0])
		if err != nil {
			return fmt.Errorf("weight entry not found: %s", args[0])
		}

		unit, err := resolveWeightUnit()
		if err != nil {
			return err
		}

		if len(args) == 2 {
			value, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid value: %s", args[1])
			}
			if value <= 0 {
				return fmt.Errorf("weight must be positive")
			}
			if unit == models.WeightLb {
				value = units.LbToKg(value)
			}
			w.WeightKg = value
		}
		if weightAt != "" {
			t, err := parseTime(weightAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", weightAt)
			}
			w.RecordedAt = t
		}
		if cmd.Flags().Changed("notes") {
			w.WithNotes(weightNotes)
		}

		if err := repo.UpdateWeightEntry(w); err != nil {
			return fmt.Errorf("failed to update weight entry: %w", err)
		}

		color.Green("✓ Updated %s on %s", formatWeight(w.WeightKg, unit), w.RecordedAt.Format("2006-01-02"))
		return nil
	},
}

var weightDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a weight entry",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := repo.GetWeightEntry(args[0])
		if err != nil {
			return fmt.Errorf("weight entry not found: %s", args[0])
		}

		if err := repo.DeleteWeightEntry(args[0]); err != nil {
			return fmt.Errorf("failed to delete weight entry: %w", err)
		}

		unit, _ := resolveWeightUnit()
		color.Yellow("✗ Deleted %s from %s", formatWeight(w.WeightKg, unit), w.RecordedAt.Format("2006-01-02"))
		return nil
	},
}

// resolveWeightUnit picks the display/input unit: the --unit flag when
// given, otherwise the profile preference.
func resolveWeightUnit() (models.WeightUnit, error) {
	switch weightUnit {
	case "kg":
		return models.WeightKg, nil
	case "lb", "lbs":
		return models.WeightLb, nil
	case "":
	default:
		return "", fmt.Errorf("unknown weight unit: %s (use kg or lb)", weightUnit)
	}

	profile, err := repo.GetProfile()
	if err != nil {
		return models.WeightKg, nil
	}
	if profile.WeightUnit == models.WeightLb {
		return models.WeightLb, nil
	}
	return models.WeightKg, nil
}

func formatWeight(kg float64, unit models.WeightUnit) string {
	if unit == models.WeightLb {
		return fmt.Sprintf("%.1f lb", units.KgToLb(kg))
	}
	return fmt.Sprintf("%.1f kg", kg)
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func init() {
	weightAddCmd.Flags().StringVar(&weightUnit, "unit", "", "input unit (kg or lb, default from profile)")
	weightAddCmd.Flags().StringVar(&weightAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	weightAddCmd.Flags().StringVar(&weightNotes, "notes", "", "notes for the entry")

	weightListCmd.Flags().StringVar(&weightUnit, "unit", "", "display unit (kg or lb, default from profile)")
	weightListCmd.Flags().IntVarP(&weightLimit, "limit", "n", 20, "max number of results")

	weightEditCmd.Flags().StringVar(&weightUnit, "unit", "", "input unit (kg or lb, default from profile)")
	weightEditCmd.Flags().StringVar(&weightAt, "at", "", "new timestamp (YYYY-MM-DD HH:MM)")
	weightEditCmd.Flags().StringVar(&weightNotes, "notes", "", "replacement notes")

	weightCmd.AddCommand(weightAddCmd)
	weightCmd.AddCommand(weightListCmd)
	weightCmd.AddCommand(weightEditCmd)
	weightCmd.AddCommand(weightDeleteCmd)
	rootCmd.AddCommand(weightCmd)
}

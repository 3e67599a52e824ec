// ABOUTME: CLI commands for free-form notes.
// ABOUTME: Plain CRUD: add, list, show, edit, delete.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/itstoasti/ketomate/internal/models"
	"github.com/spf13/cobra"
)

var (
	noteContent string
	noteLimit   int
)

var noteCmd = &cobra.Command{
	Use:     "note",
	Aliases: []string{"n"},
	Short:   "Manage notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a note",
	Long: `Add a free-form note.

Examples:
  ketomate note add "electrolytes" -c "magnesium at night helps"
  ketomate note add "restaurant orders"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n := models.NewNote(args[0], noteContent)
		if err := repo.CreateNote(n); err != nil {
			return fmt.Errorf("failed to create note: %w", err)
		}

		color.Green("✓ Added note: %s", n.Title)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(n.ID.String()[:8]))
		return nil
	},
}

var noteListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := repo.ListNotes(noteLimit)
		if err != nil {
			return fmt.Errorf("failed to list notes: %w", err)
		}

		if len(notes) == 0 {
			fmt.Println("No notes found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, n := range notes {
			preview := ""
			if n.Content != "" {
				preview = faint.Sprintf("  %s", truncate(n.Content, 40))
			}
			fmt.Printf("%s %s %s%s\n",
				faint.Sprint(n.ID.String()[:8]),
				faint.Sprint(n.UpdatedAt.Format("2006-01-02")),
				n.Title,
				preview)
		}
		return nil
	},
}

var noteShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := repo.GetNote(args[0])
		if err != nil {
			return fmt.Errorf("note not found: %s", args[0])
		}

		fmt.Printf("%s\n", color.New(color.Bold).Sprint(n.Title))
		color.New(color.Faint).Printf("updated %s\n\n", n.UpdatedAt.Format("2006-01-02 15:04"))
		if n.Content != "" {
			fmt.Println(n.Content)
		}
		return nil
	},
}

var noteEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Replace a note's content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := repo.GetNote(args[0])
		if err != nil {
			return fmt.Errorf("note not found: %s", args[0])
		}

		n.Content = noteContent
		n.UpdatedAt = time.Now()
		if err := repo.UpdateNote(n); err != nil {
			return fmt.Errorf("failed to update note: %w", err)
		}

		color.Green("✓ Updated note: %s", n.Title)
		return nil
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a note",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := repo.GetNote(args[0])
		if err != nil {
			return fmt.Errorf("note not found: %s", args[0])
		}

		if err := repo.DeleteNote(args[0]); err != nil {
			return fmt.Errorf("failed to delete note: %w", err)
		}

		color.Yellow("✗ Deleted note: %s", n.Title)
		return nil
	},
}

func init() {
	noteAddCmd.Flags().StringVarP(&noteContent, "content", "c", "", "note body")
	noteEditCmd.Flags().StringVarP(&noteContent, "content", "c", "", "new note body")
	noteListCmd.Flags().IntVarP(&noteLimit, "limit", "n", 20, "max number of results")

	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteShowCmd)
	noteCmd.AddCommand(noteEditCmd)
	noteCmd.AddCommand(noteDeleteCmd)
	rootCmd.AddCommand(noteCmd)
}

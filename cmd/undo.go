/*
Copyright © 2025 changheonshin
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devlikebear/parafile/internal/rename"
)

// undoCmd represents the undo command
var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Reverse the most recent organize run.",
	Long: `Moves every file of the most recent recorded run back to where it
came from, in reverse execution order, and removes the run from the
history once fully reversed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newHistoryStore()
		if err := store.InitDB(); err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.LatestRun()
		if err != nil {
			fmt.Println("Nothing to undo.")
			return nil
		}

		mover := rename.New(fileSystem, false)
		reversed := 0
		for _, e := range entries {
			if err := mover.Move(e.FinalPath, e.OriginalPath); err != nil {
				return fmt.Errorf("undo stopped after %d of %d files (%s): %w",
					reversed, len(entries), e.FinalPath, err)
			}
			reversed++
			fmt.Printf("  restored %s\n", e.OriginalPath)
		}

		if err := store.DeleteRun(entries[0].RunID); err != nil {
			return err
		}
		fmt.Printf("Reversed %d operations.\n", reversed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(undoCmd)
}

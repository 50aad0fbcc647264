/*
Copyright © 2025 changheonshin
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devlikebear/parafile/internal/history"
)

var historyLimit int

// newHistoryStore builds the operation log store; replaced in tests.
var newHistoryStore = func() *history.Store {
	return history.NewStore(nil)
}

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded organize operations.",
	Long: `Lists the moves recorded by past "parafile organize" runs, newest
first. The most recent run can be reversed with "parafile undo".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newHistoryStore()
		if err := store.InitDB(); err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.List(historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No recorded operations.")
			return nil
		}

		for _, e := range entries {
			fmt.Printf("%s  %s\n    %s -> %s\n",
				e.CreatedAt.Format("2006-01-02 15:04:05"), e.CategoryPath,
				e.OriginalPath, e.FinalPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "maximum number of entries to show")
}

/*
Copyright © 2025 changheonshin
*/
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/devlikebear/parafile/internal/organizer"
	"github.com/devlikebear/parafile/internal/utils"
)

var (
	organizeBackup      bool
	organizeRemoveEmpty bool
	organizeSmartRename bool
	organizeDryRun      bool
	organizeKeywords    bool
	organizeRules       bool
	organizeRecursive   bool
)

// organizeCmd represents the organize command
var organizeCmd = &cobra.Command{
	Use:   "organize <directory>",
	Short: "Classify files and move them into PARA category folders.",
	Long: `Analyzes every candidate file in a directory and applies the
decisions: files are optionally renamed to their suggested names and
moved into localized PARA category folders under the same directory.
Every executed move is recorded so it can be reversed with
"parafile undo".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		dir, err := utils.ExpandHome(args[0])
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("backup") {
			cfg.SetTransient("backup_enabled", organizeBackup)
		}
		if cmd.Flags().Changed("smart-rename") {
			cfg.SetTransient("organization_rules.smart_rename_enabled", organizeSmartRename)
		}

		a, err := buildAnalyzer(cfg, organizeKeywords, organizeRules, organizeRecursive)
		if err != nil {
			return err
		}

		fmt.Printf("Analyzing %s ...\n", dir)
		records, err := a.AnalyzeDirectory(cmd.Context(), dir, func(done, total int, path string) {
			fmt.Printf("  [%d/%d] %s\n", done, total, filepath.Base(path))
		})
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No files to organize.")
			return nil
		}

		if organizeDryRun {
			fmt.Println("\nDry run; planned moves:")
			for _, rec := range records {
				folder := rec.RuleFolder
				name := filepath.Base(rec.Path)
				if folder == "" {
					folder = cfg.CategoryFolder(string(rec.Result.Category), rec.Result.Subcategory)
					if rec.Result.SuggestedName != "" {
						name = rec.Result.SuggestedName + filepath.Ext(rec.Path)
					}
				}
				fmt.Printf("  %s -> %s\n", rec.Path, filepath.Join(dir, folder, name))
			}
			return nil
		}

		store := newHistoryStore()
		var recorder organizer.Recorder
		if err := store.InitDB(); err != nil {
			fmt.Printf("warning: operation history unavailable: %v\n", err)
		} else {
			recorder = store
			defer store.Close()
		}

		engine := organizer.New(fileSystem, cfg, recorder)
		stats, err := engine.OrganizeFiles(cmd.Context(), dir, records, organizeRemoveEmpty, func(percent float64, status string) {
			fmt.Printf("  %3.0f%% %s\n", percent, status)
		})
		if err != nil {
			return err
		}

		fmt.Printf("\nDone: %d processed, %d succeeded, %d failed, %d skipped\n",
			stats.Processed, stats.Succeeded, stats.Failed, stats.Skipped)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(organizeCmd)
	organizeCmd.Flags().BoolVar(&organizeBackup, "backup", false, "create a timestamped backup of the directory before moving anything")
	organizeCmd.Flags().BoolVar(&organizeRemoveEmpty, "remove-empty", false, "remove directories left empty after organizing")
	organizeCmd.Flags().BoolVar(&organizeSmartRename, "smart-rename", true, "rename files to their suggested names")
	organizeCmd.Flags().BoolVar(&organizeDryRun, "dry-run", false, "print planned moves without touching the filesystem")
	organizeCmd.Flags().BoolVar(&organizeKeywords, "keywords", false, "classify with the offline keyword matcher instead of an LLM")
	organizeCmd.Flags().BoolVar(&organizeRules, "rules", false, "apply the rule set before content analysis")
	organizeCmd.Flags().BoolVarP(&organizeRecursive, "recursive", "r", false, "descend into subdirectories")
}

/*
Copyright © 2025 changheonshin
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devlikebear/parafile/internal/ai"
	"github.com/devlikebear/parafile/internal/analyzer"
	"github.com/devlikebear/parafile/internal/common"
	"github.com/devlikebear/parafile/internal/config"
	"github.com/devlikebear/parafile/internal/rules"
	"github.com/devlikebear/parafile/internal/utils"
)

var (
	analyzeKeywords  bool
	analyzeRules     bool
	analyzeRecursive bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <directory>",
	Short: "Classify files in a directory without moving anything.",
	Long: `Walks a directory, classifies every candidate file into a PARA
category and prints the decisions. No file is renamed or moved; use
"parafile organize" to apply the decisions.`,
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

		a, err := buildAnalyzer(cfg, analyzeKeywords, analyzeRules, analyzeRecursive)
		if err != nil {
			return err
		}

		records, err := a.AnalyzeDirectory(cmd.Context(), dir, nil)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No files to analyze.")
			return nil
		}

		minConfidence := cfg.OrganizationRules().MinConfidenceScore
		failed := 0
		for _, rec := range records {
			if rec.RuleFolder != "" {
				fmt.Printf("  %-40s -> %s  (rule)\n", rec.Path, rec.RuleFolder)
				continue
			}
			result := rec.Result
			marker := "  "
			if !result.Success {
				marker = "! "
				failed++
			}
			fmt.Printf("%s%-40s -> %s/%s", marker, rec.Path, result.Category, result.Subcategory)
			if result.SuggestedName != "" {
				fmt.Printf("  (rename: %s)", result.SuggestedName)
			}
			if result.Confidence > 0 {
				fmt.Printf("  [%.0f%%]", result.Confidence*100)
				if result.Confidence < minConfidence {
					fmt.Print(" low")
				}
			}
			fmt.Println()
		}

		fmt.Printf("\n%d files analyzed, %d without classification signal\n", len(records), failed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&analyzeKeywords, "keywords", false, "classify with the offline keyword matcher instead of an LLM")
	analyzeCmd.Flags().BoolVar(&analyzeRules, "rules", false, "apply the rule set before content analysis")
	analyzeCmd.Flags().BoolVarP(&analyzeRecursive, "recursive", "r", false, "descend into subdirectories")
}

// buildAnalyzer assembles the analysis pipeline from config and flags.
func buildAnalyzer(cfg *config.Config, useKeywords, useRules, recursive bool) (*analyzer.Analyzer, error) {
	if !cfg.OrganizationRules().UseContentAnalysis {
		// Content analysis switched off: fall back to the offline matcher.
		useKeywords = true
	}
	opts := analyzer.Options{
		UseKeywords:    useKeywords,
		Recursive:      recursive,
		MaxSampleBytes: int64(cfg.GetInt("max_file_size_mb", 1)) << 20,
	}

	var provider ai.Provider
	if !useKeywords {
		var err error
		provider, err = ai.NewProvider(cfg.ActiveProvider())
		if err != nil {
			return nil, common.NewUserError("run \"parafile config set\" to configure an llm provider", err)
		}
	}

	if useRules {
		path, err := rulesFilePath()
		if err != nil {
			return nil, err
		}
		enabled, err := rules.NewManager(fileSystem, path).Enabled()
		if err != nil {
			return nil, err
		}
		opts.Rules = rules.NewExecutor(fileSystem, enabled)
	}

	return analyzer.New(fileSystem, cfg, provider, opts), nil
}

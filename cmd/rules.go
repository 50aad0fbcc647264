/*
Copyright © 2025 changheonshin
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devlikebear/parafile/internal/rules"
)

var (
	ruleName        string
	ruleDescription string
	ruleType        string
	ruleExtensions  []string
	rulePrefix      string
	rulePattern     string
	ruleAction      string
	ruleTargetDir   string
)

// rulesCmd represents the rules command
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage deterministic organization rules.",
	Long: `Rules route matching files into a fixed folder without asking the
LLM. Each rule pairs a condition (extension, MIME prefix or name
pattern) with a foldering action (by type, by date or by language)
under a target directory. Rules are evaluated in file order; the
first enabled match wins.`,
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all rules.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newRuleManager()
		if err != nil {
			return err
		}
		cfg, err := m.Load()
		if err != nil {
			return err
		}
		if len(cfg.Rules) == 0 {
			fmt.Println("No rules defined. Run \"parafile rules init\" to install the defaults.")
			return nil
		}

		for _, r := range cfg.Rules {
			state := "enabled"
			if !r.Enabled {
				state = "disabled"
			}
			fmt.Printf("%-28s [%s] %s -> %s (%s)\n", r.Name, state, describeCondition(r.Condition), r.Action.TargetDir, describeAction(r.Action.Type))
			if r.Description != "" {
				fmt.Printf("    %s\n", r.Description)
			}
		}
		return nil
	},
}

var rulesInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Install the default rule set.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newRuleManager()
		if err != nil {
			return err
		}
		if err := m.Init(); err != nil {
			return err
		}
		fmt.Printf("Default rules written to %s\n", m.Path())
		return nil
	},
}

var rulesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a rule.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newRuleManager()
		if err != nil {
			return err
		}

		rule := rules.Rule{
			Name:        ruleName,
			Description: ruleDescription,
			Enabled:     true,
			Condition: rules.Condition{
				Type:       rules.ConditionType(ruleType),
				Extensions: ruleExtensions,
				Prefix:     rulePrefix,
				Pattern:    rulePattern,
			},
			Action: rules.Action{
				Type:      rules.ActionType(ruleAction),
				TargetDir: ruleTargetDir,
			},
		}
		if err := m.Add(rule); err != nil {
			return err
		}
		fmt.Printf("Added rule %q\n", rule.Name)
		return nil
	},
}

var rulesEnableCmd = &cobra.Command{
	Use:   "enable <name>",
	Short: "Enable a rule.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleRule(args[0], true)
	},
}

var rulesDisableCmd = &cobra.Command{
	Use:   "disable <name>",
	Short: "Disable a rule.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleRule(args[0], false)
	},
}

func toggleRule(name string, enabled bool) error {
	m, err := newRuleManager()
	if err != nil {
		return err
	}
	if err := m.SetEnabled(name, enabled); err != nil {
		return err
	}
	state := "enabled"
	if !enabled {
		state = "disabled"
	}
	fmt.Printf("Rule %q %s\n", name, state)
	return nil
}

func newRuleManager() (*rules.Manager, error) {
	path, err := rulesFilePath()
	if err != nil {
		return nil, err
	}
	return rules.NewManager(fileSystem, path), nil
}

func describeAction(t rules.ActionType) string {
	switch t {
	case rules.ActionByDate:
		return "by date"
	case rules.ActionByLanguage:
		return "by language"
	default:
		return "by type"
	}
}

func describeCondition(c rules.Condition) string {
	switch c.Type {
	case rules.ConditionExtension:
		return "ext:" + strings.Join(c.Extensions, ",")
	case rules.ConditionMimePrefix:
		return "mime:" + c.Prefix
	case rules.ConditionNamePattern:
		return "name:" + c.Pattern
	default:
		return string(c.Type)
	}
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesListCmd, rulesInitCmd, rulesAddCmd, rulesEnableCmd, rulesDisableCmd)

	rulesAddCmd.Flags().StringVar(&ruleName, "name", "", "rule name (required)")
	rulesAddCmd.Flags().StringVar(&ruleDescription, "description", "", "rule description")
	rulesAddCmd.Flags().StringVar(&ruleType, "type", "extension", "condition type (extension|mime_prefix|name_pattern)")
	rulesAddCmd.Flags().StringSliceVar(&ruleExtensions, "extensions", nil, "extensions for the extension condition")
	rulesAddCmd.Flags().StringVar(&rulePrefix, "prefix", "", "MIME prefix for the mime_prefix condition")
	rulesAddCmd.Flags().StringVar(&rulePattern, "pattern", "", "regular expression for the name_pattern condition")
	rulesAddCmd.Flags().StringVar(&ruleAction, "action", "by_type", "foldering action (by_type|by_date|by_language)")
	rulesAddCmd.Flags().StringVar(&ruleTargetDir, "target-dir", "", "target directory (required)")
	_ = rulesAddCmd.MarkFlagRequired("name")
	_ = rulesAddCmd.MarkFlagRequired("target-dir")
}

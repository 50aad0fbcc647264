/*
Copyright © 2025 changheonshin
*/
package cmd

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/devlikebear/parafile/internal/common"
	"github.com/devlikebear/parafile/internal/config"
	"github.com/devlikebear/parafile/internal/utils"
)

// fileSystem is the filesystem abstraction, defaults to osFs
var fileSystem = afero.NewOsFs()

var (
	configPathFlag string
	logLevelFlag   string
	logFormatFlag  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "parafile",
	Short: "parafile organizes your files with the PARA method, assisted by an LLM.",
	Long: `parafile is a command-line tool that classifies files with a language
model (or deterministic rules), renames them safely and moves them into
a PARA folder structure (Projects/Areas/Resources/Archives), with undo
support and a persistent operation history.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		switch logLevelFlag {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
		common.SetupLogger(level, logFormatFlag)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "config file (default ~/.parafile/config.json)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "text", "log format (text|json)")
}

// configFilePath resolves the config file location, honoring --config.
func configFilePath() (string, error) {
	if configPathFlag != "" {
		return utils.ExpandHome(configPathFlag)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".parafile", config.DefaultFileName), nil
}

// loadConfig opens (or creates) the configuration document.
func loadConfig() (*config.Config, error) {
	path, err := configFilePath()
	if err != nil {
		return nil, err
	}
	return config.New(fileSystem, path)
}

// rulesFilePath is where the rule set lives, next to the config file.
func rulesFilePath() (string, error) {
	path, err := configFilePath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(path), "rules.yml"), nil
}

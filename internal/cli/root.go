// Package cli defines the command-line interface for calcctl.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/calcctl/internal/logging"
)

const (
	// defaultConfigPath is the default path to the calculator configuration file.
	defaultConfigPath = "calc.yaml"
)

// Options stores global CLI options shared between commands.
type Options struct {
	ConfigPath string
	Vars       string
	LogLevel   logging.Level
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	rootOpts := &Options{
		ConfigPath: defaultConfigPath,
		LogLevel:   logging.LevelInfo,
	}

	rootCmd := newRootCommand(rootOpts, logger)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "calcctl",
		Short:         "calcctl is a keypad calculator for the terminal",
		Long:          "calcctl evaluates keypad input (digits, operators, equals, clear, sign, percent) strictly left to right, the way a pocket calculator does.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			envVars := baseEnv{}
			if err := parseEnv(&envVars); err != nil {
				return err
			}

			levelValue, levelSource := cmd.Flag("log-level").Value.String(), "--log-level"
			if !cmd.Flags().Changed("log-level") && envPresent("CALCCTL_LOG_LEVEL") {
				levelValue, levelSource = envVars.LogLevel, "CALCCTL_LOG_LEVEL"
			}
			if !cmd.Flags().Changed("config") && envPresent("CALCCTL_CONFIG") {
				opts.ConfigPath = envVars.ConfigPath
			}
			if !cmd.Flags().Changed("vars") && envPresent("CALCCTL_VARS") {
				opts.Vars = envVars.Vars
			}

			level, err := logging.ParseLevel(levelValue)
			if err != nil {
				return fmt.Errorf("%s: %w", levelSource, err)
			}
			opts.LogLevel = level
			logger = logging.NewLogger(cmd.ErrOrStderr(), level)
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			logger.Debug("logger initialized", "level", level.String())
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", defaultConfigPath, "Path to calc.yaml configuration file")
	cmd.PersistentFlags().StringVar(&opts.Vars, "vars", "", "Template variables for calc.yaml in k=v,k2=v2 format")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newEvalCommand(opts),
		newReplCommand(opts),
		newKeysCommand(opts),
	)

	return cmd
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}

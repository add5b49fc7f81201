package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/calcctl/internal/calc"
	"github.com/codex-k8s/calcctl/internal/config"
	"github.com/codex-k8s/calcctl/internal/env"
	"github.com/codex-k8s/calcctl/internal/keypad"
	"github.com/codex-k8s/calcctl/internal/logging"
	"github.com/codex-k8s/calcctl/internal/session"
)

// sessionFlags holds output flags shared by eval and repl.
type sessionFlags struct {
	steps bool
	raw   bool
	trace bool
}

func addSessionFlags(cmd *cobra.Command, flags *sessionFlags) {
	cmd.Flags().BoolVar(&flags.steps, "steps", false, "Print the display after every key")
	cmd.Flags().BoolVar(&flags.raw, "raw", false, "Print the stored display without scientific shortening")
	cmd.Flags().BoolVar(&flags.trace, "trace", false, "Mirror calculator output into the log")
}

// resolveSessionFlags applies CALCCTL_* defaults to flags that were not set explicitly.
func resolveSessionFlags(cmd *cobra.Command, flags *sessionFlags) error {
	envVars := sessionEnv{}
	if err := parseEnv(&envVars); err != nil {
		return err
	}
	if !cmd.Flags().Changed("steps") && envPresent("CALCCTL_STEPS") {
		flags.steps = envVars.Steps
	}
	if !cmd.Flags().Changed("raw") && envPresent("CALCCTL_RAW") {
		flags.raw = envVars.Raw
	}
	if !cmd.Flags().Changed("trace") && envPresent("CALCCTL_TRACE") {
		flags.trace = envVars.Trace
	}
	return nil
}

// loadConfigFromOpts loads calc.yaml. The default path may be absent; an explicit one may not.
func loadConfigFromOpts(opts *Options) (*config.Config, error) {
	userVars, err := env.ParseInlineVars(opts.Vars)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(opts.ConfigPath, config.LoadOptions{
		UserVars: userVars,
		Optional: opts.ConfigPath == defaultConfigPath,
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// buildKeymap extends the default keymap with aliases from cfg.
func buildKeymap(cfg *config.Config) (keypad.Keymap, error) {
	km, err := keypad.DefaultKeymap().With(cfg.Keys)
	if err != nil {
		return keypad.Keymap{}, fmt.Errorf("config keys: %w", err)
	}
	return km, nil
}

// newSessionFromCmd wires config, keymap, output and logger into a calculator session.
func newSessionFromCmd(cmd *cobra.Command, opts *Options, flags *sessionFlags, prompt bool) (*session.Session, error) {
	logger := LoggerFromContext(cmd.Context())

	if err := resolveSessionFlags(cmd, flags); err != nil {
		return nil, err
	}

	cfg, err := loadConfigFromOpts(opts)
	if err != nil {
		return nil, err
	}
	km, err := buildKeymap(cfg)
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	if flags.trace {
		if opts.LogLevel > logging.LevelInfo {
			logger.Warn("--trace logs at info and is hidden at this log level", "logLevel", opts.LogLevel.String())
		}
		out = io.MultiWriter(out, logging.NewWriter(logger, "display"))
	}

	sessOpts := session.Options{
		Steps:     flags.steps,
		Raw:       flags.raw,
		Formatter: cfg.Display.Formatter(),
	}
	if prompt {
		sessOpts.Prompt = cfg.Prompt
	}

	logger.Debug("session configured",
		"config", opts.ConfigPath,
		"logLevel", opts.LogLevel.String(),
		"maxLength", sessOpts.Formatter.MaxLength,
		"exponentDigits", sessOpts.Formatter.Digits,
		"aliases", len(cfg.Keys),
	)
	return session.New(calc.New(), km, out, logger, sessOpts), nil
}

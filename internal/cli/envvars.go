package cli

import (
	"os"
	"strings"

	envparse "github.com/caarlos0/env/v11"
)

// baseEnv defines root CLI defaults sourced from CALCCTL_* env vars.
type baseEnv struct {
	// ConfigPath is the calc.yaml path from CALCCTL_CONFIG.
	ConfigPath string `env:"CALCCTL_CONFIG"`
	// LogLevel is the logging level from CALCCTL_LOG_LEVEL.
	LogLevel string `env:"CALCCTL_LOG_LEVEL"`
	// Vars is a k=v,k2=v2 list from CALCCTL_VARS.
	Vars string `env:"CALCCTL_VARS"`
}

// sessionEnv captures output toggles shared by eval and repl.
type sessionEnv struct {
	// Steps prints the display after every key, from CALCCTL_STEPS.
	Steps bool `env:"CALCCTL_STEPS"`
	// Raw disables display formatting, from CALCCTL_RAW.
	Raw bool `env:"CALCCTL_RAW"`
	// Trace mirrors output into the log, from CALCCTL_TRACE.
	Trace bool `env:"CALCCTL_TRACE"`
}

// parseEnv fills target from CALCCTL_* env vars via caarlos0/env.
func parseEnv(target interface{}) error {
	return envparse.Parse(target)
}

// envPresent reports whether a non-empty env var exists.
func envPresent(key string) bool {
	val, ok := os.LookupEnv(key)
	if !ok {
		return false
	}
	return strings.TrimSpace(val) != ""
}

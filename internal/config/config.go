// Package config contains the loader and strongly typed model for calc.yaml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/codex-k8s/calcctl/internal/calc"
	"github.com/codex-k8s/calcctl/internal/env"
)

// Config describes calculator presentation settings read from calc.yaml after template rendering.
type Config struct {
	// EnvFiles lists .env files to load before rendering.
	EnvFiles []string `yaml:"envFiles,omitempty"`
	// Display configures how long values are shortened.
	Display DisplayConfig `yaml:"display,omitempty"`
	// Keys maps extra aliases to canonical key names (e.g. "plus": "add").
	Keys map[string]string `yaml:"keys,omitempty"`
	// Prompt is written before each line in the repl.
	Prompt string `yaml:"prompt,omitempty"`
}

// DisplayConfig holds display formatting settings.
type DisplayConfig struct {
	// MaxLength is the longest display shown verbatim. Non-positive values use the default of 9.
	MaxLength int `yaml:"maxLength,omitempty"`
	// ExponentDigits is the number of mantissa fraction digits in scientific notation.
	// Unset or negative values use the default of 3.
	ExponentDigits *int `yaml:"exponentDigits,omitempty"`
}

// Formatter returns the calc.Formatter described by the display settings.
func (d DisplayConfig) Formatter() calc.Formatter {
	f := calc.DefaultFormatter
	if d.MaxLength > 0 {
		f.MaxLength = d.MaxLength
	}
	if d.ExponentDigits != nil && *d.ExponentDigits >= 0 {
		f.Digits = *d.ExponentDigits
	}
	return f
}

// Default returns the configuration used when no calc.yaml exists.
func Default() *Config {
	return &Config{Prompt: "> "}
}

// LoadOptions describes parameters that influence template rendering of calc.yaml.
type LoadOptions struct {
	// UserVars are inline variables for template rendering; they override env files and OS env.
	UserVars env.Vars
	// Optional makes a missing file yield Default instead of an error.
	Optional bool
}

// TemplateContext represents the data exposed to Go-templates when rendering calc.yaml.
type TemplateContext struct {
	// ConfigDir is the directory containing calc.yaml.
	ConfigDir string
	// Now is the timestamp captured for template rendering.
	Now time.Time
	// UserVars contains inline user variables.
	UserVars env.Vars
	// EnvMap merges OS env, envFiles, and user variables.
	EnvMap env.Vars
}

// rawHeader is a minimal struct used to extract top-level fields before templating.
type rawHeader struct {
	EnvFiles []string `yaml:"envFiles"`
}

// LoadAndRender reads calc.yaml, loads envFiles and user vars, and returns rendered YAML bytes
// together with the template context that was used.
func LoadAndRender(path string, opts LoadOptions) ([]byte, TemplateContext, error) {
	var zeroCtx TemplateContext

	if path == "" {
		return nil, zeroCtx, fmt.Errorf("config path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, zeroCtx, fmt.Errorf("resolve config path: %w", err)
	}

	rawBytes, err := os.ReadFile(absPath)
	if err != nil {
		return nil, zeroCtx, fmt.Errorf("read config %q: %w", absPath, err)
	}

	baseDir := filepath.Dir(absPath)
	ctx := TemplateContext{
		ConfigDir: baseDir,
		Now:       time.Now().UTC(),
		UserVars:  opts.UserVars,
		EnvMap:    env.Merge(env.FromOS(), opts.UserVars),
	}

	// envFiles may itself be templated, so the header is read from a first rendering
	// that only sees the OS environment and user vars.
	headerBytes, err := RenderTemplate("calc.yaml", rawBytes, ctx)
	if err != nil {
		return nil, zeroCtx, err
	}
	var header rawHeader
	if err := yaml.Unmarshal(headerBytes, &header); err != nil {
		return nil, zeroCtx, fmt.Errorf("parse top-level config fields: %w", err)
	}

	envFileVars, err := env.LoadEnvFiles(baseDir, header.EnvFiles)
	if err != nil {
		return nil, zeroCtx, err
	}
	ctx.EnvMap = env.Merge(env.FromOS(), envFileVars, opts.UserVars)

	rendered, err := RenderTemplate("calc.yaml", rawBytes, ctx)
	if err != nil {
		return nil, zeroCtx, err
	}
	return rendered, ctx, nil
}

// Load loads, templates and parses calc.yaml into Config.
func Load(path string, opts LoadOptions) (*Config, error) {
	if opts.Optional && path != "" {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
	}

	rendered, _, err := LoadAndRender(path, opts)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(rendered, cfg); err != nil {
		return nil, fmt.Errorf("parse rendered calc.yaml: %w", err)
	}
	return cfg, nil
}

// RenderTemplate renders raw as a Go template with the calc.yaml function map.
func RenderTemplate(name string, raw []byte, ctx TemplateContext) ([]byte, error) {
	tmpl, err := template.New(name).Funcs(buildFuncMap(ctx)).Option("missingkey=zero").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse template %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return nil, fmt.Errorf("render template %q: %w", name, err)
	}
	return buf.Bytes(), nil
}

// buildFuncMap returns template helpers bound to ctx.
func buildFuncMap(ctx TemplateContext) template.FuncMap {
	return template.FuncMap{
		"default": funcDef,
		"envOr":   funcEnvOr(ctx.EnvMap),
		"ternary": funcTernary,
		"now":     func() time.Time { return ctx.Now },
	}
}

// funcDef returns def when value is empty or whitespace, otherwise value.
func funcDef(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

// funcEnvOr returns a function that looks up a key in envMap and falls back to def.
func funcEnvOr(envMap env.Vars) func(key, def string) string {
	return func(key, def string) string {
		if v, ok := envMap[key]; ok && v != "" {
			return v
		}
		return def
	}
}

// funcTernary returns a when cond is true, otherwise b.
func funcTernary(cond bool, a, b any) any {
	if cond {
		return a
	}
	return b
}

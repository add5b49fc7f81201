// Package session feeds lines of key tokens into a calculator engine and prints its display.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/codex-k8s/calcctl/internal/calc"
	"github.com/codex-k8s/calcctl/internal/keypad"
)

// Options controls how a session reports the display.
type Options struct {
	// Steps prints the display after every key instead of once per line.
	Steps bool
	// Raw prints the stored display instead of the formatted one.
	Raw bool
	// Formatter renders the display when Raw is unset.
	Formatter calc.Formatter
	// Prompt is written before each line read by Run.
	Prompt string
}

// Session owns one engine for the lifetime of a calculator session.
type Session struct {
	engine *calc.Engine
	keymap keypad.Keymap
	out    io.Writer
	logger *slog.Logger
	opts   Options
}

// New constructs a Session. A nil engine starts a fresh one.
func New(engine *calc.Engine, keymap keypad.Keymap, out io.Writer, logger *slog.Logger, opts Options) *Session {
	if engine == nil {
		engine = calc.New()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if out == nil {
		out = io.Discard
	}
	if opts.Formatter == (calc.Formatter{}) {
		opts.Formatter = calc.DefaultFormatter
	}
	return &Session{
		engine: engine,
		keymap: keymap,
		out:    out,
		logger: logger,
		opts:   opts,
	}
}

// Engine returns the engine driven by the session.
func (s *Session) Engine() *calc.Engine {
	return s.engine
}

// Display returns the display as the session prints it.
func (s *Session) Display() string {
	if s.opts.Raw {
		return s.engine.Display()
	}
	return s.opts.Formatter.Format(s.engine.Display())
}

// Feed tokenizes line and applies its keys in order. The line is rejected as a whole
// when any token is unknown, leaving the engine untouched.
func (s *Session) Feed(line string) error {
	keys, err := s.keymap.Tokenize(line)
	if err != nil {
		return err
	}
	return s.apply(keys)
}

func (s *Session) apply(keys []keypad.Key) error {
	if len(keys) == 0 {
		return nil
	}

	for _, k := range keys {
		keypad.Apply(s.engine, k)
		s.logger.Debug("key applied",
			"key", k.Name(),
			"display", s.engine.Display(),
			"phase", s.engine.Phase().String(),
		)
		if s.opts.Steps {
			if _, err := fmt.Fprintf(s.out, "%s\t%s\n", k.Name(), s.Display()); err != nil {
				return fmt.Errorf("write display: %w", err)
			}
		}
	}

	if !s.opts.Steps {
		if _, err := fmt.Fprintln(s.out, s.Display()); err != nil {
			return fmt.Errorf("write display: %w", err)
		}
	}
	return nil
}

// Run reads lines from r until EOF, a quit/exit line, or ctx cancellation.
// Blank lines and lines starting with '#' are skipped. Lines that fail to tokenize are logged and dropped.
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.opts.Prompt != "" {
			if _, err := io.WriteString(s.out, s.opts.Prompt); err != nil {
				return fmt.Errorf("write prompt: %w", err)
			}
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case line == "quit" || line == "exit":
			s.logger.Debug("session closed by user")
			return nil
		}

		keys, err := s.keymap.Tokenize(line)
		if err != nil {
			s.logger.Warn("input line ignored", "line", line, "error", err)
			continue
		}
		if err := s.apply(keys); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

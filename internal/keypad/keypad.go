// Package keypad maps textual key tokens to calculator inputs and dispatches them to an engine.
package keypad

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/shlex"

	"github.com/codex-k8s/calcctl/internal/calc"
)

// Kind identifies a calculator input event.
type Kind int

const (
	// Digit enters one digit; Key.Digit carries which one.
	Digit Kind = iota
	// Decimal enters a decimal point.
	Decimal
	// Operator presses a binary operator; Key.Op carries which one.
	Operator
	// Equals completes the current chain.
	Equals
	// Clear resets the engine.
	Clear
	// Sign toggles the sign of the display.
	Sign
	// Percent divides the display by 100.
	Percent
)

// Key is a single input event.
type Key struct {
	Kind  Kind
	Digit rune
	Op    calc.Operator
}

// Name returns the canonical name of the key, as accepted in keymap overrides.
func (k Key) Name() string {
	switch k.Kind {
	case Digit:
		return string(k.Digit)
	case Decimal:
		return "decimal"
	case Operator:
		switch k.Op {
		case calc.OpAdd:
			return "add"
		case calc.OpSub:
			return "sub"
		case calc.OpMul:
			return "mul"
		case calc.OpDiv:
			return "div"
		}
	case Equals:
		return "equals"
	case Clear:
		return "clear"
	case Sign:
		return "sign"
	case Percent:
		return "percent"
	}
	return "unknown"
}

// String implements fmt.Stringer.
func (k Key) String() string {
	return k.Name()
}

// canonical lists every key by its canonical name.
var canonical = func() map[string]Key {
	keys := map[string]Key{
		"decimal": {Kind: Decimal},
		"add":     {Kind: Operator, Op: calc.OpAdd},
		"sub":     {Kind: Operator, Op: calc.OpSub},
		"mul":     {Kind: Operator, Op: calc.OpMul},
		"div":     {Kind: Operator, Op: calc.OpDiv},
		"equals":  {Kind: Equals},
		"clear":   {Kind: Clear},
		"sign":    {Kind: Sign},
		"percent": {Kind: Percent},
	}
	for d := '0'; d <= '9'; d++ {
		keys[string(d)] = Key{Kind: Digit, Digit: d}
	}
	return keys
}()

// defaultAliases maps the usual keypad symbols to canonical key names.
var defaultAliases = map[string]string{
	".":   "decimal",
	",":   "decimal",
	"+":   "add",
	"-":   "sub",
	"−":   "sub",
	"*":   "mul",
	"x":   "mul",
	"×":   "mul",
	"/":   "div",
	"÷":   "div",
	"=":   "equals",
	"c":   "clear",
	"C":   "clear",
	"ac":  "clear",
	"AC":  "clear",
	"+/-": "sign",
	"±":   "sign",
	"neg": "sign",
	"%":   "percent",
}

// UnknownKeyError is returned when a keymap override names a key that does not exist.
type UnknownKeyError struct {
	// Alias is the override alias.
	Alias string
	// Name is the unknown canonical key name.
	Name string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("alias %q refers to unknown key %q", e.Alias, e.Name)
}

// UnknownTokenError is returned when a token cannot be mapped to any key.
type UnknownTokenError struct {
	// Token is the offending field of the input line.
	Token string
	// Rune is the first character of Token without a binding.
	Rune rune
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("unknown key %q in token %q", e.Rune, e.Token)
}

// IsUnknownTokenError reports whether err is caused by an unmapped token.
func IsUnknownTokenError(err error) bool {
	var target *UnknownTokenError
	return errors.As(err, &target)
}

// Keymap resolves aliases to keys.
type Keymap struct {
	aliases map[string]Key
}

// DefaultKeymap returns the built-in bindings: canonical names plus the usual symbols.
func DefaultKeymap() Keymap {
	km := Keymap{aliases: make(map[string]Key, len(canonical)+len(defaultAliases))}
	for name, k := range canonical {
		km.aliases[name] = k
	}
	for alias, name := range defaultAliases {
		km.aliases[alias] = canonical[name]
	}
	return km
}

// With returns a copy of km extended by overrides (alias -> canonical key name).
func (km Keymap) With(overrides map[string]string) (Keymap, error) {
	out := Keymap{aliases: make(map[string]Key, len(km.aliases)+len(overrides))}
	for alias, k := range km.aliases {
		out.aliases[alias] = k
	}
	for alias, name := range overrides {
		alias = strings.TrimSpace(alias)
		if alias == "" {
			return Keymap{}, fmt.Errorf("empty alias for key %q", name)
		}
		k, ok := canonical[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return Keymap{}, &UnknownKeyError{Alias: alias, Name: name}
		}
		out.aliases[alias] = k
	}
	return out, nil
}

// Lookup returns the key bound to alias.
func (km Keymap) Lookup(alias string) (Key, bool) {
	k, ok := km.aliases[alias]
	return k, ok
}

// Binding is a single alias -> key pair.
type Binding struct {
	Alias string
	Key   Key
}

// Bindings returns every alias sorted by key name, then alias.
func (km Keymap) Bindings() []Binding {
	out := make([]Binding, 0, len(km.aliases))
	for alias, k := range km.aliases {
		out = append(out, Binding{Alias: alias, Key: k})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key.Name() != out[j].Key.Name() {
			return out[i].Key.Name() < out[j].Key.Name()
		}
		return out[i].Alias < out[j].Alias
	})
	return out
}

// Tokenize splits line into shell-style fields and resolves them to keys.
// A field bound as a whole alias yields one key; any other field is resolved rune by rune.
func (km Keymap) Tokenize(line string) ([]Key, error) {
	fields, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("split input line: %w", err)
	}

	var keys []Key
	for _, field := range fields {
		if k, ok := km.aliases[field]; ok {
			keys = append(keys, k)
			continue
		}
		for _, r := range field {
			k, ok := km.aliases[string(r)]
			if !ok {
				return nil, &UnknownTokenError{Token: field, Rune: r}
			}
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// Apply dispatches k to the matching engine handler.
func Apply(e *calc.Engine, k Key) {
	switch k.Kind {
	case Digit:
		e.InputDigit(k.Digit)
	case Decimal:
		e.InputDecimalPoint()
	case Operator:
		e.InputOperator(k.Op)
	case Equals:
		e.InputEquals()
	case Clear:
		e.Reset()
	case Sign:
		e.ToggleSign()
	case Percent:
		e.InputPercent()
	}
}

package keypad

import (
	"errors"
	"testing"

	"github.com/codex-k8s/calcctl/internal/calc"
)

func names(keys []Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.Name()
	}
	return out
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTokenize(t *testing.T) {
	km := DefaultKeymap()
	cases := []struct {
		line string
		want []string
	}{
		{"3 + 4 x 2 =", []string{"3", "add", "4", "mul", "2", "equals"}},
		{"12.5+3", []string{"1", "2", "decimal", "5", "add", "3"}},
		{"7 +/- %", []string{"7", "sign", "percent"}},
		{"AC 9 ÷ 3 =", []string{"clear", "9", "div", "3", "equals"}},
		{"mul div equals", []string{"mul", "div", "equals"}},
		{"  ", nil},
		{"5 0 # trailing comment", []string{"5", "0"}},
	}
	for _, tc := range cases {
		keys, err := km.Tokenize(tc.line)
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", tc.line, err)
		}
		if got := names(keys); !equalNames(got, tc.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}

func TestTokenizeUnknown(t *testing.T) {
	_, err := DefaultKeymap().Tokenize("3 + 4q")
	if !IsUnknownTokenError(err) {
		t.Fatalf("expected unknown token error, got %v", err)
	}
	var tokErr *UnknownTokenError
	if !errors.As(err, &tokErr) || tokErr.Token != "4q" || tokErr.Rune != 'q' {
		t.Fatalf("unexpected error details: %+v", tokErr)
	}
}

func TestTokenizeUnbalancedQuote(t *testing.T) {
	if _, err := DefaultKeymap().Tokenize(`3 "+`); err == nil {
		t.Fatal("expected split error for unbalanced quote")
	}
}

func TestWithOverrides(t *testing.T) {
	km, err := DefaultKeymap().With(map[string]string{"plus": "add", "k": "Clear"})
	if err != nil {
		t.Fatalf("With: %v", err)
	}
	keys, err := km.Tokenize("2 plus 2 = k")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []string{"2", "add", "2", "equals", "clear"}
	if got := names(keys); !equalNames(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	if _, ok := DefaultKeymap().Lookup("plus"); ok {
		t.Fatal("With must not modify the receiver")
	}
}

func TestWithUnknownKey(t *testing.T) {
	_, err := DefaultKeymap().With(map[string]string{"sqrt": "root"})
	var keyErr *UnknownKeyError
	if !errors.As(err, &keyErr) || keyErr.Name != "root" {
		t.Fatalf("expected UnknownKeyError, got %v", err)
	}

	if _, err := DefaultKeymap().With(map[string]string{" ": "add"}); err == nil {
		t.Fatal("expected error for empty alias")
	}
}

func TestBindingsSorted(t *testing.T) {
	b := DefaultKeymap().Bindings()
	if len(b) == 0 {
		t.Fatal("no bindings")
	}
	for i := 1; i < len(b); i++ {
		prev, cur := b[i-1], b[i]
		if prev.Key.Name() > cur.Key.Name() ||
			(prev.Key.Name() == cur.Key.Name() && prev.Alias > cur.Alias) {
			t.Fatalf("bindings out of order at %d: %v before %v", i, prev, cur)
		}
	}
}

func TestApplyDrivesEngine(t *testing.T) {
	km := DefaultKeymap()
	cases := []struct {
		line string
		want string
	}{
		{"3 + 4 x 2 =", "14"},
		{"3 x 4 + 2 =", "14"},
		{"5 / 0 =", "0"},
		{"50 %", "0.5"},
		{"7 + 3 = x 2 =", "20"},
		{"1 2 +/- +/-", "12"},
		{"9 + 1 AC", "0"},
		{". .", "0."},
	}
	for _, tc := range cases {
		keys, err := km.Tokenize(tc.line)
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", tc.line, err)
		}
		e := calc.New()
		for _, k := range keys {
			Apply(e, k)
		}
		if e.Display() != tc.want {
			t.Errorf("%q: display = %q, want %q", tc.line, e.Display(), tc.want)
		}
	}
}

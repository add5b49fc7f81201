package env

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestMergeLaterWins(t *testing.T) {
	got := Merge(Vars{"A": "1", "B": "1"}, nil, Vars{"B": "2"})
	if got["A"] != "1" || got["B"] != "2" || len(got) != 2 {
		t.Fatalf("unexpected merge result %v", got)
	}
}

func TestFromOS(t *testing.T) {
	t.Setenv("CALCCTL_TEST_FROM_OS", "on")
	if FromOS()["CALCCTL_TEST_FROM_OS"] != "on" {
		t.Fatal("process env var not picked up")
	}
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.env", "PROMPT=calc>\nDIGITS=3\n# comment\n")
	writeFile(t, dir, "local.env", "DIGITS=5\n")

	vars, err := LoadEnvFiles(dir, []string{"base.env", "", "local.env"})
	if err != nil {
		t.Fatalf("LoadEnvFiles: %v", err)
	}
	if vars["PROMPT"] != "calc>" || vars["DIGITS"] != "5" {
		t.Fatalf("unexpected vars %v", vars)
	}
}

func TestLoadEnvFilesMissing(t *testing.T) {
	if _, err := LoadEnvFiles(t.TempDir(), []string{"nope.env"}); err == nil {
		t.Fatal("expected error for missing env file")
	}
}

func TestParseInlineVars(t *testing.T) {
	vars, err := ParseInlineVars(" A=1, B = two ,")
	if err != nil {
		t.Fatalf("ParseInlineVars: %v", err)
	}
	if vars["A"] != "1" || vars["B"] != "two" || len(vars) != 2 {
		t.Fatalf("unexpected vars %v", vars)
	}

	for _, bad := range []string{"A", "=1"} {
		if _, err := ParseInlineVars(bad); err == nil {
			t.Errorf("ParseInlineVars(%q): expected error", bad)
		}
	}
}

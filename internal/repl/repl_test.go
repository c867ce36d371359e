package repl

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/voltage-lang/voltage/internal/config"
	"github.com/voltage-lang/voltage/internal/history"
)

func runSession(t *testing.T, lines ...string) string {
	t.Helper()
	cfg := config.Default()
	cfg.Color = false
	cfg.HistoryFile = ""

	var out bytes.Buffer
	r := New(cfg, strings.NewReader(strings.Join(lines, "\n")), &out)
	if err := r.Run(); err != nil {
		t.Fatalf("session failed: %v", err)
	}
	return out.String()
}

func TestGlobalsPersistAcrossSnippets(t *testing.T) {
	out := runSession(t,
		`let x = 40;`,
		`x + 2;`,
	)
	if !strings.Contains(out, "42") {
		t.Errorf("result not echoed:\n%s", out)
	}
}

func TestFunctionsCarryForward(t *testing.T) {
	out := runSession(t,
		`fn double(n) { let result = n * 2; }`,
		`double(21);`,
		`result;`,
	)
	if !strings.Contains(out, "42") {
		t.Errorf("carried-forward function not callable:\n%s", out)
	}
}

func TestBrokenSnippetDoesNotPoisonSession(t *testing.T) {
	out := runSession(t,
		`let x = 1;`,
		`let y = ;`,
		`x;`,
	)
	if !strings.Contains(out, "error P") {
		t.Errorf("parse error not reported:\n%s", out)
	}
	// the session keeps working after the failure
	if !strings.Contains(out, "1") {
		t.Errorf("session state lost after broken snippet:\n%s", out)
	}
}

func TestRuntimeErrorIsReported(t *testing.T) {
	out := runSession(t, `1 / 0;`)
	if !strings.Contains(out, "DivisionByZero") {
		t.Errorf("runtime error not reported:\n%s", out)
	}
}

func TestExitCommandStopsSession(t *testing.T) {
	out := runSession(t,
		`exit`,
		`puts("never");`,
	)
	if strings.Contains(out, "never") {
		t.Errorf("input after exit was evaluated:\n%s", out)
	}
}

func TestSnippetsAreRecordedInHistory(t *testing.T) {
	cfg := config.Default()
	cfg.Color = false
	cfg.HistoryFile = filepath.Join(t.TempDir(), "history.db")

	var out bytes.Buffer
	r := New(cfg, strings.NewReader("let x = 1;\nbroken(\n"), &out)
	if err := r.Run(); err != nil {
		t.Fatalf("session failed: %v", err)
	}

	store, err := history.Open(cfg.HistoryFile)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	defer store.Close()

	entries, err := store.Recent(10)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("wrong entry count. got=%d", len(entries))
	}
	okBySource := make(map[string]bool)
	for _, e := range entries {
		okBySource[e.Source] = e.OK
	}
	if !okBySource["let x = 1;"] {
		t.Errorf("accepted snippet not marked ok")
	}
	if okBySource["broken("] {
		t.Errorf("rejected snippet marked ok")
	}
}

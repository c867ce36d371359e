package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if cfg.Prompt != ">> " {
		t.Errorf("wrong default prompt. got=%q", cfg.Prompt)
	}
	if !cfg.Color {
		t.Errorf("color should default to on")
	}
}

func TestLoadReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voltage.yaml")
	content := "prompt: \"v> \"\ncolor: false\nshow_disasm: true\nhistory_file: \"\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Prompt != "v> " {
		t.Errorf("wrong prompt. got=%q", cfg.Prompt)
	}
	if cfg.Color {
		t.Errorf("color should be off")
	}
	if !cfg.ShowDisasm {
		t.Errorf("show_disasm should be on")
	}
	if cfg.HistoryFile != "" {
		t.Errorf("history_file should be cleared. got=%q", cfg.HistoryFile)
	}
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voltage.yaml")
	if err := os.WriteFile(path, []byte("prompt: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("broken yaml should fail")
	}
}

func TestSourceFileHelpers(t *testing.T) {
	if !IsSourceFile("prog.v") {
		t.Errorf("prog.v should be a source file")
	}
	if IsSourceFile("notes.txt") {
		t.Errorf("notes.txt should not be a source file")
	}
	if got := TrimSourceExt("dir/prog.v"); got != "dir/prog" {
		t.Errorf("wrong trim. got=%q", got)
	}
	if got := TrimSourceExt("notes.txt"); got != "notes.txt" {
		t.Errorf("unrecognized extension should be kept. got=%q", got)
	}
}

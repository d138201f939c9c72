package config

import "testing"

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.App.StateFile != "" || cfg.App.Ephemeral {
		t.Fatalf("expected default state settings, got %#v", cfg.App)
	}
	if cfg.App.Width != 0 || cfg.App.Height != 0 {
		t.Fatalf("expected zero dimensions by default")
	}
	if cfg.App.ShowFooter || cfg.App.Verbose || cfg.Logging.Trace {
		t.Fatalf("expected boolean flags off by default")
	}
}

func TestLoadArgsParsesFlags(t *testing.T) {
	args := []string{
		"-state-file", "/tmp/state.db",
		"-width", "120",
		"-height", "40",
		"-footer",
		"-trace",
		"-verbose",
		"-log-file", "/tmp/shell.log",
	}
	cfg, err := LoadArgs(args, nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.App.StateFile != "/tmp/state.db" {
		t.Fatalf("unexpected state file %q", cfg.App.StateFile)
	}
	if cfg.App.Width != 120 || cfg.App.Height != 40 {
		t.Fatalf("unexpected dimensions %dx%d", cfg.App.Width, cfg.App.Height)
	}
	if !cfg.App.ShowFooter || !cfg.App.Verbose {
		t.Fatalf("expected footer and verbose enabled")
	}
	if !cfg.Logging.Trace || cfg.Logging.FilePath != "/tmp/shell.log" {
		t.Fatalf("unexpected logging config %#v", cfg.Logging)
	}
	if cfg.Flags["stateFile"] != "/tmp/state.db" {
		t.Fatalf("expected flags map populated, got %v", cfg.Flags)
	}
}

func TestLoadArgsReadsEnvironment(t *testing.T) {
	environ := []string{
		"WORKSHELL_STATE_FILE=/var/lib/workshell/state.db",
		"WORKSHELL_WIDTH=100",
		"WORKSHELL_FOOTER=true",
		"WORKSHELL_EPHEMERAL=1",
	}
	cfg, err := LoadArgs(nil, environ)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.App.StateFile != "/var/lib/workshell/state.db" {
		t.Fatalf("expected env state file, got %q", cfg.App.StateFile)
	}
	if cfg.App.Width != 100 {
		t.Fatalf("expected env width, got %d", cfg.App.Width)
	}
	if !cfg.App.ShowFooter || !cfg.App.Ephemeral {
		t.Fatalf("expected env booleans applied")
	}
}

func TestLoadArgsFlagsOverrideEnvironment(t *testing.T) {
	cfg, err := LoadArgs([]string{"-width", "80"}, []string{"WORKSHELL_WIDTH=100"})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.App.Width != 80 {
		t.Fatalf("expected flag to win over environment, got %d", cfg.App.Width)
	}
}

func TestLoadArgsRejectsNegativeDimensions(t *testing.T) {
	if _, err := LoadArgs([]string{"-width", "-1"}, nil); err == nil {
		t.Fatalf("expected error for negative width")
	}
	if _, err := LoadArgs([]string{"-height", "-2"}, nil); err == nil {
		t.Fatalf("expected error for negative height")
	}
}

func TestValidateRejectsConflictingStateFlags(t *testing.T) {
	cfg, err := LoadArgs([]string{"-ephemeral", "-state-file", "x.db"}, nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected validation error for ephemeral plus state file")
	}
}

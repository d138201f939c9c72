package main

import (
	"testing"

	"github.com/workshell/workshell/internal/app"
	"github.com/workshell/workshell/internal/config"
)

func TestStartupTracePayloadIncludesFlagsAndState(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			StateFile:  "state.db",
			Width:      80,
			Height:     24,
			ShowFooter: true,
			Verbose:    true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"stateFile": "state.db",
			"width":     "80",
			"height":    "24",
			"footer":    "true",
			"verbose":   "true",
		},
		Args: []string{"--state-file", "state.db"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	for key, want := range map[string]interface{}{
		"stateFile": "state.db",
		"width":     "80",
		"height":    "24",
		"footer":    "true",
		"verbose":   "true",
		"trace":     true,
		"logFile":   "trace.log",
	} {
		if flagsValue[key] != want {
			t.Fatalf("expected flag %s = %v, got %v", key, want, flagsValue[key])
		}
	}

	if payload["stateFile"] != "state.db" {
		t.Fatalf("expected state file in payload, got %v", payload["stateFile"])
	}
	if payload["ephemeral"] != false {
		t.Fatalf("expected ephemeral false, got %v", payload["ephemeral"])
	}
	if _, ok := payload["terminal"].(terminalInfo); !ok {
		t.Fatalf("expected terminal details in payload")
	}
}

func TestDetectTerminalReportsConsistentDetails(t *testing.T) {
	info := detectTerminal()
	if info.Attached && info.Source == "" {
		t.Fatalf("expected a source descriptor for an attached terminal")
	}
	if !info.Attached && (info.Source != "" || info.Width != 0 || info.Height != 0) {
		t.Fatalf("expected empty details without a terminal, got %+v", info)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/workshell/workshell/internal/app"
	"github.com/workshell/workshell/internal/config"
	"github.com/workshell/workshell/internal/logging"
	"github.com/workshell/workshell/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	events.App.Start(startupTracePayload(runtimeCfg))

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupTracePayload records the context the shell starts with: arguments,
// effective flags, where hidden-entry state persists, and the terminal the
// bar will render into.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":      cfg.Args,
		"flags":     flags,
		"stateFile": cfg.App.StateFile,
		"ephemeral": cfg.App.Ephemeral,
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	payload["terminal"] = detectTerminal()
	return payload
}

type terminalInfo struct {
	Attached bool   `json:"attached"`
	Source   string `json:"source,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// detectTerminal reports the first standard descriptor attached to a tty
// and its size. The shell falls back to -width/-height when none is.
func detectTerminal() terminalInfo {
	descriptors := []struct {
		name string
		fd   int
	}{
		{"stdout", int(os.Stdout.Fd())},
		{"stdin", int(os.Stdin.Fd())},
		{"stderr", int(os.Stderr.Fd())},
	}
	for _, d := range descriptors {
		if !term.IsTerminal(d.fd) {
			continue
		}
		info := terminalInfo{Attached: true, Source: d.name}
		if width, height, err := term.GetSize(d.fd); err == nil {
			info.Width = width
			info.Height = height
		}
		return info
	}
	return terminalInfo{}
}

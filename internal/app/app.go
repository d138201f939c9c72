package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/workshell/workshell/internal/backend"
	"github.com/workshell/workshell/internal/data/dispatcher"
	"github.com/workshell/workshell/internal/logging"
	"github.com/workshell/workshell/internal/statestore"
	"github.com/workshell/workshell/internal/statusbar"
	"github.com/workshell/workshell/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	StateFile  string
	Ephemeral  bool
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open state store: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logging.Error(cerr)
		}
	}()

	vm := statusbar.NewViewModel(store)
	bar := statusbar.NewBar(vm)

	// Built-in entries register before the UI exists, which exercises the
	// pending queue: they go live when the first window size arrives.
	disp := dispatcher.New()
	registerBuiltins(bar, disp)

	watcher := backend.NewWatcher()
	defer watcher.Stop()

	model := ui.NewModel(bar, disp, cfg.Width, cfg.Height, cfg.ShowFooter, cfg.Verbose, watcher)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// registerBuiltins adds the standard status entries and routes backend
// snapshots into their accessors. Primaries order the bar: app then
// workdir on the left, system then clock stacking toward the right edge.
func registerBuiltins(bar *statusbar.Bar, disp *dispatcher.Dispatcher) {
	bar.AddEntry(statusbar.Content{Text: "workshell", Tooltip: "Workbench"}, "app", statusbar.AlignLeft, 0)

	workdir := bar.AddEntry(statusbar.Content{Text: "…", Tooltip: "Working directory"}, "workdir", statusbar.AlignLeft, 50)
	disp.Register(backend.KindWorkdir, workdir)

	system := bar.AddEntry(statusbar.Content{Text: "…", Tooltip: "Host and load average"}, "system", statusbar.AlignRight, 80)
	disp.Register(backend.KindSystem, system)

	clock := bar.AddEntry(statusbar.Content{Text: "--:--:--", Tooltip: "Local time"}, "clock", statusbar.AlignRight, 100)
	disp.Register(backend.KindClock, clock)
}

func openStore(cfg Config) (statestore.Store, error) {
	if cfg.Ephemeral {
		return statestore.NewMemory(), nil
	}
	path := cfg.StateFile
	if path == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(base, "workshell", "state.db")
	}
	return statestore.Open(path)
}

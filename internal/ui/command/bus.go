package command

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/workshell/workshell/internal/logging/events"
	"github.com/workshell/workshell/internal/menu"
	"github.com/workshell/workshell/internal/statusbar"
)

// Request encapsulates a context menu action invocation.
type Request struct {
	ID      string
	Label   string
	Handler menu.Action
	Item    menu.Item
}

// Result is delivered back to the UI once the action has run.
type Result struct {
	ID   string
	Info string
}

// Bus coordinates the execution of context menu actions.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps a menu action into a Bubble Tea command while emitting
// trace logs.
func (b *Bus) Execute(vm *statusbar.ViewModel, req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		info := req.Handler(vm, req.Item)
		events.Command.Result(req.ID, req.Label, info)
		return Result{ID: req.ID, Info: info}
	}
}

// Package dispatcher applies backend snapshots to the status bar entries the
// providers registered, going through the normal accessor update path.
package dispatcher

import (
	"fmt"

	"github.com/workshell/workshell/internal/backend"
	"github.com/workshell/workshell/internal/statusbar"
)

type Result struct {
	Updated bool
}

type Dispatcher struct {
	accessors map[backend.Kind]statusbar.Accessor
}

func New() *Dispatcher {
	return &Dispatcher{accessors: make(map[backend.Kind]statusbar.Accessor)}
}

// Register binds a provider's entry accessor to its event kind. Later
// registrations replace earlier ones.
func (d *Dispatcher) Register(kind backend.Kind, accessor statusbar.Accessor) {
	d.accessors[kind] = accessor
}

// Handle updates the entry owned by the event's provider. Events without a
// registered accessor or with an error are ignored.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		return res
	}
	accessor, ok := d.accessors[evt.Kind]
	if !ok {
		return res
	}
	switch data := evt.Data.(type) {
	case backend.ClockSnapshot:
		accessor.Update(statusbar.Content{
			Text:    data.Now.Format("15:04:05"),
			Tooltip: "Local time",
		})
		res.Updated = true
	case backend.WorkdirSnapshot:
		accessor.Update(statusbar.Content{
			Text:    data.Path,
			Tooltip: "Working directory",
		})
		res.Updated = true
	case backend.SystemSnapshot:
		text := data.Hostname
		if data.Load != "" {
			text = fmt.Sprintf("%s %s", data.Hostname, data.Load)
		}
		accessor.Update(statusbar.Content{
			Text:    text,
			Tooltip: "Host and load average",
		})
		res.Updated = true
	}
	return res
}

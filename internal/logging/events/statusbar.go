package events

import "github.com/workshell/workshell/internal/logging"

type EntryTracer struct{}

type PendingTracer struct{}

type VisibilityTracer struct{}

type FocusTracer struct{}

var (
	Entry      = EntryTracer{}
	Pending    = PendingTracer{}
	Visibility = VisibilityTracer{}
	Focus      = FocusTracer{}
)

func (EntryTracer) Added(id, alignment string, primary int) {
	logging.Trace("entry.add", map[string]interface{}{
		"id":        id,
		"alignment": alignment,
		"primary":   primary,
	})
}

func (EntryTracer) Updated(id string) {
	logging.Trace("entry.update", map[string]interface{}{"id": id})
}

func (EntryTracer) Removed(id, alignment string) {
	logging.Trace("entry.remove", map[string]interface{}{"id": id, "alignment": alignment})
}

func (PendingTracer) Queued(id, alignment string) {
	logging.Trace("pending.queue", map[string]interface{}{"id": id, "alignment": alignment})
}

func (PendingTracer) Flushed(count int) {
	logging.Trace("pending.flush", map[string]interface{}{"count": count})
}

func (VisibilityTracer) Changed(id string, visible bool) {
	logging.Trace("visibility.change", map[string]interface{}{"id": id, "visible": visible})
}

func (FocusTracer) Entry(id string) {
	logging.Trace("focus.entry", map[string]interface{}{"id": id})
}

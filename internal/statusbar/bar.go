package statusbar

import (
	"errors"

	"github.com/workshell/workshell/internal/logging/events"
)

// ErrAlreadyBound is returned when the container lifecycle collaborator
// creates the container twice. That is a contract violation, not a runtime
// condition.
var ErrAlreadyBound = errors.New("statusbar: container already created")

// Bar is the registration surface handed to status contributors. Entries
// registered before the visual container exists are staged in a pending
// queue and promoted, in registration order, when Bind is called.
type Bar struct {
	vm        *ViewModel
	container *Container
	pending   []*pendingEntry
	content   map[*ViewEntry]Content
	deferred  func()
}

// NewBar creates an unbound bar over the given view model. AddEntry works
// immediately; entries become visible once a container is bound.
func NewBar(vm *ViewModel) *Bar {
	return &Bar{
		vm:      vm,
		content: make(map[*ViewEntry]Content),
	}
}

// ViewModel exposes the bar's backing view model.
func (b *Bar) ViewModel() *ViewModel {
	return b.vm
}

// Container returns the bound container, or nil while staging.
func (b *Bar) Container() *Container {
	return b.container
}

// Bound reports whether the visual container exists yet.
func (b *Bar) Bound() bool {
	return b.container != nil
}

// AddEntry registers a status entry. The returned accessor stays valid
// across the pending-to-live promotion: updates and disposal forward to
// whichever store currently owns the entry. primary defaults to 0 at call
// sites that have no ordering preference.
func (b *Bar) AddEntry(content Content, id string, alignment Alignment, primary int) Accessor {
	priority := MakePriority(primary, id)
	if b.container == nil {
		pe := &pendingEntry{
			id:        id,
			alignment: alignment,
			priority:  priority,
			content:   content,
		}
		b.pending = append(b.pending, pe)
		events.Pending.Queued(id, alignment.String())
		return &pendingAccessor{bar: b, entry: pe}
	}
	return b.addLive(content, id, alignment, priority)
}

// Bind attaches the visual container, renders every already-known view model
// entry, then drains the pending queue in registration order. It transitions
// the bar exactly once; a second call reports ErrAlreadyBound.
func (b *Bar) Bind(container *Container) error {
	if b.container != nil {
		return ErrAlreadyBound
	}
	b.container = container

	// Shared with the re-creation path: entries already in the view model
	// get fresh elements in their existing order.
	for _, alignment := range []Alignment{AlignLeft, AlignRight} {
		for _, entry := range b.vm.Entries(alignment) {
			b.attachElements(entry, b.content[entry])
		}
	}

	queued := b.pending
	b.pending = nil
	for _, pe := range queued {
		acc := b.addLive(pe.content, pe.id, pe.alignment, pe.priority)
		pe.accessor = acc
	}
	events.Pending.Flushed(len(queued))
	return nil
}

func (b *Bar) addLive(content Content, id string, alignment Alignment, priority Priority) Accessor {
	entry := &ViewEntry{
		ID:        id,
		Alignment: alignment,
		Priority:  priority,
		Name:      content.Name(),
	}
	b.attachElements(entry, content)
	b.content[entry] = content
	dispose := b.vm.Add(entry)
	return &liveAccessor{bar: b, entry: entry, remove: dispose}
}

// attachElements builds the entry's element subtree and inserts it at the
// position the placement scan selects. The scan runs against the view
// model's current column order, which Bind and Add keep in lockstep with the
// container's child order.
func (b *Bar) attachElements(entry *ViewEntry, content Content) {
	wrapper := NewElement("statusbar.entry." + entry.ID)
	label := NewElement("label")
	wrapper.AppendChild(label)
	renderSegments(label, content)

	column := b.container.Column(entry.Alignment)
	ref := placeBefore(b.vm.Entries(entry.Alignment), entry.Alignment, entry.Priority)
	column.InsertBefore(wrapper, ref)

	entry.Wrapper = wrapper
	entry.Label = label
	entry.Name = content.Name()
}

func renderSegments(label *Element, content Content) {
	for _, child := range label.Children() {
		child.Detach()
	}
	if content.Icon != "" {
		icon := NewElement("icon")
		icon.SetText(content.Icon)
		label.AppendChild(icon)
	}
	text := NewElement("text")
	text.SetText(content.Text)
	label.AppendChild(text)
}

// Focus gives the status bar region input focus. With preserveEntryFocus the
// most recently focused entry is restored on the next update cycle rather
// than synchronously, so element attachment settles first; by then the
// target may be gone, in which case the callback silently does nothing.
func (b *Bar) Focus(preserveEntryFocus bool) {
	if !preserveEntryFocus {
		b.vm.Blur()
		return
	}
	target := b.vm.LastFocusedEntry()
	if target == nil {
		return
	}
	b.deferred = func() {
		if b.vm.LastFocusedEntry() != target {
			return
		}
		if target.Wrapper == nil || !b.container.Owns(target.Wrapper) {
			return
		}
		b.vm.FocusEntry(target)
	}
}

// DrainDeferred runs the pending deferred callback, if any. The UI calls
// this once per update cycle.
func (b *Bar) DrainDeferred() {
	if b.deferred == nil {
		return
	}
	fn := b.deferred
	b.deferred = nil
	fn()
}

// pendingEntry buffers a registration made before the container exists. The
// accessor field is the future cell: once promotion fills it, in-flight
// handles forward to the live accessor instead of mutating the queue.
type pendingEntry struct {
	id        string
	alignment Alignment
	priority  Priority
	content   Content
	accessor  Accessor
}

type pendingAccessor struct {
	bar   *Bar
	entry *pendingEntry
}

func (a *pendingAccessor) Update(content Content) {
	if a.entry.accessor != nil {
		a.entry.accessor.Update(content)
		return
	}
	a.entry.content = content
}

func (a *pendingAccessor) Dispose() {
	if a.entry.accessor != nil {
		a.entry.accessor.Dispose()
		return
	}
	for i, pe := range a.bar.pending {
		if pe == a.entry {
			a.bar.pending = append(a.bar.pending[:i], a.bar.pending[i+1:]...)
			return
		}
	}
}

type liveAccessor struct {
	bar      *Bar
	entry    *ViewEntry
	remove   func()
	disposed bool
}

func (a *liveAccessor) Update(content Content) {
	if a.disposed {
		return
	}
	a.bar.content[a.entry] = content
	a.entry.Name = content.Name()
	if a.entry.Label != nil {
		renderSegments(a.entry.Label, content)
	}
	events.Entry.Updated(a.entry.ID)
}

func (a *liveAccessor) Dispose() {
	if a.disposed {
		return
	}
	a.disposed = true
	delete(a.bar.content, a.entry)
	a.remove()
	if a.entry.Wrapper != nil {
		a.entry.Wrapper.Detach()
	}
}

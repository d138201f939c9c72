package statusbar

import (
	"encoding/json"
	"sort"

	"github.com/workshell/workshell/internal/logging"
	"github.com/workshell/workshell/internal/logging/events"
)

// KV is the persistence collaborator the view model uses to remember which
// entry ids the user has hidden. The key scope is profile-wide.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

const hiddenIDsKey = "statusbar.hidden"

// ViewModel is the ordered, surface-independent registry of live status bar
// entries. It owns visibility state, the focus cursor and change
// notification. All operations are synchronous; the model is not safe for
// concurrent use and is expected to be driven from the UI event loop.
type ViewModel struct {
	store KV

	left  []*ViewEntry
	right []*ViewEntry

	hidden map[string]struct{}

	focused     *ViewEntry
	lastFocused *ViewEntry

	changeObservers     []func()
	visibilityObservers []func(id string, visible bool)
}

// NewViewModel creates a view model seeded with the hidden-id set persisted
// in store. A nil store disables persistence but keeps hide/show working for
// the session.
func NewViewModel(store KV) *ViewModel {
	vm := &ViewModel{
		store:  store,
		hidden: make(map[string]struct{}),
	}
	vm.seedHidden()
	return vm
}

func (vm *ViewModel) seedHidden() {
	if vm.store == nil {
		return
	}
	raw, ok, err := vm.store.Get(hiddenIDsKey)
	if err != nil {
		logging.Error(err)
		return
	}
	if !ok || raw == "" {
		return
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		logging.Error(err)
		return
	}
	for _, id := range ids {
		vm.hidden[id] = struct{}{}
	}
}

func (vm *ViewModel) persistHidden() {
	if vm.store == nil {
		return
	}
	ids := make([]string, 0, len(vm.hidden))
	for id := range vm.hidden {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	raw, err := json.Marshal(ids)
	if err != nil {
		logging.Error(err)
		return
	}
	if err := vm.store.Set(hiddenIDsKey, string(raw)); err != nil {
		logging.Error(err)
	}
}

// OnChange registers an observer fired after every add or removal. Delivery
// is synchronous, in registration order.
func (vm *ViewModel) OnChange(fn func()) {
	if fn != nil {
		vm.changeObservers = append(vm.changeObservers, fn)
	}
}

// OnVisibilityChange registers an observer for show/hide transitions.
func (vm *ViewModel) OnVisibilityChange(fn func(id string, visible bool)) {
	if fn != nil {
		vm.visibilityObservers = append(vm.visibilityObservers, fn)
	}
}

func (vm *ViewModel) notifyChange() {
	for _, fn := range vm.changeObservers {
		fn()
	}
}

func (vm *ViewModel) column(alignment Alignment) *[]*ViewEntry {
	if alignment == AlignRight {
		return &vm.right
	}
	return &vm.left
}

// columnLess orders entries within a column. The left column keeps ascending
// (primary, secondary) order; the right column keeps descending order and is
// rendered in reversed flow, so the whole bar reads ascending primary from
// left to right.
func columnLess(alignment Alignment, a, b Priority) bool {
	if alignment == AlignRight {
		return a.Compare(b) > 0
	}
	return a.Compare(b) < 0
}

// Add inserts the entry into the ordered backing sequence for its alignment
// and returns a handle that removes it again. Entries with equal keys (the
// duplicate-id case) keep their insertion order.
func (vm *ViewModel) Add(entry *ViewEntry) func() {
	column := vm.column(entry.Alignment)
	idx := len(*column)
	for i, existing := range *column {
		if columnLess(entry.Alignment, entry.Priority, existing.Priority) {
			idx = i
			break
		}
	}
	*column = append(*column, nil)
	copy((*column)[idx+1:], (*column)[idx:])
	(*column)[idx] = entry
	events.Entry.Added(entry.ID, entry.Alignment.String(), entry.Priority.Primary)
	vm.notifyChange()

	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		vm.remove(entry)
	}
}

func (vm *ViewModel) remove(entry *ViewEntry) {
	column := vm.column(entry.Alignment)
	for i, existing := range *column {
		if existing == entry {
			*column = append((*column)[:i], (*column)[i+1:]...)
			break
		}
	}
	if vm.focused == entry {
		if entry.Wrapper != nil {
			entry.Wrapper.focused = false
		}
		vm.focused = nil
	}
	if vm.lastFocused == entry {
		vm.lastFocused = nil
	}
	events.Entry.Removed(entry.ID, entry.Alignment.String())
	vm.notifyChange()
}

// Entries returns the column's entries in container order: ascending
// (primary, secondary) for the left column, descending for the right. The
// returned slice is a copy of current state.
func (vm *ViewModel) Entries(alignment Alignment) []*ViewEntry {
	column := *vm.column(alignment)
	if len(column) == 0 {
		return nil
	}
	dup := make([]*ViewEntry, len(column))
	copy(dup, column)
	return dup
}

// EntryIDs returns the distinct entry ids across both columns in visual
// order. Duplicate registrations of one id collapse to a single element.
func (vm *ViewModel) EntryIDs() []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0, len(vm.left)+len(vm.right))
	for _, entry := range vm.visualOrder() {
		if _, ok := seen[entry.ID]; ok {
			continue
		}
		seen[entry.ID] = struct{}{}
		ids = append(ids, entry.ID)
	}
	return ids
}

func (vm *ViewModel) hasEntry(id string) bool {
	for _, entry := range vm.left {
		if entry.ID == id {
			return true
		}
	}
	for _, entry := range vm.right {
		if entry.ID == id {
			return true
		}
	}
	return false
}

// IsHidden reports membership in the persisted hidden-id set.
func (vm *ViewModel) IsHidden(id string) bool {
	_, ok := vm.hidden[id]
	return ok
}

// IsEntryVisible is the inverse of IsHidden.
func (vm *ViewModel) IsEntryVisible(id string) bool {
	return !vm.IsHidden(id)
}

// Hide marks every live entry with the given id hidden and persists the new
// hidden set. Unknown ids are a no-op.
func (vm *ViewModel) Hide(id string) {
	vm.setVisibility(id, false)
}

// Show clears the hidden mark for the given id.
func (vm *ViewModel) Show(id string) {
	vm.setVisibility(id, true)
}

// UpdateEntryVisibility sets visibility for all live entries sharing id.
// Visibility is keyed by id, not by registration: contributors that reuse an
// id share one toggle.
func (vm *ViewModel) UpdateEntryVisibility(id string, visible bool) {
	vm.setVisibility(id, visible)
}

func (vm *ViewModel) setVisibility(id string, visible bool) {
	if !vm.hasEntry(id) {
		return
	}
	if visible {
		if _, ok := vm.hidden[id]; !ok {
			return
		}
		delete(vm.hidden, id)
	} else {
		if _, ok := vm.hidden[id]; ok {
			return
		}
		vm.hidden[id] = struct{}{}
	}
	vm.persistHidden()
	events.Visibility.Changed(id, visible)
	for _, fn := range vm.visibilityObservers {
		fn(id, visible)
	}
}

// FindEntry resolves an element handle, or any descendant of an entry's
// subtree, to its owning entry. It walks parent links because the element
// under the pointer is usually a segment inside the label. A miss returns
// nil and is a normal outcome.
func (vm *ViewModel) FindEntry(el *Element) *ViewEntry {
	for node := el; node != nil; node = node.Parent() {
		for _, entry := range vm.left {
			if entry.Wrapper == node || entry.Label == node {
				return entry
			}
		}
		for _, entry := range vm.right {
			if entry.Wrapper == node || entry.Label == node {
				return entry
			}
		}
	}
	return nil
}

// visualOrder returns all entries in left-to-right reading order: the left
// column as stored, then the right column reversed (its first element hugs
// the right edge).
func (vm *ViewModel) visualOrder() []*ViewEntry {
	ordered := make([]*ViewEntry, 0, len(vm.left)+len(vm.right))
	ordered = append(ordered, vm.left...)
	for i := len(vm.right) - 1; i >= 0; i-- {
		ordered = append(ordered, vm.right[i])
	}
	return ordered
}

func (vm *ViewModel) visibleOrder() []*ViewEntry {
	ordered := vm.visualOrder()
	visible := ordered[:0]
	for _, entry := range ordered {
		if !vm.IsHidden(entry.ID) {
			visible = append(visible, entry)
		}
	}
	return visible
}

// FocusNextEntry advances the focus cursor over the visible entries in
// visual order. Traversal wraps: moving past the last visible entry focuses
// the first again.
func (vm *ViewModel) FocusNextEntry() {
	vm.moveFocus(1)
}

// FocusPreviousEntry moves the focus cursor backwards, wrapping from the
// first visible entry to the last.
func (vm *ViewModel) FocusPreviousEntry() {
	vm.moveFocus(-1)
}

func (vm *ViewModel) moveFocus(delta int) {
	visible := vm.visibleOrder()
	if len(visible) == 0 {
		return
	}
	idx := -1
	for i, entry := range visible {
		if entry == vm.focused {
			idx = i
			break
		}
	}
	if idx < 0 {
		if delta >= 0 {
			idx = 0
		} else {
			idx = len(visible) - 1
		}
	} else {
		idx = (idx + delta + len(visible)) % len(visible)
	}
	vm.FocusEntry(visible[idx])
}

// FocusEntry gives input focus to the entry. Focusing a nil or removed entry
// is a no-op.
func (vm *ViewModel) FocusEntry(entry *ViewEntry) {
	if entry == nil {
		return
	}
	if vm.focused == entry {
		return
	}
	vm.Blur()
	vm.focused = entry
	vm.lastFocused = entry
	if entry.Wrapper != nil {
		entry.Wrapper.focused = true
	}
	events.Focus.Entry(entry.ID)
}

// Blur drops entry focus while retaining the last-focused entry for a later
// restore.
func (vm *ViewModel) Blur() {
	if vm.focused == nil {
		return
	}
	if vm.focused.Wrapper != nil {
		vm.focused.Wrapper.focused = false
	}
	vm.focused = nil
}

// IsEntryFocused reports whether any entry currently holds input focus.
func (vm *ViewModel) IsEntryFocused() bool {
	return vm.focused != nil
}

// FocusedEntry returns the entry holding focus, or nil.
func (vm *ViewModel) FocusedEntry() *ViewEntry {
	return vm.focused
}

// LastFocusedEntry returns the most recently focused entry. It survives
// focus loss but not disposal: once the entry's removal handle fires this
// returns nil again.
func (vm *ViewModel) LastFocusedEntry() *ViewEntry {
	return vm.lastFocused
}

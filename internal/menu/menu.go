// Package menu builds the status bar context menu: one visibility toggle per
// distinct entry id, plus a direct hide action when the pointer is over a
// specific entry.
package menu

import (
	"strings"
	"unicode"

	"github.com/workshell/workshell/internal/format/table"
	"github.com/workshell/workshell/internal/statusbar"
)

// Item represents a selectable context menu entry.
type Item struct {
	ID    string
	Label string
}

// Action mutates view model state when its item is chosen. It returns a
// short confirmation for the info line, or "" for silent actions.
type Action func(vm *statusbar.ViewModel, item Item) string

const (
	checkedMark   = "[x]"
	uncheckedMark = "[ ]"

	// HideTargetPrefix marks the per-entry hide action so the key handler
	// can tell it apart from the id-wide toggles.
	HideTargetPrefix = "hide:"
)

// menuTable lines the visibility marks up with the entry labels.
var menuTable = table.Layout{Gutter: "  "}

// BuildItems assembles the context menu for the current view model state.
// Ids are deduplicated in visual order; hovered names the entry under the
// pointer, or nil when the menu was opened without one.
func BuildItems(vm *statusbar.ViewModel, hovered *statusbar.ViewEntry) []Item {
	ids := vm.EntryIDs()
	items := make([]Item, 0, len(ids)+1)
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		mark := checkedMark
		if vm.IsHidden(id) {
			mark = uncheckedMark
		}
		rows = append(rows, []string{mark, prettyLabel(id)})
	}
	labels := menuTable.Render(rows)
	for i, id := range ids {
		items = append(items, Item{ID: id, Label: labels[i]})
	}
	if hovered != nil {
		label := hovered.Name
		if label == "" {
			label = prettyLabel(hovered.ID)
		}
		items = append(items, Item{
			ID:    HideTargetPrefix + hovered.ID,
			Label: "Hide '" + label + "'",
		})
	}
	return items
}

// ToggleAction flips visibility for an id-wide toggle item, or hides the
// targeted entry for a hide action.
func ToggleAction(vm *statusbar.ViewModel, item Item) string {
	if id, ok := strings.CutPrefix(item.ID, HideTargetPrefix); ok {
		vm.Hide(id)
		return "Hid " + prettyLabel(id)
	}
	if vm.IsHidden(item.ID) {
		vm.Show(item.ID)
		return "Showing " + prettyLabel(item.ID)
	}
	vm.Hide(item.ID)
	return "Hid " + prettyLabel(item.ID)
}

func prettyLabel(id string) string {
	if id == "" {
		return id
	}
	parts := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' '
	})
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		for j := 1; j < len(runes); j++ {
			runes[j] = unicode.ToLower(runes[j])
		}
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/workshell/workshell/internal/logging/events"
	"github.com/workshell/workshell/internal/menu"
	"github.com/workshell/workshell/internal/statusbar"
	"github.com/workshell/workshell/internal/ui/command"
	uistate "github.com/workshell/workshell/internal/ui/state"
)

const menuLevelID = "statusbar:visibility"

// openMenu builds the context menu overlay. target is the entry the menu
// was invoked on, or nil when opened without a pointer target. Entry focus
// is dropped while the overlay is up and restored when it closes.
func (m *Model) openMenu(target *statusbar.ViewEntry) {
	items := menu.BuildItems(m.vm, target)
	if len(items) == 0 {
		m.setInfo("No status entries registered.")
		return
	}
	m.bar.Focus(false)
	m.menuTarget = target
	m.menu = uistate.NewLevel(menuLevelID, "Status Bar", menuItemsToState(items))
	m.syncViewport(m.menu)
	events.UI.MenuOpen(len(items), targetID(target))
}

func (m *Model) closeMenu() {
	if m.menu == nil {
		return
	}
	m.menu = nil
	m.menuTarget = nil
	m.errMsg = ""
	m.forceClearInfo()
	events.UI.MenuClose()
	// Restore whichever entry held focus before the overlay opened. The
	// restore is deferred a cycle so removals settle first.
	m.bar.Focus(true)
}

// refreshMenu rebuilds the overlay's items against current view model
// state so visibility marks stay accurate after a toggle.
func (m *Model) refreshMenu() {
	if m.menu == nil {
		return
	}
	if m.menuTarget != nil && m.vm.FindEntry(m.menuTarget.Wrapper) == nil {
		m.menuTarget = nil
	}
	items := menu.BuildItems(m.vm, m.menuTarget)
	if len(items) == 0 {
		m.closeMenu()
		return
	}
	m.menu.UpdateItems(menuItemsToState(items))
	m.syncViewport(m.menu)
}

func (m *Model) handleEnterKey() tea.Cmd {
	current := m.currentLevel()
	if current == nil || len(current.Items) == 0 {
		return nil
	}
	if current.Cursor < 0 || current.Cursor >= len(current.Items) {
		return nil
	}
	item := current.Items[current.Cursor]
	events.UI.MenuEnter(item.ID, item.Label, current.Filter)
	before := current.FilterCursorPos()
	current.SetFilter("", 0)
	m.noteFilterCursorChange(current, before)
	return m.bus.Execute(m.vm, command.Request{
		ID:      item.ID,
		Label:   item.Label,
		Handler: menu.ToggleAction,
		Item:    menu.Item{ID: item.ID, Label: item.Label},
	})
}

func (m *Model) handleCommandResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	if res.Info != "" {
		m.setInfo(res.Info)
	}
	m.refreshMenu()
	return nil
}

func (m *Model) moveCursorUp() {
	if current := m.currentLevel(); current != nil {
		if n := len(current.Items); n > 0 {
			if current.Cursor > 0 {
				current.Cursor--
			} else {
				current.Cursor = n - 1
			}
			events.UI.MenuCursor(current.Cursor)
			m.syncViewport(current)
		}
	}
}

func (m *Model) moveCursorDown() {
	if current := m.currentLevel(); current != nil {
		if n := len(current.Items); n > 0 {
			if current.Cursor < n-1 {
				current.Cursor++
			} else {
				current.Cursor = 0
			}
			events.UI.MenuCursor(current.Cursor)
			m.syncViewport(current)
		}
	}
}

func (m *Model) moveCursorPageUp() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorPageUp(m.maxVisibleItems()); moved {
			events.UI.MenuCursor(current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorPageDown() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorPageDown(m.maxVisibleItems()); moved {
			events.UI.MenuCursor(current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorHome() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorHome(); moved {
			events.UI.MenuCursor(current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorEnd() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorEnd(); moved {
			events.UI.MenuCursor(current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) syncViewport(l *level) {
	if l == nil {
		return
	}
	l.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.menuOpen() {
		return m.handleMenuKey(keyMsg)
	}
	return m.handleShellKey(keyMsg)
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	if m.handleTextInput(msg) {
		return nil
	}
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		m.closeMenu()
	case "enter":
		return m.handleEnterKey()
	case "up":
		m.moveCursorUp()
	case "down":
		m.moveCursorDown()
	case "pgup":
		m.moveCursorPageUp()
	case "pgdown":
		m.moveCursorPageDown()
	case "home":
		m.moveCursorHome()
	case "end":
		m.moveCursorEnd()
	}
	return nil
}

func (m *Model) handleShellKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "esc":
		m.bar.Focus(false)
		m.errMsg = ""
		m.forceClearInfo()
	case "right", "tab":
		m.vm.FocusNextEntry()
	case "left", "shift+tab":
		m.vm.FocusPreviousEntry()
	case "b":
		// Re-enter the bar on the entry that last held focus.
		m.bar.Focus(true)
	case "m":
		target := m.vm.FocusedEntry()
		if target == nil {
			target = m.vm.FindEntry(m.hovered)
		}
		m.openMenu(target)
	case "enter":
		if target := m.vm.FocusedEntry(); target != nil {
			m.openMenu(target)
		}
	}
	return nil
}

func menuItemsToState(items []menu.Item) []uistate.Item {
	out := make([]uistate.Item, len(items))
	for i, item := range items {
		out[i] = uistate.Item{ID: item.ID, Label: item.Label}
	}
	return out
}

func targetID(entry *statusbar.ViewEntry) string {
	if entry == nil {
		return ""
	}
	return entry.ID
}

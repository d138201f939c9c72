package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/workshell/workshell/internal/backend"
	"github.com/workshell/workshell/internal/data/dispatcher"
	"github.com/workshell/workshell/internal/logging/events"
	"github.com/workshell/workshell/internal/statusbar"
	"github.com/workshell/workshell/internal/theme"
	"github.com/workshell/workshell/internal/ui/command"
	uistate "github.com/workshell/workshell/internal/ui/state"
)

type level = uistate.Level

const appTitle = "workshell"

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Model implements the Bubble Tea model for the workbench shell. It owns
// the status bar widgets, the context menu overlay, and the plumbing that
// feeds backend snapshots into the bar's entries.
type Model struct {
	bar        *statusbar.Bar
	vm         *statusbar.ViewModel
	dispatcher *dispatcher.Dispatcher

	menu       *level
	menuTarget *statusbar.ViewEntry

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	backend        *backend.Watcher
	backendState   map[backend.Kind]error
	backendLastErr string

	showFooter bool
	verbose    bool

	hovered  *statusbar.Element
	barSpans []entrySpan

	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler

	bus *command.Bus
}

// NewModel initialises the UI over an existing bar and dispatcher. The bar
// may still be unbound; the container is created on the first window size
// message, which promotes any entries registered during startup.
func NewModel(bar *statusbar.Bar, disp *dispatcher.Dispatcher, width, height int, showFooter, verbose bool, watcher *backend.Watcher) *Model {
	m := &Model{
		bar:          bar,
		vm:           bar.ViewModel(),
		dispatcher:   disp,
		bus:          command.New(),
		backend:      watcher,
		backendState: map[backend.Kind]error{},
		showFooter:   showFooter,
		verbose:      verbose,
	}
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	// Keep an open context menu in step with entries added or disposed
	// underneath it by backend contributors.
	m.vm.OnChange(m.refreshMenu)
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Focus restores requested on the previous cycle run before the new
	// message is handled.
	m.bar.DrainDeferred()

	cmds := make([]tea.Cmd, 0, 4)
	if m.menuOpen() {
		if cmd := m.updateFilterCursorModel(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

// ensureContainer creates and binds the visual container on first use,
// promoting every staged entry.
func (m *Model) ensureContainer() {
	if m.bar.Bound() {
		return
	}
	if err := m.bar.Bind(statusbar.NewContainer()); err != nil {
		m.errMsg = err.Error()
		return
	}
	events.App.ContainerCreated()
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(command.Result{}):    m.handleCommandResultMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) menuOpen() bool {
	return m.menu != nil
}

func (m *Model) currentLevel() *level {
	return m.menu
}

// ViewModel exposes the backing view model, mainly for tests.
func (m *Model) ViewModel() *statusbar.ViewModel {
	return m.vm
}

// Bar exposes the status bar registration surface.
func (m *Model) Bar() *statusbar.Bar {
	return m.bar
}

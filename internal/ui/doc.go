// Package ui contains the Bubble Tea program that powers the workbench
// shell. The package is structured so the Model type focuses on message
// orchestration, while dedicated helpers own navigation, input, rendering,
// and state updates.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Update first drains any focus restore the status bar deferred on the
//     previous cycle, then routes the message through a typed handler
//     registry so each tea.Msg is handled by a focused function (for
//     example, navigation for key presses or backend updates).
//   - Navigation helpers (internal/ui/navigation.go) manage the context
//     menu overlay, cursor movement, and entry focus traversal. Filter and
//     input helpers (internal/ui/input.go) keep all text entry concerns
//     isolated from the Bubble Tea event loop.
//
// State ownership:
//   - Context menu overlay state lives in internal/ui/state.Level, which
//     tracks items, filtering, and viewport calculations.
//   - Status entry registration, ordering, visibility, and focus live in
//     internal/statusbar; the model only renders that state and forwards
//     input to it.
//   - Menu actions run through the internal/ui/command bus, which wraps
//     them in tea.Cmd values and reports results back as messages.
//
// Backend interactions:
//   - A backend.Watcher streams provider snapshots; Update waits for those
//     events and hands them to applyBackendEvent, which routes them through
//     the dispatcher into the status entries' accessors.
//   - The visual container is created on the first window size message,
//     which promotes every entry registered before the UI existed.
package ui

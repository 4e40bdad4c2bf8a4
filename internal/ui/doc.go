// Package ui contains the Bubble Tea program behind the event console: a live
// search field with a suggestion panel, an event detail view, the add/edit
// event form and a stack of toast notifications.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Each message type
//     is routed through a typed handler registry. The registry is assembled at
//     construction from one subscription per component (layout, search, toasts,
//     form, actions); each subscription also names what it starts in Init and
//     what it releases in Model.Close.
//   - Key presses go through handleKeyMsg (input.go): global shortcuts first,
//     then the delete prompt, the focused search field and finally the active
//     form.
//
// Timers:
//   - Search debounce and the post-delete reload are tea.Tick commands tagged
//     with a generation. A timer whose generation is no longer current is
//     ignored when it fires, so nothing is ever cancelled.
//   - Toast lifetimes are owned by notify.Queue; Update waits on the queue's
//     change stream and repaints when it moves.
//
// Network:
//   - Every API call runs as a tea.Cmd through the command bus (ui/command).
//     Quick-search responses carry their sequence number and are dropped by the
//     search dispatcher when a newer request has been issued.
//
// Harness (harness.go) replaces tea.Tick with a virtual clock and runs commands
// synchronously so tests can drive the whole console deterministically.
package ui

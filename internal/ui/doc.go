// Package ui contains the Bubble Tea program that stands in for the menu-bar
// host: a status item that opens into the llamabar menu.
//
// Message flow:
//   - Model.Update routes each tea.Msg through a typed handler registry so
//     key presses, bus notifications, action results and scheduler turns are
//     each handled by a focused function.
//   - Key presses move a cursor over the menu container (internal/ui/state)
//     and report every move to the menu controller as a hover, so the
//     controller's highlighter stays the single owner of highlight state.
//   - Notifications posted by background producers arrive on the notify bus
//     and are dispatched on the UI goroutine, where the menu router's
//     subscriptions reconcile the affected sections.
//
// Turns:
//   - Work deferred by the controller (highlight restoration after a family
//     toggle) sits in a menu.Queue. After an update leaves work pending, the
//     model schedules a turnMsg, so the deferred work runs only after the
//     rebuilt menu has been rendered once.
package ui

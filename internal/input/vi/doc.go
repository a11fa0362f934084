// Package vi implements the modal (vi-like) input handler for the terminal's
// normal mode: a long-lived state machine that turns key and character events
// into navigation, selection, yank, and search commands.
//
// The handler owns only the input grammar — modes, counts, pending operators,
// and text-object scopes. All effects (cursor movement, selection updates,
// clipboard writes, search control) are delegated to an Executor supplied by
// the terminal session. Insert mode passes input through untouched: Send
// methods return false and the caller forwards the event to the application.
package vi

// Package key defines the keyboard input model shared by the terminal
// frontends and the modal input handler:
//
//   - Key: identifies a keyboard key (special keys, function keys, or runes)
//   - Modifier: a bitfield of modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: a single key press with its modifiers
//
// Character input arrives as KeyRune events carrying the rune; everything
// else arrives as a special key. Shift is folded into the rune for character
// events and therefore does not count as a modifier on them.
package key

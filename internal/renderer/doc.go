// Package renderer compiles one frame of terminal grid state into a flat,
// renderer-agnostic buffer of styled cell runs.
//
// The Builder walks the visible page top-to-bottom, left-to-right exactly
// once per frame, compositing selection, cursor, yank- and search-highlight
// overlays onto each cell's SGR colors and grouping contiguous output into
// runs bracketed by GroupStart/GroupEnd markers. The produced RenderBuffer
// is consumed by a display backend (see the backend subpackage); the builder
// itself never touches a screen.
//
// Grid access goes through the Source interface: one call equals one frame,
// and everything the builder reads (palette, overlay predicates, hyperlink
// table, IME preedit) is passed in read-only, keeping frame construction
// deterministic and unit-testable.
package renderer

// Package grid provides the read-only terminal grid snapshot model consumed
// by the renderer: cells, SGR colors and flags, the color palette, trivial
// line buffers, and hyperlink records.
//
// The escape-sequence parser that populates a grid lives outside this module;
// grid only defines the data contract between it and the per-frame render
// buffer builder.
package grid

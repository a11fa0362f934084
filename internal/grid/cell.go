package grid

// HyperlinkID references a hyperlink record in a HyperlinkStore.
// Zero means no hyperlink.
type HyperlinkID uint32

// ImageFragment references one cell-sized slice of a sixel or iTerm-style
// inline image. The rasterized data lives with the image storage; the render
// buffer only forwards the reference.
type ImageFragment struct {
	ImageID uint32
	Offset  CellLocation
}

// GraphicsAttributes is the SGR state applied to a cell or line run:
// colors, underline color, and style flags.
type GraphicsAttributes struct {
	Foreground     Color
	Background     Color
	UnderlineColor Color
	Flags          CellFlags
}

// Cell is one grid cell of the terminal snapshot: a grapheme cluster with
// its width, SGR attributes, and optional hyperlink/image references.
type Cell struct {
	// Codepoints form one grapheme cluster. Empty for blank cells and for
	// the continuation cell of a wide character.
	Codepoints []rune

	// Width is the cluster's column width: 1 or 2 (0 for continuations).
	Width int

	Attributes GraphicsAttributes

	Hyperlink HyperlinkID

	// Image is non-nil when the cell shows an inline-image fragment.
	Image *ImageFragment
}

// NewCell creates a single-codepoint cell with the given attributes.
func NewCell(r rune, attr GraphicsAttributes) Cell {
	return Cell{Codepoints: []rune{r}, Width: 1, Attributes: attr}
}

// Empty reports whether the cell carries no glyph.
func (c Cell) Empty() bool {
	if len(c.Codepoints) == 0 {
		return true
	}
	return len(c.Codepoints) == 1 && c.Codepoints[0] == ' '
}

// CodepointCount returns the number of code points in the cluster.
func (c Cell) CodepointCount() int {
	return len(c.Codepoints)
}

// TrivialLineBuffer is the compact representation of a line whose cells all
// share one set of text attributes: the text bytes plus a fill attribute for
// the unused trailing columns.
type TrivialLineBuffer struct {
	UsedColumns    int
	Text           string
	TextAttributes GraphicsAttributes
	FillAttributes GraphicsAttributes
}

// HyperlinkState tracks whether the pointer currently hovers a hyperlink.
type HyperlinkState uint8

const (
	HyperlinkNormal HyperlinkState = iota
	HyperlinkHover
)

// Hyperlink is one OSC-8 hyperlink record.
type Hyperlink struct {
	URI   string
	State HyperlinkState
}

// HyperlinkStore resolves hyperlink ids to records. Unknown ids resolve to
// nil; callers degrade to no decoration rather than failing.
type HyperlinkStore struct {
	links map[HyperlinkID]*Hyperlink
	next  HyperlinkID
}

// NewHyperlinkStore creates an empty store.
func NewHyperlinkStore() *HyperlinkStore {
	return &HyperlinkStore{links: make(map[HyperlinkID]*Hyperlink)}
}

// Add registers a hyperlink and returns its id.
func (s *HyperlinkStore) Add(uri string) HyperlinkID {
	s.next++
	s.links[s.next] = &Hyperlink{URI: uri}
	return s.next
}

// ByID returns the record for an id, or nil if unknown (or id is zero).
func (s *HyperlinkStore) ByID(id HyperlinkID) *Hyperlink {
	if s == nil || id == 0 {
		return nil
	}
	return s.links[id]
}

// SetState updates the hover state of a hyperlink, if it exists.
func (s *HyperlinkStore) SetState(id HyperlinkID, state HyperlinkState) {
	if link := s.ByID(id); link != nil {
		link.State = state
	}
}

package text

// GlyphID is a unique identifier for a glyph within a font.
// The glyph ID is assigned by the font file and is meaningless outside the
// font a run was shaped against.
type GlyphID uint16

// NotdefGlyph is the missing-glyph sentinel every font reserves at index 0.
const NotdefGlyph GlyphID = 0

// Glyph is one glyph of a ShapedRun.
type Glyph struct {
	// ID is the glyph index in the run's font.
	ID GlyphID

	// Cluster is the byte offset, in the layout text, of the first
	// character this glyph was produced from. Several glyphs may share a
	// cluster (decompositions) and one glyph may cover several characters
	// (ligatures).
	Cluster int
}

// GlyphPosition holds the normalized placement data of a glyph in pixels.
// Offsets are y-down. Advances always accumulate left to right in the
// run's local space, whatever the run's direction.
type GlyphPosition struct {
	XOffset  float64
	YOffset  float64
	XAdvance float64
	YAdvance float64
}

// Feature is an OpenType feature setting such as {"liga", 0} or {"smcp", 1}.
type Feature struct {
	Tag   string
	Value uint32
}

// Validate reports whether the tag is a four byte OpenType tag.
func (f Feature) Validate() error {
	if len(f.Tag) != 4 {
		return &FeatureTagError{Tag: f.Tag}
	}
	return nil
}

package glyphrun

import (
	"errors"

	"github.com/gogpu/glyphrun/internal/cache"
	"github.com/gogpu/glyphrun/text"
)

// GlyphPath converts the outline of glyph gid of font into a path in
// glyph-local pixel space with y pointing down: the origin is the glyph's
// pen position on the baseline. Every contour is closed.
//
// Glyphs without a scalable outline (bitmap, color or SVG glyphs) and
// glyphs with an empty outline (a space) yield a nil path and no error;
// callers skip vector rendering for them. Engine failures are returned.
func GlyphPath(font text.FontCandidate, gid text.GlyphID) (*Path, error) {
	raw, err := font.Outline(gid)
	switch {
	case errors.Is(err, text.ErrMissingOutline):
		return nil, nil
	case err != nil:
		return nil, err
	case len(raw.Segments) == 0:
		return nil, nil
	}

	scale, err := raw.Units.Scale(raw.UnitsPerEm, raw.Size)
	if err != nil {
		return nil, &text.EngineError{Engine: "outline", Font: font.Name(), Err: err}
	}
	sx, sy := scale, scale
	if raw.YUp {
		sy = -scale
	}

	path := NewPath()
	for _, seg := range raw.Segments {
		a := seg.Args
		switch seg.Op {
		case text.SegmentMoveTo:
			path.Close()
			path.MoveTo(a[0].X*sx, a[0].Y*sy)
		case text.SegmentLineTo:
			path.LineTo(a[0].X*sx, a[0].Y*sy)
		case text.SegmentQuadTo:
			path.QuadraticTo(a[0].X*sx, a[0].Y*sy, a[1].X*sx, a[1].Y*sy)
		case text.SegmentCubeTo:
			path.CubicTo(a[0].X*sx, a[0].Y*sy, a[1].X*sx, a[1].Y*sy, a[2].X*sx, a[2].Y*sy)
		}
	}
	path.Close()
	return path, nil
}

type pathKey struct {
	font  uint64
	glyph text.GlyphID
}

// PathCache memoizes GlyphPath by (font ID, glyph ID). Cached paths are
// shared and must not be modified.
//
// PathCache is safe for concurrent use.
type PathCache struct {
	paths *cache.Cache[pathKey, *Path]
}

// NewPathCache creates a path cache holding up to capacity glyphs.
// If capacity <= 0, 1024 is used.
func NewPathCache(capacity int) *PathCache {
	if capacity <= 0 {
		capacity = 1024
	}
	return &PathCache{paths: cache.New[pathKey, *Path](capacity)}
}

// GlyphPath returns the cached path of gid, converting it on a miss.
// Errors are not cached.
func (c *PathCache) GlyphPath(font text.FontCandidate, gid text.GlyphID) (*Path, error) {
	key := pathKey{font: font.ID(), glyph: gid}
	if p, ok := c.paths.Get(key); ok {
		return p, nil
	}
	p, err := GlyphPath(font, gid)
	if err != nil {
		return nil, err
	}
	c.paths.Set(key, p)
	return p, nil
}

// Len returns the number of cached glyphs.
func (c *PathCache) Len() int {
	return c.paths.Len()
}

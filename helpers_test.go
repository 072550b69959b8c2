package glyphrun

import (
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/glyphrun/text"
)

// goRegular returns a 16px Go Regular face.
func goRegular(t *testing.T) *text.Face {
	t.Helper()

	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatalf("NewFontSource(goregular) failed: %v", err)
	}
	t.Cleanup(func() { _ = src.Close() })
	return src.Face(16)
}

func newPipeline(t *testing.T, opts ...Option) *Pipeline {
	t.Helper()

	p, err := New(nil, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

// fakeFont is a FontCandidate with a fixed rune table. Each rune shapes to
// one glyph advancing 10px; RTL runs come back reversed, as HarfBuzz does.
type fakeFont struct {
	id     uint64
	name   string
	glyphs map[rune]text.GlyphID

	// silent fonts claim their runes but shape to nothing.
	silent bool
	err    error
}

func newFakeFont(id uint64, name, runes string) *fakeFont {
	f := &fakeFont{id: id, name: name, glyphs: make(map[rune]text.GlyphID)}
	for i, r := range []rune(runes) {
		f.glyphs[r] = text.GlyphID(i + 1)
	}
	return f
}

func (f *fakeFont) ID() uint64    { return f.id }
func (f *fakeFont) Name() string  { return f.name }
func (f *fakeFont) Size() float64 { return 20 }

func (f *fakeFont) Metrics() text.FontMetrics {
	return text.FontMetrics{Ascent: 16, Descent: 4}
}

func (f *fakeFont) CanRender(cluster string) bool {
	for _, r := range cluster {
		if f.glyphs[r] != text.NotdefGlyph {
			return true
		}
	}
	return false
}

func (f *fakeFont) Shape(in text.ShapeInput) (text.RawShaping, error) {
	if f.err != nil {
		return text.RawShaping{}, f.err
	}
	raw := text.RawShaping{Units: text.Units26_6, Size: f.Size()}
	if f.silent {
		return raw, nil
	}
	for i, r := range in.Text {
		raw.Glyphs = append(raw.Glyphs, text.RawGlyph{ID: f.glyphs[r], Cluster: i, XAdvance: 640})
	}
	if in.Direction == text.DirectionRTL {
		for i, j := 0, len(raw.Glyphs)-1; i < j; i, j = i+1, j-1 {
			raw.Glyphs[i], raw.Glyphs[j] = raw.Glyphs[j], raw.Glyphs[i]
		}
	}
	return raw, nil
}

func (f *fakeFont) Outline(text.GlyphID) (text.RawOutline, error) {
	return text.RawOutline{}, text.ErrMissingOutline
}

const (
	latinRunes  = " !,.abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	hebrewRunes = "אבגדהוזחטיכלמנסעפצקרשת"
)

// glyphSummary is the comparable part of a positioned glyph.
type glyphSummary struct {
	ID      text.GlyphID
	Font    string
	Cluster int
	X, Y    float64
}

func summarize(glyphs []PositionedGlyph) []glyphSummary {
	out := make([]glyphSummary, len(glyphs))
	for i, g := range glyphs {
		out[i] = glyphSummary{ID: g.ID, Font: g.Font.Name(), Cluster: g.Cluster, X: g.X, Y: g.Y}
	}
	return out
}

func visualRunTexts(r *LayoutResult) []string {
	out := make([]string, len(r.Runs))
	for i, run := range r.Runs {
		out[i] = run.Run.Text
	}
	return out
}

func joined(parts []string) string { return strings.Join(parts, "") }

package text

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

// loadGoRegular returns a FontSource for the Go Regular font.
func loadGoRegular(t *testing.T) *FontSource {
	t.Helper()

	source, err := NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatalf("NewFontSource(goregular) failed: %v", err)
	}
	t.Cleanup(func() { _ = source.Close() })
	return source
}

// fakeCandidate is a FontCandidate with a fixed rune-to-glyph table. Every
// glyph advances by advance 26.6 units; unknown runes shape to notdef.
type fakeCandidate struct {
	id      uint64
	name    string
	glyphs  map[rune]GlyphID
	advance int32
	err     error
	shapes  int
}

func newFakeCandidate(id uint64, name string, runes string) *fakeCandidate {
	f := &fakeCandidate{id: id, name: name, glyphs: make(map[rune]GlyphID), advance: 640}
	next := GlyphID(1)
	for _, r := range runes {
		f.glyphs[r] = next
		next++
	}
	return f
}

func (f *fakeCandidate) ID() uint64           { return f.id }
func (f *fakeCandidate) Name() string         { return f.name }
func (f *fakeCandidate) Size() float64        { return 10 }
func (f *fakeCandidate) Metrics() FontMetrics { return FontMetrics{Ascent: 8, Descent: 2} }

func (f *fakeCandidate) CanRender(cluster string) bool {
	raw, err := f.Shape(ShapeInput{Text: cluster})
	return err == nil && RuleAnyGlyph.Accepts(raw.Glyphs)
}

func (f *fakeCandidate) Shape(in ShapeInput) (RawShaping, error) {
	f.shapes++
	if f.err != nil {
		return RawShaping{}, f.err
	}
	var glyphs []RawGlyph
	for i, r := range in.Text {
		glyphs = append(glyphs, RawGlyph{ID: f.glyphs[r], Cluster: i, XAdvance: f.advance})
	}
	if in.Direction == DirectionRTL {
		for i, j := 0, len(glyphs)-1; i < j; i, j = i+1, j-1 {
			glyphs[i], glyphs[j] = glyphs[j], glyphs[i]
		}
	}
	return RawShaping{Glyphs: glyphs, Units: Units26_6, Size: 10}, nil
}

func (f *fakeCandidate) Outline(GlyphID) (RawOutline, error) {
	return RawOutline{}, ErrMissingOutline
}

// asciiRunes is every printable ASCII character.
const asciiRunes = " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"

// runTexts returns the texts of runs in order.
func runTexts(runs []Run) []string {
	out := make([]string, len(runs))
	for i, r := range runs {
		out[i] = r.Text
	}
	return out
}

// Package glyphrun lays out a logical Unicode string as positioned glyphs.
//
// # Overview
//
// A Pipeline takes a string and an ordered fallback chain of fonts and
// runs it through grapheme clustering, per-cluster font selection, bidi
// resolution, shaping and assembly. The result is a LayoutResult: shaped
// runs in visual order, every glyph with its placed position, and the
// total width and vertical metrics.
//
//	reg := text.NewRegistry()
//	defer reg.Close()
//	reg.Load("sans", goregular.TTF)
//	reg.LoadSystem("emoji", "NotoColorEmoji.ttf")
//
//	p, err := glyphrun.New(reg, glyphrun.WithOrigin(glyphrun.Pt(10, 40)))
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	result, err := p.LayoutNames("hello, world 👋", 24, "sans", "emoji")
//
// # Output
//
// LayoutResult.Blobs groups adjacent glyphs by font for glyph-run draw
// calls. LayoutResult.Paths and Pipeline.Paths convert glyph outlines to
// filled paths, skipping glyphs that only exist as bitmaps.
// LayoutResult.PlacementTransform returns the transform that anchors the
// layout on a surface, including mirrored placement of RTL blocks.
//
// # Coordinate System
//
// Pixels as float64, y pointing down, the baseline at the origin's y.
// Shaping engines that report 26.6 fixed point or font design units are
// normalized by the text package before assembly.
//
// # Errors
//
// Empty text is not an error. Clusters no font can shape are drawn as a
// placeholder. An engine failure stops assembly at the failing run: Layout
// returns what was assembled before it together with a *RunError.
package glyphrun

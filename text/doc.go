// Package text implements the font-facing half of the glyphrun layout
// pipeline: font loading, fallback chains, grapheme clustering, run
// segmentation, bidi resolution and shaping.
//
// The pipeline stages map onto this package as follows:
//
//   - Registry and FontSource: session-scoped font storage. Parsing uses
//     golang.org/x/image/font/opentype; engine handles for go-text and
//     textlayout are created lazily.
//   - FontCandidate: one entry of a fallback chain. Face is the concrete
//     candidate, FilteredCandidate restricts one to Unicode ranges.
//   - Oracle: answers CanRender for whole grapheme clusters by shaping them
//     and looking for non-notdef glyphs.
//   - Clusters, Segmenter: split text into clusters and clusters into runs
//     sharing one font (and, optionally, one level and script).
//   - DetectDirection, Levels, VisualOrder, ReorderClusters: the bidi
//     resolver, built on golang.org/x/text/unicode/bidi.
//   - Shape: the shaping adapter. Every ShapingEngine declares whether it
//     reports 26.6 fixed point or design units, and Shape applies the
//     matching divisor so all output is in float64 pixels.
//
// # Example usage
//
//	reg := text.NewRegistry()
//	defer reg.Close()
//
//	if _, err := reg.Load("Go", goregular.TTF); err != nil {
//	    log.Fatal(err)
//	}
//	chain, err := reg.Chain(24, []string{"Go"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, run := range text.SegmentText("hello, world", chain) {
//	    shaped, err := text.Shape(run.Font, run, text.ShapeOptions{})
//	    ...
//	}
//
// # Engines
//
// Three shaping engines are provided: GoTextShaper (default, 26.6),
// TextlayoutShaper (design units) and SimpleShaper (cmap and advances
// only). Two outline engines are provided: SFNTOutliner (default, 26.6,
// y-down) and GoTextOutliner (design units, y-up).
package text

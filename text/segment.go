package text

import "github.com/go-text/typesetting/language"

// Run is a maximal span of the layout text shaped with one font in one
// direction.
type Run struct {
	// Text is the run's characters; Start and End are its byte offsets in
	// the layout text.
	Text       string
	Start, End int

	// Font is the candidate selected for every cluster of the run and
	// FontIndex its position in the fallback chain (0 is the primary).
	Font      FontCandidate
	FontIndex int

	Script language.Script

	// Level is the bidi embedding level of the run; Direction is the
	// direction the run is shaped in.
	Level     int
	Direction Direction
}

// IsFallback reports whether the run uses a font other than the primary.
func (r Run) IsFallback() bool {
	return r.FontIndex > 0
}

// Segmenter splits clusters into runs. Runs always break where the
// selected font changes; SplitLevels and SplitScripts add breaks at
// embedding-level and script changes.
//
// Segmenter holds no mutable state and is safe for concurrent use.
type Segmenter struct {
	// Chain is the ordered list of candidates; Chain[0] is the primary.
	Chain []FontCandidate

	SplitLevels  bool
	SplitScripts bool
}

// SelectFont returns the index of the first candidate that can render
// cluster, or the index of the last candidate when none can.
func (s *Segmenter) SelectFont(cluster string) int {
	for i, c := range s.Chain {
		if c.CanRender(cluster) {
			return i
		}
	}
	return len(s.Chain) - 1
}

// Segment groups clusters into runs in logical order. The runs partition
// the clusters: concatenating their texts yields the clusters' text. An
// empty cluster list or an empty chain yields no runs.
func (s *Segmenter) Segment(clusters []Cluster) []Run {
	if len(clusters) == 0 || len(s.Chain) == 0 {
		return nil
	}

	runs := make([]Run, 0, 4)
	start := 0
	font := s.SelectFont(clusters[0].Text)
	for i := 1; i < len(clusters); i++ {
		next := s.SelectFont(clusters[i].Text)
		if next == font && !s.breaksAt(clusters[i-1], clusters[i]) {
			continue
		}
		runs = append(runs, s.makeRun(clusters[start:i], font))
		start, font = i, next
	}
	runs = append(runs, s.makeRun(clusters[start:], font))

	Logger().Debug("segmented", "clusters", len(clusters), "runs", len(runs))
	return runs
}

func (s *Segmenter) breaksAt(prev, cur Cluster) bool {
	if s.SplitLevels && prev.Level != cur.Level {
		return true
	}
	return s.SplitScripts && prev.Script != cur.Script
}

func (s *Segmenter) makeRun(clusters []Cluster, font int) Run {
	first, last := clusters[0], clusters[len(clusters)-1]
	return Run{
		Text:      Join(clusters),
		Start:     first.Start,
		End:       last.End,
		Font:      s.Chain[font],
		FontIndex: font,
		Script:    first.Script,
		Level:     first.Level,
		Direction: DirectionOfLevel(first.Level),
	}
}

// SegmentText is the font-only segmentation of a logical string: text is
// split into grapheme clusters and grouped by selected font alone.
func SegmentText(text string, chain []FontCandidate) []Run {
	s := Segmenter{Chain: chain}
	return s.Segment(Clusters(text))
}

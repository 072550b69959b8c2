package glyphrun

import (
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/glyphrun/text"
)

// Option configures a Pipeline.
//
// Example:
//
//	p, err := glyphrun.New(reg,
//	    glyphrun.WithStrategy(text.StrategyPreReorder),
//	    glyphrun.WithLanguage("ar"),
//	    glyphrun.WithOrigin(glyphrun.Pt(20, 80)),
//	)
type Option func(*config)

type config struct {
	base        text.Direction
	autoBase    bool
	strategy    text.Strategy
	language    string
	features    []text.Feature
	origin      Point
	workers     int
	cache       *text.ShapingCache
	norm        norm.Form
	normalize   bool
	placeholder rune
	pathCache   int
}

func defaultConfig() config {
	return config{
		autoBase:    true,
		strategy:    text.StrategyItemize,
		language:    "en",
		placeholder: '\uFFFD',
	}
}

// WithBaseDirection sets the paragraph direction. Without it the
// direction is detected from the dominant strong characters of the text.
func WithBaseDirection(d text.Direction) Option {
	return func(c *config) {
		c.base = d
		c.autoBase = false
	}
}

// WithStrategy selects the bidi strategy. The default is
// text.StrategyItemize.
func WithStrategy(s text.Strategy) Option {
	return func(c *config) {
		c.strategy = s
	}
}

// WithLanguage sets the BCP 47 language passed to the shaping engine.
// New rejects malformed tags. The default is "en".
func WithLanguage(tag string) Option {
	return func(c *config) {
		c.language = tag
	}
}

// WithFeatures sets OpenType features applied to every run, for example
// text.Feature{Tag: "liga", Value: 0}.
func WithFeatures(features ...text.Feature) Option {
	return func(c *config) {
		c.features = append([]text.Feature(nil), features...)
	}
}

// WithOrigin sets the pen position of the first glyph. The default is
// (0, 0); y is the baseline.
func WithOrigin(p Point) Option {
	return func(c *config) {
		c.origin = p
	}
}

// WithWorkers shapes runs and converts outlines on n worker goroutines.
// n <= 0 uses GOMAXPROCS. Without it everything runs on the calling
// goroutine.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
		if n <= 0 {
			c.workers = -1
		}
	}
}

// WithShapingCache shares a shaping cache across layouts.
func WithShapingCache(cache *text.ShapingCache) Option {
	return func(c *config) {
		c.cache = cache
	}
}

// WithNormalization applies a Unicode normalization form to the text
// before segmentation. Glyph clusters then refer to the normalized text,
// which LayoutResult.Text holds.
func WithNormalization(form norm.Form) Option {
	return func(c *config) {
		c.norm = form
		c.normalize = true
	}
}

// WithPlaceholder sets the character drawn for clusters no font in the
// chain could shape. The default is U+FFFD; the notdef glyph is used when
// the font lacks the placeholder too.
func WithPlaceholder(r rune) Option {
	return func(c *config) {
		c.placeholder = r
	}
}

// WithPathCache enables a glyph path cache of the given capacity for
// Pipeline.Paths.
func WithPathCache(capacity int) Option {
	return func(c *config) {
		c.pathCache = capacity
	}
}

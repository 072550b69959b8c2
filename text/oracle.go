package text

import (
	"unicode/utf8"

	"github.com/gogpu/glyphrun/internal/cache"
)

// CapabilityRule decides, from the glyphs a font produced for a cluster,
// whether the font can render that cluster.
type CapabilityRule int

const (
	// RuleAnyGlyph accepts a cluster when at least one produced glyph is
	// not the notdef glyph.
	RuleAnyGlyph CapabilityRule = iota

	// RuleFirstGlyph accepts a cluster when the first produced glyph is
	// not the notdef glyph.
	RuleFirstGlyph
)

// String returns the string representation of the rule.
func (r CapabilityRule) String() string {
	switch r {
	case RuleAnyGlyph:
		return "AnyGlyph"
	case RuleFirstGlyph:
		return "FirstGlyph"
	default:
		return unknownStr
	}
}

// Accepts applies the rule to the glyphs produced for one cluster.
func (r CapabilityRule) Accepts(glyphs []RawGlyph) bool {
	if len(glyphs) == 0 {
		return false
	}
	if r == RuleFirstGlyph {
		return glyphs[0].ID != NotdefGlyph
	}
	for _, g := range glyphs {
		if g.ID != NotdefGlyph {
			return true
		}
	}
	return false
}

// Oracle answers capability queries for one font by shaping the cluster
// and inspecting the result. Answers are cached: single-rune clusters in a
// RuneToBoolMap, longer clusters in an LRU.
//
// Oracle is safe for concurrent use.
type Oracle struct {
	rule     CapabilityRule
	probe    func(cluster string) (RawShaping, error)
	runes    *RuneToBoolMap
	clusters *cache.Cache[string, bool]
}

// NewOracle creates an oracle that calls probe to shape unseen clusters.
// cacheSize bounds the multi-rune cluster cache; 0 means unbounded.
func NewOracle(rule CapabilityRule, cacheSize int, probe func(cluster string) (RawShaping, error)) *Oracle {
	return &Oracle{
		rule:     rule,
		probe:    probe,
		runes:    NewRuneToBoolMap(),
		clusters: cache.New[string, bool](cacheSize),
	}
}

// CanRender reports whether the font can render the grapheme cluster.
// Shaping failures count as "cannot render".
func (o *Oracle) CanRender(cluster string) bool {
	if cluster == "" {
		return false
	}

	if r, size := utf8.DecodeRuneInString(cluster); size == len(cluster) {
		if ok, checked := o.runes.Get(r); checked {
			return ok
		}
		ok := o.check(cluster)
		o.runes.Set(r, ok)
		return ok
	}

	return o.clusters.GetOrCreate(cluster, func() bool {
		return o.check(cluster)
	})
}

func (o *Oracle) check(cluster string) bool {
	raw, err := o.probe(cluster)
	if err != nil {
		Logger().Debug("capability probe failed", "cluster", cluster, "err", err)
		return false
	}
	return o.rule.Accepts(raw.Glyphs)
}

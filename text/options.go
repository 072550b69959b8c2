package text

// SourceOption configures FontSource creation.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	name   string
	parser FontParser
}

func defaultSourceConfig() sourceConfig {
	return sourceConfig{parser: defaultParser}
}

// WithSourceName overrides the name read from the font's name table.
// Registry uses it so that sources are reported under their registered
// names.
func WithSourceName(name string) SourceOption {
	return func(c *sourceConfig) {
		c.name = name
	}
}

// WithParser specifies the font parser backend.
// The default uses golang.org/x/image/font/opentype.
func WithParser(p FontParser) SourceOption {
	return func(c *sourceConfig) {
		if p != nil {
			c.parser = p
		}
	}
}

// FaceOption configures Face creation.
type FaceOption func(*faceConfig)

type faceConfig struct {
	shaper        ShapingEngine
	outliner      OutlineEngine
	rule          CapabilityRule
	clusterCache int
}

func defaultFaceConfig() faceConfig {
	return faceConfig{
		shaper:        defaultShaper,
		outliner:      defaultOutliner,
		rule:          RuleAnyGlyph,
		clusterCache: 1024,
	}
}

// WithShaper selects the shaping engine of the face.
// The default is the go-text HarfBuzz port (GoTextShaper).
func WithShaper(e ShapingEngine) FaceOption {
	return func(c *faceConfig) {
		if e != nil {
			c.shaper = e
		}
	}
}

// WithOutliner selects the outline engine of the face.
// The default reads outlines through golang.org/x/image/font/sfnt.
func WithOutliner(e OutlineEngine) FaceOption {
	return func(c *faceConfig) {
		if e != nil {
			c.outliner = e
		}
	}
}

// WithCapabilityRule selects how the face decides whether it can render a
// grapheme cluster. The default is RuleAnyGlyph.
func WithCapabilityRule(r CapabilityRule) FaceOption {
	return func(c *faceConfig) {
		c.rule = r
	}
}

// WithCapabilityCache sets how many multi-rune cluster answers the face
// remembers. Single-rune answers are always cached.
func WithCapabilityCache(n int) FaceOption {
	return func(c *faceConfig) {
		c.clusterCache = n
	}
}

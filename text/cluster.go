package text

import (
	"sync"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/uax/grapheme"
)

// Cluster is one grapheme cluster of the layout text.
type Cluster struct {
	// Text is the cluster's characters.
	Text string

	// Start and End are byte offsets of the cluster in the layout text.
	Start, End int

	// Script is the cluster's resolved script. Common and Inherited
	// characters take the script of their context.
	Script language.Script

	// Level is the bidi embedding level, set by ResolveLevels.
	Level int
}

var setupGraphemes sync.Once

// Clusters splits s into extended grapheme clusters (UAX #29) and resolves
// a script for each. An empty string yields no clusters.
func Clusters(s string) []Cluster {
	if s == "" {
		return nil
	}
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)

	gstr := grapheme.StringFromString(s)
	n := gstr.Len()
	clusters := make([]Cluster, 0, n)
	offset := 0
	for i := range n {
		g := gstr.Nth(i)
		if g == "" {
			continue
		}
		clusters = append(clusters, Cluster{
			Text:   g,
			Start:  offset,
			End:    offset + len(g),
			Script: clusterScript(g),
		})
		offset += len(g)
	}
	// Anything the breaker did not cover becomes one trailing cluster so
	// that clusters always partition s.
	if offset < len(s) {
		rest := s[offset:]
		clusters = append(clusters, Cluster{Text: rest, Start: offset, End: len(s), Script: clusterScript(rest)})
	}

	resolveClusterScripts(clusters)
	return clusters
}

// Join concatenates the cluster texts in order.
func Join(clusters []Cluster) string {
	n := 0
	for _, c := range clusters {
		n += len(c.Text)
	}
	buf := make([]byte, 0, n)
	for _, c := range clusters {
		buf = append(buf, c.Text...)
	}
	return string(buf)
}

// DetectScript returns the script of the first character of s that has a
// concrete script, or Latin when every character is Common or Inherited.
func DetectScript(s string) language.Script {
	for _, r := range s {
		if sc := language.LookupScript(r); isConcrete(sc) {
			return sc
		}
	}
	return language.Latin
}

// clusterScript returns the first concrete script in a cluster, or the
// script of its first rune when there is none.
func clusterScript(g string) language.Script {
	first := language.Common
	for i, r := range g {
		sc := language.LookupScript(r)
		if isConcrete(sc) {
			return sc
		}
		if i == 0 {
			first = sc
		}
	}
	return first
}

func isConcrete(sc language.Script) bool {
	return sc != language.Common && sc != language.Inherited && sc != language.Unknown
}

// resolveClusterScripts replaces Inherited scripts with the preceding
// concrete script and Common scripts with the surrounding one, preferring
// the preceding script when the two neighbours disagree.
func resolveClusterScripts(clusters []Cluster) {
	last := language.Common
	for i := range clusters {
		switch sc := clusters[i].Script; {
		case sc == language.Inherited:
			clusters[i].Script = last
		case isConcrete(sc):
			last = sc
		}
	}

	last = language.Common
	for i := range clusters {
		sc := clusters[i].Script
		if isConcrete(sc) {
			last = sc
			continue
		}
		next := nextConcreteScript(clusters, i+1)
		switch {
		case isConcrete(last):
			clusters[i].Script = last
		case isConcrete(next):
			clusters[i].Script = next
		default:
			clusters[i].Script = language.Common
		}
	}
}

func nextConcreteScript(clusters []Cluster, start int) language.Script {
	for j := start; j < len(clusters); j++ {
		if isConcrete(clusters[j].Script) {
			return clusters[j].Script
		}
	}
	return language.Common
}

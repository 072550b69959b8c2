package text

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSegmentText(t *testing.T) {
	latin := newFakeCandidate(1, "latin", asciiRunes)
	// The emoji font has base emoji only, no skin tone modifiers.
	emoji := newFakeCandidate(2, "emoji", "😀🎉👍👨")
	chain := []FontCandidate{latin, emoji}

	tests := []struct {
		name      string
		text      string
		wantTexts []string
		wantFonts []int
	}{
		{"empty", "", []string{}, []int{}},
		{"primary only", "hello, world", []string{"hello, world"}, []int{0}},
		{"fallback only", "😀🎉", []string{"😀🎉"}, []int{1}},
		{"two runs", "hi 😀", []string{"hi ", "😀"}, []int{0, 1}},
		{"three runs", "a😀b", []string{"a", "😀", "b"}, []int{0, 1, 0}},
		{"unsupported goes to last", "a★", []string{"a", "★"}, []int{0, 1}},
		{"modifier stays with its base", "a👍🏽b", []string{"a", "👍🏽", "b"}, []int{0, 1, 0}},
		{"zwj sequence is one cluster", "hi 👨\u200d👩\u200d👧", []string{"hi ", "👨\u200d👩\u200d👧"}, []int{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs := SegmentText(tt.text, chain)
			texts := runTexts(runs)
			fonts := make([]int, len(runs))
			for i, r := range runs {
				fonts[i] = r.FontIndex
				if r.Font != chain[r.FontIndex] {
					t.Errorf("run %d Font does not match FontIndex %d", i, r.FontIndex)
				}
				if tt.text[r.Start:r.End] != r.Text {
					t.Errorf("run %d offsets [%d,%d) do not cover %q", i, r.Start, r.End, r.Text)
				}
			}
			if diff := cmp.Diff(tt.wantTexts, texts); diff != "" {
				t.Errorf("run texts mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantFonts, fonts); diff != "" {
				t.Errorf("fonts mismatch (-want +got):\n%s", diff)
			}
			if joined := strings.Join(texts, ""); joined != tt.text {
				t.Errorf("runs join to %q, want %q", joined, tt.text)
			}
		})
	}
}

func TestSegmentEmptyChain(t *testing.T) {
	if runs := SegmentText("abc", nil); runs != nil {
		t.Errorf("SegmentText with empty chain = %v, want nil", runs)
	}
}

func TestSegmenterSplits(t *testing.T) {
	font := newFakeCandidate(1, "all", asciiRunes+"אבגмир")
	clusters := Clusters("ab мир אבג")
	ResolveLevels("ab мир אבג", clusters, DirectionLTR)

	t.Run("font only", func(t *testing.T) {
		s := Segmenter{Chain: []FontCandidate{font}}
		if got := len(s.Segment(clusters)); got != 1 {
			t.Errorf("runs = %d, want 1", got)
		}
	})

	t.Run("levels", func(t *testing.T) {
		s := Segmenter{Chain: []FontCandidate{font}, SplitLevels: true}
		runs := s.Segment(clusters)
		want := []string{"ab мир ", "אבג"}
		if diff := cmp.Diff(want, runTexts(runs)); diff != "" {
			t.Errorf("run texts mismatch (-want +got):\n%s", diff)
		}
		if runs[1].Direction != DirectionRTL || runs[1].Level != 1 {
			t.Errorf("second run direction = %v level %d, want RTL level 1", runs[1].Direction, runs[1].Level)
		}
	})

	t.Run("levels and scripts", func(t *testing.T) {
		s := Segmenter{Chain: []FontCandidate{font}, SplitLevels: true, SplitScripts: true}
		want := []string{"ab ", "мир ", "אבג"}
		if diff := cmp.Diff(want, runTexts(s.Segment(clusters))); diff != "" {
			t.Errorf("run texts mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestSegmentWithRealFont(t *testing.T) {
	face := loadGoRegular(t).Face(16)
	emoji := newFakeCandidate(9, "emoji", "😀")
	runs := SegmentText("ok 😀!", []FontCandidate{face, emoji})

	want := []string{"ok ", "😀", "!"}
	if diff := cmp.Diff(want, runTexts(runs)); diff != "" {
		t.Errorf("run texts mismatch (-want +got):\n%s", diff)
	}
	if len(runs) == 3 && (!runs[1].IsFallback() || runs[0].IsFallback()) {
		t.Error("only the emoji run should use the fallback font")
	}
}

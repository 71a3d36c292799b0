package textlayout_test

import (
	"strings"
	"testing"
	"unicode"

	"github.com/google/go-cmp/cmp"
	"github.com/rivo/uniseg"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"saraban-stamp/internal/engine/textlayout"
)

// monospace measures every rune as 10 units at size 1, except combining marks,
// which take no horizontal space (as in Thai fonts).
type monospace struct{}

func (monospace) TextWidth(s string, size float64) float64 {
	var w float64
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		w += 10
	}
	return w * size
}

func TestWrapBreaksOnOverflow(t *testing.T) {
	got := textlayout.Wrap("abcdef", 35, 1, monospace{})
	if diff := cmp.Diff([]string{"abc", "def"}, got); diff != "" {
		t.Errorf("Wrap() mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapBoundaryIsExclusive(t *testing.T) {
	// "abc" measures exactly 30; a line must stay narrower than the limit.
	got := textlayout.Wrap("abcdef", 30, 1, monospace{})
	if diff := cmp.Diff([]string{"ab", "cd", "ef"}, got); diff != "" {
		t.Errorf("Wrap() mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapHardBreaks(t *testing.T) {
	got := textlayout.Wrap("ab\n\ncdefg\r\nh", 35, 1, monospace{})
	want := []string{"ab", "", "cde", "fg", "h"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Wrap() mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapOversizeCharacterIsKept(t *testing.T) {
	got := textlayout.Wrap("abc", 5, 1, monospace{})
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Errorf("Wrap() mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapKeepsThaiClustersTogether(t *testing.T) {
	// ก + sara ii + mai ek is one cluster of width 10.
	got := textlayout.Wrap("กี่กี่กี่", 25, 1, monospace{})
	if diff := cmp.Diff([]string{"กี่กี่", "กี่"}, got); diff != "" {
		t.Errorf("Wrap() mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapEmpty(t *testing.T) {
	assert.Nil(t, textlayout.Wrap("", 100, 1, monospace{}))
}

func TestWrapIndented(t *testing.T) {
	got := textlayout.WrapIndented("abcdefgh", 25, 45, 1, monospace{})
	if diff := cmp.Diff([]string{"ab", "cdef", "gh"}, got); diff != "" {
		t.Errorf("WrapIndented() mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapWidthInvariant(t *testing.T) {
	m := monospace{}
	text := "ตามที่ท่านได้มอบหมายให้ดำเนินการจัดทำรายงานสรุปผลการปฏิบัติงาน\nประจำปีงบประมาณ พ.ศ. 2567 นั้น บัดนี้ได้ดำเนินการแล้วเสร็จ"
	for _, width := range []float64{15, 40, 95, 210, 1000} {
		for _, line := range textlayout.Wrap(text, width, 1, m) {
			if m.TextWidth(line, 1) >= width {
				// Only a lone cluster may exceed the limit.
				assert.Equal(t, 1, uniseg.GraphemeClusterCount(line), "width %v line %q", width, line)
			}
		}
	}
}

func TestWrapCompleteness(t *testing.T) {
	texts := []string{
		"เรียนผู้อำนวยการ เพื่อโปรดพิจารณาอนุญาต",
		"ทราบ\nดำเนินการตามเสนอ\n\nแจ้งผู้เกี่ยวข้อง",
		"plain ascii text that wraps",
	}
	for _, text := range texts {
		for _, width := range []float64{12, 33, 77, 500} {
			lines := textlayout.Wrap(text, width, 1, monospace{})
			assert.Equal(t, strings.ReplaceAll(text, "\n", ""), strings.Join(lines, ""))
			assert.GreaterOrEqual(t, len(lines), strings.Count(text, "\n")+1)
		}
	}
}

func TestWrapDeterministic(t *testing.T) {
	text := "คำสั่ง ให้ดำเนินการตามระเบียบโดยเคร่งครัด"
	first := textlayout.Wrap(text, 60, 1, monospace{})
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, textlayout.Wrap(text, 60, 1, monospace{})); diff != "" {
			t.Fatalf("Wrap() not deterministic:\n%s", diff)
		}
	}
}

func TestWrapWithWords(t *testing.T) {
	got := textlayout.WrapWith(textlayout.Words, "aa bb cc", 55, 55, 1, monospace{})
	if diff := cmp.Diff([]string{"aa ", "bb cc"}, got); diff != "" {
		t.Errorf("WrapWith(Words) mismatch (-want +got):\n%s", diff)
	}

	// A word longer than the line falls back to cluster breaks.
	got = textlayout.WrapWith(textlayout.Words, "abcdefgh", 35, 35, 1, monospace{})
	if diff := cmp.Diff([]string{"abc", "def", "gh"}, got); diff != "" {
		t.Errorf("WrapWith(Words) mismatch (-want +got):\n%s", diff)
	}
}

func TestWordUnitsRoundTrip(t *testing.T) {
	s := "  leading and  double spaces "
	assert.Equal(t, s, strings.Join(textlayout.Words.Units(s), ""))
}

func TestForLanguage(t *testing.T) {
	assert.Equal(t, textlayout.Clusters, textlayout.ForLanguage(language.Thai))
	assert.Equal(t, textlayout.Words, textlayout.ForLanguage(language.English))
	assert.Equal(t, textlayout.Clusters, textlayout.ForLanguage(language.Und))
}

func TestHeight(t *testing.T) {
	assert.Equal(t, 42.0, textlayout.Height(3, 14))
}

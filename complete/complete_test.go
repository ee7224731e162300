package complete

import (
	"strings"
	"testing"

	"github.com/kungfusheep/lineedit/buffer"
)

func TestDriverFirstWinnerWins(t *testing.T) {
	d := NewDriver()
	d.Register(func(line string, cursor int) ([]string, int) {
		return nil, -1
	})
	d.Register(func(line string, cursor int) ([]string, int) {
		return []string{"foo", "foobar"}, 2
	})
	d.Register(func(line string, cursor int) ([]string, int) {
		t.Fatal("should never be reached")
		return nil, -1
	})

	candidates, pos := d.Complete("xxfoo", 5)
	if pos != 2 || len(candidates) != 2 {
		t.Fatalf("got candidates=%v pos=%d", candidates, pos)
	}
}

func TestDriverNoCompleterOffers(t *testing.T) {
	d := NewDriver()
	d.Register(func(line string, cursor int) ([]string, int) { return nil, -1 })
	_, pos := d.Complete("x", 1)
	if pos != -1 {
		t.Fatalf("pos = %d, want -1", pos)
	}
}

func TestHandleSingleCandidateInstallsFully(t *testing.T) {
	buf := buffer.NewFromString("pri")
	buf.SetCursor(3)
	h := NewHandler(nil)
	changed := h.Handle(buf, []string{"print"}, 0)
	if !changed {
		t.Fatal("expected a change")
	}
	if buf.String() != "print" {
		t.Errorf("buffer = %q, want print", buf.String())
	}
	if buf.Cursor() != 5 {
		t.Errorf("cursor = %d, want 5", buf.Cursor())
	}
}

func TestHandleMultipleCandidatesInstallsCommonPrefix(t *testing.T) {
	buf := buffer.NewFromString("pri")
	buf.SetCursor(3)
	var out strings.Builder
	h := NewHandler(&out)
	changed := h.Handle(buf, []string{"print", "println", "printf"}, 0)
	if !changed {
		t.Fatal("expected a change (common prefix is longer than 'pri')")
	}
	if buf.String() != "print" {
		t.Errorf("buffer = %q, want print", buf.String())
	}
	if !strings.Contains(out.String(), "println") {
		t.Errorf("expected candidate listing, got %q", out.String())
	}
}

func TestHandleNoPositionIsNoop(t *testing.T) {
	buf := buffer.NewFromString("abc")
	h := NewHandler(nil)
	if h.Handle(buf, []string{"abc"}, -1) {
		t.Fatal("expected no-op on position -1")
	}
}

func TestListCandidatesAsksBeforeAutoprintingOverThreshold(t *testing.T) {
	var out strings.Builder
	asked := ""
	h := &Handler{AutoprintThreshold: 2, PageWidth: 80, Out: &out, Confirm: func(prompt string) bool {
		asked = prompt
		return false
	}}
	h.ListCandidates([]string{"a", "b", "c"})
	if asked == "" {
		t.Fatal("expected Confirm to be consulted")
	}
	if out.Len() != 0 {
		t.Errorf("expected nothing printed when Confirm declines, got %q", out.String())
	}
}

func TestListCandidatesSkipsConfirmUnderThreshold(t *testing.T) {
	var out strings.Builder
	h := &Handler{AutoprintThreshold: 10, PageWidth: 80, Out: &out, Confirm: func(string) bool {
		t.Fatal("should not be consulted under threshold")
		return false
	}}
	h.ListCandidates([]string{"a", "b"})
	if !strings.Contains(out.String(), "a") || !strings.Contains(out.String(), "b") {
		t.Errorf("expected candidates printed, got %q", out.String())
	}
}

func TestCommonPrefixNoSharedPrefix(t *testing.T) {
	if got := commonPrefix([]string{"abc", "xyz"}); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestFormatColumnsWrapsWithinWidth(t *testing.T) {
	out := FormatColumns([]string{"a", "bb", "ccc"}, 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	for _, line := range lines {
		if len(line) > 10 {
			t.Errorf("line %q exceeds width 10", line)
		}
	}
}

func TestFormatColumnsZeroWidthIsOnePerLine(t *testing.T) {
	out := FormatColumns([]string{"a", "bb"}, 0)
	if out != "a\nbb\n" {
		t.Errorf("got %q", out)
	}
}

package render

import (
	"strings"
	"testing"
)

func TestStripANSI(t *testing.T) {
	s := "\033[32mgreen\033[0m text"
	if got := StripANSI(s); got != "green text" {
		t.Errorf("got %q", got)
	}
}

func TestMaskApply(t *testing.T) {
	m := Mask{Enabled: true, Char: '*'}
	if got := m.apply([]rune("hunter2")); got != "*******" {
		t.Errorf("got %q", got)
	}
}

func TestMaskNullCharPrintsNothing(t *testing.T) {
	m := Mask{Enabled: true, Char: 0}
	if got := m.apply([]rune("secret")); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestMaskDisabledPassesThrough(t *testing.T) {
	m := Mask{}
	if got := m.apply([]rune("plain")); got != "plain" {
		t.Errorf("got %q", got)
	}
}

func TestPromptColumnUsesTailAfterLastNewline(t *testing.T) {
	got := PromptColumn("banner\n\033[1mprompt> \033[0m")
	want := len("prompt> ")
	if got != want {
		t.Errorf("got %d, want %d", got, want)
	}
}

func TestANSIMoveToSameRow(t *testing.T) {
	var sb strings.Builder
	s := NewANSIStrategy(&sb)
	s.MoveTo(10, 4, 80, "")
	if got := sb.String(); got != "\033[5G" {
		t.Errorf("got %q", got)
	}
}

func TestANSIMoveToAcrossWrap(t *testing.T) {
	var sb strings.Builder
	s := NewANSIStrategy(&sb)
	s.MoveTo(85, 4, 80, "")
	if got := sb.String(); got != "\033[1A\033[5G" {
		t.Errorf("got %q", got)
	}
}

func TestANSIEraseAheadSingleRow(t *testing.T) {
	var sb strings.Builder
	s := NewANSIStrategy(&sb)
	s.EraseAhead(5, 10, 80)
	if got := sb.String(); got != "\033[K" {
		t.Errorf("got %q", got)
	}
}

func TestANSIClearScreen(t *testing.T) {
	var sb strings.Builder
	s := NewANSIStrategy(&sb)
	s.ClearScreen()
	if got := sb.String(); got != "\033[2J\033[1;1H" {
		t.Errorf("got %q", got)
	}
}

func TestDumbMoveLeftUsesBackspace(t *testing.T) {
	var sb strings.Builder
	d := NewDumbStrategy(&sb)
	d.MoveTo(5, 2, 0, "")
	if got := sb.String(); got != "\b\b\b" {
		t.Errorf("got %q", got)
	}
}

func TestDumbMoveRightReEchoesTail(t *testing.T) {
	var sb strings.Builder
	d := NewDumbStrategy(&sb)
	d.MoveTo(2, 5, 0, "xyz")
	if got := sb.String(); got != "xyz" {
		t.Errorf("got %q", got)
	}
}

func TestDumbEraseAhead(t *testing.T) {
	var sb strings.Builder
	d := NewDumbStrategy(&sb)
	d.EraseAhead(3, 0, 0)
	if got := sb.String(); got != "   \b\b\b" {
		t.Errorf("got %q", got)
	}
}

func TestColumnWidthExpandsTabs(t *testing.T) {
	if got := ColumnWidth("ab\tc", 0); got != 7 {
		t.Errorf("got %d, want 7", got)
	}
}

func TestRendererRedrawMasksOutput(t *testing.T) {
	var sb strings.Builder
	r := New(NewDumbStrategy(&sb), 0)
	r.SetMask(Mask{Enabled: true, Char: '*'})
	r.Redraw(0, []rune("hello"), 5)
	if got := sb.String(); got != "*****" {
		t.Errorf("got %q", got)
	}
}

func TestANSIFixWrapEmitsDummySpace(t *testing.T) {
	var sb strings.Builder
	s := NewANSIStrategy(&sb)
	s.WeirdWrap = true
	s.FixWrap(80, 80)
	if got := sb.String(); got != " \r" {
		t.Errorf("got %q", got)
	}
	sb.Reset()
	s.FixWrap(40, 80)
	if got := sb.String(); got != "" {
		t.Errorf("expected no fix mid-row, got %q", got)
	}
}

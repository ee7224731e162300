package command

import (
	"testing"

	"github.com/kungfusheep/lineedit/buffer"
)

func TestBackwardForwardWordEmacs(t *testing.T) {
	b := buffer.NewFromString("hello world")
	b.SetCursor(11)

	BackwardWord(b)
	if b.Cursor() != 6 {
		t.Fatalf("BackwardWord -> cursor %d, want 6", b.Cursor())
	}
	BackwardWord(b)
	if b.Cursor() != 0 {
		t.Fatalf("BackwardWord -> cursor %d, want 0", b.Cursor())
	}

	ForwardWord(b)
	if b.Cursor() != 5 {
		t.Fatalf("ForwardWord -> cursor %d, want 5", b.Cursor())
	}
}

func TestKillLine(t *testing.T) {
	b := buffer.NewFromString("hello world")
	b.SetCursor(5)
	killed := KillLine(b)
	if killed != " world" {
		t.Errorf("killed = %q", killed)
	}
	if b.String() != "hello" {
		t.Errorf("buffer = %q", b.String())
	}
}

func TestKillWholeLine(t *testing.T) {
	b := buffer.NewFromString("hello world")
	b.SetCursor(3)
	KillWholeLine(b)
	if b.String() != "" || b.Cursor() != 0 {
		t.Errorf("buffer = %q cursor = %d", b.String(), b.Cursor())
	}
}

func TestUnixWordRuboutEatsPunctuation(t *testing.T) {
	b := buffer.NewFromString("/usr/local/bin")
	b.SetCursor(b.Len())
	UnixWordRubout(b)
	if b.String() != "" {
		t.Errorf("buffer = %q, want empty (unix-word-rubout eats through slashes)", b.String())
	}
}

func TestBackwardKillWordStopsAtPunctuation(t *testing.T) {
	b := buffer.NewFromString("/usr/local/bin")
	b.SetCursor(b.Len())
	BackwardKillWord(b)
	if b.String() != "/usr/local/" {
		t.Errorf("buffer = %q, want /usr/local/ (kill-word stops at delimiters)", b.String())
	}
}

func TestKillWord(t *testing.T) {
	b := buffer.NewFromString("hello world")
	b.SetCursor(0)
	KillWord(b)
	if b.String() != " world" {
		t.Errorf("buffer = %q", b.String())
	}
}

func TestCapitalizeWord(t *testing.T) {
	b := buffer.NewFromString("hello world")
	b.SetCursor(0)
	CapitalizeWord(b)
	if b.String() != "Hello world" {
		t.Errorf("buffer = %q", b.String())
	}
	if b.Cursor() != 5 {
		t.Errorf("cursor = %d, want 5", b.Cursor())
	}
}

func TestUpcaseDowncaseWord(t *testing.T) {
	b := buffer.NewFromString("hello world")
	b.SetCursor(0)
	UpcaseWord(b)
	if b.String() != "HELLO world" {
		t.Errorf("buffer = %q", b.String())
	}
	DowncaseWord(b)
	if b.String() != "HELLO world" {
		t.Errorf("downcase from position past first word should be a no-op, got %q", b.String())
	}
}

func TestTransposeCharsMidLine(t *testing.T) {
	b := buffer.NewFromString("abcd")
	b.SetCursor(2) // between b and c
	if !TransposeChars(b) {
		t.Fatal("expected success")
	}
	if b.String() != "acbd" {
		t.Errorf("buffer = %q, want acbd", b.String())
	}
}

func TestTransposeCharsAtEnd(t *testing.T) {
	b := buffer.NewFromString("abc")
	b.SetCursor(3)
	if !TransposeChars(b) {
		t.Fatal("expected success")
	}
	if b.String() != "acb" {
		t.Errorf("buffer = %q, want acb", b.String())
	}
}

func TestTransposeCharsTooShort(t *testing.T) {
	b := buffer.NewFromString("a")
	if TransposeChars(b) {
		t.Fatal("expected failure on single-char buffer")
	}
}

func TestTransposeCharsAtBeginningOfLine(t *testing.T) {
	b := buffer.NewFromString("abcd")
	b.SetCursor(0)
	if TransposeChars(b) {
		t.Fatal("expected failure at cursor 0")
	}
	if b.String() != "abcd" {
		t.Errorf("buffer = %q, want unchanged abcd", b.String())
	}
}

func TestViChangeCase(t *testing.T) {
	b := buffer.NewFromString("aB")
	b.SetCursor(0)
	ViChangeCase(b)
	if b.String() != "AB" || b.Cursor() != 1 {
		t.Errorf("buffer = %q cursor = %d", b.String(), b.Cursor())
	}
	ViChangeCase(b)
	if b.String() != "Ab" || b.Cursor() != 2 {
		t.Errorf("buffer = %q cursor = %d", b.String(), b.Cursor())
	}
}

func TestViDeleteAndRubout(t *testing.T) {
	b := buffer.NewFromString("abcdef")
	b.SetCursor(2)
	ViDelete(b, 3)
	if b.String() != "abf" {
		t.Errorf("buffer = %q, want abf", b.String())
	}

	b2 := buffer.NewFromString("abcdef")
	b2.SetCursor(4)
	ViRubout(b2, 2)
	if b2.String() != "abef" {
		t.Errorf("buffer = %q, want abef", b2.String())
	}
}

func TestViMatchParens(t *testing.T) {
	b := buffer.NewFromString("foo(bar(baz))")
	b.SetCursor(0)
	if !ViMatch(b) {
		t.Fatal("expected a match")
	}
	if b.Cursor() != 12 {
		t.Errorf("cursor = %d, want 12 (matching outer close paren)", b.Cursor())
	}
}

func TestViMatchNoBracket(t *testing.T) {
	b := buffer.NewFromString("no brackets here")
	if ViMatch(b) {
		t.Fatal("expected no match")
	}
}

func TestViNextPrevEndWord(t *testing.T) {
	b := buffer.NewFromString("one two three")
	b.SetCursor(0)
	ViNextWord(b)
	if b.Cursor() != 4 {
		t.Fatalf("ViNextWord -> %d, want 4", b.Cursor())
	}
	ViEndWord(b)
	if b.Cursor() != 6 {
		t.Fatalf("ViEndWord -> %d, want 6", b.Cursor())
	}
	ViPrevWord(b)
	if b.Cursor() != 4 {
		t.Fatalf("ViPrevWord -> %d, want 4", b.Cursor())
	}
}

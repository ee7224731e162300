package buffer

import "testing"

func TestWriteInsertsAtCursor(t *testing.T) {
	b := NewFromString("hllo")
	b.SetCursor(1)
	b.WriteRune('e')
	if b.String() != "hello" {
		t.Errorf("expected %q, got %q", "hello", b.String())
	}
	if b.Cursor() != 2 {
		t.Errorf("expected cursor at 2, got %d", b.Cursor())
	}
}

func TestWriteOvertypeExtendsPastEnd(t *testing.T) {
	b := NewFromString("ab")
	b.SetOvertype(true)
	b.SetCursor(1)
	b.Write([]rune("XYZ"))
	if b.String() != "aXYZ" {
		t.Errorf("expected %q, got %q", "aXYZ", b.String())
	}
	if b.Cursor() != 4 {
		t.Errorf("expected cursor at 4, got %d", b.Cursor())
	}
}

func TestDeleteBackwardAtStartFails(t *testing.T) {
	b := NewFromString("hello")
	b.SetCursor(0)
	if b.DeleteBackward() {
		t.Error("DeleteBackward at start should return false")
	}
	if b.Cursor() != 0 || b.Len() != 5 {
		t.Error("DeleteBackward at start must not change state")
	}
}

func TestDeleteForwardAtEndFails(t *testing.T) {
	b := NewFromString("hello")
	if b.DeleteForward() {
		t.Error("DeleteForward at end should return false")
	}
}

func TestDeleteRangeClampsAndMovesCursor(t *testing.T) {
	b := NewFromString("hello world")
	b.DeleteRange(5, 100)
	if b.String() != "hello" || b.Cursor() != 5 {
		t.Errorf("got %q cursor=%d", b.String(), b.Cursor())
	}
}

func TestCurrentAndNextCharSentinelPastEnd(t *testing.T) {
	b := NewFromString("hi")
	b.SetCursor(2)
	if b.Current() != NoChar {
		t.Errorf("expected NoChar at end, got %q", b.Current())
	}
	b.SetCursor(1)
	if b.Current() != 'i' {
		t.Errorf("expected 'i', got %q", b.Current())
	}
	if b.NextChar() != NoChar {
		t.Errorf("expected NoChar for NextChar past end, got %q", b.NextChar())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewFromString("hello")
	c := b.Clone()
	c.WriteRune('!')
	if b.String() == c.String() {
		t.Error("clone must be independent of the original")
	}
}

func TestCursorInvariantAfterEveryOp(t *testing.T) {
	b := NewFromString("hello")
	ops := []func(){
		func() { b.WriteRune('x') },
		func() { b.DeleteBackward() },
		func() { b.DeleteForward() },
		func() { b.SetCursor(-5) },
		func() { b.SetCursor(1000) },
		func() { b.DeleteRange(0, 2) },
	}
	for _, op := range ops {
		op()
		if b.Cursor() < 0 || b.Cursor() > b.Len() {
			t.Fatalf("invariant violated: cursor=%d len=%d", b.Cursor(), b.Len())
		}
	}
}

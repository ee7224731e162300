package keys

import (
	"io"
	"strings"
	"testing"
	"time"
)

func TestNonBlockingReadSequential(t *testing.T) {
	nb := NewNonBlocking(strings.NewReader("abc"))
	defer nb.Shutdown()

	for _, want := range []byte{'a', 'b', 'c'} {
		got, err := nb.Read()
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	}

	if _, err := nb.Read(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestNonBlockingPeekDoesNotConsume(t *testing.T) {
	nb := NewNonBlocking(strings.NewReader("x"))
	defer nb.Shutdown()

	b, err := nb.Peek(time.Second)
	if err != nil || b != 'x' {
		t.Fatalf("Peek: got %q err=%v", b, err)
	}
	b2, err := nb.Read()
	if err != nil || b2 != 'x' {
		t.Fatalf("Read after Peek: got %q err=%v", b2, err)
	}
}

func TestNonBlockingPeekTimesOut(t *testing.T) {
	r, _ := io.Pipe() // never written to
	nb := NewNonBlocking(r)
	defer nb.Shutdown()

	_, err := nb.Peek(20 * time.Millisecond)
	if err != ErrPeekTimeout {
		t.Fatalf("expected ErrPeekTimeout, got %v", err)
	}
}

func TestBlockingSourceNeverEnabled(t *testing.T) {
	b := NewBlocking(strings.NewReader("z"))
	if b.Enabled() {
		t.Fatal("Blocking source should report Enabled() == false")
	}
	if _, err := b.Peek(time.Millisecond); err != ErrPeekTimeout {
		t.Fatalf("expected immediate ErrPeekTimeout, got %v", err)
	}
	got, err := b.Read()
	if err != nil || got != 'z' {
		t.Fatalf("Read: got %q err=%v", got, err)
	}
}

func TestDecoderReadCharacterASCII(t *testing.T) {
	d := NewDecoder(NewBlocking(strings.NewReader("A")), 150*time.Millisecond)
	r, err := d.ReadCharacter()
	if err != nil || r != 'A' {
		t.Fatalf("got %q err=%v", r, err)
	}
}

func TestDecoderReadCharacterMultiByte(t *testing.T) {
	// é is U+00E9, encoded as 0xC3 0xA9.
	d := NewDecoder(NewBlocking(strings.NewReader("é")), 150*time.Millisecond)
	r, err := d.ReadCharacter()
	if err != nil || r != 'é' {
		t.Fatalf("got %q err=%v", r, err)
	}
}

func TestDecoderReadCharacterEOF(t *testing.T) {
	d := NewDecoder(NewBlocking(strings.NewReader("")), 150*time.Millisecond)
	_, err := d.ReadCharacter()
	if err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestEchoWidthControlAndDel(t *testing.T) {
	if w := EchoWidth(1, 0); w != 2 {
		t.Errorf("Ctrl-A width = %d, want 2", w)
	}
	if w := EchoWidth(0x7F, 0); w != 2 {
		t.Errorf("DEL width = %d, want 2", w)
	}
	if s := EchoString(1); s != "^A" {
		t.Errorf("EchoString(Ctrl-A) = %q, want ^A", s)
	}
	if s := EchoString(0x7F); s != "^?" {
		t.Errorf("EchoString(DEL) = %q, want ^?", s)
	}
}

func TestEchoWidthMeta(t *testing.T) {
	// Meta-A: 0xC1 = 0x80 | 'A'. "M-" + caret-or-literal of 'A' = "M-A".
	if s := EchoString(0xC1); s != "M-A" {
		t.Errorf("EchoString(Meta-A) = %q, want M-A", s)
	}
	if w := EchoWidth(0xC1, 0); w != 3 {
		t.Errorf("Meta-A width = %d, want 3", w)
	}
}

func TestEchoWidthTabToNextMultipleOf8(t *testing.T) {
	cases := []struct {
		col  int
		want int
	}{
		{0, 8},
		{1, 7},
		{7, 1},
		{8, 8},
		{9, 7},
	}
	for _, c := range cases {
		if got := EchoWidth('\t', c.col); got != c.want {
			t.Errorf("EchoWidth(tab, col=%d) = %d, want %d", c.col, got, c.want)
		}
	}
}

func TestEchoWidthOrdinaryPrintable(t *testing.T) {
	if w := EchoWidth('x', 0); w != 1 {
		t.Errorf("'x' width = %d, want 1", w)
	}
	// Wide CJK code points are deliberately still width 1: this module
	// doesn't account for wide-char display width.
	if w := EchoWidth('中', 0); w != 1 {
		t.Errorf("CJK rune width = %d, want 1 (one-code-point-one-column)", w)
	}
}

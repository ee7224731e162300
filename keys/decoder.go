package keys

import (
	"errors"
	"io"
	"time"
	"unicode/utf8"
)

// ErrEOF is a keys-scoped end-of-input sentinel. ReadCharacter does not
// return it: when the underlying Source is exhausted, ReadCharacter
// returns io.EOF.
var ErrEOF = errors.New("keys: end of input")

// Decoder turns a raw byte Source into logical code points. It owns no
// terminal state of its own; the Controller drives it one character at a
// time.
type Decoder struct {
	src Source

	// escapeTimeout is how long Peek waits when the controller asks
	// whether a lone ESC is actually the start of a longer sequence.
	escapeTimeout time.Duration
}

// NewDecoder wraps src. escapeTimeout is the duration later passed to
// src.Peek by the controller's ESC disambiguation step; the decoder
// itself only needs it to implement PeekTimeout below.
func NewDecoder(src Source, escapeTimeout time.Duration) *Decoder {
	return &Decoder{src: src, escapeTimeout: escapeTimeout}
}

// ReadCharacter decodes the next UTF-8 code point from the source,
// accumulating continuation bytes as needed. Returns utf8.RuneError with a
// width of 1 if a continuation byte never arrives before EOF — the byte is
// consumed and surfaced as the replacement character rather than wedging
// the read loop.
func (d *Decoder) ReadCharacter() (rune, error) {
	var buf [utf8.UTFMax]byte

	b0, err := d.src.Read()
	if err != nil {
		return 0, io.EOF
	}
	buf[0] = b0
	if b0 < utf8.RuneSelf {
		return rune(b0), nil
	}

	n := runeLen(b0)
	if n <= 1 {
		// Not a valid UTF-8 lead byte; surface it verbatim so callers can
		// still bind raw high-bit bytes (e.g. Meta-prefixed sequences).
		return rune(b0), nil
	}

	for i := 1; i < n; i++ {
		b, err := d.src.Read()
		if err != nil {
			r, _ := utf8.DecodeRune(buf[:i])
			return r, nil
		}
		buf[i] = b
	}

	r, size := utf8.DecodeRune(buf[:n])
	if r == utf8.RuneError && size == 1 {
		return rune(buf[0]), nil
	}
	return r, nil
}

// runeLen reports the expected total byte length of a UTF-8 sequence
// starting with lead byte b, or 0/1 if b isn't a valid multi-byte lead.
func runeLen(b byte) int {
	switch {
	case b&0x80 == 0x00:
		return 1
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	default:
		return 0
	}
}

// IsNonBlockingEnabled reports whether the underlying Source actually
// supports a timed Peek — gating the controller's ESC-disambiguation step.
func (d *Decoder) IsNonBlockingEnabled() bool {
	return d.src.Enabled()
}

// PeekTimeout asks the source whether another byte arrives within the
// decoder's configured escape timeout, without consuming it.
func (d *Decoder) PeekTimeout() (byte, error) {
	return d.src.Peek(d.escapeTimeout)
}

// EchoWidth computes the number of terminal columns a code point occupies
// when echoed under caret notation: control characters print as `^X`, DEL
// prints as `^?`, high-bit (meta) characters print as `M-` plus the
// caret-notation of the low seven bits, tabs expand to the next multiple
// of 8 relative to the current column, and everything else — since this
// module deliberately does not account for wide or zero-width runes — is
// one column.
func EchoWidth(r rune, col int) int {
	switch {
	case r == '\t':
		return 8 - (col % 8)
	case r < 0x20:
		return 2 // ^X
	case r == 0x7F:
		return 2 // ^?
	case r > 0x7F && r < 0x100:
		// Meta/high-bit byte: "M-" plus the caret-notation of the masked
		// low byte.
		low := r &^ 0x80
		return 2 + EchoWidth(low, col+2)
	default:
		return 1
	}
}

// EchoString renders r the way the terminal would echo it under the
// caret-notation rule, for renderers that print literal glyphs instead of
// relying on the terminal's own control-character handling.
func EchoString(r rune) string {
	switch {
	case r == '\t':
		return "\t"
	case r < 0x20:
		return string([]rune{'^', rune(r + 0x40)})
	case r == 0x7F:
		return "^?"
	case r > 0x7F && r < 0x100:
		return "M-" + EchoString(r&^0x80)
	default:
		return string(r)
	}
}

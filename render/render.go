// Package render implements two display strategies: an ANSI strategy
// that drives the terminal with CSI sequences, and a dumb strategy that
// gets by with backspaces and literal re-echoing for terminals with no
// cursor-addressing capability.
package render

import (
	"fmt"
	"io"
	"strings"
)

// StripANSI removes ANSI CSI escape sequences from s, since a prompt may
// contain embedded ANSI escapes that must be stripped for width
// computation.
func StripANSI(s string) string {
	var sb strings.Builder
	inEscape := false
	for _, r := range s {
		if r == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Mask configures echo masking: when Enabled, every buffer character is
// printed as Char instead of itself; Char == 0 prints nothing at all.
type Mask struct {
	Enabled bool
	Char    rune
}

// apply returns what should actually be written for buffer contents s under
// the current mask setting.
func (m Mask) apply(s []rune) string {
	if !m.Enabled {
		return string(s)
	}
	if m.Char == 0 {
		return ""
	}
	out := make([]rune, len(s))
	for i := range s {
		out[i] = m.Char
	}
	return string(out)
}

// Strategy is the low-level terminal driver a Renderer delegates to. Column
// arguments are 0-based; WeirdWrap is not part of the interface because only
// the ANSI strategy needs it.
type Strategy interface {
	// Write emits s verbatim (already mask-substituted by the caller).
	Write(s string)
	// MoveTo repositions the cursor from column fromCol to column toCol,
	// both measured from the start of the line, given the terminal's width.
	// tail is the buffer text between the two columns in source order — the
	// dumb strategy needs it to re-echo when moving forward.
	MoveTo(fromCol, toCol, width int, tail string)
	// EraseAhead erases n columns' worth of previously-printed tail
	// starting at the cursor's current column col, then returns the cursor
	// to col.
	EraseAhead(n, col, width int)
	// ClearScreen clears the whole display and homes the cursor; the dumb
	// strategy can't do this and leaves it a no-op.
	ClearScreen()
}

// ANSIStrategy drives an io.Writer with CSI sequences.
type ANSIStrategy struct {
	w io.Writer

	// WeirdWrap works around terminals that don't commit a line wrap until
	// the next character is printed: whenever the cursor would land exactly
	// on column 0 after filling the last column, emit a dummy space plus a
	// carriage return to force the wrap.
	WeirdWrap bool
}

// NewANSIStrategy wraps w.
func NewANSIStrategy(w io.Writer) *ANSIStrategy {
	return &ANSIStrategy{w: w}
}

func (a *ANSIStrategy) Write(s string) {
	io.WriteString(a.w, s)
}

// FixWrap works around terminals that won't commit a line wrap until the
// next character is printed: if afterCol lands exactly on a width boundary,
// emit a dummy space plus carriage return to force the wrap now.
func (a *ANSIStrategy) FixWrap(afterCol, width int) {
	if !a.WeirdWrap || width <= 0 {
		return
	}
	if afterCol != 0 && afterCol%width == 0 {
		fmt.Fprint(a.w, " \r")
	}
}

func (a *ANSIStrategy) MoveTo(fromCol, toCol, width int, _ string) {
	if width <= 0 {
		width = 1 << 30 // treat as unbounded; avoids div-by-zero on an unset width
	}
	fromRow, toRow := fromCol/width, toCol/width
	if delta := fromRow - toRow; delta > 0 {
		fmt.Fprintf(a.w, "\033[%dA", delta)
	} else if delta < 0 {
		fmt.Fprintf(a.w, "\033[%dB", -delta)
	}
	fmt.Fprintf(a.w, "\033[%dG", toCol%width+1)
}

func (a *ANSIStrategy) EraseAhead(n, col, width int) {
	if n <= 0 {
		return
	}
	if width <= 0 {
		width = 1 << 30
	}
	startRow := col / width
	endRow := (col + n) / width
	rows := endRow - startRow
	fmt.Fprint(a.w, "\033[K")
	for i := 0; i < rows; i++ {
		fmt.Fprint(a.w, "\033[B\033[2K")
	}
	if rows > 0 {
		fmt.Fprintf(a.w, "\033[%dA", rows)
		fmt.Fprintf(a.w, "\033[%dG", col%width+1)
	}
}

func (a *ANSIStrategy) ClearScreen() {
	fmt.Fprint(a.w, "\033[2J\033[1;1H")
}

// DumbStrategy drives an io.Writer with nothing but backspaces and literal
// re-echo, for terminals with no cursor-addressing capability.
type DumbStrategy struct {
	w io.Writer
}

// NewDumbStrategy wraps w.
func NewDumbStrategy(w io.Writer) *DumbStrategy {
	return &DumbStrategy{w: w}
}

func (d *DumbStrategy) Write(s string) {
	io.WriteString(d.w, s)
}

// dumbTabWidth is the column cost of a tab inside the editable buffer
// under the dumb strategy: tabs expand to width 4.
const dumbTabWidth = 4

func (d *DumbStrategy) MoveTo(fromCol, toCol, _ int, tail string) {
	switch {
	case toCol < fromCol:
		n := 0
		for range tail {
			n++
		}
		if n == 0 {
			n = fromCol - toCol
		}
		for i := 0; i < n; i++ {
			io.WriteString(d.w, "\b")
		}
	case toCol > fromCol:
		io.WriteString(d.w, tail)
	}
}

func (d *DumbStrategy) EraseAhead(n, _, _ int) {
	if n <= 0 {
		return
	}
	io.WriteString(d.w, strings.Repeat(" ", n))
	io.WriteString(d.w, strings.Repeat("\b", n))
}

func (d *DumbStrategy) ClearScreen() {
	// No-op: the dumb strategy has no cursor addressing to clear with.
}

// ColumnWidth returns the number of display columns s occupies when
// written by the dumb strategy, counting each tab as dumbTabWidth columns;
// the ANSI strategy relies on terminal semantics instead.
func ColumnWidth(s string, startCol int) int {
	col := startCol
	for _, r := range s {
		if r == '\t' {
			col += dumbTabWidth
		} else {
			col++
		}
	}
	return col - startCol
}

// Renderer reconciles the terminal display with a buffer's contents and
// cursor position using whichever Strategy it's built with.
type Renderer struct {
	strategy Strategy
	width    int
	mask     Mask
}

// New builds a Renderer over strategy with the given terminal width (0 means
// unknown/unbounded).
func New(strategy Strategy, width int) *Renderer {
	return &Renderer{strategy: strategy, width: width}
}

// SetWidth updates the terminal width, e.g. on SIGWINCH.
func (r *Renderer) SetWidth(w int) { r.width = w }

// SetMask configures echo masking.
func (r *Renderer) SetMask(m Mask) { r.mask = m }

// PromptColumn computes the starting cursor column for a prompt: the
// stripped length of the portion after the prompt's last newline.
func PromptColumn(prompt string) int {
	stripped := StripANSI(prompt)
	if i := strings.LastIndexByte(stripped, '\n'); i >= 0 {
		stripped = stripped[i+1:]
	}
	return len([]rune(stripped))
}

// Redraw writes the masked buffer contents starting at promptCol and leaves
// the cursor at promptCol+cursor, per the one-code-point-one-column model.
func (r *Renderer) Redraw(promptCol int, buf []rune, cursor int) {
	visible := r.mask.apply(buf)
	r.strategy.Write(visible)
	visLen := len([]rune(visible))
	if ww, ok := r.strategy.(interface{ FixWrap(int, int) }); ok {
		ww.FixWrap(promptCol+visLen, r.width)
	}
	r.strategy.MoveTo(promptCol+visLen, promptCol+cursor, r.width, "")
}

// MoveCursor repositions the cursor from column fromCol to toCol; tail is
// the buffer substring between the two (in source order) for strategies
// that need to re-echo rather than address directly.
func (r *Renderer) MoveCursor(fromCol, toCol int, tail []rune) {
	r.strategy.MoveTo(fromCol, toCol, r.width, string(tail))
}

// EraseAhead erases n characters' worth of previously-printed tail starting
// at column col.
func (r *Renderer) EraseAhead(n, col int) {
	r.strategy.EraseAhead(n, col, r.width)
}

// ClearScreen clears the display, if the strategy supports it.
func (r *Renderer) ClearScreen() {
	r.strategy.ClearScreen()
}

// Write emits s verbatim, without masking and without any cursor
// bookkeeping; the editor uses it to print the prompt.
func (r *Renderer) Write(s string) {
	r.strategy.Write(s)
}

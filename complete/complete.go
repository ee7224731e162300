// Package complete implements a completion driver and handler: an ordered
// list of completers, consulted in turn, and a handler that decides what
// to do with whatever the winning completer returns.
package complete

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/kungfusheep/lineedit/buffer"
)

// Completer offers completions for (line, cursor): it returns candidates
// and the buffer position the first candidate character replaces, or
// position -1 if it has nothing to offer. Completers are tried in
// registration order until one bites.
type Completer func(line string, cursor int) (candidates []string, position int)

// Driver holds an ordered list of Completers, each one tried until the
// first returns a non-negative position.
type Driver struct {
	completers []Completer
}

// NewDriver returns an empty driver.
func NewDriver() *Driver {
	return &Driver{}
}

// Register appends c to the end of the completer list.
func (d *Driver) Register(c Completer) {
	d.completers = append(d.completers, c)
}

// Complete asks each registered completer in turn and returns the first
// winning result. position is -1 if none of them offered anything.
func (d *Driver) Complete(line string, cursor int) (candidates []string, position int) {
	for _, c := range d.completers {
		cands, pos := c(line, cursor)
		if pos >= 0 {
			return cands, pos
		}
	}
	return nil, -1
}

// Handler decides what to do with a completer's result: invoked with
// (buf, candidates, position), it returns true iff it modified the buffer.
// buf is the only state it needs — not the rest of the controller.
type Handler struct {
	// AutoprintThreshold gates the "show all N matches?" confirmation;
	// default 100.
	AutoprintThreshold int
	// PageWidth is the column width used to lay out a candidate list;
	// 0 disables column wrapping (one candidate per line).
	PageWidth int
	// Confirm is asked "Display all N possibilities? (y or n)" when candidates exceed
	// AutoprintThreshold; nil means always show. Supplied by the host as
	// an external collaborator.
	Confirm func(prompt string) bool
	// Out receives the listing printed by ListCandidates / a declined
	// autoprint prompt.
	Out io.Writer
}

// NewHandler returns a Handler with the default autoprint threshold.
func NewHandler(out io.Writer) *Handler {
	return &Handler{AutoprintThreshold: 100, PageWidth: 80, Out: out}
}

// Handle installs a single completion directly, or the longest common
// prefix of multiple candidates, into buf at position, leaving the cursor
// just after the inserted text. If more than one candidate remains after
// the common-prefix insertion, it lists them (subject to the
// autoprint-threshold confirmation). Returns true iff it changed buf.
func (h *Handler) Handle(buf *buffer.Buffer, candidates []string, position int) bool {
	if position < 0 || len(candidates) == 0 {
		return false
	}

	prefix := commonPrefix(candidates)
	changed := h.installPrefix(buf, position, prefix)

	if len(candidates) > 1 {
		h.ListCandidates(candidates)
	}
	return changed
}

// installPrefix replaces buf[position:cursor] with prefix and returns
// whether that's actually a change.
func (h *Handler) installPrefix(buf *buffer.Buffer, position int, prefix string) bool {
	cursor := buf.Cursor()
	if position > cursor {
		position = cursor
	}
	current := string(buf.Runes()[position:cursor])
	if current == prefix {
		return false
	}
	buf.DeleteRange(position, cursor)
	buf.SetCursor(position)
	buf.Write([]rune(prefix))
	return true
}

// ListCandidates prints candidates to h.Out, confirming first if there are
// more than AutoprintThreshold of them.
func (h *Handler) ListCandidates(candidates []string) {
	if h.Out == nil {
		return
	}
	n := len(candidates)
	if n > h.AutoprintThreshold {
		prompt := fmt.Sprintf("Display all %d possibilities? (y or n)", n)
		if h.Confirm != nil && !h.Confirm(prompt) {
			return
		}
	}
	fmt.Fprint(h.Out, FormatColumns(candidates, h.PageWidth))
}

// commonPrefix returns the longest string every candidate starts with.
func commonPrefix(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)
	first, last := sorted[0], sorted[len(sorted)-1]
	i := 0
	for i < len(first) && i < len(last) && first[i] == last[i] {
		i++
	}
	return first[:i]
}

// FormatColumns lays candidates out in columns no wider than width (0 means
// one per line), the way `possible-completions` prints matches.
func FormatColumns(candidates []string, width int) string {
	if len(candidates) == 0 {
		return ""
	}
	longest := 0
	for _, c := range candidates {
		if len(c) > longest {
			longest = len(c)
		}
	}
	colWidth := longest + 2
	if width <= 0 || colWidth > width {
		var sb strings.Builder
		for _, c := range candidates {
			sb.WriteString(c)
			sb.WriteByte('\n')
		}
		return sb.String()
	}

	cols := width / colWidth
	if cols < 1 {
		cols = 1
	}
	var sb strings.Builder
	for i, c := range candidates {
		sb.WriteString(c)
		if (i+1)%cols == 0 || i == len(candidates)-1 {
			sb.WriteByte('\n')
		} else {
			sb.WriteString(strings.Repeat(" ", colWidth-len(c)))
		}
	}
	return sb.String()
}

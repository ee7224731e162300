// Package search implements two incremental-search sub-loops, reverse-
// i-search and Vi "/" and "?" search: both clone the line buffer, drive
// their own tiny prompt, and either commit a match back into the buffer or
// restore what was there before.
package search

import (
	"strings"

	"github.com/kungfusheep/lineedit/buffer"
	"github.com/kungfusheep/lineedit/history"
)

// State holds the incremental-search term and match position: a term being
// built up rune by rune, the current match index (or -1), and the
// previous term carried across invocations of the search.
type State struct {
	Term         []rune
	Index        int
	PreviousTerm []rune
}

// New returns a fresh, empty search state.
func New() *State {
	return &State{Index: -1}
}

// Reset clears the term and match, remembering the term as PreviousTerm so
// a bare Ctrl-R with nothing typed can resume the last search.
func (s *State) Reset() {
	if len(s.Term) > 0 {
		s.PreviousTerm = append(s.PreviousTerm[:0], s.Term...)
	}
	s.Term = s.Term[:0]
	s.Index = -1
}

// AppendRune appends r to the search term.
func (s *State) AppendRune(r rune) {
	s.Term = append(s.Term, r)
}

// Backspace removes the last rune of the term. Returns false if the term
// was already empty.
func (s *State) Backspace() bool {
	if len(s.Term) == 0 {
		return false
	}
	s.Term = s.Term[:len(s.Term)-1]
	return true
}

// Prompt renders the reverse-i-search prompt line for the current term.
func (s *State) Prompt() string {
	return "(reverse-i-search)`" + string(s.Term) + "': "
}

// FailedPrompt renders the prompt once a search has run off the end of
// history with no match.
func (s *State) FailedPrompt() string {
	return "(failed reverse-i-search)`" + string(s.Term) + "': "
}

// SearchBackward searches view's entries from just before from (exclusive)
// down to index 0 for the first one containing term, and returns its index
// and the entry text. found is false if no entry matches.
func SearchBackward(view *history.View, term string, from int) (idx int, entry string, found bool) {
	if term == "" {
		return -1, "", false
	}
	for i := from - 1; i >= 0; i-- {
		e := view.Get(i)
		if strings.Contains(e, term) {
			return i, e, true
		}
	}
	return -1, "", false
}

// SearchForward searches forward from just after from for the next entry
// containing term.
func SearchForward(view *history.View, term string, from int) (idx int, entry string, found bool) {
	if term == "" {
		return -1, "", false
	}
	n := view.Size()
	for i := from + 1; i < n; i++ {
		e := view.Get(i)
		if strings.Contains(e, term) {
			return i, e, true
		}
	}
	return -1, "", false
}

// ViDirection selects the "/" (Forward) or "?" (Backward) sub-loop.
type ViDirection int

const (
	ViForward ViDirection = iota
	ViBackward
)

// ViLoop drives the Vi "/" / "?" search sub-loop. It owns a clone of the
// line buffer being edited so the caller can always restore it on abort,
// and the typed search term.
type ViLoop struct {
	Direction ViDirection
	Term      []rune
	Saved     *buffer.Buffer
	// MatchIndex is the history index of the current match, once one has
	// been found; -1 before then.
	MatchIndex int
}

// NewViLoop starts a search sub-loop, saving a clone of buf to restore on
// abort.
func NewViLoop(dir ViDirection, buf *buffer.Buffer) *ViLoop {
	return &ViLoop{Direction: dir, Saved: buf.Clone(), MatchIndex: -1}
}

// Prompt renders the single-character prompt the sub-loop displays in place
// of the normal line.
func (v *ViLoop) Prompt() string {
	if v.Direction == ViForward {
		return "/" + string(v.Term)
	}
	return "?" + string(v.Term)
}

// AppendRune appends r to the term being typed.
func (v *ViLoop) AppendRune(r rune) {
	v.Term = append(v.Term, r)
}

// Backspace removes the last rune of the term; returns false (the caller
// should treat this as an abort) once the term is already empty.
func (v *ViLoop) Backspace() bool {
	if len(v.Term) == 0 {
		return false
	}
	v.Term = v.Term[:len(v.Term)-1]
	return true
}

// Search runs the configured direction's search starting from the
// appropriate end of history: "/" scans forward from index 0 upward; "?"
// scans backward from size-1 downward to (but never including) index 0.
func (v *ViLoop) Search(view *history.View) (idx int, entry string, found bool) {
	term := string(v.Term)
	if term == "" {
		return -1, "", false
	}
	n := view.Size()
	if v.Direction == ViForward {
		for i := 0; i < n; i++ {
			if e := view.Get(i); strings.Contains(e, term) {
				v.MatchIndex = i
				return i, e, true
			}
		}
		return -1, "", false
	}
	for i := n - 1; i > 0; i-- {
		if e := view.Get(i); strings.Contains(e, term) {
			v.MatchIndex = i
			return i, e, true
		}
	}
	return -1, "", false
}

// Next moves to the next (n) or previous (N) entry still containing the
// term, in the post-match loop.
func (v *ViLoop) Next(view *history.View, reverse bool) (idx int, entry string, found bool) {
	forward := v.Direction == ViForward
	if reverse {
		forward = !forward
	}
	if forward {
		idx, entry, found = SearchForward(view, string(v.Term), v.MatchIndex)
	} else {
		idx, entry, found = SearchBackward(view, string(v.Term), v.MatchIndex)
	}
	if found {
		v.MatchIndex = idx
	}
	return idx, entry, found
}

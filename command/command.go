// Package command implements the editing and motion command set:
// everything the controller dispatches an Operation tag to, built directly
// on top of a buffer.Buffer. None of these functions do I/O; the
// controller is responsible for triggering a redraw afterward.
package command

import (
	"unicode"

	"github.com/kungfusheep/lineedit/buffer"
)

// isEmacsWordChar is Emacs's word-boundary rule: a word is a maximal run of
// letters and digits; everything else is a delimiter.
func isEmacsWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isUnixWordChar is the unix-word-rubout rule: any non-whitespace
// character counts as part of a word, which is why it eats through
// punctuation that isEmacsWordChar would stop at (e.g. in a path).
func isUnixWordChar(r rune) bool {
	return !unicode.IsSpace(r)
}

// isViWordChar is Vi's simplified word rule for the flat w/b/e motions this
// module implements (no operator-pending compound commands): a word is a
// maximal run of non-whitespace characters.
func isViWordChar(r rune) bool {
	return !unicode.IsSpace(r)
}

// BeginningOfLine moves the cursor to column 0.
func BeginningOfLine(b *buffer.Buffer) {
	b.SetCursor(0)
}

// EndOfLine moves the cursor past the last character.
func EndOfLine(b *buffer.Buffer) {
	b.SetCursor(b.Len())
}

// BackwardChar moves the cursor back one position. Returns false at the
// start of the buffer.
func BackwardChar(b *buffer.Buffer) bool {
	if b.Cursor() == 0 {
		return false
	}
	b.SetCursor(b.Cursor() - 1)
	return true
}

// ForwardChar moves the cursor forward one position. Returns false at the
// end of the buffer.
func ForwardChar(b *buffer.Buffer) bool {
	if b.Cursor() >= b.Len() {
		return false
	}
	b.SetCursor(b.Cursor() + 1)
	return true
}

func skipBackward(b *buffer.Buffer, from int, isWord func(rune) bool, wantWord bool) int {
	i := from
	for i > 0 && isWord(b.CharAt(i-1)) == wantWord {
		i--
	}
	return i
}

func skipForward(b *buffer.Buffer, from int, isWord func(rune) bool, wantWord bool) int {
	i := from
	n := b.Len()
	for i < n && isWord(b.CharAt(i)) == wantWord {
		i++
	}
	return i
}

// backwardWord moves to the start of the previous word under the given
// word-char predicate.
func backwardWord(b *buffer.Buffer, isWord func(rune) bool) {
	i := skipBackward(b, b.Cursor(), isWord, false)
	i = skipBackward(b, i, isWord, true)
	b.SetCursor(i)
}

// forwardWord moves past the end of the next word under the given
// word-char predicate.
func forwardWord(b *buffer.Buffer, isWord func(rune) bool) {
	i := skipForward(b, b.Cursor(), isWord, false)
	i = skipForward(b, i, isWord, true)
	b.SetCursor(i)
}

// BackwardWord is Emacs's backward-word (M-b).
func BackwardWord(b *buffer.Buffer) {
	backwardWord(b, isEmacsWordChar)
}

// ForwardWord is Emacs's forward-word (M-f).
func ForwardWord(b *buffer.Buffer) {
	forwardWord(b, isEmacsWordChar)
}

// ViPrevWord is Vi's "b" motion.
func ViPrevWord(b *buffer.Buffer) {
	backwardWord(b, isViWordChar)
}

// ViNextWord is Vi's "w" motion: unlike Emacs's forward-word, this lands on
// the *start* of the next word rather than the end of it — skip whatever's
// left of the current word, then skip the whitespace after it.
func ViNextWord(b *buffer.Buffer) {
	i := skipForward(b, b.Cursor(), isViWordChar, true)
	i = skipForward(b, i, isViWordChar, false)
	b.SetCursor(i)
}

// ViEndWord is Vi's "e" motion: move to the last character of the current
// or next word.
func ViEndWord(b *buffer.Buffer) {
	n := b.Len()
	i := b.Cursor()
	if i >= n {
		return
	}
	// If already inside a word, and the next char is still part of it,
	// advance past the current position first so "e" doesn't just sit
	// still mid-word.
	if isViWordChar(b.CharAt(i)) && i+1 < n && isViWordChar(b.CharAt(i+1)) {
		i++
		for i+1 < n && isViWordChar(b.CharAt(i+1)) {
			i++
		}
		b.SetCursor(i)
		return
	}
	i = skipForward(b, i, isViWordChar, false)
	for i+1 < n && isViWordChar(b.CharAt(i+1)) {
		i++
	}
	if i < n {
		b.SetCursor(i)
	} else {
		b.SetCursor(n - 1)
		if n == 0 {
			b.SetCursor(0)
		}
	}
}

// killRange deletes [a,b) and returns the deleted text, for callers that
// want to log or otherwise inspect what was killed.
func killRange(buf *buffer.Buffer, a, c int) string {
	if a > c {
		a, c = c, a
	}
	if a < 0 {
		a = 0
	}
	if c > buf.Len() {
		c = buf.Len()
	}
	if a >= c {
		return ""
	}
	killed := string(buf.Runes()[a:c])
	buf.DeleteRange(a, c)
	return killed
}

// KillLine deletes from the cursor to the end of the line.
func KillLine(b *buffer.Buffer) string {
	return killRange(b, b.Cursor(), b.Len())
}

// KillWholeLine deletes the entire line, wherever the cursor was.
func KillWholeLine(b *buffer.Buffer) string {
	return killRange(b, 0, b.Len())
}

// UnixWordRubout deletes from the start of the current unix-word back to
// the cursor (Ctrl-W).
func UnixWordRubout(b *buffer.Buffer) string {
	start := skipBackward(b, b.Cursor(), isUnixWordChar, false)
	start = skipBackward(b, start, isUnixWordChar, true)
	return killRange(b, start, b.Cursor())
}

// BackwardKillWord deletes the Emacs word immediately before the cursor
// (M-DEL).
func BackwardKillWord(b *buffer.Buffer) string {
	start := skipBackward(b, b.Cursor(), isEmacsWordChar, false)
	start = skipBackward(b, start, isEmacsWordChar, true)
	return killRange(b, start, b.Cursor())
}

// KillWord deletes the Emacs word starting at the cursor (M-d).
func KillWord(b *buffer.Buffer) string {
	end := skipForward(b, b.Cursor(), isEmacsWordChar, false)
	end = skipForward(b, end, isEmacsWordChar, true)
	return killRange(b, b.Cursor(), end)
}

// transformWord applies f to the runes of the next Emacs word, leaving the
// cursor just past it.
func transformWord(b *buffer.Buffer, f func([]rune)) {
	start := skipForward(b, b.Cursor(), isEmacsWordChar, false)
	end := skipForward(b, start, isEmacsWordChar, true)
	if start >= end {
		b.SetCursor(end)
		return
	}
	word := b.Runes()[start:end]
	f(word)
	b.DeleteRange(start, end)
	b.SetCursor(start)
	b.Write(word)
}

// CapitalizeWord uppercases the first letter of the next word and
// lowercases the rest (M-c).
func CapitalizeWord(b *buffer.Buffer) {
	transformWord(b, func(word []rune) {
		for i, r := range word {
			if i == 0 {
				word[i] = unicode.ToUpper(r)
			} else {
				word[i] = unicode.ToLower(r)
			}
		}
	})
}

// UpcaseWord uppercases the next word (M-u).
func UpcaseWord(b *buffer.Buffer) {
	transformWord(b, func(word []rune) {
		for i, r := range word {
			word[i] = unicode.ToUpper(r)
		}
	})
}

// DowncaseWord lowercases the next word (M-l).
func DowncaseWord(b *buffer.Buffer) {
	transformWord(b, func(word []rune) {
		for i, r := range word {
			word[i] = unicode.ToLower(r)
		}
	})
}

// TransposeChars swaps the character before the cursor with the one at it
// (Ctrl-T); at the end of the line, it swaps the last two characters
// instead and leaves the cursor at the end. Returns false if the buffer is
// too short to transpose, or if the cursor is at position 0 (there's
// nothing before it to swap with).
func TransposeChars(b *buffer.Buffer) bool {
	n := b.Len()
	if n < 2 {
		return false
	}
	i := b.Cursor()
	if i == 0 {
		return false
	}
	if i >= n {
		i = n - 1
	}
	runes := b.Runes()
	runes[i-1], runes[i] = runes[i], runes[i-1]
	b.Set(string(runes))
	target := i + 1
	if target > n {
		target = n
	}
	b.SetCursor(target)
	return true
}

// ViChangeCase toggles the case of the character under the cursor and
// advances, per Vi's "~" command.
func ViChangeCase(b *buffer.Buffer) bool {
	r := b.Current()
	if r == buffer.NoChar {
		return false
	}
	var flipped rune
	if unicode.IsUpper(r) {
		flipped = unicode.ToLower(r)
	} else {
		flipped = unicode.ToUpper(r)
	}
	runes := b.Runes()
	runes[b.Cursor()] = flipped
	cursor := b.Cursor()
	b.Set(string(runes))
	if cursor+1 <= b.Len() {
		b.SetCursor(cursor + 1)
	} else {
		b.SetCursor(cursor)
	}
	return true
}

// ViDelete deletes count characters starting at the cursor ("x").
func ViDelete(b *buffer.Buffer, count int) string {
	if count < 1 {
		count = 1
	}
	return killRange(b, b.Cursor(), b.Cursor()+count)
}

// ViRubout deletes count characters immediately before the cursor ("X").
func ViRubout(b *buffer.Buffer, count int) string {
	if count < 1 {
		count = 1
	}
	return killRange(b, b.Cursor()-count, b.Cursor())
}

var bracketPairs = map[rune]rune{
	'(': ')', '[': ']', '{': '}',
	')': '(', ']': '[', '}': '{',
}

func isOpenBracket(r rune) bool {
	return r == '(' || r == '[' || r == '{'
}

// ViMatch implements Vi's "%" command: from the cursor, scan forward on the
// current line for the nearest bracket character, then jump to its match.
// Returns false if no bracket is found or it has no match on this line.
func ViMatch(b *buffer.Buffer) bool {
	n := b.Len()
	start := -1
	for i := b.Cursor(); i < n; i++ {
		if _, ok := bracketPairs[b.CharAt(i)]; ok {
			start = i
			break
		}
	}
	if start == -1 {
		return false
	}

	open := b.CharAt(start)
	want := bracketPairs[open]
	depth := 0
	if isOpenBracket(open) {
		for i := start; i < n; i++ {
			switch b.CharAt(i) {
			case open:
				depth++
			case want:
				depth--
				if depth == 0 {
					b.SetCursor(i)
					return true
				}
			}
		}
		return false
	}

	for i := start; i >= 0; i-- {
		switch b.CharAt(i) {
		case open:
			depth++
		case want:
			depth--
			if depth == 0 {
				b.SetCursor(i)
				return true
			}
		}
	}
	return false
}

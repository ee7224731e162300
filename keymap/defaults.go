package keymap

import "github.com/google/uuid"

// Names of the three keymaps the controller switches between.
const (
	NameEmacs   = "emacs"
	NameViInsert = "vi-insert"
	NameViMove   = "vi-move"
)

// newGeneration stamps a fresh generation id — bumped whenever a keymap is
// (re)built, so log lines can say which generation of bindings was active.
func newGeneration() string {
	return uuid.New().String()
}

// DefaultEmacs returns the built-in emacs keymap.
func DefaultEmacs() *Map {
	m := New()
	m.Name = NameEmacs
	m.Generation = newGeneration()
	m.SetDefault(OpBinding(OpSelfInsert))

	m.BindOp([]rune{1}, OpBeginningOfLine)  // Ctrl-A
	m.BindOp([]rune{2}, OpBackwardChar)     // Ctrl-B
	m.BindOp([]rune{4}, OpDeleteChar)       // Ctrl-D
	m.BindOp([]rune{5}, OpEndOfLine)        // Ctrl-E
	m.BindOp([]rune{6}, OpForwardChar)      // Ctrl-F
	m.BindOp([]rune{9}, OpComplete)         // Tab
	m.BindOp([]rune{11}, OpKillLine)        // Ctrl-K
	m.BindOp([]rune{12}, OpClearScreen)     // Ctrl-L
	m.BindOp([]rune{13}, OpAcceptLine)      // Enter / CR
	m.BindOp([]rune{14}, OpNextHistory)     // Ctrl-N
	m.BindOp([]rune{16}, OpPreviousHistory) // Ctrl-P
	m.BindOp([]rune{18}, OpReverseSearchHistory) // Ctrl-R
	m.BindOp([]rune{20}, OpTransposeChars)  // Ctrl-T
	m.BindOp([]rune{21}, OpKillWholeLine)   // Ctrl-U
	m.BindOp([]rune{23}, OpUnixWordRubout)  // Ctrl-W
	m.BindOp([]rune{127}, OpBackwardDeleteChar) // Backspace
	m.BindOp([]rune{8}, OpBackwardDeleteChar)   // ^H, some terminals

	// Meta (ESC + key) bindings.
	m.BindOp([]rune{27, 'b'}, OpBackwardWord)
	m.BindOp([]rune{27, 'B'}, OpBackwardWord)
	m.BindOp([]rune{27, 'f'}, OpForwardWord)
	m.BindOp([]rune{27, 'F'}, OpForwardWord)
	m.BindOp([]rune{27, 'd'}, OpKillWord)
	m.BindOp([]rune{27, 127}, OpBackwardKillWord)
	m.BindOp([]rune{27, 'c'}, OpCapitalizeWord)
	m.BindOp([]rune{27, 'u'}, OpUpcaseWord)
	m.BindOp([]rune{27, 'l'}, OpDowncaseWord)
	m.BindOp([]rune{27, '#'}, OpInsertComment)
	m.BindOp([]rune{27, 'r'}, OpReReadInitFile)

	// Arrow keys, CSI form.
	m.BindOp([]rune{27, '[', 'A'}, OpPreviousHistory)
	m.BindOp([]rune{27, '[', 'B'}, OpNextHistory)
	m.BindOp([]rune{27, '[', 'C'}, OpForwardChar)
	m.BindOp([]rune{27, '[', 'D'}, OpBackwardChar)
	m.BindOp([]rune{27, '[', 'H'}, OpBeginningOfLine)
	m.BindOp([]rune{27, '[', 'F'}, OpEndOfLine)

	// A lone ESC, with nothing else following within escapeTimeout, has no
	// anotherKey of its own in emacs mode — it's bound directly below so the
	// controller's ESC-peek step has something concrete to commit to when
	// the terminal goes quiet after ESC.
	m.BindOp([]rune{27}, OpAbort)

	return m
}

// DefaultViInsert returns the built-in vi-insert keymap: insert mode shares
// most of emacs's editing bindings (this is also how real readline's
// vi-insert keymap is built — layered on top of a copy of emacs), but ESC
// switches to vi-move instead of aborting, and a handful of ops are
// vi-specific.
func DefaultViInsert() *Map {
	m := New()
	m.Name = NameViInsert
	m.Generation = newGeneration()
	m.SetDefault(OpBinding(OpSelfInsert))

	m.BindOp([]rune{1}, OpBeginningOfLine)
	m.BindOp([]rune{2}, OpBackwardChar)
	m.BindOp([]rune{4}, OpViEofMaybe)
	m.BindOp([]rune{5}, OpEndOfLine)
	m.BindOp([]rune{6}, OpForwardChar)
	m.BindOp([]rune{9}, OpComplete)
	m.BindOp([]rune{11}, OpKillLine)
	m.BindOp([]rune{12}, OpClearScreen)
	m.BindOp([]rune{13}, OpAcceptLine)
	m.BindOp([]rune{20}, OpTransposeChars)
	m.BindOp([]rune{21}, OpKillWholeLine)
	m.BindOp([]rune{23}, OpUnixWordRubout)
	m.BindOp([]rune{127}, OpBackwardDeleteChar)
	m.BindOp([]rune{8}, OpBackwardDeleteChar)
	m.BindOp([]rune{27}, OpViMovementMode)

	m.BindOp([]rune{27, '[', 'C'}, OpForwardChar)
	m.BindOp([]rune{27, '[', 'D'}, OpBackwardChar)

	return m
}

// DefaultViMove returns the built-in vi-move keymap: a modal command mode
// whose motions and edits are vi-flavored operations.
func DefaultViMove() *Map {
	m := New()
	m.Name = NameViMove
	m.Generation = newGeneration()

	m.BindOp([]rune{13}, OpViMoveAcceptLine)
	m.BindOp([]rune{4}, OpViEofMaybe)
	m.BindOp([]rune{27}, OpAbort)

	m.BindOp([]rune{'h'}, OpBackwardChar)
	m.BindOp([]rune{'l'}, OpForwardChar)
	m.BindOp([]rune{' '}, OpForwardChar)
	m.BindOp([]rune{'w'}, OpViNextWord)
	m.BindOp([]rune{'b'}, OpViPrevWord)
	m.BindOp([]rune{'e'}, OpViEndWord)
	m.BindOp([]rune{'$'}, OpEndOfLine)
	m.BindOp([]rune{'^'}, OpBeginningOfLine)
	m.BindOp([]rune{'0'}, OpViBeginningOfLineOrArgDigit)

	for d := '1'; d <= '9'; d++ {
		m.BindOp([]rune{d}, OpViArgDigit)
	}

	m.BindOp([]rune{'x'}, OpViDelete)
	m.BindOp([]rune{'X'}, OpViRubout)
	m.BindOp([]rune{'~'}, OpViChangeCase)
	m.BindOp([]rune{'%'}, OpViMatch)

	m.BindOp([]rune{'i'}, OpViInsertionMode)
	m.BindOp([]rune{'a'}, OpViAppendMode)
	m.BindOp([]rune{'I'}, OpViInsertBeg)
	m.BindOp([]rune{'A'}, OpViAppendEol)

	m.BindOp([]rune{'/'}, OpViSearch)
	m.BindOp([]rune{'?'}, OpViSearch)

	m.BindOp([]rune{'k'}, OpViPreviousHistory)
	m.BindOp([]rune{'j'}, OpViNextHistory)
	m.BindOp([]rune{16}, OpViPreviousHistory) // Ctrl-P
	m.BindOp([]rune{14}, OpViNextHistory)     // Ctrl-N

	m.BindOp([]rune{27, '[', 'A'}, OpViPreviousHistory)
	m.BindOp([]rune{27, '[', 'B'}, OpViNextHistory)
	m.BindOp([]rune{27, '[', 'C'}, OpForwardChar)
	m.BindOp([]rune{27, '[', 'D'}, OpBackwardChar)

	return m
}

package keymap

// Operation is the tag identifying a built-in editor command. The keymap
// package only knows the vocabulary of tags; the command package supplies
// the implementations bound to them.
type Operation string

// DoLowercaseVersion is the one sentinel Operation value: when a sequence
// resolves to it, the controller lowercases the last key and re-resolves
// instead of executing anything.
const DoLowercaseVersion Operation = "do-lowercase-version"

// The built-in command set, grouped by what it operates on.
const (
	// Motion
	OpBeginningOfLine Operation = "beginning-of-line"
	OpEndOfLine       Operation = "end-of-line"
	OpBackwardChar    Operation = "backward-char"
	OpForwardChar     Operation = "forward-char"
	OpBackwardWord    Operation = "backward-word"
	OpForwardWord     Operation = "forward-word"

	OpViPrevWord Operation = "vi-prev-word"
	OpViNextWord Operation = "vi-next-word"
	OpViEndWord  Operation = "vi-end-word"

	// Editing
	OpSelfInsert         Operation = "self-insert"
	OpBackwardDeleteChar Operation = "backward-delete-char"
	OpDeleteChar         Operation = "delete-char"
	OpKillLine           Operation = "kill-line"
	OpKillWholeLine      Operation = "kill-whole-line"
	OpUnixWordRubout     Operation = "unix-word-rubout"
	OpBackwardKillWord   Operation = "backward-kill-word"
	OpKillWord           Operation = "kill-word"
	OpCapitalizeWord     Operation = "capitalize-word"
	OpUpcaseWord         Operation = "upcase-word"
	OpDowncaseWord       Operation = "downcase-word"
	OpTransposeChars     Operation = "transpose-chars"
	OpOverwriteMode      Operation = "overwrite-mode"
	OpTabInsert          Operation = "tab-insert"
	OpClearScreen        Operation = "clear-screen"

	// History
	OpPreviousHistory   Operation = "previous-history"
	OpNextHistory       Operation = "next-history"
	OpBeginningOfHistory Operation = "beginning-of-history"
	OpEndOfHistory       Operation = "end-of-history"
	OpViPreviousHistory  Operation = "vi-previous-history"
	OpViNextHistory      Operation = "vi-next-history"

	// Search
	OpReverseSearchHistory Operation = "reverse-search-history"
	OpAbort                Operation = "abort"
	OpViSearch             Operation = "vi-search"

	// Completion
	OpComplete            Operation = "complete"
	OpPossibleCompletions Operation = "possible-completions"

	// Macros
	OpStartKbdMacro    Operation = "start-kbd-macro"
	OpEndKbdMacro      Operation = "end-kbd-macro"
	OpCallLastKbdMacro Operation = "call-last-kbd-macro"

	// Vi mode
	OpViEditingMode               Operation = "vi-editing-mode"
	OpViMovementMode              Operation = "vi-movement-mode"
	OpViInsertionMode             Operation = "vi-insertion-mode"
	OpViAppendMode                Operation = "vi-append-mode"
	OpViAppendEol                 Operation = "vi-append-eol"
	OpViInsertBeg                 Operation = "vi-insert-beg"
	OpViEofMaybe                  Operation = "vi-eof-maybe"
	OpViMatch                     Operation = "vi-match"
	OpViArgDigit                  Operation = "vi-arg-digit"
	OpViBeginningOfLineOrArgDigit Operation = "vi-beginning-of-line-or-arg-digit"
	OpViRubout                    Operation = "vi-rubout"
	OpViDelete                    Operation = "vi-delete"
	OpViChangeCase                Operation = "vi-change-case"
	OpViMoveAcceptLine            Operation = "vi-move-accept-line"
	OpEmacsEditingMode            Operation = "emacs-editing-mode"

	// Accept / misc
	OpAcceptLine     Operation = "accept-line"
	OpInsertComment  Operation = "insert-comment"
	OpReReadInitFile Operation = "re-read-init-file"
)

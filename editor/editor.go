// Package editor implements the Controller: the read loop that ties
// together the keystroke decoder, the keymap trie, the line buffer, the
// renderer, history, search, completion, and event expansion into the
// single public ReadLine entry point.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"
	"unicode"

	"github.com/kungfusheep/lineedit/buffer"
	"github.com/kungfusheep/lineedit/clipboard"
	"github.com/kungfusheep/lineedit/command"
	"github.com/kungfusheep/lineedit/complete"
	"github.com/kungfusheep/lineedit/config"
	"github.com/kungfusheep/lineedit/expand"
	"github.com/kungfusheep/lineedit/history"
	"github.com/kungfusheep/lineedit/keymap"
	"github.com/kungfusheep/lineedit/keys"
	"github.com/kungfusheep/lineedit/render"
	"github.com/kungfusheep/lineedit/search"
)

// Editor is the Controller: it owns the buffer, the active keymap, and the
// pending/pushback key state for the lifetime of one or more ReadLine
// calls. Construct with New; the optional fields below may be set any time
// before calling ReadLine.
type Editor struct {
	Decoder  *keys.Decoder
	Renderer *render.Renderer
	History  *history.View
	Config   *config.Config

	// Completion and CompletionHandler back the complete /
	// possible-completions operations; nil disables completion entirely.
	Completion        *complete.Driver
	CompletionHandler *complete.Handler

	// Clipboard backs a host-installed paste callback that inserts pasted
	// text via self-insert; see InsertText.
	Clipboard *clipboard.Host

	// Logger receives a line at entry to and exit from each ReadLine call
	// plus, when Debug is set, one line per bell-suppressed command failure.
	// Defaults to a discard logger.
	Logger *log.Logger
	Debug  bool

	// Out is the writer accept-line, insert-comment and the bell write to
	// directly, outside of the Renderer's column bookkeeping.
	Out io.Writer

	// MaskedRedrawInterval, when positive, starts a secondary daemon
	// goroutine that periodically rewrites the prompt line — for terminals
	// that can't suppress local echo under a mask.
	MaskedRedrawInterval time.Duration

	keymaps map[string]*keymap.Map
	active  *keymap.Map

	mu   sync.Mutex
	buf  *buffer.Buffer

	prompt         string
	promptCol      int
	lastVisibleLen int

	pending  []rune
	pushback []rune
	lastKey  rune

	lastTriggerLen int

	macroRecording bool
	macroBuf       []rune
	lastMacro      string

	argCount    int
	argHasCount bool

	searchState *search.State
}

// New builds an Editor with the built-in emacs/vi-insert/vi-move keymaps,
// starting in whichever one cfg.Keymap names (default "emacs").
func New(cfg *config.Config, decoder *keys.Decoder, renderer *render.Renderer, hist *history.View, out io.Writer) *Editor {
	if cfg == nil {
		cfg = config.Default()
	}
	e := &Editor{
		Decoder:   decoder,
		Renderer:  renderer,
		History:   hist,
		Config:    cfg,
		Out:       out,
		Logger:    log.New(io.Discard, "", 0),
		Clipboard: clipboard.NewHost(),
		keymaps: map[string]*keymap.Map{
			keymap.NameEmacs:    keymap.DefaultEmacs(),
			keymap.NameViInsert: keymap.DefaultViInsert(),
			keymap.NameViMove:   keymap.DefaultViMove(),
		},
	}
	m, ok := e.keymaps[cfg.Keymap]
	if !ok {
		m = e.keymaps[keymap.NameEmacs]
	}
	e.active = m
	return e
}

// Bind installs b at seq in the named keymap ("emacs", "vi-insert",
// "vi-move"), for hosts that want to add bindings beyond the built-ins —
// e.g. a clipboard-paste callback.
func (e *Editor) Bind(mapName string, seq []rune, b keymap.Binding) {
	if m, ok := e.keymaps[mapName]; ok {
		m.Bind(seq, b)
	}
}

// InsertText inserts s into the buffer at the cursor and redraws, the way
// clipboard paste or a multi-character completion result lands in the
// line: rune by rune, as if each had been self-inserted.
func (e *Editor) InsertText(s string) {
	if e.buf == nil {
		return
	}
	for _, r := range s {
		e.buf.WriteRune(r)
	}
	e.redraw()
}

func (e *Editor) setBuffer(b *buffer.Buffer) {
	e.mu.Lock()
	e.buf = b
	e.mu.Unlock()
}

func (e *Editor) logf(format string, args ...any) {
	if e.Logger != nil {
		e.Logger.Printf(format, args...)
	}
}

// ReadLine writes prompt, then drives the read loop until a line is
// accepted or the input source is exhausted. err is io.EOF exactly when no
// more input remains.
func (e *Editor) ReadLine(prompt string) (string, error) {
	e.logf("ReadLine: enter keymap=%s generation=%s", e.active.Name, e.active.Generation)
	e.setBuffer(buffer.New())
	e.pending = e.pending[:0]
	e.argCount = 0
	e.argHasCount = false
	e.prompt = prompt
	e.promptCol = render.PromptColumn(prompt)
	e.lastVisibleLen = 0
	e.Renderer.Write(prompt)

	stop := e.startMaskedRedrawLoop()
	defer stop()

	for {
		line, done, err := e.step()
		if done {
			e.logf("ReadLine: exit err=%v", err)
			return line, err
		}
	}
}

func (e *Editor) startMaskedRedrawLoop() func() {
	if e.MaskedRedrawInterval <= 0 {
		return func() {}
	}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(e.MaskedRedrawInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				e.mu.Lock()
				e.redraw()
				e.mu.Unlock()
			}
		}
	}()
	return cancel
}

// nextKey pulls the next logical key: from the pushback stack if
// non-empty, else from the decoder.
func (e *Editor) nextKey() (rune, error) {
	if n := len(e.pushback); n > 0 {
		r := e.pushback[n-1]
		e.pushback = e.pushback[:n-1]
		return r, nil
	}
	return e.Decoder.ReadCharacter()
}

// pushbackString pushes s's runes on in reverse so that popping yields
// them back in their original order.
func (e *Editor) pushbackString(s string) {
	runes := []rune(s)
	for i := len(runes) - 1; i >= 0; i-- {
		e.pushback = append(e.pushback, runes[i])
	}
}

// step runs one iteration of the read loop.
func (e *Editor) step() (string, bool, error) {
	r, err := e.nextKey()
	if err != nil {
		return "", true, io.EOF
	}

	if e.macroRecording {
		e.macroBuf = append(e.macroBuf, r)
	}
	e.lastKey = r
	e.pending = append(e.pending, r)

	binding, ok := e.active.GetBound(e.pending)
	if !ok {
		return e.backoff()
	}

	if binding.Kind == keymap.KindOp && binding.Op == keymap.DoLowercaseVersion {
		e.lowercaseLastPending()
		binding, ok = e.active.GetBound(e.pending)
		if !ok {
			return e.backoff()
		}
	}

	if binding.Kind == keymap.KindSub {
		return e.handleSub(binding)
	}

	e.lastTriggerLen = len(e.pending)
	e.pending = e.pending[:0]
	return e.dispatchBinding(binding)
}

func (e *Editor) lowercaseLastPending() {
	if len(e.pending) == 0 {
		return
	}
	lower := unicode.ToLower(e.pending[len(e.pending)-1])
	e.pending[len(e.pending)-1] = lower
	e.lastKey = lower
}

// handleSub implements the ESC-peek-timeout disambiguation, or simply
// waits for more keys to extend the sequence.
func (e *Editor) handleSub(binding keymap.Binding) (string, bool, error) {
	isLoneEscape := len(e.pending) == 1 && e.pending[0] == 27 && len(e.pushback) == 0
	if isLoneEscape && e.Decoder.IsNonBlockingEnabled() {
		_, err := e.Decoder.PeekTimeout()
		if errors.Is(err, keys.ErrPeekTimeout) {
			ak := binding.Sub.AnotherKey()
			e.pending = e.pending[:0]
			e.lastTriggerLen = 1
			if ak.IsZero() {
				return "", false, nil
			}
			return e.dispatchBinding(ak)
		}
	}
	return "", false, nil
}

// backoff repeatedly drops the tail key back onto the pushback stack and
// re-resolves shorter prefixes.
func (e *Editor) backoff() (string, bool, error) {
	for len(e.pending) > 1 {
		tail := e.pending[len(e.pending)-1]
		e.pending = e.pending[:len(e.pending)-1]
		e.pushback = append(e.pushback, tail)

		binding, ok := e.active.GetBound(e.pending)
		if !ok {
			continue
		}
		if binding.Kind == keymap.KindSub {
			ak := binding.Sub.AnotherKey()
			triggerLen := len(e.pending)
			e.pending = e.pending[:0]
			if ak.IsZero() {
				return "", false, nil
			}
			e.lastTriggerLen = triggerLen
			return e.dispatchBinding(ak)
		}
		triggerLen := len(e.pending)
		e.pending = e.pending[:0]
		e.lastTriggerLen = triggerLen
		return e.dispatchBinding(binding)
	}
	e.pending = e.pending[:0]
	return "", false, nil
}

// dispatchBinding executes an Op/Macro/Callback binding uniformly — used
// by the direct resolve path, the ESC-timeout commit, and prefix backoff.
func (e *Editor) dispatchBinding(b keymap.Binding) (string, bool, error) {
	switch b.Kind {
	case keymap.KindOp:
		return e.dispatch(b.Op)
	case keymap.KindMacro:
		e.pushbackString(b.Macro)
		return "", false, nil
	case keymap.KindCallback:
		if b.Callback != nil {
			b.Callback()
		}
		return "", false, nil
	}
	return "", false, nil
}

func (e *Editor) consumeCount() int {
	n := 1
	if e.argHasCount && e.argCount > 0 {
		n = e.argCount
	}
	e.argCount = 0
	e.argHasCount = false
	return n
}

func (e *Editor) bell() {
	if e.Config != nil && e.Config.BellEnabled {
		fmt.Fprint(e.Out, "\a")
		return
	}
	if e.Debug {
		e.logf("command failed (bell suppressed)")
	}
}

// dispatch executes an Operation tag and reports whether a line was
// accepted.
func (e *Editor) dispatch(op keymap.Operation) (string, bool, error) {
	switch op {
	case keymap.OpViArgDigit:
		e.argCount = e.argCount*10 + int(e.lastKey-'0')
		e.argHasCount = true
		return "", false, nil
	case keymap.OpViBeginningOfLineOrArgDigit:
		if e.argHasCount {
			e.argCount *= 10
			return "", false, nil
		}
		command.BeginningOfLine(e.buf)
		e.redraw()
		return "", false, nil
	}

	count := e.consumeCount()
	ok := true

	switch op {
	case keymap.OpBeginningOfLine:
		command.BeginningOfLine(e.buf)
	case keymap.OpEndOfLine:
		command.EndOfLine(e.buf)
	case keymap.OpBackwardChar:
		for i := 0; i < count && ok; i++ {
			ok = command.BackwardChar(e.buf)
		}
	case keymap.OpForwardChar:
		for i := 0; i < count && ok; i++ {
			ok = command.ForwardChar(e.buf)
		}
	case keymap.OpBackwardWord:
		command.BackwardWord(e.buf)
	case keymap.OpForwardWord:
		command.ForwardWord(e.buf)
	case keymap.OpViPrevWord:
		for i := 0; i < count; i++ {
			command.ViPrevWord(e.buf)
		}
	case keymap.OpViNextWord:
		for i := 0; i < count; i++ {
			command.ViNextWord(e.buf)
		}
	case keymap.OpViEndWord:
		for i := 0; i < count; i++ {
			command.ViEndWord(e.buf)
		}

	case keymap.OpSelfInsert:
		for i := 0; i < count; i++ {
			e.buf.WriteRune(e.lastKey)
		}
	case keymap.OpBackwardDeleteChar:
		for i := 0; i < count && ok; i++ {
			ok = e.buf.DeleteBackward()
		}
	case keymap.OpDeleteChar:
		for i := 0; i < count && ok; i++ {
			ok = e.buf.DeleteForward()
		}
	case keymap.OpKillLine:
		command.KillLine(e.buf)
	case keymap.OpKillWholeLine:
		command.KillWholeLine(e.buf)
	case keymap.OpUnixWordRubout:
		command.UnixWordRubout(e.buf)
	case keymap.OpBackwardKillWord:
		command.BackwardKillWord(e.buf)
	case keymap.OpKillWord:
		command.KillWord(e.buf)
	case keymap.OpCapitalizeWord:
		command.CapitalizeWord(e.buf)
	case keymap.OpUpcaseWord:
		command.UpcaseWord(e.buf)
	case keymap.OpDowncaseWord:
		command.DowncaseWord(e.buf)
	case keymap.OpTransposeChars:
		ok = command.TransposeChars(e.buf)
	case keymap.OpOverwriteMode:
		e.buf.ToggleOvertype()
	case keymap.OpTabInsert:
		e.buf.WriteRune('\t')
	case keymap.OpClearScreen:
		e.Renderer.ClearScreen()
		e.lastVisibleLen = 0
		e.Renderer.Write(e.prompt)
		e.redraw()
		return "", false, nil

	case keymap.OpPreviousHistory:
		ok = e.historyMove(true, true)
	case keymap.OpNextHistory:
		ok = e.historyMove(false, true)
	case keymap.OpBeginningOfHistory:
		e.History.MoveToFirst()
		ok = e.installHistoryCurrent(true)
	case keymap.OpEndOfHistory:
		e.History.MoveTo(e.History.Size())
		e.setBuffer(buffer.New())
	case keymap.OpViPreviousHistory:
		ok = e.historyMove(true, false)
	case keymap.OpViNextHistory:
		ok = e.historyMove(false, false)

	case keymap.OpReverseSearchHistory:
		return e.runReverseISearch()
	case keymap.OpAbort:
		ok = false
	case keymap.OpViSearch:
		return e.runViSearch(e.lastKey)

	case keymap.OpComplete:
		ok = e.runComplete()
	case keymap.OpPossibleCompletions:
		ok = e.listCompletions()

	case keymap.OpStartKbdMacro:
		e.macroRecording = true
		e.macroBuf = e.macroBuf[:0]
		return "", false, nil
	case keymap.OpEndKbdMacro:
		e.macroRecording = false
		trim := e.lastTriggerLen
		if trim > 0 && trim <= len(e.macroBuf) {
			e.macroBuf = e.macroBuf[:len(e.macroBuf)-trim]
		}
		e.lastMacro = string(e.macroBuf)
		return "", false, nil
	case keymap.OpCallLastKbdMacro:
		e.pushbackString(e.lastMacro)
		return "", false, nil

	case keymap.OpViEditingMode:
		e.active = e.keymaps[keymap.NameViInsert]
		return "", false, nil
	case keymap.OpEmacsEditingMode:
		e.active = e.keymaps[keymap.NameEmacs]
		return "", false, nil
	case keymap.OpViMovementMode:
		e.active = e.keymaps[keymap.NameViMove]
		command.BackwardChar(e.buf)
	case keymap.OpViInsertionMode:
		e.active = e.keymaps[keymap.NameViInsert]
		return "", false, nil
	case keymap.OpViAppendMode:
		e.active = e.keymaps[keymap.NameViInsert]
		command.ForwardChar(e.buf)
	case keymap.OpViAppendEol:
		e.active = e.keymaps[keymap.NameViInsert]
		command.EndOfLine(e.buf)
	case keymap.OpViInsertBeg:
		e.active = e.keymaps[keymap.NameViInsert]
		command.BeginningOfLine(e.buf)
	case keymap.OpViEofMaybe:
		if e.buf.Len() == 0 {
			return "", true, io.EOF
		}
		return e.accept()
	case keymap.OpViMatch:
		ok = command.ViMatch(e.buf)
	case keymap.OpViRubout:
		command.ViRubout(e.buf, count)
	case keymap.OpViDelete:
		command.ViDelete(e.buf, count)
	case keymap.OpViChangeCase:
		for i := 0; i < count && ok; i++ {
			ok = command.ViChangeCase(e.buf)
		}
	case keymap.OpViMoveAcceptLine:
		line, done, aerr := e.accept()
		if done {
			e.active = e.keymaps[keymap.NameViInsert]
		}
		return line, done, aerr

	case keymap.OpAcceptLine:
		return e.accept()

	case keymap.OpInsertComment:
		e.insertComment()
		if e.active == e.keymaps[keymap.NameViMove] {
			e.active = e.keymaps[keymap.NameViInsert]
		}
		return e.accept()

	case keymap.OpReReadInitFile:
		e.logf("re-read-init-file: no-op (init-file parsing is external)")
		return "", false, nil

	default:
		ok = false
	}

	if !ok {
		e.bell()
	}
	e.redraw()
	return "", false, nil
}

func (e *Editor) historyMove(backward, cursorEnd bool) bool {
	var entry string
	var ok bool
	if backward {
		entry, ok = e.History.Previous()
	} else {
		entry, ok = e.History.Next()
	}
	if !ok {
		return false
	}
	e.setBuffer(buffer.NewFromString(entry))
	if !cursorEnd {
		e.buf.SetCursor(0)
	}
	return true
}

func (e *Editor) installHistoryCurrent(cursorEnd bool) bool {
	entry, ok := e.History.Current()
	if !ok {
		return false
	}
	e.setBuffer(buffer.NewFromString(entry))
	if !cursorEnd {
		e.buf.SetCursor(0)
	}
	return true
}

func (e *Editor) commentPrefix() string {
	if e.Config != nil && e.Config.CommentBegin != "" {
		return e.Config.CommentBegin
	}
	return "#"
}

func (e *Editor) insertComment() {
	e.buf.Set(e.commentPrefix() + e.buf.String())
}

// accept implements accept-line: run event expansion if enabled, print the
// expanded line when it changed, record it in history, and return it.
func (e *Editor) accept() (string, bool, error) {
	command.EndOfLine(e.buf)
	e.redraw()
	line := e.buf.String()

	if e.Config == nil || !e.Config.ExpandEvents {
		fmt.Fprint(e.Out, "\r\n")
		e.History.Accept(line)
		return line, true, nil
	}

	expanded, err := expand.Expand(line, e.History)
	if err != nil {
		fmt.Fprintf(e.Out, "\r\n%s\r\n", err.Error())
		e.redraw()
		return "", false, nil
	}
	if expanded != line {
		fmt.Fprintf(e.Out, "\r\n%s\r\n", expanded)
	} else {
		fmt.Fprint(e.Out, "\r\n")
	}
	e.History.Accept(expanded)
	return expanded, true, nil
}

func (e *Editor) runComplete() bool {
	if e.Completion == nil || e.CompletionHandler == nil {
		return false
	}
	candidates, pos := e.Completion.Complete(e.buf.String(), e.buf.Cursor())
	if pos < 0 {
		return false
	}
	return e.CompletionHandler.Handle(e.buf, candidates, pos)
}

func (e *Editor) listCompletions() bool {
	if e.Completion == nil || e.CompletionHandler == nil {
		return false
	}
	candidates, pos := e.Completion.Complete(e.buf.String(), e.buf.Cursor())
	if pos < 0 || len(candidates) == 0 {
		return false
	}
	e.CompletionHandler.ListCandidates(candidates)
	return true
}

// redraw reconciles the display with the buffer, erasing any leftover tail
// from a previously longer line.
func (e *Editor) redraw() {
	e.redrawPrompt(e.prompt)
}

func (e *Editor) redrawPrompt(promptText string) {
	promptCol := render.PromptColumn(promptText)
	runes := e.buf.Runes()
	visLen := len(runes)
	oldLen := e.promptCol + e.lastVisibleLen

	fmt.Fprint(e.Out, "\r")
	if promptCol+visLen < oldLen {
		e.Renderer.EraseAhead(oldLen, 0)
	}
	e.Renderer.Write(promptText)
	e.Renderer.Redraw(promptCol, runes, e.buf.Cursor())

	e.lastVisibleLen = visLen
	e.promptCol = promptCol
	e.prompt = promptText
}

// runReverseISearch drives the Emacs reverse-i-search sub-loop.
func (e *Editor) runReverseISearch() (string, bool, error) {
	if e.searchState == nil {
		e.searchState = search.New()
	}
	st := e.searchState
	st.Reset()
	saved := e.buf
	originalPrompt := e.prompt
	matchIdx := e.History.Size()
	failed := false

	installMatch := func() {
		if idx, entry, found := search.SearchBackward(e.History, string(st.Term), matchIdx); found {
			st.Index = idx
			matchIdx = idx
			failed = false
			e.setBuffer(buffer.NewFromString(entry))
		} else if len(st.Term) > 0 {
			failed = true
		}
	}

	for {
		prompt := st.Prompt()
		if failed {
			prompt = st.FailedPrompt()
		}
		e.redrawPrompt(prompt)

		r, err := e.nextKey()
		if err != nil {
			e.setBuffer(saved)
			e.redrawPrompt(originalPrompt)
			return "", true, io.EOF
		}

		e.pending = append(e.pending, r)
		binding, ok := e.active.GetBound(e.pending)
		e.pending = e.pending[:0]

		switch {
		case ok && binding.Kind == keymap.KindOp && binding.Op == keymap.OpSelfInsert:
			st.AppendRune(r)
			matchIdx = e.History.Size()
			installMatch()

		case ok && binding.Kind == keymap.KindOp && binding.Op == keymap.OpBackwardDeleteChar:
			if !st.Backspace() {
				e.bell()
			} else {
				matchIdx = e.History.Size()
				installMatch()
			}

		case ok && binding.Kind == keymap.KindOp && binding.Op == keymap.OpReverseSearchHistory:
			if len(st.Term) == 0 && len(st.PreviousTerm) > 0 {
				st.Term = append(st.Term[:0], st.PreviousTerm...)
			}
			installMatch()

		case ok && binding.Kind == keymap.KindOp && binding.Op == keymap.OpAbort:
			e.setBuffer(saved)
			e.redrawPrompt(originalPrompt)
			return "", false, nil

		default:
			e.redrawPrompt(originalPrompt)
			if !ok {
				return "", false, nil
			}
			e.lastKey = r
			return e.dispatchBinding(binding)
		}
	}
}

// runViSearch drives the Vi "/" / "?" search sub-loop.
func (e *Editor) runViSearch(dirKey rune) (string, bool, error) {
	dir := search.ViForward
	if dirKey == '?' {
		dir = search.ViBackward
	}
	loop := search.NewViLoop(dir, e.buf)
	originalPrompt := e.prompt

	for {
		e.redrawPrompt(loop.Prompt())
		r, err := e.nextKey()
		if err != nil {
			e.setBuffer(loop.Saved)
			e.redrawPrompt(originalPrompt)
			return "", true, io.EOF
		}

		switch r {
		case '\r', '\n':
			_, entry, found := loop.Search(e.History)
			if !found {
				e.setBuffer(loop.Saved)
				e.redrawPrompt(originalPrompt)
				e.bell()
				return "", false, nil
			}
			e.setBuffer(buffer.NewFromString(entry))
			return e.runViSearchPostLoop(loop, originalPrompt)
		case 27:
			e.setBuffer(loop.Saved)
			e.redrawPrompt(originalPrompt)
			return "", false, nil
		case 127, 8:
			if !loop.Backspace() {
				e.setBuffer(loop.Saved)
				e.redrawPrompt(originalPrompt)
				return "", false, nil
			}
		default:
			loop.AppendRune(r)
		}
	}
}

func (e *Editor) runViSearchPostLoop(loop *search.ViLoop, originalPrompt string) (string, bool, error) {
	e.redrawPrompt(originalPrompt)
	for {
		r, err := e.nextKey()
		if err != nil {
			return "", true, io.EOF
		}
		switch r {
		case 'n':
			if _, entry, found := loop.Next(e.History, false); found {
				e.setBuffer(buffer.NewFromString(entry))
				e.redraw()
			} else {
				e.bell()
			}
		case 'N':
			if _, entry, found := loop.Next(e.History, true); found {
				e.setBuffer(buffer.NewFromString(entry))
				e.redraw()
			} else {
				e.bell()
			}
		default:
			// Any other key ends the search and is returned to the main
			// loop via pushback.
			e.pushback = append(e.pushback, r)
			return "", false, nil
		}
	}
}

// Command lineedit-demo is a minimal REPL exercising the full editor
// stack: it reads lines from the terminal with history, completion,
// search, and a clipboard-paste binding, and echoes each one back.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/kungfusheep/lineedit/complete"
	"github.com/kungfusheep/lineedit/config"
	"github.com/kungfusheep/lineedit/editor"
	"github.com/kungfusheep/lineedit/history"
	"github.com/kungfusheep/lineedit/keymap"
	"github.com/kungfusheep/lineedit/keys"
	"github.com/kungfusheep/lineedit/render"
	"github.com/kungfusheep/lineedit/term"
)

func main() {
	initConfig := false
	debug := false

	for _, arg := range os.Args[1:] {
		switch arg {
		case "--init-config":
			initConfig = true
		case "--debug":
			debug = true
		case "-h", "--help":
			printUsage()
			return
		}
	}

	if initConfig {
		fmt.Print(config.DefaultTOML())
		return
	}

	if err := run(debug); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`lineedit-demo - interactive line editor demo

Usage: lineedit-demo [options]

Options:
  --init-config   Output default config (redirect to $XDG_CONFIG_HOME/lineedit/config.toml)
  --debug         Log bell-suppressed command failures to stderr
  -h, --help      Show this help

Keys of note:
  Ctrl-R          reverse-i-search
  Tab             complete a word from the word list below the prompt
  Ctrl-Y          paste from the system clipboard
  Ctrl-D          delete the character under the cursor (vi mode: end of
                  input on an empty line)`)
}

func run(debug bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	raw, err := term.Enable(os.Stdin)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer raw.Restore()

	src := keys.NewNonBlocking(os.Stdin)
	defer src.Shutdown()
	dec := keys.NewDecoder(src, cfg.EscapeTimeout())

	renderer := render.New(render.NewANSIStrategy(os.Stdout), 80)

	historyPath := cfg.HistoryFile
	if historyPath == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			historyPath = dir + "/lineedit/history.yaml"
		}
	}
	provider, err := history.NewFileProvider(historyPath, cfg.HistorySize)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}
	defer provider.Save()
	hist := history.New(provider)

	e := editor.New(cfg, dec, renderer, hist, os.Stdout)
	e.Debug = debug
	if debug {
		e.Logger = log.New(os.Stderr, "lineedit-demo: ", log.LstdFlags)
	}

	e.Completion = complete.NewDriver()
	e.Completion.Register(wordCompleter([]string{"help", "history", "hello", "exit", "echo"}))
	e.CompletionHandler = complete.NewHandler(os.Stdout)

	// Ctrl-Y: paste the system clipboard via self-insert, per the module's
	// external-interfaces contract for clipboard paste.
	e.Bind(keymap.NameEmacs, []rune{25}, keymap.CallbackBinding(func() {
		if text, err := e.Clipboard.ReadText(); err == nil {
			e.InsertText(text)
		}
	}))
	e.Bind(keymap.NameViInsert, []rune{25}, keymap.CallbackBinding(func() {
		if text, err := e.Clipboard.ReadText(); err == nil {
			e.InsertText(text)
		}
	}))

	for {
		line, err := e.ReadLine("lineedit> ")
		if err == io.EOF {
			fmt.Fprintln(os.Stdout)
			return nil
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "exit" {
			return nil
		}
		fmt.Fprintf(os.Stdout, "you said: %s\r\n", line)
	}
}

func wordCompleter(words []string) complete.Completer {
	return func(line string, cursor int) ([]string, int) {
		start := cursor
		for start > 0 && line[start-1] != ' ' {
			start--
		}
		prefix := line[start:cursor]
		if prefix == "" {
			return nil, -1
		}
		var matches []string
		for _, w := range words {
			if strings.HasPrefix(w, prefix) {
				matches = append(matches, w)
			}
		}
		if len(matches) == 0 {
			return nil, -1
		}
		return matches, start
	}
}

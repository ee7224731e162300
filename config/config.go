// Package config loads the process-wide tunables from a TOML file, layered
// over built-in defaults: a Default(), a Load() that merges a user file
// over it, and a DefaultTOML() for generating a starter file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the module's process-wide tunable knobs.
type Config struct {
	// EscapeTimeoutMS is how long the controller's ESC-peek step waits for
	// a following byte before committing to a lone ESC. Default 150.
	EscapeTimeoutMS int `toml:"escapeTimeoutMS"`
	// BellEnabled inverts the historical "nobell" property; default false
	// (bell suppressed).
	BellEnabled bool `toml:"bellEnabled"`
	// AutoprintThreshold gates the "show all N matches?" prompt in
	// possible-completions. Default 100.
	AutoprintThreshold int `toml:"autoprintThreshold"`
	// ExpandEvents turns history-expansion on for accepted lines. Default
	// true.
	ExpandEvents bool `toml:"expandEvents"`
	// InitFile is the URL/path an external parser reads to populate
	// keymaps; this module only carries the value through.
	InitFile string `toml:"initFile"`
	// CommentBegin is the fallback chain's outermost layer for
	// insert-comment: explicit config value, else the init-file
	// comment-begin variable (read externally), else "#".
	CommentBegin string `toml:"commentBegin"`
	// Keymap names the keymap an Editor starts in when it is constructed:
	// "emacs", "vi-insert", or "vi-move".
	Keymap string `toml:"keymap"`
	// HistoryFile is where history.FileProvider persists entries between
	// runs.
	HistoryFile string `toml:"historyFile"`
	// HistorySize caps the number of entries history.FileProvider keeps.
	HistorySize int `toml:"historySize"`
}

// EscapeTimeout returns EscapeTimeoutMS as a time.Duration.
func (c *Config) EscapeTimeout() time.Duration {
	return time.Duration(c.EscapeTimeoutMS) * time.Millisecond
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		EscapeTimeoutMS:    150,
		BellEnabled:        false,
		AutoprintThreshold: 100,
		ExpandEvents:       true,
		InitFile:           "",
		CommentBegin:       "#",
		Keymap:             "emacs",
		HistoryFile:        "",
		HistorySize:        500,
	}
}

// configDir returns $XDG_CONFIG_HOME/lineedit, falling back to
// ~/.config/lineedit.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lineedit"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lineedit"), nil
}

// ConfigPath returns the path to the user's config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads configuration, layering a user TOML file on top of defaults.
// Returns the defaults if no user file exists.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	userCfg, meta, err := loadFromTOML(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}

	return merge(cfg, userCfg, meta), nil
}

func loadFromTOML(path string) (*Config, toml.MetaData, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, meta, fmt.Errorf("parsing config TOML: %w", err)
	}
	return &cfg, meta, nil
}

// merge layers values from user onto defaults, using meta to tell an absent
// key from an explicitly-set zero value. Most fields use Go's zero value as
// "absent" directly, which is fine since none of their real values are the
// zero value in practice. BellEnabled and ExpandEvents can't use that trick
// — false is itself a meaningful setting for both — so those two consult
// meta.IsDefined instead of the decoded struct's value.
func merge(defaults, user *Config, meta toml.MetaData) *Config {
	result := *defaults

	if user.EscapeTimeoutMS != 0 {
		result.EscapeTimeoutMS = user.EscapeTimeoutMS
	}
	if user.AutoprintThreshold != 0 {
		result.AutoprintThreshold = user.AutoprintThreshold
	}
	if user.InitFile != "" {
		result.InitFile = user.InitFile
	}
	if user.CommentBegin != "" {
		result.CommentBegin = user.CommentBegin
	}
	if user.Keymap != "" {
		result.Keymap = user.Keymap
	}
	if user.HistoryFile != "" {
		result.HistoryFile = user.HistoryFile
	}
	if user.HistorySize != 0 {
		result.HistorySize = user.HistorySize
	}
	if meta.IsDefined("bellEnabled") {
		result.BellEnabled = user.BellEnabled
	}
	if meta.IsDefined("expandEvents") {
		result.ExpandEvents = user.ExpandEvents
	}

	return &result
}

// DefaultTOML returns the default configuration as a TOML string, used by
// the demo binary's --init-config flag.
func DefaultTOML() string {
	return `# lineedit configuration
# Save to $XDG_CONFIG_HOME/lineedit/config.toml (or ~/.config/lineedit/config.toml)
# Only include settings you want to change from the defaults.

escapeTimeoutMS = 150      # how long ESC-peek waits before committing to a lone ESC
bellEnabled = false        # ring the bell on command failure
autoprintThreshold = 100   # "show all N matches?" threshold in possible-completions
expandEvents = true        # run history-expansion on accepted lines
initFile = ""              # path/URL for an external keymap init-file parser
commentBegin = "#"         # insert-comment prefix
keymap = "emacs"           # "emacs", "vi-insert", or "vi-move"
historyFile = ""           # where history.FileProvider persists entries
historySize = 500          # entries history.FileProvider keeps
`
}

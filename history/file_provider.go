package history

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileFormat is the on-disk shape for FileProvider.
type fileFormat struct {
	Entries []string `yaml:"entries"`
}

// FileProvider is a Provider that persists entries to a YAML file, capped
// at MaxSize. Callers are free to substitute their own Provider entirely.
type FileProvider struct {
	path    string
	entries []string
	MaxSize int
}

// NewFileProvider loads entries from path if it exists, or starts empty.
// MaxSize caps how many entries Append keeps; 0 means unbounded.
func NewFileProvider(path string, maxSize int) (*FileProvider, error) {
	p := &FileProvider{path: path, MaxSize: maxSize}
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return nil, fmt.Errorf("reading history file %s: %w", path, err)
	}

	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing history file %s: %w", path, err)
	}
	p.entries = f.Entries
	return p, nil
}

func (p *FileProvider) Size() int        { return len(p.entries) }
func (p *FileProvider) Get(i int) string { return p.entries[i] }

// Append adds line, trimming the oldest entries if MaxSize is exceeded. It
// does not itself write to disk — call Save when convenient (e.g. on
// Controller shutdown) rather than writing on every mutation.
func (p *FileProvider) Append(line string) {
	p.entries = append(p.entries, line)
	if p.MaxSize > 0 && len(p.entries) > p.MaxSize {
		p.entries = p.entries[len(p.entries)-p.MaxSize:]
	}
}

// Save writes the current entries to disk, creating the parent directory
// if needed.
func (p *FileProvider) Save() error {
	if p.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o700); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	data, err := yaml.Marshal(fileFormat{Entries: p.entries})
	if err != nil {
		return fmt.Errorf("serializing history: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o600); err != nil {
		return fmt.Errorf("writing history file %s: %w", p.path, err)
	}
	return nil
}

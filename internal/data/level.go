package data

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Level is one map file: rows of unit symbols, top row first. Text past
// Width on a row holds "symbol=name" bindings for that row.
type Level struct {
	Name  string   `yaml:"name"`
	Width int      `yaml:"width"`
	Rows  []string `yaml:"rows"`
}

// Height returns the number of rows.
func (l *Level) Height() int { return len(l.Rows) }

func (l *Level) validate() error {
	if l.Width <= 0 {
		return errors.New("width must be positive")
	}
	if len(l.Rows) == 0 {
		return errors.New("no rows")
	}
	return nil
}

// LoadLevel reads and validates a level file. A missing name defaults to the
// file name without extension.
func LoadLevel(path string) (*Level, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var l Level
	if err := yaml.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("parse level %s: %w", path, err)
	}
	if l.Name == "" {
		l.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := l.validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return &l, nil
}

// LevelTable indexes every level in a directory by name.
type LevelTable struct {
	levels map[string]*Level
}

// LoadLevelTable loads every *.yaml file in dir.
func LoadLevelTable(dir string) (*LevelTable, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}
	t := &LevelTable{levels: make(map[string]*Level, len(paths))}
	for _, p := range paths {
		l, err := LoadLevel(p)
		if err != nil {
			return nil, err
		}
		if _, dup := t.levels[l.Name]; dup {
			return nil, fmt.Errorf("duplicate level name %q in %s", l.Name, p)
		}
		t.levels[l.Name] = l
	}
	return t, nil
}

// Get returns the named level, or nil if none.
func (t *LevelTable) Get(name string) *Level {
	return t.levels[name]
}

// Names returns all level names, sorted.
func (t *LevelTable) Names() []string {
	names := make([]string, 0, len(t.levels))
	for n := range t.levels {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Count returns the total number of levels loaded.
func (t *LevelTable) Count() int {
	return len(t.levels)
}

// ParseLevelText builds a level from a plain text map, one row per line, top
// row first. A width of 0 takes the length of the first row. Trailing blank
// lines are dropped.
func ParseLevelText(name string, width int, text []byte) (*Level, error) {
	lines := strings.Split(strings.ReplaceAll(string(text), "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if width == 0 && len(lines) > 0 {
		width = len([]rune(lines[0]))
	}
	l := &Level{Name: name, Width: width, Rows: lines}
	if err := l.validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}
	return l, nil
}

// WriteLevel stores l as YAML at path, prefixed with a comment header when
// one is given.
func WriteLevel(path string, l *Level, header string) error {
	out, err := yaml.Marshal(l)
	if err != nil {
		return fmt.Errorf("marshal level: %w", err)
	}
	if header != "" {
		out = append([]byte("# "+header+"\n"), out...)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create level dir: %w", err)
	}
	return os.WriteFile(path, out, 0o644)
}

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	referenceFile = "reference.yaml"
	configFile    = "config.yaml"
	exportsDir    = "exports"
)

// Store handles all file system operations for flowsheet.
type Store struct {
	Root string // ~/.flowsheet
}

// New creates a Store rooted at dir, or at ~/.flowsheet when dir is empty.
// It ensures the root directory exists.
func New(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".flowsheet")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create flowsheet directory: %w", err)
	}
	return &Store{Root: dir}, nil
}

// ReferencePath is the location of the reference data file.
func (s *Store) ReferencePath() string {
	return filepath.Join(s.Root, referenceFile)
}

// ConfigPath is the location of the config file.
func (s *Store) ConfigPath() string {
	return filepath.Join(s.Root, configFile)
}

// --- Exports ---

// ExportFile represents a single exported home exercise plan.
type ExportFile struct {
	Name string // filename without extension, e.g. "2025-01-15"
	Path string // full path on disk
}

// ListExports returns all HEP exports, sorted by name descending (most
// recent first).
func (s *Store) ListExports() ([]ExportFile, error) {
	dir := filepath.Join(s.Root, exportsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not ensure directory exists: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not read directory %s: %w", dir, err)
	}

	var exports []ExportFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		exports = append(exports, ExportFile{
			Name: strings.TrimSuffix(e.Name(), ".md"),
			Path: filepath.Join(dir, e.Name()),
		})
	}

	sort.Slice(exports, func(i, j int) bool {
		return exports[i].Name > exports[j].Name
	})
	return exports, nil
}

// ReadExport reads the content of an export. A missing export reads as "".
func (s *Store) ReadExport(name string) (string, error) {
	data, err := os.ReadFile(s.exportPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("could not read export: %w", err)
	}
	return string(data), nil
}

// WriteExport writes content to an export file, creating it if necessary, and
// returns the name actually used. An empty name defaults to today's date.
func (s *Store) WriteExport(name, content string) (string, error) {
	name = sanitizeName(name)
	if name == "" {
		name = TodayName()
	}
	dir := filepath.Join(s.Root, exportsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("could not ensure directory exists: %w", err)
	}
	if err := os.WriteFile(s.exportPath(name), []byte(content), 0644); err != nil {
		return "", fmt.Errorf("could not write export: %w", err)
	}
	return name, nil
}

// ExportExists checks whether an export file exists.
func (s *Store) ExportExists(name string) bool {
	_, err := os.Stat(s.exportPath(name))
	return err == nil
}

// TodayName returns today's date as an export name (e.g. "2025-01-15").
func TodayName() string {
	return time.Now().Format("2006-01-02")
}

// --- Helpers ---

func (s *Store) exportPath(name string) string {
	return filepath.Join(s.Root, exportsDir, name+".md")
}

// sanitizeName cleans up a file name: lowercase, replace spaces with hyphens,
// remove anything that isn't alphanumeric, hyphen, or underscore.
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")
	var clean strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			clean.WriteRune(r)
		}
	}
	return clean.String()
}

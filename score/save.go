package score

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Document is the on-disk shape of an editor session.
type Document struct {
	Tempo     int     `json:"tempo"`
	TimeGrid  float64 `json:"timeGrid"`
	PitchGrid string  `json:"pitchGrid,omitempty"` // rational, "n/d"
	Length    float64 `json:"length"`
	Notes     []*Note `json:"notes"`
}

// DocumentsDir returns the directory holding saved documents, creating it if
// needed.
func DocumentsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "notefield", "documents")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// ListDocuments returns saved document names, sorted.
func ListDocuments() ([]string, error) {
	dir, err := DocumentsDir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// SaveDocument writes a document by name.
func SaveDocument(name string, doc *Document) error {
	dir, err := DocumentsDir()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name+".json"), data, 0644)
}

// LoadDocument reads a document by name.
func LoadDocument(name string) (*Document, error) {
	dir, err := DocumentsDir()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, name+".json"))
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document %s: %w", name, err)
	}
	return &doc, nil
}

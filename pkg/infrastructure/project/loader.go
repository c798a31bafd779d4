// Package project loads project documents from disk. Decoding is
// strict: any key the input contract does not define is rejected with
// the document path, before validation even starts.
package project

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/patchwork-labs/patchplan/pkg/cabling"
)

// Loader handles loading project documents from YAML files.
type Loader struct{}

// NewLoader creates a new project loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and strictly decodes a project YAML file. The returned
// project is decoded but not yet validated; the allocator validates on
// entry.
func (l *Loader) Load(filename string) (cabling.Project, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return cabling.Project{}, fmt.Errorf("failed to open project file %s: %w", filename, err)
	}
	p, err := l.Parse(bytes.NewReader(b))
	if err != nil {
		return cabling.Project{}, fmt.Errorf("project file %s: %w", filename, err)
	}
	return p, nil
}

// Parse strictly decodes a project document from r. Unknown fields
// anywhere in the document are an error.
func (l *Loader) Parse(r io.Reader) (cabling.Project, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p cabling.Project
	if err := dec.Decode(&p); err != nil {
		return cabling.Project{}, fmt.Errorf("failed to decode project document: %w", err)
	}
	return p, nil
}

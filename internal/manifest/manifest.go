// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest records the constructs extracted from one document as
// YAML, so a tokenized document converted outside ltmd can still be
// restored, and so extraction can be inspected when a rendering looks wrong.
package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/jborrow/ltmd/internal/construct"
)

// ErrEmptyManifest is returned when a manifest file has no content.
var ErrEmptyManifest = errors.New("manifest is empty")

// Manifest lists the constructs of one document in extraction order.
type Manifest struct {
	// Source is the input path the constructs were extracted from.
	Source string `yaml:"source,omitempty"`

	Constructs []*construct.Construct `yaml:"constructs"`
}

// New builds a manifest from an extraction mapping.
func New(source string, m *construct.Mapping) *Manifest {
	return &Manifest{Source: source, Constructs: m.All()}
}

// Mapping rebuilds the token mapping recorded in the manifest.
func (man *Manifest) Mapping() (*construct.Mapping, error) {
	m := construct.NewMapping()
	for i, c := range man.Constructs {
		if !c.Token.Valid() {
			return nil, fmt.Errorf("construct %d: invalid token %q", i, c.Token)
		}
		if err := m.Add(c); err != nil {
			return nil, fmt.Errorf("construct %d: %w", i, err)
		}
	}
	return m, nil
}

// Write encodes man as YAML to w.
func Write(w io.Writer, man *Manifest) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(man); err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	return enc.Close()
}

// WriteFile writes man to path.
func WriteFile(path string, man *Manifest) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating manifest %s: %w", path, err)
	}
	if err := Write(f, man); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read decodes a manifest from r.
func Read(r io.Reader) (*Manifest, error) {
	var man Manifest
	if err := yaml.NewDecoder(r).Decode(&man); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyManifest
		}
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	return &man, nil
}

// ReadFile reads the manifest at path.
func ReadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

package designer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrDefinitionNotFound is returned by Definitions.Get for unknown names.
var ErrDefinitionNotFound = errors.New("designer: form definition not found")

// Definitions is a read-only, name-keyed set of prepared form definitions.
type Definitions struct {
	byName map[string]*FormDefinition
}

type definitionsFile struct {
	Forms []*FormDefinition `yaml:"forms"`
}

// NewDefinitions prepares defs and indexes them by name.
func NewDefinitions(defs ...*FormDefinition) (*Definitions, error) {
	out := &Definitions{byName: make(map[string]*FormDefinition, len(defs))}
	for _, def := range defs {
		if err := def.Prepare(); err != nil {
			return nil, err
		}
		if _, exists := out.byName[def.Name]; exists {
			return nil, fmt.Errorf("designer: duplicate form definition %q", def.Name)
		}
		out.byName[def.Name] = def
	}
	return out, nil
}

// LoadDefinitions decodes a YAML document with a top-level "forms" list.
func LoadDefinitions(r io.Reader) (*Definitions, error) {
	if r == nil {
		return nil, fmt.Errorf("designer: missing reader")
	}
	var file definitionsFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return NewDefinitions()
		}
		return nil, fmt.Errorf("designer: decode definitions: %w", err)
	}
	return NewDefinitions(file.Forms...)
}

// LoadDefinitionsFS reads path from fsys and decodes it with LoadDefinitions.
func LoadDefinitionsFS(fsys fs.FS, path string) (*Definitions, error) {
	if fsys == nil {
		return nil, fmt.Errorf("designer: missing filesystem")
	}
	f, err := fsys.Open(strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("designer: open definitions: %w", err)
	}
	defer func() { _ = f.Close() }()
	return LoadDefinitions(f)
}

// Get returns the definition registered under name.
func (d *Definitions) Get(name string) (*FormDefinition, error) {
	if d != nil {
		if def, ok := d.byName[strings.TrimSpace(name)]; ok {
			return def, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrDefinitionNotFound, name)
}

// Names returns the sorted definition names.
func (d *Definitions) Names() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.byName))
	for name := range d.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of definitions.
func (d *Definitions) Len() int {
	if d == nil {
		return 0
	}
	return len(d.byName)
}

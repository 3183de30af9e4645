package world

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/quiethollow/mapforge/pkg/theme"
)

// docNamespace is the fixed UUID namespace for document ids, so the same
// theme/seed/size triple always yields the same id.
var docNamespace = uuid.MustParse("7b1c2b9e-8f4a-4f2d-9a63-2f6a0d5e4c11")

// New creates an empty document for one generation run.
func New(t *theme.Theme, seed int64, size float64) *Document {
	id := uuid.NewSHA1(docNamespace, []byte(fmt.Sprintf("%s:%d:%g", t.Name, seed, size)))
	return &Document{
		Theme:       t,
		Zones:       []Zone{},
		Structures:  []Structure{},
		Paths:       []Path{},
		Environment: []EnvObject{},
		Metadata: Metadata{
			ID:          id.String(),
			Seed:        seed,
			Size:        size,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}
}

// AddZone appends a zone.
func (d *Document) AddZone(z Zone) {
	d.Zones = append(d.Zones, z)
}

// AddPath appends a path. Degenerate paths (fewer than two points or
// non-positive width) are dropped rather than raising, so one bad candidate
// cannot abort a long generation pass.
func (d *Document) AddPath(p Path) {
	if len(p.Points) < 2 || p.Width <= 0 {
		return
	}
	d.Paths = append(d.Paths, p)
}

// AddStructure appends a structure and returns its index.
func (d *Document) AddStructure(s Structure) int {
	d.Structures = append(d.Structures, s)
	return len(d.Structures) - 1
}

// AddEnv appends an environment object.
func (d *Document) AddEnv(o EnvObject) {
	d.Environment = append(d.Environment, o)
}

// Save writes the document as indented JSON. The in-memory document remains
// valid if the write fails, so callers may retry the write without
// regenerating.
func (d *Document) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding world document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing world document: %w", err)
	}
	return nil
}

// Load reads a document from disk. Structure index pairs on paths are
// positional, so any pair out of range for the loaded structure list is
// cleared.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading world document: %w", err)
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing world document: %w", err)
	}

	n := len(d.Structures)
	for i := range d.Paths {
		c := d.Paths[i].Connects
		if c == nil {
			continue
		}
		if c[0] < 0 || c[0] >= n || c[1] < 0 || c[1] >= n {
			d.Paths[i].Connects = nil
		}
	}
	return &d, nil
}

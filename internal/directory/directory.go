package directory

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/parleyapp/parley/internal/models"
)

var validate = validator.New()

// Directory is the read-only catalog of addressable entities. Entities keep
// their registration order; lookups go through the id index.
type Directory struct {
	entities []models.Entity
	byID     map[int]models.Entity
}

// New builds a directory from a roster, validating every entry and
// rejecting duplicate ids. Order of the input is the registration order.
func New(entities []models.Entity) (*Directory, error) {
	byID := make(map[int]models.Entity, len(entities))
	for _, e := range entities {
		if err := validate.Struct(e); err != nil {
			return nil, fmt.Errorf("invalid entity %q: %w", e.Name, err)
		}
		if _, dup := byID[e.ID]; dup {
			return nil, fmt.Errorf("duplicate entity id %d", e.ID)
		}
		byID[e.ID] = e
	}
	return &Directory{entities: append([]models.Entity(nil), entities...), byID: byID}, nil
}

// List returns the entities in registration order.
func (d *Directory) List() []models.Entity {
	return append([]models.Entity(nil), d.entities...)
}

// Find looks up an entity by id.
func (d *Directory) Find(id int) (models.Entity, bool) {
	e, ok := d.byID[id]
	return e, ok
}

func (d *Directory) Len() int {
	return len(d.entities)
}

// Load reads a roster from a directory of YAML files, one entity per file.
// Files are read in name order so the registration order is stable across
// runs. A missing or empty roster directory falls back to the built-in
// default roster.
func Load(dir string) (*Directory, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read roster directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yml") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	if len(names) == 0 {
		return Default(), nil
	}

	var entities []models.Entity
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read roster file %s: %w", name, err)
		}

		var e models.Entity
		if err := yaml.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("failed to parse roster file %s: %w", name, err)
		}
		entities = append(entities, e)
	}

	return New(entities)
}

// Save writes one entity to a YAML roster file named after the entity.
func Save(dir string, e models.Entity) error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("invalid entity %q: %w", e.Name, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create roster directory: %w", err)
	}

	data, err := yaml.Marshal(&e)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	filename := fmt.Sprintf("%03d-%s.yml", e.ID, sanitizeFilename(e.Name))
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		return fmt.Errorf("failed to write roster file: %w", err)
	}

	return nil
}

// WriteDefault emits the built-in roster as YAML files, giving users a
// starting point to edit.
func WriteDefault(dir string) error {
	for _, e := range DefaultRoster() {
		if err := Save(dir, e); err != nil {
			return err
		}
	}
	return nil
}

// sanitizeFilename converts an entity name to a safe filename.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	name = strings.ReplaceAll(name, ":", "-")
	name = strings.ReplaceAll(name, " ", "-")
	return strings.ToLower(name)
}

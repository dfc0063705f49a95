package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"wearlog/internal/modules/profile/domain"
	profileout "wearlog/internal/modules/profile/port/out"
	trackingdomain "wearlog/internal/modules/tracking/domain"
	apperrors "wearlog/internal/platform/errors"
)

// defaultCatalogYAML seeds the catalog file on first run. Durations use Go
// duration syntax so a user can edit the file without learning a new format.
const defaultCatalogYAML = `# Wearing-method catalog. Objectives are daily wear-time thresholds:
# min_extra <= min <= max <= max_extra. A method with min == max has a
# single target instead of a comfort range.
methods:
  - id: andro-switch
    name: Andro-switch ring
    min_extra: 18h
    min: 20h
    max: 20h
    max_extra: 22h
  - id: thermal-briefs
    name: Thermal briefs
    min_extra: 13h
    min: 15h
    max: 18h
    max_extra: 20h
`

type catalogFile struct {
	Methods []methodEntry `yaml:"methods"`
}

type methodEntry struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	MinExtra string `yaml:"min_extra"`
	Min      string `yaml:"min"`
	Max      string `yaml:"max"`
	MaxExtra string `yaml:"max_extra"`
}

// YAMLMethodCatalog loads wearing methods from a YAML file, seeding it with
// the built-in methods when missing. The catalog is read once and held.
type YAMLMethodCatalog struct {
	methods []domain.Method
	byID    map[string]domain.Method
}

func NewYAMLMethodCatalog(path string) (profileout.MethodCatalog, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := seedCatalog(path); err != nil {
			return nil, err
		}
		raw = []byte(defaultCatalogYAML)
	} else if err != nil {
		return nil, fmt.Errorf("read method catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse method catalog %s: %w", path, err)
	}
	if len(file.Methods) == 0 {
		return nil, fmt.Errorf("method catalog %s lists no methods", path)
	}

	catalog := &YAMLMethodCatalog{byID: make(map[string]domain.Method, len(file.Methods))}
	for _, entry := range file.Methods {
		method, err := entry.toDomain()
		if err != nil {
			return nil, fmt.Errorf("method catalog %s: %w", path, err)
		}
		if _, dup := catalog.byID[method.ID]; dup {
			return nil, fmt.Errorf("method catalog %s: duplicate method %q", path, method.ID)
		}
		catalog.methods = append(catalog.methods, method)
		catalog.byID[method.ID] = method
	}
	return catalog, nil
}

func seedCatalog(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultCatalogYAML), 0o644); err != nil {
		return fmt.Errorf("seed method catalog: %w", err)
	}
	return nil
}

func (e methodEntry) toDomain() (domain.Method, error) {
	if e.ID == "" {
		return domain.Method{}, fmt.Errorf("method entry missing id")
	}
	objective := trackingdomain.Objective{}
	for _, field := range []struct {
		name  string
		raw   string
		value *time.Duration
	}{
		{"min_extra", e.MinExtra, &objective.MinExtra},
		{"min", e.Min, &objective.Min},
		{"max", e.Max, &objective.Max},
		{"max_extra", e.MaxExtra, &objective.MaxExtra},
	} {
		d, err := time.ParseDuration(field.raw)
		if err != nil {
			return domain.Method{}, fmt.Errorf("method %q: bad %s %q: %w", e.ID, field.name, field.raw, err)
		}
		*field.value = d
	}
	method := domain.Method{ID: e.ID, Name: e.Name, Objective: objective}
	if err := method.Validate(); err != nil {
		return domain.Method{}, err
	}
	return method, nil
}

func (c *YAMLMethodCatalog) Methods(_ context.Context) ([]domain.Method, error) {
	out := make([]domain.Method, len(c.methods))
	copy(out, c.methods)
	return out, nil
}

func (c *YAMLMethodCatalog) Method(_ context.Context, id string) (domain.Method, error) {
	method, ok := c.byID[id]
	if !ok {
		return domain.Method{}, fmt.Errorf("method %q: %w", id, apperrors.ErrUnknownMethod)
	}
	return method, nil
}

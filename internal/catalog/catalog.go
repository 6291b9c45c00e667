// Package catalog holds the neighborhoods a user can pick from.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"

	"dongne/internal/domain"
)

//go:embed towns.yaml
var defaultCatalog []byte

// ErrNotFound is returned when an id is not in the catalog
var ErrNotFound = errors.New("neighborhood not found")

type yamlCatalog struct {
	Version       int         `yaml:"version"`
	Neighborhoods []yamlEntry `yaml:"neighborhoods"`
}

type yamlEntry struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	District string   `yaml:"district"`
	Nearby   []string `yaml:"nearby"`
}

// Catalog is an immutable, ordered set of neighborhoods
type Catalog struct {
	entries []domain.Neighborhood
	byID    map[string]int
	nearby  map[string][]string
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog file; an empty path yields the built-in catalog
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML catalog
func Parse(data []byte) (*Catalog, error) {
	var doc yamlCatalog
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(doc.Neighborhoods) == 0 {
		return nil, errors.New("catalog has no neighborhoods")
	}

	c := &Catalog{
		entries: make([]domain.Neighborhood, 0, len(doc.Neighborhoods)),
		byID:    make(map[string]int, len(doc.Neighborhoods)),
		nearby:  make(map[string][]string, len(doc.Neighborhoods)),
	}
	for i, e := range doc.Neighborhoods {
		if e.ID == "" || e.Name == "" {
			return nil, fmt.Errorf("neighborhood #%d: id and name are required", i+1)
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("neighborhood %q is listed twice", e.ID)
		}
		c.byID[e.ID] = len(c.entries)
		c.entries = append(c.entries, domain.Neighborhood{ID: e.ID, Name: e.Name, District: e.District})
		c.nearby[e.ID] = e.Nearby
	}

	// Nearby ids must resolve
	for id, ids := range c.nearby {
		for _, n := range ids {
			if _, ok := c.byID[n]; !ok {
				return nil, fmt.Errorf("neighborhood %q lists unknown nearby %q", id, n)
			}
		}
	}
	return c, nil
}

// All returns every neighborhood in catalog order
func (c *Catalog) All() []domain.Neighborhood {
	out := make([]domain.Neighborhood, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len implements fuzzy.Source
func (c *Catalog) Len() int {
	return len(c.entries)
}

// String implements fuzzy.Source; both name and district are searchable
func (c *Catalog) String(i int) string {
	e := c.entries[i]
	return e.Name + " " + e.District + " " + e.ID
}

// Lookup finds a neighborhood by id, or by exact display name
func (c *Catalog) Lookup(key string) (domain.Neighborhood, error) {
	if i, ok := c.byID[key]; ok {
		return c.entries[i], nil
	}
	for _, e := range c.entries {
		if e.Name == key {
			return e, nil
		}
	}
	return domain.Neighborhood{}, fmt.Errorf("%w: %s", ErrNotFound, key)
}

// Search returns neighborhoods matching query, best matches first. An
// empty query returns the whole catalog.
func (c *Catalog) Search(query string) []domain.Neighborhood {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.All()
	}

	matches := fuzzy.FindFrom(query, c)
	out := make([]domain.Neighborhood, 0, len(matches))
	for _, m := range matches {
		out = append(out, c.entries[m.Index])
	}
	return out
}

// NearbyCount is the number of neighborhoods around id whose listings are shown
func (c *Catalog) NearbyCount(id string) int {
	return len(c.nearby[id])
}

// Resolve turns persisted ids into neighborhoods
func (c *Catalog) Resolve(primary, secondary string) (domain.TownSetting, error) {
	var setting domain.TownSetting
	if primary == "" {
		return setting, nil
	}
	p, err := c.Lookup(primary)
	if err != nil {
		return setting, err
	}
	setting.Primary = p
	if secondary != "" {
		s, err := c.Lookup(secondary)
		if err != nil {
			return setting, err
		}
		setting.Secondary = s
	}
	return setting, nil
}

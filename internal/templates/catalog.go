// Package templates holds the task template catalog. The built-in catalog is
// embedded; changes made at runtime live in memory only.
package templates

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"sync"

	"tasktracker/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var builtin []byte

type catalogFile struct {
	Templates []domain.Template `yaml:"templates"`
}

// Parse decodes a YAML catalog
func Parse(data []byte) ([]domain.Template, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse template catalog: %w", err)
	}
	seen := make(map[int64]bool, len(f.Templates))
	for _, t := range f.Templates {
		if t.ID <= 0 {
			return nil, fmt.Errorf("template %q: id must be positive", t.Name)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("template %q: duplicate id %d", t.Name, t.ID)
		}
		seen[t.ID] = true
	}
	return f.Templates, nil
}

// Builtin returns the embedded catalog
func Builtin() []domain.Template {
	items, err := Parse(builtin)
	if err != nil {
		panic(err)
	}
	return items
}

// Load reads the catalog from path, or the embedded one when path is empty
func Load(path string) ([]domain.Template, error) {
	if path == "" {
		return Builtin(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template catalog: %w", err)
	}
	return Parse(data)
}

// Catalog is the in-memory template set
type Catalog struct {
	mu     sync.RWMutex
	items  map[int64]domain.Template
	nextID int64
}

func NewCatalog(items []domain.Template) *Catalog {
	c := &Catalog{items: make(map[int64]domain.Template, len(items))}
	for _, t := range items {
		c.items[t.ID] = t
		if t.ID > c.nextID {
			c.nextID = t.ID
		}
	}
	return c
}

// List returns the templates ordered by id
func (c *Catalog) List() []domain.Template {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Template, 0, len(c.items))
	for _, t := range c.items {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (c *Catalog) Get(id int64) (domain.Template, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.items[id]
	return t, ok
}

// Add stores t under a fresh id and returns it
func (c *Catalog) Add(t domain.Template) domain.Template {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	t.ID = c.nextID
	c.items[t.ID] = t
	return t
}

// Replace overwrites an existing template; false when the id is unknown
func (c *Catalog) Replace(t domain.Template) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[t.ID]; !ok {
		return false
	}
	c.items[t.ID] = t
	return true
}

// Remove deletes the template and returns it
func (c *Catalog) Remove(id int64) (domain.Template, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.items[id]
	if ok {
		delete(c.items, id)
	}
	return t, ok
}

package templates

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"tasktracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	items := Builtin()
	require.Len(t, items, 4)

	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
		assert.True(t, it.Priority.Valid(), it.Name)
		assert.NotEmpty(t, it.Title, it.Name)
	}
	assert.Equal(t, []string{"Morning Routine", "Weekly Report", "Monthly Review", "Daily Standup"}, names)
}

func TestParse_Rejects(t *testing.T) {
	_, err := Parse([]byte("templates:\n  - id: 0\n    name: x\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("templates:\n  - id: 1\n    name: a\n  - id: 1\n    name: b\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("templates: ["))
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := "templates:\n  - id: 7\n    name: Groceries\n    title: Buy groceries\n    priority: low\n    project_id: 3\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	items, err := Load(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].ID)
	assert.Equal(t, domain.PriorityLow, items[0].Priority)
	require.NotNil(t, items[0].ProjectID)
	assert.Equal(t, int64(3), *items[0].ProjectID)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCatalog_CRUD(t *testing.T) {
	c := NewCatalog(Builtin())

	added := c.Add(domain.Template{Name: "Inbox zero", Title: "Clear inbox", Priority: domain.PriorityMedium})
	assert.Equal(t, int64(5), added.ID)

	got, ok := c.Get(5)
	require.True(t, ok)
	assert.Equal(t, "Inbox zero", got.Name)

	got.Title = "Clear the inbox"
	assert.True(t, c.Replace(got))
	assert.False(t, c.Replace(domain.Template{ID: 99}))

	removed, ok := c.Remove(2)
	require.True(t, ok)
	assert.Equal(t, "Weekly Report", removed.Name)
	_, ok = c.Remove(2)
	assert.False(t, ok)

	list := c.List()
	require.Len(t, list, 4)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, "Clear the inbox", list[3].Title)
}

func TestCatalog_ConcurrentAdd(t *testing.T) {
	c := NewCatalog(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Add(domain.Template{Name: "t"})
			_ = c.List()
		}()
	}
	wg.Wait()
	assert.Len(t, c.List(), 50)
}

package directory

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleyapp/parley/internal/models"
)

func TestNewRejectsDuplicateIDs(t *testing.T) {
	_, err := New([]models.Entity{
		{ID: 1, Name: "Alice", Kind: models.KindIndividual},
		{ID: 1, Name: "Bob", Kind: models.KindIndividual},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate entity id")
}

func TestNewRejectsInvalidEntities(t *testing.T) {
	cases := []struct {
		name   string
		entity models.Entity
	}{
		{"missing name", models.Entity{ID: 1, Kind: models.KindIndividual}},
		{"missing id", models.Entity{Name: "Alice", Kind: models.KindIndividual}},
		{"bad kind", models.Entity{ID: 1, Name: "Alice", Kind: "robot"}},
		{"group without members", models.Entity{ID: 1, Name: "Team", Kind: models.KindGroup}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New([]models.Entity{tc.entity})
			require.Error(t, err)
		})
	}
}

func TestListPreservesRegistrationOrder(t *testing.T) {
	d := Default()

	entities := d.List()
	require.Len(t, entities, 20)
	assert.Equal(t, "Emma Thompson", entities[0].Name)
	assert.Equal(t, "Sofia Rodriguez", entities[19].Name)

	// A second read returns the same order.
	again := d.List()
	assert.Equal(t, entities, again)
}

func TestFind(t *testing.T) {
	d := Default()

	e, ok := d.Find(3)
	require.True(t, ok)
	assert.Equal(t, "Project Team", e.Name)
	assert.True(t, e.IsGroup())
	assert.Equal(t, []string{"Sarah Parker", "Michael Brown", "Lisa Anderson"}, e.Members)

	_, ok = d.Find(999)
	assert.False(t, ok)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()

	roster := []models.Entity{
		{ID: 1, Name: "Alice", Kind: models.KindIndividual},
		{ID: 2, Name: "Team X", Kind: models.KindGroup, Members: []string{"Bob", "Carol"}},
	}
	for _, e := range roster {
		require.NoError(t, Save(dir, e))
	}

	d, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, roster, d.List())
}

func TestLoadEmptyDirFallsBackToDefault(t *testing.T) {
	d, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultRoster(), d.List())
}

func TestLoadMissingDirFallsBackToDefault(t *testing.T) {
	d, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Equal(t, DefaultRoster(), d.List())
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDefault(dir))

	d, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultRoster(), d.List())
}

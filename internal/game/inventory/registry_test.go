package inventory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/rasaratnakara/internal/game/inventory"
)

func TestRegistry_DisplayName(t *testing.T) {
	reg, _ := loadTestBook(t)
	assert.Equal(t, "Divine Gold", reg.DisplayName("gold"))
	assert.Equal(t, "Yakshini Child", reg.DisplayName("yakshini_child"))
}

func TestRegistry_ProduceEffect(t *testing.T) {
	reg, _ := loadTestBook(t)
	e, ok := reg.ProduceEffect("adamantine_body")
	require.True(t, ok)
	assert.Equal(t, 6, e.MaxHealth)

	_, ok = reg.ProduceEffect("gold")
	assert.False(t, ok)
	_, ok = reg.ProduceEffect("missing")
	assert.False(t, ok)
}

func TestRegistry_DuplicateID(t *testing.T) {
	_, err := inventory.NewRegistryFrom([]*inventory.ItemDef{
		{ID: "a", Name: "A"},
		{ID: "a", Name: "A again"},
	})
	assert.Error(t, err)
}

func TestRegistry_AllItemsSorted(t *testing.T) {
	reg, _ := loadTestBook(t)
	all := reg.AllItems()
	require.Len(t, all, 6)
	assert.Equal(t, "adamantine_body", all[0].ID)
	assert.Equal(t, "tamarind_wood", all[5].ID)
}

func TestItemDef_Validate(t *testing.T) {
	assert.Error(t, (&inventory.ItemDef{Name: "x"}).Validate())
	assert.Error(t, (&inventory.ItemDef{ID: "x"}).Validate())
	assert.Error(t, (&inventory.ItemDef{ID: "x", Name: "X", OnProduce: &inventory.Effect{MaxHealth: -1}}).Validate())
	assert.NoError(t, (&inventory.ItemDef{ID: "x", Name: "X"}).Validate())
}

func TestLoadItemsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testItemsYAML), 0644))
	defs, err := inventory.LoadItemsFromFile(path)
	require.NoError(t, err)
	assert.Len(t, defs, 6)

	_, err = inventory.LoadItemsFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

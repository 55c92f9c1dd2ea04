package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/dungeon-engine/pkg/actor"
	"github.com/jwebster45206/dungeon-engine/pkg/catalog"
)

func TestEmbeddedCatalogIsValid(t *testing.T) {
	v := &CatalogValidator{}
	assert.NoError(t, v.validateFile(""))
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}

	v := &CatalogValidator{}

	err := v.validateFile(write("catalog.json", "{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".yaml extension")

	err = v.validateFile(write("typo.yaml", "traitz: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strict YAML")

	err = v.validateFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestValidateCatalogNaming(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	bad := *cat
	bad.Shop = append([]actor.Item(nil), cat.Shop...)
	bad.Shop[0].ID = "Big-Potion"
	bad.Starter.Skills = nil

	v := &CatalogValidator{}
	v.validateCatalog(&bad)
	require.Len(t, v.errors, 2)
	assert.Contains(t, v.errors[0], "'Big-Potion' should be lowercase snake_case")
	assert.Contains(t, v.errors[1], "no skills")
}

func TestIsValidID(t *testing.T) {
	tests := map[string]bool{
		"potion_small": true,
		"a":            true,
		"iron_sword2":  true,
		"Potion":       false,
		"potion-small": false,
		"potion_":      false,
		"_potion":      false,
	}
	for id, want := range tests {
		assert.Equal(t, want, isValidID(id), id)
	}
}

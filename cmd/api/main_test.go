package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Le middleware swagger panique sur un fichier manquant: un checkout frais
// sans étape de génération doit quand même démarrer.
func TestSpecExiste(t *testing.T) {
	dir := t.TempDir()

	assert.False(t, specExiste(filepath.Join(dir, "swagger.json")), "fichier absent")
	assert.False(t, specExiste(dir), "un répertoire ne convient pas")

	chemin := filepath.Join(dir, "swagger.json")
	require.NoError(t, os.WriteFile(chemin, []byte("{}"), 0o644))
	assert.True(t, specExiste(chemin))
}

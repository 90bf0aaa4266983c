package repository

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func writeTestFile(t *testing.T, dir, name string, content []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), content, 0644))
}

func TestListScriptsSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "sales_summary.sql", []byte("SELECT 1;"))
	writeTestFile(t, dir, "high_value_products.sql", []byte("SELECT 2;"))
	writeTestFile(t, dir, "notes.txt", []byte("not a script"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.sql"), 0755))

	store := NewFSScriptStore(dir, testLogger())
	scripts, err := store.ListScripts()

	require.NoError(t, err)
	require.Len(t, scripts, 2)
	assert.Equal(t, "high_value_products.sql", scripts[0].Name)
	assert.Equal(t, "sales_summary.sql", scripts[1].Name)
	assert.Equal(t, int64(9), scripts[0].Size)
	assert.False(t, scripts[0].Modified.IsZero())
}

func TestReadScript(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "product_listing.sql", []byte("SELECT id, name FROM products;\n"))

	store := NewFSScriptStore(dir, testLogger())
	content, err := store.ReadScript("product_listing.sql")

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name FROM products;\n", content)
}

func TestReadScriptNotFound(t *testing.T) {
	store := NewFSScriptStore(t.TempDir(), testLogger())

	_, err := store.ReadScript("missing.sql")
	assert.ErrorContains(t, err, "not found")
}

func TestListScriptsMissingDir(t *testing.T) {
	store := NewFSScriptStore(filepath.Join(t.TempDir(), "nope"), testLogger())

	_, err := store.ListScripts()
	assert.Error(t, err)
}

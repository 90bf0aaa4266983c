package repository

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func writeInventory(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadItemsUTF8(t *testing.T) {
	path := writeInventory(t, "Barcode,Name,Qty,Qty_new\n123456789,منتج أ,10,0\n987654321,منتج ب,5.0,2\n")

	repo := NewCSVInventoryRepository(path, testLogger())
	items, err := repo.LoadItems()

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "123456789", items[0].Barcode)
	assert.Equal(t, "منتج أ", items[0].Name)
	assert.Equal(t, 10, items[0].Qty)
	assert.Equal(t, 0, items[0].Counted)
	// Float-formatted quantity from a spreadsheet export.
	assert.Equal(t, 5, items[1].Qty)
	assert.Equal(t, 2, items[1].Counted)
}

func TestLoadItemsWindows1256(t *testing.T) {
	raw, err := charmap.Windows1256.NewEncoder().Bytes([]byte("Barcode,Name,Qty,Qty_new\n123456789,منتج أ,10,0\n"))
	require.NoError(t, err)
	require.False(t, utf8.Valid(raw))

	path := filepath.Join(t.TempDir(), "inventory.csv")
	require.NoError(t, os.WriteFile(path, raw, 0644))

	repo := NewCSVInventoryRepository(path, testLogger())
	items, err := repo.LoadItems()

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "منتج أ", items[0].Name)
}

func TestLoadItemsHeaderVariants(t *testing.T) {
	path := writeInventory(t, "barcode, name ,QTY,qty new\n111111111,Desk,3,1\n")

	repo := NewCSVInventoryRepository(path, testLogger())
	items, err := repo.LoadItems()

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Desk", items[0].Name)
	assert.Equal(t, 3, items[0].Qty)
	assert.Equal(t, 1, items[0].Counted)
}

func TestLoadItemsMissingColumns(t *testing.T) {
	path := writeInventory(t, "Barcode,Name,Qty\n123,Item,1\n")

	repo := NewCSVInventoryRepository(path, testLogger())
	_, err := repo.LoadItems()

	assert.ErrorContains(t, err, "missing columns")
	assert.ErrorContains(t, err, "qtynew")
}

func TestLoadItemsRepairsUnquotedCommaNames(t *testing.T) {
	// The second row's name contains a raw comma, splitting it into five
	// fields against a four-column header.
	path := writeInventory(t, "Barcode,Name,Qty,Qty_new\n123456789,Mouse,10,0\n987654321,Mouse, USB,5,2\n")

	repo := NewCSVInventoryRepository(path, testLogger())
	items, err := repo.LoadItems()

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Mouse, USB", items[1].Name)
	assert.Equal(t, 5, items[1].Qty)
	assert.Equal(t, 2, items[1].Counted)
}

func TestLoadItemsPadsShortRows(t *testing.T) {
	path := writeInventory(t, "Barcode,Name,Qty,Qty_new\n123456789,Mouse\n")

	repo := NewCSVInventoryRepository(path, testLogger())
	items, err := repo.LoadItems()

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Mouse", items[0].Name)
	assert.Equal(t, 0, items[0].Qty)
	assert.Equal(t, 0, items[0].Counted)
}

func TestIncrementCountedStartsBlankAtOne(t *testing.T) {
	path := writeInventory(t, "Barcode,Name,Qty,Qty_new\n123456789,منتج أ,10,\n")
	repo := NewCSVInventoryRepository(path, testLogger())

	item, err := repo.IncrementCounted("123456789")
	require.NoError(t, err)
	assert.Equal(t, 1, item.Counted)

	// The write persisted: a fresh read sees the new value.
	item, err = repo.GetItem("123456789")
	require.NoError(t, err)
	assert.Equal(t, 1, item.Counted)

	item, err = repo.IncrementCounted("123456789")
	require.NoError(t, err)
	assert.Equal(t, 2, item.Counted)
}

func TestSetCounted(t *testing.T) {
	path := writeInventory(t, "Barcode,Name,Qty,Qty_new\n123456789,منتج أ,10,4\n")
	repo := NewCSVInventoryRepository(path, testLogger())

	item, err := repo.SetCounted("123456789", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, item.Counted)

	item, err = repo.SetCounted("123456789", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, item.Counted)
}

func TestGetItemNotFound(t *testing.T) {
	path := writeInventory(t, "Barcode,Name,Qty,Qty_new\n123456789,منتج أ,10,0\n")
	repo := NewCSVInventoryRepository(path, testLogger())

	_, err := repo.GetItem("000000000")
	assert.ErrorContains(t, err, "not found in inventory")
}

func TestSavePreservesExtraColumns(t *testing.T) {
	path := writeInventory(t, "Barcode,Name,Qty,Qty_new,Price\n123456789,منتج أ,10,0,99.5\n")
	repo := NewCSVInventoryRepository(path, testLogger())

	_, err := repo.IncrementCounted("123456789")
	require.NoError(t, err)

	items, err := repo.LoadItems()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Counted)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	decoded, err := charmap.Windows1256.NewDecoder().Bytes(raw)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(decoded), "99.5"))
}

func TestCreateSampleInventoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.csv")
	repo := NewCSVInventoryRepository(path, testLogger())

	require.NoError(t, repo.CreateSampleInventory())

	// The file on disk is Windows-1256, not UTF-8.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, utf8.Valid(raw))

	items, err := repo.LoadItems()
	require.NoError(t, err)
	require.Len(t, items, 5)
	assert.Equal(t, "123456789", items[0].Barcode)
	assert.Equal(t, "منتج أ", items[0].Name)
	assert.Equal(t, 10, items[0].Qty)
	assert.Equal(t, "39200", items[4].Barcode)
	assert.Equal(t, 8, items[4].Qty)
}

func TestLoadItemsMissingFile(t *testing.T) {
	repo := NewCSVInventoryRepository(filepath.Join(t.TempDir(), "inventory.csv"), testLogger())

	_, err := repo.LoadItems()
	assert.ErrorContains(t, err, "not found")
}

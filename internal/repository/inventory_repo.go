package repository

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/AmrElsaadany/Jojo-Stock/internal/domain"
)

// Normalized column keys: header names are lowercased and stripped of spaces
// and underscores before matching, so "Qty_new", "qty new" and "QtyNew" all
// resolve to qtynew.
const (
	colBarcode = "barcode"
	colName    = "name"
	colQty     = "qty"
	colCounted = "qtynew"
)

var requiredColumns = []string{colBarcode, colName, colQty, colCounted}

// Stocktake files come from POS exports that are usually Windows-1256
// (Arabic). Valid UTF-8 input is taken as-is; everything else runs through
// this list in order.
var fallbackEncodings = []struct {
	name string
	enc  encoding.Encoding
}{
	{"windows-1256", charmap.Windows1256},
	{"iso-8859-6", charmap.ISO8859_6},
	{"latin-1", charmap.ISO8859_1},
	{"windows-1252", charmap.Windows1252},
}

var sampleInventoryHeader = []string{"Barcode", "Name", "Qty", "Qty_new"}

var sampleInventoryRows = [][]string{
	{"123456789", "منتج أ", "10", "0"},
	{"987654321", "منتج ب", "5", "0"},
	{"555555555", "منتج ج", "20", "0"},
	{"111111111", "منتج د", "15", "0"},
	{"39200", "منتج اختبار", "8", "0"},
}

type inventoryFile struct {
	header  []string
	records [][]string
	columns map[string]int
}

type csvInventoryRepository struct {
	path string
	log  *logrus.Logger
	mu   sync.Mutex
}

func NewCSVInventoryRepository(path string, logger *logrus.Logger) domain.InventoryRepository {
	return &csvInventoryRepository{
		path: path,
		log:  logger,
	}
}

func normalizeColumn(name string) string {
	return strings.NewReplacer(" ", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(name)))
}

func parseQuantity(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	// Spreadsheet exports sometimes render integer columns as floats ("8.0").
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return int(f)
	}
	return 0
}

func decodeInventory(raw []byte) (string, string, error) {
	if utf8.Valid(raw) {
		return string(raw), "utf-8", nil
	}
	for _, fe := range fallbackEncodings {
		decoded, err := fe.enc.NewDecoder().Bytes(raw)
		if err != nil {
			continue
		}
		return string(decoded), fe.name, nil
	}
	return "", "", fmt.Errorf("could not decode inventory file with any supported encoding")
}

// repairRecords fixes rows whose field count does not match the header.
// Product names with unquoted commas split into extra fields: the first field
// stays the barcode, the trailing quantity fields stay where they are, and
// everything in between is joined back into the name. Short rows are padded.
func repairRecords(records [][]string, expected int) ([][]string, int) {
	fixed := make([][]string, 0, len(records))
	repaired := 0
	for _, record := range records {
		switch {
		case len(record) == expected:
			fixed = append(fixed, record)
		case len(record) > expected:
			trailing := expected - 2
			if trailing < 0 {
				trailing = 0
			}
			row := []string{record[0]}
			if trailing > 0 {
				name := strings.Join(record[1:len(record)-trailing], ",")
				row = append(row, strings.TrimSpace(name))
				row = append(row, record[len(record)-trailing:]...)
			} else {
				row = append(row, strings.TrimSpace(strings.Join(record[1:], ",")))
			}
			for len(row) < expected {
				row = append(row, "")
			}
			fixed = append(fixed, row[:expected])
			repaired++
		default:
			row := append([]string{}, record...)
			for len(row) < expected {
				row = append(row, "")
			}
			fixed = append(fixed, row)
			repaired++
		}
	}
	return fixed, repaired
}

func (r *csvInventoryRepository) load() (*inventoryFile, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("inventory file %q not found", r.path)
		}
		return nil, fmt.Errorf("could not read inventory file: %w", err)
	}

	text, encodingName, err := decodeInventory(raw)
	if err != nil {
		return nil, err
	}
	if encodingName != "utf-8" {
		r.log.Debugf("Inventory file decoded as %s", encodingName)
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rawRecords, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse inventory file: %w", err)
	}
	if len(rawRecords) == 0 {
		return nil, fmt.Errorf("inventory file %q is empty", r.path)
	}

	header := make([]string, len(rawRecords[0]))
	columns := make(map[string]int, len(header))
	for i, col := range rawRecords[0] {
		header[i] = strings.TrimSpace(col)
		columns[normalizeColumn(col)] = i
	}

	missing := []string{}
	for _, want := range requiredColumns {
		if _, ok := columns[want]; !ok {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("inventory file is missing columns: %s", strings.Join(missing, ", "))
	}

	records, repaired := repairRecords(rawRecords[1:], len(header))
	if repaired > 0 {
		r.log.Infof("Repaired %d malformed inventory rows", repaired)
	}

	return &inventoryFile{
		header:  header,
		records: records,
		columns: columns,
	}, nil
}

// save writes the file back in Windows-1256; the scanners downstream expect
// Arabic-compatible files. Runes outside the charset are replaced.
func (r *csvInventoryRepository) save(f *inventoryFile) error {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(f.header); err != nil {
		return fmt.Errorf("could not write inventory header: %w", err)
	}
	if err := writer.WriteAll(f.records); err != nil {
		return fmt.Errorf("could not write inventory rows: %w", err)
	}

	encoded, err := encoding.ReplaceUnsupported(charmap.Windows1256.NewEncoder()).Bytes(buf.Bytes())
	if err != nil {
		return fmt.Errorf("could not encode inventory file: %w", err)
	}
	if err := os.WriteFile(r.path, encoded, 0644); err != nil {
		return fmt.Errorf("could not save inventory file: %w", err)
	}
	return nil
}

func (f *inventoryFile) item(record []string) domain.InventoryItem {
	return domain.InventoryItem{
		Barcode: strings.TrimSpace(record[f.columns[colBarcode]]),
		Name:    strings.TrimSpace(record[f.columns[colName]]),
		Qty:     parseQuantity(record[f.columns[colQty]]),
		Counted: parseQuantity(record[f.columns[colCounted]]),
	}
}

func (f *inventoryFile) find(barcode string) int {
	idx := f.columns[colBarcode]
	for i, record := range f.records {
		if strings.TrimSpace(record[idx]) == barcode {
			return i
		}
	}
	return -1
}

func (r *csvInventoryRepository) LoadItems() ([]domain.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.load()
	if err != nil {
		return nil, err
	}
	items := make([]domain.InventoryItem, 0, len(f.records))
	for _, record := range f.records {
		items = append(items, f.item(record))
	}
	return items, nil
}

func (r *csvInventoryRepository) GetItem(barcode string) (*domain.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.load()
	if err != nil {
		return nil, err
	}
	i := f.find(barcode)
	if i < 0 {
		return nil, fmt.Errorf("barcode %q not found in inventory", barcode)
	}
	item := f.item(f.records[i])
	return &item, nil
}

func (r *csvInventoryRepository) IncrementCounted(barcode string) (*domain.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.load()
	if err != nil {
		return nil, err
	}
	i := f.find(barcode)
	if i < 0 {
		return nil, fmt.Errorf("barcode %q not found in inventory", barcode)
	}

	counted := parseQuantity(f.records[i][f.columns[colCounted]]) + 1
	f.records[i][f.columns[colCounted]] = strconv.Itoa(counted)
	if err := r.save(f); err != nil {
		return nil, err
	}

	item := f.item(f.records[i])
	r.log.Infof("Scanned barcode %s (%s): counted %d", item.Barcode, item.Name, item.Counted)
	return &item, nil
}

func (r *csvInventoryRepository) SetCounted(barcode string, counted int) (*domain.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.load()
	if err != nil {
		return nil, err
	}
	i := f.find(barcode)
	if i < 0 {
		return nil, fmt.Errorf("barcode %q not found in inventory", barcode)
	}

	f.records[i][f.columns[colCounted]] = strconv.Itoa(counted)
	if err := r.save(f); err != nil {
		return nil, err
	}

	item := f.item(f.records[i])
	r.log.Infof("Set counted quantity for barcode %s (%s) to %d", item.Barcode, item.Name, counted)
	return &item, nil
}

func (r *csvInventoryRepository) CreateSampleInventory() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f := &inventoryFile{
		header:  sampleInventoryHeader,
		records: sampleInventoryRows,
	}
	if err := r.save(f); err != nil {
		return err
	}
	r.log.Infof("Sample inventory written to %s (%d rows)", r.path, len(sampleInventoryRows))
	return nil
}

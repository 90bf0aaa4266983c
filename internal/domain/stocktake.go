package domain

import "time"

// InventoryItem is one row of the stocktake file. Qty is the quantity the
// system expects, Counted is what has been scanned so far this stocktake.
type InventoryItem struct {
	Barcode string `json:"barcode"`
	Name    string `json:"name"`
	Qty     int    `json:"qty"`
	Counted int    `json:"counted"`
}

type ScanRecord struct {
	Barcode   string    `json:"barcode"`
	Name      string    `json:"product_name"`
	OldQty    int       `json:"old_qty"`
	NewQty    int       `json:"new_qty"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	ActionScan         = "scan"
	ActionManualUpdate = "manual_update"
)

type StocktakeSession struct {
	ID        string       `json:"id"`
	Total     int          `json:"total_scanned"`
	StartedAt time.Time    `json:"started_at"`
	Duration  string       `json:"duration"`
	Items     []ScanRecord `json:"items"`
}

type StocktakeOverview struct {
	TotalProducts int `json:"total_products"`
	TotalCounted  int `json:"total_counted"`
	UniqueCounted int `json:"unique_counted"`
}

type InventoryRepository interface {
	LoadItems() ([]InventoryItem, error)
	GetItem(barcode string) (*InventoryItem, error)
	IncrementCounted(barcode string) (*InventoryItem, error)
	SetCounted(barcode string, counted int) (*InventoryItem, error)
	CreateSampleInventory() error
}

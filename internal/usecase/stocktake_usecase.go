package usecase

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/AmrElsaadany/Jojo-Stock/internal/domain"
)

// StocktakeUseCase runs a counting session against the inventory file. Scans
// and manual corrections update the file immediately; the session log itself
// lives in memory until reset.
type StocktakeUseCase interface {
	Scan(barcode string) (*domain.ScanRecord, error)
	UpdateCounted(barcode string, counted int) (*domain.ScanRecord, error)
	Session() *domain.StocktakeSession
	ResetSession() *domain.StocktakeSession
	Overview() (*domain.StocktakeOverview, error)
	Items(search string) ([]domain.InventoryItem, error)
}

type stocktakeUseCase struct {
	inventoryRepo domain.InventoryRepository
	log           *logrus.Logger

	mu        sync.Mutex
	sessionID string
	total     int
	startedAt time.Time
	records   []domain.ScanRecord
}

func NewStocktakeUseCase(inventoryRepo domain.InventoryRepository, logger *logrus.Logger) StocktakeUseCase {
	return &stocktakeUseCase{
		inventoryRepo: inventoryRepo,
		log:           logger,
		sessionID:     uuid.NewString(),
		startedAt:     time.Now(),
	}
}

func (uc *stocktakeUseCase) Scan(barcode string) (*domain.ScanRecord, error) {
	barcode = strings.TrimSpace(barcode)
	uc.log.Infof("Use Case: scanning barcode %s", barcode)
	if barcode == "" {
		return nil, fmt.Errorf("barcode cannot be empty")
	}

	item, err := uc.inventoryRepo.IncrementCounted(barcode)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return nil, uc.withKnownBarcodes(err)
		}
		return nil, err
	}

	record := domain.ScanRecord{
		Barcode:   item.Barcode,
		Name:      item.Name,
		OldQty:    item.Qty,
		NewQty:    item.Counted,
		Action:    domain.ActionScan,
		Timestamp: time.Now(),
	}
	uc.addRecord(record)
	return &record, nil
}

// withKnownBarcodes appends a sample of valid barcodes to a lookup failure so
// scanner operators can spot encoding or prefix mismatches.
func (uc *stocktakeUseCase) withKnownBarcodes(cause error) error {
	items, err := uc.inventoryRepo.LoadItems()
	if err != nil || len(items) == 0 {
		return cause
	}
	limit := len(items)
	if limit > 20 {
		limit = 20
	}
	barcodes := make([]string, 0, limit)
	for _, item := range items[:limit] {
		barcodes = append(barcodes, item.Barcode)
	}
	return fmt.Errorf("%w; first %d known barcodes: %s", cause, len(barcodes), strings.Join(barcodes, ", "))
}

func (uc *stocktakeUseCase) UpdateCounted(barcode string, counted int) (*domain.ScanRecord, error) {
	barcode = strings.TrimSpace(barcode)
	uc.log.Infof("Use Case: setting counted quantity for %s to %d", barcode, counted)
	if barcode == "" {
		return nil, fmt.Errorf("barcode cannot be empty")
	}
	if counted < 0 {
		return nil, fmt.Errorf("counted quantity cannot be negative")
	}

	current, err := uc.inventoryRepo.GetItem(barcode)
	if err != nil {
		return nil, err
	}
	item, err := uc.inventoryRepo.SetCounted(barcode, counted)
	if err != nil {
		return nil, err
	}

	record := domain.ScanRecord{
		Barcode:   item.Barcode,
		Name:      item.Name,
		OldQty:    current.Counted,
		NewQty:    item.Counted,
		Action:    domain.ActionManualUpdate,
		Timestamp: time.Now(),
	}
	uc.addRecord(record)
	return &record, nil
}

func (uc *stocktakeUseCase) addRecord(record domain.ScanRecord) {
	uc.mu.Lock()
	uc.total++
	uc.records = append(uc.records, record)
	uc.mu.Unlock()
}

func (uc *stocktakeUseCase) Session() *domain.StocktakeSession {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.sessionLocked()
}

func (uc *stocktakeUseCase) sessionLocked() *domain.StocktakeSession {
	items := make([]domain.ScanRecord, len(uc.records))
	copy(items, uc.records)
	elapsed := int(time.Since(uc.startedAt).Seconds())
	return &domain.StocktakeSession{
		ID:        uc.sessionID,
		Total:     uc.total,
		StartedAt: uc.startedAt,
		Duration:  fmt.Sprintf("%dh %dm", elapsed/3600, (elapsed%3600)/60),
		Items:     items,
	}
}

func (uc *stocktakeUseCase) ResetSession() *domain.StocktakeSession {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.log.Infof("Use Case: resetting stocktake session %s", uc.sessionID)
	uc.sessionID = uuid.NewString()
	uc.total = 0
	uc.records = nil
	uc.startedAt = time.Now()
	return uc.sessionLocked()
}

func (uc *stocktakeUseCase) Overview() (*domain.StocktakeOverview, error) {
	uc.log.Info("Use Case: building stocktake overview")
	items, err := uc.inventoryRepo.LoadItems()
	if err != nil {
		return nil, err
	}

	overview := &domain.StocktakeOverview{TotalProducts: len(items)}
	for _, item := range items {
		if item.Counted > 0 {
			overview.TotalCounted += item.Counted
			overview.UniqueCounted++
		}
	}
	return overview, nil
}

func (uc *stocktakeUseCase) Items(search string) ([]domain.InventoryItem, error) {
	uc.log.Info("Use Case: listing inventory items")
	items, err := uc.inventoryRepo.LoadItems()
	if err != nil {
		return nil, err
	}

	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return items, nil
	}
	filtered := make([]domain.InventoryItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), search) ||
			strings.Contains(strings.ToLower(item.Barcode), search) {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

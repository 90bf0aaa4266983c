package usecase

import (
	"github.com/sirupsen/logrus"

	"github.com/AmrElsaadany/Jojo-Stock/internal/domain"
)

// SampleDataUseCase seeds demo data so the service can be exercised without
// an existing database or inventory export.
type SampleDataUseCase interface {
	CreateSampleDatabase() error
	CreateSampleInventory() error
}

type sampleDataUseCase struct {
	sampleRepo    domain.SampleDataRepository
	inventoryRepo domain.InventoryRepository
	log           *logrus.Logger
}

func NewSampleDataUseCase(sampleRepo domain.SampleDataRepository, inventoryRepo domain.InventoryRepository, logger *logrus.Logger) SampleDataUseCase {
	return &sampleDataUseCase{
		sampleRepo:    sampleRepo,
		inventoryRepo: inventoryRepo,
		log:           logger,
	}
}

func (uc *sampleDataUseCase) CreateSampleDatabase() error {
	uc.log.Info("Use Case: creating sample database")
	return uc.sampleRepo.CreateSampleData()
}

func (uc *sampleDataUseCase) CreateSampleInventory() error {
	uc.log.Info("Use Case: creating sample inventory file")
	return uc.inventoryRepo.CreateSampleInventory()
}

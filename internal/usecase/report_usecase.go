package usecase

import (
	"github.com/sirupsen/logrus"

	"github.com/AmrElsaadany/Jojo-Stock/internal/domain"
)

// ReportUseCase exposes the canned read-only reports over the sales database.
type ReportUseCase interface {
	SalesSummary() ([]domain.SalesSummaryRow, error)
	HighValueProducts() ([]domain.HighValueProduct, error)
	ProductListing() ([]domain.Product, error)
}

type reportUseCase struct {
	reportRepo domain.ReportRepository
	log        *logrus.Logger
}

func NewReportUseCase(reportRepo domain.ReportRepository, logger *logrus.Logger) ReportUseCase {
	return &reportUseCase{
		reportRepo: reportRepo,
		log:        logger,
	}
}

func (uc *reportUseCase) SalesSummary() ([]domain.SalesSummaryRow, error) {
	uc.log.Info("Use Case: generating sales summary report")
	return uc.reportRepo.SalesSummary()
}

func (uc *reportUseCase) HighValueProducts() ([]domain.HighValueProduct, error) {
	uc.log.Info("Use Case: generating high-value products report")
	return uc.reportRepo.HighValueProducts()
}

func (uc *reportUseCase) ProductListing() ([]domain.Product, error) {
	uc.log.Info("Use Case: generating product listing report")
	return uc.reportRepo.ListProducts()
}

package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/AmrElsaadany/Jojo-Stock/internal/usecase"
)

type ReportHandler struct {
	useCase usecase.ReportUseCase
	log     *logrus.Logger
}

func NewReportHandler(uc usecase.ReportUseCase, logger *logrus.Logger) *ReportHandler {
	return &ReportHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *ReportHandler) RegisterRoutes(router gin.IRouter) {
	reports := router.Group("/reports")
	{
		reports.GET("/sales-summary", h.SalesSummary)
		reports.GET("/high-value-products", h.HighValueProducts)
		reports.GET("/products", h.ProductListing)
	}
}

func (h *ReportHandler) SalesSummary(c *gin.Context) {
	rows, err := h.useCase.SalesSummary()
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to generate sales summary: %v", err)
		ErrorResponse(c, statusCode, "Failed to generate sales summary: "+err.Error())
		return
	}

	RecordReport("sales_summary")
	if c.Query("format") == "csv" {
		header, records := salesSummaryCSV(rows)
		writeCSVAttachment(c, "sales_summary", header, records)
		return
	}

	h.log.Infof("Sales summary generated with %d rows", len(rows))
	SuccessResponse(c, http.StatusOK, "Sales summary generated successfully", rows)
}

func (h *ReportHandler) HighValueProducts(c *gin.Context) {
	products, err := h.useCase.HighValueProducts()
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to generate high-value products report: %v", err)
		ErrorResponse(c, statusCode, "Failed to generate high-value products report: "+err.Error())
		return
	}

	RecordReport("high_value_products")
	if c.Query("format") == "csv" {
		header, records := highValueProductsCSV(products)
		writeCSVAttachment(c, "high_value_products", header, records)
		return
	}

	h.log.Infof("High-value products report generated with %d rows", len(products))
	SuccessResponse(c, http.StatusOK, "High-value products report generated successfully", products)
}

func (h *ReportHandler) ProductListing(c *gin.Context) {
	products, err := h.useCase.ProductListing()
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to generate product listing: %v", err)
		ErrorResponse(c, statusCode, "Failed to generate product listing: "+err.Error())
		return
	}

	RecordReport("product_listing")
	if c.Query("format") == "csv" {
		header, records := productListingCSV(products)
		writeCSVAttachment(c, "product_listing", header, records)
		return
	}

	h.log.Infof("Product listing generated with %d rows", len(products))
	SuccessResponse(c, http.StatusOK, "Product listing generated successfully", products)
}

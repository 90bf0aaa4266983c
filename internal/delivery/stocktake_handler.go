package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/AmrElsaadany/Jojo-Stock/internal/domain"
	"github.com/AmrElsaadany/Jojo-Stock/internal/usecase"
)

type StocktakeHandler struct {
	useCase usecase.StocktakeUseCase
	log     *logrus.Logger
}

func NewStocktakeHandler(uc usecase.StocktakeUseCase, logger *logrus.Logger) *StocktakeHandler {
	return &StocktakeHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *StocktakeHandler) RegisterRoutes(router gin.IRouter) {
	stocktake := router.Group("/stocktake")
	{
		stocktake.POST("/scan", h.Scan)
		stocktake.PUT("/items/:barcode", h.UpdateCounted)
		stocktake.GET("/session", h.Session)
		stocktake.POST("/session/reset", h.ResetSession)
		stocktake.GET("/session/export", h.ExportSession)
		stocktake.GET("/overview", h.Overview)
	}
}

type scanRequest struct {
	Barcode string `json:"barcode"`
}

func (h *StocktakeHandler) Scan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for scan: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	record, err := h.useCase.Scan(req.Barcode)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to scan barcode '%s': %v", req.Barcode, err)
		RecordScan(domain.ActionScan, "error")
		ErrorResponse(c, statusCode, "Failed to scan barcode: "+err.Error())
		return
	}

	RecordScan(domain.ActionScan, "success")
	h.log.Infof("Barcode %s scanned: counted %d", record.Barcode, record.NewQty)
	SuccessResponse(c, http.StatusOK, "Item scanned successfully", record)
}

// Counted is a pointer so an explicit 0 passes required validation.
type updateCountedRequest struct {
	Counted *int `json:"counted" binding:"required"`
}

func (h *StocktakeHandler) UpdateCounted(c *gin.Context) {
	barcode := c.Param("barcode")

	var req updateCountedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for counted update: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	record, err := h.useCase.UpdateCounted(barcode, *req.Counted)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to update counted quantity for '%s': %v", barcode, err)
		RecordScan(domain.ActionManualUpdate, "error")
		ErrorResponse(c, statusCode, "Failed to update counted quantity: "+err.Error())
		return
	}

	RecordScan(domain.ActionManualUpdate, "success")
	h.log.Infof("Counted quantity for %s set to %d", record.Barcode, record.NewQty)
	SuccessResponse(c, http.StatusOK, "Counted quantity updated successfully", record)
}

func (h *StocktakeHandler) Session(c *gin.Context) {
	session := h.useCase.Session()
	SuccessResponse(c, http.StatusOK, "Session retrieved successfully", session)
}

func (h *StocktakeHandler) ResetSession(c *gin.Context) {
	session := h.useCase.ResetSession()
	h.log.Infof("Stocktake session reset, new session %s", session.ID)
	SuccessResponse(c, http.StatusOK, "Session reset successfully", session)
}

func (h *StocktakeHandler) ExportSession(c *gin.Context) {
	session := h.useCase.Session()
	header, records := scanSessionCSV(session)
	writeCSVAttachment(c, "scan_session", header, records)
}

func (h *StocktakeHandler) Overview(c *gin.Context) {
	overview, err := h.useCase.Overview()
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to build stocktake overview: %v", err)
		ErrorResponse(c, statusCode, "Failed to build stocktake overview: "+err.Error())
		return
	}

	items, err := h.useCase.Items(c.Query("search"))
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to list inventory items: %v", err)
		ErrorResponse(c, statusCode, "Failed to list inventory items: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Stocktake overview retrieved successfully", gin.H{
		"overview": overview,
		"items":    items,
	})
}

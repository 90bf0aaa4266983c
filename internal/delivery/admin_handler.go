package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/AmrElsaadany/Jojo-Stock/internal/usecase"
)

type AdminHandler struct {
	useCase usecase.SampleDataUseCase
	log     *logrus.Logger
}

func NewAdminHandler(uc usecase.SampleDataUseCase, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *AdminHandler) RegisterRoutes(router gin.IRouter) {
	admin := router.Group("/admin")
	{
		admin.POST("/sample-data", h.CreateSampleDatabase)
		admin.POST("/sample-inventory", h.CreateSampleInventory)
	}
}

func (h *AdminHandler) CreateSampleDatabase(c *gin.Context) {
	if err := h.useCase.CreateSampleDatabase(); err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to create sample database: %v", err)
		ErrorResponse(c, statusCode, "Failed to create sample database: "+err.Error())
		return
	}

	h.log.Info("Sample database created successfully")
	SuccessResponse(c, http.StatusCreated, "Sample database created successfully", nil)
}

func (h *AdminHandler) CreateSampleInventory(c *gin.Context) {
	if err := h.useCase.CreateSampleInventory(); err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to create sample inventory: %v", err)
		ErrorResponse(c, statusCode, "Failed to create sample inventory: "+err.Error())
		return
	}

	h.log.Info("Sample inventory created successfully")
	SuccessResponse(c, http.StatusCreated, "Sample inventory file created successfully", nil)
}

package delivery

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	DB            *sql.DB
	ScriptsDir    string
	InventoryFile string
	StartTime     time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(db *sql.DB, scriptsDir, inventoryFile string) *HealthHandler {
	return &HealthHandler{
		DB:            db,
		ScriptsDir:    scriptsDir,
		InventoryFile: inventoryFile,
		StartTime:     time.Now(),
	}
}

func (h *HealthHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/health", h.Handle)
}

func (h *HealthHandler) Handle(c *gin.Context) {
	deps := make(map[string]string)

	// Check Database
	if h.DB != nil {
		if err := h.DB.Ping(); err != nil {
			deps["database"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["database"] = "healthy"
		}
	} else {
		deps["database"] = "not configured"
	}

	// Check scripts directory
	if info, err := os.Stat(h.ScriptsDir); err != nil {
		deps["scripts_dir"] = fmt.Sprintf("unhealthy: %v", err)
	} else if !info.IsDir() {
		deps["scripts_dir"] = "unhealthy: not a directory"
	} else {
		deps["scripts_dir"] = "healthy"
	}

	// Check inventory file; a missing file only means no stocktake yet
	if _, err := os.Stat(h.InventoryFile); err != nil {
		if os.IsNotExist(err) {
			deps["inventory_file"] = "not configured"
		} else {
			deps["inventory_file"] = fmt.Sprintf("unhealthy: %v", err)
		}
	} else {
		deps["inventory_file"] = "healthy"
	}

	// Determine overall status
	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "configured" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	uptime := time.Since(h.StartTime).Round(time.Second).String()

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       uptime,
		Dependencies: deps,
	}

	if status == "degraded" {
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}
	c.JSON(http.StatusOK, response)
}

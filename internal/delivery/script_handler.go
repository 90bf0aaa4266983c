package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/AmrElsaadany/Jojo-Stock/internal/usecase"
)

type ScriptHandler struct {
	useCase usecase.ScriptUseCase
	log     *logrus.Logger
}

func NewScriptHandler(uc usecase.ScriptUseCase, logger *logrus.Logger) *ScriptHandler {
	return &ScriptHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *ScriptHandler) RegisterRoutes(router gin.IRouter) {
	scripts := router.Group("/scripts")
	{
		scripts.GET("", h.ListScripts)
		scripts.GET("/stats", h.RunStats)
		scripts.GET("/:name", h.GetScript)
		scripts.POST("/:name/run", h.RunScript)
	}
	router.POST("/query", h.RunQuery)
}

func (h *ScriptHandler) ListScripts(c *gin.Context) {
	scripts, err := h.useCase.ListScripts()
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to list scripts: %v", err)
		ErrorResponse(c, statusCode, "Failed to list scripts: "+err.Error())
		return
	}

	h.log.Infof("Listed %d scripts", len(scripts))
	SuccessResponse(c, http.StatusOK, "Scripts retrieved successfully", scripts)
}

func (h *ScriptHandler) GetScript(c *gin.Context) {
	name := c.Param("name")
	content, err := h.useCase.GetScript(name)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to read script '%s': %v", name, err)
		ErrorResponse(c, statusCode, "Failed to read script: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Script retrieved successfully", gin.H{
		"name":    name,
		"content": content,
	})
}

func (h *ScriptHandler) RunScript(c *gin.Context) {
	name := c.Param("name")
	result, err := h.useCase.RunScript(c.Request.Context(), name)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to run script '%s': %v", name, err)
		RecordQuery("script", "error")
		ErrorResponse(c, statusCode, "Failed to run script: "+err.Error())
		return
	}

	RecordQuery("script", "success")
	if c.Query("format") == "csv" {
		writeCSVAttachment(c, "query_results", result.Columns, result.Rows)
		return
	}

	h.log.Infof("Script '%s' returned %d rows in %dms", name, result.RowCount, result.ElapsedMS)
	SuccessResponse(c, http.StatusOK, "Script executed successfully", result)
}

type runQueryRequest struct {
	SQL string `json:"sql" binding:"required"`
}

func (h *ScriptHandler) RunQuery(c *gin.Context) {
	var req runQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for ad-hoc query: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.useCase.RunQuery(c.Request.Context(), req.SQL)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to run ad-hoc query: %v", err)
		RecordQuery("ad-hoc", "error")
		ErrorResponse(c, statusCode, "Failed to run query: "+err.Error())
		return
	}

	RecordQuery("ad-hoc", "success")
	if c.Query("format") == "csv" {
		writeCSVAttachment(c, "query_results", result.Columns, result.Rows)
		return
	}

	h.log.Infof("Ad-hoc query returned %d rows in %dms", result.RowCount, result.ElapsedMS)
	SuccessResponse(c, http.StatusOK, "Query executed successfully", result)
}

func (h *ScriptHandler) RunStats(c *gin.Context) {
	stats := h.useCase.RunStats()
	SuccessResponse(c, http.StatusOK, "Run statistics retrieved successfully", stats)
}

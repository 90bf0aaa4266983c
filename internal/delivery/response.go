package delivery

import (
	"net/http"

	"strings"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status  string      `json:"Status"`
	Message string      `json:"Message"`
	Data    interface{} `json:"Data,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Status:  "Success",
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {

	c.JSON(statusCode, Response{
		Status:  "Fail",
		Message: message,
	})
}

func mapErrorToStatus(err error) int {
	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "not found") {
		return http.StatusNotFound
	}
	if strings.Contains(errMsg, "invalid") || strings.Contains(errMsg, "cannot be empty") || strings.Contains(errMsg, "cannot be negative") || strings.Contains(errMsg, "syntax error") {
		return http.StatusBadRequest // 400 Bad Request for validation errors
	}
	if strings.Contains(errMsg, "context deadline exceeded") || strings.Contains(errMsg, "canceling statement due to statement timeout") {
		return http.StatusGatewayTimeout // 504 for queries killed by the per-query timeout
	}

	return http.StatusInternalServerError
}

package response

import (
	"net/http"

	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// ItemResponse wraps a single entity (or a deletion receipt).
type ItemResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// ListResponse wraps one page of entities with the total match count.
type ListResponse struct {
	Count int64       `json:"count"`
	Data  interface{} `json:"data"`
}

type ErrorResponse struct {
	Error *apperror.AppError `json:"error"`
}

// Success sends a single entity under "data"
func Success(c *gin.Context, code int, data interface{}) {
	c.JSON(code, ItemResponse{Data: data})
}

// Receipt sends a confirmation message together with the affected entity
func Receipt(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, ItemResponse{Message: message, Data: data})
}

// List sends a page of entities. data must be a non-nil slice.
func List(c *gin.Context, count int64, data interface{}) {
	c.JSON(http.StatusOK, ListResponse{Count: count, Data: data})
}

// Error sends an error response
func Error(c *gin.Context, err *apperror.AppError) {
	c.AbortWithStatusJSON(err.Code, ErrorResponse{Error: err})
}

package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pagination is the metadata block returned by list-style endpoints.
type Pagination struct {
	Current      int   `json:"current"`
	Total        int   `json:"total"`
	Count        int   `json:"count"`
	TotalRecords int64 `json:"totalRecords"`
}

// NewPagination derives page metadata from the request page/limit and the
// matching record count. totalPages is at least 1 even for empty sets so
// clients never divide by zero.
func NewPagination(page, limit, returned int, totalRecords int64) Pagination {
	totalPages := int((totalRecords + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}
	return Pagination{
		Current:      page,
		Total:        totalPages,
		Count:        returned,
		TotalRecords: totalRecords,
	}
}

// SuccessResponse sends a standard success JSON response.
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// CreatedResponse sends a success response with 201 status.
func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    data,
	})
}

// PaginatedResponse sends a success response carrying page metadata.
func PaginatedResponse(c *gin.Context, data interface{}, p Pagination) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       data,
		"pagination": p,
	})
}

// ErrorResponse sends a standard error JSON response.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}

// MessageResponse sends a simple message response.
func MessageResponse(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}

package api

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform success wrapper returned by every handler.
type Envelope struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// ErrorEnvelope is the uniform error wrapper. Errors carries the full
// ordered violation list for validation failures.
type ErrorEnvelope struct {
	Success    bool     `json:"success"`
	Error      string   `json:"error"`
	StatusCode int      `json:"statusCode"`
	Timestamp  string   `json:"timestamp"`
	Errors     []string `json:"errors,omitempty"`
}

// Pagination mirrors the contract consumed by the dashboard script.
type Pagination struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalItems   int64 `json:"total_items"`
	ItemsPerPage int   `json:"items_per_page"`
	HasPrevious  bool  `json:"has_previous"`
	HasNext      bool  `json:"has_next"`
}

// ListPayload is the data block of a paginated list response.
type ListPayload struct {
	Items      interface{} `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

// Success writes a success envelope with the given HTTP status.
func Success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Fail writes an error envelope with the given HTTP status.
func Fail(c *gin.Context, status int, message string, details []string) {
	c.JSON(status, ErrorEnvelope{
		Success:    false,
		Error:      message,
		StatusCode: status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Errors:     details,
	})
}

// NewPagination computes the pagination block. total_pages is
// ceil(total/limit), rendered as 0 when nothing matches while
// current_page still reports the requested page.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: limit,
		HasPrevious:  page > 1,
		HasNext:      page < totalPages,
	}
}

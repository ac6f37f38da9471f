package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mitropoulosg/money-transfer-api/internal/apperrors"
)

// ErrorResponse is the body returned for every classified failure.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// MessageResponse wraps plain confirmation messages.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondWithError maps an error kind onto its HTTP status. The mapping is
// 1:1 with the taxonomy; everything unclassified is a 500.
func respondWithError(c *gin.Context, err error) {
	var status int
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindBadRequest:
		status = http.StatusBadRequest
	case apperrors.KindConflict:
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "An unexpected error occurred"
	}

	c.JSON(status, ErrorResponse{
		Timestamp: time.Now().UTC(),
		Message:   message,
		Path:      c.Request.URL.Path,
	})
}

func respondWithBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Timestamp: time.Now().UTC(),
		Message:   message,
		Path:      c.Request.URL.Path,
	})
}

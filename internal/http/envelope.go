package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/thoughts-service/internal/repo"
	"go.uber.org/zap"
)

// Envelope is the single response shape of every /thoughts route.
type Envelope struct {
	Success  bool   `json:"success"`
	Response any    `json:"response"`
	Message  string `json:"message"`
	Error    any    `json:"error,omitempty"`
}

var errBadBody = errors.New("request body must be a JSON object like {\"message\": \"...\"}")

func ok(c *gin.Context, status int, response any, message string) {
	c.JSON(status, Envelope{Success: true, Response: response, Message: message})
}

// fail renders err as a failure envelope. response is the human-facing apology.
func (h *Handler) fail(c *gin.Context, err error, response string) {
	status, message, detail := describeErr(err)
	if h.LegacyStatus {
		status = http.StatusBadRequest
	}
	if status >= http.StatusInternalServerError {
		h.logger(c).Error("storage failure", zap.Error(err))
	}
	c.JSON(status, Envelope{Success: false, Response: response, Message: message, Error: detail})
}

// describeErr maps the storage error taxonomy onto status, short message and detail.
func describeErr(err error) (int, string, any) {
	var ve *repo.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, "Validation failed", ve.Fields
	case errors.Is(err, errBadBody):
		return http.StatusBadRequest, "Invalid request body", err.Error()
	case errors.Is(err, repo.ErrNotFound):
		return http.StatusNotFound, "Thought not found", err.Error()
	case errors.Is(err, repo.ErrUnavailable):
		return http.StatusServiceUnavailable, "Storage unavailable", repo.ErrUnavailable.Error()
	}
	return http.StatusInternalServerError, "Unexpected error", "internal error"
}

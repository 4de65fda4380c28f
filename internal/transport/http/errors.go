package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/order_queue/pkg/ctxmeta"
)

// errorResponse - единое тело ошибки API.
type errorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
	Details   []string  `json:"details"`
	RequestID string    `json:"request_id,omitempty"`
}

func writeError(c *gin.Context, status int, message string, details ...string) {
	if details == nil {
		details = []string{}
	}
	rid, _ := ctxmeta.RequestIDFromContext(c.Request.Context())
	c.AbortWithStatusJSON(status, errorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      c.Request.URL.Path,
		Details:   details,
		RequestID: rid,
	})
}

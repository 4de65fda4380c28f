package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/order_queue/internal/ports"
)

// служебные маршруты в лог доступа не попадают
var quietRoutes = map[string]struct{}{
	"/metrics": {},
	"/ping":    {},
	"/health":  {},
}

// RequestLogger - лог доступа. 5xx пишутся как error, 4xx как warn, остальное как info.
// request_id и trace_id логгер берёт из контекста запроса.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if _, quiet := quietRoutes[route]; quiet {
			return
		}
		if route == "" {
			route = c.Request.URL.Path
		}

		status := c.Writer.Status()
		logAt(log, status)(c.Request.Context(),
			"http %s %s status=%d ip=%s took=%s bytes=%d",
			c.Request.Method, route, status, c.ClientIP(), time.Since(start), c.Writer.Size())
	}
}

func logAt(log ports.Logger, status int) func(context.Context, string, ...any) {
	switch {
	case status >= http.StatusInternalServerError:
		return log.Errorf
	case status >= http.StatusBadRequest:
		return log.Warnf
	default:
		return log.Infof
	}
}

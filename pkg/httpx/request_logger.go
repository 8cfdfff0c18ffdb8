package httpx

import (
	"time"

	"github.com/Gunvolt24/parcel_product/internal/ports"
	"github.com/gin-gonic/gin"
)

// ContextKeyOutcome — ключ gin.Context, под которым обработчик оставляет итог проверки.
const ContextKeyOutcome = "parcel.outcome"

// RequestLogger — middleware для логирования HTTP-запросов.
// request_id/trace_id добавляет сам логгер из контекста запроса.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// не логируем /metrics, /ping
		switch c.FullPath() {
		case "/metrics", "/ping":
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		outcome := c.GetString(ContextKeyOutcome)
		if outcome == "" {
			outcome = "-"
		}

		log.Infof(
			c.Request.Context(),
			"request method=%s path=%s status=%d outcome=%s ip=%s duration=%s size=%d",
			c.Request.Method,
			path,
			c.Writer.Status(),
			outcome,
			c.ClientIP(),
			time.Since(start),
			c.Writer.Size(),
		)
	}
}

package httpx

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GinRequestID echoes the caller's X-Request-ID (the facade always sends
// one) or assigns a new one.
func GinRequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("rid", rid)
		c.Writer.Header().Set(HeaderRequestID, rid)
		c.Next()
	}
}

func GinLogger(l *log.Logger) gin.HandlerFunc {
	if l == nil {
		l = log.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		rid, _ := c.Get("rid")
		l.Printf("[mock] rid=%v %s %s status=%d dur=%s",
			rid, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
		for _, e := range c.Errors {
			l.Printf("[mock] rid=%v error: %v", rid, e.Err)
		}
	}
}

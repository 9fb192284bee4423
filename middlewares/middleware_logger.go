package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		if status >= 500 {
			utils.ErrorLogger.Errorf("%s | %3d | %13v | %15s | %s", c.Request.Method, status, latency, c.ClientIP(), path)
			return
		}
		utils.InfoLogger.Printf("%s | %3d | %13v | %15s | %s", c.Request.Method, status, latency, c.ClientIP(), path)
	}
}

// DocumentLogger logs generation of a rendered document such as a receipt
// or QR code. param names the route parameter identifying it.
func DocumentLogger(kind, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.InfoLogger.Printf("Generating %s for %s", kind, c.Param(param))

		c.Next()

		if c.Writer.Status() == 200 {
			utils.InfoLogger.Printf("%s generated for %s", kind, c.Param(param))
		} else {
			utils.ErrorLogger.Warnf("Failed to generate %s for %s: status %d", kind, c.Param(param), c.Writer.Status())
		}
	}
}

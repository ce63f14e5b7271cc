package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// allowedHeaders is listed explicitly: a literal "*" does not cover
// Authorization in browsers.
var allowedHeaders = []string{
	"Origin",
	"Accept",
	"Accept-Language",
	"Content-Type",
	"Content-Length",
	"Cache-Control",
	"Authorization",
	"X-Requested-With",
	requestIDHeader,
}

// corsMiddleware applies an open policy: any origin and method, and the
// headers browser clients send. The chat endpoint is public, so CORS is not
// used as a security boundary.
func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:    allowedHeaders,
		ExposeHeaders:   []string{requestIDHeader},
		MaxAge:          12 * time.Hour,
	})
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinRouteGate adapts the net/http RouteGate to Gin. The gate stays
// framework-agnostic; only this bridge knows about Gin.
func GinRouteGate(gate *RouteGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Bridge handler to allow net/http middleware execution
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})

		handler := gate.Intercept(next)
		handler.ServeHTTP(c.Writer, c.Request)

		// If the gate already redirected, stop the Gin chain.
		if c.Writer.Written() {
			c.Abort()
			return
		}
	}
}

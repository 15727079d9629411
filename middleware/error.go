package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorHandler middleware recovers from any panics and handles errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				// Log the error and stack trace
				logrus.WithFields(logrus.Fields{
					"panic": err,
					"path":  c.Request.URL.Path,
				}).Errorf("panic recovered\n%s", debug.Stack())

				// Return a 500 error to the client
				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error":   "An unexpected error occurred",
				})
				c.Abort()
			}
		}()

		c.Next()
	}
}

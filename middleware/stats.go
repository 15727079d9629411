package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Dineshwev/final-project-sub007/logging"
)

// CitationURLKey is the gin context key under which the extract handler
// stores the citation URL it was asked to fetch.
const CitationURLKey = "citationURL"

// Stats tracks visitors and per-endpoint request timings. Statistics are
// flushed to disk every 100 requests so a crash loses little data.
func Stats(stats *logging.Statistics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// Track unique visitor by real IP
		stats.TrackVisitor(c.ClientIP())

		c.Next()

		loadTime := float64(time.Since(start).Milliseconds())
		hasError := c.Writer.Status() >= 400

		switch {
		case c.Request.URL.Path == "/api/nap/check" && c.Request.Method == "POST":
			stats.TrackCheck(loadTime, hasError)
		case c.Request.URL.Path == "/api/nap/extract" && c.Request.Method == "POST":
			stats.TrackExtract(c.GetString(CitationURLKey), loadTime, hasError)
		}

		// Periodically save statistics asynchronously to not block the request
		if total := stats.TotalRequests(); total > 0 && total%100 == 0 {
			go stats.Save()
		}
	}
}

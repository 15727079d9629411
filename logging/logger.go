package logging

import (
	"encoding/json"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Environment variable name for controlling statistics visibility
const ENV_DEV_MODE = "DEV_MODE"

// Statistics represents the collected usage statistics.
type Statistics struct {
	UniqueVisitors  map[string]time.Time `json:"uniqueVisitors"`  // IP -> Last Visit Time
	CheckRequests   int                  `json:"checkRequests"`   // Total number of consistency check requests
	ExtractRequests int                  `json:"extractRequests"` // Total number of citation extraction requests
	ErrorCount      int                  `json:"errorCount"`      // Number of errors
	PopularSources  map[string]int       `json:"popularSources"`  // Citation source domain -> Count
	AverageLoadTime float64              `json:"averageLoadTime"` // Average handling time in milliseconds
	TotalLoadTime   float64              `json:"-"`               // Used to calculate average
	RequestCount    int                  `json:"-"`               // Used to calculate average
	LastPersisted   time.Time            `json:"lastPersisted"`   // Last time stats were saved
	mutex           sync.RWMutex         `json:"-"`
}

var (
	stats *Statistics
	once  sync.Once
)

// Initialize creates or loads the statistics
func Initialize() *Statistics {
	once.Do(func() {
		stats = &Statistics{
			UniqueVisitors: make(map[string]time.Time),
			PopularSources: make(map[string]int),
			LastPersisted:  time.Now(),
		}

		// Try to load existing statistics
		if err := stats.Load(); err != nil {
			logrus.WithError(err).Warn("could not load existing statistics")
		}
	})
	return stats
}

// TrackVisitor records a unique visitor
func (s *Statistics) TrackVisitor(ip string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.UniqueVisitors[ip] = time.Now()
}

// sourceDomain reduces a citation URL to its host for aggregation. Local and
// API-internal URLs are dropped.
func sourceDomain(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return ""
	}

	if strings.Contains(u.Host, "localhost") ||
		strings.Contains(u.Host, "127.0.0.1") ||
		strings.Contains(strings.ToLower(u.Path), "/api/") {
		return ""
	}

	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}

// TrackCheck records one consistency check request.
func (s *Statistics) TrackCheck(loadTime float64, hasError bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.CheckRequests++

	if hasError {
		s.ErrorCount++
	}

	s.addLoadTime(loadTime)
}

// TrackExtract records one citation extraction request against the domain it
// targeted.
func (s *Statistics) TrackExtract(citationURL string, loadTime float64, hasError bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.ExtractRequests++

	// Only track non-empty domains (those that passed our filtering)
	if domain := sourceDomain(citationURL); domain != "" {
		s.PopularSources[domain]++
	}

	if hasError {
		s.ErrorCount++
	}

	s.addLoadTime(loadTime)
}

// addLoadTime updates the running average. Callers must hold the mutex.
func (s *Statistics) addLoadTime(loadTime float64) {
	s.TotalLoadTime += loadTime
	s.RequestCount++
	s.AverageLoadTime = s.TotalLoadTime / float64(s.RequestCount)
}

// GetUniqueVisitorsCount returns the number of unique visitors in the last 24 hours
func (s *Statistics) GetUniqueVisitorsCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	count := 0
	cutoff := time.Now().Add(-24 * time.Hour)

	for _, lastVisit := range s.UniqueVisitors {
		if lastVisit.After(cutoff) {
			count++
		}
	}

	return count
}

// GetPopularSources returns up to N of the most extracted citation domains
func (s *Statistics) GetPopularSources(n int) map[string]int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result := make(map[string]int)
	count := 0

	// Simple implementation - for production, use a heap or sorted data structure
	for domain, freq := range s.PopularSources {
		if count < n {
			result[domain] = freq
			count++
		}
	}

	return result
}

// GetErrorRate returns the error rate as a percentage
func (s *Statistics) GetErrorRate() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	total := s.CheckRequests + s.ExtractRequests
	if total == 0 {
		return 0
	}

	return (float64(s.ErrorCount) / float64(total)) * 100
}

// TotalRequests returns the combined number of tracked requests.
func (s *Statistics) TotalRequests() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.CheckRequests + s.ExtractRequests
}

// Save persists the statistics to a file
func (s *Statistics) Save() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.LastPersisted = time.Now()

	file, err := os.Create("statistics.json")
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	return encoder.Encode(s)
}

// Load reads the statistics from a file
func (s *Statistics) Load() error {
	file, err := os.Open("statistics.json")
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Not an error if file doesn't exist yet
		}
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	return decoder.Decode(s)
}

// GetStatistics returns a copy of the current statistics. The full breakdown
// is only exposed in development mode.
func (s *Statistics) GetStatistics() map[string]interface{} {
	visitors := s.GetUniqueVisitorsCount()
	errorRate := s.GetErrorRate()

	s.mutex.RLock()
	total := s.CheckRequests + s.ExtractRequests
	checks := s.CheckRequests
	extracts := s.ExtractRequests
	avgLoadTime := s.AverageLoadTime
	s.mutex.RUnlock()

	// In production, return limited statistics without sensitive data
	if os.Getenv(ENV_DEV_MODE) != "true" {
		return map[string]interface{}{
			"uniqueVisitors24h": visitors,
			"totalRequests":     total,
			"errorRate":         errorRate,
			"averageLoadTime":   avgLoadTime,
		}
	}

	// In development mode, return full statistics
	return map[string]interface{}{
		"uniqueVisitors24h": visitors,
		"totalRequests":     total,
		"checkRequests":     checks,
		"extractRequests":   extracts,
		"errorRate":         errorRate,
		"averageLoadTime":   avgLoadTime,
		"popularSources":    s.GetPopularSources(5), // Top 5 sources only shown in dev mode
	}
}

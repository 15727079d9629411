package citation

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Dineshwev/final-project-sub007/nap"
	"github.com/Dineshwev/final-project-sub007/stats"
)

// Buffer pool for response bodies
var bufferPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

// Cache entry with expiration
type cacheEntry struct {
	citation  *nap.Citation
	timestamp time.Time
}

// Extractor fetches a citation page and pulls the business NAP data out of
// its HTML. Results are cached with a TTL so repeated checks against the same
// directory page do not re-fetch it.
type Extractor struct {
	client          *http.Client
	cache           map[string]cacheEntry
	cacheMutex      sync.RWMutex
	cacheTTL        time.Duration
	maxCacheSize    int
	lastCleanup     time.Time
	cleanupInterval time.Duration
	stats           *stats.Storage
}

// New creates an Extractor. The stats storage may be shared with other
// components; it records extraction counts and cache hit rates.
func New(statsStorage *stats.Storage) *Extractor {
	// HTTP client with connection pooling and keep-alive, tuned the same way
	// for every directory we fetch from.
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DisableCompression:  false,
	}

	e := &Extractor{
		client: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
		cache:           make(map[string]cacheEntry),
		cacheTTL:        30 * time.Minute,
		maxCacheSize:    1000,
		cleanupInterval: 5 * time.Minute,
		lastCleanup:     time.Now(),
		stats:           statsStorage,
	}

	go e.periodicCleanup()

	return e
}

// periodicCleanup removes expired cache entries periodically
func (e *Extractor) periodicCleanup() {
	ticker := time.NewTicker(e.cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		e.cleanup()
	}
}

// cleanup removes expired entries and enforces the cache size limit
func (e *Extractor) cleanup() {
	now := time.Now()

	e.cacheMutex.Lock()
	defer e.cacheMutex.Unlock()

	for key, entry := range e.cache {
		if now.Sub(entry.timestamp) > e.cacheTTL {
			delete(e.cache, key)
		}
	}

	// If still over size limit, remove oldest entries
	if len(e.cache) > e.maxCacheSize {
		entries := make([]struct {
			key       string
			timestamp time.Time
		}, 0, len(e.cache))

		for key, entry := range e.cache {
			entries = append(entries, struct {
				key       string
				timestamp time.Time
			}{key, entry.timestamp})
		}

		sort.Slice(entries, func(i, j int) bool {
			return entries[i].timestamp.Before(entries[j].timestamp)
		})

		for i := 0; i < len(entries)-e.maxCacheSize; i++ {
			delete(e.cache, entries[i].key)
		}
	}

	e.lastCleanup = now
}

// SetCacheTTL sets the cache TTL
func (e *Extractor) SetCacheTTL(ttl time.Duration) {
	e.cacheMutex.Lock()
	defer e.cacheMutex.Unlock()
	e.cacheTTL = ttl
}

// ClearCache clears the extraction cache
func (e *Extractor) ClearCache() {
	e.cacheMutex.Lock()
	defer e.cacheMutex.Unlock()
	e.cache = make(map[string]cacheEntry)
}

// IsCached checks if a URL is in the cache and not expired
func (e *Extractor) IsCached(pageURL string) bool {
	cacheKey := generateCacheKey(pageURL)
	e.cacheMutex.RLock()
	defer e.cacheMutex.RUnlock()

	entry, found := e.cache[cacheKey]
	return found && time.Since(entry.timestamp) < e.cacheTTL
}

// generateCacheKey creates a unique key for the URL
func generateCacheKey(pageURL string) string {
	hash := md5.Sum([]byte(pageURL))
	return hex.EncodeToString(hash[:])
}

// Extract fetches the citation page and returns its NAP record, consulting
// the cache first.
func (e *Extractor) Extract(pageURL string) (*nap.Citation, error) {
	// Run a cleanup pass in the background if one is overdue
	if time.Since(e.lastCleanup) > e.cleanupInterval {
		go e.cleanup()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Check cache first
	cacheKey := generateCacheKey(pageURL)
	e.cacheMutex.RLock()
	if entry, found := e.cache[cacheKey]; found {
		if time.Since(entry.timestamp) < e.cacheTTL {
			e.stats.IncrementStats(0, 0, 1, 0) // Extract cache hit
			e.cacheMutex.RUnlock()
			return entry.citation, nil
		}
	}
	e.cacheMutex.RUnlock()

	// Not in cache or expired
	e.stats.IncrementStats(0, 0, 0, 1) // Extract cache miss

	citation, err := e.ExtractWithContext(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	e.cacheMutex.Lock()
	e.cache[cacheKey] = cacheEntry{
		citation:  citation,
		timestamp: time.Now(),
	}
	e.cacheMutex.Unlock()

	return citation, nil
}

// ExtractWithContext fetches and parses the citation page without touching
// the cache.
func (e *Extractor) ExtractWithContext(ctx context.Context, pageURL string) (*nap.Citation, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, err
	}

	// Set user agent to avoid being blocked by some websites
	req.Header.Set("User-Agent", "NAPChecker/1.0")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("citation page returned status %d", resp.StatusCode)
	}

	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	if _, err := io.Copy(buf, resp.Body); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, err
	}

	e.stats.IncrementStats(0, 1, 0, 0) // Extraction performed

	citation := parseCitation(doc)
	citation.Source = sourceFromURL(pageURL)
	citation.URL = pageURL

	return &citation, nil
}

// sourceFromURL derives a human-readable source name from the page host.
func sourceFromURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return pageURL
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}

// GetStats returns the statistics storage instance
func (e *Extractor) GetStats() *stats.Storage {
	return e.stats
}

// Shutdown flushes statistics and drops the cache.
func (e *Extractor) Shutdown() error {
	if e == nil {
		return nil
	}

	if e.stats != nil {
		if err := e.stats.Shutdown(); err != nil {
			return fmt.Errorf("failed to shutdown stats storage: %w", err)
		}
	}

	e.cacheMutex.Lock()
	e.cache = nil
	e.cacheMutex.Unlock()

	return nil
}

package uri

import (
	"log/slog"

	"braces.dev/errtrace"
	"github.com/projectdiscovery/gcache"

	"github.com/ghettovoice/httpuri/log"
)

// CacheOptions contains options for [NewCache].
type CacheOptions struct {
	// Size is the maximum number of parsed URIs kept in the cache.
	// If 0, 1024 is used.
	Size int
	// Logger is used to log cache events.
	// If nil, [log.Default] is used.
	Logger *slog.Logger
}

func (o *CacheOptions) size() int {
	if o == nil || o.Size <= 0 {
		return 1024
	}
	return o.Size
}

func (o *CacheOptions) log() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

// Cache is an LRU cache of parsed URIs keyed by the raw input.
// Parsed URIs are immutable, so a cached URI is shared between all callers.
// Cache is safe for concurrent use.
type Cache struct {
	uris gcache.Cache[string, *URI]
	log  *slog.Logger
}

// NewCache creates a new URI cache.
func NewCache(opts *CacheOptions) *Cache {
	return &Cache{
		uris: gcache.New[string, *URI](opts.size()).
			LRU().
			Build(),
		log: opts.log(),
	}
}

// Parse returns the cached URI parsed from s or parses and caches it.
// Parse errors are not cached.
func (c *Cache) Parse(s string) (*URI, error) {
	if u, err := c.uris.Get(s); err == nil {
		return u, nil
	}

	u, err := Parse(s)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if err := c.uris.Set(s, u); err != nil {
		c.log.Warn("failed to cache parsed URI", "uri", u, "error", err)
		return u, nil
	}
	c.log.Debug("parsed URI cached", "uri", u)
	return u, nil
}

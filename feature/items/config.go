package items

import "time"

// Config holds configuration for ingestion and the catalog read path.
type Config struct {
	// IPHashSalt salts the origin hash stored with each submission.
	IPHashSalt string `mapstructure:"ip_hash_salt" default:""`
	// CacheTTLSeconds is how long list responses are cached. Zero disables the cache.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"3600"`
	// ListLimit is the page size used when a list request does not set one.
	ListLimit int `mapstructure:"list_limit" default:"100"`
}

// CacheTTL returns the list cache TTL.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

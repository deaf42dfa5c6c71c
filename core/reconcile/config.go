package reconcile

import "time"

// Defaults applied to zero-valued settings.
const (
	DefaultMaxParameters   = 2000
	DefaultPageSize        = 500
	DefaultInsertBatchSize = 500
)

// Config holds the tuning knobs of the relation stores and the engine.
type Config struct {
	// MaxParameters caps the number of bound parameters per lookup query.
	MaxParameters int `mapstructure:"max_parameters" default:"2000"`
	// PageSize is the number of relations read per page.
	PageSize int `mapstructure:"page_size" default:"500"`
	// InsertBatchSize is the number of rows per INSERT statement in bulk inserts.
	InsertBatchSize int `mapstructure:"insert_batch_size" default:"500"`
	// TypeCacheTTLSeconds enables the relation type cache when positive.
	TypeCacheTTLSeconds int `mapstructure:"type_cache_ttl_seconds" default:"0"`
}

// TypeCacheTTL returns the relation type cache TTL.
func (c Config) TypeCacheTTL() time.Duration {
	if c.TypeCacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TypeCacheTTLSeconds) * time.Second
}

// WithDefaults fills zero values with their defaults.
func (c Config) WithDefaults() Config {
	if c.MaxParameters <= 0 {
		c.MaxParameters = DefaultMaxParameters
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.InsertBatchSize <= 0 {
		c.InsertBatchSize = DefaultInsertBatchSize
	}
	return c
}

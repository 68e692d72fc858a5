// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// CatalogCachePrefix is the prefix used for cached ISBN lookups.
const CatalogCachePrefix = "isbn:"

// CatalogCacheTTL is the time-to-live for cached ISBN lookups.
const CatalogCacheTTL = 24 * time.Hour

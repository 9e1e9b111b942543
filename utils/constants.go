// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis session cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL caps how long a verified ID token is trusted without re-verification.
const AuthCacheTTL = 10 * time.Minute

// RatingCachePrefix is the prefix of cached therapist rating summaries.
const RatingCachePrefix = "rating:"

// StreamTicketTTL is the lifetime of a websocket ticket.
const StreamTicketTTL = 60 * time.Second

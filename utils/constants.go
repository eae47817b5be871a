package utils

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Report constants
const (
	// ContactUnavailable is the sentinel contact shown when a messenger was
	// deleted after creating dispatches
	ContactUnavailable = "unavailable"

	// ReportCacheKeyPrefix namespaces cached daily report payloads in redis
	ReportCacheKeyPrefix = "reports:daily:"
)

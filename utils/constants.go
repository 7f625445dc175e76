package utils

import (
	"time"
)

// Token time constants
const (
	// AccessTokenTTL is the time-to-live for access tokens
	AccessTokenTTL = 24 * time.Hour

	// RefreshTokenTTL is the time-to-live for refresh tokens
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Pagination defaults for list endpoints
const (
	DefaultPage     = 1
	DefaultPageSize = 20
)

package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration returns fallback for an empty, malformed or non-positive
// duration string. Only malformed and non-positive values are logged.
func ParseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err == nil && d > 0 {
		return d
	}

	// Global logger: this can run before the configured logger exists.
	log.Warn().Err(err).Str("value", raw).Dur("fallback", fallback).Msg("Unusable duration, using fallback")
	return fallback
}

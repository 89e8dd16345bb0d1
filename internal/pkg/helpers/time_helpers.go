package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a Go duration string such as "30m" or "168h". A value
// that fails to parse is logged and replaced by defaultDuration, so bad
// configuration degrades to the built-in token lifetimes instead of refusing
// to boot.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

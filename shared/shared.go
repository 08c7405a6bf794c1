package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"reserva/shared/cache"
	"reserva/shared/constant"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"
)

// BuildCacheKey joins prefix and parts with ':'. Empty parts are kept so the
// position of every part stays stable.
func BuildCacheKey(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}

	return prefix + ":" + strings.Join(parts, ":")
}

// BuildCacheKeyWithQuery hashes the JSON form of every query value, so two
// equal filters always land on the same key.
func BuildCacheKeyWithQuery(prefix string, queries ...any) string {
	digest := xxhash.New()

	for _, query := range queries {
		raw, err := json.Marshal(query)
		if err != nil {
			log.Warn().Err(err).Str("prefix", prefix).Msg("failed to marshal cache query")

			raw = fmt.Appendf(nil, "%+v", query)
		}

		_, _ = digest.Write(raw)
	}

	return fmt.Sprintf("%s:%016x", prefix, digest.Sum64())
}

// InvalidateCaches drops every key under prefix. Failures are logged only, a
// stale entry expires with its TTL anyway.
func InvalidateCaches(ctx context.Context, c cache.RedisCache, prefix string) {
	if err := c.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// UserFromContext returns the caller recorded by the transport layer, or the
// guest marker when the request is anonymous.
func UserFromContext(ctx context.Context) string {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		return constant.ContextGuest
	}

	return user
}

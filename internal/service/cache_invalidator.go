package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/room-booking-admin/internal/listview"
	"github.com/iliyamo/room-booking-admin/internal/middleware"
)

// CacheInvalidator returns a store subscriber that purges the cached list
// responses of the changed entity.  Freshness comes from the revision in the
// cache key; the purge reclaims the pages of older revisions.
func CacheInvalidator(rdb *redis.Client, prefix string) listview.Subscriber {
	return func(ch listview.Change) {
		if rdb == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		n, err := middleware.PurgeCache(ctx, rdb, prefix, ch.Entity)
		if err != nil {
			log.Warn().Err(err).Str("entity", ch.Entity).Msg("cache purge failed")
			return
		}
		log.Debug().Str("entity", ch.Entity).Int("keys", n).Msg("cache purged")
	}
}

package workers

import (
	"context"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"

	"nagoyameshi/cache"
	"nagoyameshi/listing"
)

// StartHomeCacheRefresher rebuilds the cached top page every interval until
// ctx is done. It does nothing when the cache is disabled.
func StartHomeCacheRefresher(ctx context.Context, db *gorm.DB, home *cache.HomeCache, interval time.Duration, log *logrus.Logger) {
	if home == nil || home.Client == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		refreshHome(ctx, db, home, log)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				refreshHome(ctx, db, home, log)
			}
		}
	}()
}

func refreshHome(ctx context.Context, db *gorm.DB, home *cache.HomeCache, log *logrus.Logger) {
	payload, err := listing.BuildHome(db)
	if err != nil {
		log.WithError(err).Warn("home cache worker: query error")
		return
	}
	if err := home.Set(ctx, payload); err != nil {
		log.WithError(err).Warn("home cache worker: redis error")
	}
}

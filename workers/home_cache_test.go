package workers

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nagoyameshi/cache"
	"nagoyameshi/listing"
	"nagoyameshi/models"
)

func TestRefreshHome_StoresPayload(t *testing.T) {
	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.DB().SetMaxOpenConns(1)
	defer db.Close()
	require.NoError(t, db.AutoMigrate(models.All()...).Error)
	require.NoError(t, db.Create(&models.Category{Name: "和食"}).Error)

	mr := miniredis.RunT(t)
	home := cache.NewHomeCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	log, hook := test.NewNullLogger()

	refreshHome(context.Background(), db, home, log)
	assert.Empty(t, hook.Entries)

	var got listing.Home
	hit, err := home.Get(context.Background(), &got)
	require.NoError(t, err)
	require.True(t, hit)
	require.Len(t, got.Categories, 1)
	assert.Equal(t, "和食", got.Categories[0].Name)
}

func TestStartHomeCacheRefresher_DisabledCache(t *testing.T) {
	log, _ := test.NewNullLogger()
	assert.NotPanics(t, func() {
		StartHomeCacheRefresher(context.Background(), nil, cache.NewHomeCache(nil, time.Minute), time.Second, log)
	})
}

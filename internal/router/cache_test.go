package router

import (
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-booking-admin/internal/config"
	"github.com/iliyamo/room-booking-admin/internal/handler"
	"github.com/iliyamo/room-booking-admin/internal/listview"
	"github.com/iliyamo/room-booking-admin/internal/middleware"
	"github.com/iliyamo/room-booking-admin/internal/model"
	"github.com/iliyamo/room-booking-admin/internal/service"
)

// A delete that lands after the list page is computed but before the
// response is written to redis must not be hidden by that stale page.
func TestCachedList_DeleteBetweenQueryAndCacheWrite(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{http.MethodGet: true},
		TTL:          time.Minute,
		KeyStrategy:  "route_query",
		Prefix:       "listcache",
		MaxBodyBytes: 1 << 20,
	}

	engine := listview.New(model.UserSchema())
	engine.ReplaceAll([]model.User{
		{ID: 1, Name: "Andi Pratama", Email: "andi@kampus.ac.id"},
		{ID: 2, Name: "Budi Santoso", Email: "budi@kampus.ac.id"},
		{ID: 3, Name: "Citra Lestari", Email: "citra@kampus.ac.id"},
	})
	users := handler.NewEntityHandler(engine, nil, "users.json")
	users.Subscribe(service.CacheInvalidator(rdb, cfg.Prefix))

	deleteOnce := true
	cache := middleware.NewRedisCache(cfg, rdb)
	interleaved := func(next echo.HandlerFunc) echo.HandlerFunc {
		return cache(func(c echo.Context) error {
			err := next(c)
			if deleteOnce {
				deleteOnce = false
				require.NoError(t, engine.RequestDelete(1))
				ok, derr := engine.ConfirmDelete()
				require.NoError(t, derr)
				require.True(t, ok)
			}
			return err
		})
	}

	fs := fixtureSet{e: echo.New(), users: users}
	RegisterEntity(fs.e, users, interleaved)

	rec, out := fs.do(t, http.MethodGet, "/v1/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, []int{1, 2, 3}, rowIDs(t, out))
	assert.Len(t, mr.Keys(), 1, "the pre-delete page is still written")

	rec, out = fs.do(t, http.MethodGet, "/v1/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, []int{2, 3}, rowIDs(t, out))
	assert.Equal(t, 2, users.Count())

	rec, out = fs.do(t, http.MethodGet, "/v1/users", "")
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, []int{2, 3}, rowIDs(t, out))
}

func TestCachedList_PurgedOnChange(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{http.MethodGet: true},
		TTL:          time.Minute,
		Prefix:       "listcache",
		MaxBodyBytes: 1 << 20,
	}
	engine := listview.New(model.UserSchema())
	engine.ReplaceAll([]model.User{{ID: 1, Name: "Andi Pratama", Email: "andi@kampus.ac.id"}})
	users := handler.NewEntityHandler(engine, nil, "users.json")
	users.Subscribe(service.CacheInvalidator(rdb, cfg.Prefix))

	fs := fixtureSet{e: echo.New(), users: users}
	RegisterEntity(fs.e, users, middleware.NewRedisCache(cfg, rdb))

	fs.do(t, http.MethodGet, "/v1/users", "")
	require.Len(t, mr.Keys(), 1)

	rec, _ := fs.do(t, http.MethodPost, "/v1/users/1/delete", "")
	require.Equal(t, http.StatusAccepted, rec.Code)
	rec, _ = fs.do(t, http.MethodPost, "/v1/users/delete/confirm", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, mr.Keys())
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stemsi/course-marketplace/internal/config"
	"github.com/stemsi/course-marketplace/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var catalogKey = config.CacheKey.CourseCatalogKey()

func newCachedCourses(t *testing.T) (*CourseService, *fakeCourseStore, *CatalogCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := &fakeCourseStore{}
	cache := NewCatalogCache(rdb, time.Minute, testLog)
	require.True(t, cache.Enabled())
	return NewCourseService(store, cache, testLog), store, cache, mr
}

func TestCatalogCache_HitSkipsStore(t *testing.T) {
	ctx := context.Background()
	svc, store, _, mr := newCachedCourses(t)

	_, err := svc.Create(ctx, uuid.New(), model.CourseRequest{Title: "T1", Price: price(5000)})
	require.NoError(t, err)

	first, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, store.listAll)
	assert.True(t, mr.Exists(catalogKey))
	assert.Equal(t, time.Minute, mr.TTL(catalogKey))

	second, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, store.listAll, "second read must come from the cache")
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, "T1", second[0].Title)
	assert.Equal(t, int32(5000), second[0].Price)
}

func TestCatalogCache_CreateAndUpdateInvalidate(t *testing.T) {
	ctx := context.Background()
	svc, store, _, mr := newCachedCourses(t)
	owner := uuid.New()

	course, err := svc.Create(ctx, owner, model.CourseRequest{Title: "T1", Price: price(1)})
	require.NoError(t, err)
	_, err = svc.ListAll(ctx)
	require.NoError(t, err)
	require.True(t, mr.Exists(catalogKey))

	_, err = svc.Create(ctx, owner, model.CourseRequest{Title: "T2", Price: price(2)})
	require.NoError(t, err)
	assert.False(t, mr.Exists(catalogKey), "create must drop the cached catalog")

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 2, store.listAll)

	_, err = svc.Update(ctx, owner, course.ID, model.CourseRequest{Title: "T1b", Price: price(3)})
	require.NoError(t, err)
	assert.False(t, mr.Exists(catalogKey), "update must drop the cached catalog")

	all, err = svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, store.listAll)
	titles := []string{all[0].Title, all[1].Title}
	assert.ElementsMatch(t, []string{"T1b", "T2"}, titles)
}

func TestCatalogCache_RejectedUpdateKeepsCache(t *testing.T) {
	ctx := context.Background()
	svc, _, _, mr := newCachedCourses(t)

	course, err := svc.Create(ctx, uuid.New(), model.CourseRequest{Title: "T1", Price: price(1)})
	require.NoError(t, err)
	_, err = svc.ListAll(ctx)
	require.NoError(t, err)

	_, err = svc.Update(ctx, uuid.New(), course.ID, model.CourseRequest{Title: "hijack", Price: price(1)})
	require.ErrorIs(t, err, ErrNotCourseOwner)
	assert.True(t, mr.Exists(catalogKey))
}

func TestCatalogCache_CorruptPayloadFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	svc, store, _, mr := newCachedCourses(t)

	_, err := svc.Create(ctx, uuid.New(), model.CourseRequest{Title: "T1", Price: price(1)})
	require.NoError(t, err)
	require.NoError(t, mr.Set(catalogKey, "{not json"))

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, 1, store.listAll)

	// The store read replaces the corrupt payload.
	_, err = svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, store.listAll)
}

func TestCatalogCache_SkipsWriteAfterConcurrentInvalidate(t *testing.T) {
	ctx := context.Background()
	_, _, cache, mr := newCachedCourses(t)

	_, gen, ok := cache.Get(ctx)
	require.False(t, ok)
	require.GreaterOrEqual(t, gen, int64(0))

	// A course is created while the miss is still reading the store.
	cache.Invalidate(ctx)
	cache.Set(ctx, gen, []model.Course{{Title: "stale"}})
	assert.False(t, mr.Exists(catalogKey))

	_, gen, ok = cache.Get(ctx)
	require.False(t, ok)
	cache.Set(ctx, gen, []model.Course{{Title: "fresh"}})

	courses, _, ok := cache.Get(ctx)
	require.True(t, ok)
	require.Len(t, courses, 1)
	assert.Equal(t, "fresh", courses[0].Title)
}

func TestCatalogCache_RedisDownServesStore(t *testing.T) {
	ctx := context.Background()
	svc, store, _, mr := newCachedCourses(t)

	_, err := svc.Create(ctx, uuid.New(), model.CourseRequest{Title: "T1", Price: price(1)})
	require.NoError(t, err)
	mr.Close()

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, 1, store.listAll)

	_, err = svc.Create(ctx, uuid.New(), model.CourseRequest{Title: "T2", Price: price(2)})
	require.NoError(t, err)
}

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/content"
)

var now = time.Date(2025, 11, 13, 15, 30, 0, 0, time.UTC)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(MemoryPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_FileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.db")
	s, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Seed(context.Background(), content.Images()[:2], nil))
	require.NoError(t, s.Close())

	// Schema creation is idempotent and data survives reopening.
	s, err = Open(path, nil)
	require.NoError(t, err)
	defer s.Close()
	imgs, err := s.ListImages(context.Background())
	require.NoError(t, err)
	assert.Len(t, imgs, 2)
}

func TestSeed_AndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	empty, err := s.Empty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)

	require.NoError(t, s.Seed(ctx, content.Images(), content.Stages()))

	imgs, err := s.ListImages(ctx)
	require.NoError(t, err)
	assert.Equal(t, content.Images(), imgs)

	stages, err := s.ListStages(ctx)
	require.NoError(t, err)
	assert.Equal(t, content.Stages(), stages)

	empty, err = s.Empty(ctx)
	require.NoError(t, err)
	assert.False(t, empty)
}

func TestSeed_Replaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx, content.Images(), content.Stages()))
	hero := []content.Image{{ID: 7, ThumbURL: "t", URL: "u", IsHero: true}}
	require.NoError(t, s.Seed(ctx, hero, content.Stages()[:1]))

	imgs, err := s.ListImages(ctx)
	require.NoError(t, err)
	assert.Equal(t, hero, imgs)

	stages, err := s.ListStages(ctx)
	require.NoError(t, err)
	assert.Len(t, stages, 1)
}

func TestStore_IsAnImageProvider(t *testing.T) {
	var _ content.ImageProvider = (*Store)(nil)
	var _ content.StageProvider = (*Store)(nil)
}

func TestHashIP(t *testing.T) {
	s := openTestStore(t)

	h := s.HashIP("203.0.113.7")
	assert.Len(t, h, 16)
	assert.Equal(t, h, s.HashIP("203.0.113.7"))
	assert.NotEqual(t, h, s.HashIP("203.0.113.8"))
	assert.NotContains(t, h, "203")

	other := openTestStore(t)
	assert.NotEqual(t, h, other.HashIP("203.0.113.7"), "salt is per store")
}

func TestStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.RecordVisit(ctx, "10.0.0.1", "curl", "/", now.Add(-10*24*time.Hour)))
	require.NoError(t, s.RecordVisit(ctx, "10.0.0.1", "curl", "/", now.Add(-3*24*time.Hour)))
	require.NoError(t, s.RecordVisit(ctx, "10.0.0.2", "firefox", "/api/images", now.Add(-2*time.Hour)))
	require.NoError(t, s.RecordVisit(ctx, "10.0.0.3", "safari", "/", now.Add(-time.Minute)))

	stats, err := s.Stats(ctx, now, 2)
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalVisitors)
	assert.Equal(t, int64(3), stats.UniqueVisitors)
	assert.Equal(t, int64(2), stats.VisitorsToday)
	assert.Equal(t, int64(3), stats.VisitorsThisWeek)
	require.Len(t, stats.RecentVisitors, 2)
	assert.Equal(t, "safari", stats.RecentVisitors[0].UserAgent)
	assert.Equal(t, "/api/images", stats.RecentVisitors[1].Path)
	assert.Equal(t, now.Add(-time.Minute), stats.LastVisit)
}

func TestStats_Empty(t *testing.T) {
	s := openTestStore(t)

	stats, err := s.Stats(context.Background(), now, 10)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalVisitors)
	assert.Empty(t, stats.RecentVisitors)
	assert.True(t, stats.LastVisit.IsZero())
}

func TestPruneVisits(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.RecordVisit(ctx, "a", "", "/", now.AddDate(-2, 0, 0)))
	require.NoError(t, s.RecordVisit(ctx, "b", "", "/", now.AddDate(0, -13, 0)))
	require.NoError(t, s.RecordVisit(ctx, "c", "", "/", now.AddDate(0, -1, 0)))

	n, err := s.PruneVisits(ctx, now.AddDate(-1, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	visits, err := s.RecentVisits(ctx, 10)
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, s.HashIP("c"), visits[0].HashedIP)
}

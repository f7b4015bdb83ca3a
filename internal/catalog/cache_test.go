package catalog

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRepository struct {
	*mockRepository
	listPaperCalls int
}

func (c *countingRepository) ListPaperOptions(ctx context.Context, req ListPaperOptionsRequest) ([]PaperOption, error) {
	c.listPaperCalls++
	return c.mockRepository.ListPaperOptions(ctx, req)
}

func newCachedTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(repo, NewCache(client, time.Minute))
}

func TestListPaperOptionsCaches(t *testing.T) {
	repo := &countingRepository{mockRepository: newMockRepository()}
	svc := newCachedTestService(t, repo)
	ctx := context.Background()

	_, err := svc.CreatePaperOption(ctx, CreatePaperOptionRequest{
		Name:          "Gloss 150gsm",
		Category:      "coated",
		Size:          "13x19",
		PricingMethod: PaperPricedPerSheet,
		PricePerSheet: 0.6,
	})
	require.NoError(t, err)

	options, err := svc.ListPaperOptions(ctx, ListPaperOptionsRequest{})
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, 1, repo.listPaperCalls)

	// Second read served from cache.
	_, err = svc.ListPaperOptions(ctx, ListPaperOptionsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listPaperCalls)
}

func TestWriteInvalidatesCachedLists(t *testing.T) {
	repo := &countingRepository{mockRepository: newMockRepository()}
	svc := newCachedTestService(t, repo)
	ctx := context.Background()

	_, err := svc.ListPaperOptions(ctx, ListPaperOptionsRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, repo.listPaperCalls)

	// Any catalog write bumps the version, so the next read reloads.
	_, err = svc.CreatePaperOption(ctx, CreatePaperOptionRequest{
		Name:          "Uncoated 90gsm",
		Category:      "uncoated",
		Size:          "8.5x11",
		PricingMethod: PaperPricedPerSheet,
		PricePerSheet: 0.04,
	})
	require.NoError(t, err)

	options, err := svc.ListPaperOptions(ctx, ListPaperOptionsRequest{})
	require.NoError(t, err)
	assert.Len(t, options, 1)
	assert.Equal(t, 2, repo.listPaperCalls)
}

func TestCacheKeysVaryByFilter(t *testing.T) {
	repo := &countingRepository{mockRepository: newMockRepository()}
	svc := newCachedTestService(t, repo)
	ctx := context.Background()

	coated := "coated"
	_, err := svc.ListPaperOptions(ctx, ListPaperOptionsRequest{Category: &coated})
	require.NoError(t, err)
	_, err = svc.ListPaperOptions(ctx, ListPaperOptionsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listPaperCalls)
}

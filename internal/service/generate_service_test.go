package service_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialbid/internal/domain"
)

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	user := e.createUser(t, "creator", domain.RoleUser)

	t.Run("Unauthenticated", func(t *testing.T) {
		_, err := e.generate.Generate(ctx, nil, "a prompt", domain.PromptImage)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("UnknownType", func(t *testing.T) {
		_, err := e.generate.Generate(ctx, user, "a prompt", domain.PromptType("audio"))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Image", func(t *testing.T) {
		entry, err := e.generate.Generate(ctx, user, "abstract gradient", domain.PromptImage)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(entry.Result, "https://images.unsplash.com/"), "got %q", entry.Result)
	})

	t.Run("TextContainsPromptVerbatim", func(t *testing.T) {
		entry, err := e.generate.Generate(ctx, user, "vintage film camera", domain.PromptText)
		require.NoError(t, err)
		assert.Contains(t, entry.Result, `"vintage film camera"`)
	})

	t.Run("Video", func(t *testing.T) {
		entry, err := e.generate.Generate(ctx, user, "spinning product shot", domain.PromptVideo)
		require.NoError(t, err)
		assert.Equal(t, "Video generation is coming soon. Your prompt has been saved.", entry.Result)
	})

	t.Run("EveryCallIsLogged", func(t *testing.T) {
		before, err := e.logRepo.Count(ctx)
		require.NoError(t, err)

		entry, err := e.generate.Generate(ctx, user, "logged prompt", domain.PromptText)
		require.NoError(t, err)
		assert.NotZero(t, entry.ID)
		assert.Equal(t, user.ID, entry.UserID)
		assert.Equal(t, "logged prompt", entry.Prompt)

		after, err := e.logRepo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, before+1, after)
	})
}

func TestGenerateConcurrent(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	user := e.createUser(t, "creator", domain.RoleUser)

	const calls = 8
	errs := make(chan error, calls)
	var wg sync.WaitGroup
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.generate.Generate(ctx, user, "parallel prompt", domain.PromptImage)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	count, err := e.logRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, calls, count)
}

func TestAdminService(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	admin := e.createUser(t, "boss", domain.RoleAdmin)
	regular := e.createUser(t, "pleb", domain.RoleUser)

	t.Run("ForbiddenForRegularUser", func(t *testing.T) {
		_, err := e.admin.ListUsers(ctx, regular)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		_, err = e.admin.ListPromptLogs(ctx, regular, 50)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		_, err = e.admin.GetStats(ctx, regular)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("UnauthenticatedBeforeForbidden", func(t *testing.T) {
		_, err := e.admin.GetStats(ctx, nil)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("ListUsersSanitized", func(t *testing.T) {
		profiles, err := e.admin.ListUsers(ctx, admin)
		require.NoError(t, err)
		require.Len(t, profiles, 2)
	})

	t.Run("Stats", func(t *testing.T) {
		e.createAuction(t, regular.ID, 100, domain.AuctionActive, 24*time.Hour)
		_, err := e.generate.Generate(ctx, regular, "p", domain.PromptVideo)
		require.NoError(t, err)

		stats, err := e.admin.GetStats(ctx, admin)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Users)
		assert.Equal(t, 1, stats.Auctions)
		assert.Equal(t, 0, stats.Bids)
		assert.Equal(t, 1, stats.PromptLogs)
	})
}

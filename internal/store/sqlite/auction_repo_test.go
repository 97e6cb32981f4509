package sqlite

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialbid/internal/domain"
)

func TestAuctionRepoListFilters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewAuctionRepo(db)

	seller := createTestUser(t, db, "seller")

	mk := func(title, category string, price float64, status domain.AuctionStatus, featured bool, createdAt time.Time) *domain.Auction {
		a := &domain.Auction{
			Title:       title,
			Description: "nothing to see here",
			CurrentBid:  price,
			StartingBid: price,
			SellerID:    seller.ID,
			Category:    category,
			Condition:   "good",
			StartDate:   createdAt,
			EndDate:     createdAt.Add(72 * time.Hour),
			Status:      status,
			Featured:    featured,
			CreatedAt:   createdAt,
		}
		require.NoError(t, repo.Create(ctx, a))
		return a
	}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	camera := mk("Vintage Camera", "electronics", 150, domain.AuctionActive, true, base)
	synth := mk("Analog Synth", "electronics", 900, domain.AuctionActive, false, base.Add(time.Hour))
	jacket := mk("Suede Jacket", "fashion", 300, domain.AuctionEnded, false, base.Add(2*time.Hour))

	t.Run("NoFilters", func(t *testing.T) {
		got, err := repo.List(ctx, domain.AuctionFilter{})
		require.NoError(t, err)
		assert.Len(t, got, 3)
		// newest first by default
		assert.Equal(t, jacket.ID, got[0].ID)
	})

	t.Run("Category", func(t *testing.T) {
		cat := "electronics"
		got, err := repo.List(ctx, domain.AuctionFilter{Category: &cat})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("StatusAndFeatured", func(t *testing.T) {
		status := domain.AuctionActive
		featured := true
		got, err := repo.List(ctx, domain.AuctionFilter{Status: &status, Featured: &featured})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, camera.ID, got[0].ID)
	})

	t.Run("PriceRange", func(t *testing.T) {
		min, max := 200.0, 1000.0
		got, err := repo.List(ctx, domain.AuctionFilter{MinPrice: &min, MaxPrice: &max})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("SearchCaseInsensitive", func(t *testing.T) {
		got, err := repo.List(ctx, domain.AuctionFilter{Search: "SYNTH"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, synth.ID, got[0].ID)
	})

	t.Run("SearchMatchesDescription", func(t *testing.T) {
		got, err := repo.List(ctx, domain.AuctionFilter{Search: "nothing to see"})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("SortPriceAsc", func(t *testing.T) {
		got, err := repo.List(ctx, domain.AuctionFilter{Sort: domain.SortPriceAsc})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, camera.ID, got[0].ID)
		assert.Equal(t, synth.ID, got[2].ID)
	})

	t.Run("SortEndingSoon", func(t *testing.T) {
		got, err := repo.List(ctx, domain.AuctionFilter{Sort: domain.SortEndingSoon})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, camera.ID, got[0].ID)
	})
}

func TestAuctionRepoPlaceBid(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewAuctionRepo(db)
	bids := NewBidRepo(db)

	seller := createTestUser(t, db, "seller")
	bidder := createTestUser(t, db, "bidder")
	auction := createTestAuction(t, db, seller.ID, 1000, domain.AuctionActive, 48*time.Hour)

	t.Run("RaisesCurrentBid", func(t *testing.T) {
		bid := &domain.Bid{AuctionID: auction.ID, UserID: bidder.ID, Amount: 1001}
		require.NoError(t, repo.PlaceBid(ctx, bid))
		assert.NotZero(t, bid.ID)

		got, err := repo.GetByID(ctx, auction.ID)
		require.NoError(t, err)
		assert.Equal(t, 1001.0, got.CurrentBid)

		history, err := bids.ListForAuction(ctx, auction.ID)
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})

	t.Run("GuardRejectsStaleAmount", func(t *testing.T) {
		// current_bid is 1001 now; an equal amount must not land, and must
		// leave no bid row behind.
		bid := &domain.Bid{AuctionID: auction.ID, UserID: bidder.ID, Amount: 1001}
		err := repo.PlaceBid(ctx, bid)
		assert.ErrorIs(t, err, domain.ErrInvalidBid)

		history, err := bids.ListForAuction(ctx, auction.ID)
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})

	t.Run("MissingAuction", func(t *testing.T) {
		bid := &domain.Bid{AuctionID: 99999, UserID: bidder.ID, Amount: 50}
		err := repo.PlaceBid(ctx, bid)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAuctionRepoPlaceBidConcurrent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewAuctionRepo(db)
	bids := NewBidRepo(db)

	seller := createTestUser(t, db, "seller")
	bidderA := createTestUser(t, db, "bidder_a")
	bidderB := createTestUser(t, db, "bidder_b")
	auction := createTestAuction(t, db, seller.ID, 100, domain.AuctionActive, 24*time.Hour)

	// Two bidders race with the same amount. The guard must let exactly one
	// through; the loser gets ErrInvalidBid, not a locked-database error.
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, userID := range []int64{bidderA.ID, bidderB.ID} {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			errs <- repo.PlaceBid(ctx, &domain.Bid{AuctionID: auction.ID, UserID: userID, Amount: 150})
		}(userID)
	}
	wg.Wait()
	close(errs)

	var wins, rejects int
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domain.ErrInvalidBid):
			rejects++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, rejects)

	got, err := repo.GetByID(ctx, auction.ID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, got.CurrentBid)

	history, err := bids.ListForAuction(ctx, auction.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestAuctionRepoAdjustWatchCount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewAuctionRepo(db)

	seller := createTestUser(t, db, "seller")
	auction := createTestAuction(t, db, seller.ID, 100, domain.AuctionActive, 24*time.Hour)

	count, err := repo.AdjustWatchCount(ctx, auction.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = repo.AdjustWatchCount(ctx, auction.ID, -1)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// floored at zero
	count, err = repo.AdjustWatchCount(ctx, auction.ID, -1)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = repo.AdjustWatchCount(ctx, 99999, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuctionRepoSetStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewAuctionRepo(db)

	seller := createTestUser(t, db, "seller")
	auction := createTestAuction(t, db, seller.ID, 100, domain.AuctionActive, 24*time.Hour)

	require.NoError(t, repo.SetStatus(ctx, auction.ID, domain.AuctionEnded))

	got, err := repo.GetByID(ctx, auction.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AuctionEnded, got.Status)

	assert.ErrorIs(t, repo.SetStatus(ctx, 99999, domain.AuctionEnded), domain.ErrNotFound)
}

func TestAuctionRepoImagesRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewAuctionRepo(db)

	seller := createTestUser(t, db, "seller")
	a := createTestAuction(t, db, seller.ID, 100, domain.AuctionActive, 24*time.Hour)

	// Empty image list round-trips as empty, not nil-as-error.
	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Images)

	b := &domain.Auction{
		Title:       "with images",
		Images:      []string{"https://example.com/a.jpg", "https://example.com/b.jpg"},
		CurrentBid:  10,
		StartingBid: 10,
		SellerID:    seller.ID,
		StartDate:   time.Now().UTC(),
		EndDate:     time.Now().UTC().Add(time.Hour),
		Status:      domain.AuctionActive,
	}
	require.NoError(t, repo.Create(ctx, b))

	got, err = repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.Images, got.Images)
}

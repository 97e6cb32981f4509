package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"socialbid/internal/domain"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "socialbid_test.db")

	db, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createTestUser(t *testing.T, db *sql.DB, username string) *domain.User {
	t.Helper()
	u := &domain.User{
		Username:    username,
		Email:       username + "@example.com",
		Password:    "secret",
		DisplayName: username,
		Role:        domain.RoleUser,
	}
	require.NoError(t, NewUserRepo(db).Create(context.Background(), u))
	return u
}

func createTestAuction(t *testing.T, db *sql.DB, sellerID int64, startingBid float64, status domain.AuctionStatus, endsIn time.Duration) *domain.Auction {
	t.Helper()
	now := time.Now().UTC()
	a := &domain.Auction{
		Title:       "test listing",
		Description: "test description",
		CurrentBid:  startingBid,
		StartingBid: startingBid,
		SellerID:    sellerID,
		Category:    "misc",
		Condition:   "good",
		StartDate:   now.Add(-time.Hour),
		EndDate:     now.Add(endsIn),
		Status:      status,
	}
	require.NoError(t, NewAuctionRepo(db).Create(context.Background(), a))
	return a
}

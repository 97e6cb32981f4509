package service_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"socialbid/internal/domain"
	"socialbid/internal/security"
	"socialbid/internal/service"
	"socialbid/internal/store/sqlite"
)

// env wires the full accessor stack over a throwaway sqlite database so each
// test runs against real storage semantics.
type env struct {
	db *sql.DB

	userRepo    *sqlite.UserRepo
	auctionRepo *sqlite.AuctionRepo
	bidRepo     *sqlite.BidRepo
	msgRepo     *sqlite.MessageRepo
	convRepo    *sqlite.ConversationRepo
	logRepo     *sqlite.PromptLogRepo

	auth     *service.AuthService
	auctions *service.AuctionService
	messages *service.MessageService
	generate *service.GenerateService
	admin    *service.AdminService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "socialbid_test.db")

	db, err := sqlite.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, sqlite.Migrate(db))
	t.Cleanup(func() { _ = db.Close() })

	e := &env{
		db:          db,
		userRepo:    sqlite.NewUserRepo(db),
		auctionRepo: sqlite.NewAuctionRepo(db),
		bidRepo:     sqlite.NewBidRepo(db),
		msgRepo:     sqlite.NewMessageRepo(db),
		convRepo:    sqlite.NewConversationRepo(db),
		logRepo:     sqlite.NewPromptLogRepo(db),
	}

	tokens := security.NewTokenService("test-secret", time.Hour)
	e.auth = service.NewAuthService(e.userRepo, tokens)
	e.auctions = service.NewAuctionService(e.auctionRepo, e.bidRepo, e.userRepo)
	e.messages = service.NewMessageService(e.msgRepo, e.convRepo, e.userRepo)
	e.generate = service.NewGenerateService(e.logRepo)
	e.admin = service.NewAdminService(e.userRepo, e.auctionRepo, e.bidRepo, e.logRepo)

	return e
}

func (e *env) createUser(t *testing.T, username string, role domain.Role) *domain.User {
	t.Helper()
	u := &domain.User{
		Username:    username,
		Email:       username + "@example.com",
		Password:    "secret",
		DisplayName: username,
		AvatarURL:   "https://i.pravatar.cc/150?u=" + username,
		Role:        role,
	}
	require.NoError(t, e.userRepo.Create(context.Background(), u))
	return u
}

func (e *env) createAuction(t *testing.T, sellerID int64, startingBid float64, status domain.AuctionStatus, endsIn time.Duration) *domain.Auction {
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
	require.NoError(t, e.auctionRepo.Create(context.Background(), a))
	return a
}

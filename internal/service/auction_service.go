package service

import (
	"context"
	"fmt"
	"time"

	"socialbid/internal/domain"
)

// AuctionService implements the marketplace listing and bidding rules. Every
// method takes the caller explicitly; a nil caller means no session and fails
// mutations with ErrUnauthenticated.
type AuctionService struct {
	auctions domain.AuctionRepository
	bids     domain.BidRepository
	users    domain.UserRepository
}

func NewAuctionService(auctions domain.AuctionRepository, bids domain.BidRepository, users domain.UserRepository) *AuctionService {
	return &AuctionService{auctions: auctions, bids: bids, users: users}
}

// AuctionView is a listing entry enriched with the seller's public profile.
// Seller stays nil when the lookup fails; the listing is returned anyway.
type AuctionView struct {
	*domain.Auction
	Seller *domain.PublicProfile `json:"seller,omitempty"`
}

// BidView is one bid enriched with the bidder's display name and avatar.
type BidView struct {
	*domain.Bid
	BidderName   string `json:"bidder_name"`
	BidderAvatar string `json:"bidder_avatar"`
}

// AuctionDetail is a single auction with seller and full bid history,
// newest bid first.
type AuctionDetail struct {
	*domain.Auction
	Seller *domain.PublicProfile `json:"seller,omitempty"`
	Bids   []*BidView            `json:"bids"`
}

type CreateAuctionInput struct {
	Title        string
	Description  string
	Images       []string
	StartingBid  float64
	ReservePrice *float64
	Category     string
	Condition    string
	StartDate    time.Time
	EndDate      time.Time
	Status       domain.AuctionStatus
}

// List returns auctions matching the filter, each joined with its seller.
func (s *AuctionService) List(ctx context.Context, f domain.AuctionFilter) ([]*AuctionView, error) {
	auctions, err := s.auctions.List(ctx, f)
	if err != nil {
		return nil, err
	}

	views := make([]*AuctionView, 0, len(auctions))
	for _, a := range auctions {
		v := &AuctionView{Auction: a}
		if seller, err := s.users.GetByID(ctx, a.SellerID); err == nil && seller != nil {
			v.Seller = seller.Public()
		}
		views = append(views, v)
	}
	return views, nil
}

// Get returns one auction with seller and bid history joined in.
func (s *AuctionService) Get(ctx context.Context, id int64) (*AuctionDetail, error) {
	auction, err := s.auctions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if auction == nil {
		return nil, domain.ErrNotFound
	}

	detail := &AuctionDetail{Auction: auction, Bids: []*BidView{}}
	if seller, err := s.users.GetByID(ctx, auction.SellerID); err == nil && seller != nil {
		detail.Seller = seller.Public()
	}

	bids, err := s.bids.ListForAuction(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, b := range bids {
		bv := &BidView{Bid: b}
		if bidder, err := s.users.GetByID(ctx, b.UserID); err == nil && bidder != nil {
			bv.BidderName = bidder.DisplayName
			bv.BidderAvatar = bidder.AvatarURL
		}
		detail.Bids = append(detail.Bids, bv)
	}
	return detail, nil
}

// Create lists a new auction owned by the caller. CurrentBid starts at
// StartingBid and the watch counter at zero. EndDate is not validated
// against StartDate, matching the original behaviour.
func (s *AuctionService) Create(ctx context.Context, caller *domain.User, in CreateAuctionInput) (*domain.Auction, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	status := in.Status
	if status == "" {
		status = domain.AuctionActive
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, in.Status)
	}

	auction := &domain.Auction{
		Title:        in.Title,
		Description:  in.Description,
		Images:       in.Images,
		CurrentBid:   in.StartingBid,
		StartingBid:  in.StartingBid,
		ReservePrice: in.ReservePrice,
		SellerID:     caller.ID,
		Category:     in.Category,
		Condition:    in.Condition,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Status:       status,
		WatchCount:   0,
		CreatedAt:    time.Now().UTC(),
	}
	if auction.StartDate.IsZero() {
		auction.StartDate = auction.CreatedAt
	}

	if err := s.auctions.Create(ctx, auction); err != nil {
		return nil, err
	}
	return auction, nil
}

// PlaceBid validates and records a bid. Checks run in a fixed order so the
// failure kind is stable: missing auction, inactive status, ended by the
// clock, amount not above the current bid, then bidding on one's own
// listing. The insert and the current_bid raise commit atomically.
func (s *AuctionService) PlaceBid(ctx context.Context, caller *domain.User, auctionID int64, amount float64) (*domain.Bid, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}

	auction, err := s.auctions.GetByID(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if auction == nil {
		return nil, domain.ErrNotFound
	}
	if auction.Status != domain.AuctionActive {
		return nil, fmt.Errorf("%w: status is %s", domain.ErrInvalidState, auction.Status)
	}
	if auction.EndDate.Before(time.Now().UTC()) {
		return nil, fmt.Errorf("%w: auction has ended", domain.ErrInvalidState)
	}
	if amount <= auction.CurrentBid {
		return nil, fmt.Errorf("%w: current bid is %.2f", domain.ErrInvalidBid, auction.CurrentBid)
	}
	if auction.SellerID == caller.ID {
		return nil, fmt.Errorf("%w: cannot bid on your own auction", domain.ErrForbidden)
	}

	bid := &domain.Bid{
		AuctionID: auctionID,
		UserID:    caller.ID,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.auctions.PlaceBid(ctx, bid); err != nil {
		return nil, err
	}
	return bid, nil
}

// ToggleWatch adjusts the auction's aggregate watch counter, floored at
// zero. There is no per-user watch membership; only the count is tracked.
func (s *AuctionService) ToggleWatch(ctx context.Context, caller *domain.User, auctionID int64, watch bool) (int, error) {
	if caller == nil {
		return 0, domain.ErrUnauthenticated
	}
	delta := 1
	if !watch {
		delta = -1
	}
	return s.auctions.AdjustWatchCount(ctx, auctionID, delta)
}

// SetStatus transitions an auction's status. Nothing does this on a timer;
// it is the explicit operation for admins (or the seller) to end, cancel, or
// mark a listing sold.
func (s *AuctionService) SetStatus(ctx context.Context, caller *domain.User, auctionID int64, status domain.AuctionStatus) (*domain.Auction, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}

	auction, err := s.auctions.GetByID(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if auction == nil {
		return nil, domain.ErrNotFound
	}
	if !caller.IsAdmin() && auction.SellerID != caller.ID {
		return nil, domain.ErrForbidden
	}

	if err := s.auctions.SetStatus(ctx, auctionID, status); err != nil {
		return nil, err
	}
	auction.Status = status
	return auction, nil
}

package domain

import (
	"context"
	"time"
)

// AuctionSort selects the ordering applied after filtering.
type AuctionSort string

const (
	SortEndingSoon AuctionSort = "ending_soon"
	SortPriceAsc   AuctionSort = "price_asc"
	SortPriceDesc  AuctionSort = "price_desc"
	SortNewest     AuctionSort = "newest"
)

// AuctionFilter holds the optional, conjunctive listing filters. Nil fields
// are not applied. Search is a case-insensitive substring match against the
// title or description.
type AuctionFilter struct {
	Category *string
	Status   *AuctionStatus
	Featured *bool
	MinPrice *float64
	MaxPrice *float64
	Search   string
	Sort     AuctionSort
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Count(ctx context.Context) (int, error)
}

// AuctionRepository defines persistence operations for auctions. Every read
// hits current state; nothing is cached between calls.
type AuctionRepository interface {
	Create(ctx context.Context, a *Auction) error
	GetByID(ctx context.Context, id int64) (*Auction, error)
	List(ctx context.Context, f AuctionFilter) ([]*Auction, error)
	// PlaceBid records b and raises the auction's current_bid to b.Amount in
	// one transaction, guarded by a compare-and-set on current_bid. Returns
	// ErrInvalidBid if a concurrent bid got there first, ErrNotFound if the
	// auction is gone.
	PlaceBid(ctx context.Context, b *Bid) error
	// AdjustWatchCount applies delta to watch_count, floored at zero, and
	// returns the resulting count.
	AdjustWatchCount(ctx context.Context, id int64, delta int) (int, error)
	SetStatus(ctx context.Context, id int64, status AuctionStatus) error
	Count(ctx context.Context) (int, error)
}

// BidRepository defines persistence operations for bids. Bid placement goes
// through AuctionRepository.PlaceBid; Create exists for seeding fixtures.
type BidRepository interface {
	Create(ctx context.Context, b *Bid) error
	ListForAuction(ctx context.Context, auctionID int64) ([]*Bid, error)
	Count(ctx context.Context) (int, error)
}

// MessageRepository defines persistence operations for messages. Threads are
// addressed by the unordered user pair, never by a conversation id.
type MessageRepository interface {
	Create(ctx context.Context, m *Message) error
	// ListBetween returns all messages exchanged between the two users in
	// either direction, oldest first.
	ListBetween(ctx context.Context, userA, userB int64) ([]*Message, error)
	// MarkReadFrom flips every unread message sent by senderID to readerID
	// to read, returning how many rows changed.
	MarkReadFrom(ctx context.Context, readerID, senderID int64) (int, error)
	// CountUnreadFrom counts unread messages addressed to receiverID from
	// senderID.
	CountUnreadFrom(ctx context.Context, receiverID, senderID int64) (int, error)
}

// ConversationRepository defines persistence operations for conversations.
// Implementations normalize the participant pair so lookups match in either
// order.
type ConversationRepository interface {
	Create(ctx context.Context, c *Conversation) error
	GetByID(ctx context.Context, id int64) (*Conversation, error)
	// FindByParticipants returns the conversation for the unordered pair, or
	// nil if none exists.
	FindByParticipants(ctx context.Context, userA, userB int64) (*Conversation, error)
	ListForUser(ctx context.Context, userID int64) ([]*Conversation, error)
	SetLastMessage(ctx context.Context, id, messageID int64, at time.Time) error
}

// PromptLogRepository defines persistence operations for the append-only
// AI generation log.
type PromptLogRepository interface {
	Create(ctx context.Context, l *PromptLog) error
	List(ctx context.Context, limit int) ([]*PromptLog, error)
	Count(ctx context.Context) (int, error)
}

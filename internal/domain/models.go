package domain

import "time"

// Role of a user account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// AuctionStatus is the lifecycle state of an auction listing. Transitions are
// driven explicitly (seller/admin operations); nothing advances the status on
// a timer, so status and end_date can disagree.
type AuctionStatus string

const (
	AuctionPending   AuctionStatus = "pending"
	AuctionActive    AuctionStatus = "active"
	AuctionEnded     AuctionStatus = "ended"
	AuctionSold      AuctionStatus = "sold"
	AuctionCancelled AuctionStatus = "cancelled"
)

// Valid reports whether s is a known auction status.
func (s AuctionStatus) Valid() bool {
	switch s {
	case AuctionPending, AuctionActive, AuctionEnded, AuctionSold, AuctionCancelled:
		return true
	}
	return false
}

// PromptType is the kind of content a generation request asks for.
type PromptType string

const (
	PromptImage PromptType = "image"
	PromptText  PromptType = "text"
	PromptVideo PromptType = "video"
)

// User represents an application user. Password is stored in plaintext (this
// is a demo system) and must never leave the service layer.
type User struct {
	ID          int64     `db:"id" json:"id"`
	Username    string    `db:"username" json:"username"`
	Email       string    `db:"email" json:"email"`
	Password    string    `db:"password" json:"-"`
	DisplayName string    `db:"display_name" json:"display_name"`
	AvatarURL   string    `db:"avatar_url" json:"avatar_url"`
	Role        Role      `db:"role" json:"role"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// PublicProfile is the sanitized user view handed to callers. It carries no
// password field at all.
type PublicProfile struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// Public returns the sanitized view of u.
func (u *User) Public() *PublicProfile {
	if u == nil {
		return nil
	}
	return &PublicProfile{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
	}
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Auction represents a marketplace listing. CurrentBid starts at StartingBid
// and is only ever raised by successful bid placement; content fields belong
// to the seller.
type Auction struct {
	ID           int64         `db:"id" json:"id"`
	Title        string        `db:"title" json:"title"`
	Description  string        `db:"description" json:"description"`
	Images       []string      `db:"images" json:"images"`
	CurrentBid   float64       `db:"current_bid" json:"current_bid"`
	StartingBid  float64       `db:"starting_bid" json:"starting_bid"`
	ReservePrice *float64      `db:"reserve_price" json:"reserve_price,omitempty"`
	SellerID     int64         `db:"seller_id" json:"seller_id"`
	Category     string        `db:"category" json:"category"`
	Condition    string        `db:"condition" json:"condition"`
	StartDate    time.Time     `db:"start_date" json:"start_date"`
	EndDate      time.Time     `db:"end_date" json:"end_date"`
	Status       AuctionStatus `db:"status" json:"status"`
	Featured     bool          `db:"featured" json:"featured"`
	WatchCount   int           `db:"watch_count" json:"watch_count"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
}

// Bid is one bid on an auction. Bids are immutable once created.
type Bid struct {
	ID        int64     `db:"id" json:"id"`
	AuctionID int64     `db:"auction_id" json:"auction_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Amount    float64   `db:"amount" json:"amount"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Message is a direct message between two users. Messages are correlated to
// conversations by the sender/receiver pair, not by a conversation foreign
// key; the only mutation ever applied is the unread->read transition.
type Message struct {
	ID         int64     `db:"id" json:"id"`
	SenderID   int64     `db:"sender_id" json:"sender_id"`
	ReceiverID int64     `db:"receiver_id" json:"receiver_id"`
	Content    string    `db:"content" json:"content"`
	Read       bool      `db:"is_read" json:"read"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Conversation tracks the thread between an unordered pair of users. At most
// one conversation exists per pair; ParticipantA < ParticipantB always (the
// store normalizes the pair on write).
type Conversation struct {
	ID            int64     `db:"id" json:"id"`
	ParticipantA  int64     `db:"participant_a" json:"participant_a"`
	ParticipantB  int64     `db:"participant_b" json:"participant_b"`
	LastMessageID *int64    `db:"last_message_id" json:"last_message_id,omitempty"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Involves reports whether userID is one of the two participants.
func (c *Conversation) Involves(userID int64) bool {
	return c != nil && (c.ParticipantA == userID || c.ParticipantB == userID)
}

// Other returns the participant that is not userID.
func (c *Conversation) Other(userID int64) int64 {
	if c.ParticipantA == userID {
		return c.ParticipantB
	}
	return c.ParticipantA
}

// PromptLog is one row of the append-only AI generation log.
type PromptLog struct {
	ID        int64      `db:"id" json:"id"`
	UserID    int64      `db:"user_id" json:"user_id"`
	Prompt    string     `db:"prompt" json:"prompt"`
	Result    string     `db:"result" json:"result"`
	Type      PromptType `db:"type" json:"type"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Seed populates an empty database with the demo fixture set: 8 users, 6
// auctions with bid history, 2 conversations with messages, and 3 prompt
// logs. All writes happen in one transaction keyed off the users table being
// empty, so running it again is a no-op. The returned bool reports whether
// seeding actually ran.
func Seed(ctx context.Context, db *sql.DB) (bool, error) {
	var userCount int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&userCount); err != nil {
		return false, fmt.Errorf("seed: count users: %w", err)
	}
	if userCount > 0 {
		return false, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("seed: begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	insertUser := func(username, email, password, displayName, avatar, role string) (int64, error) {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO users (username, email, password, display_name, avatar_url, role, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, username, email, password, displayName, avatar, role, now.AddDate(0, -3, 0))
		if err != nil {
			return 0, fmt.Errorf("seed: insert user %s: %w", username, err)
		}
		return res.LastInsertId()
	}

	if _, err := insertUser("admin", "admin@socialbid.dev", "admin123", "Site Admin", "https://i.pravatar.cc/150?img=1", "admin"); err != nil {
		return false, err
	}
	sarah, err := insertUser("sarah_miller", "sarah@example.com", "sunset42", "Sarah Miller", "https://i.pravatar.cc/150?img=5", "user")
	if err != nil {
		return false, err
	}
	mike, err := insertUser("mike_vintage", "mike@example.com", "classic77", "Mike Turner", "https://i.pravatar.cc/150?img=12", "user")
	if err != nil {
		return false, err
	}
	lena, err := insertUser("lena_art", "lena@example.com", "palette9", "Lena Kovacs", "https://i.pravatar.cc/150?img=20", "user")
	if err != nil {
		return false, err
	}
	tom, err := insertUser("tom_gadgets", "tom@example.com", "circuit55", "Tom Reyes", "https://i.pravatar.cc/150?img=33", "user")
	if err != nil {
		return false, err
	}
	nina, err := insertUser("nina_threads", "nina@example.com", "stitch21", "Nina Brandt", "https://i.pravatar.cc/150?img=44", "user")
	if err != nil {
		return false, err
	}
	carlos, err := insertUser("carlos_cards", "carlos@example.com", "mint1998", "Carlos Mendes", "https://i.pravatar.cc/150?img=52", "user")
	if err != nil {
		return false, err
	}
	if _, err := insertUser("amy_decor", "amy@example.com", "willow12", "Amy Chen", "https://i.pravatar.cc/150?img=60", "user"); err != nil {
		return false, err
	}

	insertAuction := func(title, description, images string, currentBid, startingBid float64, reserve *float64,
		sellerID int64, category, condition string, endsIn time.Duration, status string, featured bool) (int64, error) {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO auctions (title, description, images, current_bid, starting_bid, reserve_price,
				seller_id, category, condition, start_date, end_date, status, featured, watch_count, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)
		`, title, description, images, currentBid, startingBid, reserve,
			sellerID, category, condition, now.AddDate(0, 0, -7), now.Add(endsIn), status, featured, now.AddDate(0, 0, -7))
		if err != nil {
			return 0, fmt.Errorf("seed: insert auction %q: %w", title, err)
		}
		return res.LastInsertId()
	}

	reserve := func(v float64) *float64 { return &v }

	camera, err := insertAuction(
		"Leica M6 Rangefinder Camera",
		"Classic 35mm rangefinder in excellent working order, recently serviced. Includes original strap and leather case.",
		`["https://images.unsplash.com/photo-1495707902641-75cac588d2e9","https://images.unsplash.com/photo-1516035069371-29a1b244cc32"]`,
		1850, 1500, reserve(2200), mike, "electronics", "excellent", 72*time.Hour, "active", true)
	if err != nil {
		return false, err
	}
	jacket, err := insertAuction(
		"1970s Suede Fringe Jacket",
		"Genuine suede with original fringe detailing, size M. Light wear consistent with age.",
		`["https://images.unsplash.com/photo-1551028719-00167b16eac5"]`,
		340, 250, nil, nina, "fashion", "good", 48*time.Hour, "active", false)
	if err != nil {
		return false, err
	}
	// The painting has no bids yet; its current_bid stays at the starting bid.
	if _, err := insertAuction(
		"Original Abstract Oil Painting 80x60",
		"Signed original on stretched canvas, bold palette-knife texture. Ships rolled or framed.",
		`["https://images.unsplash.com/photo-1541961017774-22349e4a1262"]`,
		600, 600, reserve(900), lena, "art", "new", 120*time.Hour, "active", true); err != nil {
		return false, err
	}
	rookie, err := insertAuction(
		"1998 Rookie Card Graded PSA 9",
		"High-grade rookie card, slabbed and authenticated. Stored in a smoke-free home.",
		`["https://images.unsplash.com/photo-1611930022073-b7a4ba5fcccd"]`,
		475, 300, nil, carlos, "collectibles", "mint", -24*time.Hour, "active", false)
	if err != nil {
		return false, err
	}
	synth, err := insertAuction(
		"Analog Synthesizer, 61 Keys",
		"Warm analog polysynth with aftertouch. One slider cap missing, fully functional otherwise.",
		`["https://images.unsplash.com/photo-1598488035139-bdbb2231ce04"]`,
		920, 800, reserve(1100), tom, "electronics", "good", -12*time.Hour, "ended", false)
	if err != nil {
		return false, err
	}
	if _, err := insertAuction(
		"Mid-Century Walnut Sideboard",
		"Restored sideboard with sliding doors and original brass pulls. Pickup preferred.",
		`["https://images.unsplash.com/photo-1538688525198-9b88f6f53126"]`,
		700, 700, nil, sarah, "home", "restored", 168*time.Hour, "pending", false); err != nil {
		return false, err
	}

	insertBid := func(auctionID, userID int64, amount float64, age time.Duration) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO bids (auction_id, user_id, amount, created_at)
			VALUES (?, ?, ?, ?)
		`, auctionID, userID, amount, now.Add(-age)); err != nil {
			return fmt.Errorf("seed: insert bid: %w", err)
		}
		return nil
	}

	// Bid history matches each auction's current_bid: the newest bid is the
	// highest.
	for _, b := range []struct {
		auction, user int64
		amount        float64
		age           time.Duration
	}{
		{camera, tom, 1550, 40 * time.Hour},
		{camera, carlos, 1700, 26 * time.Hour},
		{camera, tom, 1850, 9 * time.Hour},
		{jacket, sarah, 275, 30 * time.Hour},
		{jacket, lena, 340, 12 * time.Hour},
		{rookie, mike, 350, 50 * time.Hour},
		{rookie, tom, 475, 28 * time.Hour},
		{synth, carlos, 850, 80 * time.Hour},
		{synth, nina, 920, 60 * time.Hour},
	} {
		if err := insertBid(b.auction, b.user, b.amount, b.age); err != nil {
			return false, err
		}
	}

	insertMessage := func(senderID, receiverID int64, content string, read bool, age time.Duration) (int64, time.Time, error) {
		at := now.Add(-age)
		res, err := tx.ExecContext(ctx, `
			INSERT INTO messages (sender_id, receiver_id, content, is_read, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, senderID, receiverID, content, read, at)
		if err != nil {
			return 0, at, fmt.Errorf("seed: insert message: %w", err)
		}
		id, err := res.LastInsertId()
		return id, at, err
	}

	insertConversation := func(a, b, lastMessageID int64, at time.Time) error {
		if a > b {
			a, b = b, a
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO conversations (participant_a, participant_b, last_message_id, updated_at)
			VALUES (?, ?, ?, ?)
		`, a, b, lastMessageID, at); err != nil {
			return fmt.Errorf("seed: insert conversation: %w", err)
		}
		return nil
	}

	// Conversation 1: sarah and tom about the synth listing.
	if _, _, err := insertMessage(sarah, tom, "Hi! Is the synth still under warranty?", true, 50*time.Hour); err != nil {
		return false, err
	}
	if _, _, err := insertMessage(tom, sarah, "No warranty, but I can demo it on a call if you like.", true, 49*time.Hour); err != nil {
		return false, err
	}
	lastMsg1, at1, err := insertMessage(tom, sarah, "Also happy to ship it double-boxed.", false, 48*time.Hour)
	if err != nil {
		return false, err
	}
	if err := insertConversation(sarah, tom, lastMsg1, at1); err != nil {
		return false, err
	}

	// Conversation 2: mike and carlos about the rookie card.
	if _, _, err := insertMessage(carlos, mike, "Saw your bid on the card. Nice taste!", true, 27*time.Hour); err != nil {
		return false, err
	}
	lastMsg2, at2, err := insertMessage(mike, carlos, "Thanks! Let me know if you list more from that set.", false, 20*time.Hour)
	if err != nil {
		return false, err
	}
	if err := insertConversation(mike, carlos, lastMsg2, at2); err != nil {
		return false, err
	}

	for _, l := range []struct {
		user   int64
		prompt string
		result string
		typ    string
	}{
		{sarah, "product photo of a walnut sideboard in warm light", "https://images.unsplash.com/photo-1555041469-a586c61ea9bc", "image"},
		{lena, "write a listing description for an abstract painting", "Introducing \"write a listing description for an abstract painting\" - a one-of-a-kind piece that commands attention.", "text"},
		{nina, "runway video of a suede jacket", "Video generation is coming soon. Your prompt has been saved.", "video"},
	} {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO prompt_logs (user_id, prompt, result, type, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, l.user, l.prompt, l.result, l.typ, now.AddDate(0, 0, -1)); err != nil {
			return false, fmt.Errorf("seed: insert prompt log: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("seed: commit: %w", err)
	}
	return true, nil
}

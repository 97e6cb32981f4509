package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"socialbid/internal/domain"
)

type BidRepo struct {
	db *sql.DB
}

func NewBidRepo(db *sql.DB) *BidRepo {
	return &BidRepo{db: db}
}

var _ domain.BidRepository = (*BidRepo)(nil)

func (r *BidRepo) Create(ctx context.Context, b *domain.Bid) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO bids (auction_id, user_id, amount, created_at)
		VALUES (?, ?, ?, ?)
	`, b.AuctionID, b.UserID, b.Amount, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert bid: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	b.ID = id
	return nil
}

// ListForAuction returns the auction's bid history, newest first.
func (r *BidRepo) ListForAuction(ctx context.Context, auctionID int64) ([]*domain.Bid, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, auction_id, user_id, amount, created_at
		FROM bids
		WHERE auction_id = ?
		ORDER BY created_at DESC, id DESC
	`, auctionID)
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}
	defer rows.Close()

	var res []*domain.Bid
	for rows.Next() {
		b := &domain.Bid{}
		if err := rows.Scan(
			&b.ID,
			&b.AuctionID,
			&b.UserID,
			&b.Amount,
			&b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan bid: %w", err)
		}
		res = append(res, b)
	}
	return res, rows.Err()
}

func (r *BidRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bids`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count bids: %w", err)
	}
	return n, nil
}

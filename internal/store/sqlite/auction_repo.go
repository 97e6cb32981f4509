package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"socialbid/internal/domain"
)

type AuctionRepo struct {
	db *sql.DB
}

func NewAuctionRepo(db *sql.DB) *AuctionRepo {
	return &AuctionRepo{db: db}
}

var _ domain.AuctionRepository = (*AuctionRepo)(nil)

const auctionColumns = `id, title, description, images, current_bid, starting_bid, reserve_price,
	seller_id, category, condition, start_date, end_date, status, featured, watch_count, created_at`

func (r *AuctionRepo) Create(ctx context.Context, a *domain.Auction) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	images, err := encodeImages(a.Images)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO auctions (title, description, images, current_bid, starting_bid, reserve_price,
			seller_id, category, condition, start_date, end_date, status, featured, watch_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := r.db.ExecContext(ctx, query,
		a.Title, a.Description, images, a.CurrentBid, a.StartingBid, a.ReservePrice,
		a.SellerID, a.Category, a.Condition, a.StartDate, a.EndDate, a.Status, a.Featured, a.WatchCount, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert auction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	a.ID = id
	return nil
}

func (r *AuctionRepo) GetByID(ctx context.Context, id int64) (*domain.Auction, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+auctionColumns+` FROM auctions WHERE id = ?`, id)
	a, err := scanAuction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get auction: %w", err)
	}
	return a, nil
}

// List applies the filters conjunctively, then the requested sort. Every call
// re-reads current state.
func (r *AuctionRepo) List(ctx context.Context, f domain.AuctionFilter) ([]*domain.Auction, error) {
	var conds []string
	var args []any

	if f.Category != nil {
		conds = append(conds, "category = ?")
		args = append(args, *f.Category)
	}
	if f.Status != nil {
		conds = append(conds, "status = ?")
		args = append(args, *f.Status)
	}
	if f.Featured != nil {
		conds = append(conds, "featured = ?")
		args = append(args, *f.Featured)
	}
	if f.MinPrice != nil {
		conds = append(conds, "current_bid >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		conds = append(conds, "current_bid <= ?")
		args = append(args, *f.MaxPrice)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		conds = append(conds, "(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)")
		args = append(args, pattern, pattern)
	}

	query := `SELECT ` + auctionColumns + ` FROM auctions`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	switch f.Sort {
	case domain.SortEndingSoon:
		query += " ORDER BY end_date ASC"
	case domain.SortPriceAsc:
		query += " ORDER BY current_bid ASC"
	case domain.SortPriceDesc:
		query += " ORDER BY current_bid DESC"
	default:
		query += " ORDER BY created_at DESC, id DESC"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}
	defer rows.Close()

	var res []*domain.Auction
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan auction: %w", err)
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

// PlaceBid inserts the bid and raises current_bid in a single transaction.
// The UPDATE carries a current_bid < amount guard, so two interleaved bids
// can never both land against the same stale value.
func (r *AuctionRepo) PlaceBid(ctx context.Context, b *domain.Bid) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE auctions SET current_bid = ? WHERE id = ? AND current_bid < ?
	`, b.Amount, b.AuctionID, b.Amount)
	if err != nil {
		return fmt.Errorf("raise current bid: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if aff == 0 {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM auctions WHERE id = ?`, b.AuctionID).Scan(&exists)
		if err == sql.ErrNoRows {
			return domain.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("check auction: %w", err)
		}
		return domain.ErrInvalidBid
	}

	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	ins, err := tx.ExecContext(ctx, `
		INSERT INTO bids (auction_id, user_id, amount, created_at)
		VALUES (?, ?, ?, ?)
	`, b.AuctionID, b.UserID, b.Amount, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert bid: %w", err)
	}
	id, err := ins.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	b.ID = id

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *AuctionRepo) AdjustWatchCount(ctx context.Context, id int64, delta int) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE auctions
		SET watch_count = CASE WHEN watch_count + ? < 0 THEN 0 ELSE watch_count + ? END
		WHERE id = ?
	`, delta, delta, id)
	if err != nil {
		return 0, fmt.Errorf("adjust watch count: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	if aff == 0 {
		return 0, domain.ErrNotFound
	}

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT watch_count FROM auctions WHERE id = ?`, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("read watch count: %w", err)
	}
	return count, nil
}

func (r *AuctionRepo) SetStatus(ctx context.Context, id int64, status domain.AuctionStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE auctions SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if aff == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AuctionRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM auctions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count auctions: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAuction(row rowScanner) (*domain.Auction, error) {
	a := &domain.Auction{}
	var images string
	if err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Description,
		&images,
		&a.CurrentBid,
		&a.StartingBid,
		&a.ReservePrice,
		&a.SellerID,
		&a.Category,
		&a.Condition,
		&a.StartDate,
		&a.EndDate,
		&a.Status,
		&a.Featured,
		&a.WatchCount,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(images), &a.Images); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}
	return a, nil
}

func encodeImages(images []string) (string, error) {
	if images == nil {
		images = []string{}
	}
	b, err := json.Marshal(images)
	if err != nil {
		return "", fmt.Errorf("encode images: %w", err)
	}
	return string(b), nil
}

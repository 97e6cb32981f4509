package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"socialbid/internal/domain"
)

type MessageRepo struct {
	db *sql.DB
}

func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

var _ domain.MessageRepository = (*MessageRepo)(nil)

func (r *MessageRepo) Create(ctx context.Context, m *domain.Message) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (sender_id, receiver_id, content, is_read, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, m.SenderID, m.ReceiverID, m.Content, m.Read, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	m.ID = id
	return nil
}

// ListBetween returns all messages exchanged between the two users in either
// direction, oldest first. The thread is the pair, not a conversation id.
func (r *MessageRepo) ListBetween(ctx context.Context, userA, userB int64) ([]*domain.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, sender_id, receiver_id, content, is_read, created_at
		FROM messages
		WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)
		ORDER BY created_at ASC, id ASC
	`, userA, userB, userB, userA)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var res []*domain.Message
	for rows.Next() {
		m := &domain.Message{}
		if err := rows.Scan(
			&m.ID,
			&m.SenderID,
			&m.ReceiverID,
			&m.Content,
			&m.Read,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

func (r *MessageRepo) MarkReadFrom(ctx context.Context, readerID, senderID int64) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE messages SET is_read = 1
		WHERE receiver_id = ? AND sender_id = ? AND is_read = 0
	`, readerID, senderID)
	if err != nil {
		return 0, fmt.Errorf("mark read: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(aff), nil
}

func (r *MessageRepo) CountUnreadFrom(ctx context.Context, receiverID, senderID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM messages
		WHERE receiver_id = ? AND sender_id = ? AND is_read = 0
	`, receiverID, senderID).Scan(&n)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return n, nil
}

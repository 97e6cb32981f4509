package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"socialbid/internal/domain"
)

type ConversationRepo struct {
	db *sql.DB
}

func NewConversationRepo(db *sql.DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

var _ domain.ConversationRepository = (*ConversationRepo)(nil)

// orderedPair normalizes an unordered participant pair so that the smaller
// id always lands in participant_a. Lookups and the UNIQUE constraint both
// depend on this.
func orderedPair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

func (r *ConversationRepo) Create(ctx context.Context, c *domain.Conversation) error {
	c.ParticipantA, c.ParticipantB = orderedPair(c.ParticipantA, c.ParticipantB)
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO conversations (participant_a, participant_b, last_message_id, updated_at)
		VALUES (?, ?, ?, ?)
	`, c.ParticipantA, c.ParticipantB, c.LastMessageID, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert conversation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	c.ID = id
	return nil
}

func (r *ConversationRepo) GetByID(ctx context.Context, id int64) (*domain.Conversation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, participant_a, participant_b, last_message_id, updated_at
		FROM conversations
		WHERE id = ?
	`, id)
	return scanConversation(row)
}

func (r *ConversationRepo) FindByParticipants(ctx context.Context, userA, userB int64) (*domain.Conversation, error) {
	a, b := orderedPair(userA, userB)
	row := r.db.QueryRowContext(ctx, `
		SELECT id, participant_a, participant_b, last_message_id, updated_at
		FROM conversations
		WHERE participant_a = ? AND participant_b = ?
	`, a, b)
	return scanConversation(row)
}

func (r *ConversationRepo) ListForUser(ctx context.Context, userID int64) ([]*domain.Conversation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, participant_a, participant_b, last_message_id, updated_at
		FROM conversations
		WHERE participant_a = ? OR participant_b = ?
		ORDER BY updated_at DESC, id DESC
	`, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	var res []*domain.Conversation
	for rows.Next() {
		c := &domain.Conversation{}
		if err := rows.Scan(
			&c.ID,
			&c.ParticipantA,
			&c.ParticipantB,
			&c.LastMessageID,
			&c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (r *ConversationRepo) SetLastMessage(ctx context.Context, id, messageID int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE conversations SET last_message_id = ?, updated_at = ? WHERE id = ?
	`, messageID, at, id)
	if err != nil {
		return fmt.Errorf("set last message: %w", err)
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

func scanConversation(row *sql.Row) (*domain.Conversation, error) {
	c := &domain.Conversation{}
	err := row.Scan(
		&c.ID,
		&c.ParticipantA,
		&c.ParticipantB,
		&c.LastMessageID,
		&c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan conversation: %w", err)
	}
	return c, nil
}

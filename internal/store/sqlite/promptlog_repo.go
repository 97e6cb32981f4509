package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"socialbid/internal/domain"
)

type PromptLogRepo struct {
	db *sql.DB
}

func NewPromptLogRepo(db *sql.DB) *PromptLogRepo {
	return &PromptLogRepo{db: db}
}

var _ domain.PromptLogRepository = (*PromptLogRepo)(nil)

func (r *PromptLogRepo) Create(ctx context.Context, l *domain.PromptLog) error {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO prompt_logs (user_id, prompt, result, type, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, l.UserID, l.Prompt, l.Result, l.Type, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert prompt log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	l.ID = id
	return nil
}

func (r *PromptLogRepo) List(ctx context.Context, limit int) ([]*domain.PromptLog, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, prompt, result, type, created_at
		FROM prompt_logs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list prompt logs: %w", err)
	}
	defer rows.Close()

	var res []*domain.PromptLog
	for rows.Next() {
		l := &domain.PromptLog{}
		if err := rows.Scan(
			&l.ID,
			&l.UserID,
			&l.Prompt,
			&l.Result,
			&l.Type,
			&l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan prompt log: %w", err)
		}
		res = append(res, l)
	}
	return res, rows.Err()
}

func (r *PromptLogRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM prompt_logs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count prompt logs: %w", err)
	}
	return n, nil
}

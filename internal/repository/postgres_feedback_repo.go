package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tanishqswami/fit-hub-management-system/internal/model"
)

// PostgresFeedbackRepo はPostgreSQLを使用したフィードバックリポジトリ。
type PostgresFeedbackRepo struct {
	db *sql.DB
}

// NewPostgresFeedbackRepo はPostgresFeedbackRepoを生成する。
func NewPostgresFeedbackRepo(db *sql.DB) *PostgresFeedbackRepo {
	return &PostgresFeedbackRepo{db: db}
}

// Create はフィードバックを作成する。
func (r *PostgresFeedbackRepo) Create(ctx context.Context, feedback *model.Feedback) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO feedback (id, member_id, rating, comment, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		feedback.ID, feedback.MemberID, feedback.Rating, feedback.Comment, feedback.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	return nil
}

// ListByMemberID は指定会員のフィードバックを作成日時降順で返す。
func (r *PostgresFeedbackRepo) ListByMemberID(ctx context.Context, memberID string) ([]*model.Feedback, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, member_id, rating, comment, created_at
		 FROM feedback WHERE member_id = $1
		 ORDER BY created_at DESC`,
		memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback by member: %w", err)
	}
	defer rows.Close()

	return scanFeedback(rows)
}

// List は全フィードバックを作成日時降順でlimit件まで返す。
func (r *PostgresFeedbackRepo) List(ctx context.Context, limit int) ([]*model.Feedback, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, member_id, rating, comment, created_at
		 FROM feedback
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	return scanFeedback(rows)
}

// scanFeedback はフィードバックの行セットをスキャンする。
func scanFeedback(rows *sql.Rows) ([]*model.Feedback, error) {
	var items []*model.Feedback
	for rows.Next() {
		f := &model.Feedback{}
		if err := rows.Scan(&f.ID, &f.MemberID, &f.Rating, &f.Comment, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feedback: %w", err)
	}
	return items, nil
}

// compile-time interface check
var _ FeedbackRepository = (*PostgresFeedbackRepo)(nil)

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tanishqswami/fit-hub-management-system/internal/model"
)

// PostgresMembershipRepo はPostgreSQLを使用した会員プランリポジトリ。
type PostgresMembershipRepo struct {
	db *sql.DB
}

// NewPostgresMembershipRepo はPostgresMembershipRepoを生成する。
func NewPostgresMembershipRepo(db *sql.DB) *PostgresMembershipRepo {
	return &PostgresMembershipRepo{db: db}
}

// FindByID は指定IDのプランを取得する。見つからない場合はnilを返す。
func (r *PostgresMembershipRepo) FindByID(ctx context.Context, id string) (*model.Membership, error) {
	m := &model.Membership{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, duration_months, price, created_at
		 FROM memberships WHERE id = $1`,
		id,
	).Scan(&m.ID, &m.Name, &m.DurationMonths, &m.Price, &m.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find membership by ID: %w", err)
	}

	return m, nil
}

// Create はプランを作成する。
func (r *PostgresMembershipRepo) Create(ctx context.Context, membership *model.Membership) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO memberships (id, name, duration_months, price, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		membership.ID, membership.Name, membership.DurationMonths, membership.Price, membership.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert membership: %w", err)
	}
	return nil
}

// List は全プランを作成日時昇順で返す。
func (r *PostgresMembershipRepo) List(ctx context.Context) ([]*model.Membership, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, duration_months, price, created_at
		 FROM memberships ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []*model.Membership
	for rows.Next() {
		m := &model.Membership{}
		if err := rows.Scan(&m.ID, &m.Name, &m.DurationMonths, &m.Price, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate memberships: %w", err)
	}

	return memberships, nil
}

// Update はプラン情報を更新する。
func (r *PostgresMembershipRepo) Update(ctx context.Context, membership *model.Membership) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE memberships SET name = $2, duration_months = $3, price = $4 WHERE id = $1`,
		membership.ID, membership.Name, membership.DurationMonths, membership.Price,
	)
	if err != nil {
		return fmt.Errorf("failed to update membership: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("membership not found: %s", membership.ID)
	}
	return nil
}

// DeleteByID は指定IDのプランを削除する。
// 契約中の会員のmembership_idはON DELETE SET NULLでクリアされる。
func (r *PostgresMembershipRepo) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM memberships WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("membership not found: %s", id)
	}
	return nil
}

// compile-time interface check
var _ MembershipRepository = (*PostgresMembershipRepo)(nil)

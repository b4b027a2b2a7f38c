package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tanishqswami/fit-hub-management-system/internal/model"
)

// PostgresPaymentRepo はPostgreSQLを使用した支払いリポジトリ。
type PostgresPaymentRepo struct {
	db *sql.DB
}

// NewPostgresPaymentRepo はPostgresPaymentRepoを生成する。
func NewPostgresPaymentRepo(db *sql.DB) *PostgresPaymentRepo {
	return &PostgresPaymentRepo{db: db}
}

// Create は支払い記録を作成する。
func (r *PostgresPaymentRepo) Create(ctx context.Context, payment *model.Payment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO payments (id, member_id, amount, method, paid_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		payment.ID, payment.MemberID, payment.Amount, payment.Method, payment.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// ListByMemberID は指定会員の支払い履歴を支払日時降順で返す。
func (r *PostgresPaymentRepo) ListByMemberID(ctx context.Context, memberID string) ([]*model.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, member_id, amount, method, paid_at
		 FROM payments WHERE member_id = $1
		 ORDER BY paid_at DESC`,
		memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments by member: %w", err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

// ListRecent は直近の支払いをlimit件まで支払日時降順で返す。
func (r *PostgresPaymentRepo) ListRecent(ctx context.Context, limit int) ([]*model.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, member_id, amount, method, paid_at
		 FROM payments
		 ORDER BY paid_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent payments: %w", err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

// TotalRevenue は全支払いの合計金額を返す。支払いが無い場合は0を返す。
func (r *PostgresPaymentRepo) TotalRevenue(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments`,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum payments: %w", err)
	}
	return total, nil
}

// scanPayments は支払いの行セットをスキャンする。
func scanPayments(rows *sql.Rows) ([]*model.Payment, error) {
	var payments []*model.Payment
	for rows.Next() {
		p := &model.Payment{}
		if err := rows.Scan(&p.ID, &p.MemberID, &p.Amount, &p.Method, &p.PaidAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

// compile-time interface check
var _ PaymentRepository = (*PostgresPaymentRepo)(nil)

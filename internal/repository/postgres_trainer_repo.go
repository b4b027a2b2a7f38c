package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tanishqswami/fit-hub-management-system/internal/model"
)

// PostgresTrainerRepo はPostgreSQLを使用したトレーナーリポジトリ。
type PostgresTrainerRepo struct {
	db Queryer
}

// NewPostgresTrainerRepo はPostgresTrainerRepoを生成する。
// dbには*sql.DBのほか、トランザクション内で使う場合は*sql.Txを渡せる。
func NewPostgresTrainerRepo(db Queryer) *PostgresTrainerRepo {
	return &PostgresTrainerRepo{db: db}
}

// FindByID は指定IDのトレーナーを取得する。見つからない場合はnilを返す。
func (r *PostgresTrainerRepo) FindByID(ctx context.Context, id string) (*model.Trainer, error) {
	t := &model.Trainer{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, specialization, phone, created_at
		 FROM trainers WHERE id = $1`,
		id,
	).Scan(&t.ID, &t.UserID, &t.Specialization, &t.Phone, &t.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find trainer by ID: %w", err)
	}

	return t, nil
}

// FindByUserID はユーザーIDでトレーナーを検索する。見つからない場合はnilを返す。
func (r *PostgresTrainerRepo) FindByUserID(ctx context.Context, userID string) (*model.Trainer, error) {
	t := &model.Trainer{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, specialization, phone, created_at
		 FROM trainers WHERE user_id = $1`,
		userID,
	).Scan(&t.ID, &t.UserID, &t.Specialization, &t.Phone, &t.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find trainer by user ID: %w", err)
	}

	return t, nil
}

// Create はトレーナーを作成する。
func (r *PostgresTrainerRepo) Create(ctx context.Context, trainer *model.Trainer) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO trainers (id, user_id, specialization, phone, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		trainer.ID, trainer.UserID, trainer.Specialization, trainer.Phone, trainer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trainer: %w", err)
	}
	return nil
}

// Update はトレーナーの専門分野・電話番号を更新する。
func (r *PostgresTrainerRepo) Update(ctx context.Context, trainer *model.Trainer) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE trainers SET specialization = $2, phone = $3 WHERE id = $1`,
		trainer.ID, trainer.Specialization, trainer.Phone,
	)
	if err != nil {
		return fmt.Errorf("failed to update trainer: %w", err)
	}
	return nil
}

// List は全トレーナーを作成日時昇順で返す。
func (r *PostgresTrainerRepo) List(ctx context.Context) ([]*model.Trainer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, specialization, phone, created_at
		 FROM trainers ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trainers: %w", err)
	}
	defer rows.Close()

	var trainers []*model.Trainer
	for rows.Next() {
		t := &model.Trainer{}
		if err := rows.Scan(&t.ID, &t.UserID, &t.Specialization, &t.Phone, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trainer: %w", err)
		}
		trainers = append(trainers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trainers: %w", err)
	}

	return trainers, nil
}

// ListWithMemberCounts は全トレーナーを担当会員数付きで会員数降順で返す。
// 先頭要素が「担当会員数最多のトレーナー」になる。
func (r *PostgresTrainerRepo) ListWithMemberCounts(ctx context.Context) ([]TrainerWithMemberCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.user_id, t.specialization, t.phone, t.created_at,
		        u.name, COUNT(m.id) AS member_count
		 FROM trainers t
		 JOIN users u ON u.id = t.user_id
		 LEFT JOIN members m ON m.trainer_id = t.id
		 GROUP BY t.id, t.user_id, t.specialization, t.phone, t.created_at, u.name
		 ORDER BY member_count DESC, t.created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trainers with member counts: %w", err)
	}
	defer rows.Close()

	var result []TrainerWithMemberCount
	for rows.Next() {
		var twc TrainerWithMemberCount
		if err := rows.Scan(
			&twc.ID, &twc.UserID, &twc.Specialization, &twc.Phone, &twc.CreatedAt,
			&twc.TrainerName, &twc.MemberCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan trainer with member count: %w", err)
		}
		result = append(result, twc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trainers with member counts: %w", err)
	}

	return result, nil
}

// compile-time interface check
var _ TrainerRepository = (*PostgresTrainerRepo)(nil)

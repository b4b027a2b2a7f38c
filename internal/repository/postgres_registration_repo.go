package repository

import (
	"context"
	"fmt"

	"github.com/tanishqswami/fit-hub-management-system/internal/model"
)

// PostgresRegistrationRepo はPostgreSQLを使用したユーザー登録リポジトリ。
// サインアップ時のユーザーとロール別レコードの作成を単一トランザクションで行う。
type PostgresRegistrationRepo struct {
	db TxBeginner
}

// NewPostgresRegistrationRepo はPostgresRegistrationRepoを生成する。
func NewPostgresRegistrationRepo(db TxBeginner) *PostgresRegistrationRepo {
	return &PostgresRegistrationRepo{db: db}
}

var _ RegistrationRepository = (*PostgresRegistrationRepo)(nil)

// CreateUserWithRole はユーザーとロール別レコードを原子的に作成する。
// いずれかのINSERTが失敗した場合は全体をロールバックし、
// サインイン可能な孤児ユーザーを残さない。
func (r *PostgresRegistrationRepo) CreateUserWithRole(ctx context.Context, user *model.User, member *model.Member, trainer *model.Trainer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := NewPostgresUserRepo(tx).Create(ctx, user); err != nil {
		return err
	}
	if member != nil {
		if err := NewPostgresMemberRepo(tx).Create(ctx, member); err != nil {
			return err
		}
	}
	if trainer != nil {
		if err := NewPostgresTrainerRepo(tx).Create(ctx, trainer); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tanishqswami/fit-hub-management-system/internal/model"
)

// PostgresWorkoutPlanRepo はPostgreSQLを使用したトレーニング計画リポジトリ。
type PostgresWorkoutPlanRepo struct {
	db *sql.DB
}

// NewPostgresWorkoutPlanRepo はPostgresWorkoutPlanRepoを生成する。
func NewPostgresWorkoutPlanRepo(db *sql.DB) *PostgresWorkoutPlanRepo {
	return &PostgresWorkoutPlanRepo{db: db}
}

// FindByID は指定IDの計画を取得する。見つからない場合はnilを返す。
func (r *PostgresWorkoutPlanRepo) FindByID(ctx context.Context, id string) (*model.WorkoutPlan, error) {
	p := &model.WorkoutPlan{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, member_id, trainer_id, title, description, created_at
		 FROM workout_plans WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.MemberID, &p.TrainerID, &p.Title, &p.Description, &p.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find workout plan by ID: %w", err)
	}

	return p, nil
}

// Create は計画を作成する。
func (r *PostgresWorkoutPlanRepo) Create(ctx context.Context, plan *model.WorkoutPlan) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO workout_plans (id, member_id, trainer_id, title, description, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		plan.ID, plan.MemberID, plan.TrainerID, plan.Title, plan.Description, plan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert workout plan: %w", err)
	}
	return nil
}

// ListByMemberID は指定会員の計画を作成日時降順で返す。
func (r *PostgresWorkoutPlanRepo) ListByMemberID(ctx context.Context, memberID string) ([]*model.WorkoutPlan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, member_id, trainer_id, title, description, created_at
		 FROM workout_plans WHERE member_id = $1
		 ORDER BY created_at DESC`,
		memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list workout plans by member: %w", err)
	}
	defer rows.Close()

	return scanWorkoutPlans(rows)
}

// ListByTrainerID は指定トレーナーの計画を作成日時降順で返す。
func (r *PostgresWorkoutPlanRepo) ListByTrainerID(ctx context.Context, trainerID string) ([]*model.WorkoutPlan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, member_id, trainer_id, title, description, created_at
		 FROM workout_plans WHERE trainer_id = $1
		 ORDER BY created_at DESC`,
		trainerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list workout plans by trainer: %w", err)
	}
	defer rows.Close()

	return scanWorkoutPlans(rows)
}

// DeleteByID は指定IDの計画を削除する。
func (r *PostgresWorkoutPlanRepo) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM workout_plans WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete workout plan: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("workout plan not found: %s", id)
	}
	return nil
}

// scanWorkoutPlans は計画の行セットをスキャンする。
func scanWorkoutPlans(rows *sql.Rows) ([]*model.WorkoutPlan, error) {
	var plans []*model.WorkoutPlan
	for rows.Next() {
		p := &model.WorkoutPlan{}
		if err := rows.Scan(&p.ID, &p.MemberID, &p.TrainerID, &p.Title, &p.Description, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan workout plan: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workout plans: %w", err)
	}
	return plans, nil
}

// compile-time interface check
var _ WorkoutPlanRepository = (*PostgresWorkoutPlanRepo)(nil)

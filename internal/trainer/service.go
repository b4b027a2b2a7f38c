// Package trainer はトレーナー向けダッシュボードのビジネスロジックを提供する。
package trainer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tanishqswami/fit-hub-management-system/internal/model"
	"github.com/tanishqswami/fit-hub-management-system/internal/repository"
)

// Service はトレーナーに関するビジネスロジックを提供する。
type Service struct {
	trainerRepo repository.TrainerRepository
	memberRepo  repository.MemberRepository
	planRepo    repository.WorkoutPlanRepository
}

// NewService はServiceを生成する。
func NewService(
	trainerRepo repository.TrainerRepository,
	memberRepo repository.MemberRepository,
	planRepo repository.WorkoutPlanRepository,
) *Service {
	return &Service{
		trainerRepo: trainerRepo,
		memberRepo:  memberRepo,
		planRepo:    planRepo,
	}
}

// findTrainer はユーザーIDからトレーナーレコードを取得する。
// トレーナーレコードが存在しない場合はTRAINER_NOT_FOUNDエラーを返す。
func (s *Service) findTrainer(ctx context.Context, userID string) (*model.Trainer, error) {
	trainer, err := s.trainerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find trainer: %w", err)
	}
	if trainer == nil {
		return nil, model.NewTrainerNotFoundError(userID)
	}
	return trainer, nil
}

// AssignedMembers はトレーナーに割り当てられた会員の一覧を返す。
func (s *Service) AssignedMembers(ctx context.Context, userID string) ([]repository.MemberWithUser, error) {
	trainer, err := s.findTrainer(ctx, userID)
	if err != nil {
		return nil, err
	}

	members, err := s.memberRepo.ListByTrainerID(ctx, trainer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned members: %w", err)
	}
	return members, nil
}

// CreateWorkoutPlan は担当会員向けのトレーニング計画を作成する。
// 担当外の会員を指定した場合はMEMBER_NOT_FOUNDエラーを返す。
func (s *Service) CreateWorkoutPlan(ctx context.Context, userID, memberID, title, description string) (*model.WorkoutPlan, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, model.NewValidationError("計画のタイトルは必須です")
	}

	trainer, err := s.findTrainer(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 担当会員かどうかを確認する
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	if member == nil || member.TrainerID != trainer.ID {
		return nil, model.NewMemberNotFoundError(memberID)
	}

	plan := &model.WorkoutPlan{
		ID:          uuid.New().String(),
		MemberID:    member.ID,
		TrainerID:   trainer.ID,
		Title:       title,
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now(),
	}
	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to create workout plan: %w", err)
	}

	slog.Info("workout plan created",
		slog.String("trainer_id", trainer.ID),
		slog.String("member_id", member.ID),
		slog.String("plan_id", plan.ID),
	)
	return plan, nil
}

// WorkoutPlans はトレーナーが作成したトレーニング計画の一覧を返す。
func (s *Service) WorkoutPlans(ctx context.Context, userID string) ([]*model.WorkoutPlan, error) {
	trainer, err := s.findTrainer(ctx, userID)
	if err != nil {
		return nil, err
	}

	plans, err := s.planRepo.ListByTrainerID(ctx, trainer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workout plans: %w", err)
	}
	return plans, nil
}

// DeleteWorkoutPlan はトレーニング計画を削除する。
// 自分が作成した計画のみ削除できる。
func (s *Service) DeleteWorkoutPlan(ctx context.Context, userID, planID string) error {
	trainer, err := s.findTrainer(ctx, userID)
	if err != nil {
		return err
	}

	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return fmt.Errorf("failed to find workout plan: %w", err)
	}
	if plan == nil || plan.TrainerID != trainer.ID {
		return model.NewWorkoutPlanNotFoundError(planID)
	}

	if err := s.planRepo.DeleteByID(ctx, planID); err != nil {
		return fmt.Errorf("failed to delete workout plan: %w", err)
	}

	slog.Info("workout plan deleted",
		slog.String("trainer_id", trainer.ID),
		slog.String("plan_id", planID),
	)
	return nil
}

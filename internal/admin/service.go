// Package admin は管理者向けダッシュボードと管理操作のビジネスロジックを提供する。
package admin

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

// DashboardStats は管理者ダッシュボードに表示する集計情報。
// 一部のデータ取得に失敗しても、該当フィールドをゼロ値のままにして
// ダッシュボード全体は表示する。
type DashboardStats struct {
	MemberCount    int                                 `json:"member_count"`
	TrainerCount   int                                 `json:"trainer_count"`
	TotalRevenue   int64                               `json:"total_revenue"`
	TopTrainer     *repository.TrainerWithMemberCount  `json:"top_trainer,omitempty"`
	RecentPayments []*model.Payment                    `json:"recent_payments"`
	RecentFeedback []*model.Feedback                   `json:"recent_feedback"`
	TrainerLoads   []repository.TrainerWithMemberCount `json:"trainer_loads"`
}

// Service は管理者に関するビジネスロジックを提供する。
type Service struct {
	userRepo       repository.UserRepository
	sessionRepo    repository.SessionRepository
	memberRepo     repository.MemberRepository
	trainerRepo    repository.TrainerRepository
	membershipRepo repository.MembershipRepository
	paymentRepo    repository.PaymentRepository
	feedbackRepo   repository.FeedbackRepository
}

// NewService はServiceを生成する。
func NewService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	memberRepo repository.MemberRepository,
	trainerRepo repository.TrainerRepository,
	membershipRepo repository.MembershipRepository,
	paymentRepo repository.PaymentRepository,
	feedbackRepo repository.FeedbackRepository,
) *Service {
	return &Service{
		userRepo:       userRepo,
		sessionRepo:    sessionRepo,
		memberRepo:     memberRepo,
		trainerRepo:    trainerRepo,
		membershipRepo: membershipRepo,
		paymentRepo:    paymentRepo,
		feedbackRepo:   feedbackRepo,
	}
}

// Dashboard は管理者ダッシュボードの集計情報を組み立てる。
// 個別の集計に失敗した場合はログに記録し、該当フィールドはゼロ値のまま返す。
func (s *Service) Dashboard(ctx context.Context) *DashboardStats {
	stats := &DashboardStats{
		RecentPayments: []*model.Payment{},
		RecentFeedback: []*model.Feedback{},
		TrainerLoads:   []repository.TrainerWithMemberCount{},
	}

	if count, err := s.memberRepo.Count(ctx); err != nil {
		slog.Error("failed to count members", slog.String("error", err.Error()))
	} else {
		stats.MemberCount = count
	}

	if revenue, err := s.paymentRepo.TotalRevenue(ctx); err != nil {
		slog.Error("failed to sum revenue", slog.String("error", err.Error()))
	} else {
		stats.TotalRevenue = revenue
	}

	if loads, err := s.trainerRepo.ListWithMemberCounts(ctx); err != nil {
		slog.Error("failed to list trainer loads", slog.String("error", err.Error()))
	} else {
		stats.TrainerCount = len(loads)
		stats.TrainerLoads = loads
		// 担当会員数の降順で返るため、先頭がトップトレーナー
		if len(loads) > 0 && loads[0].MemberCount > 0 {
			top := loads[0]
			stats.TopTrainer = &top
		}
	}

	if payments, err := s.paymentRepo.ListRecent(ctx, 10); err != nil {
		slog.Error("failed to list recent payments", slog.String("error", err.Error()))
	} else {
		stats.RecentPayments = payments
	}

	if feedback, err := s.feedbackRepo.List(ctx, 10); err != nil {
		slog.Error("failed to list recent feedback", slog.String("error", err.Error()))
	} else {
		stats.RecentFeedback = feedback
	}

	return stats
}

// ListUsers は全ユーザーの一覧を返す。
func (s *Service) ListUsers(ctx context.Context) ([]*model.Profile, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	profiles := make([]*model.Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Profile())
	}
	return profiles, nil
}

// DeleteUser はユーザーを削除する。
// セッションを全て破棄した後にユーザーを削除する。
// 関連レコード（members, trainers等）はデータベースのカスケードで削除される。
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return model.NewUserNotFoundError()
	}

	// 1. 全セッションを破棄する
	if err := s.sessionRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	// 2. ユーザーを削除する
	if err := s.userRepo.DeleteByID(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	slog.Info("user deleted",
		slog.String("user_id", userID),
		slog.String("role", string(user.Role)),
	)
	return nil
}

// ListMembers は全会員をユーザー情報付きで返す。
func (s *Service) ListMembers(ctx context.Context) ([]repository.MemberWithUser, error) {
	members, err := s.memberRepo.ListWithUserInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// ListTrainers は全トレーナーを担当会員数付きで返す。
func (s *Service) ListTrainers(ctx context.Context) ([]repository.TrainerWithMemberCount, error) {
	trainers, err := s.trainerRepo.ListWithMemberCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list trainers: %w", err)
	}
	return trainers, nil
}

// UpdateTrainer はトレーナーの専門分野・電話番号を更新する。
// トレーナーが存在しない場合はTRAINER_NOT_FOUNDエラーを返す。
func (s *Service) UpdateTrainer(ctx context.Context, trainerID, specialization, phone string) (*model.Trainer, error) {
	trainer, err := s.trainerRepo.FindByID(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find trainer: %w", err)
	}
	if trainer == nil {
		return nil, model.NewTrainerNotFoundError(trainerID)
	}

	trainer.Specialization = strings.TrimSpace(specialization)
	trainer.Phone = strings.TrimSpace(phone)

	if err := s.trainerRepo.Update(ctx, trainer); err != nil {
		return nil, fmt.Errorf("failed to update trainer: %w", err)
	}
	return trainer, nil
}

// CreateMembershipPlan は会員プランを作成する。
func (s *Service) CreateMembershipPlan(ctx context.Context, name string, durationMonths int, price int64) (*model.Membership, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.NewValidationError("プラン名は必須です")
	}
	if durationMonths < 1 {
		return nil, model.NewValidationError("契約期間は1ヶ月以上で指定してください")
	}
	if price < 0 {
		return nil, model.NewValidationError("料金は0以上で指定してください")
	}

	plan := &model.Membership{
		ID:             uuid.New().String(),
		Name:           name,
		DurationMonths: durationMonths,
		Price:          price,
		CreatedAt:      time.Now(),
	}
	if err := s.membershipRepo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to create membership plan: %w", err)
	}

	slog.Info("membership plan created",
		slog.String("plan_id", plan.ID),
		slog.String("name", name),
	)
	return plan, nil
}

// ListMembershipPlans は会員プランの一覧を返す。
func (s *Service) ListMembershipPlans(ctx context.Context) ([]*model.Membership, error) {
	plans, err := s.membershipRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list membership plans: %w", err)
	}
	return plans, nil
}

// UpdateMembershipPlan は会員プランを更新する。
func (s *Service) UpdateMembershipPlan(ctx context.Context, planID, name string, durationMonths int, price int64) (*model.Membership, error) {
	plan, err := s.membershipRepo.FindByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to find membership plan: %w", err)
	}
	if plan == nil {
		return nil, model.NewPlanNotFoundError(planID)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.NewValidationError("プラン名は必須です")
	}
	if durationMonths < 1 {
		return nil, model.NewValidationError("契約期間は1ヶ月以上で指定してください")
	}
	if price < 0 {
		return nil, model.NewValidationError("料金は0以上で指定してください")
	}

	plan.Name = name
	plan.DurationMonths = durationMonths
	plan.Price = price

	if err := s.membershipRepo.Update(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to update membership plan: %w", err)
	}
	return plan, nil
}

// DeleteMembershipPlan は会員プランを削除する。
// プランに加入中の会員はデータベースのON DELETE SET NULLで未加入状態になる。
func (s *Service) DeleteMembershipPlan(ctx context.Context, planID string) error {
	plan, err := s.membershipRepo.FindByID(ctx, planID)
	if err != nil {
		return fmt.Errorf("failed to find membership plan: %w", err)
	}
	if plan == nil {
		return model.NewPlanNotFoundError(planID)
	}

	if err := s.membershipRepo.DeleteByID(ctx, planID); err != nil {
		return fmt.Errorf("failed to delete membership plan: %w", err)
	}

	slog.Info("membership plan deleted", slog.String("plan_id", planID))
	return nil
}

// AssignTrainer は会員に担当トレーナーを割り当てる。
func (s *Service) AssignTrainer(ctx context.Context, memberID, trainerID string) error {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return fmt.Errorf("failed to find member: %w", err)
	}
	if member == nil {
		return model.NewMemberNotFoundError(memberID)
	}

	trainer, err := s.trainerRepo.FindByID(ctx, trainerID)
	if err != nil {
		return fmt.Errorf("failed to find trainer: %w", err)
	}
	if trainer == nil {
		return model.NewTrainerNotFoundError(trainerID)
	}

	if err := s.memberRepo.AssignTrainer(ctx, memberID, trainerID); err != nil {
		return fmt.Errorf("failed to assign trainer: %w", err)
	}

	slog.Info("trainer assigned",
		slog.String("member_id", memberID),
		slog.String("trainer_id", trainerID),
	)
	return nil
}

// AssignMembership は会員に会員プランを割り当てる。
func (s *Service) AssignMembership(ctx context.Context, memberID, planID string) error {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return fmt.Errorf("failed to find member: %w", err)
	}
	if member == nil {
		return model.NewMemberNotFoundError(memberID)
	}

	plan, err := s.membershipRepo.FindByID(ctx, planID)
	if err != nil {
		return fmt.Errorf("failed to find membership plan: %w", err)
	}
	if plan == nil {
		return model.NewPlanNotFoundError(planID)
	}

	if err := s.memberRepo.AssignMembership(ctx, memberID, planID); err != nil {
		return fmt.Errorf("failed to assign membership: %w", err)
	}

	slog.Info("membership assigned",
		slog.String("member_id", memberID),
		slog.String("plan_id", planID),
	)
	return nil
}

// RecordPayment は会員の支払いを記録する。
func (s *Service) RecordPayment(ctx context.Context, memberID string, amount int64, method string) (*model.Payment, error) {
	if amount <= 0 {
		return nil, model.NewValidationError("支払い金額は1以上で指定してください")
	}

	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	if member == nil {
		return nil, model.NewMemberNotFoundError(memberID)
	}

	payment := &model.Payment{
		ID:       uuid.New().String(),
		MemberID: memberID,
		Amount:   amount,
		Method:   strings.TrimSpace(method),
		PaidAt:   time.Now(),
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	slog.Info("payment recorded",
		slog.String("member_id", memberID),
		slog.Int64("amount", amount),
	)
	return payment, nil
}

// Package member は会員向けダッシュボードのビジネスロジックを提供する。
package member

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tanishqswami/fit-hub-management-system/internal/model"
	"github.com/tanishqswami/fit-hub-management-system/internal/repository"
	"github.com/tanishqswami/fit-hub-management-system/internal/security"
)

// TrainerInfo は会員に割り当てられたトレーナーの表示情報。
type TrainerInfo struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Phone          string `json:"phone"`
}

// Overview は会員ダッシュボードのトップに表示する情報。
type Overview struct {
	Member    *model.Member     `json:"member"`
	Plan      *model.Membership `json:"plan,omitempty"`
	Trainer   *TrainerInfo      `json:"trainer,omitempty"`
	CheckedIn bool              `json:"checked_in"`
}

// AttendanceStatus はチェックイン/チェックアウト操作の結果。
type AttendanceStatus struct {
	CheckedIn  bool              `json:"checked_in"`
	Attendance *model.Attendance `json:"attendance"`
}

// Service は会員に関するビジネスロジックを提供する。
type Service struct {
	memberRepo     repository.MemberRepository
	membershipRepo repository.MembershipRepository
	trainerRepo    repository.TrainerRepository
	userRepo       repository.UserRepository
	attendanceRepo repository.AttendanceRepository
	paymentRepo    repository.PaymentRepository
	feedbackRepo   repository.FeedbackRepository
	planRepo       repository.WorkoutPlanRepository
	sanitizer      security.ContentSanitizerService
}

// NewService はServiceを生成する。
func NewService(
	memberRepo repository.MemberRepository,
	membershipRepo repository.MembershipRepository,
	trainerRepo repository.TrainerRepository,
	userRepo repository.UserRepository,
	attendanceRepo repository.AttendanceRepository,
	paymentRepo repository.PaymentRepository,
	feedbackRepo repository.FeedbackRepository,
	planRepo repository.WorkoutPlanRepository,
	sanitizer security.ContentSanitizerService,
) *Service {
	return &Service{
		memberRepo:     memberRepo,
		membershipRepo: membershipRepo,
		trainerRepo:    trainerRepo,
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		paymentRepo:    paymentRepo,
		feedbackRepo:   feedbackRepo,
		planRepo:       planRepo,
		sanitizer:      sanitizer,
	}
}

// findMember はユーザーIDから会員レコードを取得する。
// 会員レコードが存在しない場合はMEMBER_NOT_FOUNDエラーを返す。
func (s *Service) findMember(ctx context.Context, userID string) (*model.Member, error) {
	member, err := s.memberRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	if member == nil {
		return nil, model.NewMemberNotFoundError(userID)
	}
	return member, nil
}

// Overview は会員ダッシュボードの表示情報を組み立てる。
// プランやトレーナーが未割り当ての場合、該当フィールドはnilのまま返す。
func (s *Service) Overview(ctx context.Context, userID string) (*Overview, error) {
	member, err := s.findMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	overview := &Overview{Member: member}

	// 1. 会員プラン（未割り当て許容）
	if member.MembershipID != "" {
		plan, err := s.membershipRepo.FindByID(ctx, member.MembershipID)
		if err != nil {
			return nil, fmt.Errorf("failed to find membership plan: %w", err)
		}
		overview.Plan = plan
	}

	// 2. 担当トレーナー（未割り当て許容）
	if member.TrainerID != "" {
		trainer, err := s.trainerRepo.FindByID(ctx, member.TrainerID)
		if err != nil {
			return nil, fmt.Errorf("failed to find trainer: %w", err)
		}
		if trainer != nil {
			info := &TrainerInfo{
				ID:             trainer.ID,
				Specialization: trainer.Specialization,
				Phone:          trainer.Phone,
			}
			trainerUser, err := s.userRepo.FindByID(ctx, trainer.UserID)
			if err != nil {
				return nil, fmt.Errorf("failed to find trainer user: %w", err)
			}
			if trainerUser != nil {
				info.Name = trainerUser.Name
			}
			overview.Trainer = info
		}
	}

	// 3. 現在の入館状態
	open, err := s.attendanceRepo.FindOpenByMemberID(ctx, member.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check attendance: %w", err)
	}
	overview.CheckedIn = open != nil

	return overview, nil
}

// ToggleAttendance は入館状態を切り替える。
// 未完了の入館記録があればチェックアウトし、なければ新規にチェックインする。
func (s *Service) ToggleAttendance(ctx context.Context, userID string) (*AttendanceStatus, error) {
	member, err := s.findMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	open, err := s.attendanceRepo.FindOpenByMemberID(ctx, member.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find open attendance: %w", err)
	}

	now := time.Now()

	if open != nil {
		// チェックアウト
		if err := s.attendanceRepo.Close(ctx, open.ID, now); err != nil {
			return nil, fmt.Errorf("failed to check out: %w", err)
		}
		open.CheckOutAt = &now

		slog.Info("member checked out",
			slog.String("member_id", member.ID),
			slog.String("attendance_id", open.ID),
		)
		return &AttendanceStatus{CheckedIn: false, Attendance: open}, nil
	}

	// チェックイン
	attendance := &model.Attendance{
		ID:        uuid.New().String(),
		MemberID:  member.ID,
		CheckInAt: now,
	}
	if err := s.attendanceRepo.Create(ctx, attendance); err != nil {
		return nil, fmt.Errorf("failed to check in: %w", err)
	}

	slog.Info("member checked in",
		slog.String("member_id", member.ID),
		slog.String("attendance_id", attendance.ID),
	)
	return &AttendanceStatus{CheckedIn: true, Attendance: attendance}, nil
}

// AttendanceHistory は会員の入館履歴を新しい順に返す。
func (s *Service) AttendanceHistory(ctx context.Context, userID string, limit int) ([]*model.Attendance, error) {
	member, err := s.findMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 30
	}

	records, err := s.attendanceRepo.ListByMemberID(ctx, member.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}

// PaymentHistory は会員の支払い履歴を返す。
func (s *Service) PaymentHistory(ctx context.Context, userID string) ([]*model.Payment, error) {
	member, err := s.findMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.ListByMemberID(ctx, member.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// WorkoutPlans は会員に割り当てられたトレーニング計画を返す。
func (s *Service) WorkoutPlans(ctx context.Context, userID string) ([]*model.WorkoutPlan, error) {
	member, err := s.findMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	plans, err := s.planRepo.ListByMemberID(ctx, member.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workout plans: %w", err)
	}
	return plans, nil
}

// SubmitFeedback はジムへのフィードバックを登録する。
// 評価は1から5の整数のみ受け付ける。コメントはサニタイズ後に保存する。
func (s *Service) SubmitFeedback(ctx context.Context, userID string, rating int, comment string) (*model.Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, model.NewInvalidRatingError(rating)
	}

	member, err := s.findMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	clean := s.sanitizer.Sanitize(comment)
	if clean == "" {
		return nil, model.NewValidationError("コメントは必須です")
	}

	feedback := &model.Feedback{
		ID:        uuid.New().String(),
		MemberID:  member.ID,
		Rating:    rating,
		Comment:   clean,
		CreatedAt: time.Now(),
	}
	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	slog.Info("feedback submitted",
		slog.String("member_id", member.ID),
		slog.Int("rating", rating),
	)
	return feedback, nil
}

// FeedbackHistory は会員自身の過去のフィードバックを返す。
func (s *Service) FeedbackHistory(ctx context.Context, userID string) ([]*model.Feedback, error) {
	member, err := s.findMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.feedbackRepo.ListByMemberID(ctx, member.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return items, nil
}

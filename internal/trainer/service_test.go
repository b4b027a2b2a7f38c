package trainer

import (
	"context"
	"errors"
	"testing"

	"github.com/tanishqswami/fit-hub-management-system/internal/model"
	"github.com/tanishqswami/fit-hub-management-system/internal/repository"
)

// --- モック定義 ---

type mockTrainerRepo struct {
	findByUserIDFn func(ctx context.Context, userID string) (*model.Trainer, error)
}

func (m *mockTrainerRepo) FindByID(_ context.Context, _ string) (*model.Trainer, error) {
	return nil, nil
}

func (m *mockTrainerRepo) FindByUserID(ctx context.Context, userID string) (*model.Trainer, error) {
	if m.findByUserIDFn != nil {
		return m.findByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockTrainerRepo) List(_ context.Context) ([]*model.Trainer, error) { return nil, nil }

func (m *mockTrainerRepo) Update(_ context.Context, _ *model.Trainer) error { return nil }

func (m *mockTrainerRepo) ListWithMemberCounts(_ context.Context) ([]repository.TrainerWithMemberCount, error) {
	return nil, nil
}

type mockMemberRepo struct {
	findByIDFn        func(ctx context.Context, id string) (*model.Member, error)
	listByTrainerIDFn func(ctx context.Context, trainerID string) ([]repository.MemberWithUser, error)
}

func (m *mockMemberRepo) FindByID(ctx context.Context, id string) (*model.Member, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockMemberRepo) FindByUserID(_ context.Context, _ string) (*model.Member, error) {
	return nil, nil
}

func (m *mockMemberRepo) ListWithUserInfo(_ context.Context) ([]repository.MemberWithUser, error) {
	return nil, nil
}

func (m *mockMemberRepo) ListByTrainerID(ctx context.Context, trainerID string) ([]repository.MemberWithUser, error) {
	if m.listByTrainerIDFn != nil {
		return m.listByTrainerIDFn(ctx, trainerID)
	}
	return nil, nil
}

func (m *mockMemberRepo) Count(_ context.Context) (int, error) { return 0, nil }

func (m *mockMemberRepo) AssignTrainer(_ context.Context, _, _ string) error { return nil }

func (m *mockMemberRepo) AssignMembership(_ context.Context, _, _ string) error { return nil }

type mockWorkoutPlanRepo struct {
	findByIDFn        func(ctx context.Context, id string) (*model.WorkoutPlan, error)
	createFn          func(ctx context.Context, plan *model.WorkoutPlan) error
	listByTrainerIDFn func(ctx context.Context, trainerID string) ([]*model.WorkoutPlan, error)
	deleteByIDFn      func(ctx context.Context, id string) error
}

func (m *mockWorkoutPlanRepo) FindByID(ctx context.Context, id string) (*model.WorkoutPlan, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockWorkoutPlanRepo) Create(ctx context.Context, plan *model.WorkoutPlan) error {
	if m.createFn != nil {
		return m.createFn(ctx, plan)
	}
	return nil
}

func (m *mockWorkoutPlanRepo) ListByMemberID(_ context.Context, _ string) ([]*model.WorkoutPlan, error) {
	return nil, nil
}

func (m *mockWorkoutPlanRepo) ListByTrainerID(ctx context.Context, trainerID string) ([]*model.WorkoutPlan, error) {
	if m.listByTrainerIDFn != nil {
		return m.listByTrainerIDFn(ctx, trainerID)
	}
	return nil, nil
}

func (m *mockWorkoutPlanRepo) DeleteByID(ctx context.Context, id string) error {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, id)
	}
	return nil
}

// --- compile-time interface checks ---
var _ repository.TrainerRepository = (*mockTrainerRepo)(nil)
var _ repository.MemberRepository = (*mockMemberRepo)(nil)
var _ repository.WorkoutPlanRepository = (*mockWorkoutPlanRepo)(nil)

func trainerAssigned() *mockTrainerRepo {
	return &mockTrainerRepo{
		findByUserIDFn: func(ctx context.Context, userID string) (*model.Trainer, error) {
			return &model.Trainer{ID: "trainer-1", UserID: userID}, nil
		},
	}
}

// --- テスト ---

func TestAssignedMembers_ListsByTrainerID(t *testing.T) {
	memberRepo := &mockMemberRepo{
		listByTrainerIDFn: func(ctx context.Context, trainerID string) ([]repository.MemberWithUser, error) {
			if trainerID != "trainer-1" {
				t.Errorf("trainerID = %q, want %q", trainerID, "trainer-1")
			}
			return []repository.MemberWithUser{
				{Member: model.Member{ID: "member-1", TrainerID: trainerID}, Name: "会員A"},
				{Member: model.Member{ID: "member-2", TrainerID: trainerID}, Name: "会員B"},
			}, nil
		},
	}

	svc := NewService(trainerAssigned(), memberRepo, &mockWorkoutPlanRepo{})

	members, err := svc.AssignedMembers(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("AssignedMembers() error: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("len(members) = %d, want 2", len(members))
	}
}

func TestAssignedMembers_NoTrainerRecord_ReturnsTrainerNotFound(t *testing.T) {
	svc := NewService(&mockTrainerRepo{}, &mockMemberRepo{}, &mockWorkoutPlanRepo{})

	_, err := svc.AssignedMembers(context.Background(), "user-1")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeTrainerNotFound {
		t.Errorf("Code = %q, want %q", apiErr.Code, model.ErrCodeTrainerNotFound)
	}
}

func TestCreateWorkoutPlan_AssignedMember_Succeeds(t *testing.T) {
	memberRepo := &mockMemberRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Member, error) {
			return &model.Member{ID: id, TrainerID: "trainer-1"}, nil
		},
	}

	var created *model.WorkoutPlan
	planRepo := &mockWorkoutPlanRepo{
		createFn: func(ctx context.Context, plan *model.WorkoutPlan) error {
			created = plan
			return nil
		},
	}

	svc := NewService(trainerAssigned(), memberRepo, planRepo)

	plan, err := svc.CreateWorkoutPlan(context.Background(), "user-1", "member-1", "  初級メニュー ", "週3回の全身トレーニング")
	if err != nil {
		t.Fatalf("CreateWorkoutPlan() error: %v", err)
	}
	if created == nil {
		t.Fatal("expected plan to be created")
	}
	if plan.Title != "初級メニュー" {
		t.Errorf("Title = %q, want trimmed %q", plan.Title, "初級メニュー")
	}
	if plan.TrainerID != "trainer-1" {
		t.Errorf("TrainerID = %q, want %q", plan.TrainerID, "trainer-1")
	}
}

func TestCreateWorkoutPlan_UnassignedMember_Rejected(t *testing.T) {
	memberRepo := &mockMemberRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Member, error) {
			return &model.Member{ID: id, TrainerID: "other-trainer"}, nil
		},
	}

	svc := NewService(trainerAssigned(), memberRepo, &mockWorkoutPlanRepo{})

	_, err := svc.CreateWorkoutPlan(context.Background(), "user-1", "member-1", "メニュー", "")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeMemberNotFound {
		t.Errorf("Code = %q, want %q", apiErr.Code, model.ErrCodeMemberNotFound)
	}
}

func TestCreateWorkoutPlan_EmptyTitle_Rejected(t *testing.T) {
	svc := NewService(trainerAssigned(), &mockMemberRepo{}, &mockWorkoutPlanRepo{})

	_, err := svc.CreateWorkoutPlan(context.Background(), "user-1", "member-1", "   ", "説明")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeValidationFailed {
		t.Errorf("Code = %q, want %q", apiErr.Code, model.ErrCodeValidationFailed)
	}
}

func TestDeleteWorkoutPlan_OwnPlan_Succeeds(t *testing.T) {
	planRepo := &mockWorkoutPlanRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.WorkoutPlan, error) {
			return &model.WorkoutPlan{ID: id, TrainerID: "trainer-1"}, nil
		},
	}

	deletedID := ""
	planRepo.deleteByIDFn = func(ctx context.Context, id string) error {
		deletedID = id
		return nil
	}

	svc := NewService(trainerAssigned(), &mockMemberRepo{}, planRepo)

	if err := svc.DeleteWorkoutPlan(context.Background(), "user-1", "plan-1"); err != nil {
		t.Fatalf("DeleteWorkoutPlan() error: %v", err)
	}
	if deletedID != "plan-1" {
		t.Errorf("deleted plan = %q, want %q", deletedID, "plan-1")
	}
}

func TestDeleteWorkoutPlan_OtherTrainersPlan_Rejected(t *testing.T) {
	planRepo := &mockWorkoutPlanRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.WorkoutPlan, error) {
			return &model.WorkoutPlan{ID: id, TrainerID: "other-trainer"}, nil
		},
	}

	deleted := false
	planRepo.deleteByIDFn = func(ctx context.Context, id string) error {
		deleted = true
		return nil
	}

	svc := NewService(trainerAssigned(), &mockMemberRepo{}, planRepo)

	err := svc.DeleteWorkoutPlan(context.Background(), "user-1", "plan-1")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeWorkoutPlanNotFound {
		t.Errorf("Code = %q, want %q", apiErr.Code, model.ErrCodeWorkoutPlanNotFound)
	}
	if deleted {
		t.Error("plan must not be deleted")
	}
}

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/tanishqswami/fit-hub-management-system/internal/middleware"
	"github.com/tanishqswami/fit-hub-management-system/internal/model"
	"github.com/tanishqswami/fit-hub-management-system/internal/repository"
)

// --- モック定義 ---

type mockTrainerService struct {
	assignedMembersFn   func(ctx context.Context, userID string) ([]repository.MemberWithUser, error)
	createWorkoutPlanFn func(ctx context.Context, userID, memberID, title, description string) (*model.WorkoutPlan, error)
	workoutPlansFn      func(ctx context.Context, userID string) ([]*model.WorkoutPlan, error)
	deleteWorkoutPlanFn func(ctx context.Context, userID, planID string) error
}

func (m *mockTrainerService) AssignedMembers(ctx context.Context, userID string) ([]repository.MemberWithUser, error) {
	if m.assignedMembersFn != nil {
		return m.assignedMembersFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockTrainerService) CreateWorkoutPlan(ctx context.Context, userID, memberID, title, description string) (*model.WorkoutPlan, error) {
	if m.createWorkoutPlanFn != nil {
		return m.createWorkoutPlanFn(ctx, userID, memberID, title, description)
	}
	return nil, nil
}

func (m *mockTrainerService) WorkoutPlans(ctx context.Context, userID string) ([]*model.WorkoutPlan, error) {
	if m.workoutPlansFn != nil {
		return m.workoutPlansFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockTrainerService) DeleteWorkoutPlan(ctx context.Context, userID, planID string) error {
	if m.deleteWorkoutPlanFn != nil {
		return m.deleteWorkoutPlanFn(ctx, userID, planID)
	}
	return nil
}

// --- compile-time interface checks ---

var _ TrainerServiceInterface = (*mockTrainerService)(nil)

// withChiURLParam はchiのURLパラメータをリクエストコンテキストに設定するヘルパー。
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

// requestAsTrainer はtrainerロールのプロフィールをコンテキストに詰めたリクエストを生成する。
func requestAsTrainer(method, target string, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	profile := &model.Profile{
		ID:    "trainer-user-1",
		Name:  "山田 太郎",
		Email: "taro@example.com",
		Role:  model.RoleTrainer,
	}
	ctx := middleware.ContextWithProfile(req.Context(), profile)
	return req.WithContext(ctx)
}

// --- テスト ---

func TestTrainerHandler_AssignedMembers_ReturnsList(t *testing.T) {
	svc := &mockTrainerService{
		assignedMembersFn: func(ctx context.Context, userID string) ([]repository.MemberWithUser, error) {
			if userID != "trainer-user-1" {
				t.Errorf("userID = %q, want %q", userID, "trainer-user-1")
			}
			return []repository.MemberWithUser{
				{Member: model.Member{ID: "member-1"}, Name: "佐藤 花子"},
			}, nil
		},
	}
	h := NewTrainerHandler(svc)

	req := requestAsTrainer(http.MethodGet, "/api/trainer/members", "")
	w := httptest.NewRecorder()

	h.AssignedMembers(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestTrainerHandler_AssignedMembers_NoProfile_ReturnsUnauthorized(t *testing.T) {
	h := NewTrainerHandler(&mockTrainerService{})

	req := httptest.NewRequest(http.MethodGet, "/api/trainer/members", nil)
	w := httptest.NewRecorder()

	h.AssignedMembers(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestTrainerHandler_CreateWorkoutPlan_Success_ReturnsCreated(t *testing.T) {
	svc := &mockTrainerService{
		createWorkoutPlanFn: func(ctx context.Context, userID, memberID, title, description string) (*model.WorkoutPlan, error) {
			if memberID != "member-1" {
				t.Errorf("memberID = %q, want %q", memberID, "member-1")
			}
			if title != "週3回の筋力トレーニング" {
				t.Errorf("title = %q", title)
			}
			return &model.WorkoutPlan{ID: "plan-1", MemberID: memberID, Title: title}, nil
		},
	}
	h := NewTrainerHandler(svc)

	body := `{"member_id":"member-1","title":"週3回の筋力トレーニング","description":"スクワット中心"}`
	req := requestAsTrainer(http.MethodPost, "/api/trainer/plans", body)
	w := httptest.NewRecorder()

	h.CreateWorkoutPlan(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
}

func TestTrainerHandler_CreateWorkoutPlan_UnassignedMember_ReturnsNotFound(t *testing.T) {
	svc := &mockTrainerService{
		createWorkoutPlanFn: func(ctx context.Context, userID, memberID, title, description string) (*model.WorkoutPlan, error) {
			return nil, model.NewMemberNotFoundError(memberID)
		},
	}
	h := NewTrainerHandler(svc)

	body := `{"member_id":"other-member","title":"計画","description":""}`
	req := requestAsTrainer(http.MethodPost, "/api/trainer/plans", body)
	w := httptest.NewRecorder()

	h.CreateWorkoutPlan(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestTrainerHandler_CreateWorkoutPlan_InvalidBody_ReturnsBadRequest(t *testing.T) {
	h := NewTrainerHandler(&mockTrainerService{})

	req := requestAsTrainer(http.MethodPost, "/api/trainer/plans", "{broken")
	w := httptest.NewRecorder()

	h.CreateWorkoutPlan(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestTrainerHandler_DeleteWorkoutPlan_Success_ReturnsNoContent(t *testing.T) {
	var deletedPlanID string
	svc := &mockTrainerService{
		deleteWorkoutPlanFn: func(ctx context.Context, userID, planID string) error {
			deletedPlanID = planID
			return nil
		},
	}
	h := NewTrainerHandler(svc)

	req := requestAsTrainer(http.MethodDelete, "/api/trainer/plans/plan-1", "")
	req = withChiURLParam(req, "id", "plan-1")
	w := httptest.NewRecorder()

	h.DeleteWorkoutPlan(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	if deletedPlanID != "plan-1" {
		t.Errorf("deleted plan = %q, want %q", deletedPlanID, "plan-1")
	}
}

func TestTrainerHandler_DeleteWorkoutPlan_NotOwned_ReturnsNotFound(t *testing.T) {
	svc := &mockTrainerService{
		deleteWorkoutPlanFn: func(ctx context.Context, userID, planID string) error {
			return model.NewWorkoutPlanNotFoundError(planID)
		},
	}
	h := NewTrainerHandler(svc)

	req := requestAsTrainer(http.MethodDelete, "/api/trainer/plans/plan-other", "")
	req = withChiURLParam(req, "id", "plan-other")
	w := httptest.NewRecorder()

	h.DeleteWorkoutPlan(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

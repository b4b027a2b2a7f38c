package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tanishqswami/fit-hub-management-system/internal/admin"
	"github.com/tanishqswami/fit-hub-management-system/internal/model"
	"github.com/tanishqswami/fit-hub-management-system/internal/repository"
)

// --- モック定義 ---

type mockAdminService struct {
	dashboardFn            func(ctx context.Context) *admin.DashboardStats
	listUsersFn            func(ctx context.Context) ([]*model.Profile, error)
	deleteUserFn           func(ctx context.Context, userID string) error
	listMembersFn          func(ctx context.Context) ([]repository.MemberWithUser, error)
	listTrainersFn         func(ctx context.Context) ([]repository.TrainerWithMemberCount, error)
	updateTrainerFn        func(ctx context.Context, trainerID, specialization, phone string) (*model.Trainer, error)
	createMembershipPlanFn func(ctx context.Context, name string, durationMonths int, price int64) (*model.Membership, error)
	listMembershipPlansFn  func(ctx context.Context) ([]*model.Membership, error)
	updateMembershipPlanFn func(ctx context.Context, planID, name string, durationMonths int, price int64) (*model.Membership, error)
	deleteMembershipPlanFn func(ctx context.Context, planID string) error
	assignTrainerFn        func(ctx context.Context, memberID, trainerID string) error
	assignMembershipFn     func(ctx context.Context, memberID, planID string) error
	recordPaymentFn        func(ctx context.Context, memberID string, amount int64, method string) (*model.Payment, error)
}

func (m *mockAdminService) Dashboard(ctx context.Context) *admin.DashboardStats {
	if m.dashboardFn != nil {
		return m.dashboardFn(ctx)
	}
	return &admin.DashboardStats{}
}

func (m *mockAdminService) ListUsers(ctx context.Context) ([]*model.Profile, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx)
	}
	return nil, nil
}

func (m *mockAdminService) DeleteUser(ctx context.Context, userID string) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(ctx, userID)
	}
	return nil
}

func (m *mockAdminService) ListMembers(ctx context.Context) ([]repository.MemberWithUser, error) {
	if m.listMembersFn != nil {
		return m.listMembersFn(ctx)
	}
	return nil, nil
}

func (m *mockAdminService) ListTrainers(ctx context.Context) ([]repository.TrainerWithMemberCount, error) {
	if m.listTrainersFn != nil {
		return m.listTrainersFn(ctx)
	}
	return nil, nil
}

func (m *mockAdminService) UpdateTrainer(ctx context.Context, trainerID, specialization, phone string) (*model.Trainer, error) {
	if m.updateTrainerFn != nil {
		return m.updateTrainerFn(ctx, trainerID, specialization, phone)
	}
	return nil, nil
}

func (m *mockAdminService) CreateMembershipPlan(ctx context.Context, name string, durationMonths int, price int64) (*model.Membership, error) {
	if m.createMembershipPlanFn != nil {
		return m.createMembershipPlanFn(ctx, name, durationMonths, price)
	}
	return nil, nil
}

func (m *mockAdminService) ListMembershipPlans(ctx context.Context) ([]*model.Membership, error) {
	if m.listMembershipPlansFn != nil {
		return m.listMembershipPlansFn(ctx)
	}
	return nil, nil
}

func (m *mockAdminService) UpdateMembershipPlan(ctx context.Context, planID, name string, durationMonths int, price int64) (*model.Membership, error) {
	if m.updateMembershipPlanFn != nil {
		return m.updateMembershipPlanFn(ctx, planID, name, durationMonths, price)
	}
	return nil, nil
}

func (m *mockAdminService) DeleteMembershipPlan(ctx context.Context, planID string) error {
	if m.deleteMembershipPlanFn != nil {
		return m.deleteMembershipPlanFn(ctx, planID)
	}
	return nil
}

func (m *mockAdminService) AssignTrainer(ctx context.Context, memberID, trainerID string) error {
	if m.assignTrainerFn != nil {
		return m.assignTrainerFn(ctx, memberID, trainerID)
	}
	return nil
}

func (m *mockAdminService) AssignMembership(ctx context.Context, memberID, planID string) error {
	if m.assignMembershipFn != nil {
		return m.assignMembershipFn(ctx, memberID, planID)
	}
	return nil
}

func (m *mockAdminService) RecordPayment(ctx context.Context, memberID string, amount int64, method string) (*model.Payment, error) {
	if m.recordPaymentFn != nil {
		return m.recordPaymentFn(ctx, memberID, amount, method)
	}
	return nil, nil
}

// --- compile-time interface checks ---

var _ AdminServiceInterface = (*mockAdminService)(nil)

// --- テスト ---

func TestAdminHandler_Dashboard_ReturnsStats(t *testing.T) {
	svc := &mockAdminService{
		dashboardFn: func(ctx context.Context) *admin.DashboardStats {
			return &admin.DashboardStats{
				MemberCount:  12,
				TrainerCount: 3,
				TotalRevenue: 360000,
			}
		},
	}
	h := NewAdminHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	w := httptest.NewRecorder()

	h.Dashboard(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var got dashboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.MemberCount != 12 {
		t.Errorf("MemberCount = %d, want 12", got.MemberCount)
	}
	if got.TotalRevenue != 360000 {
		t.Errorf("TotalRevenue = %d, want 360000", got.TotalRevenue)
	}
}

func TestAdminHandler_Dashboard_NestedKeysAreSnakeCase(t *testing.T) {
	svc := &mockAdminService{
		dashboardFn: func(ctx context.Context) *admin.DashboardStats {
			return &admin.DashboardStats{
				MemberCount: 1,
				RecentPayments: []*model.Payment{
					{ID: "pay-1", MemberID: "member-1", Amount: 5000, Method: "cash"},
				},
			}
		},
	}
	h := NewAdminHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	w := httptest.NewRecorder()

	h.Dashboard(w, req)

	var got map[string]interface{}
	if err := json.NewDecoder(w.Result().Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	payments, ok := got["recent_payments"].([]interface{})
	if !ok || len(payments) != 1 {
		t.Fatalf("recent_payments = %v, want one entry", got["recent_payments"])
	}
	payment, ok := payments[0].(map[string]interface{})
	if !ok {
		t.Fatalf("payment entry = %v, want object", payments[0])
	}
	if _, ok := payment["member_id"]; !ok {
		t.Error("payment must expose member_id in snake_case")
	}
	if _, ok := payment["MemberID"]; ok {
		t.Error("payment must not leak PascalCase field names")
	}
}

func TestAdminHandler_DeleteUser_Success_ReturnsNoContent(t *testing.T) {
	var deletedUserID string
	svc := &mockAdminService{
		deleteUserFn: func(ctx context.Context, userID string) error {
			deletedUserID = userID
			return nil
		},
	}
	h := NewAdminHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/users/user-9", nil)
	req = withChiURLParam(req, "id", "user-9")
	w := httptest.NewRecorder()

	h.DeleteUser(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	if deletedUserID != "user-9" {
		t.Errorf("deleted user = %q, want %q", deletedUserID, "user-9")
	}
}

func TestAdminHandler_DeleteUser_Unknown_ReturnsUnauthorizedMapping(t *testing.T) {
	svc := &mockAdminService{
		deleteUserFn: func(ctx context.Context, userID string) error {
			return model.NewUserNotFoundError()
		},
	}
	h := NewAdminHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/users/nonexistent", nil)
	req = withChiURLParam(req, "id", "nonexistent")
	w := httptest.NewRecorder()

	h.DeleteUser(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestAdminHandler_UpdateTrainer_Success_PassesTrainerID(t *testing.T) {
	var gotTrainerID string
	svc := &mockAdminService{
		updateTrainerFn: func(ctx context.Context, trainerID, specialization, phone string) (*model.Trainer, error) {
			gotTrainerID = trainerID
			return &model.Trainer{ID: trainerID, Specialization: specialization, Phone: phone}, nil
		},
	}
	h := NewAdminHandler(svc)

	body := `{"specialization":"筋力トレーニング","phone":"090-1234-5678"}`
	req := httptest.NewRequest(http.MethodPut, "/api/admin/trainers/trainer-3", strings.NewReader(body))
	req = withChiURLParam(req, "id", "trainer-3")
	w := httptest.NewRecorder()

	h.UpdateTrainer(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if gotTrainerID != "trainer-3" {
		t.Errorf("trainerID = %q, want %q", gotTrainerID, "trainer-3")
	}
}

func TestAdminHandler_UpdateTrainer_Unknown_ReturnsNotFound(t *testing.T) {
	svc := &mockAdminService{
		updateTrainerFn: func(ctx context.Context, trainerID, specialization, phone string) (*model.Trainer, error) {
			return nil, model.NewTrainerNotFoundError(trainerID)
		},
	}
	h := NewAdminHandler(svc)

	body := `{"specialization":"ヨガ","phone":""}`
	req := httptest.NewRequest(http.MethodPut, "/api/admin/trainers/nonexistent", strings.NewReader(body))
	req = withChiURLParam(req, "id", "nonexistent")
	w := httptest.NewRecorder()

	h.UpdateTrainer(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestAdminHandler_CreateMembershipPlan_Success_ReturnsCreated(t *testing.T) {
	svc := &mockAdminService{
		createMembershipPlanFn: func(ctx context.Context, name string, durationMonths int, price int64) (*model.Membership, error) {
			if name != "年間プラン" {
				t.Errorf("name = %q, want %q", name, "年間プラン")
			}
			if durationMonths != 12 {
				t.Errorf("durationMonths = %d, want 12", durationMonths)
			}
			return &model.Membership{ID: "plan-1", Name: name, DurationMonths: durationMonths, Price: price}, nil
		},
	}
	h := NewAdminHandler(svc)

	body := `{"name":"年間プラン","duration_months":12,"price":96000}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/plans", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.CreateMembershipPlan(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
}

func TestAdminHandler_CreateMembershipPlan_ValidationFailed_ReturnsBadRequest(t *testing.T) {
	svc := &mockAdminService{
		createMembershipPlanFn: func(ctx context.Context, name string, durationMonths int, price int64) (*model.Membership, error) {
			return nil, model.NewValidationError("プラン名は必須です")
		},
	}
	h := NewAdminHandler(svc)

	body := `{"name":"","duration_months":12,"price":96000}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/plans", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.CreateMembershipPlan(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestAdminHandler_UpdateMembershipPlan_PassesPlanID(t *testing.T) {
	var gotPlanID string
	svc := &mockAdminService{
		updateMembershipPlanFn: func(ctx context.Context, planID, name string, durationMonths int, price int64) (*model.Membership, error) {
			gotPlanID = planID
			return &model.Membership{ID: planID, Name: name, DurationMonths: durationMonths, Price: price}, nil
		},
	}
	h := NewAdminHandler(svc)

	body := `{"name":"月額プラン","duration_months":1,"price":9800}`
	req := httptest.NewRequest(http.MethodPut, "/api/admin/plans/plan-2", strings.NewReader(body))
	req = withChiURLParam(req, "id", "plan-2")
	w := httptest.NewRecorder()

	h.UpdateMembershipPlan(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if gotPlanID != "plan-2" {
		t.Errorf("planID = %q, want %q", gotPlanID, "plan-2")
	}
}

func TestAdminHandler_DeleteMembershipPlan_Unknown_ReturnsNotFound(t *testing.T) {
	svc := &mockAdminService{
		deleteMembershipPlanFn: func(ctx context.Context, planID string) error {
			return model.NewPlanNotFoundError(planID)
		},
	}
	h := NewAdminHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/plans/nonexistent", nil)
	req = withChiURLParam(req, "id", "nonexistent")
	w := httptest.NewRecorder()

	h.DeleteMembershipPlan(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestAdminHandler_AssignTrainer_Success_ReturnsNoContent(t *testing.T) {
	var gotMemberID, gotTrainerID string
	svc := &mockAdminService{
		assignTrainerFn: func(ctx context.Context, memberID, trainerID string) error {
			gotMemberID = memberID
			gotTrainerID = trainerID
			return nil
		},
	}
	h := NewAdminHandler(svc)

	body := `{"trainer_id":"trainer-1"}`
	req := httptest.NewRequest(http.MethodPut, "/api/admin/members/member-1/trainer", strings.NewReader(body))
	req = withChiURLParam(req, "id", "member-1")
	w := httptest.NewRecorder()

	h.AssignTrainer(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	if gotMemberID != "member-1" || gotTrainerID != "trainer-1" {
		t.Errorf("assigned (%q, %q), want (member-1, trainer-1)", gotMemberID, gotTrainerID)
	}
}

func TestAdminHandler_AssignMembership_UnknownPlan_ReturnsNotFound(t *testing.T) {
	svc := &mockAdminService{
		assignMembershipFn: func(ctx context.Context, memberID, planID string) error {
			return model.NewPlanNotFoundError(planID)
		},
	}
	h := NewAdminHandler(svc)

	body := `{"plan_id":"nonexistent"}`
	req := httptest.NewRequest(http.MethodPut, "/api/admin/members/member-1/membership", strings.NewReader(body))
	req = withChiURLParam(req, "id", "member-1")
	w := httptest.NewRecorder()

	h.AssignMembership(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestAdminHandler_RecordPayment_Success_ReturnsCreated(t *testing.T) {
	svc := &mockAdminService{
		recordPaymentFn: func(ctx context.Context, memberID string, amount int64, method string) (*model.Payment, error) {
			if amount != 9800 {
				t.Errorf("amount = %d, want 9800", amount)
			}
			if method != "cash" {
				t.Errorf("method = %q, want %q", method, "cash")
			}
			return &model.Payment{ID: "pay-1", MemberID: memberID, Amount: amount, Method: method}, nil
		},
	}
	h := NewAdminHandler(svc)

	body := `{"amount":9800,"method":"cash"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/members/member-1/payments", strings.NewReader(body))
	req = withChiURLParam(req, "id", "member-1")
	w := httptest.NewRecorder()

	h.RecordPayment(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
}

func TestAdminHandler_RecordPayment_InvalidBody_ReturnsBadRequest(t *testing.T) {
	h := NewAdminHandler(&mockAdminService{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/members/member-1/payments", strings.NewReader("{broken"))
	req = withChiURLParam(req, "id", "member-1")
	w := httptest.NewRecorder()

	h.RecordPayment(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

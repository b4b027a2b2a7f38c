package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tanishqswami/fit-hub-management-system/internal/admin"
	"github.com/tanishqswami/fit-hub-management-system/internal/model"
	"github.com/tanishqswami/fit-hub-management-system/internal/repository"
)

// AdminServiceInterface は管理者ハンドラーが必要とするサービスインターフェース。
type AdminServiceInterface interface {
	Dashboard(ctx context.Context) *admin.DashboardStats
	ListUsers(ctx context.Context) ([]*model.Profile, error)
	DeleteUser(ctx context.Context, userID string) error
	ListMembers(ctx context.Context) ([]repository.MemberWithUser, error)
	ListTrainers(ctx context.Context) ([]repository.TrainerWithMemberCount, error)
	UpdateTrainer(ctx context.Context, trainerID, specialization, phone string) (*model.Trainer, error)
	CreateMembershipPlan(ctx context.Context, name string, durationMonths int, price int64) (*model.Membership, error)
	ListMembershipPlans(ctx context.Context) ([]*model.Membership, error)
	UpdateMembershipPlan(ctx context.Context, planID, name string, durationMonths int, price int64) (*model.Membership, error)
	DeleteMembershipPlan(ctx context.Context, planID string) error
	AssignTrainer(ctx context.Context, memberID, trainerID string) error
	AssignMembership(ctx context.Context, memberID, planID string) error
	RecordPayment(ctx context.Context, memberID string, amount int64, method string) (*model.Payment, error)
}

// AdminHandler は管理者向けAPIのHTTPハンドラー。
type AdminHandler struct {
	service AdminServiceInterface
}

// NewAdminHandler はAdminHandlerを生成する。
func NewAdminHandler(service AdminServiceInterface) *AdminHandler {
	return &AdminHandler{service: service}
}

// membershipPlanRequest は会員プラン作成・更新リクエストのボディ。
type membershipPlanRequest struct {
	Name           string `json:"name"`
	DurationMonths int    `json:"duration_months"`
	Price          int64  `json:"price"`
}

// updateTrainerRequest はトレーナー情報更新リクエストのボディ。
type updateTrainerRequest struct {
	Specialization string `json:"specialization"`
	Phone          string `json:"phone"`
}

// assignTrainerRequest はトレーナー割り当てリクエストのボディ。
type assignTrainerRequest struct {
	TrainerID string `json:"trainer_id"`
}

// assignMembershipRequest はプラン割り当てリクエストのボディ。
type assignMembershipRequest struct {
	PlanID string `json:"plan_id"`
}

// recordPaymentRequest は支払い記録リクエストのボディ。
type recordPaymentRequest struct {
	Amount int64  `json:"amount"`
	Method string `json:"method"`
}

// trainerResponse はトレーナー情報のAPIレスポンス。
type trainerResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Specialization string    `json:"specialization"`
	Phone          string    `json:"phone"`
	CreatedAt      time.Time `json:"created_at"`
}

func toTrainerResponse(t *model.Trainer) trainerResponse {
	return trainerResponse{
		ID:             t.ID,
		UserID:         t.UserID,
		Specialization: t.Specialization,
		Phone:          t.Phone,
		CreatedAt:      t.CreatedAt,
	}
}

// trainerLoadResponse はトレーナーと担当会員数のAPIレスポンス。
type trainerLoadResponse struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Phone          string `json:"phone"`
	MemberCount    int    `json:"member_count"`
}

func toTrainerLoadResponse(t repository.TrainerWithMemberCount) trainerLoadResponse {
	return trainerLoadResponse{
		ID:             t.ID,
		UserID:         t.UserID,
		Name:           t.TrainerName,
		Specialization: t.Specialization,
		Phone:          t.Phone,
		MemberCount:    t.MemberCount,
	}
}

func toTrainerLoadResponses(trainers []repository.TrainerWithMemberCount) []trainerLoadResponse {
	out := make([]trainerLoadResponse, 0, len(trainers))
	for _, t := range trainers {
		out = append(out, toTrainerLoadResponse(t))
	}
	return out
}

// memberSummaryResponse は会員とユーザー情報のAPIレスポンス。
type memberSummaryResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	TrainerID    string    `json:"trainer_id,omitempty"`
	MembershipID string    `json:"membership_id,omitempty"`
	JoinedAt     time.Time `json:"joined_at"`
}

func toMemberSummaryResponses(members []repository.MemberWithUser) []memberSummaryResponse {
	out := make([]memberSummaryResponse, 0, len(members))
	for _, m := range members {
		out = append(out, memberSummaryResponse{
			ID:           m.ID,
			UserID:       m.UserID,
			Name:         m.Name,
			Email:        m.Email,
			TrainerID:    m.TrainerID,
			MembershipID: m.MembershipID,
			JoinedAt:     m.JoinedAt,
		})
	}
	return out
}

// membershipPlanResponse は会員プランのAPIレスポンス。
type membershipPlanResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	DurationMonths int       `json:"duration_months"`
	Price          int64     `json:"price"`
	CreatedAt      time.Time `json:"created_at"`
}

func toMembershipPlanResponse(plan *model.Membership) membershipPlanResponse {
	return membershipPlanResponse{
		ID:             plan.ID,
		Name:           plan.Name,
		DurationMonths: plan.DurationMonths,
		Price:          plan.Price,
		CreatedAt:      plan.CreatedAt,
	}
}

func toMembershipPlanResponses(plans []*model.Membership) []membershipPlanResponse {
	out := make([]membershipPlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, toMembershipPlanResponse(p))
	}
	return out
}

// paymentResponse は支払い記録のAPIレスポンス。
type paymentResponse struct {
	ID       string    `json:"id"`
	MemberID string    `json:"member_id"`
	Amount   int64     `json:"amount"`
	Method   string    `json:"method"`
	PaidAt   time.Time `json:"paid_at"`
}

func toPaymentResponse(p *model.Payment) paymentResponse {
	return paymentResponse{
		ID:       p.ID,
		MemberID: p.MemberID,
		Amount:   p.Amount,
		Method:   p.Method,
		PaidAt:   p.PaidAt,
	}
}

func toPaymentResponses(payments []*model.Payment) []paymentResponse {
	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	return out
}

// dashboardResponse は管理者ダッシュボードのAPIレスポンス。
type dashboardResponse struct {
	MemberCount    int                   `json:"member_count"`
	TrainerCount   int                   `json:"trainer_count"`
	TotalRevenue   int64                 `json:"total_revenue"`
	TopTrainer     *trainerLoadResponse  `json:"top_trainer,omitempty"`
	RecentPayments []paymentResponse     `json:"recent_payments"`
	RecentFeedback []feedbackResponse    `json:"recent_feedback"`
	TrainerLoads   []trainerLoadResponse `json:"trainer_loads"`
}

func toDashboardResponse(stats *admin.DashboardStats) dashboardResponse {
	resp := dashboardResponse{
		MemberCount:    stats.MemberCount,
		TrainerCount:   stats.TrainerCount,
		TotalRevenue:   stats.TotalRevenue,
		RecentPayments: toPaymentResponses(stats.RecentPayments),
		RecentFeedback: toFeedbackResponses(stats.RecentFeedback),
		TrainerLoads:   toTrainerLoadResponses(stats.TrainerLoads),
	}
	if stats.TopTrainer != nil {
		top := toTrainerLoadResponse(*stats.TopTrainer)
		resp.TopTrainer = &top
	}
	return resp
}

// Dashboard は管理者ダッシュボードの集計情報を返す。
// GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, toDashboardResponse(h.service.Dashboard(r.Context())))
}

// ListUsers は全ユーザーの一覧を返す。
// GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	out := make([]profileResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toProfileResponse(u))
	}
	writeJSONResponse(w, http.StatusOK, out)
}

// DeleteUser はユーザーを削除する。
// DELETE /api/admin/users/{id}
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	if err := h.service.DeleteUser(r.Context(), userID); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMembers は全会員の一覧を返す。
// GET /api/admin/members
func (h *AdminHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.ListMembers(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, toMemberSummaryResponses(members))
}

// ListTrainers は全トレーナーの一覧を担当会員数付きで返す。
// GET /api/admin/trainers
func (h *AdminHandler) ListTrainers(w http.ResponseWriter, r *http.Request) {
	trainers, err := h.service.ListTrainers(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, toTrainerLoadResponses(trainers))
}

// UpdateTrainer はトレーナーの専門分野・連絡先を更新する。
// PUT /api/admin/trainers/{id}
func (h *AdminHandler) UpdateTrainer(w http.ResponseWriter, r *http.Request) {
	trainerID := chi.URLParam(r, "id")

	var req updateTrainerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	trainer, err := h.service.UpdateTrainer(r.Context(), trainerID, req.Specialization, req.Phone)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, toTrainerResponse(trainer))
}

// CreateMembershipPlan は会員プランを作成する。
// POST /api/admin/plans
func (h *AdminHandler) CreateMembershipPlan(w http.ResponseWriter, r *http.Request) {
	var req membershipPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	plan, err := h.service.CreateMembershipPlan(r.Context(), req.Name, req.DurationMonths, req.Price)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, toMembershipPlanResponse(plan))
}

// ListMembershipPlans は会員プランの一覧を返す。
// GET /api/admin/plans
func (h *AdminHandler) ListMembershipPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.ListMembershipPlans(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, toMembershipPlanResponses(plans))
}

// UpdateMembershipPlan は会員プランを更新する。
// PUT /api/admin/plans/{id}
func (h *AdminHandler) UpdateMembershipPlan(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "id")

	var req membershipPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	plan, err := h.service.UpdateMembershipPlan(r.Context(), planID, req.Name, req.DurationMonths, req.Price)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, toMembershipPlanResponse(plan))
}

// DeleteMembershipPlan は会員プランを削除する。
// DELETE /api/admin/plans/{id}
func (h *AdminHandler) DeleteMembershipPlan(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "id")

	if err := h.service.DeleteMembershipPlan(r.Context(), planID); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AssignTrainer は会員に担当トレーナーを割り当てる。
// PUT /api/admin/members/{id}/trainer
func (h *AdminHandler) AssignTrainer(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "id")

	var req assignTrainerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	if err := h.service.AssignTrainer(r.Context(), memberID, req.TrainerID); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AssignMembership は会員に会員プランを割り当てる。
// PUT /api/admin/members/{id}/membership
func (h *AdminHandler) AssignMembership(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "id")

	var req assignMembershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	if err := h.service.AssignMembership(r.Context(), memberID, req.PlanID); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecordPayment は会員の支払いを記録する。
// POST /api/admin/members/{id}/payments
func (h *AdminHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "id")

	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	payment, err := h.service.RecordPayment(r.Context(), memberID, req.Amount, req.Method)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, toPaymentResponse(payment))
}

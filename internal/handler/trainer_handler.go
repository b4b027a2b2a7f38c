package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tanishqswami/fit-hub-management-system/internal/middleware"
	"github.com/tanishqswami/fit-hub-management-system/internal/model"
	"github.com/tanishqswami/fit-hub-management-system/internal/repository"
)

// TrainerServiceInterface はトレーナーハンドラーが必要とするサービスインターフェース。
type TrainerServiceInterface interface {
	AssignedMembers(ctx context.Context, userID string) ([]repository.MemberWithUser, error)
	CreateWorkoutPlan(ctx context.Context, userID, memberID, title, description string) (*model.WorkoutPlan, error)
	WorkoutPlans(ctx context.Context, userID string) ([]*model.WorkoutPlan, error)
	DeleteWorkoutPlan(ctx context.Context, userID, planID string) error
}

// TrainerHandler はトレーナー向けAPIのHTTPハンドラー。
type TrainerHandler struct {
	service TrainerServiceInterface
}

// NewTrainerHandler はTrainerHandlerを生成する。
func NewTrainerHandler(service TrainerServiceInterface) *TrainerHandler {
	return &TrainerHandler{service: service}
}

// createWorkoutPlanRequest はトレーニング計画作成リクエストのボディ。
type createWorkoutPlanRequest struct {
	MemberID    string `json:"member_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// workoutPlanResponse はトレーニング計画のAPIレスポンス。
type workoutPlanResponse struct {
	ID          string    `json:"id"`
	MemberID    string    `json:"member_id"`
	TrainerID   string    `json:"trainer_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func toWorkoutPlanResponse(p *model.WorkoutPlan) workoutPlanResponse {
	return workoutPlanResponse{
		ID:          p.ID,
		MemberID:    p.MemberID,
		TrainerID:   p.TrainerID,
		Title:       p.Title,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}

func toWorkoutPlanResponses(plans []*model.WorkoutPlan) []workoutPlanResponse {
	out := make([]workoutPlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, toWorkoutPlanResponse(p))
	}
	return out
}

// AssignedMembers は担当会員の一覧を返す。
// GET /api/trainer/members
func (h *TrainerHandler) AssignedMembers(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	members, err := h.service.AssignedMembers(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, toMemberSummaryResponses(members))
}

// CreateWorkoutPlan は担当会員向けのトレーニング計画を作成する。
// POST /api/trainer/plans
func (h *TrainerHandler) CreateWorkoutPlan(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req createWorkoutPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	plan, err := h.service.CreateWorkoutPlan(r.Context(), userID, req.MemberID, req.Title, req.Description)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, toWorkoutPlanResponse(plan))
}

// WorkoutPlans は作成したトレーニング計画の一覧を返す。
// GET /api/trainer/plans
func (h *TrainerHandler) WorkoutPlans(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	plans, err := h.service.WorkoutPlans(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, toWorkoutPlanResponses(plans))
}

// DeleteWorkoutPlan はトレーニング計画を削除する。
// DELETE /api/trainer/plans/{id}
func (h *TrainerHandler) DeleteWorkoutPlan(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	planID := chi.URLParam(r, "id")

	if err := h.service.DeleteWorkoutPlan(r.Context(), userID, planID); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/tanishqswami/fit-hub-management-system/internal/member"
	"github.com/tanishqswami/fit-hub-management-system/internal/middleware"
	"github.com/tanishqswami/fit-hub-management-system/internal/model"
)

// MemberServiceInterface は会員ハンドラーが必要とするサービスインターフェース。
type MemberServiceInterface interface {
	Overview(ctx context.Context, userID string) (*member.Overview, error)
	ToggleAttendance(ctx context.Context, userID string) (*member.AttendanceStatus, error)
	AttendanceHistory(ctx context.Context, userID string, limit int) ([]*model.Attendance, error)
	PaymentHistory(ctx context.Context, userID string) ([]*model.Payment, error)
	WorkoutPlans(ctx context.Context, userID string) ([]*model.WorkoutPlan, error)
	SubmitFeedback(ctx context.Context, userID string, rating int, comment string) (*model.Feedback, error)
	FeedbackHistory(ctx context.Context, userID string) ([]*model.Feedback, error)
}

// AttendanceMetricsRecorder は入退館イベントのメトリクス記録に必要なインターフェース。
// metrics.Collectorの部分集合として定義する。
type AttendanceMetricsRecorder interface {
	RecordCheckIn()
	RecordCheckOut()
	RecordFeedback(rating int)
}

// MemberHandler は会員向けAPIのHTTPハンドラー。
type MemberHandler struct {
	service  MemberServiceInterface
	recorder AttendanceMetricsRecorder
}

// NewMemberHandler はMemberHandlerを生成する。
// recorderがnilの場合はメトリクス記録をスキップする。
func NewMemberHandler(service MemberServiceInterface, recorder AttendanceMetricsRecorder) *MemberHandler {
	return &MemberHandler{
		service:  service,
		recorder: recorder,
	}
}

// submitFeedbackRequest はフィードバック投稿リクエストのボディ。
type submitFeedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// memberDetailResponse は会員レコードのAPIレスポンス。
type memberDetailResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	TrainerID    string    `json:"trainer_id,omitempty"`
	MembershipID string    `json:"membership_id,omitempty"`
	JoinedAt     time.Time `json:"joined_at"`
}

// overviewTrainerResponse は担当トレーナー情報のAPIレスポンス。
type overviewTrainerResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Phone          string `json:"phone"`
}

// overviewResponse は会員ダッシュボードのAPIレスポンス。
type overviewResponse struct {
	Member    memberDetailResponse     `json:"member"`
	Plan      *membershipPlanResponse  `json:"plan,omitempty"`
	Trainer   *overviewTrainerResponse `json:"trainer,omitempty"`
	CheckedIn bool                     `json:"checked_in"`
}

func toOverviewResponse(o *member.Overview) overviewResponse {
	resp := overviewResponse{
		Member: memberDetailResponse{
			ID:           o.Member.ID,
			UserID:       o.Member.UserID,
			TrainerID:    o.Member.TrainerID,
			MembershipID: o.Member.MembershipID,
			JoinedAt:     o.Member.JoinedAt,
		},
		CheckedIn: o.CheckedIn,
	}
	if o.Plan != nil {
		plan := toMembershipPlanResponse(o.Plan)
		resp.Plan = &plan
	}
	if o.Trainer != nil {
		resp.Trainer = &overviewTrainerResponse{
			ID:             o.Trainer.ID,
			Name:           o.Trainer.Name,
			Specialization: o.Trainer.Specialization,
			Phone:          o.Trainer.Phone,
		}
	}
	return resp
}

// attendanceResponse は入退館記録のAPIレスポンス。
type attendanceResponse struct {
	ID         string     `json:"id"`
	MemberID   string     `json:"member_id"`
	CheckInAt  time.Time  `json:"check_in_at"`
	CheckOutAt *time.Time `json:"check_out_at,omitempty"`
}

func toAttendanceResponse(a *model.Attendance) attendanceResponse {
	return attendanceResponse{
		ID:         a.ID,
		MemberID:   a.MemberID,
		CheckInAt:  a.CheckInAt,
		CheckOutAt: a.CheckOutAt,
	}
}

func toAttendanceResponses(records []*model.Attendance) []attendanceResponse {
	out := make([]attendanceResponse, 0, len(records))
	for _, a := range records {
		out = append(out, toAttendanceResponse(a))
	}
	return out
}

// attendanceStatusResponse は入退館切り替え結果のAPIレスポンス。
type attendanceStatusResponse struct {
	CheckedIn  bool                `json:"checked_in"`
	Attendance *attendanceResponse `json:"attendance,omitempty"`
}

func toAttendanceStatusResponse(s *member.AttendanceStatus) attendanceStatusResponse {
	resp := attendanceStatusResponse{CheckedIn: s.CheckedIn}
	if s.Attendance != nil {
		att := toAttendanceResponse(s.Attendance)
		resp.Attendance = &att
	}
	return resp
}

// feedbackResponse はフィードバックのAPIレスポンス。
type feedbackResponse struct {
	ID        string    `json:"id"`
	MemberID  string    `json:"member_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func toFeedbackResponse(f *model.Feedback) feedbackResponse {
	return feedbackResponse{
		ID:        f.ID,
		MemberID:  f.MemberID,
		Rating:    f.Rating,
		Comment:   f.Comment,
		CreatedAt: f.CreatedAt,
	}
}

func toFeedbackResponses(items []*model.Feedback) []feedbackResponse {
	out := make([]feedbackResponse, 0, len(items))
	for _, f := range items {
		out = append(out, toFeedbackResponse(f))
	}
	return out
}

// Overview は会員ダッシュボードの表示情報を返す。
// GET /api/member/overview
func (h *MemberHandler) Overview(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	overview, err := h.service.Overview(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, toOverviewResponse(overview))
}

// ToggleAttendance は入館状態を切り替える。
// POST /api/member/attendance/toggle
func (h *MemberHandler) ToggleAttendance(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	status, err := h.service.ToggleAttendance(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.recorder != nil {
		if status.CheckedIn {
			h.recorder.RecordCheckIn()
		} else {
			h.recorder.RecordCheckOut()
		}
	}

	writeJSONResponse(w, http.StatusOK, toAttendanceStatusResponse(status))
}

// AttendanceHistory は入館履歴を返す。
// GET /api/member/attendance?limit=30
func (h *MemberHandler) AttendanceHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, err := h.service.AttendanceHistory(r.Context(), userID, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, toAttendanceResponses(records))
}

// PaymentHistory は支払い履歴を返す。
// GET /api/member/payments
func (h *MemberHandler) PaymentHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	payments, err := h.service.PaymentHistory(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, toPaymentResponses(payments))
}

// WorkoutPlans は割り当てられたトレーニング計画の一覧を返す。
// GET /api/member/plans
func (h *MemberHandler) WorkoutPlans(w http.ResponseWriter, r *http.Request) {
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

// SubmitFeedback はジムへのフィードバックを投稿する。
// POST /api/member/feedback
func (h *MemberHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req submitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	feedback, err := h.service.SubmitFeedback(r.Context(), userID, req.Rating, req.Comment)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.recorder != nil {
		h.recorder.RecordFeedback(feedback.Rating)
	}

	writeJSONResponse(w, http.StatusCreated, toFeedbackResponse(feedback))
}

// FeedbackHistory は自分の過去のフィードバックを返す。
// GET /api/member/feedback
func (h *MemberHandler) FeedbackHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	items, err := h.service.FeedbackHistory(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, toFeedbackResponses(items))
}

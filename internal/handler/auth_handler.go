package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tanishqswami/fit-hub-management-system/internal/middleware"
	"github.com/tanishqswami/fit-hub-management-system/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	SignUp(ctx context.Context, email, password, name string, role model.Role) (*model.Session, error)
	SignIn(ctx context.Context, email, password string) (*model.Session, error)
	SignOut(ctx context.Context, sessionID string) error
	CurrentProfile(ctx context.Context, sessionID string) (*model.Profile, error)
}

// AuthMetricsRecorder は認証イベントのメトリクス記録に必要なインターフェース。
// metrics.Collectorの部分集合として定義する。
type AuthMetricsRecorder interface {
	RecordLogin()
	RecordSignup(role string)
}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	CookieDomain  string
	CookieSecure  bool
	SessionMaxAge int // セッションCookieの有効期間（秒）
}

// AuthHandler はサインアップ・サインイン関連のHTTPハンドラー。
type AuthHandler struct {
	service  AuthServiceInterface
	config   AuthHandlerConfig
	recorder AuthMetricsRecorder
}

// NewAuthHandler はAuthHandlerを生成する。
// recorderがnilの場合はメトリクス記録をスキップする。
func NewAuthHandler(service AuthServiceInterface, config AuthHandlerConfig, recorder AuthMetricsRecorder) *AuthHandler {
	return &AuthHandler{
		service:  service,
		config:   config,
		recorder: recorder,
	}
}

// signUpRequest はサインアップリクエストのボディ。
type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// signInRequest はサインインリクエストのボディ。
type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// profileResponse はプロフィール情報のAPIレスポンス。
type profileResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toProfileResponse(p *model.Profile) profileResponse {
	return profileResponse{
		ID:    p.ID,
		Name:  p.Name,
		Email: p.Email,
		Role:  string(p.Role),
	}
}

// SignUp は新規登録を処理する。
// POST /auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	role, err := model.ParseRole(req.Role)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewUnknownRoleError(req.Role))
		return
	}

	session, err := h.service.SignUp(r.Context(), req.Email, req.Password, req.Name, role)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.recorder != nil {
		h.recorder.RecordSignup(string(role))
	}

	h.setSessionCookie(w, session.ID)

	profile, err := h.service.CurrentProfile(r.Context(), session.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, toProfileResponse(profile))
}

// SignIn はサインインを処理する。
// POST /auth/login
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	session, err := h.service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.recorder != nil {
		h.recorder.RecordLogin()
	}

	h.setSessionCookie(w, session.ID)

	profile, err := h.service.CurrentProfile(r.Context(), session.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, toProfileResponse(profile))
}

// SignOut はセッションを破棄する。
// POST /auth/logout
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err == nil && cookie.Value != "" {
		if signOutErr := h.service.SignOut(r.Context(), cookie.Value); signOutErr != nil {
			slog.Error("failed to sign out", slog.String("error", signOutErr.Error()))
			// サインアウト失敗してもCookieはクリアする
		}
	}

	h.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me は現在のログインユーザーのプロフィールを返す。
// GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err != nil || cookie.Value == "" {
		writeUnauthorized(w)
		return
	}

	profile, err := h.service.CurrentProfile(r.Context(), cookie.Value)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toProfileResponse(profile))
}

// setSessionCookie はセッションCookieを設定する（HTTP Only）。
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   h.config.SessionMaxAge,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie はセッションCookieをクリアする。
func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

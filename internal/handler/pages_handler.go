package handler

import (
	"net/http"

	"github.com/tanishqswami/fit-hub-management-system/internal/authz"
	"github.com/tanishqswami/fit-hub-management-system/internal/middleware"
)

// viewDescriptor はページルートが返す画面記述。
// フロントエンドはこの記述をもとに画面を組み立てる。
type viewDescriptor struct {
	View  string   `json:"view"`
	Title string   `json:"title"`
	Path  string   `json:"path"`
	Nav   []string `json:"nav,omitempty"`
}

// PagesHandler は画面ルートのHTTPハンドラー。
// 認可はページガードミドルウェアが行い、ここでは画面記述のみを返す。
type PagesHandler struct{}

// NewPagesHandler はPagesHandlerを生成する。
func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

// Root はルートパスをロールのホームへ振り分ける。
// GET /
func (h *PagesHandler) Root(w http.ResponseWriter, r *http.Request) {
	profile, err := middleware.ProfileFromContext(r.Context())
	if err != nil {
		// ページガードが先に処理するため通常は到達しない
		http.Redirect(w, r, authz.PathSignIn, http.StatusFound)
		return
	}

	home, ok := authz.HomePath(profile.Role)
	if !ok {
		http.Redirect(w, r, authz.PathSignIn, http.StatusFound)
		return
	}
	http.Redirect(w, r, home, http.StatusFound)
}

// SignInPage はサインイン画面の記述を返す。
// GET /auth
func (h *PagesHandler) SignInPage(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, viewDescriptor{
		View:  "auth",
		Title: "サインイン",
		Path:  authz.PathSignIn,
	})
}

// AdminDashboardPage は管理者ダッシュボード画面の記述を返す。
// GET /admin
func (h *PagesHandler) AdminDashboardPage(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, viewDescriptor{
		View:  "admin_dashboard",
		Title: "管理者ダッシュボード",
		Path:  authz.PathAdminHome,
		Nav:   []string{"/admin", "/admin/users", "/admin/memberships"},
	})
}

// AdminUsersPage はユーザー管理画面の記述を返す。
// GET /admin/users
func (h *PagesHandler) AdminUsersPage(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, viewDescriptor{
		View:  "admin_users",
		Title: "ユーザー管理",
		Path:  "/admin/users",
		Nav:   []string{"/admin", "/admin/users", "/admin/memberships"},
	})
}

// AdminMembershipsPage は会員プラン管理画面の記述を返す。
// GET /admin/memberships
func (h *PagesHandler) AdminMembershipsPage(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, viewDescriptor{
		View:  "admin_memberships",
		Title: "会員プラン管理",
		Path:  "/admin/memberships",
		Nav:   []string{"/admin", "/admin/users", "/admin/memberships"},
	})
}

// TrainerDashboardPage はトレーナーダッシュボード画面の記述を返す。
// GET /trainer
func (h *PagesHandler) TrainerDashboardPage(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, viewDescriptor{
		View:  "trainer_dashboard",
		Title: "トレーナーダッシュボード",
		Path:  authz.PathTrainerHome,
		Nav:   []string{"/trainer"},
	})
}

// MemberDashboardPage は会員ダッシュボード画面の記述を返す。
// GET /member
func (h *PagesHandler) MemberDashboardPage(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, viewDescriptor{
		View:  "member_dashboard",
		Title: "会員ダッシュボード",
		Path:  authz.PathMemberHome,
		Nav:   []string{"/member", "/member/feedback"},
	})
}

// MemberFeedbackPage はフィードバック投稿画面の記述を返す。
// GET /member/feedback
func (h *PagesHandler) MemberFeedbackPage(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, viewDescriptor{
		View:  "member_feedback",
		Title: "フィードバック",
		Path:  "/member/feedback",
		Nav:   []string{"/member", "/member/feedback"},
	})
}

// NotFound は未定義ルートの404画面記述を返す。
func (h *PagesHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusNotFound, viewDescriptor{
		View:  "not_found",
		Title: "ページが見つかりません",
		Path:  r.URL.Path,
	})
}

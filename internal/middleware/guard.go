package middleware

import (
	"net/http"
	"net/url"

	"github.com/tanishqswami/fit-hub-management-system/internal/authz"
	"github.com/tanishqswami/fit-hub-management-system/internal/model"
)

// sessionFromRequest はリクエストコンテキストから認可判定用のセッション状態を組み立てる。
// サーバー側ではセッション解決が同期的に完了しているため、Loadingにはならない。
func sessionFromRequest(r *http.Request) authz.Session {
	profile, err := ProfileFromContext(r.Context())
	if err != nil {
		return authz.Session{}
	}
	return authz.Session{
		Authenticated: true,
		UserID:        profile.ID,
		Email:         profile.Email,
		Profile:       profile,
	}
}

// redirectWithFrom はリダイレクト先に遷移元パスをクエリパラメータとして付与する。
func redirectWithFrom(w http.ResponseWriter, r *http.Request, target, from string) {
	if from != "" && from != target {
		target = target + "?from=" + url.QueryEscape(from)
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// NewPageGuard はページルート用の認可ミドルウェアを返す。
// セッションローダーの後に配置する。
// 未認証ならサインインページへ、ロール不一致ならそのロールのホームへ302で誘導する。
// allowedRolesが空の場合は認証済みであれば全ロールを許可する。
func NewPageGuard(allowedRoles ...model.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := authz.Authorize(r.URL.Path, allowedRoles, sessionFromRequest(r))

			switch decision.Kind {
			case authz.DecisionAllow:
				next.ServeHTTP(w, r)
			case authz.DecisionRedirect:
				redirectWithFrom(w, r, decision.Target, decision.From)
			default:
				// サーバー側ではセッション解決が同期のためここには到達しない
				next.ServeHTTP(w, r)
			}
		})
	}
}

// NewLoginPageRedirect はサインインページ用のミドルウェアを返す。
// 認証済みユーザーがサインインページを開いた場合、
// そのロールのホームへ302で誘導する。
func NewLoginPageRedirect() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if target, ok := authz.LoginRedirect(r.URL.Path, sessionFromRequest(r)); ok {
				http.Redirect(w, r, target, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

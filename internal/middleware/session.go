// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tanishqswami/fit-hub-management-system/internal/model"
)

// SessionCookieName はセッションIDを保持するCookieの名前。
const SessionCookieName = "session_id"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// profileContextKey はリクエストコンテキストにプロフィールを格納するためのキー。
var profileContextKey = contextKey("profile")

// ProfileResolver はセッションIDからプロフィールを解決するインターフェース。
// auth.Serviceの部分集合として定義する。
type ProfileResolver interface {
	CurrentProfile(ctx context.Context, sessionID string) (*model.Profile, error)
}

// NewSessionLoader はHTTP Only Cookieからセッションを読み取り、
// 解決できたプロフィールをリクエストコンテキストに注入するミドルウェアを返す。
// Cookieがない・セッションが無効な場合は匿名のまま後続に渡す。
// 認可の判定はRequireSession/RequireRolesまたはページガードで行う。
func NewSessionLoader(resolver ProfileResolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			profile, err := resolver.CurrentProfile(r.Context(), cookie.Value)
			if err != nil {
				var apiErr *model.APIError
				if !errors.As(err, &apiErr) {
					// 認証エラー以外（DB障害等）はログのみ記録し、匿名として扱う
					slog.Error("failed to resolve session",
						slog.String("error", err.Error()),
					)
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := ContextWithProfile(r.Context(), profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NewRequireSession は認証済みリクエストのみを通すミドルウェアを返す。
// セッションローダーの後に配置する。未認証リクエストには401を返す。
func NewRequireSession() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := ProfileFromContext(r.Context()); err != nil {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUserNotFoundError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NewRequireRoles は指定ロールのリクエストのみを通すミドルウェアを返す。
// RequireSessionの後に配置する。ロール不一致には403を返す。
func NewRequireRoles(roles ...model.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile, err := ProfileFromContext(r.Context())
			if err != nil {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUserNotFoundError())
				return
			}

			for _, role := range roles {
				if profile.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			slog.Warn("role check failed",
				slog.String("user_id", profile.ID),
				slog.String("role", string(profile.Role)),
				slog.String("path", r.URL.Path),
			)
			WriteErrorResponse(w, http.StatusForbidden, &model.APIError{
				Code:     "FORBIDDEN",
				Message:  "この操作を行う権限がありません。",
				Category: "auth",
				Action:   "権限のあるアカウントでログインしてください。",
			})
		})
	}
}

// ProfileFromContext はリクエストコンテキストからプロフィールを取得する。
// セッションローダーを通過した認証済みリクエストでのみ有効。
func ProfileFromContext(ctx context.Context) (*model.Profile, error) {
	profile, ok := ctx.Value(profileContextKey).(*model.Profile)
	if !ok || profile == nil {
		return nil, fmt.Errorf("profile not found in context")
	}
	return profile, nil
}

// UserIDFromContext はリクエストコンテキストから認証済みユーザーIDを取得する。
func UserIDFromContext(ctx context.Context) (string, error) {
	profile, err := ProfileFromContext(ctx)
	if err != nil {
		return "", err
	}
	return profile.ID, nil
}

// ContextWithProfile はコンテキストにプロフィールを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithProfile(ctx context.Context, profile *model.Profile) context.Context {
	return context.WithValue(ctx, profileContextKey, profile)
}

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tanishqswami/fit-hub-management-system/internal/authz"
	"github.com/tanishqswami/fit-hub-management-system/internal/middleware"
	"github.com/tanishqswami/fit-hub-management-system/internal/model"
)

// Pinger はヘルスチェックに必要なデータベース接続確認のインターフェース。
// *sql.DB の部分集合として定義する。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	ProfileResolver   middleware.ProfileResolver
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	CSRFConfig        middleware.CSRFConfig
	HTTPMetrics       middleware.HTTPMetricsRecorder

	// 監視
	MetricsHandler http.Handler
	DB             Pinger

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig
	AuthMetrics AuthMetricsRecorder

	// ダッシュボード
	AdminService      AdminServiceInterface
	TrainerService    TrainerServiceInterface
	MemberService     MemberServiceInterface
	AttendanceMetrics AttendanceMetricsRecorder
}

// NewRouter は全ルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → (SessionLoader → 認可)
//
// ページルートは302リダイレクトで誘導し、APIルートは401/403のJSONを返す。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.HTTPMetrics))

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig, deps.AuthMetrics)
	adminHandler := NewAdminHandler(deps.AdminService)
	trainerHandler := NewTrainerHandler(deps.TrainerService)
	memberHandler := NewMemberHandler(deps.MemberService, deps.AttendanceMetrics)
	pagesHandler := NewPagesHandler()

	sessionLoader := middleware.NewSessionLoader(deps.ProfileResolver)
	csrf := middleware.NewCSRFMiddleware(deps.CSRFConfig)

	// --- 監視エンドポイント ---

	r.Get("/healthz", newHealthzHandler(deps.DB))
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// --- 認証ルート ---
	// サインイン・サインアップは未認証が対象のため、ログイン試行レート制限をかける。
	r.Route("/auth", func(r chi.Router) {
		r.Use(csrf)

		r.Get("/csrf-token", middleware.NewCSRFTokenHandler(deps.CSRFConfig).ServeHTTP)
		r.With(deps.RateLimiter.LoginMiddleware()).Post("/signup", authHandler.SignUp)
		r.With(deps.RateLimiter.LoginMiddleware()).Post("/login", authHandler.SignIn)
		r.Post("/logout", authHandler.SignOut)
		r.Get("/me", authHandler.Me)
	})

	// --- ページルート ---
	// 認可はページガードが302リダイレクトで処理する。
	r.Group(func(r chi.Router) {
		r.Use(sessionLoader)

		r.With(middleware.NewPageGuard()).Get("/", pagesHandler.Root)
		r.With(middleware.NewLoginPageRedirect()).Get(authz.PathSignIn, pagesHandler.SignInPage)

		adminGuard := middleware.NewPageGuard(model.RoleAdmin)
		r.With(adminGuard).Get("/admin", pagesHandler.AdminDashboardPage)
		r.With(adminGuard).Get("/admin/users", pagesHandler.AdminUsersPage)
		r.With(adminGuard).Get("/admin/memberships", pagesHandler.AdminMembershipsPage)

		r.With(middleware.NewPageGuard(model.RoleTrainer)).Get("/trainer", pagesHandler.TrainerDashboardPage)

		memberGuard := middleware.NewPageGuard(model.RoleMember)
		r.With(memberGuard).Get("/member", pagesHandler.MemberDashboardPage)
		r.With(memberGuard).Get("/member/feedback", pagesHandler.MemberFeedbackPage)
	})

	// --- APIルート ---
	// ミドルウェアスタック: SessionLoader → RequireSession → RateLimit(General) → CSRF → ロールガード
	r.Group(func(r chi.Router) {
		r.Use(sessionLoader)
		r.Use(middleware.NewRequireSession())
		r.Use(deps.RateLimiter.GeneralMiddleware())
		r.Use(csrf)

		// 管理者向けAPI
		r.Route("/api/admin", func(r chi.Router) {
			r.Use(middleware.NewRequireRoles(model.RoleAdmin))

			r.Get("/dashboard", adminHandler.Dashboard)

			r.Get("/users", adminHandler.ListUsers)
			r.Delete("/users/{id}", adminHandler.DeleteUser)

			r.Get("/members", adminHandler.ListMembers)
			r.Put("/members/{id}/trainer", adminHandler.AssignTrainer)
			r.Put("/members/{id}/membership", adminHandler.AssignMembership)
			r.Post("/members/{id}/payments", adminHandler.RecordPayment)

			r.Get("/trainers", adminHandler.ListTrainers)
			r.Put("/trainers/{id}", adminHandler.UpdateTrainer)

			r.Route("/plans", func(r chi.Router) {
				r.Get("/", adminHandler.ListMembershipPlans)
				r.Post("/", adminHandler.CreateMembershipPlan)
				r.Put("/{id}", adminHandler.UpdateMembershipPlan)
				r.Delete("/{id}", adminHandler.DeleteMembershipPlan)
			})
		})

		// トレーナー向けAPI
		r.Route("/api/trainer", func(r chi.Router) {
			r.Use(middleware.NewRequireRoles(model.RoleTrainer))

			r.Get("/members", trainerHandler.AssignedMembers)

			r.Route("/plans", func(r chi.Router) {
				r.Get("/", trainerHandler.WorkoutPlans)
				r.Post("/", trainerHandler.CreateWorkoutPlan)
				r.Delete("/{id}", trainerHandler.DeleteWorkoutPlan)
			})
		})

		// 会員向けAPI
		r.Route("/api/member", func(r chi.Router) {
			r.Use(middleware.NewRequireRoles(model.RoleMember))

			r.Get("/overview", memberHandler.Overview)
			r.Post("/attendance/toggle", memberHandler.ToggleAttendance)
			r.Get("/attendance", memberHandler.AttendanceHistory)
			r.Get("/payments", memberHandler.PaymentHistory)
			r.Get("/plans", memberHandler.WorkoutPlans)
			r.Post("/feedback", memberHandler.SubmitFeedback)
			r.Get("/feedback", memberHandler.FeedbackHistory)
		})
	})

	r.NotFound(pagesHandler.NotFound)

	return r
}

// newHealthzHandler はデータベース接続を確認するヘルスチェックハンドラーを返す。
func newHealthzHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				slog.Error("healthcheck failed", slog.String("error", err.Error()))
				writeJSONResponse(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
				})
				return
			}
		}

		writeJSONResponse(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	}
}

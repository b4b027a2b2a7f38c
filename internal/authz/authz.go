// Package authz はロールベースの認可判定を提供する。
//
// ルートガードは現在のパス・許可ロール・セッション状態から描画可否と
// リダイレクト先を決定する純粋関数として実装する。ナビゲーション等の
// 副作用は呼び出し側（HTTPミドルウェア）が担う。
package authz

import (
	"github.com/tanishqswami/fit-hub-management-system/internal/model"
)

// 固定ルート定義。
const (
	// PathSignIn はサインイン画面のパス。未認証リダイレクトの行き先。
	PathSignIn = "/auth"
	// PathAdminHome は管理者のホームルート。
	PathAdminHome = "/admin"
	// PathTrainerHome はトレーナーのホームルート。
	PathTrainerHome = "/trainer"
	// PathMemberHome は会員のホームルート。
	PathMemberHome = "/member"
)

// HomePath はロールをホームルートに解決する。
// 定義外のロールの場合はok=falseを返し、リダイレクト先を生成しない。
// 呼び出し側は認証エラー（再ログイン要求）として扱うこと。
func HomePath(role model.Role) (path string, ok bool) {
	switch role {
	case model.RoleAdmin:
		return PathAdminHome, true
	case model.RoleTrainer:
		return PathTrainerHome, true
	case model.RoleMember:
		return PathMemberHome, true
	default:
		return "", false
	}
}

// Session はガード判定に必要なセッション状態のスナップショット。
// Loadingは初期セッション確認またはプロフィールフェッチが未完了であることを示す。
type Session struct {
	Loading       bool
	Authenticated bool           // 認証済みアイデンティティの有無
	UserID        string         // 認証済みの場合の外部ID
	Email         string         // 認証済みの場合のメールアドレス
	Profile       *model.Profile // フェッチ済みプロフィール。未取得の場合はnil
}

// DecisionKind はガード判定の種別を表す。
type DecisionKind int

const (
	// DecisionLoading はセッション確認中のため判定を保留することを示す。
	DecisionLoading DecisionKind = iota
	// DecisionRedirect は指定パスへのリダイレクトを示す。
	DecisionRedirect
	// DecisionAllow はガード対象コンテンツの描画許可を示す。
	DecisionAllow
)

// Decision はガード判定の結果を表す。
type Decision struct {
	Kind   DecisionKind
	Target string // Kind==DecisionRedirect の場合のリダイレクト先
	From   string // サインインへのリダイレクト時に保持する元のパス
}

// Authorize はガード対象ビューの描画可否を判定する。
//
// 判定順序:
//  1. セッション確認中 → 判定保留（ローディング表示）。
//  2. 未認証 → サインインへリダイレクト。元のパスをFromに保持する。
//  3. プロフィール未取得（認証済みだがフェッチ未完了）→ 判定保留。
//  4. allowedRolesが非空でロールが含まれない → 実際のロールのホームへ
//     リダイレクト。ロールが定義外の場合はサインインへフォールバック。
//  5. それ以外 → 描画許可。
//
// セッション状態を変更しない。
func Authorize(currentPath string, allowedRoles []model.Role, s Session) Decision {
	if s.Loading {
		return Decision{Kind: DecisionLoading}
	}

	if !s.Authenticated {
		return Decision{
			Kind:   DecisionRedirect,
			Target: PathSignIn,
			From:   currentPath,
		}
	}

	if s.Profile == nil {
		// アイデンティティはあるがプロフィールが未解決。
		// フェッチ完了まで描画もリダイレクトも行わない。
		return Decision{Kind: DecisionLoading}
	}

	if len(allowedRoles) > 0 && !roleAllowed(s.Profile.Role, allowedRoles) {
		home, ok := HomePath(s.Profile.Role)
		if !ok {
			// 定義外ロールは認証エラー扱い: サインインへ戻す。
			return Decision{
				Kind:   DecisionRedirect,
				Target: PathSignIn,
				From:   currentPath,
			}
		}
		return Decision{
			Kind:   DecisionRedirect,
			Target: home,
		}
	}

	return Decision{Kind: DecisionAllow}
}

// LoginRedirect はログイン直後のホーム遷移先を返す。
// 現在のパスがサインインルートの場合のみ発火し、アプリ内ナビゲーションを
// 乗っ取らない。ロールが解決済みのセッションに対して1回だけ適用されることを
// 想定しており、ホームルート滞在中の再評価では発火しない。
func LoginRedirect(currentPath string, s Session) (target string, ok bool) {
	if currentPath != PathSignIn {
		return "", false
	}
	if s.Loading || !s.Authenticated || s.Profile == nil {
		return "", false
	}
	return HomePath(s.Profile.Role)
}

// roleAllowed はロールが許可リストに含まれるかを返す。
func roleAllowed(role model.Role, allowed []model.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/tanishqswami/fit-hub-management-system/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// List は全ユーザーを作成日時降順で返す。
	List(ctx context.Context) ([]*model.User, error)

	// DeleteByID は指定IDのユーザーを削除する。
	// 関連するsessions、members、trainersはCASCADE削除される。
	DeleteByID(ctx context.Context, id string) error
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
	// DeleteByUserID は指定ユーザーの全セッションを削除する。
	DeleteByUserID(ctx context.Context, userID string) error
}

// MembershipRepository は会員プランの永続化インターフェース。
type MembershipRepository interface {
	// FindByID は指定IDのプランを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Membership, error)

	// Create はプランを作成する。
	Create(ctx context.Context, membership *model.Membership) error

	// List は全プランを作成日時昇順で返す。
	List(ctx context.Context) ([]*model.Membership, error)

	// Update はプラン情報を更新する。
	Update(ctx context.Context, membership *model.Membership) error

	// DeleteByID は指定IDのプランを削除する。
	// 契約中の会員のmembership_idはNULLに設定される。
	DeleteByID(ctx context.Context, id string) error
}

// TrainerRepository はトレーナーデータの永続化インターフェース。
type TrainerRepository interface {
	// FindByID は指定IDのトレーナーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Trainer, error)

	// FindByUserID はユーザーIDでトレーナーを検索する。見つからない場合はnilを返す。
	FindByUserID(ctx context.Context, userID string) (*model.Trainer, error)

	// List は全トレーナーを作成日時昇順で返す。
	List(ctx context.Context) ([]*model.Trainer, error)

	// Update はトレーナーの専門分野・電話番号を更新する。
	Update(ctx context.Context, trainer *model.Trainer) error

	// ListWithMemberCounts は全トレーナーを担当会員数付きで会員数降順で返す。
	// 先頭要素が「担当会員数最多のトレーナー」になる。
	ListWithMemberCounts(ctx context.Context) ([]TrainerWithMemberCount, error)
}

// MemberRepository は会員データの永続化インターフェース。
type MemberRepository interface {
	// FindByID は指定IDの会員を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Member, error)

	// FindByUserID はユーザーIDで会員を検索する。見つからない場合はnilを返す。
	FindByUserID(ctx context.Context, userID string) (*model.Member, error)

	// ListWithUserInfo は全会員を氏名・メール付きで入会日時降順で返す。
	ListWithUserInfo(ctx context.Context) ([]MemberWithUser, error)

	// ListByTrainerID は指定トレーナー担当の会員を氏名・メール付きで返す。
	ListByTrainerID(ctx context.Context, trainerID string) ([]MemberWithUser, error)

	// Count は会員数を返す。
	Count(ctx context.Context) (int, error)

	// AssignTrainer は会員の担当トレーナーを設定する。
	AssignTrainer(ctx context.Context, memberID, trainerID string) error

	// AssignMembership は会員の契約プランを設定する。
	AssignMembership(ctx context.Context, memberID, membershipID string) error
}

// PaymentRepository は支払いデータの永続化インターフェース。
type PaymentRepository interface {
	// Create は支払い記録を作成する。
	Create(ctx context.Context, payment *model.Payment) error

	// ListByMemberID は指定会員の支払い履歴を支払日時降順で返す。
	ListByMemberID(ctx context.Context, memberID string) ([]*model.Payment, error)

	// ListRecent は直近の支払いをlimit件まで支払日時降順で返す。
	ListRecent(ctx context.Context, limit int) ([]*model.Payment, error)

	// TotalRevenue は全支払いの合計金額を返す。支払いが無い場合は0を返す。
	TotalRevenue(ctx context.Context) (int64, error)
}

// AttendanceRepository は入退館データの永続化インターフェース。
type AttendanceRepository interface {
	// Create は入館記録を作成する。
	Create(ctx context.Context, attendance *model.Attendance) error

	// FindOpenByMemberID は指定会員の未退館レコードを取得する。
	// 入館中でない場合はnilを返す。
	FindOpenByMemberID(ctx context.Context, memberID string) (*model.Attendance, error)

	// Close は指定レコードの退館時刻を記録する。
	Close(ctx context.Context, id string, checkOutAt time.Time) error

	// ListByMemberID は指定会員の入退館履歴を入館日時降順でlimit件まで返す。
	ListByMemberID(ctx context.Context, memberID string, limit int) ([]*model.Attendance, error)
}

// FeedbackRepository はフィードバックデータの永続化インターフェース。
type FeedbackRepository interface {
	// Create はフィードバックを作成する。
	Create(ctx context.Context, feedback *model.Feedback) error

	// ListByMemberID は指定会員のフィードバックを作成日時降順で返す。
	ListByMemberID(ctx context.Context, memberID string) ([]*model.Feedback, error)

	// List は全フィードバックを作成日時降順でlimit件まで返す。
	List(ctx context.Context, limit int) ([]*model.Feedback, error)
}

// WorkoutPlanRepository はトレーニング計画の永続化インターフェース。
type WorkoutPlanRepository interface {
	// FindByID は指定IDの計画を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.WorkoutPlan, error)

	// Create は計画を作成する。
	Create(ctx context.Context, plan *model.WorkoutPlan) error

	// ListByMemberID は指定会員の計画を作成日時降順で返す。
	ListByMemberID(ctx context.Context, memberID string) ([]*model.WorkoutPlan, error)

	// ListByTrainerID は指定トレーナーの計画を作成日時降順で返す。
	ListByTrainerID(ctx context.Context, trainerID string) ([]*model.WorkoutPlan, error)

	// DeleteByID は指定IDの計画を削除する。
	DeleteByID(ctx context.Context, id string) error
}

// TrainerWithMemberCount はトレーナーと担当会員数を結合した構造体。
type TrainerWithMemberCount struct {
	model.Trainer
	TrainerName string
	MemberCount int
}

// MemberWithUser は会員とユーザー情報（氏名・メール）を結合した構造体。
type MemberWithUser struct {
	model.Member
	Name  string
	Email string
}

// TxBeginner はトランザクション開始用のインターフェース。
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Queryer はクエリ実行の抽象化インターフェース。
// *sql.DB と *sql.Tx の両方が満たすため、リポジトリを
// トランザクション内外で使い分けられる。
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// RegistrationRepository はサインアップ時のユーザー登録を提供する。
// ユーザーとロール別レコード（member/trainer）は単一トランザクションで
// 作成され、一方が失敗した場合は全体がロールバックされる。
type RegistrationRepository interface {
	// CreateUserWithRole はユーザーとロール別レコードを原子的に作成する。
	// memberとtrainerはロールに応じて一方のみ（adminは両方nil）を渡す。
	CreateUserWithRole(ctx context.Context, user *model.User, member *model.Member, trainer *model.Trainer) error
}

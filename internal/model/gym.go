package model

import "time"

// Membership は会員プラン（期間と料金）を表す。
type Membership struct {
	ID             string
	Name           string
	DurationMonths int
	Price          int64 // 最小通貨単位（円）
	CreatedAt      time.Time
}

// Trainer はトレーナーを表す。usersレコードに1対1で紐付く。
type Trainer struct {
	ID             string
	UserID         string
	Specialization string
	Phone          string
	CreatedAt      time.Time
}

// Member は会員を表す。usersレコードに1対1で紐付き、
// 担当トレーナーと契約中プランへの参照を任意で持つ。
type Member struct {
	ID           string
	UserID       string
	TrainerID    string // 未割当の場合は空
	MembershipID string // 未契約の場合は空
	JoinedAt     time.Time
}

// Payment は会員の支払い記録を表す。
type Payment struct {
	ID       string
	MemberID string
	Amount   int64
	Method   string
	PaidAt   time.Time
}

// Attendance は会員の入退館記録を表す。
// 退館前のレコードはCheckOutAtがnilのまま保持される。
type Attendance struct {
	ID         string
	MemberID   string
	CheckInAt  time.Time
	CheckOutAt *time.Time
}

// Open は退館記録がまだ無い（入館中の）レコードかどうかを返す。
func (a *Attendance) Open() bool {
	return a.CheckOutAt == nil
}

// Feedback は会員からのフィードバックを表す。
type Feedback struct {
	ID        string
	MemberID  string
	Rating    int // 1〜5
	Comment   string
	CreatedAt time.Time
}

// WorkoutPlan はトレーナーが会員向けに作成するトレーニング計画を表す。
type WorkoutPlan struct {
	ID          string
	MemberID    string
	TrainerID   string
	Title       string
	Description string
	CreatedAt   time.Time
}

// Package model はドメインモデルを定義する。
package model

import "time"

// User はジム管理システムの利用者を表す。
// 管理者・トレーナー・会員の全員がusersテーブルに1レコードを持つ。
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile は認証済みユーザーに紐付くロール・名前・メールの参照ビュー。
// ログイン後にフェッチされ、ルートガードの判定材料になる。
type Profile struct {
	ID    string
	Name  string
	Email string
	Role  Role
}

// Profile はUserからProfileビューを生成する。
func (u *User) Profile() *Profile {
	return &Profile{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// Session はユーザーのログインセッションを表す。
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

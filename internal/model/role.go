package model

import "fmt"

// Role はユーザーのロールを表す。
// ロールはちょうど1つの「ホームルート」を決定する。
type Role string

const (
	// RoleAdmin は管理者。
	RoleAdmin Role = "admin"
	// RoleTrainer はトレーナー。
	RoleTrainer Role = "trainer"
	// RoleMember は会員。
	RoleMember Role = "member"
)

// ParseRole は文字列からRoleを解析する。
// admin, trainer, member 以外の値はエラーを返す。
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleTrainer, RoleMember:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

// Valid はロールが定義済みの3値のいずれかであるかを返す。
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTrainer, RoleMember:
		return true
	default:
		return false
	}
}

// String はロールの文字列表現を返す。
func (r Role) String() string {
	return string(r)
}

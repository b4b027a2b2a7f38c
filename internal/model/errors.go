package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, gym, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	ErrCodeEmailTaken          = "EMAIL_TAKEN"
	ErrCodeUnknownRole         = "UNKNOWN_ROLE"
	ErrCodeUserNotFound        = "USER_NOT_FOUND"
	ErrCodeMemberNotFound      = "MEMBER_NOT_FOUND"
	ErrCodeTrainerNotFound     = "TRAINER_NOT_FOUND"
	ErrCodePlanNotFound        = "PLAN_NOT_FOUND"
	ErrCodeWorkoutPlanNotFound = "WORKOUT_PLAN_NOT_FOUND"
	ErrCodeInvalidRating       = "INVALID_RATING"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeRateLimitExceeded   = "RATE_LIMIT_EXCEEDED"
)

// NewInvalidCredentialsError は認証情報不一致エラーを生成する。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "メールアドレスまたはパスワードが正しくありません。",
		Category: "auth",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewEmailTakenError はメールアドレス重複エラーを生成する。
func NewEmailTakenError(email string) *APIError {
	return &APIError{
		Code:     ErrCodeEmailTaken,
		Message:  fmt.Sprintf("このメールアドレスは既に登録されています: %s", email),
		Category: "auth",
		Action:   "別のメールアドレスで登録するか、ログインしてください。",
	}
}

// NewUnknownRoleError は未知のロールエラーを生成する。
// プロフィールに定義外のロールが含まれる場合は認証エラーとして扱い、
// 再ログインを要求する。
func NewUnknownRoleError(role string) *APIError {
	return &APIError{
		Code:     ErrCodeUnknownRole,
		Message:  fmt.Sprintf("アカウントのロールが不正です: %s", role),
		Category: "auth",
		Action:   "ログインし直してください。解決しない場合は管理者に連絡してください。",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "ユーザーが見つかりません。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}

// NewMemberNotFoundError は会員が見つからない場合のエラーを生成する。
func NewMemberNotFoundError(memberID string) *APIError {
	return &APIError{
		Code:     ErrCodeMemberNotFound,
		Message:  fmt.Sprintf("指定された会員が見つかりません: %s", memberID),
		Category: "gym",
		Action:   "会員IDを確認してください。",
	}
}

// NewTrainerNotFoundError はトレーナーが見つからない場合のエラーを生成する。
func NewTrainerNotFoundError(trainerID string) *APIError {
	return &APIError{
		Code:     ErrCodeTrainerNotFound,
		Message:  fmt.Sprintf("指定されたトレーナーが見つかりません: %s", trainerID),
		Category: "gym",
		Action:   "トレーナーIDを確認してください。",
	}
}

// NewPlanNotFoundError は会員プランが見つからない場合のエラーを生成する。
func NewPlanNotFoundError(planID string) *APIError {
	return &APIError{
		Code:     ErrCodePlanNotFound,
		Message:  fmt.Sprintf("指定された会員プランが見つかりません: %s", planID),
		Category: "gym",
		Action:   "プランIDを確認してください。",
	}
}

// NewWorkoutPlanNotFoundError はトレーニング計画が見つからない場合のエラーを生成する。
func NewWorkoutPlanNotFoundError(planID string) *APIError {
	return &APIError{
		Code:     ErrCodeWorkoutPlanNotFound,
		Message:  fmt.Sprintf("指定されたトレーニング計画が見つかりません: %s", planID),
		Category: "gym",
		Action:   "計画IDを確認してください。",
	}
}

// NewInvalidRatingError は評価値が範囲外の場合のエラーを生成する。
func NewInvalidRatingError(rating int) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRating,
		Message:  fmt.Sprintf("無効な評価値です: %d", rating),
		Category: "validation",
		Action:   "評価は1から5の整数で指定してください。",
	}
}

// NewValidationError は入力検証エラーを生成する。
func NewValidationError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeValidationFailed,
		Message:  fmt.Sprintf("入力内容が不正です: %s", reason),
		Category: "validation",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

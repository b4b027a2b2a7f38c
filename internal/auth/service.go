// Package auth は認証フロー（サインアップ・サインイン・セッション管理）を提供する。
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tanishqswami/fit-hub-management-system/internal/model"
	"github.com/tanishqswami/fit-hub-management-system/internal/repository"
)

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	SessionMaxAge int // セッション有効期間（秒）
	BcryptCost    int // bcryptのコストパラメータ
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	userRepo         repository.UserRepository
	sessionRepo      repository.SessionRepository
	registrationRepo repository.RegistrationRepository
	config           ServiceConfig
}

// NewService はServiceを生成する。
func NewService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	registrationRepo repository.RegistrationRepository,
	config ServiceConfig,
) *Service {
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:         userRepo,
		sessionRepo:      sessionRepo,
		registrationRepo: registrationRepo,
		config:           config,
	}
}

// SignUp は新規ユーザーを登録し、セッションを発行する。
// ロールに応じたmembers/trainersレコードをユーザーと同一トランザクションで作成する。
// メールアドレスが登録済みの場合はEMAIL_TAKENエラーを返す。
func (s *Service) SignUp(ctx context.Context, email, password, name string, role model.Role) (*model.Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)

	if email == "" || name == "" {
		return nil, model.NewValidationError("メールアドレスと名前は必須です")
	}
	if len(password) < 8 {
		return nil, model.NewValidationError("パスワードは8文字以上で指定してください")
	}
	if !role.Valid() {
		return nil, model.NewUnknownRoleError(string(role))
	}

	// 1. メールアドレスの重複チェック
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, model.NewEmailTakenError(email)
	}

	// 2. パスワードハッシュの生成
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// 3. ユーザーとロール別レコードの作成
	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	var member *model.Member
	var trainer *model.Trainer
	switch role {
	case model.RoleMember:
		member = &model.Member{
			ID:       uuid.New().String(),
			UserID:   user.ID,
			JoinedAt: now,
		}
	case model.RoleTrainer:
		trainer = &model.Trainer{
			ID:        uuid.New().String(),
			UserID:    user.ID,
			CreatedAt: now,
		}
	}

	// ユーザーとロール別レコードは単一トランザクションで作成する。
	// ロール別レコードの作成に失敗した場合に孤児ユーザーを残さない。
	if err := s.registrationRepo.CreateUserWithRole(ctx, user, member, trainer); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	slog.Info("new user signed up",
		slog.String("user_id", user.ID),
		slog.String("email", email),
		slog.String("role", string(role)),
	)

	// 4. セッションを発行
	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// SignIn はメールアドレスとパスワードで認証し、セッションを発行する。
// 認証情報が不一致の場合はINVALID_CREDENTIALSエラーを返す。
// ユーザーのロールが定義外の場合はセッションを発行せずUNKNOWN_ROLEエラーを返す。
func (s *Service) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, model.NewInvalidCredentialsError()
	}

	// 定義外ロールは認証エラーとして扱い、ログインさせない。
	if !user.Role.Valid() {
		slog.Warn("sign-in rejected: unknown role",
			slog.String("user_id", user.ID),
			slog.String("role", string(user.Role)),
		)
		return nil, model.NewUnknownRoleError(string(user.Role))
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	slog.Info("user signed in",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return session, nil
}

// SignOut はセッションを破棄する。
func (s *Service) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session ID is required")
	}

	if err := s.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	slog.Info("user signed out", slog.String("session_id", sessionID))
	return nil
}

// CurrentProfile はセッションから現在のユーザープロフィールを取得する。
// セッションが無効・期限切れの場合はUSER_NOT_FOUNDエラーを返す。
// プロフィールのロールが定義外の場合は全セッションを破棄して
// UNKNOWN_ROLEエラーを返し、再ログインを要求する。
func (s *Service) CurrentProfile(ctx context.Context, sessionID string) (*model.Profile, error) {
	if sessionID == "" {
		return nil, model.NewUserNotFoundError()
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session == nil {
		return nil, model.NewUserNotFoundError()
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	if !user.Role.Valid() {
		// 定義外ロールを検出したら再ログインを強制する。
		slog.Warn("unknown role detected, revoking sessions",
			slog.String("user_id", user.ID),
			slog.String("role", string(user.Role)),
		)
		if err := s.sessionRepo.DeleteByUserID(ctx, user.ID); err != nil {
			slog.Error("failed to revoke sessions",
				slog.String("user_id", user.ID),
				slog.String("error", err.Error()),
			)
		}
		return nil, model.NewUnknownRoleError(string(user.Role))
	}

	return user.Profile(), nil
}

// createSession はセッションを作成し永続化する。
func (s *Service) createSession(ctx context.Context, userID string) (*model.Session, error) {
	sessionID, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	session := &model.Session{
		ID:        sessionID,
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Duration(s.config.SessionMaxAge) * time.Second),
		CreatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// generateSessionID は暗号的に安全なセッションIDを生成する。
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

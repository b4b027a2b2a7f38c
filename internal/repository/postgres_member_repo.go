package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tanishqswami/fit-hub-management-system/internal/model"
)

// PostgresMemberRepo はPostgreSQLを使用した会員リポジトリ。
type PostgresMemberRepo struct {
	db Queryer
}

// NewPostgresMemberRepo はPostgresMemberRepoを生成する。
// dbには*sql.DBのほか、トランザクション内で使う場合は*sql.Txを渡せる。
func NewPostgresMemberRepo(db Queryer) *PostgresMemberRepo {
	return &PostgresMemberRepo{db: db}
}

// scanMember は会員1行をスキャンする。trainer_idとmembership_idはNULL可。
func scanMember(row interface {
	Scan(dest ...interface{}) error
}) (*model.Member, error) {
	m := &model.Member{}
	var trainerID, membershipID sql.NullString
	if err := row.Scan(&m.ID, &m.UserID, &trainerID, &membershipID, &m.JoinedAt); err != nil {
		return nil, err
	}
	m.TrainerID = trainerID.String
	m.MembershipID = membershipID.String
	return m, nil
}

// FindByID は指定IDの会員を取得する。見つからない場合はnilを返す。
func (r *PostgresMemberRepo) FindByID(ctx context.Context, id string) (*model.Member, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, trainer_id, membership_id, joined_at
		 FROM members WHERE id = $1`,
		id,
	)
	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find member by ID: %w", err)
	}
	return m, nil
}

// FindByUserID はユーザーIDで会員を検索する。見つからない場合はnilを返す。
func (r *PostgresMemberRepo) FindByUserID(ctx context.Context, userID string) (*model.Member, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, trainer_id, membership_id, joined_at
		 FROM members WHERE user_id = $1`,
		userID,
	)
	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find member by user ID: %w", err)
	}
	return m, nil
}

// Create は会員を作成する。trainer_idとmembership_idが空の場合はNULLで保存する。
func (r *PostgresMemberRepo) Create(ctx context.Context, member *model.Member) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO members (id, user_id, trainer_id, membership_id, joined_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		member.ID, member.UserID, nullIfEmpty(member.TrainerID), nullIfEmpty(member.MembershipID), member.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// ListWithUserInfo は全会員を氏名・メール付きで入会日時降順で返す。
func (r *PostgresMemberRepo) ListWithUserInfo(ctx context.Context) ([]MemberWithUser, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT m.id, m.user_id, m.trainer_id, m.membership_id, m.joined_at, u.name, u.email
		 FROM members m
		 JOIN users u ON u.id = m.user_id
		 ORDER BY m.joined_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	return scanMembersWithUser(rows)
}

// ListByTrainerID は指定トレーナー担当の会員を氏名・メール付きで返す。
func (r *PostgresMemberRepo) ListByTrainerID(ctx context.Context, trainerID string) ([]MemberWithUser, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT m.id, m.user_id, m.trainer_id, m.membership_id, m.joined_at, u.name, u.email
		 FROM members m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.trainer_id = $1
		 ORDER BY m.joined_at DESC`,
		trainerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members by trainer: %w", err)
	}
	defer rows.Close()

	return scanMembersWithUser(rows)
}

// Count は会員数を返す。
func (r *PostgresMemberRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM members`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return count, nil
}

// AssignTrainer は会員の担当トレーナーを設定する。
func (r *PostgresMemberRepo) AssignTrainer(ctx context.Context, memberID, trainerID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE members SET trainer_id = $2 WHERE id = $1`,
		memberID, trainerID,
	)
	if err != nil {
		return fmt.Errorf("failed to assign trainer: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("member not found: %s", memberID)
	}
	return nil
}

// AssignMembership は会員の契約プランを設定する。
func (r *PostgresMemberRepo) AssignMembership(ctx context.Context, memberID, membershipID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE members SET membership_id = $2 WHERE id = $1`,
		memberID, membershipID,
	)
	if err != nil {
		return fmt.Errorf("failed to assign membership: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("member not found: %s", memberID)
	}
	return nil
}

// scanMembersWithUser は会員＋ユーザー情報の行セットをスキャンする。
func scanMembersWithUser(rows *sql.Rows) ([]MemberWithUser, error) {
	var members []MemberWithUser
	for rows.Next() {
		var mw MemberWithUser
		var trainerID, membershipID sql.NullString
		if err := rows.Scan(&mw.ID, &mw.UserID, &trainerID, &membershipID, &mw.JoinedAt, &mw.Name, &mw.Email); err != nil {
			return nil, fmt.Errorf("failed to scan member with user: %w", err)
		}
		mw.TrainerID = trainerID.String
		mw.MembershipID = membershipID.String
		members = append(members, mw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

// nullIfEmpty は空文字列をNULLとして扱うためのヘルパー。
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// compile-time interface check
var _ MemberRepository = (*PostgresMemberRepo)(nil)

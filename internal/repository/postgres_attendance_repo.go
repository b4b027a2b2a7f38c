package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tanishqswami/fit-hub-management-system/internal/model"
)

// PostgresAttendanceRepo はPostgreSQLを使用した入退館リポジトリ。
type PostgresAttendanceRepo struct {
	db *sql.DB
}

// NewPostgresAttendanceRepo はPostgresAttendanceRepoを生成する。
func NewPostgresAttendanceRepo(db *sql.DB) *PostgresAttendanceRepo {
	return &PostgresAttendanceRepo{db: db}
}

// Create は入館記録を作成する。
func (r *PostgresAttendanceRepo) Create(ctx context.Context, attendance *model.Attendance) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO attendance (id, member_id, check_in_at, check_out_at)
		 VALUES ($1, $2, $3, $4)`,
		attendance.ID, attendance.MemberID, attendance.CheckInAt, attendance.CheckOutAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert attendance: %w", err)
	}
	return nil
}

// FindOpenByMemberID は指定会員の未退館レコードを取得する。
// 入館中でない場合はnilを返す。複数ある場合は最新の入館を返す。
func (r *PostgresAttendanceRepo) FindOpenByMemberID(ctx context.Context, memberID string) (*model.Attendance, error) {
	a := &model.Attendance{}
	var checkOut sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT id, member_id, check_in_at, check_out_at
		 FROM attendance
		 WHERE member_id = $1 AND check_out_at IS NULL
		 ORDER BY check_in_at DESC
		 LIMIT 1`,
		memberID,
	).Scan(&a.ID, &a.MemberID, &a.CheckInAt, &checkOut)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find open attendance: %w", err)
	}

	if checkOut.Valid {
		a.CheckOutAt = &checkOut.Time
	}
	return a, nil
}

// Close は指定レコードの退館時刻を記録する。
func (r *PostgresAttendanceRepo) Close(ctx context.Context, id string, checkOutAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE attendance SET check_out_at = $2 WHERE id = $1 AND check_out_at IS NULL`,
		id, checkOutAt,
	)
	if err != nil {
		return fmt.Errorf("failed to close attendance: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("open attendance not found: %s", id)
	}
	return nil
}

// ListByMemberID は指定会員の入退館履歴を入館日時降順でlimit件まで返す。
func (r *PostgresAttendanceRepo) ListByMemberID(ctx context.Context, memberID string, limit int) ([]*model.Attendance, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, member_id, check_in_at, check_out_at
		 FROM attendance
		 WHERE member_id = $1
		 ORDER BY check_in_at DESC
		 LIMIT $2`,
		memberID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []*model.Attendance
	for rows.Next() {
		a := &model.Attendance{}
		var checkOut sql.NullTime
		if err := rows.Scan(&a.ID, &a.MemberID, &a.CheckInAt, &checkOut); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		if checkOut.Valid {
			a.CheckOutAt = &checkOut.Time
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}

	return records, nil
}

// compile-time interface check
var _ AttendanceRepository = (*PostgresAttendanceRepo)(nil)

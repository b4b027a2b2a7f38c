// Package cleanup はセッションと会員契約の定期メンテナンスジョブを提供する。
// 期限切れセッションの削除と、契約期間を過ぎた会員プラン割り当ての解除を
// 日次バッチで実行する。
package cleanup

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Executor はSQLのExecContextを抽象化するインターフェース。
// *sql.DB や *sql.Tx を受け付けることができる。
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// SessionsCleanedRecorder は削除セッション数のメトリクス記録に必要なインターフェース。
// metrics.Collectorの部分集合として定義する。
type SessionsCleanedRecorder interface {
	RecordSessionsCleaned(count int)
}

// CleanupJob は期限切れデータの自動削除ジョブ。
// 日次実行のバッチジョブとして設計されており、冪等な処理を保証する。
type CleanupJob struct {
	db       Executor
	logger   *slog.Logger
	recorder SessionsCleanedRecorder
}

// NewCleanupJob は新しいCleanupJobを生成する。
// recorderがnilの場合はメトリクス記録をスキップする。
func NewCleanupJob(db Executor, logger *slog.Logger, recorder SessionsCleanedRecorder) *CleanupJob {
	return &CleanupJob{
		db:       db,
		logger:   logger,
		recorder: recorder,
	}
}

// Run は期限切れセッションの削除と契約期限切れの解除を順に実行する。
// 一方が失敗してももう一方は実行し、最初のエラーを返す。
func (j *CleanupJob) Run(ctx context.Context) error {
	sessErr := j.cleanExpiredSessions(ctx)
	memErr := j.expireLapsedMemberships(ctx)

	if sessErr != nil {
		return sessErr
	}
	return memErr
}

// cleanExpiredSessions は有効期限を過ぎたセッションを削除する。
// 冪等: 削除対象がない場合でもエラーにならない。
func (j *CleanupJob) cleanExpiredSessions(ctx context.Context) error {
	start := time.Now()

	result, err := j.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < now()`)
	if err != nil {
		j.logger.Error("セッションクリーンアップジョブの実行に失敗しました",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("セッションクリーンアップの実行に失敗: %w", err)
	}

	deletedCount, err := result.RowsAffected()
	if err != nil {
		j.logger.Error("削除件数の取得に失敗しました",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("削除件数の取得に失敗: %w", err)
	}

	if j.recorder != nil {
		j.recorder.RecordSessionsCleaned(int(deletedCount))
	}

	duration := time.Since(start)
	j.logger.Info("セッションクリーンアップジョブが完了しました",
		slog.Int64("deleted_count", deletedCount),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	)

	return nil
}

// expireLapsedMemberships は契約期間を過ぎた会員のプラン割り当てを解除する。
// 入会日からプランの契約月数を経過した会員のmembership_idをNULLに戻す。
// 冪等: 対象がない場合でもエラーにならない。
func (j *CleanupJob) expireLapsedMemberships(ctx context.Context) error {
	start := time.Now()

	query := `UPDATE members
		 SET membership_id = NULL
		 FROM memberships
		 WHERE members.membership_id = memberships.id
		   AND members.joined_at + (memberships.duration_months || ' months')::interval < now()`

	result, err := j.db.ExecContext(ctx, query)
	if err != nil {
		j.logger.Error("会員契約の期限切れ処理に失敗しました",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("会員契約の期限切れ処理に失敗: %w", err)
	}

	expiredCount, err := result.RowsAffected()
	if err != nil {
		j.logger.Error("更新件数の取得に失敗しました",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("更新件数の取得に失敗: %w", err)
	}

	duration := time.Since(start)
	j.logger.Info("会員契約の期限切れ処理が完了しました",
		slog.Int64("expired_count", expiredCount),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	)

	return nil
}

// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ハンドラーやワーカーから利用する。
type MetricsCollector interface {
	RecordLogin()
	RecordSignup(role string)
	RecordCheckIn()
	RecordCheckOut()
	RecordFeedback(rating int)
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
	RecordSessionsCleaned(count int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	logins          prometheus.Counter
	signups         *prometheus.CounterVec
	checkins        prometheus.Counter
	checkouts       prometheus.Counter
	feedback        *prometheus.CounterVec
	httpStatus      *prometheus.CounterVec
	requestLatency  prometheus.Histogram
	sessionsCleaned prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fithub_logins_total",
			Help: "ログイン成功の合計数",
		}),
		signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fithub_signups_total",
			Help: "ロール別のサインアップ合計数",
		}, []string{"role"}),
		checkins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fithub_checkins_total",
			Help: "会員チェックインの合計数",
		}),
		checkouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fithub_checkouts_total",
			Help: "会員チェックアウトの合計数",
		}),
		feedback: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fithub_feedback_total",
			Help: "評価値別のフィードバック投稿数",
		}, []string{"rating"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fithub_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fithub_request_latency_seconds",
			Help:    "HTTPリクエストのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		sessionsCleaned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fithub_sessions_cleaned_total",
			Help: "クリーンアップで削除された期限切れセッションの合計数",
		}),
	}

	reg.MustRegister(
		c.logins,
		c.signups,
		c.checkins,
		c.checkouts,
		c.feedback,
		c.httpStatus,
		c.requestLatency,
		c.sessionsCleaned,
	)

	return c
}

// RecordLogin はログイン成功を記録する。
func (c *Collector) RecordLogin() {
	c.logins.Inc()
}

// RecordSignup はサインアップをロール別に記録する。
func (c *Collector) RecordSignup(role string) {
	c.signups.WithLabelValues(role).Inc()
}

// RecordCheckIn はチェックインを記録する。
func (c *Collector) RecordCheckIn() {
	c.checkins.Inc()
}

// RecordCheckOut はチェックアウトを記録する。
func (c *Collector) RecordCheckOut() {
	c.checkouts.Inc()
}

// RecordFeedback はフィードバック投稿を評価値別に記録する。
func (c *Collector) RecordFeedback(rating int) {
	c.feedback.WithLabelValues(strconv.Itoa(rating)).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエストのレイテンシを記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// RecordSessionsCleaned は削除された期限切れセッション数を記録する。
func (c *Collector) RecordSessionsCleaned(count int) {
	c.sessionsCleaned.Add(float64(count))
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ContentSanitizerService は会員が投稿するフィードバックコメントをサニタイズし、
// XSS攻撃などのセキュリティリスクから管理画面の閲覧者を保護する。
// bluemondayライブラリのStrictPolicyを使用し、HTMLタグを一切許可しない。
package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizerService はユーザー入力テキストのサニタイズ機能のインターフェースを定義する。
// フィードバックコメントの保存前に使用される。
type ContentSanitizerService interface {
	// Sanitize は入力テキストからHTMLタグを全て除去したプレーンテキストを返す。
	// script, iframe, styleタグおよびon*イベント属性を含む全てのマークアップを除去する。
	// 前後の空白は取り除かれる。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// contentSanitizer はContentSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type contentSanitizer struct {
	policy *bluemonday.Policy
}

// NewContentSanitizer はContentSanitizerServiceの新しいインスタンスを生成する。
// フィードバックコメントは表示時に装飾を必要としないため、
// StrictPolicy（全タグ除去）を採用する。
func NewContentSanitizer() *contentSanitizer {
	return &contentSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力テキストからHTMLタグを全て除去したプレーンテキストを返す。
func (s *contentSanitizer) Sanitize(raw string) string {
	return strings.TrimSpace(s.policy.Sanitize(raw))
}

package security

import (
	"strings"
	"testing"
)

// TestSanitize_StripsAllTags は全てのHTMLタグが除去されることを検証する。
func TestSanitize_StripsAllTags(t *testing.T) {
	sanitizer := NewContentSanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "プレーンテキストはそのまま通過する",
			input: "トレーナーの指導がとても丁寧でした。",
			want:  "トレーナーの指導がとても丁寧でした。",
		},
		{
			name:  "scriptタグが除去される",
			input: `いいジムです<script>alert("xss")</script>`,
			want:  "いいジムです",
		},
		{
			name:  "iframeタグが除去される",
			input: `<iframe src="https://evil.example.com"></iframe>感想`,
			want:  "感想",
		},
		{
			name:  "装飾タグも中身だけ残して除去される",
			input: "<strong>最高</strong>の<em>施設</em>です",
			want:  "最高の施設です",
		},
		{
			name:  "on*イベント属性付きタグが除去される",
			input: `<img src="x" onerror="alert(1)">コメント`,
			want:  "コメント",
		},
		{
			name:  "前後の空白が取り除かれる",
			input: "  余白ありコメント  ",
			want:  "余白ありコメント",
		},
		{
			name:  "空文字列には空文字列を返す",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizer.Sanitize(tt.input)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestSanitize_Idempotent は同一入力に対して常に同一出力を返すことを検証する。
func TestSanitize_Idempotent(t *testing.T) {
	sanitizer := NewContentSanitizer()

	input := `<p>良い雰囲気<script>alert(1)</script></p>`
	first := sanitizer.Sanitize(input)
	second := sanitizer.Sanitize(first)

	if first != second {
		t.Errorf("Sanitize is not idempotent: first=%q second=%q", first, second)
	}
	if strings.Contains(first, "<") {
		t.Errorf("sanitized output still contains markup: %q", first)
	}
}

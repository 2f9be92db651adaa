package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitLanguage(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		language string
		body     string
	}{
		{name: "newline", raw: "rust\nhello", language: "rust", body: "hello"},
		{name: "space", raw: "rust hello", language: "rust", body: "hello"},
		{name: "newline_wins_over_space", raw: "go run\nx", language: "go run", body: "x"},
		{name: "no_separator", raw: "hello", language: LanguageText, body: "hello"},
		{name: "leading_newline", raw: "\nhello", language: LanguageText, body: "hello"},
		{name: "leading_space", raw: " hello", language: LanguageText, body: "hello"},
		{name: "empty", raw: "", language: LanguageText, body: ""},
		{name: "body_keeps_leading_whitespace", raw: "rust\n hello\n world", language: "rust", body: " hello\n world"},
		{name: "only_language", raw: "go\n", language: "go", body: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			language, body := SplitLanguage(tc.raw)
			require.Equal(t, tc.language, language)
			require.Equal(t, tc.body, body)
		})
	}
}

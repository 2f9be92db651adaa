package markdown

import "strings"

// LanguageText is the language of inline code and of fenced blocks without a language tag.
const LanguageText = "text"

// SplitLanguage splits the raw content of a fenced code block into its language
// tag and body. Both "```lang\ncode```" and "```lang code```" are accepted.
//
// The text before the first newline (or, when there is none, before the first
// space) is the language if it is not blank. The body is everything after that
// separator. Without any separator the whole content is the body.
//
// Example: "go\nfmt.Println()" -> ("go", "fmt.Println()"), "hello" -> ("text", "hello").
func SplitLanguage(raw string) (language, body string) {
	sep := strings.IndexByte(raw, '\n')
	if sep < 0 {
		sep = strings.IndexByte(raw, ' ')
	}

	if sep < 0 {
		return LanguageText, raw
	}

	language = strings.TrimSpace(raw[:sep])
	if language == "" {
		language = LanguageText
	}

	return language, raw[sep+1:]
}

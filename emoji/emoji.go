// Package emoji replaces text emoticons such as ":)" with emoji characters.
package emoji

import (
	"strings"
	"unicode"
)

var table = map[string]string{
	":)":  "🙂",
	":(":  "🙁",
	">:)": "😈",
	">:(": "😠",
	":/":  "🫤",
	";)":  "😉",
	":D":  "😁",
	"xD":  "😆",
	":p":  "😛",
	";p":  "😜",
	"xp":  "😝",
	":|":  "😐",
	":O":  "😮",
}

// Lookup returns the emoji for a single emoticon token.
func Lookup(token string) (string, bool) {
	e, ok := table[token]
	return e, ok
}

// Substitute replaces every whitespace delimited token that is a known
// emoticon. Only whole tokens match: "a:)" stays as is. Whitespace is kept.
func Substitute(text string) string {
	if text == "" {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				writeToken(&b, text[start:i])
				start = -1
			}
			b.WriteRune(r)
			continue
		}

		if start < 0 {
			start = i
		}
	}

	if start >= 0 {
		writeToken(&b, text[start:])
	}

	return b.String()
}

func writeToken(b *strings.Builder, token string) {
	if e, ok := table[token]; ok {
		b.WriteString(e)
		return
	}
	b.WriteString(token)
}

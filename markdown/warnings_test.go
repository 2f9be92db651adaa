package markdown

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustNewWarnings(t *testing.T, policy WarningOverflowPolicy, cap int) Warnings {
	t.Helper()
	w, err := NewWarnings(policy, cap)
	require.NoError(t, err)
	return w
}

func TestNewWarningsNegativeCap(t *testing.T) {
	_, err := NewWarnings(WarnOverflowDrop, -1)
	require.ErrorIs(t, err, ErrNegativeWarningsCap)
}

func TestWarningsOverflowPolicies(t *testing.T) {
	testCases := []struct {
		name         string
		policy       WarningOverflowPolicy
		cap          int
		added        int
		wantPos      []int
		wantOverflow bool
		wantDropped  int
		wantDropPos  int
		wantMarker   bool
	}{
		{
			name:    "no recording",
			policy:  WarnOverflowNoRec,
			cap:     3,
			added:   2,
			wantPos: []int{},
		},
		{
			name:    "no cap ignores the capacity",
			policy:  WarnOverflowNoCap,
			cap:     2,
			added:   5,
			wantPos: []int{0, 1, 2, 3, 4},
		},
		{
			name:         "drop keeps the first ones",
			policy:       WarnOverflowDrop,
			cap:          3,
			added:        5,
			wantPos:      []int{0, 1, 2},
			wantOverflow: true,
			wantDropPos:  3,
		},
		{
			name:         "drop with zero cap",
			policy:       WarnOverflowDrop,
			cap:          0,
			added:        2,
			wantPos:      []int{},
			wantOverflow: true,
		},
		{
			name:         "trunc reserves a slot for the marker",
			policy:       WarnOverflowTrunc,
			cap:          3,
			added:        5,
			wantPos:      []int{0, 1, 2},
			wantOverflow: true,
			wantDropped:  3,
			wantDropPos:  2,
			wantMarker:   true,
		},
		{
			name:         "trunc with cap one keeps only the marker",
			policy:       WarnOverflowTrunc,
			cap:          1,
			added:        2,
			wantPos:      []int{0},
			wantOverflow: true,
			wantDropped:  2,
			wantMarker:   true,
		},
		{
			name:         "trunc with zero cap stores nothing",
			policy:       WarnOverflowTrunc,
			cap:          0,
			added:        2,
			wantPos:      []int{},
			wantOverflow: true,
			wantDropped:  2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := mustNewWarnings(t, tc.policy, tc.cap)
			require.False(t, w.IsOverflow())

			for i := 0; i < tc.added; i++ {
				w.Add(Warning{Issue: IssueUnclosedDelimiter, Pos: i})
			}

			pos := make([]int, 0, len(w.List()))
			for _, item := range w.List() {
				pos = append(pos, item.Pos)
			}

			require.Equal(t, tc.wantPos, pos)
			require.Equal(t, tc.wantOverflow, w.IsOverflow())
			require.Equal(t, tc.wantDropped, w.DroppedCount())
			require.Equal(t, tc.wantDropPos, w.FirstDropPos())

			if tc.wantMarker {
				last := w.List()[len(w.List())-1]
				require.Equal(t, IssueWarningsTruncated, last.Issue)
			}
		})
	}
}

func TestParseWithWarnings(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		issues []Issue
		pos    []int
	}{
		{
			name:  "well formed input",
			input: "# Title\n**bold** _it_ ~~gone~~ `code`\n> quote",
		},
		{
			name:  "valid escapes",
			input: "\\*x\\* \\_ \\`",
		},
		{
			name:   "unclosed bold",
			input:  "**bold",
			issues: []Issue{IssueUnclosedDelimiter},
			pos:    []int{0},
		},
		{
			name:   "unclosed markers are reported outermost first",
			input:  "*a_b",
			issues: []Issue{IssueUnclosedDelimiter, IssueUnclosedDelimiter},
			pos:    []int{0, 2},
		},
		{
			name:   "line end closes the line",
			input:  "*a\nb",
			issues: []Issue{IssueUnclosedDelimiter},
			pos:    []int{0},
		},
		{
			name:   "position counts characters",
			input:  "жж *x",
			issues: []Issue{IssueUnclosedDelimiter},
			pos:    []int{3},
		},
		{
			name:   "unclosed inline code",
			input:  "`code",
			issues: []Issue{IssueUnclosedDelimiter},
			pos:    []int{0},
		},
		{
			name:   "partial closing fence is reported with the fence",
			input:  "```go\nx``",
			issues: []Issue{IssueUnclosedDelimiter},
			pos:    []int{0},
		},
		{
			name:   "unclosed strikethrough",
			input:  "~~a",
			issues: []Issue{IssueUnclosedDelimiter},
			pos:    []int{0},
		},
		{
			name:  "single tilde is plain text",
			input: "~a",
		},
		{
			name:   "redundant escape",
			input:  "a\\b",
			issues: []Issue{IssueRedundantEscape},
			pos:    []int{1},
		},
		{
			name:   "backslash before line end",
			input:  "a\\\nb",
			issues: []Issue{IssueRedundantEscape},
			pos:    []int{1},
		},
		{
			name:   "backslash at the end of the input",
			input:  "text\\",
			issues: []Issue{IssueRedundantEscape},
			pos:    []int{4},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			root, warnings := ParseWithWarnings(tc.input)
			require.Equal(t, Parse(tc.input), root, "warnings must not change the tree")

			issues := make([]Issue, 0, len(warnings))
			pos := make([]int, 0, len(warnings))
			for _, w := range warnings {
				issues = append(issues, w.Issue)
				pos = append(pos, w.Pos)
				require.NotEmpty(t, w.Description)
			}

			if tc.issues == nil {
				require.Empty(t, warnings)
				return
			}

			require.Equal(t, tc.issues, issues)
			require.Equal(t, tc.pos, pos)
		})
	}
}

func TestParseWithWarningsTruncates(t *testing.T) {
	_, warnings := ParseWithWarnings(strings.Repeat("\\a", 150))

	require.Len(t, warnings, DefaultMaxWarnings)

	last := warnings[DefaultMaxWarnings-1]
	require.Equal(t, IssueWarningsTruncated, last.Issue)
	require.Equal(t, 2*(DefaultMaxWarnings-1), last.Pos)
}

func TestParserRecordsNothingByDefault(t *testing.T) {
	p := NewParser()
	for _, r := range "**a \\b" {
		p.Process(r)
	}
	p.Finish()

	require.Empty(t, p.Warnings().List())
}

func TestIssueString(t *testing.T) {
	require.Equal(t, "unclosed_delimiter", IssueUnclosedDelimiter.String())
	require.Equal(t, "redundant_escape", IssueRedundantEscape.String())
	require.Equal(t, "Issue(42)", Issue(42).String())

	w := Warning{Issue: IssueRedundantEscape, Pos: 3, Description: "x"}
	require.Equal(t, "3: redundant_escape: x", w.String())

	data, err := json.Marshal(w)
	require.NoError(t, err)
	require.JSONEq(t, `{"issue":"redundant_escape","pos":3,"description":"x"}`, string(data))

	var decoded Warning
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, w, decoded)

	require.Error(t, json.Unmarshal([]byte(`{"issue":"nope"}`), &decoded))
}

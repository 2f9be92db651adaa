package markdown

import (
	"errors"
	"fmt"
)

// Issue defines types of problems found in the input. None of them stops
// the parsing: the offending characters simply stay literal text.
type Issue int

const (
	// IssueUnclosedDelimiter means an emphasis, strikethrough or code marker
	// was opened, but the line or the input ended before it was closed.
	IssueUnclosedDelimiter Issue = iota

	// IssueRedundantEscape occurs when the character after the backslash has
	// no special meaning, so the backslash is kept as text.
	IssueRedundantEscape

	// IssueWarningsTruncated occurs when there are too many Warnings recorded.
	IssueWarningsTruncated
)

func (i Issue) String() string {
	switch i {
	case IssueUnclosedDelimiter:
		return "unclosed_delimiter"
	case IssueRedundantEscape:
		return "redundant_escape"
	case IssueWarningsTruncated:
		return "warnings_truncated"
	default:
		return fmt.Sprintf("Issue(%d)", int(i))
	}
}

var issueByName = map[string]Issue{
	"unclosed_delimiter": IssueUnclosedDelimiter,
	"redundant_escape":   IssueRedundantEscape,
	"warnings_truncated": IssueWarningsTruncated,
}

func (i Issue) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

func (i *Issue) UnmarshalText(text []byte) error {
	issue, ok := issueByName[string(text)]
	if !ok {
		return fmt.Errorf("unknown issue %q", text)
	}
	*i = issue
	return nil
}

// Warning describes a problem found during the parsing.
type Warning struct {
	// Issue defines the type of the problem.
	Issue Issue `json:"issue"`

	// Pos is the index of the character (not the byte) at which the problem starts.
	Pos int `json:"pos"`

	// Description is a human-readable story of what went wrong.
	Description string `json:"description"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%d: %s: %s", w.Pos, w.Issue, w.Description)
}

// WarningOverflowPolicy determines what happens when the maximum Warning capacity is reached.
type WarningOverflowPolicy int

const (
	// WarnOverflowNoRec means adding new Warning is a no-op.
	WarnOverflowNoRec WarningOverflowPolicy = iota

	// WarnOverflowNoCap means no limit for Warning recording.
	WarnOverflowNoCap

	// WarnOverflowDrop means all Warnings after the overflow are simply discarded.
	WarnOverflowDrop

	// WarnOverflowTrunc means all Warnings after the overflow are discarded, but
	// their number is recorded and an additional Warning signalling the overflow is added.
	WarnOverflowTrunc
)

// DefaultMaxWarnings is the capacity used by ParseWithWarnings.
const DefaultMaxWarnings = 100

var ErrNegativeWarningsCap = errors.New("warnings cap must be non-negative")

// Warnings maintains the list of issues found during the parsing.
// The list can have a maximum capacity, after which further Warnings
// are discarded and only their number is kept.
type Warnings struct {
	policy WarningOverflowPolicy

	list []Warning

	// maxWarnings keeps a pathological input from growing the list without bound.
	maxWarnings int

	overflowed bool

	// droppedCount is the number of the discarded Warnings after the overflow.
	droppedCount int

	// firstDropPos is the position from which the Warnings are discarded.
	firstDropPos int
}

// NewWarnings creates a Warnings collector with the given overflow policy and capacity.
func NewWarnings(policy WarningOverflowPolicy, cap int) (Warnings, error) {
	if cap < 0 {
		return Warnings{}, fmt.Errorf("%w, got %d", ErrNegativeWarningsCap, cap)
	}

	return Warnings{
		policy:      policy,
		list:        make([]Warning, 0, min(cap, DefaultMaxWarnings)),
		maxWarnings: cap,
	}, nil
}

func (w *Warnings) IsOverflow() bool {
	return w.overflowed
}

// DroppedCount is a number of Warnings discarded after the overflow.
func (w *Warnings) DroppedCount() int {
	return w.droppedCount
}

// FirstDropPos is the position from which the Warnings are discarded.
func (w *Warnings) FirstDropPos() int {
	return w.firstDropPos
}

func (w *Warnings) List() []Warning {
	return w.list
}

// Add appends new [Warning] item to the inner list.
// If the policy is [WarnOverflowNoRec], this is no-op.
func (w *Warnings) Add(item Warning) {
	switch w.policy {
	case WarnOverflowNoRec:
		return
	case WarnOverflowNoCap:
		w.list = append(w.list, item)
		return
	}

	// after overflow: Drop = ignore, Trunc = count + ignore
	if w.overflowed {
		if w.policy == WarnOverflowTrunc {
			w.droppedCount++
		}
		return
	}

	limit := w.maxWarnings
	if w.policy == WarnOverflowTrunc {
		// reserve slot for the truncation marker
		limit = max(w.maxWarnings-1, 0)
	}

	if len(w.list) < limit {
		w.list = append(w.list, item)
		return
	}

	w.overflowed = true
	w.firstDropPos = item.Pos

	if w.policy == WarnOverflowTrunc {
		w.droppedCount = 1
		if w.maxWarnings > 0 {
			w.list = append(w.list, Warning{
				Issue:       IssueWarningsTruncated,
				Pos:         w.firstDropPos,
				Description: "too many warnings; further warnings suppressed",
			})
		}
	}
}

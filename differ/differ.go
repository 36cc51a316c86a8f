package differ

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContext is the number of unchanged lines shown around each change.
const DefaultContext = 3

// Op identifies the kind of a diff line.
type Op int

const (
	// OpEqual is a line present in both versions.
	OpEqual Op = iota
	// OpDelete is a line only in the old version.
	OpDelete
	// OpInsert is a line only in the new version.
	OpInsert
)

// String returns the unified diff prefix for the operation.
func (o Op) String() string {
	switch o {
	case OpDelete:
		return "-"
	case OpInsert:
		return "+"
	default:
		return " "
	}
}

// Line is a single line of a diff.
type Line struct {
	Op Op

	// Text is the line content without its trailing newline.
	Text string

	// NoNewline is true when this is the last line of its version and the
	// version does not end in a newline.
	NoNewline bool
}

// Hunk is a run of changed lines with surrounding context.
type Hunk struct {
	// OldStart and NewStart are 1-based line numbers. When a side has no
	// lines in the hunk, its start is the line before the hunk.
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// Differ computes line diffs.
type Differ struct {
	// Context is the number of unchanged lines around each change in a
	// hunk. Negative values are treated as zero.
	Context int

	dmp *diffmatchpatch.DiffMatchPatch
}

// New creates a Differ with DefaultContext.
func New() *Differ {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	return &Differ{
		Context: DefaultContext,
		dmp:     dmp,
	}
}

var defaultDiffer = New()

// Lines returns the full line-by-line diff between a and b.
func (d *Differ) Lines(a, b string) []Line {
	if a == b {
		return equalLines(a)
	}
	ca, cb, lineArray := d.dmp.DiffLinesToChars(a, b)
	diffs := d.dmp.DiffMain(ca, cb, false)
	diffs = d.dmp.DiffCharsToLines(diffs, lineArray)

	var lines []Line
	for _, diff := range diffs {
		op := OpEqual
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			op = OpDelete
		case diffmatchpatch.DiffInsert:
			op = OpInsert
		}
		lines = appendSplit(lines, op, diff.Text)
	}
	return lines
}

// Hunks groups the changed lines between a and b into hunks. Returns nil
// when a and b are identical.
func (d *Differ) Hunks(a, b string) []Hunk {
	if a == b {
		return nil
	}
	return groupHunks(d.Lines(a, b), max(d.Context, 0))
}

// Unified renders the diff between a and b in unified format. Returns ""
// when a and b are identical.
func (d *Differ) Unified(a, b, fromName, toName string) string {
	hunks := d.Hunks(a, b)
	if len(hunks) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("--- " + fromName + "\n")
	sb.WriteString("+++ " + toName + "\n")
	for _, h := range hunks {
		writeHunk(&sb, h)
	}
	return sb.String()
}

// Lines returns the line diff between a and b using default settings.
func Lines(a, b string) []Line {
	return defaultDiffer.Lines(a, b)
}

// Hunks returns the hunks between a and b using DefaultContext.
func Hunks(a, b string) []Hunk {
	return defaultDiffer.Hunks(a, b)
}

// Unified renders a unified diff between a and b using DefaultContext.
func Unified(a, b, fromName, toName string) string {
	return defaultDiffer.Unified(a, b, fromName, toName)
}

// Stats returns the number of added and removed lines between a and b.
func Stats(a, b string) (added, removed int) {
	if a == b {
		return 0, 0
	}
	for _, l := range defaultDiffer.Lines(a, b) {
		switch l.Op {
		case OpInsert:
			added++
		case OpDelete:
			removed++
		}
	}
	return added, removed
}

// appendSplit appends one Line per line of text.
func appendSplit(lines []Line, op Op, text string) []Line {
	for _, part := range strings.SplitAfter(text, "\n") {
		if part == "" {
			continue
		}
		trimmed, hasNewline := strings.CutSuffix(part, "\n")
		lines = append(lines, Line{Op: op, Text: trimmed, NoNewline: !hasNewline})
	}
	return lines
}

func equalLines(s string) []Line {
	return appendSplit(nil, OpEqual, s)
}

package differ

import (
	"strconv"
	"strings"
)

// groupHunks splits lines into hunks, merging changes separated by at most
// 2*context unchanged lines.
func groupHunks(lines []Line, context int) []Hunk {
	var hunks []Hunk
	n := len(lines)
	oldSeen, newSeen := 0, 0 // lines consumed before index i
	i := 0

	for i < n {
		// Skip to the next change.
		for i < n && lines[i].Op == OpEqual {
			i++
			oldSeen++
			newSeen++
		}
		if i == n {
			break
		}

		lead := min(context, i)
		start := i - lead
		oldBefore := oldSeen - lead
		newBefore := newSeen - lead

		end := i
		for {
			for end < n && lines[end].Op != OpEqual {
				end++
			}
			run := end
			for run < n && lines[run].Op == OpEqual {
				run++
			}
			if run == n || run-end > 2*context {
				break
			}
			end = run
		}
		stop := min(n, end+context)

		h := Hunk{Lines: lines[start:stop]}
		for _, l := range h.Lines {
			if l.Op != OpInsert {
				h.OldCount++
			}
			if l.Op != OpDelete {
				h.NewCount++
			}
		}
		h.OldStart = oldBefore
		if h.OldCount > 0 {
			h.OldStart++
		}
		h.NewStart = newBefore
		if h.NewCount > 0 {
			h.NewStart++
		}
		hunks = append(hunks, h)

		for _, l := range lines[i:stop] {
			if l.Op != OpInsert {
				oldSeen++
			}
			if l.Op != OpDelete {
				newSeen++
			}
		}
		i = stop
	}
	return hunks
}

// writeHunk writes a hunk header and its lines.
func writeHunk(sb *strings.Builder, h Hunk) {
	sb.WriteString("@@ -")
	sb.WriteString(formatRange(h.OldStart, h.OldCount))
	sb.WriteString(" +")
	sb.WriteString(formatRange(h.NewStart, h.NewCount))
	sb.WriteString(" @@\n")
	for _, l := range h.Lines {
		sb.WriteString(l.Op.String())
		sb.WriteString(l.Text)
		sb.WriteByte('\n')
		if l.NoNewline {
			sb.WriteString("\\ No newline at end of file\n")
		}
	}
}

// formatRange formats a hunk range, omitting a count of 1.
func formatRange(start, count int) string {
	if count == 1 {
		return strconv.Itoa(start)
	}
	return strconv.Itoa(start) + "," + strconv.Itoa(count)
}

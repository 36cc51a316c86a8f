package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/erraggy/docpatch/internal/cliutil"
	"github.com/erraggy/docpatch/patch"
)

// statusGlyph returns the report marker for an outcome.
func statusGlyph(p *cliutil.Palette, o patch.Outcome) string {
	switch o {
	case patch.OutcomeApplied:
		return p.Success("✓")
	case patch.OutcomeAlreadyPresent:
		return p.Info("•")
	case patch.OutcomeNotFound:
		return p.Failure("✗")
	default:
		return p.Muted("-")
	}
}

func outcomeNote(r patch.EditResult) string {
	switch r.Outcome {
	case patch.OutcomeAlreadyPresent:
		return " (already present)"
	case patch.OutcomeNotFound:
		if r.Required {
			return " (not found)"
		}
		return " (not found, optional)"
	case patch.OutcomeSkipped:
		return " (skipped)"
	default:
		return ""
	}
}

// RenderEdits writes one line per edit result.
func RenderEdits(w io.Writer, p *cliutil.Palette, result *patch.ApplyResult) {
	for _, r := range result.Results {
		label := r.Label()
		if r.Group != "" {
			label = "[" + r.Group + "] " + label
		}
		Writef(w, "  %s %s%s\n", statusGlyph(p, r.Outcome), label, outcomeNote(r))
	}
}

// RenderGroups writes the per-group summary. Nothing is written when no
// edit belongs to a group.
func RenderGroups(w io.Writer, p *cliutil.Palette, result *patch.ApplyResult) {
	groups := result.Groups()
	if len(groups) == 0 {
		return
	}
	Writef(w, "\n%s\n", p.Header("Fixes:"))
	for _, g := range groups {
		name := g.Name
		if name == "" {
			name = "(ungrouped)"
		}
		glyph := p.Success("✓")
		if !g.OK() {
			glyph = p.Failure("✗")
		}
		Writef(w, "  %s %s: %s\n", glyph, name, groupDetail(g))
	}
}

func groupDetail(g patch.GroupSummary) string {
	var parts []string
	if g.Applied > 0 {
		parts = append(parts, fmt.Sprintf("%d applied", g.Applied))
	}
	if g.AlreadyPresent > 0 {
		parts = append(parts, fmt.Sprintf("%d already present", g.AlreadyPresent))
	}
	if g.NotFound > 0 {
		parts = append(parts, fmt.Sprintf("%d not found", g.NotFound))
	}
	if g.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", g.Skipped))
	}
	return strings.Join(parts, ", ")
}

// RenderOutcome writes the closing line of a report.
func RenderOutcome(w io.Writer, p *cliutil.Palette, result *patch.ApplyResult) {
	Writef(w, "\n")
	switch {
	case result.Aborted:
		Writef(w, "%s\n", p.Failure("✗ Patch set aborted: %s; document not modified", result.Summary()))
	case result.Applied == 0:
		Writef(w, "%s\n", p.Success("✓ Document already up to date"))
		if result.NotFound > 0 {
			Writef(w, "  %s\n", result.Summary())
		}
	case result.DryRun:
		Writef(w, "%s\n", p.Success("✓ Dry run: %d edit(s) would be applied; document not written", result.Applied))
	default:
		Writef(w, "%s\n", p.Success("✓ %d edit(s) applied successfully", result.Applied))
		if result.AlreadyPresent > 0 || result.NotFound > 0 {
			Writef(w, "  %s\n", result.Summary())
		}
	}
}

// RenderDiff writes a unified diff with colored lines.
func RenderDiff(w io.Writer, p *cliutil.Palette, diff string) {
	if diff == "" {
		return
	}
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "--- "), strings.HasPrefix(text, "+++ "):
			text = p.Header("%s", text)
		case strings.HasPrefix(text, "@@"):
			text = p.Hunk("%s", text)
		case strings.HasPrefix(text, "+"):
			text = p.Added("%s", text)
		case strings.HasPrefix(text, "-"):
			text = p.Removed("%s", text)
		}
		Writef(w, "%s\n", text)
	}
}

package patch

import "fmt"

// PatchSet is an ordered list of edits applied to one document.
type PatchSet struct {
	// Version is the patch file format version (e.g., "1.0").
	// This field is required.
	Version string `yaml:"patchset" json:"patchset"`

	// Info contains metadata about the patch set.
	Info Info `yaml:"info" json:"info"`

	// Document is an optional default target path. When loaded from a file,
	// a relative path is resolved against the patch file's directory.
	Document string `yaml:"document,omitempty" json:"document,omitempty"`

	// Edits is the ordered list of edits. At least one edit is required.
	Edits []Edit `yaml:"edits" json:"edits"`

	// source is the path the patch set was read from, if any.
	source string
}

// Info contains metadata about a patch set.
type Info struct {
	// Title is the human-readable name of the patch set.
	// This field is required.
	Title string `yaml:"title" json:"title"`

	// Description optionally explains what the patch set changes.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Source returns the file path the patch set was parsed from, or "" when it
// was built in code.
func (ps *PatchSet) Source() string {
	return ps.source
}

// CheckMode selects how an edit decides that its effect is already present.
type CheckMode string

const (
	// CheckReplacement treats the edit as applied when the document
	// contains its replacement text. This is the default.
	CheckReplacement CheckMode = "replacement"
	// CheckMarker treats the edit as applied when the document contains
	// the edit's Marker text.
	CheckMarker CheckMode = "marker"
	// CheckNone disables the idempotency check.
	CheckNone CheckMode = "none"
)

// ValidCheckModes returns the accepted CheckMode values.
func ValidCheckModes() []CheckMode {
	return []CheckMode{CheckReplacement, CheckMarker, CheckNone}
}

// Edit is a single find-and-replace step.
type Edit struct {
	// Name is an optional label shown in reports.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Group optionally collects several edits into one named fix.
	Group string `yaml:"group,omitempty" json:"group,omitempty"`

	// Description is an optional human-readable explanation.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Match is the text (or RE2 pattern when Regexp is set) to locate.
	// Only the first occurrence is replaced.
	Match string `yaml:"match" json:"match"`

	// Replace is substituted for the matched text. For regexp edits,
	// $1 and ${name} expand to submatches.
	Replace string `yaml:"replace" json:"replace"`

	// Regexp interprets Match as a regular expression.
	Regexp bool `yaml:"regexp,omitempty" json:"regexp,omitempty"`

	// Required makes a missing matcher fatal for the whole run.
	Required bool `yaml:"required" json:"required"`

	// Check selects the idempotency check. Empty means CheckReplacement.
	Check CheckMode `yaml:"check,omitempty" json:"check,omitempty"`

	// Marker is the text whose presence means the edit is already applied.
	// Used when Check is CheckMarker.
	Marker string `yaml:"marker,omitempty" json:"marker,omitempty"`
}

// Outcome is the result of running a single edit.
type Outcome string

const (
	// OutcomeApplied means the matcher was found and replaced.
	OutcomeApplied Outcome = "applied"
	// OutcomeAlreadyPresent means the idempotency check found the edit's
	// effect, so nothing was done.
	OutcomeAlreadyPresent Outcome = "already_present"
	// OutcomeNotFound means the matcher was absent.
	OutcomeNotFound Outcome = "not_found"
	// OutcomeSkipped means the edit never ran because an earlier required
	// edit was not found.
	OutcomeSkipped Outcome = "skipped"
)

// EditResult records what happened to one edit.
type EditResult struct {
	// Index is the zero-based index of the edit in the patch set.
	Index int `yaml:"index" json:"index"`

	// Name is the edit's label, if any.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Group is the edit's group, if any.
	Group string `yaml:"group,omitempty" json:"group,omitempty"`

	// Outcome is what happened.
	Outcome Outcome `yaml:"outcome" json:"outcome"`

	// Required mirrors the edit's Required flag.
	Required bool `yaml:"required" json:"required"`

	// Offset is the byte offset of the replaced text in the buffer at the
	// time the edit ran, or -1 if nothing was replaced.
	Offset int `yaml:"offset" json:"offset"`
}

// Label returns the edit's name, falling back to its index.
func (r EditResult) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return fmt.Sprintf("edit[%d]", r.Index)
}

// Failed reports whether this result aborted the run.
func (r EditResult) Failed() bool {
	return r.Outcome == OutcomeNotFound && r.Required
}

// ApplyResult contains the result of applying a patch set to a document.
type ApplyResult struct {
	// DocumentPath is the document that was read, empty for inline content.
	DocumentPath string `yaml:"document,omitempty" json:"document,omitempty"`

	// OutputPath is where the result was (or would be) written.
	OutputPath string `yaml:"output,omitempty" json:"output,omitempty"`

	// Original is the document content before any edit.
	Original string `yaml:"-" json:"-"`

	// Content is the patched content. When the run aborted it equals
	// Original.
	Content string `yaml:"-" json:"-"`

	// Results lists one entry per edit, in input order.
	Results []EditResult `yaml:"results" json:"results"`

	// Applied is the number of edits that replaced text.
	Applied int `yaml:"applied" json:"applied"`

	// AlreadyPresent is the number of edits skipped by their idempotency check.
	AlreadyPresent int `yaml:"already_present" json:"already_present"`

	// NotFound is the number of edits whose matcher was absent.
	NotFound int `yaml:"not_found" json:"not_found"`

	// Skipped is the number of edits that never ran after an abort.
	Skipped int `yaml:"skipped" json:"skipped"`

	// Aborted is true when a required edit was not found.
	Aborted bool `yaml:"aborted" json:"aborted"`

	// Written is true when the content was written to disk.
	Written bool `yaml:"written" json:"written"`

	// DryRun is true when writing was suppressed.
	DryRun bool `yaml:"dry_run,omitempty" json:"dry_run,omitempty"`
}

// HasChanges returns true if the patched content differs from the original.
func (r *ApplyResult) HasChanges() bool {
	return r.Content != r.Original
}

// Success returns true if no required edit failed.
func (r *ApplyResult) Success() bool {
	return !r.Aborted
}

// GroupSummary aggregates the outcomes of the edits in one group.
type GroupSummary struct {
	// Name is the group name. Ungrouped edits are summarized under "".
	Name string `yaml:"name" json:"name"`

	// Edits is the number of edits in the group.
	Edits int `yaml:"edits" json:"edits"`

	Applied        int `yaml:"applied" json:"applied"`
	AlreadyPresent int `yaml:"already_present" json:"already_present"`
	NotFound       int `yaml:"not_found" json:"not_found"`
	Skipped        int `yaml:"skipped" json:"skipped"`

	// Failed is the number of required edits that were not found.
	Failed int `yaml:"failed" json:"failed"`
}

// OK reports whether every required edit in the group took effect.
func (g GroupSummary) OK() bool {
	return g.Failed == 0 && g.Skipped == 0
}

// Groups summarizes results by group, in order of first appearance.
// Returns nil when no edit belongs to a group.
func (r *ApplyResult) Groups() []GroupSummary {
	var groups []GroupSummary
	index := make(map[string]int)
	grouped := false
	for _, res := range r.Results {
		if res.Group != "" {
			grouped = true
		}
		i, ok := index[res.Group]
		if !ok {
			i = len(groups)
			index[res.Group] = i
			groups = append(groups, GroupSummary{Name: res.Group})
		}
		g := &groups[i]
		g.Edits++
		switch res.Outcome {
		case OutcomeApplied:
			g.Applied++
		case OutcomeAlreadyPresent:
			g.AlreadyPresent++
		case OutcomeNotFound:
			g.NotFound++
			if res.Required {
				g.Failed++
			}
		case OutcomeSkipped:
			g.Skipped++
		}
	}
	if !grouped {
		return nil
	}
	return groups
}

// Summary returns a one-line description of the result.
func (r *ApplyResult) Summary() string {
	summary := formatCount(r.Applied, "edit") + " applied"
	if r.AlreadyPresent > 0 {
		summary += fmt.Sprintf(", %d already present", r.AlreadyPresent)
	}
	if r.NotFound > 0 {
		summary += fmt.Sprintf(", %d not found", r.NotFound)
	}
	if r.Skipped > 0 {
		summary += fmt.Sprintf(", %d skipped", r.Skipped)
	}
	return summary
}

func formatCount(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

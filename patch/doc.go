// Package patch applies ordered, idempotent text edits to a document.
//
// A patch set is an ordered list of edits. Each edit names a matcher (an
// exact substring, or a regular expression), a replacement, whether the
// edit is required, and how to tell that its effect is already present.
// Edits run in order against a single in-memory buffer, so an edit may
// match text introduced by an earlier one. The document on disk is
// written at most once, after every edit has run, and only when no
// required edit failed to match.
//
// # Quick Start
//
// Apply a patch file using functional options (recommended):
//
//	result, err := patch.ApplyWithOptions(
//	    patch.WithDocumentPath("update.md.template"),
//	    patch.WithPatchSetFile("fixes.yaml"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Applied %d edit(s)\n", result.Applied)
//
// Or use a reusable Applier instance:
//
//	a := patch.NewApplier()
//	a.DryRun = true
//	result, err := a.Apply("update.md.template", ps)
//
// # Patch File Structure
//
// Patch files are YAML or JSON:
//
//	patchset: "1.0"
//	info:
//	  title: Template fixes
//	document: update.md.template
//	edits:
//	  - name: Clarify assignment criteria
//	    group: "Fix #1"
//	    match: "**APO-2: Update Existing Business Logic Documentation**"
//	    replace: "**APO-2: Tightly-Coupled Business Logic (Create OR Update)**"
//	  - name: Add filesystem verification step
//	    group: "Fix #2"
//	    insert: "### Step 3.1A: Verify Filesystem Reality\n\n"
//	    before: "### Step 3.2: Comprehensive Alignment Verification"
//
// A relative document path is resolved against the patch file's directory.
// Edits are required unless they set required: false.
//
// # Idempotency Checks
//
// Before an edit searches for its matcher it asks whether its effect is
// already present:
//   - replacement (default): the document contains the replacement text
//   - marker: the document contains the edit's marker text
//   - none: never; the matcher is always searched for
//
// Insert edits (insert with before or after) use a marker check on the
// inserted text. Applying the same patch set twice therefore leaves the
// document unchanged the second time.
//
// # Outcomes
//
// Every edit produces exactly one outcome, in input order:
//   - applied: the first occurrence of the matcher was replaced
//   - already_present: the idempotency check found the effect; no-op
//   - not_found: the matcher is absent; fatal when the edit is required
//   - skipped: a preceding required edit failed, so this one never ran
//
// # Dry-Run Preview
//
// With DryRun set (or WithDryRun(true)) every edit is evaluated but the
// document is never written. ApplyResult.Content holds what would have
// been written, suitable for the differ package.
package patch

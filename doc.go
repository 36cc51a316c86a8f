// Package docpatch applies ordered, idempotent text edits to documents.
//
// docpatch was built for maintaining prompt and documentation templates:
// a patch set lists literal (or regular expression) match/replace pairs,
// each edit is skipped when its effect is already present, and the target
// file is only rewritten when every required edit succeeded.
//
// # Overview
//
// The library consists of the following packages:
//
//   - patch: Patch set model, parsing, validation and the Applier
//   - patcherrors: Structured error types for errors.Is / errors.As
//   - differ: Line-level unified diffs used for dry-run previews
//
// # Quick Start
//
// Apply a patch file to a template:
//
//	import "github.com/erraggy/docpatch/patch"
//
//	result, err := patch.ApplyWithOptions(
//		patch.WithDocumentPath("update.md.template"),
//		patch.WithPatchSetFile("fixes.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Applied %d edit(s)\n", result.Applied)
//
// Build a patch set in code:
//
//	ps := patch.NewPatchSet("Docs fixes",
//		patch.Replace("Update Existing", "Create OR Update").InGroup("Fix #1"),
//		patch.InsertBefore("### Step 3.2", "### Step 3.1A\n\n").InGroup("Fix #2"),
//	)
//	result, err := patch.NewApplier().ApplyContent(content, ps)
//
// # Command-Line Interface
//
// The docpatch binary exposes the same functionality:
//
//	docpatch apply fixes.yaml update.md.template
//	docpatch apply --dry-run --diff fixes.yaml
//	docpatch validate fixes.yaml
//	docpatch mcp
package docpatch

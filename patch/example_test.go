package patch_test

import (
	"fmt"

	"github.com/erraggy/docpatch/patch"
)

// Example demonstrates applying edits to in-memory content.
func Example() {
	ps := patch.NewPatchSet("Template fixes",
		patch.Replace("Update Existing", "Create OR Update").InGroup("Fix #1"),
		patch.InsertBefore("## Step 2", "## Step 1A\n").InGroup("Fix #2"),
	)

	doc := "# Update Existing\n## Step 1\n## Step 2\n"
	result, err := patch.ApplyWithOptions(
		patch.WithPatchSetParsed(ps),
		patch.WithDocumentContent(doc),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Print(result.Content)
	fmt.Println(result.Summary())
	// Output:
	// # Create OR Update
	// ## Step 1
	// ## Step 1A
	// ## Step 2
	// 2 edits applied
}

// Example_idempotent shows that a second run reports edits as already present.
func Example_idempotent() {
	ps := patch.NewPatchSet("Idempotent", patch.Replace("colour", "color"))

	first, _ := patch.NewApplier().ApplyContent("colour", ps)
	second, _ := patch.NewApplier().ApplyContent(first.Content, ps)

	fmt.Println(first.Results[0].Outcome)
	fmt.Println(second.Results[0].Outcome)
	// Output:
	// applied
	// already_present
}

// Example_notFound shows the abort behavior when a required edit is missing.
func Example_notFound() {
	ps := patch.NewPatchSet("Missing",
		patch.Replace("present", "here"),
		patch.Replace("absent", "gone").Named("Fix #2"),
		patch.Replace("later", "never"),
	)

	result, err := patch.NewApplier().ApplyContent("present later", ps)
	fmt.Println(err)
	for _, r := range result.Results {
		fmt.Printf("%s: %s\n", r.Label(), r.Outcome)
	}
	fmt.Println(result.Content)
	// Output:
	// patch not found: edit[1] (Fix #2): no match for "absent"
	// edit[0]: applied
	// Fix #2: not_found
	// edit[2]: skipped
	// present later
}

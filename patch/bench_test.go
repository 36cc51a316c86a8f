package patch

import (
	"strings"
	"testing"
)

func BenchmarkApplyContent(b *testing.B) {
	var sb strings.Builder
	for i := range 2000 {
		sb.WriteString("## Section ")
		sb.WriteString(strings.Repeat("x", i%17))
		sb.WriteString("\nBody text for the section.\n")
	}
	sb.WriteString("## Final Section\n")
	doc := sb.String()

	ps := NewPatchSet("bench",
		Replace("Body text", "Body copy"),
		InsertBefore("## Final Section", "## Appendix\n"),
		ReplaceRegexp(`Section x{16}`, "Section (long)").WithoutCheck(),
	)
	a := NewApplier()

	b.ReportAllocs()
	for b.Loop() {
		if _, err := a.ApplyContent(doc, ps); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkApplyContent_AlreadyApplied(b *testing.B) {
	doc := strings.Repeat("line of text\n", 5000) + "marker"
	ps := NewPatchSet("bench", Replace("line", "row").WithMarker("marker"))
	a := NewApplier()

	for b.Loop() {
		if _, err := a.ApplyContent(doc, ps); err != nil {
			b.Fatal(err)
		}
	}
}

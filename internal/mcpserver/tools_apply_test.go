package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyTool_InlineDocument(t *testing.T) {
	input := applyInput{
		Document: docInput{Content: testDocument},
		PatchSet: patchSetInput{Content: testPatchSet},
	}
	result, output, err := handleApply(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Nil(t, result)

	assert.Equal(t, testPatchedDocument, output.Content)
	assert.Equal(t, 2, output.Applied)
	require.Len(t, output.Results, 2)
	assert.Equal(t, "applied", output.Results[0].Outcome)
	assert.Equal(t, "Fix #2", output.Results[1].Group)
	assert.Empty(t, output.WrittenTo)
	assert.Equal(t, "2 edits applied.", output.Summary)
}

func TestApplyTool_Idempotent(t *testing.T) {
	input := applyInput{
		Document: docInput{Content: testPatchedDocument},
		PatchSet: patchSetInput{Content: testPatchSet},
	}
	_, output, err := handleApply(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Equal(t, 2, output.AlreadyPresent)
	assert.Equal(t, testPatchedDocument, output.Content)
	assert.Contains(t, output.Summary, "already up to date")
}

func TestApplyTool_FileInPlace(t *testing.T) {
	dir := t.TempDir()
	docPath := writeFile(t, dir, "doc.md", testDocument)

	input := applyInput{
		Document:    docInput{File: docPath},
		PatchSet:    patchSetInput{Content: testPatchSet},
		IncludeDiff: true,
	}
	result, output, err := handleApply(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Nil(t, result)

	assert.Equal(t, docPath, output.WrittenTo)
	assert.Empty(t, output.Content, "file documents are not returned inline")
	assert.Contains(t, output.Diff, "+## Step 1A")

	data, err := os.ReadFile(docPath)
	require.NoError(t, err)
	assert.Equal(t, testPatchedDocument, string(data))
}

func TestApplyTool_DocumentFromPatchSet(t *testing.T) {
	patchSetCache.reset()
	dir := t.TempDir()
	docPath := writeFile(t, dir, "doc.md", testDocument)
	psPath := writeFile(t, dir, "fixes.yaml", "document: doc.md\n"+testPatchSet)

	_, output, err := handleApply(context.Background(), &mcp.CallToolRequest{}, applyInput{
		PatchSet: patchSetInput{File: psPath},
	})
	require.NoError(t, err)
	assert.Equal(t, docPath, output.Document)
	assert.Equal(t, 2, output.Applied)
}

func TestApplyTool_DryRun(t *testing.T) {
	docPath := writeFile(t, t.TempDir(), "doc.md", testDocument)

	_, output, err := handleApply(context.Background(), &mcp.CallToolRequest{}, applyInput{
		Document:    docInput{File: docPath},
		PatchSet:    patchSetInput{Content: testPatchSet},
		DryRun:      true,
		IncludeDiff: true,
	})
	require.NoError(t, err)
	assert.True(t, output.DryRun)
	assert.Contains(t, output.Summary, "dry run")
	assert.NotEmpty(t, output.Diff)

	data, err := os.ReadFile(docPath)
	require.NoError(t, err)
	assert.Equal(t, testDocument, string(data))
}

func TestApplyTool_ReadOnly(t *testing.T) {
	withConfig(t, func(c *serverConfig) { c.ReadOnly = true })
	docPath := writeFile(t, t.TempDir(), "doc.md", testDocument)

	_, output, err := handleApply(context.Background(), &mcp.CallToolRequest{}, applyInput{
		Document: docInput{File: docPath},
		PatchSet: patchSetInput{Content: testPatchSet},
	})
	require.NoError(t, err)
	assert.True(t, output.DryRun)

	data, err := os.ReadFile(docPath)
	require.NoError(t, err)
	assert.Equal(t, testDocument, string(data))

	result, _, err := handleApply(context.Background(), &mcp.CallToolRequest{}, applyInput{
		Document: docInput{File: docPath},
		PatchSet: patchSetInput{Content: testPatchSet},
		Output:   filepath.Join(t.TempDir(), "out.md"),
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestApplyTool_Output(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.md")
	_, output, err := handleApply(context.Background(), &mcp.CallToolRequest{}, applyInput{
		Document: docInput{Content: testDocument},
		PatchSet: patchSetInput{Content: testPatchSet},
		Output:   out,
	})
	require.NoError(t, err)
	assert.Equal(t, out, output.WrittenTo)
	assert.Empty(t, output.Content)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, testPatchedDocument, string(data))
}

func TestApplyTool_RequiredNotFound(t *testing.T) {
	docPath := writeFile(t, t.TempDir(), "doc.md", "# Unrelated\n## Step 2\n")

	result, output, err := handleApply(context.Background(), &mcp.CallToolRequest{}, applyInput{
		Document: docInput{File: docPath},
		PatchSet: patchSetInput{Content: testPatchSet},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	assert.True(t, output.Aborted)
	require.Len(t, output.Results, 2)
	assert.Equal(t, "not_found", output.Results[0].Outcome)
	assert.Equal(t, "skipped", output.Results[1].Outcome)
	assert.Empty(t, output.WrittenTo)

	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "patch not found")
	assert.NotContains(t, text.Text, docPath)

	data, err := os.ReadFile(docPath)
	require.NoError(t, err)
	assert.Equal(t, "# Unrelated\n## Step 2\n", string(data))
}

func TestApplyTool_InputErrors(t *testing.T) {
	tests := []struct {
		name  string
		input applyInput
	}{
		{"no patch set", applyInput{Document: docInput{Content: testDocument}}},
		{"invalid patch set", applyInput{Document: docInput{Content: testDocument}, PatchSet: patchSetInput{Content: "patchset: \"1.0\"\ninfo:\n  title: x\nedits: []\n"}}},
		{"two documents", applyInput{Document: docInput{File: "a.md", Content: "b"}, PatchSet: patchSetInput{Content: testPatchSet}}},
		{"no document anywhere", applyInput{PatchSet: patchSetInput{Content: testPatchSet}}},
		{"missing document file", applyInput{Document: docInput{File: "/nonexistent/doc.md"}, PatchSet: patchSetInput{Content: testPatchSet}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := handleApply(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
		})
	}
}

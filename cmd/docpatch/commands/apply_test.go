package commands

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/erraggy/docpatch/patch"
	"github.com/erraggy/docpatch/patcherrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupApplyFlags(t *testing.T) {
	fs, flags := SetupApplyFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Empty(t, flags.Document)
		assert.Empty(t, flags.Output)
		assert.False(t, flags.DryRun)
		assert.False(t, flags.Diff)
		assert.Equal(t, FormatText, flags.Format)
		assert.False(t, flags.Quiet)
		assert.False(t, flags.NoColor)
		assert.False(t, flags.NFC)
		assert.Equal(t, patch.DefaultMaxDocumentSize, flags.MaxSize)
		assert.False(t, flags.Verbose)
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"-d", "doc.md", "-o", "out.md", "-n", "--diff", "--format", "json", "-q", "--no-color", "--nfc", "--max-size", "42", "-v", "fixes.yaml"}
		require.NoError(t, fs.Parse(args))

		assert.Equal(t, "doc.md", flags.Document)
		assert.Equal(t, "out.md", flags.Output)
		assert.True(t, flags.DryRun)
		assert.True(t, flags.Diff)
		assert.Equal(t, "json", flags.Format)
		assert.True(t, flags.Quiet)
		assert.True(t, flags.NoColor)
		assert.True(t, flags.NFC)
		assert.Equal(t, int64(42), flags.MaxSize)
		assert.True(t, flags.Verbose)
		assert.Equal(t, "fixes.yaml", fs.Arg(0))
	})

	t.Run("long aliases", func(t *testing.T) {
		fs2, flags2 := SetupApplyFlags()
		require.NoError(t, fs2.Parse([]string{"--document", "d.md", "--output", "o.md", "--dry-run", "--quiet", "--verbose", "p.yaml"}))
		assert.Equal(t, "d.md", flags2.Document)
		assert.Equal(t, "o.md", flags2.Output)
		assert.True(t, flags2.DryRun)
		assert.True(t, flags2.Quiet)
		assert.True(t, flags2.Verbose)
	})
}

func TestHandleApply_ArgumentErrors(t *testing.T) {
	assert.NoError(t, HandleApply([]string{"--help"}))
	assert.Error(t, HandleApply([]string{}))
	assert.Error(t, HandleApply([]string{"a.yaml", "b.md", "c.md"}))
	assert.Error(t, HandleApply([]string{"--format", "xml", "a.yaml"}))
	assert.Error(t, HandleApply([]string{"--max-size", "-1", "a.yaml"}))
	assert.Error(t, HandleApply([]string{"--document", "x.md", "a.yaml", "y.md"}))
	assert.Error(t, HandleApply([]string{"/nonexistent/fixes.yaml"}))
}

func TestHandleApply_InPlace(t *testing.T) {
	patchPath, docPath := setupPatchDir(t)

	out := captureStdout(t, func() {
		require.NoError(t, HandleApply([]string{"--no-color", patchPath}))
	})

	assert.Equal(t, testPatchedTemplate, readFile(t, docPath))
	assert.Contains(t, out, "✓ [Fix #1] create-or-update")
	assert.Contains(t, out, "✓ [Fix #2] verify step")
	assert.Contains(t, out, "Fixes:")
	assert.Contains(t, out, "✓ 2 edit(s) applied successfully")
	assert.NotContains(t, out, "\x1b[")
}

func TestHandleApply_Rerun(t *testing.T) {
	patchPath, docPath := setupPatchDir(t)
	captureStdout(t, func() {
		require.NoError(t, HandleApply([]string{"-q", patchPath}))
	})

	out := captureStdout(t, func() {
		require.NoError(t, HandleApply([]string{"--no-color", patchPath}))
	})
	assert.Equal(t, testPatchedTemplate, readFile(t, docPath))
	assert.Contains(t, out, "• [Fix #1] create-or-update (already present)")
	assert.Contains(t, out, "✓ Document already up to date")
}

func TestHandleApply_ExplicitDocument(t *testing.T) {
	patchPath, _ := setupPatchDir(t)
	other := filepath.Join(t.TempDir(), "other.md")
	require.NoError(t, os.WriteFile(other, []byte(testTemplate), 0o644))

	captureStdout(t, func() {
		require.NoError(t, HandleApply([]string{"-q", patchPath, other}))
	})
	assert.Equal(t, testPatchedTemplate, readFile(t, other))
}

func TestHandleApply_DryRunDiff(t *testing.T) {
	patchPath, docPath := setupPatchDir(t)

	out := captureStdout(t, func() {
		require.NoError(t, HandleApply([]string{"-n", "--diff", "--no-color", patchPath}))
	})

	assert.Equal(t, testTemplate, readFile(t, docPath))
	assert.Contains(t, out, "-**APO-2: Update Existing**")
	assert.Contains(t, out, "+**APO-2: Create OR Update**")
	assert.Contains(t, out, "+### Step 3.1A: Verify")
	assert.Contains(t, out, "✓ Dry run: 2 edit(s) would be applied; document not written")
}

func TestHandleApply_Output(t *testing.T) {
	patchPath, docPath := setupPatchDir(t)
	outPath := filepath.Join(t.TempDir(), "patched.md")

	out := captureStdout(t, func() {
		require.NoError(t, HandleApply([]string{"--no-color", "-o", outPath, patchPath}))
	})
	assert.Equal(t, testTemplate, readFile(t, docPath))
	assert.Equal(t, testPatchedTemplate, readFile(t, outPath))
	assert.Contains(t, out, "Output written to: "+outPath)
}

func TestHandleApply_NotFound(t *testing.T) {
	patchPath, docPath := setupPatchDir(t)
	require.NoError(t, os.WriteFile(docPath, []byte("# Something else\n### Step 3.2\n"), 0o644))

	var err error
	out := captureStdout(t, func() {
		err = HandleApply([]string{"--no-color", patchPath})
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, patcherrors.ErrPatchNotFound))

	assert.Equal(t, "# Something else\n### Step 3.2\n", readFile(t, docPath))
	assert.Contains(t, out, "✗ [Fix #1] create-or-update (not found)")
	assert.Contains(t, out, "- [Fix #2] verify step (skipped)")
	assert.Contains(t, out, "✗ Patch set aborted")
	assert.NotContains(t, out, "applied successfully")
}

func TestHandleApply_JSON(t *testing.T) {
	patchPath, docPath := setupPatchDir(t)

	out := captureStdout(t, func() {
		require.NoError(t, HandleApply([]string{"--format", "json", "--diff", patchPath}))
	})

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, docPath, report["document"])
	assert.Equal(t, float64(2), report["applied"])
	assert.Equal(t, true, report["written"])
	assert.Equal(t, "2 edits applied", report["summary"])
	assert.Contains(t, report["diff"], "+### Step 3.1A: Verify")

	results, ok := report["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 2)
	first, ok := results[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "applied", first["outcome"])

	groups, ok := report["groups"].([]any)
	require.True(t, ok)
	assert.Len(t, groups, 2)
}

func TestHandleApply_YAML(t *testing.T) {
	patchPath, _ := setupPatchDir(t)

	out := captureStdout(t, func() {
		require.NoError(t, HandleApply([]string{"--format", "yaml", patchPath}))
	})
	assert.Contains(t, out, "applied: 2")
	assert.Contains(t, out, "outcome: applied")
	assert.Contains(t, out, "summary: 2 edits applied")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

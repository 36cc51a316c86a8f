package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testPatchFile = `patchset: "1.0"
info:
  title: Template fixes
document: update.md
edits:
  - name: create-or-update
    group: "Fix #1"
    match: "**APO-2: Update Existing**"
    replace: "**APO-2: Create OR Update**"
  - name: verify step
    group: "Fix #2"
    insert: "### Step 3.1A: Verify\n\n"
    before: "### Step 3.2"
`

const testTemplate = `# Update
**APO-2: Update Existing**

### Step 3.1

### Step 3.2
`

const testPatchedTemplate = `# Update
**APO-2: Create OR Update**

### Step 3.1

### Step 3.1A: Verify

### Step 3.2
`

// setupPatchDir writes the test patch file and template to a temp dir and
// returns the patch file and document paths.
func setupPatchDir(t *testing.T) (patchPath, docPath string) {
	t.Helper()
	dir := t.TempDir()
	patchPath = filepath.Join(dir, "fixes.yaml")
	docPath = filepath.Join(dir, "update.md")
	require.NoError(t, os.WriteFile(patchPath, []byte(testPatchFile), 0o644))
	require.NoError(t, os.WriteFile(docPath, []byte(testTemplate), 0o644))
	return patchPath, docPath
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// captureStdout runs fn while capturing os.Stdout and returns the output.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() {
		_ = w.Close()
		os.Stdout = old
	}()

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	return buf.String()
}

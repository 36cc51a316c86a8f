package patch

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		ps        *PatchSet
		wantPaths []string
	}{
		{
			name: "valid",
			ps:   NewPatchSet("ok", Replace("a", "b"), InsertAfter("x", "y")),
		},
		{
			name:      "nil patch set",
			ps:        nil,
			wantPaths: []string{""},
		},
		{
			name:      "missing version",
			ps:        &PatchSet{Info: Info{Title: "t"}, Edits: []Edit{Replace("a", "b")}},
			wantPaths: []string{"patchset"},
		},
		{
			name:      "unsupported version",
			ps:        &PatchSet{Version: "2.0", Info: Info{Title: "t"}, Edits: []Edit{Replace("a", "b")}},
			wantPaths: []string{"patchset"},
		},
		{
			name:      "missing title and edits",
			ps:        &PatchSet{Version: SupportedVersion},
			wantPaths: []string{"info.title", "edits"},
		},
		{
			name:      "empty matcher",
			ps:        NewPatchSet("t", Replace("", "b")),
			wantPaths: []string{"edits[0].match"},
		},
		{
			name:      "bad regexp",
			ps:        NewPatchSet("t", ReplaceRegexp("(", "b")),
			wantPaths: []string{"edits[0].match"},
		},
		{
			name:      "empty replacement with replacement check",
			ps:        NewPatchSet("t", Replace("a", "b"), Replace("a", "")),
			wantPaths: []string{"edits[1].check"},
		},
		{
			name:      "empty replacement with marker check",
			ps:        NewPatchSet("t", Replace("a", "").WithMarker("gone")),
			wantPaths: nil,
		},
		{
			name:      "regexp expansion with replacement check",
			ps:        NewPatchSet("t", ReplaceRegexp(`(\d+)`, "n$1")),
			wantPaths: []string{"edits[0].check"},
		},
		{
			name:      "later edit rewrites replacement",
			ps:        NewPatchSet("t", Replace("A", "A-MARK"), Replace("MARK", "DONE")),
			wantPaths: []string{"edits[0].check"},
		},
		{
			name:      "later edit matches whole replacement",
			ps:        NewPatchSet("t", Replace("A", "B"), Replace("B", "C")),
			wantPaths: []string{"edits[0].check"},
		},
		{
			name:      "later regexp edit rewrites replacement",
			ps:        NewPatchSet("t", Replace("v1", "v2"), ReplaceRegexp(`v\d`, "version").WithoutCheck()),
			wantPaths: []string{"edits[0].check"},
		},
		{
			name:      "chained edits with marker check",
			ps:        NewPatchSet("t", Replace("A", "A-MARK").WithMarker("A-DONE"), Replace("MARK", "DONE")),
			wantPaths: nil,
		},
		{
			name:      "chained edits without check",
			ps:        NewPatchSet("t", Replace("A", "A-MARK").WithoutCheck(), Replace("MARK", "DONE")),
			wantPaths: nil,
		},
		{
			name:      "earlier edit cannot rewrite later replacement",
			ps:        NewPatchSet("t", Replace("MARK", "DONE"), Replace("A", "A-MARK")),
			wantPaths: nil,
		},
		{
			name:      "marker check without marker",
			ps:        NewPatchSet("t", Edit{Match: "a", Replace: "b", Check: CheckMarker}),
			wantPaths: []string{"edits[0].marker"},
		},
		{
			name:      "unknown check",
			ps:        NewPatchSet("t", Edit{Match: "a", Replace: "b", Check: "fuzzy"}),
			wantPaths: []string{"edits[0].check"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.ps)
			var got []string
			for _, e := range errs {
				if e.Path != "" {
					got = append(got, e.Path)
				} else {
					got = append(got, e.Field)
				}
			}
			assert.Equal(t, tt.wantPaths, got)
			assert.Equal(t, len(tt.wantPaths) == 0, IsValid(tt.ps))
		})
	}
}

func TestValidate_InvalidFile(t *testing.T) {
	ps, err := ParsePatchSetFile(filepath.Join("testdata", "invalid.yaml"))
	require.NoError(t, err)

	errs := Validate(ps)
	require.Len(t, errs, 4)
	assert.Contains(t, errs[0].Error(), "unsupported version")
	assert.Contains(t, errs[1].Error(), "info.title")
	assert.Contains(t, errs[2].Error(), "edits[0].match")
	assert.Contains(t, errs[3].Error(), "edits[1].match")
	assert.NotNil(t, errs[3].Cause)
}

func TestValidate_ChainMessage(t *testing.T) {
	errs := Validate(NewPatchSet("t", Replace("A", "A-MARK"), Replace("MARK", "DONE")))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "edits[1]")
	assert.Contains(t, errs[0].Error(), "use check marker or none")
}

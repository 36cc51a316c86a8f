package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/erraggy/docpatch/differ"
	"github.com/erraggy/docpatch/patch"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type applyInput struct {
	Document         docInput      `json:"document,omitempty"          jsonschema:"The document to patch. If omitted, the document named by the patch set is used."`
	PatchSet         patchSetInput `json:"patchset"                    jsonschema:"The patch set to apply"`
	DryRun           bool          `json:"dry_run,omitempty"           jsonschema:"Evaluate every edit without writing anything"`
	Output           string        `json:"output,omitempty"            jsonschema:"File path to write the patched document to instead of patching in place"`
	IncludeDiff      bool          `json:"include_diff,omitempty"      jsonschema:"Include a unified diff of the change"`
	NormalizeUnicode bool          `json:"normalize_unicode,omitempty" jsonschema:"NFC-normalize the document and edits before matching"`
}

type editOutcome struct {
	Index    int    `json:"index"`
	Name     string `json:"name,omitempty"`
	Group    string `json:"group,omitempty"`
	Outcome  string `json:"outcome"`
	Required bool   `json:"required"`
}

type applyOutput struct {
	Document       string        `json:"document,omitempty"`
	WrittenTo      string        `json:"written_to,omitempty"`
	Results        []editOutcome `json:"results"`
	Applied        int           `json:"applied"`
	AlreadyPresent int           `json:"already_present"`
	NotFound       int           `json:"not_found"`
	Skipped        int           `json:"skipped"`
	Aborted        bool          `json:"aborted"`
	DryRun         bool          `json:"dry_run,omitempty"`
	Content        string        `json:"content,omitempty"`
	Diff           string        `json:"diff,omitempty"`
	Summary        string        `json:"summary"`
}

func handleApply(_ context.Context, _ *mcp.CallToolRequest, input applyInput) (*mcp.CallToolResult, applyOutput, error) {
	ps, err := input.PatchSet.resolve()
	if err != nil {
		return errResult(err), applyOutput{}, nil
	}

	docOpts, err := input.Document.options()
	if err != nil {
		return errResult(err), applyOutput{}, nil
	}

	dryRun := input.DryRun
	if cfg.ReadOnly {
		if input.Output != "" {
			return errResult(errors.New("server is read-only (DOCPATCH_READ_ONLY); output is not allowed")), applyOutput{}, nil
		}
		dryRun = true
	}

	opts := append(docOpts,
		patch.WithPatchSetParsed(ps),
		patch.WithDryRun(dryRun),
		patch.WithOutputPath(input.Output),
		patch.WithMaxDocumentSize(cfg.MaxDocumentSize),
		patch.WithNormalizeUnicode(input.NormalizeUnicode),
	)

	result, err := patch.ApplyWithOptions(opts...)
	if result == nil {
		return errResult(err), applyOutput{}, nil
	}

	output := buildApplyOutput(result)
	if input.IncludeDiff {
		d := differ.New()
		d.Context = cfg.DiffContext
		output.Diff = d.Unified(result.Original, result.Content, "a/document", "b/document")
	}
	if input.Document.Content != "" && input.Output == "" && result.Success() {
		output.Content = result.Content
	}

	if err != nil {
		return errResult(fmt.Errorf("%w (%s)", err, output.Summary)), output, nil
	}
	return nil, output, nil
}

func buildApplyOutput(result *patch.ApplyResult) applyOutput {
	output := applyOutput{
		Document:       result.DocumentPath,
		Applied:        result.Applied,
		AlreadyPresent: result.AlreadyPresent,
		NotFound:       result.NotFound,
		Skipped:        result.Skipped,
		Aborted:        result.Aborted,
		DryRun:         result.DryRun,
	}
	if result.Written {
		output.WrittenTo = result.OutputPath
	}

	output.Results = makeSlice[editOutcome](len(result.Results))
	for _, r := range result.Results {
		output.Results = append(output.Results, editOutcome{
			Index:    r.Index,
			Name:     r.Name,
			Group:    r.Group,
			Outcome:  string(r.Outcome),
			Required: r.Required,
		})
	}

	output.Summary = result.Summary() + "."
	switch {
	case result.Aborted:
		output.Summary += " Aborted: document not modified."
	case result.DryRun:
		output.Summary += " (dry run - no changes written)"
	case !result.HasChanges() && !result.Written:
		output.Summary += " Document already up to date."
	}
	return output
}

package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/docpatch/patch"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type validateInput struct {
	PatchSet patchSetInput `json:"patchset" jsonschema:"The patch set to validate"`
}

type validationIssue struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

type validateOutput struct {
	Valid     bool              `json:"valid"`
	Title     string            `json:"title,omitempty"`
	Document  string            `json:"document,omitempty"`
	EditCount int               `json:"edit_count"`
	Errors    []validationIssue `json:"errors,omitempty"`
	Summary   string            `json:"summary"`
}

func handleValidate(_ context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	ps, err := input.PatchSet.resolve()
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	errs := patch.Validate(ps)
	output := validateOutput{
		Valid:     len(errs) == 0,
		Title:     ps.Info.Title,
		Document:  ps.Document,
		EditCount: len(ps.Edits),
	}

	output.Errors = makeSlice[validationIssue](len(errs))
	for _, e := range errs {
		path := e.Path
		if path == "" {
			path = e.Field
		}
		msg := e.Message
		if e.Cause != nil {
			msg += ": " + sanitizeError(e.Cause)
		}
		output.Errors = append(output.Errors, validationIssue{Path: path, Message: msg})
	}

	if output.Valid {
		output.Summary = fmt.Sprintf("Patch set is valid (%d edit(s)).", output.EditCount)
	} else {
		output.Summary = fmt.Sprintf("Patch set has %d validation error(s).", len(errs))
	}
	return nil, output, nil
}

// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes docpatch as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/docpatch"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `docpatch MCP server: applies ordered, idempotent find/replace edits to text documents.

Each edit is applied at most once. An edit whose effect is already in the document is reported as already_present; a required edit whose matcher is missing aborts the run and the document is left untouched. Use dry_run with include_diff to preview a patch set.

Configuration: defaults come from DOCPATCH_* environment variables set in your MCP client config.
- DOCPATCH_READ_ONLY (default: false) - force every patch_apply call to dry run
- DOCPATCH_MAX_DOCUMENT_SIZE (default: 16777216) - largest document in bytes
- DOCPATCH_MAX_INLINE_SIZE (default: 4194304) - largest inline document or patch set
- DOCPATCH_DIFF_CONTEXT (default: 3) - context lines in returned diffs
- DOCPATCH_CACHE_ENABLED (default: true) - cache parsed patch sets per session`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		patchSetCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "docpatch", Version: docpatch.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "patch_apply",
		Description: "Apply a patch set (ordered find/replace edits) to a document. Edits run in order against the document; each reports applied, already_present, not_found, or skipped. A required edit that is not found aborts the run and nothing is written. Provide the document as a file path or inline content; when omitted, the patch set's document field is used. Use dry_run=true with include_diff=true to preview. Inline documents are returned patched in content unless output is set.",
	}, handleApply)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "patch_validate",
		Description: "Validate a patch set without applying it. Checks the version, title, that every edit has a matcher, that regexp matchers compile, and that each edit's idempotency check (replacement, marker, none) is usable.",
	}, handleValidate)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

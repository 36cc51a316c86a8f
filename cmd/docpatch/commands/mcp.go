package commands

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/docpatch/internal/mcpserver"
)

// SetupMCPFlags creates the FlagSet for the mcp command.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		Writef(fs.Output(), "Usage: docpatch mcp\n\n")
		Writef(fs.Output(), "Run an MCP server over stdio exposing the patch_apply and patch_validate tools.\n\n")
		Writef(fs.Output(), "Environment:\n")
		Writef(fs.Output(), "  DOCPATCH_READ_ONLY          force dry runs (default false)\n")
		Writef(fs.Output(), "  DOCPATCH_MAX_DOCUMENT_SIZE  largest document in bytes\n")
		Writef(fs.Output(), "  DOCPATCH_MAX_INLINE_SIZE    largest inline document or patch set in bytes\n")
		Writef(fs.Output(), "  DOCPATCH_DIFF_CONTEXT       context lines in returned diffs (default 3)\n")
		Writef(fs.Output(), "  DOCPATCH_CACHE_ENABLED      cache parsed patch sets (default true)\n")
	}
	return fs
}

// HandleMCP executes the mcp command. It blocks until the client
// disconnects or the process receives SIGINT or SIGTERM.
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}

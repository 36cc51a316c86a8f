package main

import (
	"fmt"
	"os"

	"github.com/erraggy/docpatch"
	"github.com/erraggy/docpatch/cmd/docpatch/commands"
)

// commandNames lists the top-level commands, used for typo suggestions.
var commandNames = []string{"apply", "validate", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "version", "--version":
		fmt.Printf("docpatch v%s\n", docpatch.Version())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "apply":
		err = commands.HandleApply(args)
	case "validate":
		err = commands.HandleValidate(args)
	case "mcp":
		err = commands.HandleMCP(args)
	default:
		commands.Writef(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			commands.Writef(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		commands.Writef(os.Stderr, "\n")
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		commands.Writef(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	commands.Writef(os.Stderr, `Usage: docpatch <command> [options]

Apply ordered, idempotent find/replace edits to text documents.

Commands:
  apply       Apply a patch file to a document
  validate    Validate a patch file
  mcp         Run an MCP server over stdio
  version     Show version information
  help        Show this help

Run 'docpatch <command> --help' for more information on a command.

%s
`, docpatch.BuildInfo())
}

// suggestCommand returns the closest known command within edit distance 2,
// or "" if none is close enough.
func suggestCommand(input string) string {
	best := ""
	bestDist := 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best = name
			bestDist = d
		}
	}
	return best
}

// levenshtein returns the edit distance between a and b.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

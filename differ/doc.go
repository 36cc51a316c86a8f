/*
Package differ computes line-oriented differences between two versions of a
document and renders them as unified diffs.

# Overview

The differ package backs the preview modes of docpatch: a dry run with
--diff shows exactly which lines a patch set would change without touching
the file. Differences are computed line by line using
github.com/sergi/go-diff, then grouped into hunks with surrounding context.

# Usage

The package provides two API styles:

 1. Package-level convenience functions using default settings
 2. A Differ instance with custom context size

# Example

	diff := differ.Unified(before, after, "a/update.md", "b/update.md")
	fmt.Print(diff)

	added, removed := differ.Stats(before, after)
	fmt.Printf("+%d -%d\n", added, removed)

# Output Format

Unified output follows the format used by diff -u and git diff: a ---/+++
header, @@ hunk headers with 1-based line ranges, and lines prefixed with a
space, '-' or '+'. A line without a trailing newline at the end of either
version is followed by "\ No newline at end of file". Identical inputs
produce an empty string.
*/
package differ

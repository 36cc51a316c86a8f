// Package patcherrors provides structured error types for the docpatch library.
//
// Import path: github.com/erraggy/docpatch/patcherrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between a document that could not be read,
// a patch set that is malformed, and a required edit whose matcher is missing.
//
// # Error Types
//
//   - [IOError]: Document or patch file could not be read or written
//   - [PatchNotFoundError]: A required edit's matcher is absent from the document
//   - [ParseError]: Patch file is not valid YAML or JSON
//   - [ValidationError]: Patch set is structurally invalid
//   - [ResourceLimitError]: Document exceeds a configured limit
//   - [ConfigError]: Invalid configuration or input options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrIO]: Matches any [IOError]
//   - [ErrPatchNotFound]: Matches any [PatchNotFoundError]
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrValidation]: Matches any [ValidationError]
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
//	result, err := patch.ApplyWithOptions(
//	    patch.WithDocumentPath("template.md"),
//	    patch.WithPatchSetFile("fixes.yaml"),
//	)
//	if errors.Is(err, patcherrors.ErrPatchNotFound) {
//	    // The document on disk was left untouched
//	}
//
//	var nf *patcherrors.PatchNotFoundError
//	if errors.As(err, &nf) {
//	    fmt.Printf("edit %d (%s) did not match\n", nf.EditIndex, nf.Name)
//	}
//
// An edit whose effect is already present is not an error; it is reported
// as an already_present outcome in the apply result.
package patcherrors

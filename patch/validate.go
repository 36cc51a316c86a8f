package patch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/erraggy/docpatch/patcherrors"
)

// SupportedVersion is the patch file format version supported by this implementation.
const SupportedVersion = "1.0"

// Validate checks a patch set for structural errors.
//
// Returns a slice of validation errors. An empty slice indicates the patch
// set is valid. Validation checks include:
//   - Required fields (patchset version, info.title, at least one edit)
//   - Supported version (currently only 1.0)
//   - Every edit has a matcher, and regexp matchers compile
//   - Idempotency checks are usable: a marker check has a marker, and a
//     replacement check has a literal, non-empty replacement that no later
//     edit matches
func Validate(ps *PatchSet) []*patcherrors.ValidationError {
	var errs []*patcherrors.ValidationError

	if ps == nil {
		return append(errs, &patcherrors.ValidationError{Message: "patch set is nil"})
	}

	// Required: version
	if ps.Version == "" {
		errs = append(errs, &patcherrors.ValidationError{
			Field:   "patchset",
			Message: "version is required",
		})
	} else if ps.Version != SupportedVersion {
		errs = append(errs, &patcherrors.ValidationError{
			Field:   "patchset",
			Message: fmt.Sprintf("unsupported version %q; only %q is supported", ps.Version, SupportedVersion),
		})
	}

	// Required: info.title
	if ps.Info.Title == "" {
		errs = append(errs, &patcherrors.ValidationError{
			Field:   "info.title",
			Message: "title is required",
		})
	}

	// Required: at least one edit
	if len(ps.Edits) == 0 {
		errs = append(errs, &patcherrors.ValidationError{
			Field:   "edits",
			Message: "at least one edit is required",
		})
	}

	for i, edit := range ps.Edits {
		errs = append(errs, validateEdit(edit, i)...)
	}
	errs = append(errs, validateChains(ps.Edits)...)

	return errs
}

// validateChains rejects a replacement check whose replacement text a later
// edit can rewrite. Such an edit is not detected as applied on a rerun.
func validateChains(edits []Edit) []*patcherrors.ValidationError {
	var errs []*patcherrors.ValidationError

	patterns := make([]*regexp.Regexp, len(edits))
	for j, edit := range edits {
		if edit.Regexp && edit.Match != "" {
			patterns[j], _ = regexp.Compile(edit.Match) // compile errors are reported by validateEdit
		}
	}

	for i, earlier := range edits {
		if earlier.checkMode() != CheckReplacement || earlier.Replace == "" {
			continue
		}
		if earlier.Regexp && strings.Contains(earlier.Replace, "$") {
			continue
		}
		for j := i + 1; j < len(edits); j++ {
			if !rewrites(edits[j], patterns[j], earlier.Replace) {
				continue
			}
			errs = append(errs, &patcherrors.ValidationError{
				Path:    fmt.Sprintf("edits[%d].check", i),
				Message: fmt.Sprintf("edits[%d] matches text in this replacement, so the replacement check cannot detect it on a rerun; use check marker or none", j),
			})
			break
		}
	}
	return errs
}

// rewrites reports whether edit's matcher can match inside text.
func rewrites(edit Edit, re *regexp.Regexp, text string) bool {
	if edit.Match == "" {
		return false
	}
	if edit.Regexp {
		return re != nil && re.MatchString(text)
	}
	return strings.Contains(text, edit.Match)
}

// validateEdit validates a single edit.
func validateEdit(edit Edit, index int) []*patcherrors.ValidationError {
	var errs []*patcherrors.ValidationError
	pathPrefix := fmt.Sprintf("edits[%d]", index)

	if edit.Match == "" {
		errs = append(errs, &patcherrors.ValidationError{
			Path:    pathPrefix + ".match",
			Message: "match is required",
		})
	} else if edit.Regexp {
		if _, err := regexp.Compile(edit.Match); err != nil {
			errs = append(errs, &patcherrors.ValidationError{
				Path:    pathPrefix + ".match",
				Message: "invalid regular expression",
				Cause:   err,
			})
		}
	}

	switch edit.checkMode() {
	case CheckReplacement:
		if edit.Replace == "" {
			errs = append(errs, &patcherrors.ValidationError{
				Path:    pathPrefix + ".check",
				Message: "an empty replacement cannot be detected; use check marker or none",
			})
		} else if edit.Regexp && strings.Contains(edit.Replace, "$") {
			errs = append(errs, &patcherrors.ValidationError{
				Path:    pathPrefix + ".check",
				Message: "replacement uses $ expansion and cannot be detected literally; use check marker or none",
			})
		}
	case CheckMarker:
		if edit.Marker == "" {
			errs = append(errs, &patcherrors.ValidationError{
				Path:    pathPrefix + ".marker",
				Message: "marker is required when check is marker",
			})
		}
	case CheckNone:
	default:
		errs = append(errs, &patcherrors.ValidationError{
			Path:    pathPrefix + ".check",
			Message: fmt.Sprintf("unknown check %q; valid checks: %v", edit.Check, ValidCheckModes()),
		})
	}

	return errs
}

// IsValid is a convenience function that returns true if the patch set has no validation errors.
func IsValid(ps *PatchSet) bool {
	return len(Validate(ps)) == 0
}

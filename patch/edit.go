package patch

import (
	"regexp"
	"strings"
)

// NewPatchSet builds a patch set in code. The version is set to
// SupportedVersion.
func NewPatchSet(title string, edits ...Edit) *PatchSet {
	return &PatchSet{
		Version: SupportedVersion,
		Info:    Info{Title: title},
		Edits:   edits,
	}
}

// Replace returns a required edit replacing the first occurrence of match.
func Replace(match, replacement string) Edit {
	return Edit{
		Match:    match,
		Replace:  replacement,
		Required: true,
	}
}

// ReplaceRegexp returns a required edit replacing the first match of the
// RE2 pattern. Replacements that use $ expansions need WithMarker or
// WithoutCheck.
func ReplaceRegexp(pattern, replacement string) Edit {
	e := Replace(pattern, replacement)
	e.Regexp = true
	return e
}

// InsertBefore returns a required edit inserting text immediately before
// anchor. The edit is skipped when text is already in the document.
func InsertBefore(anchor, text string) Edit {
	return Edit{
		Match:    anchor,
		Replace:  text + anchor,
		Required: true,
		Check:    CheckMarker,
		Marker:   text,
	}
}

// InsertAfter returns a required edit inserting text immediately after
// anchor. The edit is skipped when text is already in the document.
func InsertAfter(anchor, text string) Edit {
	return Edit{
		Match:    anchor,
		Replace:  anchor + text,
		Required: true,
		Check:    CheckMarker,
		Marker:   text,
	}
}

// Named returns a copy of e with the given name.
func (e Edit) Named(name string) Edit {
	e.Name = name
	return e
}

// InGroup returns a copy of e belonging to group.
func (e Edit) InGroup(group string) Edit {
	e.Group = group
	return e
}

// Optional returns a copy of e whose missing matcher is not fatal.
func (e Edit) Optional() Edit {
	e.Required = false
	return e
}

// WithMarker returns a copy of e that is considered applied when marker is
// present in the document.
func (e Edit) WithMarker(marker string) Edit {
	e.Check = CheckMarker
	e.Marker = marker
	return e
}

// WithoutCheck returns a copy of e with the idempotency check disabled.
func (e Edit) WithoutCheck() Edit {
	e.Check = CheckNone
	e.Marker = ""
	return e
}

// checkMode returns the effective idempotency check.
func (e Edit) checkMode() CheckMode {
	if e.Check == "" {
		return CheckReplacement
	}
	return e.Check
}

// alreadyPresent reports whether the edit's effect is found in doc.
func (e Edit) alreadyPresent(doc string) bool {
	switch e.checkMode() {
	case CheckMarker:
		return e.Marker != "" && strings.Contains(doc, e.Marker)
	case CheckReplacement:
		return e.Replace != "" && strings.Contains(doc, e.Replace)
	default:
		return false
	}
}

// locate finds the first occurrence of the edit's matcher in doc and
// returns its byte range and the text to put in its place. re must be
// non-nil for regexp edits.
func (e Edit) locate(doc string, re *regexp.Regexp) (start, end int, replacement string, ok bool) {
	if e.Regexp {
		loc := re.FindStringSubmatchIndex(doc)
		if loc == nil {
			return 0, 0, "", false
		}
		expanded := re.ExpandString(nil, e.Replace, doc, loc)
		return loc[0], loc[1], string(expanded), true
	}
	idx := strings.Index(doc, e.Match)
	if idx < 0 {
		return 0, 0, "", false
	}
	return idx, idx + len(e.Match), e.Replace, true
}

package patch

import (
	"fmt"
	"path/filepath"

	"github.com/erraggy/docpatch/patcherrors"
)

// Option is a function that configures a patch application operation.
type Option func(*applyConfig) error

// applyConfig holds configuration for a patch application operation.
type applyConfig struct {
	// Input source for the document (at most one may be set; when neither
	// is set the patch set's document field is used)
	documentPath    *string
	documentContent *string

	// Input source for the patch set (exactly one must be set)
	patchSetPath   *string
	patchSetParsed *PatchSet

	// Configuration options
	dryRun           bool
	outputPath       string
	maxDocumentSize  int64
	normalizeUnicode bool
	logger           Logger
}

// WithDocumentPath specifies the file to patch.
func WithDocumentPath(path string) Option {
	return func(cfg *applyConfig) error {
		if path == "" {
			return &patcherrors.ConfigError{Option: "document", Message: "document path cannot be empty"}
		}
		cfg.documentPath = &path
		return nil
	}
}

// WithDocumentContent specifies in-memory content to patch. Nothing is
// written unless WithOutputPath is also given.
func WithDocumentContent(content string) Option {
	return func(cfg *applyConfig) error {
		cfg.documentContent = &content
		return nil
	}
}

// WithPatchSetFile specifies a patch file path as the patch set source.
func WithPatchSetFile(path string) Option {
	return func(cfg *applyConfig) error {
		if path == "" {
			return &patcherrors.ConfigError{Option: "patchset", Message: "patch file path cannot be empty"}
		}
		cfg.patchSetPath = &path
		return nil
	}
}

// WithPatchSetParsed specifies an already-built patch set.
func WithPatchSetParsed(ps *PatchSet) Option {
	return func(cfg *applyConfig) error {
		if ps == nil {
			return &patcherrors.ConfigError{Option: "patchset", Message: "patch set cannot be nil"}
		}
		cfg.patchSetParsed = ps
		return nil
	}
}

// WithDryRun evaluates every edit without writing anything.
func WithDryRun(dryRun bool) Option {
	return func(cfg *applyConfig) error {
		cfg.dryRun = dryRun
		return nil
	}
}

// WithOutputPath writes the patched content to path instead of the document.
func WithOutputPath(path string) Option {
	return func(cfg *applyConfig) error {
		cfg.outputPath = path
		return nil
	}
}

// WithMaxDocumentSize sets the document size limit in bytes. Zero disables
// the limit.
func WithMaxDocumentSize(n int64) Option {
	return func(cfg *applyConfig) error {
		if n < 0 {
			return &patcherrors.ConfigError{Option: "max-document-size", Value: n, Message: "must not be negative"}
		}
		cfg.maxDocumentSize = n
		return nil
	}
}

// WithNormalizeUnicode enables NFC normalization of the document and edits.
func WithNormalizeUnicode(enabled bool) Option {
	return func(cfg *applyConfig) error {
		cfg.normalizeUnicode = enabled
		return nil
	}
}

// WithLogger sets the logger used during application.
func WithLogger(l Logger) Option {
	return func(cfg *applyConfig) error {
		cfg.logger = l
		return nil
	}
}

// applyOptions applies all options and returns the configuration.
func applyOptions(opts ...Option) (*applyConfig, error) {
	cfg := &applyConfig{
		maxDocumentSize: DefaultMaxDocumentSize,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.documentPath != nil && cfg.documentContent != nil {
		return nil, &patcherrors.ConfigError{Option: "document", Message: "must specify at most one document source"}
	}

	// Validate exactly one patch set source
	sourceCount := 0
	if cfg.patchSetPath != nil {
		sourceCount++
	}
	if cfg.patchSetParsed != nil {
		sourceCount++
	}
	if sourceCount == 0 {
		return nil, &patcherrors.ConfigError{Option: "patchset", Message: "must specify a patch set source (use WithPatchSetFile or WithPatchSetParsed)"}
	}
	if sourceCount > 1 {
		return nil, &patcherrors.ConfigError{Option: "patchset", Message: "must specify exactly one patch set source"}
	}

	return cfg, nil
}

// loadPatchSet returns the configured patch set, parsing it if needed.
func loadPatchSet(cfg *applyConfig) (*PatchSet, error) {
	if cfg.patchSetPath != nil {
		return ParsePatchSetFile(*cfg.patchSetPath)
	}
	return cfg.patchSetParsed, nil
}

// ResolveDocumentPath returns the patch set's default document path. A
// relative path is resolved against the directory of the patch file it was
// read from. Returns "" when the patch set names no document.
func ResolveDocumentPath(ps *PatchSet) string {
	if ps.Document == "" {
		return ""
	}
	if filepath.IsAbs(ps.Document) || ps.source == "" {
		return ps.Document
	}
	return filepath.Join(filepath.Dir(ps.source), ps.Document)
}

func (cfg *applyConfig) applier() *Applier {
	return &Applier{
		DryRun:           cfg.dryRun,
		OutputPath:       cfg.outputPath,
		MaxDocumentSize:  cfg.maxDocumentSize,
		NormalizeUnicode: cfg.normalizeUnicode,
		Logger:           cfg.logger,
	}
}

// ApplyWithOptions applies a patch set using functional options.
//
// This is the recommended API for most use cases.
//
// Example:
//
//	result, err := patch.ApplyWithOptions(
//	    patch.WithDocumentPath("update.md.template"),
//	    patch.WithPatchSetFile("fixes.yaml"),
//	    patch.WithDryRun(true),
//	)
func ApplyWithOptions(opts ...Option) (*ApplyResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("patch: invalid options: %w", err)
	}

	ps, err := loadPatchSet(cfg)
	if err != nil {
		return nil, err
	}

	a := cfg.applier()
	if cfg.documentContent != nil {
		return a.ApplyContent(*cfg.documentContent, ps)
	}

	docPath := ""
	if cfg.documentPath != nil {
		docPath = *cfg.documentPath
	} else {
		docPath = ResolveDocumentPath(ps)
	}
	if docPath == "" {
		return nil, &patcherrors.ConfigError{
			Option:  "document",
			Message: "no document given and the patch set does not name one",
		}
	}
	return a.Apply(docPath, ps)
}

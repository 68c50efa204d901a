package typegen

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasmodels/internal/issues"
	"github.com/erraggy/oasmodels/internal/severity"
	"github.com/erraggy/oasmodels/model"
	"github.com/erraggy/oasmodels/oaserrors"
	"github.com/erraggy/oasmodels/schema"
)

// DefaultPackageNamespace is the namespace given to declarations when none is configured.
const DefaultPackageNamespace = "models"

// Issue is a recoverable problem found while resolving schemas.
type Issue = issues.Issue

// Result is the outcome of one generation run.
type Result struct {
	// Declarations holds every generated declaration in reservation order.
	Declarations model.Set
	// Issues holds the recoverable problems, in the order they were found.
	Issues []Issue
	// PackageNamespace is the namespace every declaration was given.
	PackageNamespace string
	// SourcePath is the document the declarations came from.
	SourcePath string

	ClassCount     int
	EnumCount      int
	InterfaceCount int
	WarningCount   int
	InfoCount      int

	// Success is false when the run was strict and reported warnings.
	Success bool
}

// HasWarnings reports whether any warning was recorded.
func (r *Result) HasWarnings() bool {
	return r.WarningCount > 0
}

// config holds the settings shared by Generate and NewResolver.
type config struct {
	packageNamespace string
	validation       bool
	inlineResponses  bool
	strict           bool
	singularItems    bool
	untitledBranches bool
	logger           Logger
	sourcePath       string
}

// Option configures a generation run.
type Option func(*config) error

func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{
		packageNamespace: DefaultPackageNamespace,
		validation:       true,
		inlineResponses:  true,
		untitledBranches: true,
		logger:           NopLogger{},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithPackageNamespace sets the namespace recorded on every declaration.
// It is carried through for the printer and does not affect resolution.
func WithPackageNamespace(ns string) Option {
	return func(cfg *config) error {
		if strings.TrimSpace(ns) == "" {
			return &oaserrors.ConfigError{Option: "WithPackageNamespace", Message: "namespace cannot be empty"}
		}
		cfg.packageNamespace = ns
		return nil
	}
}

// WithValidationConstraints controls whether fields carry validation
// constraints. Default: true.
func WithValidationConstraints(enabled bool) Option {
	return func(cfg *config) error {
		cfg.validation = enabled
		return nil
	}
}

// WithInlineResponses controls whether inline response-body schemas are
// resolved after the components. Default: true.
func WithInlineResponses(enabled bool) Option {
	return func(cfg *config) error {
		cfg.inlineResponses = enabled
		return nil
	}
}

// WithStrict marks a run that reports warnings as unsuccessful.
func WithStrict(strict bool) Option {
	return func(cfg *config) error {
		cfg.strict = strict
		return nil
	}
}

// WithSingularItems names inline array item declarations after the
// singular form of their property ("tags" yields "Pet_tag").
func WithSingularItems(enabled bool) Option {
	return func(cfg *config) error {
		cfg.singularItems = enabled
		return nil
	}
}

// WithUntitledBranches controls what happens to an inline oneOf branch
// without a title. Enabled, the branch becomes an implementer named
// <owner>_Variant<n>, where n is its 1-based position; this goes beyond
// plain oneOf handling, which only registers referenced and titled branches.
// Disabled, such branches are skipped with a warning. Default: true.
func WithUntitledBranches(enabled bool) Option {
	return func(cfg *config) error {
		cfg.untitledBranches = enabled
		return nil
	}
}

// WithLogger sets the logger. Passing nil restores the no-op logger.
func WithLogger(l Logger) Option {
	return func(cfg *config) error {
		if l == nil {
			l = NopLogger{}
		}
		cfg.logger = l
		return nil
	}
}

// WithSourcePath sets the file name recorded on issues. Generate uses the
// document's own source path unless this is given.
func WithSourcePath(path string) Option {
	return func(cfg *config) error {
		cfg.sourcePath = path
		return nil
	}
}

// Generate resolves every component of doc in declaration order, then its
// inline response-body schemas, and returns the declarations.
//
// A $ref that cannot be resolved aborts the run with an
// *oaserrors.ReferenceError. Everything else is reported as an Issue.
func Generate(doc *schema.Document, opts ...Option) (*Result, error) {
	if doc == nil || doc.Components == nil {
		return nil, &oaserrors.ConfigError{Option: "document", Message: "typegen: document has no component table"}
	}

	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	if cfg.sourcePath == "" {
		cfg.sourcePath = doc.SourcePath
	}

	r := newResolver(doc.Components, cfg)
	cfg.logger.Debug("generating declarations", "components", doc.Components.Len(), "inline", len(doc.Inline))

	for _, name := range doc.Components.Names() {
		if _, err := r.ResolveOrGenerate(name, doc.Components.Get(name)); err != nil {
			return nil, fmt.Errorf("typegen: resolving component %s: %w", name, err)
		}
	}
	if cfg.inlineResponses {
		for _, in := range doc.Inline {
			if _, err := r.ResolveOrGenerate(in.NameHint, in.Schema); err != nil {
				return nil, fmt.Errorf("typegen: resolving %s: %w", in.NameHint, err)
			}
		}
	}

	result := &Result{
		Declarations:     r.Declarations(),
		Issues:           r.Issues(),
		PackageNamespace: cfg.packageNamespace,
		SourcePath:       cfg.sourcePath,
	}
	result.ClassCount = result.Declarations.Count(model.DeclClass)
	result.EnumCount = result.Declarations.Count(model.DeclEnum)
	result.InterfaceCount = result.Declarations.Count(model.DeclInterface)
	result.WarningCount = issues.Count(result.Issues, severity.SeverityWarning)
	result.InfoCount = issues.Count(result.Issues, severity.SeverityInfo)
	result.Success = !cfg.strict || result.WarningCount == 0

	cfg.logger.Info("generated declarations",
		"classes", result.ClassCount,
		"enums", result.EnumCount,
		"interfaces", result.InterfaceCount,
		"warnings", result.WarningCount)
	return result, nil
}

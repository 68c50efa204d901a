package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/erraggy/oasmodels/emitter"
	"github.com/erraggy/oasmodels/internal/config"
	"github.com/erraggy/oasmodels/typegen"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	Output            string
	PackageName       string
	Format            string
	FileName          string
	Config            string
	NoValidation      bool
	NoInlineResponses bool
	SingularItems     bool
	TitledBranches    bool
	Strict            bool
	NoWarnings        bool
	Verbose           bool
}

// SetupGenerateFlags creates and configures a FlagSet for the generate command.
// Returns the FlagSet and a GenerateFlags struct with bound flag variables.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}

	fs.StringVar(&flags.Output, "o", "", "output directory, or '-' for stdout (default from config, else .)")
	fs.StringVar(&flags.Output, "output", "", "output directory, or '-' for stdout (default from config, else .)")
	fs.StringVar(&flags.PackageName, "p", "", "package name for generated code (default from config, else models)")
	fs.StringVar(&flags.PackageName, "package", "", "package name for generated code (default from config, else models)")
	fs.StringVar(&flags.Format, "format", "", "output format: go, json, yaml (default from config, else go)")
	fs.StringVar(&flags.FileName, "file", "", "output file name (default models.<format>)")
	fs.StringVar(&flags.Config, "config", "", "project file (default oasmodels.yaml next to the document, when present)")
	fs.BoolVar(&flags.NoValidation, "no-validation", false, "don't include validation constraints or validate tags")
	fs.BoolVar(&flags.NoInlineResponses, "no-inline-responses", false, "don't generate models for inline response bodies")
	fs.BoolVar(&flags.SingularItems, "singular-items", false, "name inline array item models after the singular property name")
	fs.BoolVar(&flags.TitledBranches, "titled-branches-only", false, "skip inline oneOf branches without a title instead of naming them <owner>_Variant<n>")
	fs.BoolVar(&flags.Strict, "strict", false, "fail when any warning is reported")
	fs.BoolVar(&flags.NoWarnings, "no-warnings", false, "suppress warning and info messages")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log resolver decisions to stderr")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasmodels generate [flags] <file|->\n\n")
		Writef(fs.Output(), "Generate model declarations from an OpenAPI or JSON Schema document.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasmodels generate -p petstore -o ./petstore openapi.yaml\n")
		Writef(fs.Output(), "  oasmodels generate --format yaml -o - openapi.yaml\n")
		Writef(fs.Output(), "  oasmodels generate --strict --no-inline-responses swagger.json\n")
		Writef(fs.Output(), "  cat schema.json | oasmodels generate -p schema -o ./schema -\n")
		Writef(fs.Output(), "\nConfiguration:\n")
		Writef(fs.Output(), "  Values in oasmodels.yaml (packageName, outputPath, validation, inlineResponses,\n")
		Writef(fs.Output(), "  format, singularItems) apply unless the matching flag is given.\n")
	}

	return fs, flags
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	return runGenerate(args, os.Stdin, os.Stdout, os.Stderr)
}

func runGenerate(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs, flags := SetupGenerateFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("generate command requires exactly one file path or '-' for stdin")
	}
	specPath := fs.Arg(0)

	fileCfg, err := LoadProjectConfig(flags.Config, specPath)
	if err != nil {
		return err
	}
	cfg := fileCfg.Merge(flags.overrides(fs))
	if err := cfg.Validate(); err != nil {
		return err
	}
	format := cfg.OutputFormat()

	// Reports go to stderr when the generated file itself goes to stdout.
	report := stdout
	if cfg.OutputPath == StdinFilePath {
		report = stderr
	}

	startTime := time.Now()
	doc, err := LoadDocument(specPath, stdin, cfg.InlineResponsesEnabled())
	if err != nil {
		return err
	}

	logger := NewLogger(stderr, flags.Verbose)
	result, err := typegen.Generate(doc,
		typegen.WithPackageNamespace(cfg.PackageName),
		typegen.WithValidationConstraints(cfg.ValidationEnabled()),
		typegen.WithInlineResponses(cfg.InlineResponsesEnabled()),
		typegen.WithSingularItems(cfg.SingularItemsEnabled()),
		typegen.WithUntitledBranches(!flags.TitledBranches),
		typegen.WithStrict(flags.Strict),
		typegen.WithLogger(typegen.NewSlogAdapter(logger)),
	)
	if err != nil {
		return fmt.Errorf("generating models: %w", err)
	}

	emitOpts := []emitter.Option{emitter.WithValidateTags(cfg.ValidationEnabled())}
	if flags.FileName != "" {
		emitOpts = append(emitOpts, emitter.WithFileName(flags.FileName))
	}
	file, err := emitter.Render(result.Declarations, result.PackageNamespace, format, emitOpts...)
	if err != nil {
		return fmt.Errorf("rendering models: %w", err)
	}
	totalTime := time.Since(startTime)

	OutputHeader(report, "OpenAPI Model Generator", specPath, doc)
	Writef(report, "Package: %s\n", result.PackageNamespace)
	Writef(report, "Format: %s\n", format)
	Writef(report, "Classes: %d\n", result.ClassCount)
	Writef(report, "Enums: %d\n", result.EnumCount)
	Writef(report, "Interfaces: %d\n", result.InterfaceCount)
	Writef(report, "Total Time: %v\n\n", totalTime)

	if len(result.Issues) > 0 && !flags.NoWarnings {
		Writef(report, "Generation Issues (%d):\n", len(result.Issues))
		for _, issue := range result.Issues {
			if issue.HasLocation() {
				Writef(report, "  %s: %s: %s\n", issue.Location(), issue.Path, issue.Message)
			} else {
				Writef(report, "  %s\n", issue.String())
			}
		}
		Writef(report, "\n")
	}

	if !result.Success {
		Writef(report, "✗ Generation failed with %d warning(s) in strict mode\n", result.WarningCount)
		return fmt.Errorf("generation failed with %d warning(s) in strict mode", result.WarningCount)
	}

	if cfg.OutputPath == StdinFilePath {
		if _, err := stdout.Write(file.Content); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	} else {
		if err := emitter.WriteFiles(cfg.OutputPath, file); err != nil {
			return fmt.Errorf("writing files: %w", err)
		}
		Writef(report, "Generated Files (1):\n")
		Writef(report, "  - %s (%d bytes)\n\n", filepath.Join(cfg.OutputPath, file.Name), len(file.Content))
	}

	Writef(report, "✓ Generation successful")
	if result.InfoCount > 0 || result.WarningCount > 0 {
		Writef(report, " (%d info, %d warnings)", result.InfoCount, result.WarningCount)
	}
	Writef(report, "\n")
	return nil
}

// overrides returns the project settings given explicitly on the command line.
func (f *GenerateFlags) overrides(fs *flag.FlagSet) *config.Config {
	out := &config.Config{
		PackageName: f.PackageName,
		OutputPath:  f.Output,
		Format:      f.Format,
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "no-validation":
			v := !f.NoValidation
			out.Validation = &v
		case "no-inline-responses":
			v := !f.NoInlineResponses
			out.InlineResponses = &v
		case "singular-items":
			v := f.SingularItems
			out.SingularItems = &v
		}
	})
	return out
}

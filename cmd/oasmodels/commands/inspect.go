package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/erraggy/oasmodels/emitter"
	"github.com/erraggy/oasmodels/typegen"
)

// InspectFlags contains flags for the inspect command
type InspectFlags struct {
	Format            string
	Kind              string
	NoInlineResponses bool
	SingularItems     bool
	Quiet             bool
}

// InspectReport is the structured output of the inspect command.
type InspectReport struct {
	Source       string            `json:"source" yaml:"source"`
	Version      string            `json:"version,omitempty" yaml:"version,omitempty"`
	Classes      int               `json:"classes" yaml:"classes"`
	Enums        int               `json:"enums" yaml:"enums"`
	Interfaces   int               `json:"interfaces" yaml:"interfaces"`
	Declarations []emitter.Summary `json:"declarations" yaml:"declarations"`
	Issues       []typegen.Issue   `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// SetupInspectFlags creates and configures a FlagSet for the inspect command.
func SetupInspectFlags() (*flag.FlagSet, *InspectFlags) {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	flags := &InspectFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Kind, "kind", "", "only list declarations of this kind: class, enum, interface")
	fs.BoolVar(&flags.NoInlineResponses, "no-inline-responses", false, "skip inline response bodies")
	fs.BoolVar(&flags.SingularItems, "singular-items", false, "name inline array item models after the singular property name")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet: tab-separated rows without header")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet: tab-separated rows without header")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasmodels inspect [flags] <file|->\n\n")
		Writef(fs.Output(), "List the declarations a document would generate.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasmodels inspect openapi.yaml\n")
		Writef(fs.Output(), "  oasmodels inspect --kind enum -q openapi.yaml | cut -f2\n")
		Writef(fs.Output(), "  oasmodels inspect --format json schema.json\n")
	}

	return fs, flags
}

// HandleInspect executes the inspect command
func HandleInspect(args []string) error {
	return runInspect(args, os.Stdin, os.Stdout)
}

func runInspect(args []string, stdin io.Reader, stdout io.Writer) error {
	fs, flags := SetupInspectFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	kind := strings.ToLower(flags.Kind)
	if kind != "" && kind != "class" && kind != "enum" && kind != "interface" {
		return fmt.Errorf("invalid kind '%s'. Valid kinds: class, enum, interface", flags.Kind)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("inspect command requires exactly one file path or '-' for stdin")
	}
	specPath := fs.Arg(0)

	doc, err := LoadDocument(specPath, stdin, !flags.NoInlineResponses)
	if err != nil {
		return err
	}
	result, err := typegen.Generate(doc,
		typegen.WithInlineResponses(!flags.NoInlineResponses),
		typegen.WithSingularItems(flags.SingularItems),
	)
	if err != nil {
		return fmt.Errorf("generating models: %w", err)
	}

	var summaries []emitter.Summary
	for _, s := range emitter.Summarize(result.Declarations) {
		if kind == "" || s.Kind == kind {
			summaries = append(summaries, s)
		}
	}

	if flags.Format != FormatText {
		return OutputStructured(stdout, InspectReport{
			Source:       FormatSpecPath(specPath),
			Version:      doc.Version,
			Classes:      result.ClassCount,
			Enums:        result.EnumCount,
			Interfaces:   result.InterfaceCount,
			Declarations: summaries,
			Issues:       result.Issues,
		}, flags.Format)
	}

	if !flags.Quiet {
		OutputHeader(stdout, "OpenAPI Model Inspector", specPath, doc)
		Writef(stdout, "Classes: %d, Enums: %d, Interfaces: %d\n\n", result.ClassCount, result.EnumCount, result.InterfaceCount)
	}

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{s.Kind, s.Name, strconv.Itoa(s.Members), s.Detail})
	}
	RenderSummaryTable(stdout, []string{"KIND", "NAME", "MEMBERS", "DETAIL"}, rows, flags.Quiet)

	if !flags.Quiet && len(result.Issues) > 0 {
		Writef(stdout, "\nIssues (%d):\n", len(result.Issues))
		for _, issue := range result.Issues {
			Writef(stdout, "  %s\n", issue.String())
		}
	}
	return nil
}

// RenderSummaryTable renders a table of results.
// In quiet mode, headers are omitted and rows are tab-separated for piping.
// In normal mode, a fixed-width table with headers is rendered.
func RenderSummaryTable(w io.Writer, headers []string, rows [][]string, quiet bool) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	if !quiet {
		writeRow(w, headers, widths)
	}
	for _, row := range rows {
		if quiet {
			Writef(w, "%s\n", strings.Join(row, "\t"))
			continue
		}
		writeRow(w, row, widths)
	}
}

func writeRow(w io.Writer, cells []string, widths []int) {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		if i == len(cells)-1 {
			b.WriteString(cell)
			continue
		}
		fmt.Fprintf(&b, "%-*s", widths[i], cell)
	}
	Writef(w, "%s\n", b.String())
}

package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/erraggy/oasmodels/emitter"
	"github.com/erraggy/oasmodels/typegen"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type generateInput struct {
	Spec            specInput `json:"spec"                       jsonschema:"The document to generate models from"`
	PackageName     string    `json:"package_name,omitempty"     jsonschema:"Package name for generated code (default: models)"`
	Format          string    `json:"format,omitempty"           jsonschema:"Output format: go, json or yaml (default: go)"`
	Validation      *bool     `json:"validation,omitempty"       jsonschema:"Emit validation constraints and validate tags (default: true)"`
	InlineResponses *bool     `json:"inline_responses,omitempty" jsonschema:"Generate models for inline response bodies (default: true)"`
	SingularItems   bool      `json:"singular_items,omitempty"   jsonschema:"Name inline array item models after the singular property name"`
	Strict          bool      `json:"strict,omitempty"           jsonschema:"Report the run as unsuccessful when warnings are found"`
	OutputDir       string    `json:"output_dir,omitempty"       jsonschema:"Directory to write the generated file to instead of returning it inline"`
}

type issueInfo struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Path     string `json:"path"`
	Message  string `json:"message"`
	Line     int    `json:"line,omitempty"`
}

type generateOutput struct {
	Success        bool        `json:"success"`
	PackageName    string      `json:"package_name"`
	Format         string      `json:"format"`
	FileName       string      `json:"file_name"`
	WrittenTo      string      `json:"written_to,omitempty"`
	Content        string      `json:"content,omitempty"`
	ClassCount     int         `json:"class_count"`
	EnumCount      int         `json:"enum_count"`
	InterfaceCount int         `json:"interface_count"`
	WarningCount   int         `json:"warning_count"`
	InfoCount      int         `json:"info_count"`
	Issues         []issueInfo `json:"issues,omitempty"`
}

func handleGenerate(_ context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	format := cfg.Format
	if input.Format != "" {
		f, err := emitter.ParseFormat(input.Format)
		if err != nil {
			return errResult(err), generateOutput{}, nil
		}
		format = f
	}

	inlineResponses := boolOr(input.InlineResponses, cfg.InlineResponses)
	validation := boolOr(input.Validation, cfg.Validation)
	pkg := input.PackageName
	if pkg == "" {
		pkg = cfg.PackageName
	}

	doc, err := input.Spec.load(inlineResponses)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	result, err := typegen.Generate(doc,
		typegen.WithPackageNamespace(pkg),
		typegen.WithValidationConstraints(validation),
		typegen.WithInlineResponses(inlineResponses),
		typegen.WithSingularItems(input.SingularItems),
		typegen.WithStrict(input.Strict),
		typegen.WithLogger(typegen.NewSlogAdapter(slog.Default())),
	)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	file, err := emitter.Render(result.Declarations, result.PackageNamespace, format,
		emitter.WithValidateTags(validation))
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output := generateOutput{
		Success:        result.Success,
		PackageName:    result.PackageNamespace,
		Format:         string(format),
		FileName:       file.Name,
		ClassCount:     result.ClassCount,
		EnumCount:      result.EnumCount,
		InterfaceCount: result.InterfaceCount,
		WarningCount:   result.WarningCount,
		InfoCount:      result.InfoCount,
	}

	output.Issues = makeSlice[issueInfo](len(result.Issues))
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, issueInfo{
			Severity: issue.Severity.String(),
			Code:     string(issue.Code),
			Path:     issue.Path,
			Message:  issue.Message,
			Line:     issue.Line,
		})
	}

	if input.OutputDir == "" {
		output.Content = string(file.Content)
		return nil, output, nil
	}
	if err := emitter.WriteFiles(input.OutputDir, file); err != nil {
		return errResult(fmt.Errorf("failed to write generated file: %w", err)), generateOutput{}, nil
	}
	output.WrittenTo = filepath.Join(input.OutputDir, file.Name)
	return nil, output, nil
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

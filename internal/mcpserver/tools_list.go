package mcpserver

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/oasmodels/emitter"
	"github.com/erraggy/oasmodels/typegen"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type listInput struct {
	Spec            specInput `json:"spec"                       jsonschema:"The document to list declarations from"`
	Kind            string    `json:"kind,omitempty"             jsonschema:"Filter by kind: class, enum or interface"`
	Name            string    `json:"name,omitempty"             jsonschema:"Filter by case-insensitive name substring"`
	InlineResponses *bool     `json:"inline_responses,omitempty" jsonschema:"Include models for inline response bodies (default: true)"`
	SingularItems   bool      `json:"singular_items,omitempty"   jsonschema:"Name inline array item models after the singular property name"`
	Offset          int       `json:"offset,omitempty"           jsonschema:"Number of results to skip"`
	Limit           int       `json:"limit,omitempty"            jsonschema:"Maximum number of results (default: 100)"`
}

type listOutput struct {
	Total        int               `json:"total"`
	Matched      int               `json:"matched"`
	Returned     int               `json:"returned"`
	WarningCount int               `json:"warning_count"`
	Declarations []emitter.Summary `json:"declarations,omitempty"`
}

var declKinds = []string{"class", "enum", "interface"}

func handleListDeclarations(_ context.Context, _ *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, listOutput, error) {
	kind := strings.ToLower(strings.TrimSpace(input.Kind))
	if kind != "" && !slices.Contains(declKinds, kind) {
		return errResult(fmt.Errorf("invalid kind %q; valid values: %s", input.Kind, strings.Join(declKinds, ", "))), listOutput{}, nil
	}

	inlineResponses := boolOr(input.InlineResponses, cfg.InlineResponses)
	doc, err := input.Spec.load(inlineResponses)
	if err != nil {
		return errResult(err), listOutput{}, nil
	}

	result, err := typegen.Generate(doc,
		typegen.WithInlineResponses(inlineResponses),
		typegen.WithSingularItems(input.SingularItems),
	)
	if err != nil {
		return errResult(err), listOutput{}, nil
	}

	all := emitter.Summarize(result.Declarations)
	name := strings.ToLower(input.Name)
	var matched []emitter.Summary
	for _, s := range all {
		if kind != "" && s.Kind != kind {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(s.Name), name) {
			continue
		}
		matched = append(matched, s)
	}

	page := paginate(matched, input.Offset, input.Limit)
	return nil, listOutput{
		Total:        len(all),
		Matched:      len(matched),
		Returned:     len(page),
		WarningCount: result.WarningCount,
		Declarations: page,
	}, nil
}

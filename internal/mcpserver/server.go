// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasmodels generation as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/oasmodels"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oasmodels MCP server: turns OpenAPI and JSON Schema documents into model declarations and prints them as Go source, JSON or YAML.

Configuration: All defaults are configurable via OASMODELS_* environment variables set in your MCP client config.

Key settings:
- OASMODELS_PACKAGE (default: models): package name for generated code
- OASMODELS_FORMAT (default: go): go, json or yaml
- OASMODELS_VALIDATION (default: true): emit validate tags and constraints
- OASMODELS_INLINE_RESPONSES (default: true): generate models for inline response bodies
- OASMODELS_CACHE_ENABLED (default: true): disable document caching entirely
- OASMODELS_CACHE_FILE_TTL (default: 15m): cache TTL for local file documents
- OASMODELS_LIST_LIMIT (default: 100): default result limit for list_declarations

Caching: Loaded documents are cached per session. File entries use path+mtime as key (auto-invalidated on change). A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		docCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasmodels", Version: oasmodels.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_models",
		Description: "Generate model declarations from an OpenAPI (2.0, 3.0, 3.1) or JSON Schema document. Returns the rendered Go source, JSON or YAML manifest inline, or writes it to output_dir when set. Every object schema becomes a struct, every enum a named type, every oneOf an interface. Issues (skipped shapes, bad defaults) are returned with JSON path locations. Use strict=true to fail on warnings.",
	}, handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_declarations",
		Description: "List the declarations a document would generate, without rendering them. Returns kind, name, member count and a short detail (implemented interfaces, enum default, discriminator property). Filter by kind (class, enum, interface) or name. Use offset/limit to paginate.",
	}, handleListDeclarations)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// pathPattern matches absolute filesystem paths in error messages.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

// sanitizeError strips absolute filesystem paths from error messages
// to avoid leaking internal directory structure to MCP clients.
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasmodels"
	"github.com/erraggy/oasmodels/cmd/oasmodels/commands"
	"github.com/erraggy/oasmodels/internal/mcpserver"
)

// commandNames lists every top-level command, for typo suggestions.
var commandNames = []string{"generate", "inspect", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasmodels v%s\n", oasmodels.Version())
		if len(os.Args) > 2 && os.Args[2] == "--verbose" {
			fmt.Println(oasmodels.BuildInfo())
		}
	case "help", "-h", "--help":
		printUsage()
	case "generate":
		exitOnError(commands.HandleGenerate(os.Args[2:]))
	case "inspect":
		exitOnError(commands.HandleInspect(os.Args[2:]))
	case "mcp":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err := mcpserver.Run(ctx)
		stop()
		exitOnError(err)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", s)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`oasmodels - model generator for OpenAPI and JSON Schema documents

Usage:
  oasmodels <command> [options]

Commands:
  generate    Generate model declarations from a document
  inspect     List the declarations a document would generate
  mcp         Start the MCP server over stdio
  version     Show version information
  help        Show this help message

Run 'oasmodels <command> --help' for more information on a command.
`)
}

// suggestCommand returns the command closest to input within an edit
// distance of two, or "" when none is close enough.
func suggestCommand(input string) string {
	best := ""
	bestDist := 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

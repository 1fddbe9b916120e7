package main

import (
	"fmt"
	"os"

	"github.com/erraggy/docmod"
	"github.com/erraggy/docmod/cmd/docmod/commands"
)

// commandNames lists every top-level command, for typo suggestions.
var commandNames = []string{"modify", "compare", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	var handler func([]string) error

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("docmod v%s\n", docmod.Version())
		fmt.Printf("commit: %s\n", docmod.Commit())
		fmt.Printf("built: %s\n", docmod.BuildTime())
		fmt.Printf("go: %s\n", docmod.GoVersion())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "modify":
		handler = commands.HandleModify
	case "compare":
		handler = commands.HandleCompare
	case "mcp":
		handler = commands.HandleMCP
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", s)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err := handler(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the command closest to input within an edit
// distance of 2, or "" when nothing is that close.
func suggestCommand(input string) string {
	best, bestDist := "", 3
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
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `docmod - apply MongoDB-style modifier documents

Usage:
  docmod <command> [flags] [arguments]

Commands:
  modify     Apply a modifier document to a JSON or YAML document
  compare    Compare two values under the document ordering
  mcp        Run the MCP server over stdio
  version    Show version information
  help       Show this help message

Run 'docmod <command> --help' for more information on a command.

Examples:
  docmod modify -d user.json '{"$set": {"name": "Ada"}, "$inc": {"logins": 1}}'
  docmod modify -d order.yaml -i 1 --diff update.json
  docmod compare 10 '"10"'
`)
}

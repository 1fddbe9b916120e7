// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes docmod capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/docmod"
	"github.com/erraggy/docmod/docerrors"
)

const serverInstructions = `docmod MCP server: applies MongoDB-style modifier documents to JSON or YAML documents and compares values under the document ordering.

Configuration: defaults are configurable via DOCMOD_* environment variables set in your MCP client config.

Key settings:
- DOCMOD_FORMAT (default: json): output format of modified documents (json or yaml)
- DOCMOD_ALLOW_MIXED (default: false): tolerate modifiers mixing $-operators and plain fields
- DOCMOD_ID_KEY (default: _id): identity field kept by in_place modification
- DOCMOD_CHANGE_LIMIT (default: 100): default page size of the change list
- DOCMOD_CACHE_ENABLED (default: true): cache parsed file, URL and inline inputs
- DOCMOD_MAX_INLINE_SIZE (default: 10MiB): maximum inline or fetched document size
- DOCMOD_MAX_ARRAY_INDEX (default: 100000): largest index a path may pad an array out to
- DOCMOD_ALLOW_PRIVATE_IPS (default: false): allow url inputs on private networks`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		docCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "docmod", Version: docmod.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "modify",
		Description: "Apply a modifier document to a document. A modifier made only of plain fields replaces the document; a modifier made only of update operators ($set, $unset, $inc, $min, $max, $currentDate, $push, $pushAll, $addToSet, $pop, $pull, $pullAll, $rename) applies them in order. Paths are dotted (a.b.0.c); a '$' segment takes the next value of array_indices. Returns the modified document and the list of applied operator/path pairs. Errors report their kind (InvalidPath, OperatorTypeMismatch, ...) and leave nothing modified.",
	}, handleModify)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "compare",
		Description: "Compare two values (JSON or YAML literals) under the document ordering: null < numbers < strings < objects < arrays < binary < object ids < booleans < dates < regular expressions. Returns order (-1, 0, 1), structural equality, and order-sensitive equality.",
	}, handleCompare)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ChangeLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ChangeLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if kind := docerrors.KindOf(err); kind != docerrors.KindUnknown {
		msg = fmt.Sprintf("%s: %s", kind, msg)
	}
	return pathPattern.ReplaceAllString(msg, "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

package mcpserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/docmod/modifier"
	"github.com/erraggy/docmod/value"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

type modifyInput struct {
	Document     docInput `json:"document"                jsonschema:"The document to modify"`
	Modifier     docInput `json:"modifier"                jsonschema:"The modifier document"`
	ArrayIndices []int    `json:"array_indices,omitempty" jsonschema:"Indices that positional '$' path segments resolve to, in order"`
	InPlace      bool     `json:"in_place,omitempty"      jsonschema:"Keep the document's identity field when a plain modifier replaces it"`
	AllowMixed   *bool    `json:"allow_mixed,omitempty"   jsonschema:"Tolerate modifiers that mix operators and plain fields (default from DOCMOD_ALLOW_MIXED)"`
	IDKey        string   `json:"id_key,omitempty"        jsonschema:"Identity field for in_place (default from DOCMOD_ID_KEY)"`
	Format       string   `json:"format,omitempty"        jsonschema:"Output format: json or yaml (default from DOCMOD_FORMAT)"`
	Offset       int      `json:"offset,omitempty"        jsonschema:"Skip this many change records"`
	Limit        int      `json:"limit,omitempty"         jsonschema:"Maximum number of change records to return"`
}

type modifyOutput struct {
	Mode        string                  `json:"mode"`
	Format      string                  `json:"format"`
	Document    string                  `json:"document"`
	ChangeCount int                     `json:"change_count"`
	Changes     []modifier.ChangeRecord `json:"changes,omitempty"`
}

func handleModify(ctx context.Context, _ *mcp.CallToolRequest, input modifyInput) (*mcp.CallToolResult, modifyOutput, error) {
	format := input.Format
	if format == "" {
		format = cfg.Format
	}
	if format != formatJSON && format != formatYAML {
		return errResult(fmt.Errorf("invalid format %q; valid values: json, yaml", format)), modifyOutput{}, nil
	}

	doc, err := input.Document.resolve(ctx, "document")
	if err != nil {
		return errResult(err), modifyOutput{}, nil
	}
	spec, err := input.Modifier.resolve(ctx, "modifier")
	if err != nil {
		return errResult(err), modifyOutput{}, nil
	}

	allowMixed := cfg.AllowMixedOperators
	if input.AllowMixed != nil {
		allowMixed = *input.AllowMixed
	}
	idKey := input.IDKey
	if idKey == "" {
		idKey = cfg.IDKey
	}

	result, err := modifier.ModifyWithOptions(
		modifier.WithDocument(doc),
		modifier.WithSpec(spec),
		modifier.WithArrayIndices(input.ArrayIndices...),
		modifier.WithInPlace(input.InPlace),
		modifier.WithAllowMixedOperators(allowMixed),
		modifier.WithIDKey(idKey),
		modifier.WithMaxArrayIndex(cfg.MaxArrayIndex),
		modifier.WithLogger(modifier.NewSlogAdapter(slog.Default())),
	)
	if err != nil {
		return errResult(err), modifyOutput{}, nil
	}

	data, err := encodeDocument(result.Document, format)
	if err != nil {
		return errResult(err), modifyOutput{}, nil
	}

	return nil, modifyOutput{
		Mode:        string(result.Mode),
		Format:      format,
		Document:    string(data),
		ChangeCount: len(result.Changes),
		Changes:     paginate(result.Changes, input.Offset, input.Limit),
	}, nil
}

func encodeDocument(doc *value.Document, format string) ([]byte, error) {
	if format == formatYAML {
		return value.MarshalYAML(doc)
	}
	return value.MarshalJSONIndent(doc, "", "  ")
}

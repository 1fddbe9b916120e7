package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/docmod/value"
)

type compareInput struct {
	Left  string `json:"left"  jsonschema:"First value as a JSON or YAML literal"`
	Right string `json:"right" jsonschema:"Second value as a JSON or YAML literal"`
}

type compareOutput struct {
	Order        int    `json:"order"`
	Equal        bool   `json:"equal"`
	EqualOrdered bool   `json:"equal_ordered"`
	LeftType     string `json:"left_type"`
	RightType    string `json:"right_type"`
}

func handleCompare(_ context.Context, _ *mcp.CallToolRequest, input compareInput) (*mcp.CallToolResult, compareOutput, error) {
	if int64(len(input.Left)+len(input.Right)) > cfg.MaxInlineSize {
		return errResult(fmt.Errorf("values exceed maximum %d bytes", cfg.MaxInlineSize)), compareOutput{}, nil
	}
	left, err := value.Parse([]byte(input.Left))
	if err != nil {
		return errResult(fmt.Errorf("left: %w", err)), compareOutput{}, nil
	}
	right, err := value.Parse([]byte(input.Right))
	if err != nil {
		return errResult(fmt.Errorf("right: %w", err)), compareOutput{}, nil
	}

	order, err := value.Compare(left, right)
	if err != nil {
		return errResult(err), compareOutput{}, nil
	}
	return nil, compareOutput{
		Order:        sign(order),
		Equal:        value.Equal(left, right),
		EqualOrdered: value.EqualOrdered(left, right),
		LeftType:     value.Classify(left).String(),
		RightType:    value.Classify(right).String(),
	}, nil
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"nba-stats-mcp/internal/dispatch"
	"nba-stats-mcp/internal/domain"
)

// Register adds every tool in the dispatcher's catalog to the MCP
// server. Arguments stay an untyped map so misspelled filters reach the
// schema layer and come back as structured unknown_filter errors
// instead of being dropped during decoding.
func Register(server *mcp.Server, d *dispatch.Dispatcher) {
	for _, sch := range d.Registry().Tools() {
		tool := &mcp.Tool{
			Name:        sch.Tool,
			Description: sch.Description,
			InputSchema: sch.JSONSchema(),
		}
		mcp.AddTool(server, tool, handler(d, sch.Tool))
	}
}

// handler adapts one tool's dispatch path to the MCP calling
// convention.
func handler(d *dispatch.Dispatcher, tool string) func(context.Context, *mcp.CallToolRequest, map[string]any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
		result, err := d.Dispatch(ctx, tool, args)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return textResult(result)
	}
}

// textResult serializes a successful result as a single JSON text
// block. Map keys marshal in sorted order, so identical results render
// identically.
func textResult(result *domain.Result) (*mcp.CallToolResult, any, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err)), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(payload)}},
	}, nil, nil
}

// errorResult renders an error as a tool-level failure carrying the
// structured kind and details, so the calling agent can branch on the
// kind instead of parsing prose.
func errorResult(err error) *mcp.CallToolResult {
	structured, ok := domain.AsStructured(err)
	if !ok {
		structured = domain.NewError(domain.ErrUpstreamUnavailable, err.Error(), nil)
	}
	payload, marshalErr := json.Marshal(structured)
	if marshalErr != nil {
		payload = []byte(fmt.Sprintf(`{"kind":%q,"message":%q}`, structured.Kind, structured.Message))
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: string(payload)}},
	}
}

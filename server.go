package askdb

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/askdb/askdb/schema"
	"github.com/askdb/askdb/seed"
)

const Version = "1.0.0"

// NewServer exposes the client as an MCP tool server with two tools: "ask"
// answers a question, "seed_data" loads the sample dataset into every
// configured backend.
func NewServer(client *Client) *server.MCPServer {
	s := server.NewMCPServer("askdb", Version, server.WithToolCapabilities(false))

	askTool := mcp.NewTool("ask",
		mcp.WithDescription("Answer a natural-language question against the configured company, research, support, and collaboration data sources."),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("The question to answer."),
		),
		mcp.WithString("clarification",
			mcp.Description("When a previous ask for the same question returned a clarification request, pass the user's clarifying detail here."),
		),
	)
	s.AddTool(askTool, client.handleAsk)

	seedTool := mcp.NewTool("seed_data",
		mcp.WithDescription("Load a small sample dataset into every configured backend. Replaces existing sample data."),
	)
	s.AddTool(seedTool, client.handleSeed)

	return s
}

// ServeStdio runs the MCP server over stdio until the stream closes.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func (c *Client) handleAsk(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := req.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var st schema.RunState
	if clarification := req.GetString("clarification", ""); clarification != "" {
		prior := schema.RunState{OriginalUserQuery: question, QueryBeforeClarification: question}
		st = c.AskClarified(ctx, prior, clarification)
	} else {
		st = c.Ask(ctx, question)
	}

	payload, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode run state failed, err: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

func (c *Client) handleSeed(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := seed.All(ctx, c.config.Backends); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("sample data loaded into all configured backends"), nil
}

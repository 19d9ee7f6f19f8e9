// Copyright (c) Microsoft. All rights reserved.

// Package mcptools connects to Model Context Protocol servers and exposes
// their tools as [agentkit.Tool] values, so remote MCP tools plug into an
// agent exactly like local functions:
//
//	conn, err := mcptools.Connect(ctx, mcptools.ServerSpec{
//	    Name:    "weather",
//	    Command: "go",
//	    Args:    []string{"run", "./samples/mcpserver/weather"},
//	})
//	agent := agentkit.NewAgent(client, agentkit.WithTools(conn.Tools()...))
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	ak "github.com/microsoft/ai-samples/go/agentkit"
)

// clientInfo identifies this client to MCP servers during initialization.
var clientInfo = &mcp.Implementation{Name: "ai-samples", Version: "1.0.0"}

// ServerSpec describes how to reach an MCP server. Exactly one of Command
// (stdio subprocess) or Endpoint (streamable HTTP URL) must be set.
type ServerSpec struct {
	// Name labels the connection in logs and errors.
	Name string

	// Command starts the server as a subprocess speaking stdio.
	Command string
	Args    []string

	// Endpoint is the URL of a streamable HTTP server.
	Endpoint string
}

// Connection is an open session to one MCP server with its tools wrapped
// for agent use. Close it when done; closing a stdio connection terminates
// the subprocess.
type Connection struct {
	name    string
	session *mcp.ClientSession
	tools   []ak.Tool
}

// Connect opens a session to the server described by spec and lists its tools.
func Connect(ctx context.Context, spec ServerSpec) (*Connection, error) {
	transport, err := spec.transport(ctx)
	if err != nil {
		return nil, err
	}
	return ConnectTransport(ctx, spec.Name, transport)
}

// ConnectTransport opens a session over an existing transport. Tests use this
// with in-memory transports.
func ConnectTransport(ctx context.Context, name string, transport mcp.Transport) (*Connection, error) {
	client := mcp.NewClient(clientInfo, nil)
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("connect mcp server %q: %w", name, err)
	}

	conn := &Connection{name: name, session: session}
	if err := conn.loadTools(ctx); err != nil {
		session.Close()
		return nil, err
	}
	return conn, nil
}

func (s ServerSpec) transport(ctx context.Context) (mcp.Transport, error) {
	switch {
	case s.Command != "" && s.Endpoint != "":
		return nil, fmt.Errorf("server %q: set either Command or Endpoint, not both", s.Name)
	case s.Command != "":
		return &mcp.CommandTransport{Command: exec.CommandContext(ctx, s.Command, s.Args...)}, nil
	case s.Endpoint != "":
		return &mcp.StreamableClientTransport{Endpoint: s.Endpoint}, nil
	default:
		return nil, fmt.Errorf("server %q: no Command or Endpoint configured", s.Name)
	}
}

func (c *Connection) loadTools(ctx context.Context) error {
	list, err := c.session.ListTools(ctx, nil)
	if err != nil {
		return fmt.Errorf("list tools on %q: %w", c.name, err)
	}

	for _, t := range list.Tools {
		schema, err := json.Marshal(t.InputSchema)
		if err != nil {
			return fmt.Errorf("marshal schema for tool %q: %w", t.Name, err)
		}
		c.tools = append(c.tools, &remoteTool{
			session:     c.session,
			name:        t.Name,
			description: t.Description,
			schema:      schema,
		})
	}
	return nil
}

// Name returns the connection's label.
func (c *Connection) Name() string { return c.name }

// Tools returns the server's tools wrapped as [agentkit.Tool] values.
func (c *Connection) Tools() []ak.Tool {
	return append([]ak.Tool{}, c.tools...)
}

// Close terminates the session.
func (c *Connection) Close() error {
	return c.session.Close()
}

// remoteTool proxies an [agentkit.Tool] invocation to a remote MCP tool call.
type remoteTool struct {
	session     *mcp.ClientSession
	name        string
	description string
	schema      json.RawMessage
}

var _ ak.Tool = (*remoteTool)(nil)

func (t *remoteTool) Name() string                { return t.name }
func (t *remoteTool) Description() string         { return t.description }
func (t *remoteTool) Parameters() json.RawMessage { return t.schema }

// Invoke calls the remote tool and concatenates the text content of the result.
func (t *remoteTool) Invoke(ctx context.Context, args json.RawMessage) (any, error) {
	var arguments map[string]any
	if len(args) > 0 {
		if err := json.Unmarshal(args, &arguments); err != nil {
			return nil, &ak.ToolError{
				ToolName: t.name,
				Message:  "invalid arguments: " + err.Error(),
				Err:      ak.ErrToolExecution,
			}
		}
	}

	result, err := t.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      t.name,
		Arguments: arguments,
	})
	if err != nil {
		return nil, &ak.ToolError{
			ToolName: t.name,
			Message:  "call failed: " + err.Error(),
			Err:      ak.ErrToolExecution,
		}
	}

	text := collectText(result)
	if result.IsError {
		return nil, &ak.ToolError{
			ToolName: t.name,
			Message:  text,
			Err:      ak.ErrToolExecution,
		}
	}
	return text, nil
}

// collectText joins all text content blocks of a tool result.
func collectText(result *mcp.CallToolResult) string {
	var parts []string
	for _, content := range result.Content {
		if tc, ok := content.(*mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// Copyright (c) Microsoft. All rights reserved.

// Command math is an MCP server exposing arithmetic tools over streamable
// HTTP. Clients connect to http://localhost:8000/mcp by default:
//
//	go run ./samples/mcpserver/math
//	MCP_MATH_ADDR=:9000 go run ./samples/mcpserver/math
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultAddr = ":8000"

type binaryInput struct {
	A float64 `json:"a" jsonschema:"first operand"`
	B float64 `json:"b" jsonschema:"second operand"`
}

type binaryOutput struct {
	Result float64 `json:"result"`
}

func binaryTool(fn func(a, b float64) (float64, error)) mcp.ToolHandlerFor[binaryInput, binaryOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input binaryInput) (*mcp.CallToolResult, binaryOutput, error) {
		result, err := fn(input.A, input.B)
		if err != nil {
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
			}, binaryOutput{}, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("%g", result)}},
		}, binaryOutput{Result: result}, nil
	}
}

func main() {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "math",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add",
		Description: "Add two numbers.",
	}, binaryTool(func(a, b float64) (float64, error) { return a + b, nil }))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "multiply",
		Description: "Multiply two numbers.",
	}, binaryTool(func(a, b float64) (float64, error) { return a * b, nil }))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "divide",
		Description: "Divide the first number by the second.",
	}, binaryTool(func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return a / b, nil
	}))

	addr := os.Getenv("MCP_MATH_ADDR")
	if addr == "" {
		addr = defaultAddr
	}

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp", handler)

	log.Printf("math MCP server listening on %s/mcp", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server: %v", err)
	}
}

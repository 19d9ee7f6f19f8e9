// Copyright (c) Microsoft. All rights reserved.

// Command weather is an MCP server exposing the mock weather tool over
// stdio. Clients launch it as a subprocess:
//
//	go run ./samples/mcpserver/weather
package main

import (
	"context"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/microsoft/ai-samples/go/samples/internal/weather"
)

type weatherInput struct {
	Location string `json:"location" jsonschema:"City name or location"`
}

type weatherOutput struct {
	Report weather.Report `json:"report"`
}

func main() {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "weather",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_weather",
		Description: "Get the current weather for a location.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input weatherInput) (*mcp.CallToolResult, weatherOutput, error) {
		report := weather.Lookup(input.Location)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: report.Summary()}},
		}, weatherOutput{Report: report}, nil
	})

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatalf("server: %v", err)
	}
}

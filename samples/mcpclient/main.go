// Copyright (c) Microsoft. All rights reserved.

// Command mcpclient demonstrates an agent using tools from two MCP servers:
// the weather server launched as a stdio subprocess and the math server
// reached over streamable HTTP.
//
// Start the math server first:
//
//	go run ./samples/mcpserver/math &
//
// Then run the client:
//
//	export AZURE_OPENAI_ENDPOINT=https://<resource>.openai.azure.com/
//	export AZURE_OPENAI_DEPLOYMENT_NAME=gpt-4o
//	export AZURE_OPENAI_API_KEY=<your-key>   # optional, Entra ID otherwise
//	go run ./samples/mcpclient
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	ak "github.com/microsoft/ai-samples/go/agentkit"
	"github.com/microsoft/ai-samples/go/azureenv"
	"github.com/microsoft/ai-samples/go/mcptools"
)

func main() {
	cfg, err := azureenv.Load()
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}
	client, err := cfg.ChatClient()
	if err != nil {
		log.Fatalf("Create client: %v", err)
	}

	ctx := context.Background()

	weatherConn, err := mcptools.Connect(ctx, mcptools.ServerSpec{
		Name:    "weather",
		Command: "go",
		Args:    []string{"run", "./samples/mcpserver/weather"},
	})
	if err != nil {
		log.Fatalf("Connect weather server: %v", err)
	}
	defer weatherConn.Close()

	mathEndpoint := os.Getenv("MCP_MATH_ENDPOINT")
	if mathEndpoint == "" {
		mathEndpoint = "http://localhost:8000/mcp"
	}
	mathConn, err := mcptools.Connect(ctx, mcptools.ServerSpec{
		Name:     "math",
		Endpoint: mathEndpoint,
	})
	if err != nil {
		log.Fatalf("Connect math server: %v", err)
	}
	defer mathConn.Close()

	tools := append(weatherConn.Tools(), mathConn.Tools()...)
	fmt.Printf("Connected to %d MCP tools:\n", len(tools))
	for _, t := range tools {
		fmt.Printf("  - %s: %s\n", t.Name(), t.Description())
	}
	fmt.Println()

	agent := ak.NewAgent(client,
		ak.WithName("mcp-assistant"),
		ak.WithInstructions("Use the available tools to answer. Show your working."),
		ak.WithTools(tools...),
	)

	question := "What's the weather in Amsterdam? Also, what is 23.5 times 17?"
	fmt.Printf("Question: %s\n\n", question)

	resp, err := agent.Run(ctx, []ak.Message{ak.NewUserMessage(question)})
	if err != nil {
		log.Fatalf("Run: %v", err)
	}
	fmt.Println(resp.Text())
}

// Copyright (c) Microsoft. All rights reserved.

// Command openapiclient demonstrates driving a REST API through an agent:
// an OpenAPI description is fetched from a remote URL and every operation it
// describes becomes a tool the model can invoke automatically.
//
// Usage:
//
//	export AZURE_OPENAI_ENDPOINT=https://<resource>.openai.azure.com/
//	export AZURE_OPENAI_DEPLOYMENT_NAME=gpt-4o
//	export AZURE_OPENAI_API_KEY=<your-key>   # optional, Entra ID otherwise
//	export OPENAPI_SPEC_URL=<url>            # optional, calculator by default
//	go run ./samples/openapiclient
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	ak "github.com/microsoft/ai-samples/go/agentkit"
	"github.com/microsoft/ai-samples/go/azureenv"
	"github.com/microsoft/ai-samples/go/openapitools"
)

const defaultSpecURL = "https://sofio-calculator-plugin.azurewebsites.net/openapi.json"

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

	specURL := os.Getenv("OPENAPI_SPEC_URL")
	if specURL == "" {
		specURL = defaultSpecURL
	}

	plugin, err := openapitools.Load(ctx, specURL)
	if err != nil {
		log.Fatalf("Load OpenAPI description: %v", err)
	}

	fmt.Printf("Loaded %q with %d operations:\n", plugin.Title(), len(plugin.Tools()))
	for _, t := range plugin.Tools() {
		fmt.Printf("  - %s: %s\n", t.Name(), t.Description())
	}
	fmt.Println()

	agent := ak.NewAgent(client,
		ak.WithName("api-assistant"),
		ak.WithInstructions("You are a helpful assistant that can perform arithmetic."),
		ak.WithTools(plugin.Tools()...),
		ak.WithFunctionMiddleware(ak.FunctionLoggingMiddleware(slog.New(slog.NewTextHandler(os.Stderr, nil)))),
	)

	question := "What is 2+3? Take the result and multiply it by 4."
	fmt.Printf("Question: %s\n\n", question)

	resp, err := agent.Run(ctx, []ak.Message{ak.NewUserMessage(question)})
	if err != nil {
		log.Fatalf("Run: %v", err)
	}
	fmt.Println(resp.Text())
}

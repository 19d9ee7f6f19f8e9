// Copyright (c) Microsoft. All rights reserved.

// Command autotools demonstrates automatic function calling: the agent runs
// the tool loop itself, invoking the weather tool until the model produces a
// final answer.
//
// Usage:
//
//	export AZURE_OPENAI_ENDPOINT=https://<resource>.openai.azure.com/
//	export AZURE_OPENAI_DEPLOYMENT_NAME=gpt-4o
//	export AZURE_OPENAI_API_KEY=<your-key>   # optional, Entra ID otherwise
//	go run ./samples/autotools
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	ak "github.com/microsoft/ai-samples/go/agentkit"
	"github.com/microsoft/ai-samples/go/azureenv"
	"github.com/microsoft/ai-samples/go/samples/internal/weather"
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

	agent := ak.NewAgent(client,
		ak.WithName("weather-assistant"),
		ak.WithInstructions("You are a helpful assistant. Use the get_weather tool to answer weather questions. Keep responses concise."),
		ak.WithTools(weather.Tool()),
		ak.WithFunctionMiddleware(ak.FunctionLoggingMiddleware(slog.New(slog.NewTextHandler(os.Stderr, nil)))),
	)

	resp, err := agent.Run(context.Background(), []ak.Message{
		ak.NewUserMessage("Compare the weather in Amsterdam and Seattle. Which is warmer?"),
	})
	if err != nil {
		log.Fatalf("Run: %v", err)
	}

	fmt.Println(resp.Text())
}

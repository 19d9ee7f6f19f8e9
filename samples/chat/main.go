// Copyright (c) Microsoft. All rights reserved.

// Command chat demonstrates a multi-turn conversational agent with tool use
// and session memory.
//
// Usage:
//
//	export AZURE_OPENAI_ENDPOINT=https://<resource>.openai.azure.com/
//	export AZURE_OPENAI_DEPLOYMENT_NAME=gpt-4o
//	export AZURE_OPENAI_API_KEY=<your-key>   # optional, Entra ID otherwise
//	go run ./samples/chat
//
// Type 'quit' to exit; prefix a message with 'stream ' for streaming output.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

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

	if os.Getenv("DEBUG") != "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	agent := ak.NewAgent(client,
		ak.WithName("assistant"),
		ak.WithInstructions("You are a helpful assistant. When asked about the weather, use the get_weather tool. Keep responses concise."),
		ak.WithTools(weather.Tool()),
		ak.WithAgentMiddleware(ak.LoggingMiddleware(slog.Default())),
	)

	session := agent.NewSession()

	fmt.Println("Chat with the assistant (type 'quit' to exit, 'stream' prefix for streaming)")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" {
			break
		}

		ctx := context.Background()

		if rest, ok := strings.CutPrefix(input, "stream "); ok {
			stream, err := agent.RunStream(ctx,
				[]ak.Message{ak.NewUserMessage(rest)},
				ak.WithSession(session),
			)
			if err != nil {
				log.Printf("Error: %v", err)
				continue
			}

			fmt.Print("Assistant: ")
			for {
				update, ok, err := stream.Next(ctx)
				if err != nil {
					log.Printf("\nStream error: %v", err)
					break
				}
				if !ok {
					break
				}
				fmt.Print(update.Text())
			}
			fmt.Println()
			stream.Close()
		} else {
			resp, err := agent.Run(ctx,
				[]ak.Message{ak.NewUserMessage(input)},
				ak.WithSession(session),
			)
			if err != nil {
				log.Printf("Error: %v", err)
				continue
			}

			fmt.Printf("Assistant: %s\n", resp.Text())
			if resp.Usage.TotalTokens > 0 {
				fmt.Printf("  [tokens: %d in, %d out]\n",
					resp.Usage.InputTokens, resp.Usage.OutputTokens)
			}
		}
		fmt.Println()
	}
}

// Copyright (c) Microsoft. All rights reserved.

// Command modelinvoke demonstrates the most basic model interaction:
// send a prompt to an Azure OpenAI deployment and stream the reply.
//
// Usage:
//
//	export AZURE_OPENAI_ENDPOINT=https://<resource>.openai.azure.com/
//	export AZURE_OPENAI_DEPLOYMENT_NAME=gpt-4o
//	export AZURE_OPENAI_API_KEY=<your-key>   # optional, Entra ID otherwise
//	go run ./samples/modelinvoke
package main

import (
	"context"
	"fmt"
	"log"

	ak "github.com/microsoft/ai-samples/go/agentkit"
	"github.com/microsoft/ai-samples/go/azureenv"
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
	prompt := "Tell me three interesting facts about Kangaroos"
	fmt.Printf("Prompt: %s\n\n", prompt)

	stream, err := client.StreamResponse(ctx,
		[]ak.Message{ak.NewUserMessage(prompt)},
		nil,
	)
	if err != nil {
		log.Fatalf("Stream: %v", err)
	}
	defer stream.Close()

	for {
		update, ok, err := stream.Next(ctx)
		if err != nil {
			log.Fatalf("Stream error: %v", err)
		}
		if !ok {
			break
		}
		fmt.Print(update.Text())
	}
	fmt.Println()
}

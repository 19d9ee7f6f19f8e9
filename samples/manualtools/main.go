// Copyright (c) Microsoft. All rights reserved.

// Command manualtools demonstrates function calling with a hand-driven loop:
// the model's tool calls are extracted, executed, and fed back explicitly so
// each step of the protocol is visible.
//
// Usage:
//
//	export AZURE_OPENAI_ENDPOINT=https://<resource>.openai.azure.com/
//	export AZURE_OPENAI_DEPLOYMENT_NAME=gpt-4o
//	export AZURE_OPENAI_API_KEY=<your-key>   # optional, Entra ID otherwise
//	go run ./samples/manualtools
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

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

	ctx := context.Background()
	opts := &ak.ChatOptions{Tools: []ak.Tool{weather.Tool()}}

	messages := []ak.Message{
		ak.NewUserMessage("What's the weather like in Amsterdam right now?"),
	}

	for turn := 0; turn < 5; turn++ {
		resp, err := client.Response(ctx, messages, opts)
		if err != nil {
			log.Fatalf("Response: %v", err)
		}
		messages = append(messages, resp.Messages...)

		calls := ak.ExtractFunctionCalls(resp.Messages)
		if len(calls) == 0 {
			fmt.Println(resp.Text())
			return
		}

		for _, call := range calls {
			fmt.Printf("Model requested %s(%s)\n", call.Name, call.Arguments)

			result, err := weather.Tool().Invoke(ctx, json.RawMessage(call.Arguments))
			if err != nil {
				log.Fatalf("Invoke %s: %v", call.Name, err)
			}
			fmt.Printf("Tool returned: %v\n\n", result)

			messages = append(messages, ak.NewToolMessage(call.CallID, result))
		}
	}

	log.Fatal("model kept requesting tools; giving up")
}

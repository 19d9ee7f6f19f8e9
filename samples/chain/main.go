// Copyright (c) Microsoft. All rights reserved.

// Command chain demonstrates prompt chaining: a template feeds a model,
// the output feeds the next chain, and transforms reshape text along the way.
//
// Usage:
//
//	export AZURE_OPENAI_ENDPOINT=https://<resource>.openai.azure.com/
//	export AZURE_OPENAI_DEPLOYMENT_NAME=gpt-4o
//	export AZURE_OPENAI_API_KEY=<your-key>   # optional, Entra ID otherwise
//	go run ./samples/chain
package main

import (
	"context"
	"fmt"
	"log"
	"strings"

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

	// Chain 1: template -> model -> uppercase transform.
	jokeChain := ak.NewChain(
		ak.NewPromptTemplate("Tell me a short joke about {topic}"),
		client,
		ak.WithChainTransform(strings.ToUpper),
	)

	joke, err := jokeChain.Run(ctx, ak.Vars{"topic": "bears"})
	if err != nil {
		log.Fatalf("Joke chain: %v", err)
	}
	fmt.Println("Joke (uppercased):")
	fmt.Println(joke)
	fmt.Println()

	// Chain 2: feed the first chain's output into a follow-up prompt and
	// stream the result.
	storyChain := ak.NewChain(
		ak.NewPromptTemplate("Write a two-sentence story inspired by this joke: {joke}"),
		client,
	)

	stream, err := storyChain.Stream(ctx, ak.Vars{"joke": joke})
	if err != nil {
		log.Fatalf("Story chain: %v", err)
	}
	defer stream.Close()

	fmt.Println("Story:")
	for {
		chunk, ok, err := stream.Next(ctx)
		if err != nil {
			log.Fatalf("Stream error: %v", err)
		}
		if !ok {
			break
		}
		fmt.Print(chunk)
	}
	fmt.Println()
}

// Copyright (c) Microsoft. All rights reserved.

// Command supervisor demonstrates supervisor orchestration: a supervising
// model dispatches between a recipe generator and a gluten-free reviewer,
// who share memory, until the request is fully handled.
//
// Usage:
//
//	export AZURE_OPENAI_ENDPOINT=https://<resource>.openai.azure.com/
//	export AZURE_OPENAI_DEPLOYMENT_NAME=gpt-4o
//	export AZURE_OPENAI_API_KEY=<your-key>   # optional, Entra ID otherwise
//	go run ./samples/supervisor
package main

import (
	"context"
	"fmt"
	"log"

	ak "github.com/microsoft/ai-samples/go/agentkit"
	"github.com/microsoft/ai-samples/go/azureenv"
	"github.com/microsoft/ai-samples/go/orchestrate"
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

	generator := ak.NewAgent(client,
		ak.WithName("recipe_generator"),
		ak.WithDescription("Creates recipes from a dish idea"),
		ak.WithInstructions("You create clear, complete recipes with ingredients and steps."),
	)
	reviewer := ak.NewAgent(client,
		ak.WithName("gluten_free_reviewer"),
		ak.WithDescription("Reviews recipes for gluten and suggests substitutions"),
		ak.WithInstructions("You review the most recent recipe in the conversation for gluten. List problem ingredients and gluten-free substitutions, or confirm the recipe is already gluten free."),
	)

	s, err := orchestrate.NewSupervisor(client, []*ak.Agent{generator, reviewer})
	if err != nil {
		log.Fatalf("NewSupervisor: %v", err)
	}

	task := "I want a chocolate dessert recipe that my celiac friend can eat."
	fmt.Printf("Task: %s\n\n", task)

	result, err := s.Run(context.Background(), task)
	if err != nil {
		log.Fatalf("Run: %v", err)
	}

	for _, step := range result.Transcript {
		fmt.Printf("--- %s ---\n%s\n\n", step.Agent, step.Response.Text())
	}
}

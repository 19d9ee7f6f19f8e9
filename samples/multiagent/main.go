// Copyright (c) Microsoft. All rights reserved.

// Command multiagent demonstrates handoff orchestration: four travel
// specialists pass a customer request between them using transfer tools,
// the way a call center routes a caller to the right desk.
//
// Usage:
//
//	export AZURE_OPENAI_ENDPOINT=https://<resource>.openai.azure.com/
//	export AZURE_OPENAI_DEPLOYMENT_NAME=gpt-4o
//	export AZURE_OPENAI_API_KEY=<your-key>   # optional, Entra ID otherwise
//	go run ./samples/multiagent
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

	planner := ak.NewAgent(client,
		ak.WithName("travel_planner"),
		ak.WithDescription("Creates day-by-day travel itineraries"),
		ak.WithInstructions("You are a travel planner. Sketch the itinerary, then hand off to the specialist whose input is needed next. Hand off at most once per turn."),
	)
	budget := ak.NewAgent(client,
		ak.WithName("budget_analyst"),
		ak.WithDescription("Estimates costs and keeps trips within budget"),
		ak.WithInstructions("You analyze travel budgets. Give cost estimates per itinerary item and flag overruns. Hand off when budgeting is done."),
	)
	activities := ak.NewAgent(client,
		ak.WithName("activity_specialist"),
		ak.WithDescription("Recommends local activities and attractions"),
		ak.WithInstructions("You recommend activities matching the traveler's interests and budget. Hand off when your recommendations are complete."),
	)
	booking := ak.NewAgent(client,
		ak.WithName("booking_coordinator"),
		ak.WithDescription("Summarizes what needs to be booked"),
		ak.WithInstructions("You produce the final booking checklist: flights, lodging, and reservations. You are the last stop; do not hand off."),
	)

	handoff, err := orchestrate.NewHandoff("travel_planner",
		[]*ak.Agent{planner, budget, activities, booking},
	)
	if err != nil {
		log.Fatalf("NewHandoff: %v", err)
	}

	request := "Plan a 5-day trip to Lisbon in October for two people with a total budget of $2500. We love food markets and day hikes."
	fmt.Printf("Request: %s\n\n", request)

	result, err := handoff.Run(context.Background(), []ak.Message{
		ak.NewUserMessage(request),
	})
	if err != nil {
		log.Fatalf("Run: %v", err)
	}

	for _, step := range result.Transcript {
		fmt.Printf("--- %s ---\n%s\n\n", step.Agent, step.Response.Text())
	}
	fmt.Printf("Final answer:\n%s\n", result.FinalText)
}

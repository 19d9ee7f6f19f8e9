// Copyright (c) Microsoft. All rights reserved.

// Package agentkit provides the shared building blocks for the sample
// programs in this repository: chat messages and content, tool calling,
// prompt templates and chains, middleware, sessions, and streaming.
//
// # Quick Start
//
// Create a ChatClient (e.g., from the azure package) and build an Agent:
//
//	client := azure.NewChatClient(endpoint, deployment, azure.WithAPIKey(key))
//
//	agent := agentkit.NewAgent(client,
//	    agentkit.WithName("assistant"),
//	    agentkit.WithInstructions("You are helpful."),
//	    agentkit.WithTools(weatherTool),
//	)
//
//	resp, err := agent.Run(ctx, []agentkit.Message{
//	    agentkit.NewUserMessage("Hello!"),
//	})
//
// # Chains
//
// Prompt chaining composes a template, a model call, and optional
// transformations into one runnable pipeline:
//
//	joke := agentkit.NewPromptTemplate("Tell me a joke about {topic}")
//	chain := agentkit.NewChain(joke, client)
//	out, err := chain.Run(ctx, agentkit.Vars{"topic": "bears"})
//
// # Tools
//
// Use [NewTypedTool] for type-safe tools with automatic JSON Schema
// generation:
//
//	tool := agentkit.NewTypedTool("get_weather", "Get current weather",
//	    func(ctx context.Context, args struct {
//	        Location string `json:"location" jsonschema:"description=City name,required"`
//	    }) (any, error) {
//	        return fetchWeather(args.Location)
//	    },
//	)
package agentkit

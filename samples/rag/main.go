// Copyright (c) Microsoft. All rights reserved.

// Command rag demonstrates retrieval-augmented generation: recipes are
// chunked, embedded, and indexed, then a cooking assistant answers questions
// grounded in the retrieved recipes rather than the model's own knowledge.
//
// Usage:
//
//	export AZURE_OPENAI_ENDPOINT=https://<resource>.openai.azure.com/
//	export AZURE_OPENAI_DEPLOYMENT_NAME=gpt-4o
//	export AZURE_OPENAI_EMBEDDING_DEPLOYMENT_NAME=text-embedding-3-small
//	export AZURE_OPENAI_API_KEY=<your-key>   # optional, Entra ID otherwise
//	go run ./samples/rag
package main

import (
	"context"
	"fmt"
	"log"

	ak "github.com/microsoft/ai-samples/go/agentkit"
	"github.com/microsoft/ai-samples/go/azureenv"
	"github.com/microsoft/ai-samples/go/rag"
	"github.com/microsoft/ai-samples/go/vectorstore"
)

var recipes = []vectorstore.Document{
	{
		Content: `Classic Pasta Carbonara

Ingredients: spaghetti, guanciale, eggs, pecorino romano, black pepper.

Boil the spaghetti in salted water. Fry diced guanciale until crisp.
Whisk eggs with grated pecorino. Toss the drained pasta with the guanciale,
then off the heat stir in the egg mixture until creamy. Finish with pepper.`,
		Metadata: map[string]any{"title": "Pasta Carbonara"},
	},
	{
		Content: `Thai Green Curry

Ingredients: green curry paste, coconut milk, chicken thighs, bamboo shoots,
thai basil, fish sauce, palm sugar.

Fry the curry paste in a splash of coconut milk until fragrant. Add the
chicken and remaining coconut milk and simmer until cooked through. Season
with fish sauce and palm sugar, add bamboo shoots, and finish with basil.`,
		Metadata: map[string]any{"title": "Thai Green Curry"},
	},
	{
		Content: `Flourless Chocolate Cake

Ingredients: dark chocolate, butter, eggs, sugar, cocoa powder.

Melt the chocolate with the butter. Whisk eggs with sugar until pale, fold
in the chocolate, and pour into a lined tin. Bake at 180°C for 25 minutes.
Naturally gluten free.`,
		Metadata: map[string]any{"title": "Flourless Chocolate Cake"},
	},
}

func main() {
	cfg, err := azureenv.Load()
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}
	client, err := cfg.ChatClient()
	if err != nil {
		log.Fatalf("Create chat client: %v", err)
	}
	embedder, err := cfg.EmbeddingClient()
	if err != nil {
		log.Fatalf("Create embedding client: %v", err)
	}

	ctx := context.Background()

	// Chunk and index the recipes.
	splitter := vectorstore.NewSplitter(400, 80)
	store := vectorstore.NewInMemoryStore(embedder)
	chunks := splitter.SplitDocuments(recipes)
	if _, err := store.AddDocuments(ctx, chunks); err != nil {
		log.Fatalf("Index recipes: %v", err)
	}
	fmt.Printf("Indexed %d chunks from %d recipes.\n\n", store.Len(), len(recipes))

	agent := ak.NewAgent(client,
		ak.WithName("cooking-assistant"),
		ak.WithInstructions("You are a cooking assistant. Answer only from the recipes provided in context. If the context has no relevant recipe, say so."),
		ak.WithContextProvider(rag.NewRetriever(store, rag.WithTopK(3))),
	)

	question := "How do I make the pasta dish, and is there a dessert that works for a gluten-free guest?"
	fmt.Printf("Question: %s\n\n", question)

	resp, err := agent.Run(ctx, []ak.Message{ak.NewUserMessage(question)})
	if err != nil {
		log.Fatalf("Run: %v", err)
	}
	fmt.Println(resp.Text())
}

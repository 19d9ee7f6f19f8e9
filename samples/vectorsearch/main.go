// Copyright (c) Microsoft. All rights reserved.

// Command vectorsearch demonstrates semantic search over an in-memory vector
// store: short documents about royalty, common folk, and water are indexed,
// then queried by meaning rather than keywords.
//
// Usage:
//
//	export AZURE_OPENAI_ENDPOINT=https://<resource>.openai.azure.com/
//	export AZURE_OPENAI_DEPLOYMENT_NAME=gpt-4o
//	export AZURE_OPENAI_EMBEDDING_DEPLOYMENT_NAME=text-embedding-3-small
//	export AZURE_OPENAI_API_KEY=<your-key>   # optional, Entra ID otherwise
//	go run ./samples/vectorsearch
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/microsoft/ai-samples/go/azureenv"
	"github.com/microsoft/ai-samples/go/vectorstore"
)

func main() {
	cfg, err := azureenv.Load()
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}
	embedder, err := cfg.EmbeddingClient()
	if err != nil {
		log.Fatalf("Create embedding client: %v", err)
	}

	ctx := context.Background()
	store := vectorstore.NewInMemoryStore(embedder)

	docs := []vectorstore.Document{
		{Content: "The king ruled his empire with wisdom and justice.", Metadata: map[string]any{"topic": "royalty"}},
		{Content: "The princess was next in line for the throne.", Metadata: map[string]any{"topic": "royalty"}},
		{Content: "The royal palace hosted a grand banquet.", Metadata: map[string]any{"topic": "royalty"}},
		{Content: "The farmer tended his fields from dawn to dusk.", Metadata: map[string]any{"topic": "people"}},
		{Content: "The merchant sold spices at the market square.", Metadata: map[string]any{"topic": "people"}},
		{Content: "The blacksmith forged tools for the village.", Metadata: map[string]any{"topic": "people"}},
		{Content: "Rivers flow down from the mountains to the sea.", Metadata: map[string]any{"topic": "water"}},
		{Content: "Rain filled the reservoirs after a dry summer.", Metadata: map[string]any{"topic": "water"}},
		{Content: "Ocean currents carry warm water across the globe.", Metadata: map[string]any{"topic": "water"}},
	}

	if _, err := store.AddDocuments(ctx, docs); err != nil {
		log.Fatalf("AddDocuments: %v", err)
	}
	fmt.Printf("Indexed %d documents.\n\n", store.Len())

	for _, query := range []string{
		"Tell me about monarchs and their courts",
		"How does water move around the planet?",
	} {
		fmt.Printf("Query: %s\n", query)

		results, err := store.SimilaritySearchWithScore(ctx, query, 3)
		if err != nil {
			log.Fatalf("Search: %v", err)
		}
		for _, r := range results {
			fmt.Printf("  %.4f  [%v] %s\n", r.Score, r.Document.Metadata["topic"], r.Document.Content)
		}
		fmt.Println()
	}
}

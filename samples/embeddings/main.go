// Copyright (c) Microsoft. All rights reserved.

// Command embeddings demonstrates text embeddings and cosine similarity:
// the word "Prince" is compared against related and unrelated words.
//
// Usage:
//
//	export AZURE_OPENAI_ENDPOINT=https://<resource>.openai.azure.com/
//	export AZURE_OPENAI_DEPLOYMENT_NAME=gpt-4o
//	export AZURE_OPENAI_EMBEDDING_DEPLOYMENT_NAME=text-embedding-3-small
//	export AZURE_OPENAI_API_KEY=<your-key>   # optional, Entra ID otherwise
//	go run ./samples/embeddings
package main

import (
	"context"
	"fmt"
	"log"
	"sort"

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

	query := "Prince"
	words := []string{
		"King", "Princess", "Royal", "Crown",
		"Peasant", "Pauper",
		"Algorithm", "Entropy", "Asphalt",
	}

	vectors, err := embedder.Embed(ctx, append([]string{query}, words...))
	if err != nil {
		log.Fatalf("Embed: %v", err)
	}
	queryVec, wordVecs := vectors[0], vectors[1:]

	type scored struct {
		word  string
		score float64
	}
	results := make([]scored, len(words))
	for i, w := range words {
		score, err := vectorstore.CosineSimilarity(queryVec, wordVecs[i])
		if err != nil {
			log.Fatalf("Cosine similarity: %v", err)
		}
		results[i] = scored{w, score}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].score > results[j].score })

	fmt.Printf("Cosine similarity to %q:\n\n", query)
	for _, r := range results {
		fmt.Printf("  %-10s %.4f\n", r.word, r.score)
	}
}

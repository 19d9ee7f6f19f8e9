// Copyright (c) Microsoft. All rights reserved.

package vectorstore_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/microsoft/ai-samples/go/vectorstore"
)

// stubEmbedder returns fixed vectors per text, defaulting to a zero vector.
type stubEmbedder struct {
	vectors map[string][]float32
}

func (e *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if v, ok := e.vectors[t]; ok {
			out[i] = v
		} else {
			out[i] = []float32{0, 0, 0}
		}
	}
	return out, nil
}

func newRoyalEmbedder() *stubEmbedder {
	// Hand-placed vectors: royalty terms cluster, unrelated terms point away.
	return &stubEmbedder{vectors: map[string][]float32{
		"King":      {1, 0.1, 0},
		"Princess":  {0.9, 0.3, 0},
		"Peasant":   {-0.2, 1, 0},
		"Algorithm": {0, 0, 1},
		"Prince":    {1, 0.2, 0},
	}}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := vectorstore.CosineSimilarity(tc.a, tc.b)
			if err != nil {
				t.Fatalf("CosineSimilarity: %v", err)
			}
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("CosineSimilarity = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCosineSimilarity_DimensionMismatch(t *testing.T) {
	_, err := vectorstore.CosineSimilarity([]float32{1}, []float32{1, 2})
	if err == nil {
		t.Error("expected error on dimension mismatch")
	}
}

func TestInMemoryStore_SimilaritySearch(t *testing.T) {
	store := vectorstore.NewInMemoryStore(newRoyalEmbedder())
	ctx := context.Background()

	ids, err := store.AddDocuments(ctx, []vectorstore.Document{
		{Content: "King"},
		{Content: "Princess"},
		{Content: "Peasant"},
		{Content: "Algorithm"},
	})
	if err != nil {
		t.Fatalf("AddDocuments: %v", err)
	}
	if len(ids) != 4 {
		t.Fatalf("ids = %d", len(ids))
	}
	for _, id := range ids {
		if id == "" {
			t.Error("document should be assigned an ID")
		}
	}
	if store.Len() != 4 {
		t.Errorf("Len = %d", store.Len())
	}

	docs, err := store.SimilaritySearch(ctx, "Prince", 2)
	if err != nil {
		t.Fatalf("SimilaritySearch: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d results, want 2", len(docs))
	}
	if docs[0].Content != "King" {
		t.Errorf("top result = %q, want King", docs[0].Content)
	}
	if docs[1].Content != "Princess" {
		t.Errorf("second result = %q, want Princess", docs[1].Content)
	}
}

func TestInMemoryStore_SimilaritySearchWithScore(t *testing.T) {
	store := vectorstore.NewInMemoryStore(newRoyalEmbedder())
	ctx := context.Background()

	if _, err := store.AddDocuments(ctx, []vectorstore.Document{
		{Content: "King"},
		{Content: "Algorithm"},
	}); err != nil {
		t.Fatal(err)
	}

	results, err := store.SimilaritySearchWithScore(ctx, "Prince", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Score < results[1].Score {
		t.Error("results should be ordered by descending score")
	}
	for _, r := range results {
		if r.Score < -1 || r.Score > 1 {
			t.Errorf("score %v outside [-1, 1]", r.Score)
		}
	}
}

func TestInMemoryStore_EmptyQuery(t *testing.T) {
	store := vectorstore.NewInMemoryStore(newRoyalEmbedder())
	_, err := store.SimilaritySearch(context.Background(), "", 3)
	if !errors.Is(err, vectorstore.ErrEmptyQuery) {
		t.Errorf("err = %v, want ErrEmptyQuery", err)
	}
}

// countEmbedder returns a fixed number of vectors regardless of input size.
type countEmbedder struct {
	vectors [][]float32
}

func (e *countEmbedder) Embed(_ context.Context, _ []string) ([][]float32, error) {
	return e.vectors, nil
}

func TestInMemoryStore_EmbedderWrongCount(t *testing.T) {
	store := vectorstore.NewInMemoryStore(&countEmbedder{})
	_, err := store.SimilaritySearchWithScore(context.Background(), "Prince", 3)
	if err == nil {
		t.Error("expected error when embedder returns no vector for the query")
	}
}

func TestInMemoryStore_EmbedderDimensionDrift(t *testing.T) {
	embedder := &countEmbedder{vectors: [][]float32{{1, 0, 0}}}
	store := vectorstore.NewInMemoryStore(embedder)
	ctx := context.Background()

	if _, err := store.AddDocuments(ctx, []vectorstore.Document{{Content: "King"}}); err != nil {
		t.Fatal(err)
	}

	// The embedder starts returning vectors of a different dimension.
	embedder.vectors = [][]float32{{1, 0}}
	_, err := store.SimilaritySearchWithScore(ctx, "Prince", 1)
	if err == nil {
		t.Error("expected error on dimension mismatch")
	}
}

func TestInMemoryStore_MetadataPreserved(t *testing.T) {
	store := vectorstore.NewInMemoryStore(newRoyalEmbedder())
	ctx := context.Background()

	if _, err := store.AddDocuments(ctx, []vectorstore.Document{
		{ID: "doc-1", Content: "King", Metadata: map[string]any{"category": "royalty"}},
	}); err != nil {
		t.Fatal(err)
	}

	docs, err := store.SimilaritySearch(ctx, "Prince", 1)
	if err != nil {
		t.Fatal(err)
	}
	if docs[0].ID != "doc-1" {
		t.Errorf("ID = %q", docs[0].ID)
	}
	if docs[0].Metadata["category"] != "royalty" {
		t.Errorf("Metadata = %v", docs[0].Metadata)
	}
}

// Copyright (c) Microsoft. All rights reserved.

package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Embedder turns texts into embedding vectors. Implemented by
// azure.EmbeddingClient.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Document is a piece of text with optional metadata.
type Document struct {
	ID       string
	Content  string
	Metadata map[string]any
}

// SearchResult pairs a document with its similarity score.
// Scores are cosine similarities in [-1, 1]; higher is more similar.
type SearchResult struct {
	Document Document
	Score    float64
}

// ErrEmptyQuery is returned when a similarity search is given empty text.
var ErrEmptyQuery = errors.New("vectorstore: empty query")

// InMemoryStore keeps documents and their embeddings in memory and answers
// nearest-neighbor queries by brute-force cosine similarity. Safe for
// concurrent use.
type InMemoryStore struct {
	embedder Embedder

	mu      sync.RWMutex
	entries []entry
}

type entry struct {
	doc    Document
	vector []float32
}

// NewInMemoryStore creates an empty store that embeds documents and queries
// with the given embedder.
func NewInMemoryStore(embedder Embedder) *InMemoryStore {
	return &InMemoryStore{embedder: embedder}
}

// AddDocuments embeds and stores the given documents. Documents without an ID
// are assigned one. It returns the IDs of the stored documents in input order.
func (s *InMemoryStore) AddDocuments(ctx context.Context, docs []Document) ([]string, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Content
	}

	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed documents: %w", err)
	}
	if len(vectors) != len(docs) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d documents", len(vectors), len(docs))
	}

	ids := make([]string, len(docs))

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, d := range docs {
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		ids[i] = d.ID
		s.entries = append(s.entries, entry{doc: d, vector: vectors[i]})
	}
	return ids, nil
}

// Len returns the number of stored documents.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// SimilaritySearch returns the k documents most similar to the query.
func (s *InMemoryStore) SimilaritySearch(ctx context.Context, query string, k int) ([]Document, error) {
	results, err := s.SimilaritySearchWithScore(ctx, query, k)
	if err != nil {
		return nil, err
	}
	docs := make([]Document, len(results))
	for i, r := range results {
		docs[i] = r.Document
	}
	return docs, nil
}

// SimilaritySearchWithScore returns the k most similar documents along with
// their cosine similarity scores, ordered from most to least similar.
func (s *InMemoryStore) SimilaritySearchWithScore(ctx context.Context, query string, k int) ([]SearchResult, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if k <= 0 {
		return nil, nil
	}

	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for 1 query", len(vectors))
	}
	queryVec := vectors[0]

	s.mu.RLock()
	entries := make([]entry, len(s.entries))
	copy(entries, s.entries)
	s.mu.RUnlock()

	results := make([]SearchResult, 0, len(entries))
	for _, e := range entries {
		score, err := CosineSimilarity(queryVec, e.vector)
		if err != nil {
			return nil, fmt.Errorf("score document %q: %w", e.doc.ID, err)
		}
		results = append(results, SearchResult{Document: e.doc, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// CosineSimilarity computes the cosine similarity between two vectors.
// It returns 0 when either vector is all-zero, and an error when the
// dimensions differ.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vectorstore: dimension mismatch %d != %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// Copyright (c) Microsoft. All rights reserved.

// Package rag implements retrieval-augmented generation as an
// [agentkit.ContextProvider]: before each agent run it embeds the latest user
// message, retrieves the most similar documents from a vector store, and
// injects them as grounding instructions.
package rag

import (
	"context"
	"fmt"
	"strings"

	ak "github.com/microsoft/ai-samples/go/agentkit"
	"github.com/microsoft/ai-samples/go/vectorstore"
)

// defaultTopK is the number of documents retrieved per query.
const defaultTopK = 4

// Retriever is an [agentkit.ContextProvider] backed by a vector store.
type Retriever struct {
	ak.NoOpContextProvider

	store  *vectorstore.InMemoryStore
	topK   int
	header string
}

// RetrieverOption configures a [Retriever].
type RetrieverOption func(*Retriever)

// WithTopK sets how many documents are retrieved per query.
func WithTopK(k int) RetrieverOption {
	return func(r *Retriever) { r.topK = k }
}

// WithHeader overrides the instruction line that precedes retrieved documents.
func WithHeader(header string) RetrieverOption {
	return func(r *Retriever) { r.header = header }
}

// NewRetriever creates a Retriever over the given store.
func NewRetriever(store *vectorstore.InMemoryStore, opts ...RetrieverOption) *Retriever {
	r := &Retriever{
		store:  store,
		topK:   defaultTopK,
		header: "Use the following context to answer the question:",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Invoking retrieves documents similar to the latest user message and returns
// them as additional instructions. With no user message or an empty store it
// injects nothing.
func (r *Retriever) Invoking(ctx context.Context, messages []ak.Message) (*ak.InvocationContext, error) {
	query := lastUserText(messages)
	if query == "" || r.store.Len() == 0 {
		return &ak.InvocationContext{}, nil
	}

	docs, err := r.store.SimilaritySearch(ctx, query, r.topK)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}
	if len(docs) == 0 {
		return &ak.InvocationContext{}, nil
	}

	var b strings.Builder
	b.WriteString(r.header)
	for _, d := range docs {
		b.WriteString("\n\n")
		b.WriteString(d.Content)
	}

	return &ak.InvocationContext{Instructions: b.String()}, nil
}

// lastUserText returns the text of the most recent user message.
func lastUserText(messages []ak.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == ak.RoleUser {
			return messages[i].Text()
		}
	}
	return ""
}

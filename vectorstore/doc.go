// Copyright (c) Microsoft. All rights reserved.

// Package vectorstore provides an in-memory vector store for similarity
// search over embedded documents, plus a recursive character text splitter
// for chunking documents before embedding.
//
//	store := vectorstore.NewInMemoryStore(embedder)
//	err := store.AddDocuments(ctx, docs)
//	results, err := store.SimilaritySearch(ctx, "tell me about kings", 4)
package vectorstore

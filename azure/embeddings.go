// Copyright (c) Microsoft. All rights reserved.

package azure

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	ak "github.com/microsoft/ai-samples/go/agentkit"
)

// EmbeddingClient generates text embeddings from an Azure OpenAI embedding
// deployment (e.g. text-embedding-3-small). It satisfies
// [vectorstore.Embedder].
type EmbeddingClient struct {
	tp transport
}

// NewEmbeddingClient creates an EmbeddingClient for the given endpoint and
// embedding deployment name.
func NewEmbeddingClient(endpoint, deployment string, opts ...Option) *EmbeddingClient {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}
	return &EmbeddingClient{tp: newHTTPTransport(endpoint, deployment, cfg)}
}

type embeddingRequest struct {
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data  []embeddingItem `json:"data"`
	Model string          `json:"model"`
	Usage *usage          `json:"usage,omitempty"`
}

type embeddingItem struct {
	Index     int       `json:"index"`
	Embedding []float32 `json:"embedding"`
}

// Embed returns one embedding vector per input text, in input order.
func (c *EmbeddingClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := c.tp.do(ctx, "embeddings", &embeddingRequest{Input: texts})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", ak.ErrService, err)
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: parse embeddings: %v", ak.ErrInvalidResponse, err)
	}

	if len(parsed.Data) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d inputs", ak.ErrInvalidResponse, len(parsed.Data), len(texts))
	}

	// Results are keyed by index and may arrive out of order.
	sort.Slice(parsed.Data, func(i, j int) bool { return parsed.Data[i].Index < parsed.Data[j].Index })

	out := make([][]float32, len(parsed.Data))
	for i, item := range parsed.Data {
		out[i] = item.Embedding
	}
	return out, nil
}

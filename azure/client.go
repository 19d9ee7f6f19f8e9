// Copyright (c) Microsoft. All rights reserved.

package azure

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	ak "github.com/microsoft/ai-samples/go/agentkit"
)

// ChatClient implements [agentkit.ChatClient] against an Azure OpenAI chat
// completions deployment. Use [NewChatClient] to create one.
type ChatClient struct {
	tp transport
}

// Verify interface compliance at compile time.
var _ ak.ChatClient = (*ChatClient)(nil)

// NewChatClient creates a ChatClient for the given Azure OpenAI endpoint and
// deployment name.
//
//	client := azure.NewChatClient(
//	    os.Getenv("AZURE_OPENAI_ENDPOINT"),
//	    os.Getenv("AZURE_OPENAI_DEPLOYMENT_NAME"),
//	    azure.WithAPIKey(os.Getenv("AZURE_OPENAI_API_KEY")),
//	)
func NewChatClient(endpoint, deployment string, opts ...Option) *ChatClient {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}
	return &ChatClient{tp: newHTTPTransport(endpoint, deployment, cfg)}
}

// Response sends a non-streaming chat completion request and returns the
// complete response.
func (c *ChatClient) Response(ctx context.Context, messages []ak.Message, opts *ak.ChatOptions) (*ak.ChatResponse, error) {
	req := buildRequest(messages, opts)
	req.Stream = false

	resp, err := c.tp.do(ctx, "chat/completions", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", ak.ErrService, err)
	}

	raw, err := unmarshalChatResponse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", ak.ErrInvalidResponse, err)
	}

	result := parseChatResponse(raw)
	result.Raw = raw
	return result, nil
}

// StreamResponse sends a streaming chat completion request and returns
// a [ResponseStream] that yields incremental updates via server-sent events.
func (c *ChatClient) StreamResponse(ctx context.Context, messages []ak.Message, opts *ak.ChatOptions) (*ak.ResponseStream[ak.ChatResponseUpdate], error) {
	req := buildRequest(messages, opts)
	req.Stream = true
	req.StreamOptions = &streamOptions{IncludeUsage: true}

	resp, err := c.tp.do(ctx, "chat/completions", req)
	if err != nil {
		return nil, err
	}

	stream := ak.NewResponseStream(ctx, func(ctx context.Context, ch chan<- ak.ChatResponseUpdate) error {
		defer resp.Body.Close()
		return parseSSEStream(ctx, resp.Body, ch)
	})

	return stream, nil
}

// parseSSEStream reads server-sent events from r and sends parsed updates
// to ch. It returns when the stream is exhausted ([DONE]), the context is
// cancelled, or an error occurs.
func parseSSEStream(ctx context.Context, r io.Reader, ch chan<- ak.ChatResponseUpdate) error {
	scanner := bufio.NewScanner(r)
	// Allow large SSE lines (some responses can be substantial).
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		// SSE format: lines starting with "data: "
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		data := strings.TrimSpace(strings.TrimPrefix(line, "data: "))

		// Stream terminator.
		if data == "[DONE]" {
			return nil
		}

		var chunk chatCompletionChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			// Skip malformed chunks rather than aborting.
			continue
		}

		update := parseChunk(&chunk)
		update.Raw = &chunk

		select {
		case ch <- *update:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: read SSE stream: %v", ak.ErrService, err)
	}

	return nil
}

// Copyright (c) Microsoft. All rights reserved.

package azure

import (
	"encoding/json"

	ak "github.com/microsoft/ai-samples/go/agentkit"
)

// chatCompletionResponse is the Azure OpenAI chat completions response.
type chatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []choice `json:"choices"`
	Usage   *usage   `json:"usage,omitempty"`
}

type choice struct {
	Index        int         `json:"index"`
	Message      respMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type respMessage struct {
	Role      string     `json:"role"`
	Content   *string    `json:"content"`
	ToolCalls []toolCall `json:"tool_calls,omitempty"`
}

type usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// chatCompletionChunk is a single SSE chunk in streaming mode.
type chatCompletionChunk struct {
	ID      string        `json:"id"`
	Object  string        `json:"object"`
	Created int64         `json:"created"`
	Model   string        `json:"model"`
	Choices []chunkChoice `json:"choices"`
	Usage   *usage        `json:"usage,omitempty"`
}

type chunkChoice struct {
	Index        int        `json:"index"`
	Delta        chunkDelta `json:"delta"`
	FinishReason *string    `json:"finish_reason"`
}

type chunkDelta struct {
	Role      string     `json:"role,omitempty"`
	Content   *string    `json:"content,omitempty"`
	ToolCalls []toolCall `json:"tool_calls,omitempty"`
}

// parseChatResponse converts the service response into agentkit types.
func parseChatResponse(raw *chatCompletionResponse) *ak.ChatResponse {
	resp := &ak.ChatResponse{
		ResponseID: raw.ID,
		ModelID:    raw.Model,
	}

	if raw.Usage != nil {
		resp.Usage = ak.UsageDetails{
			InputTokens:  raw.Usage.PromptTokens,
			OutputTokens: raw.Usage.CompletionTokens,
			TotalTokens:  raw.Usage.TotalTokens,
		}
	}

	if len(raw.Choices) > 0 {
		c := raw.Choices[0]
		resp.FinishReason = mapFinishReason(c.FinishReason)

		msg := ak.Message{
			Role: ak.Role(c.Message.Role),
		}

		if c.Message.Content != nil && *c.Message.Content != "" {
			msg.Contents = append(msg.Contents, &ak.TextContent{Text: *c.Message.Content})
		}

		for _, tc := range c.Message.ToolCalls {
			msg.Contents = append(msg.Contents, &ak.FunctionCallContent{
				CallID:    tc.ID,
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			})
		}

		resp.Messages = []ak.Message{msg}
	}

	return resp
}

// parseChunk converts a streaming chunk into a ChatResponseUpdate.
func parseChunk(chunk *chatCompletionChunk) *ak.ChatResponseUpdate {
	update := &ak.ChatResponseUpdate{
		ResponseID: chunk.ID,
		ModelID:    chunk.Model,
	}

	if chunk.Usage != nil {
		update.Usage = ak.UsageDetails{
			InputTokens:  chunk.Usage.PromptTokens,
			OutputTokens: chunk.Usage.CompletionTokens,
			TotalTokens:  chunk.Usage.TotalTokens,
		}
	}

	if len(chunk.Choices) > 0 {
		c := chunk.Choices[0]

		if c.Delta.Role != "" {
			update.Role = ak.Role(c.Delta.Role)
		}

		if c.FinishReason != nil {
			update.FinishReason = mapFinishReason(*c.FinishReason)
		}

		if c.Delta.Content != nil && *c.Delta.Content != "" {
			update.Contents = append(update.Contents, &ak.TextContent{Text: *c.Delta.Content})
		}

		for _, tc := range c.Delta.ToolCalls {
			update.Contents = append(update.Contents, &ak.FunctionCallContent{
				CallID:    tc.ID,
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			})
		}
	}

	return update
}

// unmarshalChatResponse parses the JSON response body.
func unmarshalChatResponse(data []byte) (*chatCompletionResponse, error) {
	var resp chatCompletionResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func mapFinishReason(s string) ak.FinishReason {
	switch s {
	case "stop":
		return ak.FinishReasonStop
	case "length":
		return ak.FinishReasonLength
	case "tool_calls":
		return ak.FinishReasonToolCalls
	case "content_filter":
		return ak.FinishReasonContentFilter
	default:
		return ak.FinishReason(s)
	}
}

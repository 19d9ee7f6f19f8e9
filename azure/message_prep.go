// Copyright (c) Microsoft. All rights reserved.

package azure

import (
	"encoding/json"
	"strings"

	ak "github.com/microsoft/ai-samples/go/agentkit"
)

// chatRequest is the Azure OpenAI chat completions request body. The model is
// selected by the deployment in the URL, so no model field is sent.
type chatRequest struct {
	Messages       []chatMessage  `json:"messages"`
	Temperature    *float64       `json:"temperature,omitempty"`
	TopP           *float64       `json:"top_p,omitempty"`
	MaxTokens      *int           `json:"max_completion_tokens,omitempty"`
	Stop           []string       `json:"stop,omitempty"`
	Seed           *int           `json:"seed,omitempty"`
	Tools          []toolSpec     `json:"tools,omitempty"`
	ToolChoice     any            `json:"tool_choice,omitempty"`
	Stream         bool           `json:"stream,omitempty"`
	StreamOptions  *streamOptions `json:"stream_options,omitempty"`
	ResponseFormat any            `json:"response_format,omitempty"`
}

type streamOptions struct {
	IncludeUsage bool `json:"include_usage"`
}

type chatMessage struct {
	Role       string     `json:"role"`
	Content    string     `json:"content,omitempty"`
	Name       string     `json:"name,omitempty"`
	ToolCalls  []toolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

type toolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function functionCall `json:"function"`
}

type functionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type toolSpec struct {
	Type     string       `json:"type"`
	Function functionSpec `json:"function"`
}

type functionSpec struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// buildRequest converts agentkit types into an Azure OpenAI request.
func buildRequest(messages []ak.Message, opts *ak.ChatOptions) *chatRequest {
	req := &chatRequest{}
	if opts != nil {
		req.Temperature = opts.Temperature
		req.TopP = opts.TopP
		req.MaxTokens = opts.MaxTokens
		req.Stop = opts.Stop
		req.Seed = opts.Seed
		req.ResponseFormat = opts.ResponseFormat

		for _, t := range opts.Tools {
			req.Tools = append(req.Tools, toolSpec{
				Type: "function",
				Function: functionSpec{
					Name:        t.Name(),
					Description: t.Description(),
					Parameters:  t.Parameters(),
				},
			})
		}

		req.ToolChoice = convertToolChoice(opts.ToolChoice)
	}

	req.Messages = convertMessages(messages)
	return req
}

// convertMessages translates agentkit Messages into chat API messages.
func convertMessages(messages []ak.Message) []chatMessage {
	result := make([]chatMessage, 0, len(messages))

	for _, msg := range messages {
		cm := chatMessage{
			Role: string(msg.Role),
			Name: msg.AuthorName,
		}

		switch msg.Role {
		case ak.RoleTool:
			// Tool messages carry a single function result
			for _, c := range msg.Contents {
				if fr, ok := c.(*ak.FunctionResultContent); ok {
					cm.ToolCallID = fr.CallID
					cm.Content, _ = marshalResult(fr.Result)
				}
			}

		case ak.RoleAssistant:
			// Assistant messages may have text + tool calls
			var textParts []string
			for _, c := range msg.Contents {
				switch v := c.(type) {
				case *ak.TextContent:
					textParts = append(textParts, v.Text)
				case *ak.FunctionCallContent:
					cm.ToolCalls = append(cm.ToolCalls, toolCall{
						ID:   v.CallID,
						Type: "function",
						Function: functionCall{
							Name:      v.Name,
							Arguments: v.Arguments,
						},
					})
				}
			}
			cm.Content = strings.Join(textParts, "")

		default:
			// User/system messages: plain text
			cm.Content = msg.Text()
		}

		result = append(result, cm)
	}

	return result
}

func convertToolChoice(tc ak.ToolChoice) any {
	if tc == "" {
		return nil
	}
	switch tc {
	case ak.ToolChoiceAuto, ak.ToolChoiceRequired, ak.ToolChoiceNone:
		return string(tc)
	default:
		// "function:name" forces a specific function.
		if name, ok := strings.CutPrefix(string(tc), "function:"); ok {
			return map[string]any{
				"type": "function",
				"function": map[string]string{
					"name": name,
				},
			}
		}
		return string(tc)
	}
}

func marshalResult(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	b, err := json.Marshal(v)
	return string(b), err
}

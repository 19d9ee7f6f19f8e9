// Copyright (c) Microsoft. All rights reserved.

package agentkit

import "strings"

// ChatResponse is the complete (non-streaming) response from a [ChatClient].
type ChatResponse struct {
	Messages     []Message
	ResponseID   string
	ModelID      string
	FinishReason FinishReason
	Usage        UsageDetails
	Raw          any
}

// Text returns the concatenated text of all messages in this response.
func (r *ChatResponse) Text() string {
	var b strings.Builder
	for i := range r.Messages {
		b.WriteString(r.Messages[i].Text())
	}
	return b.String()
}

// ChatResponseUpdate is a single chunk received during streaming from a [ChatClient].
type ChatResponseUpdate struct {
	Contents     Contents
	Role         Role
	ResponseID   string
	ModelID      string
	FinishReason FinishReason
	Usage        UsageDetails
	Raw          any
}

// Text returns the concatenated text of all [TextContent] items in this update.
func (u *ChatResponseUpdate) Text() string {
	var b strings.Builder
	for _, c := range u.Contents {
		if tc, ok := c.(*TextContent); ok {
			b.WriteString(tc.Text)
		}
	}
	return b.String()
}

// AgentResponse is the complete response from an [Agent] run.
type AgentResponse struct {
	Messages   []Message
	ResponseID string
	AgentID    string
	Usage      UsageDetails
	Raw        any
}

// Text returns the concatenated text of all messages in this agent response.
func (r *AgentResponse) Text() string {
	var b strings.Builder
	for i := range r.Messages {
		b.WriteString(r.Messages[i].Text())
	}
	return b.String()
}

// AgentResponseUpdate is a single streaming chunk from an [Agent] run.
type AgentResponseUpdate struct {
	Contents   Contents
	Role       Role
	AgentID    string
	ResponseID string
	Usage      UsageDetails
	Raw        any
}

// Text returns the concatenated text of all [TextContent] items in this update.
func (u *AgentResponseUpdate) Text() string {
	var b strings.Builder
	for _, c := range u.Contents {
		if tc, ok := c.(*TextContent); ok {
			b.WriteString(tc.Text)
		}
	}
	return b.String()
}

// ChatResponseFromUpdates builds a complete [ChatResponse] by merging
// a sequence of streaming updates.
func ChatResponseFromUpdates(updates []ChatResponseUpdate) *ChatResponse {
	resp := &ChatResponse{}
	var allContents Contents
	for _, u := range updates {
		allContents = append(allContents, u.Contents...)
		if u.ResponseID != "" {
			resp.ResponseID = u.ResponseID
		}
		if u.ModelID != "" {
			resp.ModelID = u.ModelID
		}
		if u.FinishReason != "" {
			resp.FinishReason = u.FinishReason
		}
		if u.Usage.TotalTokens > 0 {
			resp.Usage = u.Usage
		}
	}

	if merged := mergeContentDeltas(allContents); len(merged) > 0 {
		resp.Messages = []Message{{Role: updatesRole(len(updates), func(i int) Role { return updates[i].Role }), Contents: merged}}
	}
	return resp
}

// AgentResponseFromUpdates builds a complete [AgentResponse] by merging
// a sequence of streaming updates.
func AgentResponseFromUpdates(updates []AgentResponseUpdate) *AgentResponse {
	resp := &AgentResponse{}
	var allContents Contents
	for _, u := range updates {
		allContents = append(allContents, u.Contents...)
		if u.AgentID != "" {
			resp.AgentID = u.AgentID
		}
		if u.ResponseID != "" {
			resp.ResponseID = u.ResponseID
		}
		if u.Usage.TotalTokens > 0 {
			resp.Usage = u.Usage
		}
	}

	if merged := mergeContentDeltas(allContents); len(merged) > 0 {
		resp.Messages = []Message{{Role: updatesRole(len(updates), func(i int) Role { return updates[i].Role }), Contents: merged}}
	}
	return resp
}

// updatesRole picks the first non-empty role from a sequence of updates,
// defaulting to assistant.
func updatesRole(n int, role func(int) Role) Role {
	for i := 0; i < n; i++ {
		if r := role(i); r != "" {
			return r
		}
	}
	return RoleAssistant
}

// mergeContentDeltas consolidates sequential TextContent runs into single
// items, and passes non-text content through as-is.
func mergeContentDeltas(cs Contents) Contents {
	if len(cs) == 0 {
		return nil
	}
	var merged Contents
	var textBuf strings.Builder
	flush := func() {
		if textBuf.Len() > 0 {
			merged = append(merged, &TextContent{Text: textBuf.String()})
			textBuf.Reset()
		}
	}
	for _, c := range cs {
		if tc, ok := c.(*TextContent); ok {
			textBuf.WriteString(tc.Text)
		} else {
			flush()
			merged = append(merged, c)
		}
	}
	flush()
	return merged
}

// Copyright (c) Microsoft. All rights reserved.

package agentkit_test

import (
	"context"
	"encoding/json"
	"testing"

	ak "github.com/microsoft/ai-samples/go/agentkit"
)

func TestAgentMiddleware_Order(t *testing.T) {
	var order []string

	mw := func(label string) ak.AgentMiddleware {
		return func(next ak.AgentHandler) ak.AgentHandler {
			return func(ctx context.Context, req *ak.AgentRequest) (*ak.AgentResponse, error) {
				order = append(order, label+"-before")
				resp, err := next(ctx, req)
				order = append(order, label+"-after")
				return resp, err
			}
		}
	}

	client := &mockClient{
		responseFn: func(ctx context.Context, msgs []ak.Message, opts *ak.ChatOptions) (*ak.ChatResponse, error) {
			order = append(order, "handler")
			return &ak.ChatResponse{Messages: []ak.Message{ak.NewAssistantMessage("ok")}}, nil
		},
	}

	agent := ak.NewAgent(client, ak.WithAgentMiddleware(mw("outer"), mw("inner")))
	if _, err := agent.Run(context.Background(), []ak.Message{ak.NewUserMessage("hi")}); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := []string{"outer-before", "inner-before", "handler", "inner-after", "outer-after"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestFunctionMiddleware_Intercepts(t *testing.T) {
	tool := ak.NewTypedTool("echo", "Echoes input",
		func(ctx context.Context, args struct {
			Text string `json:"text"`
		}) (any, error) {
			return args.Text, nil
		},
	)

	var interceptedToolName string
	fnMw := func(next ak.FunctionHandler) ak.FunctionHandler {
		return func(ctx context.Context, tool ak.Tool, args json.RawMessage) (any, error) {
			interceptedToolName = tool.Name()
			return next(ctx, tool, args)
		}
	}

	callCount := 0
	client := &mockClient{
		responseFn: func(ctx context.Context, msgs []ak.Message, opts *ak.ChatOptions) (*ak.ChatResponse, error) {
			callCount++
			if callCount == 1 {
				return &ak.ChatResponse{
					Messages: []ak.Message{{
						Role: ak.RoleAssistant,
						Contents: ak.Contents{
							&ak.FunctionCallContent{CallID: "c1", Name: "echo", Arguments: `{"text":"hi"}`},
						},
					}},
				}, nil
			}
			return &ak.ChatResponse{Messages: []ak.Message{ak.NewAssistantMessage("done")}}, nil
		},
	}

	agent := ak.NewAgent(client,
		ak.WithTools(tool),
		ak.WithFunctionMiddleware(fnMw),
	)

	if _, err := agent.Run(context.Background(), []ak.Message{ak.NewUserMessage("test")}); err != nil {
		t.Fatalf("run: %v", err)
	}

	if interceptedToolName != "echo" {
		t.Errorf("intercepted tool = %q, want echo", interceptedToolName)
	}
}

// mockClient implements ChatClient for testing.
type mockClient struct {
	responseFn func(ctx context.Context, msgs []ak.Message, opts *ak.ChatOptions) (*ak.ChatResponse, error)
}

func (m *mockClient) Response(ctx context.Context, msgs []ak.Message, opts *ak.ChatOptions) (*ak.ChatResponse, error) {
	return m.responseFn(ctx, msgs, opts)
}

func (m *mockClient) StreamResponse(ctx context.Context, msgs []ak.Message, opts *ak.ChatOptions) (*ak.ResponseStream[ak.ChatResponseUpdate], error) {
	return ak.NewResponseStream(ctx, func(ctx context.Context, ch chan<- ak.ChatResponseUpdate) error {
		resp, err := m.responseFn(ctx, msgs, opts)
		if err != nil {
			return err
		}
		for _, msg := range resp.Messages {
			ch <- ak.ChatResponseUpdate{
				Contents: msg.Contents,
				Role:     msg.Role,
			}
		}
		return nil
	}), nil
}

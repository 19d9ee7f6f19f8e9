// Copyright (c) Microsoft. All rights reserved.

package openapitools_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	ak "github.com/microsoft/ai-samples/go/agentkit"
	"github.com/microsoft/ai-samples/go/openapitools"
)

const calculatorSpec = `{
  "openapi": "3.1.0",
  "info": {"title": "Calculator", "version": "1.0.0"},
  "servers": [{"url": "/"}],
  "paths": {
    "/add": {
      "get": {
        "operationId": "add",
        "summary": "Add two numbers",
        "parameters": [
          {"name": "a", "in": "query", "required": true, "description": "first operand", "schema": {"type": "number"}},
          {"name": "b", "in": "query", "required": true, "schema": {"type": "number"}}
        ]
      }
    },
    "/multiply": {
      "post": {
        "operationId": "multiply",
        "summary": "Multiply two numbers",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "properties": {"x": {"type": "number"}, "y": {"type": "number"}},
                "required": ["x", "y"]
              }
            }
          }
        }
      }
    },
    "/squares/{n}": {
      "get": {
        "operationId": "square",
        "summary": "Square an integer",
        "parameters": [
          {"name": "n", "in": "path", "required": true, "schema": {"type": "integer"}}
        ]
      }
    },
    "/fail": {
      "get": {"summary": "Always fails"}
    }
  }
}`

// startCalculatorServer serves the description and the API it describes.
func startCalculatorServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, calculatorSpec)
	})
	mux.HandleFunc("GET /add", func(w http.ResponseWriter, r *http.Request) {
		a, _ := strconv.ParseFloat(r.URL.Query().Get("a"), 64)
		b, _ := strconv.ParseFloat(r.URL.Query().Get("b"), 64)
		fmt.Fprintf(w, "%g", a+b)
	})
	mux.HandleFunc("POST /multiply", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ X, Y float64 }
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fmt.Fprintf(w, "%g", body.X*body.Y)
	})
	mux.HandleFunc("GET /squares/{n}", func(w http.ResponseWriter, r *http.Request) {
		n, err := strconv.Atoi(r.PathValue("n"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fmt.Fprintf(w, "%d", n*n)
	})
	mux.HandleFunc("GET /fail", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func loadCalculator(t *testing.T) *openapitools.Plugin {
	t.Helper()
	server := startCalculatorServer(t)
	plugin, err := openapitools.Load(context.Background(), server.URL+"/openapi.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return plugin
}

func findTool(t *testing.T, plugin *openapitools.Plugin, name string) ak.Tool {
	t.Helper()
	for _, tool := range plugin.Tools() {
		if tool.Name() == name {
			return tool
		}
	}
	t.Fatalf("tool %q missing", name)
	return nil
}

func TestLoad_ListsOperations(t *testing.T) {
	plugin := loadCalculator(t)

	if plugin.Title() != "Calculator" {
		t.Errorf("Title = %q", plugin.Title())
	}
	if got := len(plugin.Tools()); got != 4 {
		t.Fatalf("got %d tools, want 4", got)
	}

	add := findTool(t, plugin, "add")
	if add.Description() != "Add two numbers" {
		t.Errorf("Description = %q", add.Description())
	}

	var schema map[string]any
	if err := json.Unmarshal(add.Parameters(), &schema); err != nil {
		t.Fatalf("unmarshal schema: %v", err)
	}
	props, _ := schema["properties"].(map[string]any)
	a, ok := props["a"].(map[string]any)
	if !ok {
		t.Fatalf("schema missing property a: %v", schema)
	}
	if a["description"] != "first operand" {
		t.Errorf("property a = %v", a)
	}
	required, _ := schema["required"].([]any)
	if len(required) != 2 {
		t.Errorf("required = %v, want [a b]", required)
	}

	// An operation without an operationId gets a name from method and path.
	findTool(t, plugin, "get_fail")
}

func TestRestTool_QueryParams(t *testing.T) {
	add := findTool(t, loadCalculator(t), "add")

	result, err := add.Invoke(context.Background(), json.RawMessage(`{"a":2,"b":3}`))
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if result != "5" {
		t.Errorf("result = %q, want 5", result)
	}
}

func TestRestTool_PathParam(t *testing.T) {
	square := findTool(t, loadCalculator(t), "square")

	result, err := square.Invoke(context.Background(), json.RawMessage(`{"n":7}`))
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if result != "49" {
		t.Errorf("result = %q, want 49", result)
	}

	_, err = square.Invoke(context.Background(), json.RawMessage(`{}`))
	if err == nil {
		t.Error("expected error for missing path parameter")
	}
}

func TestRestTool_RequestBody(t *testing.T) {
	multiply := findTool(t, loadCalculator(t), "multiply")

	result, err := multiply.Invoke(context.Background(), json.RawMessage(`{"x":6,"y":7}`))
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if result != "42" {
		t.Errorf("result = %q, want 42", result)
	}
}

func TestRestTool_ServerError(t *testing.T) {
	fail := findTool(t, loadCalculator(t), "get_fail")

	_, err := fail.Invoke(context.Background(), json.RawMessage(`{}`))
	if err == nil {
		t.Fatal("expected error from failing operation")
	}

	var toolErr *ak.ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("err = %T, want *ToolError", err)
	}
	if !strings.Contains(toolErr.Message, "500") || !strings.Contains(toolErr.Message, "boom") {
		t.Errorf("Message = %q", toolErr.Message)
	}
}

func TestRestTool_WithAgent(t *testing.T) {
	plugin := loadCalculator(t)

	callCount := 0
	client := &mockClient{
		responseFn: func(ctx context.Context, msgs []ak.Message, opts *ak.ChatOptions) (*ak.ChatResponse, error) {
			callCount++
			if callCount == 1 {
				return &ak.ChatResponse{Messages: []ak.Message{{
					Role: ak.RoleAssistant,
					Contents: ak.Contents{
						&ak.FunctionCallContent{CallID: "c1", Name: "add", Arguments: `{"a":2,"b":3}`},
					},
				}}}, nil
			}
			// Echo the tool result back as the final answer.
			result, ok := msgs[len(msgs)-1].Contents[0].(*ak.FunctionResultContent)
			if !ok {
				return nil, fmt.Errorf("last message content = %T, want *FunctionResultContent", msgs[len(msgs)-1].Contents[0])
			}
			return &ak.ChatResponse{Messages: []ak.Message{ak.NewAssistantMessage(fmt.Sprint(result.Result))}}, nil
		},
	}

	agent := ak.NewAgent(client, ak.WithTools(plugin.Tools()...))
	resp, err := agent.Run(context.Background(), []ak.Message{ak.NewUserMessage("what is 2+3?")})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if callCount != 2 {
		t.Errorf("client called %d times, want 2", callCount)
	}
	if !strings.Contains(resp.Text(), "5") {
		t.Errorf("final answer = %q", resp.Text())
	}
}

func TestLoad_NoOperations(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /openapi.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"openapi": "3.1.0", "info": {"title": "Empty"}, "paths": {}}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	_, err := openapitools.Load(context.Background(), server.URL+"/openapi.json")
	if err == nil {
		t.Fatal("expected error for description without operations")
	}
}

func TestLoad_FetchError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := openapitools.Load(context.Background(), server.URL+"/openapi.json")
	if err == nil {
		t.Fatal("expected error for missing description")
	}
}

// mockClient implements agentkit.ChatClient for testing.
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
			ch <- ak.ChatResponseUpdate{Contents: msg.Contents, Role: msg.Role}
		}
		return nil
	}), nil
}

// Copyright (c) Microsoft. All rights reserved.

package agentkit_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	ak "github.com/microsoft/ai-samples/go/agentkit"
)

func TestPromptTemplate_Render(t *testing.T) {
	tmpl := ak.NewPromptTemplate("Tell me a {adjective} story about {topic}")

	vars := tmpl.Variables()
	if len(vars) != 2 || vars[0] != "adjective" || vars[1] != "topic" {
		t.Errorf("Variables = %v", vars)
	}

	out, err := tmpl.Render(ak.Vars{"adjective": "funny", "topic": "bears"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "Tell me a funny story about bears" {
		t.Errorf("out = %q", out)
	}
}

func TestPromptTemplate_MissingVariable(t *testing.T) {
	tmpl := ak.NewPromptTemplate("Tell me a joke about {topic}")

	_, err := tmpl.Render(ak.Vars{})
	if err == nil {
		t.Fatal("expected error for missing variable")
	}
	if !errors.Is(err, ak.ErrPrompt) {
		t.Errorf("err = %v, want ErrPrompt", err)
	}
}

func TestPromptTemplate_RepeatedVariable(t *testing.T) {
	tmpl := ak.NewPromptTemplate("{name} and {name} again")

	if got := tmpl.Variables(); len(got) != 1 {
		t.Errorf("Variables = %v, want one entry", got)
	}

	out, err := tmpl.Render(ak.Vars{"name": "Go"})
	if err != nil {
		t.Fatal(err)
	}
	if out != "Go and Go again" {
		t.Errorf("out = %q", out)
	}
}

func TestPromptTemplate_NonStringValue(t *testing.T) {
	tmpl := ak.NewPromptTemplate("Give me {count} facts")
	out, err := tmpl.Render(ak.Vars{"count": 3})
	if err != nil {
		t.Fatal(err)
	}
	if out != "Give me 3 facts" {
		t.Errorf("out = %q", out)
	}
}

func TestChain_Run(t *testing.T) {
	var receivedPrompt string
	client := &mockClient{
		responseFn: func(ctx context.Context, msgs []ak.Message, opts *ak.ChatOptions) (*ak.ChatResponse, error) {
			receivedPrompt = msgs[len(msgs)-1].Text()
			return &ak.ChatResponse{Messages: []ak.Message{ak.NewAssistantMessage("a bear joke")}}, nil
		},
	}

	chain := ak.NewChain(ak.NewPromptTemplate("Tell me a joke about {topic}"), client,
		ak.WithChainTransform(strings.ToUpper),
	)

	out, err := chain.Run(context.Background(), ak.Vars{"topic": "bears"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if receivedPrompt != "Tell me a joke about bears" {
		t.Errorf("prompt = %q", receivedPrompt)
	}
	if out != "A BEAR JOKE" {
		t.Errorf("out = %q", out)
	}
}

func TestChain_Composition(t *testing.T) {
	// First chain produces a subject, second chain consumes it.
	client := &mockClient{
		responseFn: func(ctx context.Context, msgs []ak.Message, opts *ak.ChatOptions) (*ak.ChatResponse, error) {
			prompt := msgs[len(msgs)-1].Text()
			if strings.HasPrefix(prompt, "Name an animal") {
				return &ak.ChatResponse{Messages: []ak.Message{ak.NewAssistantMessage("kangaroo")}}, nil
			}
			return &ak.ChatResponse{Messages: []ak.Message{ak.NewAssistantMessage("story about " + prompt)}}, nil
		},
	}

	first := ak.NewChain(ak.NewPromptTemplate("Name an animal from {place}"), client)
	second := ak.NewChain(ak.NewPromptTemplate("Write a story about a {animal}"), client)

	animal, err := first.Run(context.Background(), ak.Vars{"place": "Australia"})
	if err != nil {
		t.Fatal(err)
	}
	story, err := second.Run(context.Background(), ak.Vars{"animal": animal})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(story, "kangaroo") {
		t.Errorf("story = %q, want it to mention kangaroo", story)
	}
}

func TestChain_Stream(t *testing.T) {
	client := &mockClient{
		responseFn: func(ctx context.Context, msgs []ak.Message, opts *ak.ChatOptions) (*ak.ChatResponse, error) {
			return &ak.ChatResponse{Messages: []ak.Message{
				ak.NewAssistantMessage("once "),
				ak.NewAssistantMessage("upon"),
			}}, nil
		},
	}

	chain := ak.NewChain(ak.NewPromptTemplate("Story about {topic}"), client)
	stream, err := chain.Stream(context.Background(), ak.Vars{"topic": "bears"})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	defer stream.Close()

	chunks, err := stream.Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(chunks, "") != "once upon" {
		t.Errorf("chunks = %v", chunks)
	}
}

func TestChain_MissingVariable(t *testing.T) {
	client := &mockClient{
		responseFn: func(ctx context.Context, msgs []ak.Message, opts *ak.ChatOptions) (*ak.ChatResponse, error) {
			t.Fatal("client should not be called")
			return nil, nil
		},
	}

	chain := ak.NewChain(ak.NewPromptTemplate("Joke about {topic}"), client)
	if _, err := chain.Run(context.Background(), ak.Vars{}); !errors.Is(err, ak.ErrPrompt) {
		t.Errorf("err = %v, want ErrPrompt", err)
	}
}

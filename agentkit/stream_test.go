// Copyright (c) Microsoft. All rights reserved.

package agentkit_test

import (
	"context"
	"errors"
	"testing"

	ak "github.com/microsoft/ai-samples/go/agentkit"
)

func TestResponseStream_Collect(t *testing.T) {
	stream := ak.NewResponseStream(context.Background(), func(ctx context.Context, ch chan<- int) error {
		for i := 1; i <= 3; i++ {
			ch <- i
		}
		return nil
	})
	defer stream.Close()

	items, err := stream.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(items) != 3 || items[0] != 1 || items[2] != 3 {
		t.Errorf("items = %v", items)
	}
}

func TestResponseStream_ProducerError(t *testing.T) {
	wantErr := errors.New("boom")
	stream := ak.NewResponseStream(context.Background(), func(ctx context.Context, ch chan<- string) error {
		ch <- "partial"
		return wantErr
	})
	defer stream.Close()

	items, err := stream.Collect(context.Background())
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
	if len(items) != 1 || items[0] != "partial" {
		t.Errorf("items = %v, want [partial]", items)
	}
}

func TestResponseStream_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stream := ak.NewResponseStream(ctx, func(ctx context.Context, ch chan<- int) error {
		<-ctx.Done()
		return ctx.Err()
	})
	defer stream.Close()

	cancel()
	_, _, err := stream.Next(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestResponseStream_CloseTwice(t *testing.T) {
	stream := ak.NewResponseStream(context.Background(), func(ctx context.Context, ch chan<- int) error {
		ch <- 1
		return nil
	})

	if err := stream.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := stream.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestMapStream(t *testing.T) {
	src := ak.NewResponseStream(context.Background(), func(ctx context.Context, ch chan<- int) error {
		ch <- 2
		ch <- 3
		return nil
	})

	doubled := ak.MapStream(context.Background(), src, func(v int) int { return v * 2 })
	defer doubled.Close()

	items, err := doubled.Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0] != 4 || items[1] != 6 {
		t.Errorf("items = %v", items)
	}
}

func TestAgentResponseStream_FinalResponse(t *testing.T) {
	src := ak.NewResponseStream(context.Background(), func(ctx context.Context, ch chan<- ak.AgentResponseUpdate) error {
		ch <- ak.AgentResponseUpdate{Contents: ak.Contents{&ak.TextContent{Text: "Hello, "}}, Role: ak.RoleAssistant}
		ch <- ak.AgentResponseUpdate{Contents: ak.Contents{&ak.TextContent{Text: "world!"}}}
		return nil
	})

	stream := ak.NewAgentResponseStream(src)
	defer stream.Close()

	// Consume one update via Next, then let FinalResponse drain the rest.
	first, ok, err := stream.Next(context.Background())
	if err != nil || !ok {
		t.Fatalf("Next: ok=%v err=%v", ok, err)
	}
	if first.Text() != "Hello, " {
		t.Errorf("first chunk = %q", first.Text())
	}

	resp, err := stream.FinalResponse(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if resp.Text() != "Hello, world!" {
		t.Errorf("Text = %q", resp.Text())
	}
}

// Copyright (c) Microsoft. All rights reserved.

package agentkit_test

import (
	"context"
	"testing"

	ak "github.com/microsoft/ai-samples/go/agentkit"
)

func TestMergeChatOptions_NilSafe(t *testing.T) {
	if got := ak.MergeChatOptions(nil, nil); got == nil {
		t.Fatal("merge of nils should return empty options")
	}

	base := &ak.ChatOptions{Temperature: ak.Float(0.7)}
	got := ak.MergeChatOptions(base, nil)
	if got == base {
		t.Error("merge should copy, not alias base")
	}
	if got.Temperature == nil || *got.Temperature != 0.7 {
		t.Errorf("Temperature = %v", got.Temperature)
	}
}

func TestMergeChatOptions_OverrideWins(t *testing.T) {
	base := &ak.ChatOptions{
		Temperature: ak.Float(0.7),
		MaxTokens:   ak.Int(100),
		ToolChoice:  ak.ToolChoiceAuto,
	}
	override := &ak.ChatOptions{
		Temperature: ak.Float(0.1),
		ToolChoice:  ak.ToolChoiceRequired,
	}

	got := ak.MergeChatOptions(base, override)
	if *got.Temperature != 0.1 {
		t.Errorf("Temperature = %v, want 0.1", *got.Temperature)
	}
	if *got.MaxTokens != 100 {
		t.Errorf("MaxTokens = %v, want base value retained", *got.MaxTokens)
	}
	if got.ToolChoice != ak.ToolChoiceRequired {
		t.Errorf("ToolChoice = %v", got.ToolChoice)
	}
}

func TestMergeChatOptions_InstructionsConcatenate(t *testing.T) {
	base := &ak.ChatOptions{Instructions: "Be helpful."}
	override := &ak.ChatOptions{Instructions: "Be terse."}

	got := ak.MergeChatOptions(base, override)
	if got.Instructions != "Be helpful.\nBe terse." {
		t.Errorf("Instructions = %q", got.Instructions)
	}
}

func TestMergeChatOptions_ToolsMergeByName(t *testing.T) {
	echo := func(ctx context.Context, args struct{}) (any, error) { return "v1", nil }
	echo2 := func(ctx context.Context, args struct{}) (any, error) { return "v2", nil }

	base := &ak.ChatOptions{Tools: []ak.Tool{
		ak.NewTypedTool("echo", "v1", echo),
		ak.NewTypedTool("other", "keeps", echo),
	}}
	override := &ak.ChatOptions{Tools: []ak.Tool{
		ak.NewTypedTool("echo", "v2", echo2),
	}}

	got := ak.MergeChatOptions(base, override)
	if len(got.Tools) != 2 {
		t.Fatalf("got %d tools, want 2", len(got.Tools))
	}

	var echoTool ak.Tool
	for _, tool := range got.Tools {
		if tool.Name() == "echo" {
			echoTool = tool
		}
	}
	if echoTool == nil {
		t.Fatal("echo tool missing after merge")
	}
	if echoTool.Description() != "v2" {
		t.Errorf("echo description = %q, want override to win", echoTool.Description())
	}
}

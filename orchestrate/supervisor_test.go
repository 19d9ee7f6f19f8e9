// Copyright (c) Microsoft. All rights reserved.

package orchestrate_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	ak "github.com/microsoft/ai-samples/go/agentkit"
	"github.com/microsoft/ai-samples/go/orchestrate"
)

// sequenceClient replies with a fixed sequence of texts, one per call.
type sequenceClient struct {
	replies []string
	calls   int
}

func (c *sequenceClient) Response(_ context.Context, msgs []ak.Message, _ *ak.ChatOptions) (*ak.ChatResponse, error) {
	reply := c.replies[len(c.replies)-1]
	if c.calls < len(c.replies) {
		reply = c.replies[c.calls]
	}
	c.calls++
	return &ak.ChatResponse{Messages: []ak.Message{ak.NewAssistantMessage(reply)}}, nil
}

func (c *sequenceClient) StreamResponse(ctx context.Context, msgs []ak.Message, opts *ak.ChatOptions) (*ak.ResponseStream[ak.ChatResponseUpdate], error) {
	return ak.NewResponseStream(ctx, func(ctx context.Context, ch chan<- ak.ChatResponseUpdate) error {
		resp, err := c.Response(ctx, msgs, opts)
		if err != nil {
			return err
		}
		for _, m := range resp.Messages {
			ch <- ak.ChatResponseUpdate{Contents: m.Contents, Role: m.Role}
		}
		return nil
	}), nil
}

func TestSupervisor_DispatchesUntilFinish(t *testing.T) {
	generator := ak.NewAgent(
		&sequenceClient{replies: []string{"Recipe: flourless chocolate cake."}},
		ak.WithName("recipe_generator"),
		ak.WithDescription("Creates recipes"),
	)
	reviewer := ak.NewAgent(
		&sequenceClient{replies: []string{"Reviewed: the recipe is gluten free."}},
		ak.WithName("gluten_free_reviewer"),
		ak.WithDescription("Checks recipes for gluten"),
	)

	supervisorModel := &sequenceClient{replies: []string{
		"recipe_generator",
		"gluten_free_reviewer",
		"FINISH",
	}}

	s, err := orchestrate.NewSupervisor(supervisorModel, []*ak.Agent{generator, reviewer})
	if err != nil {
		t.Fatalf("NewSupervisor: %v", err)
	}

	result, err := s.Run(context.Background(), "Make me a gluten-free dessert")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.Transcript) != 2 {
		t.Fatalf("transcript = %d steps, want 2", len(result.Transcript))
	}
	if result.Transcript[0].Agent != "recipe_generator" {
		t.Errorf("step 0 = %q", result.Transcript[0].Agent)
	}
	if result.Transcript[1].Agent != "gluten_free_reviewer" {
		t.Errorf("step 1 = %q", result.Transcript[1].Agent)
	}
	if !strings.Contains(result.FinalText, "gluten free") {
		t.Errorf("FinalText = %q", result.FinalText)
	}
}

func TestSupervisor_SeesWorkerOutput(t *testing.T) {
	var supervisorPrompts []string
	supervisorModel := &promptRecordingClient{
		prompts: &supervisorPrompts,
		replies: []string{"worker", "FINISH"},
	}

	worker := ak.NewAgent(
		&sequenceClient{replies: []string{"worker output here"}},
		ak.WithName("worker"),
	)

	s, err := orchestrate.NewSupervisor(supervisorModel, []*ak.Agent{worker})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Run(context.Background(), "task"); err != nil {
		t.Fatal(err)
	}

	// The second supervisor prompt includes the worker's reply.
	if len(supervisorPrompts) != 2 {
		t.Fatalf("supervisor consulted %d times, want 2", len(supervisorPrompts))
	}
	if !strings.Contains(supervisorPrompts[1], "worker output here") {
		t.Errorf("second prompt missing worker output: %q", supervisorPrompts[1])
	}
}

func TestSupervisor_FinishWithProse(t *testing.T) {
	supervisorModel := &sequenceClient{replies: []string{
		"worker",
		"The request is fully handled. FINISH.",
	}}
	worker := ak.NewAgent(&sequenceClient{replies: []string{"done"}}, ak.WithName("worker"))

	s, err := orchestrate.NewSupervisor(supervisorModel, []*ak.Agent{worker})
	if err != nil {
		t.Fatal(err)
	}

	result, err := s.Run(context.Background(), "task")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Transcript) != 1 {
		t.Errorf("transcript = %d steps, want 1", len(result.Transcript))
	}
}

func TestSupervisor_LongestNameWins(t *testing.T) {
	planner := ak.NewAgent(&sequenceClient{replies: []string{"rough plan"}}, ak.WithName("planner"))
	tripPlanner := ak.NewAgent(&sequenceClient{replies: []string{"full itinerary"}}, ak.WithName("trip_planner"))

	supervisorModel := &sequenceClient{replies: []string{
		"Next up: Trip_Planner.",
		"FINISH",
	}}

	s, err := orchestrate.NewSupervisor(supervisorModel, []*ak.Agent{planner, tripPlanner})
	if err != nil {
		t.Fatal(err)
	}

	result, err := s.Run(context.Background(), "task")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Transcript) != 1 || result.Transcript[0].Agent != "trip_planner" {
		t.Errorf("transcript = %+v, want one trip_planner step", result.Transcript)
	}
}

func TestSupervisor_UnknownWorker(t *testing.T) {
	supervisorModel := &sequenceClient{replies: []string{"mystery_agent"}}
	worker := ak.NewAgent(&sequenceClient{replies: []string{"x"}}, ak.WithName("worker"))

	s, err := orchestrate.NewSupervisor(supervisorModel, []*ak.Agent{worker})
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.Run(context.Background(), "task")
	if !errors.Is(err, ak.ErrExecution) {
		t.Errorf("err = %v, want ErrExecution", err)
	}
}

func TestSupervisor_RoundLimit(t *testing.T) {
	supervisorModel := &sequenceClient{replies: []string{"worker"}}
	worker := ak.NewAgent(&sequenceClient{replies: []string{"more work"}}, ak.WithName("worker"))

	s, err := orchestrate.NewSupervisor(supervisorModel, []*ak.Agent{worker},
		orchestrate.WithMaxRounds(2),
	)
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.Run(context.Background(), "task")
	if !errors.Is(err, ak.ErrExecution) {
		t.Errorf("err = %v, want ErrExecution", err)
	}
}

func TestSupervisor_NoWorkers(t *testing.T) {
	if _, err := orchestrate.NewSupervisor(&sequenceClient{replies: []string{"FINISH"}}, nil); err == nil {
		t.Fatal("expected error for empty worker list")
	}
}

// promptRecordingClient records each prompt it receives and replies from a
// fixed sequence.
type promptRecordingClient struct {
	prompts *[]string
	replies []string
	calls   int
}

func (c *promptRecordingClient) Response(_ context.Context, msgs []ak.Message, _ *ak.ChatOptions) (*ak.ChatResponse, error) {
	*c.prompts = append(*c.prompts, msgs[len(msgs)-1].Text())
	reply := c.replies[len(c.replies)-1]
	if c.calls < len(c.replies) {
		reply = c.replies[c.calls]
	}
	c.calls++
	return &ak.ChatResponse{Messages: []ak.Message{ak.NewAssistantMessage(reply)}}, nil
}

func (c *promptRecordingClient) StreamResponse(ctx context.Context, msgs []ak.Message, opts *ak.ChatOptions) (*ak.ResponseStream[ak.ChatResponseUpdate], error) {
	return ak.NewResponseStream(ctx, func(ctx context.Context, ch chan<- ak.ChatResponseUpdate) error {
		resp, err := c.Response(ctx, msgs, opts)
		if err != nil {
			return err
		}
		for _, m := range resp.Messages {
			ch <- ak.ChatResponseUpdate{Contents: m.Contents, Role: m.Role}
		}
		return nil
	}), nil
}

// Copyright (c) Microsoft. All rights reserved.

package orchestrate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	ak "github.com/microsoft/ai-samples/go/agentkit"
)

// finishSignal is the reply the supervising model gives when the task is done.
const finishSignal = "FINISH"

// defaultMaxRounds bounds how many worker turns a supervised run may take.
const defaultMaxRounds = 10

// Supervisor coordinates worker agents by asking a supervising model which
// worker should act next. Workers share a single [ak.Session] so each sees
// the others' output.
type Supervisor struct {
	client    ak.ChatClient
	workers   map[string]*ak.Agent
	order     []string
	maxRounds int
}

// SupervisorOption configures a [Supervisor].
type SupervisorOption func(*Supervisor)

// WithMaxRounds bounds the number of worker turns per run.
func WithMaxRounds(n int) SupervisorOption {
	return func(s *Supervisor) { s.maxRounds = n }
}

// NewSupervisor creates a Supervisor that routes between the given workers
// using the client as the supervising model. Every worker must have a unique,
// non-empty name.
func NewSupervisor(client ak.ChatClient, workers []*ak.Agent, opts ...SupervisorOption) (*Supervisor, error) {
	s := &Supervisor{
		client:    client,
		workers:   make(map[string]*ak.Agent, len(workers)),
		maxRounds: defaultMaxRounds,
	}
	for _, w := range workers {
		name := w.Name()
		if name == "" {
			return nil, fmt.Errorf("supervised workers must be named")
		}
		if _, dup := s.workers[name]; dup {
			return nil, fmt.Errorf("duplicate worker name %q", name)
		}
		s.workers[name] = w
		s.order = append(s.order, name)
	}
	if len(s.order) == 0 {
		return nil, fmt.Errorf("supervisor needs at least one worker")
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run asks the supervising model which worker acts next until it answers
// FINISH, then returns the transcript.
func (s *Supervisor) Run(ctx context.Context, task string) (*Result, error) {
	session := ak.NewSession()
	result := &Result{}
	transcript := []string{"User request: " + task}

	for round := 0; round < s.maxRounds; round++ {
		next, err := s.pickNext(ctx, transcript)
		if err != nil {
			return nil, err
		}
		if next == finishSignal {
			return result, nil
		}

		worker, ok := s.workers[next]
		if !ok {
			return nil, fmt.Errorf("%w: supervisor chose unknown worker %q", ak.ErrExecution, next)
		}

		slog.InfoContext(ctx, "supervisor dispatch", "worker", next, "round", round)

		resp, err := worker.Run(ctx,
			[]ak.Message{ak.NewUserMessage(task)},
			ak.WithSession(session),
		)
		if err != nil {
			return nil, fmt.Errorf("worker %q: %w", next, err)
		}

		result.Transcript = append(result.Transcript, Step{Agent: next, Response: resp})
		result.FinalText = resp.Text()
		transcript = append(transcript, fmt.Sprintf("%s said: %s", next, resp.Text()))
	}

	return nil, fmt.Errorf("%w: supervisor round limit reached (%d)", ak.ErrExecution, s.maxRounds)
}

// pickNext asks the supervising model for the next worker name or FINISH.
func (s *Supervisor) pickNext(ctx context.Context, transcript []string) (string, error) {
	var b strings.Builder
	b.WriteString("You are a supervisor coordinating the following workers:\n")
	for _, name := range s.order {
		b.WriteString("- ")
		b.WriteString(name)
		if d := s.workers[name].Description(); d != "" {
			b.WriteString(": ")
			b.WriteString(d)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nConversation so far:\n")
	for _, line := range transcript {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\nRespond with exactly one worker name to act next, or ")
	b.WriteString(finishSignal)
	b.WriteString(" if the request is fully handled.")

	resp, err := s.client.Response(ctx, []ak.Message{ak.NewUserMessage(b.String())}, nil)
	if err != nil {
		return "", fmt.Errorf("supervisor model: %w", err)
	}

	choice := strings.TrimSpace(resp.Text())

	// An exact worker name wins over everything else.
	for _, name := range s.order {
		if strings.EqualFold(choice, name) {
			return name, nil
		}
	}

	if strings.Contains(strings.ToUpper(choice), finishSignal) {
		return finishSignal, nil
	}

	// Tolerate surrounding prose by matching a known worker name. When
	// several names appear (one may be a substring of another), take the
	// longest.
	lower := strings.ToLower(choice)
	var best string
	for _, name := range s.order {
		if strings.Contains(lower, strings.ToLower(name)) && len(name) > len(best) {
			best = name
		}
	}
	if best != "" {
		return best, nil
	}
	return choice, nil
}

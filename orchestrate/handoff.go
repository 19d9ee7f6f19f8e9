// Copyright (c) Microsoft. All rights reserved.

package orchestrate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	ak "github.com/microsoft/ai-samples/go/agentkit"
)

// defaultMaxHandoffs bounds how many times control may change hands in one run.
const defaultMaxHandoffs = 8

// Step records one agent's turn in an orchestration run.
type Step struct {
	Agent    string
	Response *ak.AgentResponse
}

// Result is the outcome of an orchestration run.
type Result struct {
	// FinalText is the text of the last agent response.
	FinalText string

	// Transcript lists every agent turn in order.
	Transcript []Step
}

// Handoff routes a conversation between peer agents. Each agent is given a
// transfer tool per peer; calling one hands the conversation to that peer.
type Handoff struct {
	agents      map[string]*ak.Agent
	order       []string
	initial     string
	maxHandoffs int
}

// HandoffOption configures a [Handoff].
type HandoffOption func(*Handoff)

// WithMaxHandoffs bounds the number of control transfers per run.
func WithMaxHandoffs(n int) HandoffOption {
	return func(h *Handoff) { h.maxHandoffs = n }
}

// NewHandoff creates a Handoff starting with the named initial agent.
// Every agent must have a unique, non-empty name.
func NewHandoff(initial string, agents []*ak.Agent, opts ...HandoffOption) (*Handoff, error) {
	h := &Handoff{
		agents:      make(map[string]*ak.Agent, len(agents)),
		initial:     initial,
		maxHandoffs: defaultMaxHandoffs,
	}
	for _, a := range agents {
		name := a.Name()
		if name == "" {
			return nil, fmt.Errorf("handoff agents must be named")
		}
		if _, dup := h.agents[name]; dup {
			return nil, fmt.Errorf("duplicate agent name %q", name)
		}
		h.agents[name] = a
		h.order = append(h.order, name)
	}
	if _, ok := h.agents[initial]; !ok {
		return nil, fmt.Errorf("initial agent %q not found", initial)
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Run drives the conversation until an agent answers without handing off, or
// the handoff limit is reached.
func (h *Handoff) Run(ctx context.Context, messages []ak.Message) (*Result, error) {
	conversation := append([]ak.Message{}, messages...)
	active := h.initial
	result := &Result{}

	for hop := 0; hop <= h.maxHandoffs; hop++ {
		agent := h.agents[active]

		var target string
		tools := h.transferTools(active, &target)

		resp, err := agent.Run(ctx, conversation, ak.WithRunTools(tools...))
		if err != nil {
			return nil, fmt.Errorf("agent %q: %w", active, err)
		}

		result.Transcript = append(result.Transcript, Step{Agent: active, Response: resp})
		conversation = append(conversation, labelMessages(resp.Messages, active)...)

		if target == "" {
			result.FinalText = resp.Text()
			return result, nil
		}

		slog.InfoContext(ctx, "handoff", "from", active, "to", target)
		active = target
	}

	return nil, fmt.Errorf("%w: handoff limit reached (%d)", ak.ErrExecution, h.maxHandoffs)
}

// transferTools builds one transfer tool per peer of the active agent.
// Invoking a tool records the target for the coordinator to act on.
func (h *Handoff) transferTools(active string, target *string) []ak.Tool {
	var tools []ak.Tool
	for _, name := range h.order {
		if name == active {
			continue
		}
		peer := name
		desc := fmt.Sprintf("Transfer the conversation to %s.", peer)
		if d := h.agents[peer].Description(); d != "" {
			desc = fmt.Sprintf("Transfer the conversation to %s: %s", peer, d)
		}
		tools = append(tools, ak.NewTypedTool(
			"transfer_to_"+sanitizeToolName(peer),
			desc,
			func(ctx context.Context, args struct{}) (any, error) {
				*target = peer
				return "Transferring to " + peer + ".", nil
			},
		))
	}
	return tools
}

// labelMessages stamps the author name on response messages so later agents
// can tell who said what.
func labelMessages(messages []ak.Message, author string) []ak.Message {
	out := make([]ak.Message, len(messages))
	for i, m := range messages {
		if m.AuthorName == "" {
			m.AuthorName = author
		}
		out[i] = m
	}
	return out
}

// sanitizeToolName makes an agent name safe for a function name.
func sanitizeToolName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

// Copyright (c) Microsoft. All rights reserved.

package agentkit

import (
	"context"
	"fmt"
)

// Chain composes a [PromptTemplate], a [ChatClient], and optional output
// transforms into a single runnable pipeline:
//
//	chain := agentkit.NewChain(tmpl, client,
//	    agentkit.WithChainTransform(strings.ToUpper),
//	)
//	out, err := chain.Run(ctx, agentkit.Vars{"topic": "bears"})
//
// Chains can feed each other: use the output of one Run as a variable for the
// next template.
type Chain struct {
	template   *PromptTemplate
	client     ChatClient
	options    *ChatOptions
	transforms []func(string) string
}

// ChainOption configures a [Chain].
type ChainOption func(*Chain)

// WithChainOptions sets the [ChatOptions] used for every chain run.
func WithChainOptions(opts *ChatOptions) ChainOption {
	return func(c *Chain) { c.options = opts }
}

// WithChainTransform appends a transform applied to the model output text.
// Transforms run in the order they were added.
func WithChainTransform(fn func(string) string) ChainOption {
	return func(c *Chain) { c.transforms = append(c.transforms, fn) }
}

// NewChain creates a Chain from a template and client.
func NewChain(template *PromptTemplate, client ChatClient, opts ...ChainOption) *Chain {
	c := &Chain{template: template, client: client}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run renders the template with vars, sends it to the model, and returns the
// transformed output text.
func (c *Chain) Run(ctx context.Context, vars Vars) (string, error) {
	msg, err := c.template.RenderMessage(vars)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Response(ctx, []Message{msg}, c.options)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecution, err)
	}

	return c.applyTransforms(resp.Text()), nil
}

// Stream renders the template with vars and streams the model output. Output
// transforms apply per chunk, so transforms must be safe on partial text.
func (c *Chain) Stream(ctx context.Context, vars Vars) (*ResponseStream[string], error) {
	msg, err := c.template.RenderMessage(vars)
	if err != nil {
		return nil, err
	}

	chatStream, err := c.client.StreamResponse(ctx, []Message{msg}, c.options)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecution, err)
	}

	return MapStream(ctx, chatStream, func(u ChatResponseUpdate) string {
		return c.applyTransforms(u.Text())
	}), nil
}

func (c *Chain) applyTransforms(text string) string {
	for _, fn := range c.transforms {
		text = fn(text)
	}
	return text
}

// Copyright (c) Microsoft. All rights reserved.

package agentkit

import (
	"fmt"
	"regexp"
)

var promptVarPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// PromptTemplate renders a prompt string with {variable} placeholders.
//
//	tmpl := agentkit.NewPromptTemplate("Tell me a joke about {topic}")
//	prompt, err := tmpl.Render(agentkit.Vars{"topic": "bears"})
type PromptTemplate struct {
	template  string
	variables []string
}

// Vars holds values for template variables.
type Vars map[string]any

// NewPromptTemplate parses a template and records its {variable} placeholders.
func NewPromptTemplate(template string) *PromptTemplate {
	matches := promptVarPattern.FindAllStringSubmatch(template, -1)
	seen := make(map[string]bool, len(matches))
	var vars []string
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			vars = append(vars, m[1])
		}
	}
	return &PromptTemplate{template: template, variables: vars}
}

// Variables returns the placeholder names found in the template, in order of
// first appearance.
func (t *PromptTemplate) Variables() []string {
	out := make([]string, len(t.variables))
	copy(out, t.variables)
	return out
}

// Render substitutes the given values into the template. All placeholders must
// be provided; a missing variable returns an error wrapping [ErrPrompt].
func (t *PromptTemplate) Render(vars Vars) (string, error) {
	for _, name := range t.variables {
		if _, ok := vars[name]; !ok {
			return "", fmt.Errorf("%w: missing variable %q", ErrPrompt, name)
		}
	}
	return promptVarPattern.ReplaceAllStringFunc(t.template, func(match string) string {
		name := match[1 : len(match)-1]
		return fmt.Sprint(vars[name])
	}), nil
}

// RenderMessage renders the template and wraps the result in a user [Message].
func (t *PromptTemplate) RenderMessage(vars Vars) (Message, error) {
	text, err := t.Render(vars)
	if err != nil {
		return Message{}, err
	}
	return NewUserMessage(text), nil
}

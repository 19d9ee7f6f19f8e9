// Copyright (c) Microsoft. All rights reserved.

package agentkit

// ToolChoice controls how the model selects tools.
type ToolChoice string

const (
	ToolChoiceAuto     ToolChoice = "auto"
	ToolChoiceRequired ToolChoice = "required"
	ToolChoiceNone     ToolChoice = "none"
)

// ChatOptions configures a single chat completion request.
// Pointer fields use nil to represent "unset" (use provider default).
type ChatOptions struct {
	Temperature    *float64
	TopP           *float64
	MaxTokens      *int
	Stop           []string
	Seed           *int
	Tools          []Tool
	ToolChoice     ToolChoice
	ResponseFormat any // JSON Schema object for structured output
	Instructions   string
}

// Float pins a float64 literal so it can be used as an optional option field.
func Float(v float64) *float64 { return &v }

// Int pins an int literal so it can be used as an optional option field.
func Int(v int) *int { return &v }

// MergeChatOptions produces a new ChatOptions by overlaying override values
// onto base. Nil or zero-value fields in override do not overwrite base.
// Tools are merged by name (override replaces same-named tools).
// Instructions are concatenated.
func MergeChatOptions(base, override *ChatOptions) *ChatOptions {
	if base == nil {
		if override == nil {
			return &ChatOptions{}
		}
		cp := *override
		return &cp
	}
	if override == nil {
		cp := *base
		return &cp
	}

	merged := *base

	if override.Temperature != nil {
		merged.Temperature = override.Temperature
	}
	if override.TopP != nil {
		merged.TopP = override.TopP
	}
	if override.MaxTokens != nil {
		merged.MaxTokens = override.MaxTokens
	}
	if len(override.Stop) > 0 {
		merged.Stop = override.Stop
	}
	if override.Seed != nil {
		merged.Seed = override.Seed
	}
	if override.ToolChoice != "" {
		merged.ToolChoice = override.ToolChoice
	}
	if override.ResponseFormat != nil {
		merged.ResponseFormat = override.ResponseFormat
	}

	// Instructions: concatenate
	if override.Instructions != "" {
		if merged.Instructions != "" {
			merged.Instructions += "\n" + override.Instructions
		} else {
			merged.Instructions = override.Instructions
		}
	}

	// Tools: merge by name, base order first
	if len(override.Tools) > 0 {
		byName := make(map[string]Tool, len(merged.Tools)+len(override.Tools))
		for _, t := range merged.Tools {
			byName[t.Name()] = t
		}
		for _, t := range override.Tools {
			byName[t.Name()] = t
		}
		tools := make([]Tool, 0, len(byName))
		seen := make(map[string]bool, len(byName))
		for _, t := range merged.Tools {
			if !seen[t.Name()] {
				tools = append(tools, byName[t.Name()])
				seen[t.Name()] = true
			}
		}
		for _, t := range override.Tools {
			if !seen[t.Name()] {
				tools = append(tools, t)
				seen[t.Name()] = true
			}
		}
		merged.Tools = tools
	}

	return &merged
}

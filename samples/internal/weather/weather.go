// Copyright (c) Microsoft. All rights reserved.

// Package weather provides the mock weather tool shared by the tool-calling
// samples and the MCP weather server.
package weather

import (
	"context"
	"fmt"
	"math/rand"

	ak "github.com/microsoft/ai-samples/go/agentkit"
)

var conditions = []string{"sunny", "cloudy", "rainy", "stormy", "windy", "foggy"}

// Report is a simulated weather observation.
type Report struct {
	Location    string `json:"location"`
	Condition   string `json:"condition"`
	Temperature int    `json:"temperature_celsius"`
	Humidity    int    `json:"humidity_percent"`
}

// Lookup returns a random plausible report for the location: one of the
// conditions above, 15-35 degrees Celsius, 30-90% humidity.
func Lookup(location string) Report {
	return Report{
		Location:    location,
		Condition:   conditions[rand.Intn(len(conditions))],
		Temperature: 15 + rand.Intn(21),
		Humidity:    30 + rand.Intn(61),
	}
}

// Summary renders a report as a single human-readable line.
func (r Report) Summary() string {
	return fmt.Sprintf("The weather in %s is %s, %d°C with %d%% humidity.",
		r.Location, r.Condition, r.Temperature, r.Humidity)
}

// Tool returns the mock weather lookup as an [agentkit.Tool].
func Tool() ak.Tool {
	return ak.NewTypedTool("get_weather",
		"Get the current weather for a location.",
		func(ctx context.Context, args struct {
			Location string `json:"location" jsonschema:"description=City name or location,required"`
		}) (any, error) {
			return Lookup(args.Location).Summary(), nil
		},
	)
}

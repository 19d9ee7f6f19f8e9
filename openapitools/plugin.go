// Copyright (c) Microsoft. All rights reserved.

// Package openapitools loads an OpenAPI description and exposes its
// operations as [agentkit.Tool] values, so a REST API plugs into an agent
// exactly like local functions:
//
//	plugin, err := openapitools.Load(ctx, "https://calculator.example.com/openapi.json")
//	agent := agentkit.NewAgent(client, agentkit.WithTools(plugin.Tools()...))
//
// Path and query parameters and JSON request-body properties become tool
// arguments; header and cookie parameters are not exposed to the model.
package openapitools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	ak "github.com/microsoft/ai-samples/go/agentkit"
)

// maxResponseBytes caps how much of an API response is returned to the model.
const maxResponseBytes = 1 << 20

// Option configures Load.
type Option func(*config)

type config struct {
	httpClient *http.Client
	baseURL    string
}

// WithHTTPClient sets the HTTP client used to fetch the description and to
// invoke the API.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *config) { cfg.httpClient = c }
}

// WithBaseURL overrides the server URL from the description.
func WithBaseURL(u string) Option {
	return func(cfg *config) { cfg.baseURL = u }
}

// Plugin is a set of tools backed by one REST API.
type Plugin struct {
	title   string
	baseURL string
	tools   []ak.Tool
}

// Title returns the API title from the description's info block.
func (p *Plugin) Title() string { return p.title }

// Tools returns the API operations wrapped as [agentkit.Tool] values.
func (p *Plugin) Tools() []ak.Tool {
	return append([]ak.Tool{}, p.tools...)
}

// Load fetches an OpenAPI JSON description from specURL and wraps each
// operation as a tool. The API base URL comes from the description's first
// server entry, resolved against specURL, unless [WithBaseURL] overrides it.
func Load(ctx context.Context, specURL string, opts ...Option) (*Plugin, error) {
	cfg := &config{httpClient: http.DefaultClient}
	for _, o := range opts {
		o(cfg)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, specURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build spec request: %w", err)
	}
	resp, err := cfg.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch openapi description: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch openapi description: %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read openapi description: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse openapi description: %w", err)
	}

	baseURL := cfg.baseURL
	if baseURL == "" {
		baseURL, err = resolveBaseURL(specURL, doc)
		if err != nil {
			return nil, err
		}
	}
	baseURL = strings.TrimRight(baseURL, "/")

	plugin := &Plugin{title: doc.Info.Title, baseURL: baseURL}

	paths := make([]string, 0, len(doc.Paths))
	for path := range doc.Paths {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		for _, entry := range doc.Paths[path].operations() {
			tool, err := newRestTool(cfg.httpClient, baseURL, entry.method, path, entry.op)
			if err != nil {
				return nil, fmt.Errorf("operation %s %s: %w", entry.method, path, err)
			}
			plugin.tools = append(plugin.tools, tool)
		}
	}
	if len(plugin.tools) == 0 {
		return nil, fmt.Errorf("openapi description at %q has no operations", specURL)
	}
	return plugin, nil
}

// resolveBaseURL combines the description's first server entry with the URL
// the description was fetched from. A relative server URL (or none) resolves
// against the description's origin.
func resolveBaseURL(specURL string, doc document) (string, error) {
	spec, err := url.Parse(specURL)
	if err != nil {
		return "", fmt.Errorf("parse spec url: %w", err)
	}
	if len(doc.Servers) == 0 {
		return spec.Scheme + "://" + spec.Host, nil
	}
	server, err := url.Parse(doc.Servers[0].URL)
	if err != nil {
		return "", fmt.Errorf("parse server url %q: %w", doc.Servers[0].URL, err)
	}
	return spec.ResolveReference(server).String(), nil
}

// document models the subset of an OpenAPI v3 description needed to expose
// operations as tools. Schema fragments are kept as raw JSON and passed
// through to the model unchanged.
type document struct {
	Info struct {
		Title string `json:"title"`
	} `json:"info"`
	Servers []struct {
		URL string `json:"url"`
	} `json:"servers"`
	Paths map[string]pathItem `json:"paths"`
}

type pathItem struct {
	Get    *operation `json:"get"`
	Put    *operation `json:"put"`
	Post   *operation `json:"post"`
	Delete *operation `json:"delete"`
	Patch  *operation `json:"patch"`
}

type methodOperation struct {
	method string
	op     *operation
}

func (p pathItem) operations() []methodOperation {
	var ops []methodOperation
	for _, entry := range []methodOperation{
		{http.MethodGet, p.Get},
		{http.MethodPut, p.Put},
		{http.MethodPost, p.Post},
		{http.MethodDelete, p.Delete},
		{http.MethodPatch, p.Patch},
	} {
		if entry.op != nil {
			ops = append(ops, entry)
		}
	}
	return ops
}

type operation struct {
	OperationID string       `json:"operationId"`
	Summary     string       `json:"summary"`
	Description string       `json:"description"`
	Parameters  []parameter  `json:"parameters"`
	RequestBody *requestBody `json:"requestBody"`
}

type parameter struct {
	Name        string          `json:"name"`
	In          string          `json:"in"`
	Required    bool            `json:"required"`
	Description string          `json:"description"`
	Schema      json.RawMessage `json:"schema"`
}

type requestBody struct {
	Required bool `json:"required"`
	Content  map[string]struct {
		Schema json.RawMessage `json:"schema"`
	} `json:"content"`
}

// restTool proxies an [agentkit.Tool] invocation to one REST operation.
type restTool struct {
	httpClient *http.Client
	method     string
	baseURL    string
	path       string

	name        string
	description string
	schema      json.RawMessage

	pathParams  []string
	queryParams []string
	bodyParams  []string
}

var _ ak.Tool = (*restTool)(nil)

func newRestTool(httpClient *http.Client, baseURL, method, path string, op *operation) (*restTool, error) {
	t := &restTool{
		httpClient:  httpClient,
		method:      method,
		baseURL:     baseURL,
		path:        path,
		name:        op.OperationID,
		description: op.Summary,
	}
	if t.name == "" {
		t.name = deriveName(method, path)
	}
	if t.description == "" {
		t.description = op.Description
	}
	if t.description == "" {
		t.description = fmt.Sprintf("%s %s", method, path)
	}

	properties := map[string]json.RawMessage{}
	var required []string

	for _, p := range op.Parameters {
		switch p.In {
		case "path":
			t.pathParams = append(t.pathParams, p.Name)
		case "query":
			t.queryParams = append(t.queryParams, p.Name)
		default:
			continue
		}
		schema, err := describeSchema(p.Schema, p.Description)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", p.Name, err)
		}
		properties[p.Name] = schema
		// Path parameters are always required.
		if p.Required || p.In == "path" {
			required = append(required, p.Name)
		}
	}

	if op.RequestBody != nil {
		content, ok := op.RequestBody.Content["application/json"]
		if ok && len(content.Schema) > 0 {
			var body struct {
				Properties map[string]json.RawMessage `json:"properties"`
				Required   []string                   `json:"required"`
			}
			if err := json.Unmarshal(content.Schema, &body); err != nil {
				return nil, fmt.Errorf("request body schema: %w", err)
			}
			for name, schema := range body.Properties {
				properties[name] = schema
				t.bodyParams = append(t.bodyParams, name)
			}
			required = append(required, body.Required...)
		}
	}
	sort.Strings(t.bodyParams)

	schemaDoc := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		sort.Strings(required)
		schemaDoc["required"] = required
	}
	schema, err := json.Marshal(schemaDoc)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	t.schema = schema
	return t, nil
}

// deriveName builds a function name for an operation without an operationId,
// e.g. GET /squares/{n} becomes get_squares_n.
func deriveName(method, path string) string {
	name := strings.ToLower(method) + strings.NewReplacer(
		"/", "_",
		"{", "",
		"}", "",
		"-", "_",
		".", "_",
	).Replace(path)
	return strings.Trim(name, "_")
}

// describeSchema returns the parameter schema with the parameter description
// filled in when the schema itself carries none.
func describeSchema(schema json.RawMessage, description string) (json.RawMessage, error) {
	if len(schema) == 0 {
		schema = json.RawMessage(`{"type":"string"}`)
	}
	if description == "" {
		return schema, nil
	}
	var m map[string]any
	if err := json.Unmarshal(schema, &m); err != nil {
		return nil, err
	}
	if _, ok := m["description"]; !ok {
		m["description"] = description
	}
	return json.Marshal(m)
}

func (t *restTool) Name() string                { return t.name }
func (t *restTool) Description() string         { return t.description }
func (t *restTool) Parameters() json.RawMessage { return t.schema }

// Invoke performs the HTTP request for the operation and returns the
// response body text.
func (t *restTool) Invoke(ctx context.Context, args json.RawMessage) (any, error) {
	arguments := map[string]any{}
	if len(args) > 0 {
		if err := json.Unmarshal(args, &arguments); err != nil {
			return nil, &ak.ToolError{
				ToolName: t.name,
				Message:  "invalid arguments: " + err.Error(),
				Err:      ak.ErrToolExecution,
			}
		}
	}

	path := t.path
	for _, name := range t.pathParams {
		v, ok := arguments[name]
		if !ok {
			return nil, &ak.ToolError{
				ToolName: t.name,
				Message:  fmt.Sprintf("missing path parameter %q", name),
				Err:      ak.ErrToolExecution,
			}
		}
		path = strings.ReplaceAll(path, "{"+name+"}", url.PathEscape(fmt.Sprint(v)))
	}

	query := url.Values{}
	for _, name := range t.queryParams {
		if v, ok := arguments[name]; ok {
			query.Set(name, fmt.Sprint(v))
		}
	}

	endpoint := t.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if len(t.bodyParams) > 0 {
		payload := map[string]any{}
		for _, name := range t.bodyParams {
			if v, ok := arguments[name]; ok {
				payload[name] = v
			}
		}
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request body for %q: %w", t.name, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, t.method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request for %q: %w", t.name, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, &ak.ToolError{
			ToolName: t.name,
			Message:  "request failed: " + err.Error(),
			Err:      ak.ErrToolExecution,
		}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &ak.ToolError{
			ToolName: t.name,
			Message:  "read response: " + err.Error(),
			Err:      ak.ErrToolExecution,
		}
	}

	text := strings.TrimSpace(string(data))
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &ak.ToolError{
			ToolName: t.name,
			Message:  fmt.Sprintf("API returned %s: %s", resp.Status, text),
			Err:      ak.ErrToolExecution,
		}
	}
	return text, nil
}

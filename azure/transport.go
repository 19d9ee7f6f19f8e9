// Copyright (c) Microsoft. All rights reserved.

package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"

	ak "github.com/microsoft/ai-samples/go/agentkit"
)

// tokenScope is the Entra ID scope for Azure OpenAI.
const tokenScope = "https://cognitiveservices.azure.com/.default"

// transport is an unexported interface for HTTP communication.
// The default implementation uses net/http; tests inject a mock.
type transport interface {
	do(ctx context.Context, operation string, body any) (*http.Response, error)
}

// httpTransport sends requests to a single Azure OpenAI deployment.
type httpTransport struct {
	client     *http.Client
	endpoint   string
	deployment string
	cfg        *clientConfig
}

func newHTTPTransport(endpoint, deployment string, cfg *clientConfig) *httpTransport {
	t := &httpTransport{
		client:     cfg.httpClient,
		endpoint:   strings.TrimRight(endpoint, "/"),
		deployment: deployment,
		cfg:        cfg,
	}
	if t.client == nil {
		t.client = http.DefaultClient
	}
	if t.cfg.apiVersion == "" {
		t.cfg.apiVersion = defaultAPIVersion
	}
	return t
}

// requestURL builds the deployment-scoped URL for an operation, e.g.
// "chat/completions" or "embeddings".
func (t *httpTransport) requestURL(operation string) string {
	return fmt.Sprintf("%s/openai/deployments/%s/%s?api-version=%s",
		t.endpoint,
		url.PathEscape(t.deployment),
		operation,
		url.QueryEscape(t.cfg.apiVersion),
	)
}

func (t *httpTransport) do(ctx context.Context, operation string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.requestURL(operation), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	switch {
	case t.cfg.credential != nil:
		token, err := t.cfg.credential.GetToken(ctx, policy.TokenRequestOptions{
			Scopes: []string{tokenScope},
		})
		if err != nil {
			return nil, fmt.Errorf("%w: get entra token: %v", ak.ErrAuth, err)
		}
		slog.DebugContext(ctx, "using Entra ID token authentication", "token_expires_on", token.ExpiresOn)
		req.Header.Set("Authorization", "Bearer "+token.Token)
	case t.cfg.apiKey != "":
		req.Header.Set("api-key", t.cfg.apiKey)
	}

	for k, v := range t.cfg.headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, parseErrorResponse(resp)
	}

	return resp, nil
}

// parseErrorResponse reads an error response body and returns a typed error.
func parseErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var apiErr struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	_ = json.Unmarshal(body, &apiErr)

	msg := apiErr.Error.Message
	if msg == "" {
		msg = string(body)
	}

	svcErr := &ak.ServiceError{
		StatusCode: resp.StatusCode,
		Message:    msg,
		Code:       apiErr.Error.Code,
	}

	switch {
	case apiErr.Error.Code == "content_filter":
		svcErr.Err = ak.ErrContentFilter
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		svcErr.Err = ak.ErrAuth
	case resp.StatusCode == http.StatusBadRequest:
		svcErr.Err = ak.ErrInvalidRequest
	default:
		svcErr.Err = ak.ErrService
	}

	return svcErr
}

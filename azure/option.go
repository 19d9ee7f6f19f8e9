// Copyright (c) Microsoft. All rights reserved.

package azure

import (
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// defaultAPIVersion is used when no explicit api-version is configured.
const defaultAPIVersion = "2024-10-21"

// clientConfig holds resolved configuration shared by chat and embedding clients.
type clientConfig struct {
	apiKey     string
	apiVersion string
	credential azcore.TokenCredential
	httpClient *http.Client
	headers    map[string]string
}

// Option configures an Azure OpenAI client.
type Option func(*clientConfig)

// WithAPIKey sets the API key sent in the api-key header.
func WithAPIKey(key string) Option {
	return func(c *clientConfig) { c.apiKey = key }
}

// WithAPIVersion overrides the api-version query parameter.
func WithAPIVersion(version string) Option {
	return func(c *clientConfig) { c.apiVersion = version }
}

// WithCredential enables Microsoft Entra ID token authentication. When set,
// the client obtains and refreshes tokens instead of sending an API key.
func WithCredential(cred azcore.TokenCredential) Option {
	return func(c *clientConfig) { c.credential = cred }
}

// WithHTTPClient provides a custom http.Client for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) { c.httpClient = client }
}

// WithHeaders adds custom headers to every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *clientConfig) { c.headers = headers }
}

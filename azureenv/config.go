// Copyright (c) Microsoft. All rights reserved.

// Package azureenv loads Azure OpenAI configuration from the environment
// (with .env file support) and builds ready-to-use clients from it.
//
// Expected variables:
//
//	AZURE_OPENAI_ENDPOINT                   https://<resource>.openai.azure.com/
//	AZURE_OPENAI_DEPLOYMENT_NAME            chat deployment, e.g. gpt-4o
//	AZURE_OPENAI_API_VERSION                e.g. 2024-10-21
//	AZURE_OPENAI_API_KEY                    optional; omit to use Entra ID
//	AZURE_OPENAI_EMBEDDING_DEPLOYMENT_NAME  optional; needed for embeddings
package azureenv

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/microsoft/ai-samples/go/azure"
)

// Config holds Azure OpenAI connection settings.
type Config struct {
	Endpoint            string `env:"AZURE_OPENAI_ENDPOINT,required,notEmpty"`
	DeploymentName      string `env:"AZURE_OPENAI_DEPLOYMENT_NAME,required,notEmpty"`
	APIVersion          string `env:"AZURE_OPENAI_API_VERSION"`
	APIKey              string `env:"AZURE_OPENAI_API_KEY"`
	EmbeddingDeployment string `env:"AZURE_OPENAI_EMBEDDING_DEPLOYMENT_NAME"`
}

// Load reads a .env file if present, then parses the environment into a
// Config. A missing .env file is not an error; missing required variables are.
func Load() (*Config, error) {
	// Overrides nothing already exported in the environment.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// clientOptions builds the shared option list: explicit API key if set,
// otherwise DefaultAzureCredential.
func (c *Config) clientOptions() ([]azure.Option, error) {
	var opts []azure.Option
	if c.APIVersion != "" {
		opts = append(opts, azure.WithAPIVersion(c.APIVersion))
	}
	if c.APIKey != "" {
		opts = append(opts, azure.WithAPIKey(c.APIKey))
		return opts, nil
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("create default azure credential: %w", err)
	}
	opts = append(opts, azure.WithCredential(cred))
	return opts, nil
}

// ChatClient builds an [azure.ChatClient] from the configuration.
func (c *Config) ChatClient() (*azure.ChatClient, error) {
	opts, err := c.clientOptions()
	if err != nil {
		return nil, err
	}
	return azure.NewChatClient(c.Endpoint, c.DeploymentName, opts...), nil
}

// EmbeddingClient builds an [azure.EmbeddingClient] from the configuration.
// It requires AZURE_OPENAI_EMBEDDING_DEPLOYMENT_NAME.
func (c *Config) EmbeddingClient() (*azure.EmbeddingClient, error) {
	if c.EmbeddingDeployment == "" {
		return nil, fmt.Errorf("AZURE_OPENAI_EMBEDDING_DEPLOYMENT_NAME is not set")
	}
	opts, err := c.clientOptions()
	if err != nil {
		return nil, err
	}
	return azure.NewEmbeddingClient(c.Endpoint, c.EmbeddingDeployment, opts...), nil
}

// Copyright (c) Microsoft. All rights reserved.

// Package azure provides [agentkit.ChatClient] and embedding client
// implementations backed by the Azure OpenAI service.
//
// Requests target a deployment-scoped endpoint:
//
//	{endpoint}/openai/deployments/{deployment}/chat/completions?api-version={version}
//
// Authentication uses either an API key (api-key header) or an
// [azcore.TokenCredential] such as azidentity.NewDefaultAzureCredential:
//
//	client := azure.NewChatClient(endpoint, deployment,
//	    azure.WithAPIKey(os.Getenv("AZURE_OPENAI_API_KEY")),
//	)
//	agent := agentkit.NewAgent(client)
package azure

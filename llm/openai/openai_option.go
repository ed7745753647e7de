package openai

import (
	"net/http"
)

type options struct {
	token          string
	baseURL        string
	organization   string
	model          string
	embeddingModel string
	httpClient     *http.Client
}

type Option func(*options)

// WithToken sets the API token (key).
func WithToken(token string) Option {
	return func(o *options) {
		o.token = token
	}
}

// WithBaseURL sets a custom API endpoint, e.g. an OpenAI-compatible gateway.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithOrganization sets the organization id sent with requests.
func WithOrganization(organization string) Option {
	return func(o *options) {
		o.organization = organization
	}
}

// WithModel sets the chat model used for generation.
func WithModel(model string) Option {
	return func(o *options) {
		o.model = model
	}
}

// WithEmbeddingModel sets the model used for embeddings.
func WithEmbeddingModel(model string) Option {
	return func(o *options) {
		o.embeddingModel = model
	}
}

// WithHTTPClient sets the HTTP client, typically to apply a request timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

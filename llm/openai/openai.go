// Package openai adapts any OpenAI-compatible endpoint to the pipeline's
// embedding and generation boundaries.
package openai

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	goopenai "github.com/sashabaranov/go-openai"

	"github.com/dRAOUF1/RAG-Assistant/rag"
)

var (
	_ rag.Embedder  = (*Client)(nil)
	_ rag.Generator = (*Client)(nil)

	_defaultModel          = "gpt-4o-mini"
	_defaultEmbeddingModel = string(goopenai.SmallEmbedding3)
	_defaultTimeout        = 60 * time.Second
)

// Client implements both external-service boundaries over one API client.
type Client struct {
	client         *goopenai.Client
	model          string
	embeddingModel string
}

// newClient creates an instance of the internal client.
func newClient(opt *options) (*goopenai.Client, error) {
	if len(opt.token) == 0 {
		return nil, errors.New("missing the API key, set it in the OPENAI_API_KEY environment variable")
	}

	config := goopenai.DefaultConfig(opt.token)
	if opt.baseURL != "" {
		config.BaseURL = opt.baseURL
	}
	config.OrgID = opt.organization

	if opt.httpClient != nil {
		config.HTTPClient = opt.httpClient
	}

	return goopenai.NewClientWithConfig(config), nil
}

// New returns a new OpenAI-compatible client.
func New(opts ...Option) (*Client, error) {
	option := &options{
		model:          _defaultModel,
		embeddingModel: _defaultEmbeddingModel,
		httpClient:     &http.Client{Timeout: _defaultTimeout},
	}

	for _, opt := range opts {
		opt(option)
	}
	c, err := newClient(option)
	if err != nil {
		return nil, err
	}
	return &Client{
		client:         c,
		model:          option.model,
		embeddingModel: option.embeddingModel,
	}, nil
}

// Embed computes the embedding vector for one text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, errors.Wrap(rag.ErrInvalidInput, "text is empty")
	}
	resp, err := c.client.CreateEmbeddings(ctx, goopenai.EmbeddingRequest{
		Input: []string{text},
		Model: goopenai.EmbeddingModel(c.embeddingModel),
	})
	if err != nil {
		return nil, mapErr(err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.Wrap(rag.ErrServiceUnavailable,
			"embedding response carried no data")
	}
	return resp.Data[0].Embedding, nil
}

// Generate produces the raw model answer for the prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", errors.Wrap(rag.ErrInvalidInput, "prompt is empty")
	}
	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", mapErr(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.Wrap(rag.ErrServiceUnavailable,
			"completion response carried no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// mapErr folds transport failures onto the pipeline's error kinds so callers
// can tell retryable outages from permanent rejections.
func mapErr(err error) error {
	var apiErr *goopenai.APIError
	if stderrors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return errors.Wrap(rag.ErrRateLimited, apiErr.Message)
		case apiErr.HTTPStatusCode >= http.StatusInternalServerError:
			return errors.Wrap(rag.ErrServiceUnavailable, apiErr.Message)
		default:
			return errors.Wrap(rag.ErrInvalidInput, apiErr.Message)
		}
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return errors.Wrap(rag.ErrServiceUnavailable, "request timed out")
	}
	return errors.Wrap(rag.ErrServiceUnavailable, err.Error())
}

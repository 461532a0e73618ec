// Package openai implements the AIProvider interface for OpenAI's Chat
// Completions API and any OpenAI-compatible endpoint. It uses go-resty/v2
// for HTTP transport.
package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/sanix-darker/ghrev/internal/config"
	"github.com/sanix-darker/ghrev/internal/provider"
)

func init() {
	provider.Register("openai", NewProvider)
}

// ---------------------------------------------------------------------------
// OpenAI-specific API types
// ---------------------------------------------------------------------------

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiRequest struct {
	Model       string       `json:"model"`
	Messages    []apiMessage `json:"messages"`
	MaxTokens   int          `json:"max_tokens,omitempty"`
	Temperature *float64     `json:"temperature,omitempty"`
}

type apiChoice struct {
	Index        int        `json:"index"`
	Message      apiMessage `json:"message"`
	FinishReason string     `json:"finish_reason"`
}

type apiResponse struct {
	ID      string      `json:"id"`
	Model   string      `json:"model"`
	Choices []apiChoice `json:"choices"`
	Usage   struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// ---------------------------------------------------------------------------
// Provider implementation
// ---------------------------------------------------------------------------

// Provider implements provider.AIProvider for OpenAI's Chat Completions API.
type Provider struct {
	client   *resty.Client
	apiKey   string
	baseURL  string
	model    string
	maxTok   int
	retryCfg provider.RetryConfig
}

// NewProvider is the factory function registered with the provider registry.
func NewProvider(v *config.Store) (provider.AIProvider, error) {
	apiKey := v.GetString("api_key")
	baseURL := v.GetString("base_url")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := v.GetString("model")
	if model == "" {
		model = "gpt-4o"
	}
	maxTok := v.GetInt("max_tokens")
	if maxTok == 0 {
		maxTok = 4096
	}
	timeout := v.GetDuration("timeout")
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &Provider{
		client:   client,
		apiKey:   apiKey,
		baseURL:  strings.TrimRight(baseURL, "/"),
		model:    model,
		maxTok:   maxTok,
		retryCfg: provider.DefaultRetryConfig(),
	}, nil
}

// Info returns provider metadata.
func (p *Provider) Info() provider.ProviderInfo {
	return provider.ProviderInfo{
		Name:         "openai",
		DisplayName:  "OpenAI",
		Description:  "OpenAI Chat Completions API (GPT-4o, GPT-4, etc.)",
		DefaultModel: "gpt-4o",
	}
}

// Validate checks that the API key is set and the endpoint is reachable.
func (p *Provider) Validate(ctx context.Context) error {
	if p.apiKey == "" {
		return &provider.ProviderError{
			Code:     provider.ErrCodeAuthentication,
			Message:  "OPENAI_API_KEY is not set",
			Provider: "openai",
		}
	}
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(p.apiKey).
		Get(p.baseURL + "/models")
	if err != nil {
		return &provider.ProviderError{
			Code:     provider.ErrCodeProviderUnavailable,
			Message:  "failed to reach OpenAI API",
			Provider: "openai",
			Cause:    err,
		}
	}
	if resp.StatusCode() != http.StatusOK {
		return &provider.ProviderError{
			Code:       provider.ErrCodeAuthentication,
			Message:    "OpenAI API returned non-200 on validation",
			Provider:   "openai",
			StatusCode: resp.StatusCode(),
		}
	}
	return nil
}

// Complete performs a synchronous chat completion with retry.
func (p *Provider) Complete(ctx context.Context, req provider.CompletionRequest) (*provider.CompletionResponse, error) {
	return provider.WithRetry(ctx, p.retryCfg, func() (*provider.CompletionResponse, error) {
		return p.doComplete(ctx, req)
	})
}

func (p *Provider) doComplete(ctx context.Context, req provider.CompletionRequest) (*provider.CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}
	maxTok := req.MaxTokens
	if maxTok == 0 {
		maxTok = p.maxTok
	}

	body := apiRequest{
		Model:       model,
		Messages:    toAPIMessages(req.Messages),
		MaxTokens:   maxTok,
		Temperature: req.Temperature,
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(p.apiKey).
		SetBody(body).
		Post(p.baseURL + "/chat/completions")
	if err != nil {
		return nil, &provider.ProviderError{
			Code:     provider.ErrCodeProviderUnavailable,
			Message:  "HTTP request failed",
			Provider: "openai",
			Cause:    err,
		}
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, classifyHTTPError(resp.StatusCode(), resp.Body())
	}

	var apiResp apiResponse
	if err := json.Unmarshal(resp.Body(), &apiResp); err != nil {
		return nil, &provider.ProviderError{
			Code:     provider.ErrCodeUnknown,
			Message:  "failed to decode response",
			Provider: "openai",
			Cause:    err,
		}
	}

	out := &provider.CompletionResponse{
		ID:    apiResp.ID,
		Model: apiResp.Model,
		Usage: provider.Usage{
			PromptTokens:     apiResp.Usage.PromptTokens,
			CompletionTokens: apiResp.Usage.CompletionTokens,
			TotalTokens:      apiResp.Usage.TotalTokens,
		},
	}
	if len(apiResp.Choices) > 0 {
		out.Content = apiResp.Choices[0].Message.Content
		out.FinishReason = apiResp.Choices[0].FinishReason
	}
	return out, nil
}

func toAPIMessages(messages []provider.Message) []apiMessage {
	out := make([]apiMessage, len(messages))
	for i, m := range messages {
		out[i] = apiMessage{Role: string(m.Role), Content: m.Content}
	}
	return out
}

func classifyHTTPError(status int, body []byte) *provider.ProviderError {
	var ae apiError
	msg := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &ae); err == nil && ae.Error.Message != "" {
		msg = ae.Error.Message
	}

	code := provider.ErrCodeUnknown
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		code = provider.ErrCodeAuthentication
	case status == http.StatusTooManyRequests:
		code = provider.ErrCodeRateLimit
	case status == http.StatusBadRequest:
		code = provider.ErrCodeInvalidRequest
		if strings.Contains(msg, "context length") || strings.Contains(msg, "maximum context") {
			code = provider.ErrCodeContextLength
		}
	case status >= 500:
		code = provider.ErrCodeProviderUnavailable
	}

	return &provider.ProviderError{
		Code:       code,
		Message:    msg,
		Provider:   "openai",
		StatusCode: status,
	}
}

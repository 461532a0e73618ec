// Package anthropic implements the AIProvider interface for the Anthropic
// Messages API (Claude models).
//
// Anthropic's API differs from OpenAI's in several key ways:
//   - The system prompt is a top-level field, not a message.
//   - The response body uses "content" as an array of typed blocks.
//   - Authentication uses "x-api-key" header, not Bearer tokens.
//   - max_tokens is required (not optional).
//
// This implementation normalizes those differences behind the
// provider.AIProvider interface.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sanix-darker/ghrev/internal/config"
	"github.com/sanix-darker/ghrev/internal/provider"
)

func init() {
	provider.Register("anthropic", NewProvider)
}

const anthropicVersion = "2023-06-01"

// ---------------------------------------------------------------------------
// Anthropic-specific API types
// ---------------------------------------------------------------------------

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiRequest struct {
	Model       string       `json:"model"`
	Messages    []apiMessage `json:"messages"`
	System      string       `json:"system,omitempty"`
	MaxTokens   int          `json:"max_tokens"`
	Temperature *float64     `json:"temperature,omitempty"`
}

type apiContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiResponse struct {
	ID         string            `json:"id"`
	Model      string            `json:"model"`
	Content    []apiContentBlock `json:"content"`
	StopReason string            `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ---------------------------------------------------------------------------
// Provider implementation
// ---------------------------------------------------------------------------

// Provider implements provider.AIProvider for the Anthropic Messages API.
type Provider struct {
	client   *http.Client
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
		baseURL = "https://api.anthropic.com"
	}
	model := v.GetString("model")
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	maxTok := v.GetInt("max_tokens")
	if maxTok == 0 {
		maxTok = 4096
	}
	timeout := v.GetDuration("timeout")
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	return &Provider{
		client:   &http.Client{Timeout: timeout},
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
		Name:         "anthropic",
		DisplayName:  "Anthropic",
		Description:  "Anthropic Messages API (Claude models)",
		DefaultModel: "claude-sonnet-4-20250514",
	}
}

// Validate checks that the API key is configured.
func (p *Provider) Validate(_ context.Context) error {
	if p.apiKey == "" {
		return &provider.ProviderError{
			Code:     provider.ErrCodeAuthentication,
			Message:  "ANTHROPIC_API_KEY is not set",
			Provider: "anthropic",
		}
	}
	return nil
}

// Complete performs a synchronous Messages API call with retry.
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

	// The system prompt is a top-level field for Anthropic.
	var system string
	var messages []apiMessage
	for _, m := range req.Messages {
		if m.Role == provider.RoleSystem {
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
			continue
		}
		messages = append(messages, apiMessage{Role: string(m.Role), Content: m.Content})
	}

	body, err := json.Marshal(apiRequest{
		Model:       model,
		Messages:    messages,
		System:      system,
		MaxTokens:   maxTok,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, &provider.ProviderError{
			Code:     provider.ErrCodeInvalidRequest,
			Message:  "failed to encode request",
			Provider: "anthropic",
			Cause:    err,
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, &provider.ProviderError{
			Code:     provider.ErrCodeInvalidRequest,
			Message:  "failed to build request",
			Provider: "anthropic",
			Cause:    err,
		}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, &provider.ProviderError{
			Code:     provider.ErrCodeProviderUnavailable,
			Message:  "HTTP request failed",
			Provider: "anthropic",
			Cause:    err,
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &provider.ProviderError{
			Code:     provider.ErrCodeUnknown,
			Message:  "failed to read response",
			Provider: "anthropic",
			Cause:    err,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyHTTPError(resp.StatusCode, raw)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return nil, &provider.ProviderError{
			Code:     provider.ErrCodeUnknown,
			Message:  "failed to decode response",
			Provider: "anthropic",
			Cause:    err,
		}
	}

	var sb strings.Builder
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	return &provider.CompletionResponse{
		ID:           apiResp.ID,
		Model:        apiResp.Model,
		Content:      sb.String(),
		FinishReason: apiResp.StopReason,
		Usage: provider.Usage{
			PromptTokens:     apiResp.Usage.InputTokens,
			CompletionTokens: apiResp.Usage.OutputTokens,
			TotalTokens:      apiResp.Usage.InputTokens + apiResp.Usage.OutputTokens,
		},
	}, nil
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
		if strings.Contains(msg, "prompt is too long") {
			code = provider.ErrCodeContextLength
		}
	case status == 529: // Anthropic's "overloaded" status
		code = provider.ErrCodeProviderUnavailable
	case status >= 500:
		code = provider.ErrCodeProviderUnavailable
	}

	return &provider.ProviderError{
		Code:       code,
		Message:    msg,
		Provider:   "anthropic",
		StatusCode: status,
	}
}

// Package provider defines the core types and interfaces for multi-provider
// AI support. It abstracts away the differences between AI services (OpenAI,
// Anthropic Claude, OpenAI-compatible endpoints) behind a unified interface,
// so the review pipeline can switch providers without changing logic.
package provider

import (
	"context"
	"fmt"
	"time"
)

// Role represents the role of a message participant.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the provider-agnostic request structure that gets
// translated into each provider's native format by the implementation.
type CompletionRequest struct {
	// Model is the provider-specific model identifier. Empty means the
	// provider's configured default.
	Model string `json:"model"`

	// Messages is the ordered conversation history.
	Messages []Message `json:"messages"`

	// MaxTokens limits the response length. Providers have different
	// defaults and caps.
	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature controls randomness. A nil value means provider default.
	Temperature *float64 `json:"temperature,omitempty"`
}

// CompletionResponse is the provider-agnostic response from a completion call.
type CompletionResponse struct {
	ID           string `json:"id"`
	Model        string `json:"model"`
	Content      string `json:"content"`
	FinishReason string `json:"finish_reason"`
	Usage        Usage  `json:"usage"`
}

// Usage tracks token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ErrorCode classifies provider errors into actionable categories so the
// caller can decide how to react (retry, abort) without inspecting
// provider-specific payloads.
type ErrorCode string

const (
	ErrCodeAuthentication      ErrorCode = "authentication"
	ErrCodeRateLimit           ErrorCode = "rate_limit"
	ErrCodeInvalidRequest      ErrorCode = "invalid_request"
	ErrCodeContextLength       ErrorCode = "context_length"
	ErrCodeProviderUnavailable ErrorCode = "provider_unavailable"
	ErrCodeTimeout             ErrorCode = "timeout"
	ErrCodeUnknown             ErrorCode = "unknown"
)

// ProviderError is a structured error carrying both a normalized code and
// the original provider-specific details. It supports errors.Is / errors.As.
type ProviderError struct {
	Code       ErrorCode
	Message    string
	Provider   string
	StatusCode int
	Cause      error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (status %d): %v",
			e.Provider, e.Code, e.Message, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s (status %d)",
		e.Provider, e.Code, e.Message, e.StatusCode)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Sentinel errors for use with errors.Is().
var (
	ErrAuthentication      = &ProviderError{Code: ErrCodeAuthentication}
	ErrRateLimit           = &ProviderError{Code: ErrCodeRateLimit}
	ErrInvalidRequest      = &ProviderError{Code: ErrCodeInvalidRequest}
	ErrContextLength       = &ProviderError{Code: ErrCodeContextLength}
	ErrProviderUnavailable = &ProviderError{Code: ErrCodeProviderUnavailable}
	ErrTimeout             = &ProviderError{Code: ErrCodeTimeout}
)

// Is allows errors.Is to match ProviderErrors by code.
func (e *ProviderError) Is(target error) bool {
	t, ok := target.(*ProviderError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// RetryConfig controls exponential-backoff retry behaviour. The zero value
// disables retries.
type RetryConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// DefaultRetryConfig returns a sensible default retry configuration:
// 3 retries, starting at 1 s, capped at 30 s, with a 2x multiplier.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      3,
		InitialInterval: 1 * time.Second,
		MaxInterval:     30 * time.Second,
		Multiplier:      2.0,
	}
}

// ProviderInfo describes a registered provider for introspection and
// user-facing help text.
type ProviderInfo struct {
	Name         string
	DisplayName  string
	Description  string
	DefaultModel string
}

// AIProvider is the central abstraction. Every AI service implements this
// interface so the review pipeline can work with any provider
// interchangeably.
type AIProvider interface {
	// Info returns static metadata about this provider.
	Info() ProviderInfo

	// Complete sends a chat completion request and blocks until the full
	// response is available. The context controls cancellation and timeouts.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// Validate checks that the provider is correctly configured (API key
	// present, endpoint reachable) and returns a descriptive error if not.
	Validate(ctx context.Context) error
}

package provider

import (
	"context"
	"testing"

	"github.com/sanix-darker/ghrev/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	name string
}

func (f *fakeProvider) Info() ProviderInfo {
	return ProviderInfo{Name: f.name}
}

func (f *fakeProvider) Complete(_ context.Context, _ CompletionRequest) (*CompletionResponse, error) {
	return &CompletionResponse{Content: "ok"}, nil
}

func (f *fakeProvider) Validate(_ context.Context) error {
	return nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register("fake", func(v *config.Store) (AIProvider, error) {
		return &fakeProvider{name: "fake"}, nil
	})

	p, err := r.Get("fake", config.NewStore())
	require.NoError(t, err)
	assert.Equal(t, "fake", p.Info().Name)
}

func TestRegistry_UnknownProvider(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("missing", config.NewStore())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestRegistry_DuplicateRegistrationPanics(t *testing.T) {
	r := NewRegistry()
	f := func(v *config.Store) (AIProvider, error) { return &fakeProvider{}, nil }
	r.Register("dup", f)
	assert.Panics(t, func() { r.Register("dup", f) })
}

func TestRegistry_NamesSorted(t *testing.T) {
	r := NewRegistry()
	f := func(v *config.Store) (AIProvider, error) { return &fakeProvider{}, nil }
	r.Register("zulu", f)
	r.Register("alpha", f)
	r.Register("mike", f)
	assert.Equal(t, []string{"alpha", "mike", "zulu"}, r.Names())
}

func TestProviderError_Is(t *testing.T) {
	err := &ProviderError{Code: ErrCodeRateLimit, Provider: "fake", StatusCode: 429}
	assert.ErrorIs(t, err, ErrRateLimit)
	assert.NotErrorIs(t, err, ErrAuthentication)
}

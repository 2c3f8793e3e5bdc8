// Package mock provides a scripted llm.Provider for tests.
package mock

import (
	"context"
	"errors"
	"sync"

	"github.com/ziadkadry99/instructgen/internal/llm"
)

// ErrExhausted is returned once every scripted reply has been used.
var ErrExhausted = errors.New("mock provider: no scripted reply left")

// Reply is one scripted outcome. A nil Response with a nil Err yields a
// response carrying Content as its single choice.
type Reply struct {
	Content  string
	Response *llm.CompletionResponse
	Err      error
}

// Provider records calls and answers them from a script, in order.
type Provider struct {
	mu       sync.Mutex
	ProvName string
	Replies  []Reply
	Calls    []llm.CompletionRequest

	// CompleteFunc, when set, replaces the script.
	CompleteFunc func(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error)
}

// NewProvider returns a provider that answers each call with the next text.
func NewProvider(texts ...string) *Provider {
	p := &Provider{ProvName: "mock"}
	for _, t := range texts {
		p.Replies = append(p.Replies, Reply{Content: t})
	}
	return p
}

func (p *Provider) Name() string {
	return p.ProvName
}

func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.mu.Lock()
	call := len(p.Calls)
	p.Calls = append(p.Calls, req)
	fn := p.CompleteFunc
	p.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}

	if call >= len(p.Replies) {
		return nil, ErrExhausted
	}
	r := p.Replies[call]
	if r.Err != nil {
		return nil, r.Err
	}
	if r.Response != nil {
		return r.Response, nil
	}
	return &llm.CompletionResponse{
		Choices:      []llm.Choice{{Content: r.Content, FinishReason: "stop"}},
		InputTokens:  10,
		OutputTokens: 20,
		Model:        req.Model,
	}, nil
}

// CallCount returns the number of Complete calls seen so far.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Calls)
}

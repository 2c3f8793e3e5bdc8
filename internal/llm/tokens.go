package llm

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the tokenizer used when none is configured.
const DefaultEncoding = "cl100k_base"

// Chat framing overhead, per the OpenAI accounting for chat models: every
// message costs a few tokens on top of its role and content, and every reply
// is primed with a few more.
const (
	tokensPerMessage = 3
	tokensPerReply   = 3
)

// TokenCounter counts tokens for one named encoding.
type TokenCounter struct {
	enc      *tiktoken.Tiktoken
	encoding string
}

// NewTokenCounter loads the named tiktoken encoding.
func NewTokenCounter(encoding string) (*TokenCounter, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("loading encoding %q: %w", encoding, err)
	}
	return &TokenCounter{enc: enc, encoding: encoding}, nil
}

// Encoding returns the encoding name.
func (c *TokenCounter) Encoding() string {
	return c.encoding
}

// Text counts the tokens in a single string.
func (c *TokenCounter) Text(s string) int {
	return len(c.enc.Encode(s, nil, nil))
}

// Messages counts the tokens across a turn sequence including chat framing.
// An empty sequence counts as zero.
func (c *TokenCounter) Messages(msgs []Message) int {
	if len(msgs) == 0 {
		return 0
	}
	total := tokensPerReply
	for _, m := range msgs {
		total += tokensPerMessage
		total += c.Text(string(m.Role))
		total += c.Text(m.Content)
	}
	return total
}

// CountTokens is a convenience wrapper for a one-off count.
func CountTokens(msgs []Message, encoding string) (int, error) {
	c, err := NewTokenCounter(encoding)
	if err != nil {
		return 0, err
	}
	return c.Messages(msgs), nil
}

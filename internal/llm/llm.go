package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Options selects the model and sampling settings for one completion.
type Options struct {
	Model       string
	Temperature float32
}

// Provider is a hosted completion service. CompleteStructured asks the
// provider to emit a JSON object directly; CompleteText returns prose
// the caller extracts structured data from; DescribeImage runs a
// vision-capable model over an attached image.
type Provider interface {
	CompleteStructured(ctx context.Context, opts Options, system, user string) (json.RawMessage, error)
	CompleteText(ctx context.Context, opts Options, system, user string) (string, error)
	DescribeImage(ctx context.Context, opts Options, instruction, mimeType string, data []byte) (string, error)
}

// ErrEmptyCompletion means the provider returned no usable content.
var ErrEmptyCompletion = errors.New("llm: empty completion")

// RateLimitError marks a provider rejection that may succeed after a
// cooldown. Callers that opt in retry exactly once.
type RateLimitError struct {
	Err error
}

func (e *RateLimitError) Error() string { return e.Err.Error() }
func (e *RateLimitError) Unwrap() error { return e.Err }

// IsRateLimit reports whether err is (or wraps) a rate-limit rejection.
func IsRateLimit(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

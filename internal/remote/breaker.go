package remote

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
)

type breakerGenerator struct {
	next Generator
	cb   *gobreaker.CircuitBreaker
}

// NewBreaker wraps next so that after three consecutive service failures
// further calls fail fast with gobreaker.ErrOpenState for thirty seconds.
// Calls are never retried. Missing credentials and blocked content do not
// count as failures.
func NewBreaker(next Generator, name string) Generator {
	return &breakerGenerator{
		next: next,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    name,
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			IsSuccessful: func(err error) bool {
				return err == nil || IsPermanent(err)
			},
		}),
	}
}

func (b *breakerGenerator) Generate(ctx context.Context, prompt, credential string) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Generate(ctx, prompt, credential)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

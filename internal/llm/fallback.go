package llm

import (
	"context"
	"strings"
)

// FallbackProvider tries a list of providers in order and returns the first
// non-empty reply.
type FallbackProvider struct {
	chain []Provider
}

// WithFallback builds a provider that walks chain in order. A single
// provider is returned unwrapped.
func WithFallback(chain ...Provider) Provider {
	if len(chain) == 1 {
		return chain[0]
	}
	return &FallbackProvider{chain: chain}
}

func (f *FallbackProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	errs := make([]error, 0, len(f.chain))
	for _, p := range f.chain {
		resp, err := p.Complete(ctx, req)
		if err == nil && strings.TrimSpace(resp.Text) == "" {
			err = &ErrEmptyResponse{Model: p.ModelID()}
		}
		if err == nil {
			return resp, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		errs = append(errs, err)
	}
	return nil, &ErrAllModelsFailed{Errs: errs}
}

// ModelID returns the models in the chain joined by commas.
func (f *FallbackProvider) ModelID() string {
	ids := make([]string, len(f.chain))
	for i, p := range f.chain {
		ids[i] = p.ModelID()
	}
	return strings.Join(ids, ",")
}

package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallback_FirstModelAnswers(t *testing.T) {
	primary := NewMockModel("gemini-2.0-flash", MockResponse{Text: "hello"})
	backup := NewMockModel("gemini-flash-latest", MockResponse{Text: "unused"})
	p := WithFallback(primary, backup)

	resp, err := p.Complete(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Text)
	assert.Equal(t, 0, backup.CallCount())
}

func TestFallback_EmptyTextMovesOn(t *testing.T) {
	primary := NewMockModel("gemini-2.0-flash", MockResponse{})
	backup := NewMockModel("gemini-flash-latest", MockResponse{Text: "from backup"})
	p := WithFallback(primary, backup)

	resp, err := p.Complete(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "from backup", resp.Text)
	assert.Equal(t, "gemini-flash-latest", resp.Model)
}

// blankProvider succeeds with whitespace only.
type blankProvider struct{}

func (blankProvider) Complete(context.Context, Request) (*Response, error) {
	return &Response{Text: "  \n"}, nil
}

func (blankProvider) ModelID() string { return "blank" }

func TestFallback_WhitespaceCountsAsEmpty(t *testing.T) {
	backup := NewMockModel("b", MockResponse{Text: "real"})
	resp, err := WithFallback(blankProvider{}, backup).Complete(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "real", resp.Text)
}

func TestFallback_AllFailKeepsEveryError(t *testing.T) {
	primary := NewMockModel("a", MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}})
	backup := NewMockModel("b", MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	p := WithFallback(primary, backup)

	_, err := p.Complete(context.Background(), Request{})
	var all *ErrAllModelsFailed
	require.ErrorAs(t, err, &all)
	assert.Len(t, all.Errs, 2)
	assert.True(t, IsRateLimited(err))
}

func TestFallback_AllUnavailableIsNotRateLimited(t *testing.T) {
	p := WithFallback(
		NewMockModel("a", MockResponse{}),
		NewMockModel("b", MockResponse{Err: &ErrProviderUnavailable{}}),
	)
	_, err := p.Complete(context.Background(), Request{})
	require.Error(t, err)
	assert.False(t, IsRateLimited(err))
}

func TestFallback_StopsOnCancelledContext(t *testing.T) {
	primary := NewMockModel("a", MockResponse{Err: &ErrProviderUnavailable{}})
	backup := NewMockModel("b", MockResponse{Text: "unused"})
	p := WithFallback(primary, backup)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Complete(ctx, Request{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, backup.CallCount())
}

func TestFallback_SingleProviderUnwrapped(t *testing.T) {
	only := NewMockModel("solo")
	assert.Same(t, only, WithFallback(only))
	assert.Equal(t, "a,b", WithFallback(NewMockModel("a"), NewMockModel("b")).ModelID())
}

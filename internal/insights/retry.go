package insights

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/responses"
)

// callWithRetry calls the responses API, retrying rate-limit and server
// errors on a fixed delay ladder.
func callWithRetry(ctx context.Context, client *openai.Client, params responses.ResponseNewParams) (*responses.Response, error) {
	const maxRetries = 3
	rateLimitWaits := []time.Duration{65 * time.Second, 100 * time.Second, 135 * time.Second}
	serverErrorWaits := []time.Duration{5 * time.Second, 30 * time.Second, 60 * time.Second}

	for attempt := 0; attempt < maxRetries; attempt++ {
		resp, err := client.Responses.New(ctx, params)
		if err != nil {
			var wait time.Duration
			switch {
			case isRateLimitError(err):
				wait = rateLimitWaits[attempt]
			case isServerError(err):
				wait = serverErrorWaits[attempt]
			default:
				return nil, err
			}
			if attempt < maxRetries-1 {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(wait):
				}
				continue
			}
			return nil, err
		}
		return resp, nil
	}
	return nil, fmt.Errorf("failed after %d attempts", maxRetries)
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "429") ||
		strings.Contains(s, "rate limit") ||
		strings.Contains(s, "too many requests")
}

func isServerError(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "500") ||
		strings.Contains(s, "internal server error") ||
		strings.Contains(s, "server_error")
}

package http

import (
	"fmt"
	"net/http"

	"github.com/cenkalti/backoff/v4"

	"github.com/substratelabs/aws4/logging"
)

// RetryClient wraps a ClientDo with exponential backoff. Transport errors
// and 5xx responses are retried; the request's context bounds the whole
// sequence. If every attempt yields a 5xx, the last response is returned to
// the caller rather than an error, so service error bodies stay readable.
type RetryClient struct {
	inner      ClientDo
	maxRetries uint64
	logger     logging.Logger
	newBackOff func() backoff.BackOff
}

// NewRetryClient returns a RetryClient performing at most maxRetries retries
// after the initial attempt. A nil logger defaults to logging.Noop.
func NewRetryClient(inner ClientDo, maxRetries uint64, logger logging.Logger) *RetryClient {
	if logger == nil {
		logger = logging.Noop{}
	}
	return &RetryClient{
		inner:      inner,
		maxRetries: maxRetries,
		logger:     logger,
		newBackOff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
	}
}

// Do sends the request, retrying with backoff. Requests with bodies must
// carry GetBody (http.NewRequest sets it for common body types) so attempts
// after the first can rewind.
func (c *RetryClient) Do(req *http.Request) (*http.Response, error) {
	var lastResp *http.Response

	operation := func() error {
		if lastResp != nil {
			lastResp.Body.Close()
			lastResp = nil
		}

		attempt := req
		if req.Body != nil && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return backoff.Permanent(fmt.Errorf("rewind request body: %w", err))
			}
			attempt = req.Clone(req.Context())
			attempt.Body = body
		}

		resp, err := c.inner.Do(attempt)
		if err != nil {
			c.logger.Logf(logging.Warn, "request failed, retrying with backoff: %v", err)
			return err
		}
		lastResp = resp
		if resp.StatusCode >= 500 {
			c.logger.Logf(logging.Warn, "server error %s, retrying with backoff", resp.Status)
			return fmt.Errorf("server error: %s", resp.Status)
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(c.newBackOff(), c.maxRetries),
		req.Context(),
	)
	if err := backoff.Retry(operation, policy); err != nil {
		if lastResp != nil {
			return lastResp, nil
		}
		return nil, err
	}
	return lastResp, nil
}

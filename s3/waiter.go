package s3

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmespath/go-jmespath"

	"github.com/substratelabs/aws4/internal/waiter"
)

// ObjectExistsWaiter polls a bucket's object listing until a given key
// appears, with exponential delays between attempts.
type ObjectExistsWaiter struct {
	client *Client

	// MinDelay and MaxDelay bound the delay between attempts. Defaults:
	// 2s and 120s.
	MinDelay time.Duration
	MaxDelay time.Duration
}

// NewObjectExistsWaiter returns a waiter polling through the given client.
func NewObjectExistsWaiter(client *Client) *ObjectExistsWaiter {
	return &ObjectExistsWaiter{
		client:   client,
		MinDelay: 2 * time.Second,
		MaxDelay: 120 * time.Second,
	}
}

// Wait polls until the object named key exists in the bucket, the maximum
// wait time elapses, or the context is canceled. A listing that fails with a
// service error other than NoSuchBucket aborts the wait.
func (w *ObjectExistsWaiter) Wait(ctx context.Context, bucketName, key string, maxWaitDur time.Duration) error {
	matcher, err := jmespath.Compile(fmt.Sprintf("contains(Objects[].Key, '%s')", key))
	if err != nil {
		return fmt.Errorf("s3: compile waiter matcher: %w", err)
	}

	deadline := time.Now().Add(maxWaitDur)
	for attempt := int64(1); ; attempt++ {
		out, err := w.client.ListObjects(ctx, bucketName)
		if err != nil {
			var respErr *ResponseError
			if !errors.As(err, &respErr) || respErr.Code != "NoSuchBucket" {
				return err
			}
		} else {
			matched, err := searchOutput(matcher, out)
			if err != nil {
				return err
			}
			if matched {
				return nil
			}
		}

		remaining := time.Until(deadline)
		delay, done, err := waiter.ComputeDelay(attempt, w.MinDelay, w.MaxDelay, remaining)
		if err != nil {
			return fmt.Errorf("s3: compute waiter delay: %w", err)
		}
		if done {
			return fmt.Errorf("s3: exceeded max wait time for object %s/%s", bucketName, key)
		}
		if err := waiter.SleepWithContext(ctx, delay); err != nil {
			return err
		}
	}
}

// searchOutput evaluates the matcher against a document form of the output,
// built through a JSON round trip so the expression sees plain maps and
// slices.
func searchOutput(matcher *jmespath.JMESPath, out *ListObjectsOutput) (bool, error) {
	raw, err := json.Marshal(out)
	if err != nil {
		return false, fmt.Errorf("s3: marshal waiter document: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return false, fmt.Errorf("s3: unmarshal waiter document: %w", err)
	}

	result, err := matcher.Search(doc)
	if err != nil {
		return false, fmt.Errorf("s3: evaluate waiter matcher: %w", err)
	}
	matched, ok := result.(bool)
	return ok && matched, nil
}

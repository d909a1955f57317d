package s3

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWaiter(client *Client) *ObjectExistsWaiter {
	w := NewObjectExistsWaiter(client)
	w.MinDelay = time.Millisecond
	w.MaxDelay = 4 * time.Millisecond
	return w
}

func TestObjectExistsWaiter(t *testing.T) {
	responses := []*http.Response{
		xmlResponse(404, noSuchBucketBody),
		xmlResponse(200, emptyListingBody),
		xmlResponse(200, listObjectsBody),
	}
	var calls int
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		resp := responses[calls]
		calls++
		return resp, nil
	})

	w := newTestWaiter(client)
	err := w.Wait(context.Background(), "foo", "hello.txt", time.Second)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestObjectExistsWaiterMaxWait(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return xmlResponse(200, emptyListingBody), nil
	})

	w := newTestWaiter(client)
	err := w.Wait(context.Background(), "foo", "missing.txt", 20*time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeded max wait time")
}

func TestObjectExistsWaiterServiceError(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return xmlResponse(403, `<?xml version="1.0" encoding="UTF-8"?>
<Error>
   <Code>AccessDenied</Code>
   <Message>Access Denied</Message>
</Error>`), nil
	})

	w := newTestWaiter(client)
	err := w.Wait(context.Background(), "foo", "hello.txt", time.Second)
	require.Error(t, err)

	var respErr *ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, "AccessDenied", respErr.Code)
}

func TestObjectExistsWaiterContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		cancel()
		return xmlResponse(200, emptyListingBody), nil
	})

	w := newTestWaiter(client)
	err := w.Wait(ctx, "foo", "hello.txt", time.Second)
	require.ErrorIs(t, err, context.Canceled)
}

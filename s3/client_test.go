package s3

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/substratelabs/aws4/config"
	"github.com/substratelabs/aws4/sigv4"
	transport "github.com/substratelabs/aws4/transport/http"
)

var testSigningTime = time.Date(2015, 8, 30, 12, 36, 0, 0, time.UTC)

const listBucketsBody = `<?xml version="1.0" encoding="UTF-8"?>
<ListAllMyBucketsResult>
   <Owner>
      <ID>12345</ID>
      <DisplayName>alex</DisplayName>
   </Owner>
   <Buckets>
      <Bucket>
         <Name>foo</Name>
         <CreationDate>2018-02-01T08:30:12.123Z</CreationDate>
      </Bucket>
      <Bucket>
         <Name>bar</Name>
         <CreationDate>2018-06-08T11:25:43.456Z</CreationDate>
      </Bucket>
   </Buckets>
</ListAllMyBucketsResult>`

const listObjectsBody = `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult>
   <Name>foo</Name>
   <Contents>
      <Key>hello.txt</Key>
      <LastModified>2018-07-10T09:55:31Z</LastModified>
      <ETag>"cfcd208495d565ef66e7dff9f98764da"</ETag>
      <Size>11</Size>
   </Contents>
   <Contents>
      <Key>photos/cat.jpg</Key>
      <LastModified>2018-07-11T14:02:05Z</LastModified>
      <ETag>"9a0364b9e99bb480dd25e1f0284c8555"</ETag>
      <Size>482913</Size>
   </Contents>
</ListBucketResult>`

const emptyListingBody = `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult>
   <Name>foo</Name>
</ListBucketResult>`

const noSuchBucketBody = `<?xml version="1.0" encoding="UTF-8"?>
<Error>
   <Code>NoSuchBucket</Code>
   <Message>The specified bucket does not exist</Message>
   <BucketName>foo</BucketName>
</Error>`

func newTestClient(t *testing.T, fn transport.ClientDoFunc) *Client {
	t.Helper()
	client, err := New(Options{
		Credentials: config.Credentials{
			AccessKeyID:     "AKIDEXAMPLE",
			SecretAccessKey: "wJalrXUtnFEMI/K7MDENG+bPxRfiCYEXAMPLEKEY",
			Region:          "us-east-1",
		},
		HTTPClient: fn,
		Now:        func() time.Time { return testSigningTime },
	})
	require.NoError(t, err)
	return client
}

func xmlResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestClientListBuckets(t *testing.T) {
	var captured *http.Request
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		captured = req
		return xmlResponse(200, listBucketsBody), nil
	})

	out, err := client.ListBuckets(context.Background())
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, http.MethodGet, captured.Method)
	assert.Equal(t, "https://s3.us-east-1.amazonaws.com/", captured.URL.String())
	assert.Equal(t, "20150830T123600Z", captured.Header.Get("X-Amz-Date"))
	assert.Equal(t, sigv4.EmptyBodySHA256, captured.Header.Get("X-Amz-Content-Sha256"))
	assert.True(t, strings.HasPrefix(captured.Header.Get("Authorization"),
		"AWS4-HMAC-SHA256 Credential=AKIDEXAMPLE/20150830/us-east-1/s3/aws4_request, "+
			"SignedHeaders=host;x-amz-content-sha256;x-amz-date, Signature="),
		"unexpected authorization %q", captured.Header.Get("Authorization"))

	assert.Equal(t, 200, out.StatusCode)
	assert.Equal(t, Owner{ID: "12345", DisplayName: "alex"}, out.Owner)
	assert.Equal(t, []Bucket{
		{Name: "foo", CreationDate: time.Date(2018, 2, 1, 8, 30, 12, 123000000, time.UTC)},
		{Name: "bar", CreationDate: time.Date(2018, 6, 8, 11, 25, 43, 456000000, time.UTC)},
	}, out.Buckets)
}

func TestClientListObjects(t *testing.T) {
	var captured *http.Request
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		captured = req
		return xmlResponse(200, listObjectsBody), nil
	})

	out, err := client.ListObjects(context.Background(), "foo")
	require.NoError(t, err)

	assert.Equal(t, "/foo", captured.URL.Path)
	assert.Equal(t, []Object{
		{
			Key:          "hello.txt",
			ETag:         `"cfcd208495d565ef66e7dff9f98764da"`,
			LastModified: time.Date(2018, 7, 10, 9, 55, 31, 0, time.UTC),
			Size:         11,
		},
		{
			Key:          "photos/cat.jpg",
			ETag:         `"9a0364b9e99bb480dd25e1f0284c8555"`,
			LastModified: time.Date(2018, 7, 11, 14, 2, 5, 0, time.UTC),
			Size:         482913,
		},
	}, out.Objects)
}

func TestClientGetObject(t *testing.T) {
	var captured *http.Request
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		captured = req
		resp := xmlResponse(200, "Hello, S3!")
		resp.Header.Set("ETag", `"65a8e27d8879283831b664bd8b7f0ad4"`)
		return resp, nil
	})

	out, err := client.GetObject(context.Background(), "foo", "hello.txt")
	require.NoError(t, err)

	assert.Equal(t, "/foo/hello.txt", captured.URL.Path)
	assert.Equal(t, []byte("Hello, S3!"), out.Content)
	assert.Equal(t, `"65a8e27d8879283831b664bd8b7f0ad4"`, out.Header.Get("ETag"))
}

func TestClientPutObject(t *testing.T) {
	var captured *http.Request
	var capturedBody []byte
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		captured = req
		var err error
		capturedBody, err = io.ReadAll(req.Body)
		require.NoError(t, err)
		resp := xmlResponse(200, "")
		resp.Header.Set("ETag", `"65a8e27d8879283831b664bd8b7f0ad4"`)
		return resp, nil
	})

	out, err := client.PutObject(context.Background(), "foo", "hello.txt", []byte("Hello, S3!"))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, captured.Method)
	assert.Equal(t, "/foo/hello.txt", captured.URL.Path)
	assert.Equal(t, []byte("Hello, S3!"), capturedBody)
	assert.Equal(t,
		"c9ad25d0e9aa0413bd60f3afd33a35844fca35c99ae4ebcf0f8cdc8df27372ab",
		captured.Header.Get("X-Amz-Content-Sha256"))
	assert.Contains(t, captured.Header.Get("Authorization"),
		"SignedHeaders=content-length;host;x-amz-content-sha256;x-amz-date")
	assert.Equal(t, `"65a8e27d8879283831b664bd8b7f0ad4"`, out.ETag)
}

func TestClientResponseError(t *testing.T) {
	bodies := map[string]string{
		"bare error root": noSuchBucketBody,
		"wrapped error": `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult>
   <Error>
      <Code>NoSuchBucket</Code>
      <Message>The specified bucket does not exist</Message>
      <BucketName>foo</BucketName>
   </Error>
</ListBucketResult>`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
				return xmlResponse(404, body), nil
			})

			_, err := client.ListObjects(context.Background(), "foo")
			require.Error(t, err)

			var respErr *ResponseError
			require.ErrorAs(t, err, &respErr)
			assert.Equal(t, 404, respErr.StatusCode)
			assert.Equal(t, "NoSuchBucket", respErr.Code)
			assert.Equal(t, "The specified bucket does not exist", respErr.Message)
			assert.Equal(t, "foo", respErr.ErrorInfo.Get("BucketName").Text())
			assert.Contains(t, err.Error(), "NoSuchBucket")
		})
	}
}

func TestClientEndpointOverride(t *testing.T) {
	var captured *http.Request
	fn := transport.ClientDoFunc(func(req *http.Request) (*http.Response, error) {
		captured = req
		return xmlResponse(200, emptyListingBody), nil
	})
	client, err := New(Options{
		Credentials: config.Credentials{
			AccessKeyID:     "AKIDEXAMPLE",
			SecretAccessKey: "wJalrXUtnFEMI/K7MDENG+bPxRfiCYEXAMPLEKEY",
			Region:          "us-east-1",
		},
		HTTPClient: fn,
		Endpoint:   "http://localhost:9000",
	})
	require.NoError(t, err)

	_, err = client.ListObjects(context.Background(), "foo")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/foo", captured.URL.String())
}

func TestNewValidation(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)

	_, err = New(Options{Credentials: config.Credentials{
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
	}})
	assert.Error(t, err)
}

package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/substratelabs/aws4/xmltree"
)

// ListBuckets retrieves the buckets available to the credentials.
func (c *Client) ListBuckets(ctx context.Context) (*ListBucketsOutput, error) {
	resp, body, err := c.do(ctx, http.MethodGet, "/", nil, nil)
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp, body); err != nil {
		return nil, err
	}

	root, err := xmltree.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("s3: parse list buckets response: %w", err)
	}

	out := &ListBucketsOutput{
		StatusCode: resp.StatusCode,
		Owner: Owner{
			ID:          root.Get("Owner").Get("ID").Text(),
			DisplayName: root.Get("Owner").Get("DisplayName").Text(),
		},
	}
	for _, bucket := range root.Get("Buckets").All("Bucket") {
		out.Buckets = append(out.Buckets, Bucket{
			Name:         bucket.Get("Name").Text(),
			CreationDate: parseTimestamp(bucket.Get("CreationDate").Text()),
		})
	}
	return out, nil
}

// ListObjects retrieves the object listing of a bucket.
func (c *Client) ListObjects(ctx context.Context, bucketName string) (*ListObjectsOutput, error) {
	resp, body, err := c.do(ctx, http.MethodGet, "/" + bucketName, nil, nil)
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp, body); err != nil {
		return nil, err
	}

	root, err := xmltree.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("s3: parse list objects response: %w", err)
	}

	out := &ListObjectsOutput{StatusCode: resp.StatusCode, Objects: []Object{}}
	for _, contents := range root.All("Contents") {
		size, _ := strconv.ParseInt(contents.Get("Size").Text(), 10, 64)
		out.Objects = append(out.Objects, Object{
			Key:          contents.Get("Key").Text(),
			ETag:         contents.Get("ETag").Text(),
			LastModified: parseTimestamp(contents.Get("LastModified").Text()),
			Size:         size,
		})
	}
	return out, nil
}

// GetObject retrieves the contents of an object.
func (c *Client) GetObject(ctx context.Context, bucketName, objectName string) (*GetObjectOutput, error) {
	path := "/" + bucketName + "/" + objectName
	resp, body, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp, body); err != nil {
		return nil, err
	}

	return &GetObjectOutput{
		StatusCode: resp.StatusCode,
		Content:    body,
		Header:     resp.Header,
	}, nil
}

// PutObject stores an object.
func (c *Client) PutObject(ctx context.Context, bucketName, objectName string, content []byte) (*PutObjectOutput, error) {
	path := "/" + bucketName + "/" + objectName
	resp, body, err := c.do(ctx, http.MethodPut, path, nil, content)
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp, body); err != nil {
		return nil, err
	}

	return &PutObjectOutput{
		StatusCode: resp.StatusCode,
		ETag:       resp.Header.Get("ETag"),
	}, nil
}

// parseTimestamp parses the RFC 3339 timestamps S3 emits; a malformed value
// yields the zero time rather than failing the whole listing.
func parseTimestamp(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

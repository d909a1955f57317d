package s3

import (
	"net/http"
	"time"
)

// Owner describes the owner of a bucket.
type Owner struct {
	ID          string
	DisplayName string
}

// Bucket is one entry of a ListBuckets result.
type Bucket struct {
	Name         string
	CreationDate time.Time
}

// Object describes one object in a bucket listing.
type Object struct {
	Key          string
	ETag         string
	LastModified time.Time
	Size         int64
}

// ListBucketsOutput holds the parsed ListBuckets response.
type ListBucketsOutput struct {
	StatusCode int
	Owner      Owner
	Buckets    []Bucket
}

// ListObjectsOutput holds the parsed ListObjects response.
type ListObjectsOutput struct {
	StatusCode int
	Objects    []Object
}

// GetObjectOutput holds an object's content and the response metadata
// headers.
type GetObjectOutput struct {
	StatusCode int
	Content    []byte
	Header     http.Header
}

// PutObjectOutput holds the result of storing an object.
type PutObjectOutput struct {
	StatusCode int
	ETag       string
}

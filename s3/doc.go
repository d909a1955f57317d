// Package s3 is a minimal client for the Amazon S3 REST API: listing
// buckets, listing objects, and getting and putting object content.
//
// Every outgoing request is signed with Signature Version 4 via the sigv4
// package. Transport is an injected interface; the client owns no
// connections of its own.
package s3

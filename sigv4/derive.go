package sigv4

import (
	"crypto/hmac"
	"crypto/sha256"
)

const (
	// SigningAlgorithm identifies the SigV4 hash algorithm in the
	// string to sign and the Authorization header.
	SigningAlgorithm = "AWS4-HMAC-SHA256"

	// EmptyBodySHA256 is the hex-encoded SHA-256 of the empty byte string,
	// used as the content hash of requests with no body.
	EmptyBodySHA256 = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

	// TimeFormat is the full-width timestamp form carried in X-Amz-Date.
	TimeFormat = "20060102T150405Z"

	// ShortTimeFormat is the date-stamp form used in credential scope.
	ShortTimeFormat = "20060102"

	terminationString   = "aws4_request"
	signingKeyPrefix    = "AWS4"
	amzDateHeaderPrefix = "x-amz-date:"
)

// deriveSigningKey chains four keyed hashes through the credential scope
// components, each step keyed by the previous step's output:
//
//	kDate    = HMAC-SHA256("AWS4"+secret, date)
//	kRegion  = HMAC-SHA256(kDate, region)
//	kService = HMAC-SHA256(kRegion, service)
//	kSigning = HMAC-SHA256(kService, terminator)
//
// The result never leaves the signing call stack.
func deriveSigningKey(secret, date, region, service, terminator string) []byte {
	kDate := hmacSHA256([]byte(signingKeyPrefix+secret), []byte(date))
	kRegion := hmacSHA256(kDate, []byte(region))
	kService := hmacSHA256(kRegion, []byte(service))
	return hmacSHA256(kService, []byte(terminator))
}

func hmacSHA256(key, data []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}

// Package sigv4 implements AWS Signature Version 4 request signing.
//
// The signing pipeline is exposed as three pure functions that transform
// strings forward, with no shared state between calls:
//
//	raw request -> BuildCanonicalRequest -> BuildStringToSign -> BuildAuthorization
//
// BuildCanonicalRequest normalizes a raw HTTP/1.1 request into the canonical
// text form defined by the SigV4 specification. BuildStringToSign binds the
// canonical request's hash to a time-boxed credential scope.
// BuildAuthorization derives the signing key and formats the value for the
// Authorization header.
//
// All three functions are safe for concurrent use.
//
// SignRequest composes the pipeline over an *http.Request for callers that
// hold a structured request rather than raw text.
package sigv4

package sigv4

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// BuildCanonicalRequest parses rawRequest as an HTTP/1.1 request and returns
// its canonical form: six newline-joined segments holding the method, the
// normalized percent-encoded path, the sorted canonical query string, the
// sorted canonical header block, the semicolon-joined signed header names,
// and the hex-encoded SHA-256 of the body.
//
// The output is deterministic: reordering headers or query parameters in the
// input does not change it.
//
// Returns the empty string if rawRequest cannot be parsed; callers must treat
// that as a hard failure rather than signing anyway.
func BuildCanonicalRequest(rawRequest string) string {
	req, err := http.ReadRequest(bufio.NewReader(strings.NewReader(rawRequest)))
	if err != nil {
		return ""
	}
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return ""
	}

	headerBlock, signedHeaders := canonicalHeaders(req)
	bodySum := sha256.Sum256(body)

	return strings.Join([]string{
		req.Method,
		canonicalPath(req.URL.Path),
		canonicalQuery(req.URL.RawQuery),
		headerBlock,
		signedHeaders,
		hex.EncodeToString(bodySum[:]),
	}, "\n")
}

// BuildStringToSign returns the four-segment string to sign for a canonical
// request: the algorithm identifier, the request timestamp, the credential
// scope, and the hex-encoded SHA-256 of the canonical request.
//
// The timestamp is taken from the first "x-amz-date:" header line in the
// canonical request. If the header is absent the timestamp segment is empty,
// which yields a signature the service will reject; requests must carry the
// date header before canonicalization.
func BuildStringToSign(region, service, canonicalRequest string) string {
	var dateTime string
	for _, line := range strings.Split(canonicalRequest, "\n") {
		if strings.HasPrefix(line, amzDateHeaderPrefix) {
			dateTime = line[len(amzDateHeaderPrefix):]
			break
		}
	}

	var dateStamp string
	if len(dateTime) >= 8 {
		dateStamp = dateTime[:8]
	}

	sum := sha256.Sum256([]byte(canonicalRequest))
	return strings.Join([]string{
		SigningAlgorithm,
		dateTime,
		strings.Join([]string{dateStamp, region, service, terminationString}, "/"),
		hex.EncodeToString(sum[:]),
	}, "\n")
}

// BuildAuthorization derives the request signature and returns the value for
// the Authorization header.
//
// The credential scope is recovered from the third line of stringToSign and
// the signed header list from the second-to-last line of canonicalRequest, so
// both inputs must have been produced by BuildCanonicalRequest and
// BuildStringToSign (or preserve their exact line layout).
func BuildAuthorization(stringToSign, canonicalRequest, accessKeyID, accessKeySecret string) string {
	var scope string
	if lines := strings.Split(stringToSign, "\n"); len(lines) >= 3 {
		scope = lines[2]
	}
	parts := strings.SplitN(scope, "/", 4)
	for len(parts) < 4 {
		parts = append(parts, "")
	}

	key := deriveSigningKey(accessKeySecret, parts[0], parts[1], parts[2], parts[3])
	signature := hex.EncodeToString(hmacSHA256(key, []byte(stringToSign)))

	var signedHeaders string
	if lines := strings.Split(canonicalRequest, "\n"); len(lines) >= 2 {
		signedHeaders = lines[len(lines)-2]
	}

	return fmt.Sprintf("%s Credential=%s/%s, SignedHeaders=%s, Signature=%s",
		SigningAlgorithm, accessKeyID, scope, signedHeaders, signature)
}

package sigv4

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Credentials holds a long-lived signing identity. SessionToken is set only
// for temporary credentials and is attached as X-Amz-Security-Token.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// SignRequestInput carries everything SignRequest needs to sign one request.
type SignRequestInput struct {
	// Request is signed in place: the date, content hash, optional security
	// token, and Authorization headers are set on it.
	Request *http.Request

	// Body is the full request payload. A nil body hashes to the well-known
	// empty-string digest.
	Body []byte

	Credentials Credentials
	Region      string
	Service     string

	// Time is the signing time, truncated to seconds in UTC. The zero value
	// means time.Now.
	Time time.Time
}

// SignRequest signs an HTTP request using the three-stage pipeline. The
// request is rendered to its raw text form, canonicalized, and the resulting
// Authorization value set on it, along with the X-Amz-Date and
// X-Amz-Content-Sha256 headers the canonicalization covered.
func SignRequest(in SignRequestInput) error {
	if in.Request == nil {
		return fmt.Errorf("sign request: nil request")
	}

	t := in.Time
	if t.IsZero() {
		t = time.Now()
	}

	if in.Request.Header == nil {
		in.Request.Header = http.Header{}
	}

	payloadHash := EmptyBodySHA256
	if len(in.Body) > 0 {
		sum := sha256.Sum256(in.Body)
		payloadHash = hex.EncodeToString(sum[:])
	}

	header := in.Request.Header
	header.Set("X-Amz-Date", t.UTC().Format(TimeFormat))
	header.Set("X-Amz-Content-Sha256", payloadHash)
	if in.Credentials.SessionToken != "" {
		header.Set("X-Amz-Security-Token", in.Credentials.SessionToken)
	}

	canonicalRequest := BuildCanonicalRequest(renderRequest(in.Request, in.Body))
	if canonicalRequest == "" {
		return fmt.Errorf("sign request: request could not be canonicalized")
	}

	stringToSign := BuildStringToSign(in.Region, in.Service, canonicalRequest)
	authorization := BuildAuthorization(stringToSign, canonicalRequest,
		in.Credentials.AccessKeyID, in.Credentials.SecretAccessKey)

	header.Set("Authorization", authorization)
	return nil
}

// renderRequest writes the request back out as raw HTTP/1.1 text, the input
// form the canonical request builder consumes. Header emission order is
// irrelevant because canonicalization is order-invariant.
func renderRequest(req *http.Request, body []byte) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s HTTP/1.1\r\n", req.Method, req.URL.RequestURI())

	host := req.Host
	if host == "" {
		host = req.URL.Host
	}
	fmt.Fprintf(&b, "Host: %s\r\n", host)

	for name, values := range req.Header {
		for _, value := range values {
			fmt.Fprintf(&b, "%s: %s\r\n", name, value)
		}
	}
	if len(body) > 0 && req.Header.Get("Content-Length") == "" {
		fmt.Fprintf(&b, "Content-Length: %d\r\n", len(body))
	}

	b.WriteString("\r\n")
	b.Write(body)
	return b.String()
}

package s3

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/substratelabs/aws4/xmltree"
)

// ResponseError is returned for non-2xx service responses. Code and Message
// are extracted from the XML error body when one is present; ErrorInfo holds
// the full decoded body for callers that need the rest.
type ResponseError struct {
	StatusCode int
	Code       string
	Message    string
	ErrorInfo  *xmltree.Node
}

func (e *ResponseError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("s3: http status %d", e.StatusCode)
	}
	return fmt.Sprintf("s3: %s: %s (http status %d)", e.Code, e.Message, e.StatusCode)
}

// checkResponse converts a non-2xx response into a *ResponseError. S3 wraps
// some error bodies in an outer element and emits others bare, so both
// layouts are probed.
func checkResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	respErr := &ResponseError{StatusCode: resp.StatusCode}
	if root, err := xmltree.Decode(bytes.NewReader(body)); err == nil {
		errInfo := root
		if root.Name != "Error" {
			if wrapped := root.Get("Error"); wrapped != nil {
				errInfo = wrapped
			}
		}
		respErr.ErrorInfo = errInfo
		respErr.Code = errInfo.Get("Code").Text()
		respErr.Message = errInfo.Get("Message").Text()
	}
	return respErr
}

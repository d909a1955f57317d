package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/substratelabs/aws4/config"
	"github.com/substratelabs/aws4/logging"
	"github.com/substratelabs/aws4/sigv4"
	transport "github.com/substratelabs/aws4/transport/http"
)

const serviceName = "s3"

// Options configures a Client. Credentials is the only required field.
type Options struct {
	// Credentials signs every outgoing request. Region selects the service
	// endpoint and the credential scope.
	Credentials config.Credentials

	// HTTPClient performs the HTTP transaction. Defaults to a retrying
	// wrapper over http.DefaultClient.
	HTTPClient transport.ClientDo

	// Endpoint overrides the https://s3.{region}.amazonaws.com default,
	// e.g. for S3-compatible stores or test servers.
	Endpoint string

	// Logger receives debug entries for signed requests and responses.
	// Defaults to logging.Noop.
	Logger logging.Logger

	// Now supplies the signing time, for tests. Defaults to time.Now.
	Now func() time.Time
}

// Client calls the S3 REST API.
type Client struct {
	options Options
}

// New returns a Client with the given options, filling unset fields with
// their defaults.
func New(options Options) (*Client, error) {
	if options.Credentials.AccessKeyID == "" || options.Credentials.SecretAccessKey == "" {
		return nil, fmt.Errorf("s3: credentials are required")
	}
	if options.Credentials.Region == "" && options.Endpoint == "" {
		return nil, fmt.Errorf("s3: region is required")
	}
	if options.HTTPClient == nil {
		options.HTTPClient = transport.NewRetryClient(http.DefaultClient, 3, options.Logger)
	}
	if options.Logger == nil {
		options.Logger = logging.Noop{}
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	return &Client{options: options}, nil
}

func (c *Client) endpoint() string {
	if c.options.Endpoint != "" {
		return c.options.Endpoint
	}
	return "https://s3." + c.options.Credentials.Region + ".amazonaws.com"
}

// do builds, signs, and sends one request, returning the response with its
// body fully read.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) (*http.Response, []byte, error) {
	u, err := url.Parse(c.endpoint())
	if err != nil {
		return nil, nil, fmt.Errorf("s3: parse endpoint: %w", err)
	}
	u.Path = path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	target := u.String()

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("s3: build request: %w", err)
	}

	err = sigv4.SignRequest(sigv4.SignRequestInput{
		Request: req,
		Body:    body,
		Credentials: sigv4.Credentials{
			AccessKeyID:     c.options.Credentials.AccessKeyID,
			SecretAccessKey: c.options.Credentials.SecretAccessKey,
			SessionToken:    c.options.Credentials.SessionToken,
		},
		Region:  c.options.Credentials.Region,
		Service: serviceName,
		Time:    c.options.Now(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("s3: sign request: %w", err)
	}

	logger := logging.WithContext(ctx, c.options.Logger)
	logger.Logf(logging.Debug, "sending %s %s", method, target)

	resp, err := c.options.HTTPClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("s3: send request: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("s3: read response: %w", err)
	}
	logger.Logf(logging.Debug, "received %d for %s %s", resp.StatusCode, method, target)

	return resp, responseBody, nil
}

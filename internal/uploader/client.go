// Package uploader submits a loan application to the test-upload endpoint.
package uploader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"uploadtest/internal/model"
)

// Response is the raw result of an upload.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// IsJSON reports whether the server labelled the body as JSON.
func (r *Response) IsJSON() bool {
	return strings.HasPrefix(r.ContentType, "application/json")
}

// Client posts a single multipart form. It sets no timeout of its own.
type Client struct {
	url  string
	http *http.Client
	log  *zap.Logger
}

// New creates a Client for endpoint using a traced default transport.
func New(endpoint string, log *zap.Logger) *Client {
	return NewWithHTTPClient(endpoint, &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}, log)
}

// NewWithHTTPClient creates a Client around an existing *http.Client.
func NewWithHTTPClient(endpoint string, hc *http.Client, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{url: endpoint, http: hc, log: log}
}

// Upload sends app and, when document is non-nil, its bytes as the document part.
// The caller owns document and closes it after Upload returns.
func (c *Client) Upload(ctx context.Context, token string, app model.Application, document io.Reader) (*Response, error) {
	var body bytes.Buffer
	contentType, err := WriteForm(&body, app, document)
	if err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	c.log.Debug("sending upload",
		zap.String("url", c.url),
		zap.Int("fields", len(app.Fields)),
		zap.Bool("document", document != nil),
		zap.Int("bytes", body.Len()))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.log.Info("upload response",
		zap.Int("status", resp.StatusCode),
		zap.String("content_type", resp.Header.Get("Content-Type")),
		zap.Int("bytes", len(data)))

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

// IsRequestError reports whether err came from the transport (connection
// refused, reset, DNS, ...) rather than from building or decoding. A cancelled
// context is the caller giving up, not a transport failure.
func IsRequestError(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

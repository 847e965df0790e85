package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/clubportal/internal/common"
	"github.com/dmitrijs2005/clubportal/internal/logging"
	"github.com/dmitrijs2005/clubportal/internal/netx"
	"github.com/google/uuid"
)

const defaultTimeout = 10 * time.Second

// HTTPClient implements Gateway over the portal's REST API.
type HTTPClient struct {
	baseURL      string
	http         *http.Client
	log          logging.Logger
	newRequestID func() string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client (its Timeout included).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         &http.Client{Timeout: defaultTimeout},
		log:          logging.Nop(),
		newRequestID: func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

var _ Gateway = (*HTTPClient)(nil)

// errorBody is the shape of a server error payload.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *HTTPClient) doJSON(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &Error{Op: op, Kind: KindTransport, Err: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, op, method, path, body, contentType, out)
}

func (c *HTTPClient) doForm(ctx context.Context, op, method, path string, fields map[string]string, file *netx.FilePart, out any) error {
	body, contentType, err := netx.EncodeMultipart(fields, file)
	if err != nil {
		return &Error{Op: op, Kind: KindTransport, Err: err}
	}
	return c.do(ctx, op, method, path, body, contentType, out)
}

// do performs one round trip and classifies the outcome. A nil out means the
// caller does not need the response body.
func (c *HTTPClient) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Op: op, Kind: KindTransport, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	reqID := c.newRequestID()
	req.Header.Set(common.RequestIDHeaderName, reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "op", op, "request_id", reqID, "error", err)
		return &Error{Op: op, Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Op: op, Kind: KindTransport, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	c.log.Debug(ctx, "request done",
		"op", op, "method", method, "path", path, "request_id", reqID,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Op: op, Kind: KindRejected, Status: resp.StatusCode, Message: serverMessage(raw)}
	}

	if msg := embeddedError(raw); msg != "" {
		return &Error{Op: op, Kind: KindRejected, Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return &Error{Op: op, Kind: KindMalformed, Status: resp.StatusCode, Err: errors.New("empty body")}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Op: op, Kind: KindMalformed, Status: resp.StatusCode, Err: err}
	}
	return nil
}

func serverMessage(raw []byte) string {
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err != nil {
		return ""
	}
	return common.FirstNonEmpty(eb.Message, eb.Error)
}

// embeddedError returns the "error" field of a 2xx object body, if any.
func embeddedError(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ""
	}
	var eb struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &eb); err != nil || len(eb.Error) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(eb.Error, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

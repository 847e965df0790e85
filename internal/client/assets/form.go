package assets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/clubportal/internal/client/client"
	"github.com/dmitrijs2005/clubportal/internal/logging"
	"github.com/dmitrijs2005/clubportal/internal/netx"
)

// FormUploader posts the file as multipart form data to an image CDN and
// reads the stored location from the "secure_url" field.
type FormUploader struct {
	url       string
	preset    string
	cloudName string
	http      *http.Client
	log       logging.Logger
}

type FormOption func(*FormUploader)

func WithHTTPClient(hc *http.Client) FormOption {
	return func(u *FormUploader) { u.http = hc }
}

func WithLogger(l logging.Logger) FormOption {
	return func(u *FormUploader) {
		if l != nil {
			u.log = l
		}
	}
}

func NewFormUploader(url, preset, cloudName string, opts ...FormOption) *FormUploader {
	u := &FormUploader{
		url:       url,
		preset:    preset,
		cloudName: cloudName,
		http:      &http.Client{Timeout: 60 * time.Second},
		log:       logging.Nop(),
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

var _ Uploader = (*FormUploader)(nil)

func (u *FormUploader) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	const op = "upload asset"
	if u.url == "" {
		return "", &client.Error{Op: op, Kind: client.KindTransport, Err: errors.New("no upload url configured")}
	}

	fields := map[string]string{"upload_preset": u.preset}
	if u.cloudName != "" {
		fields["cloud_name"] = u.cloudName
	}
	body, contentType, err := netx.EncodeMultipart(fields, &netx.FilePart{Field: "file", FileName: name, Content: r})
	if err != nil {
		return "", &client.Error{Op: op, Kind: client.KindTransport, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.url, body)
	if err != nil {
		return "", &client.Error{Op: op, Kind: client.KindTransport, Err: err}
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := u.http.Do(req)
	if err != nil {
		return "", &client.Error{Op: op, Kind: client.KindTransport, Err: err}
	}
	defer resp.Body.Close()

	var out struct {
		SecureURL string `json:"secure_url"`
		Error     struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &client.Error{Op: op, Kind: client.KindTransport, Err: err}
	}
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &client.Error{Op: op, Kind: client.KindRejected, Status: resp.StatusCode, Message: out.Error.Message}
	}
	if decodeErr != nil {
		return "", &client.Error{Op: op, Kind: client.KindMalformed, Status: resp.StatusCode, Err: decodeErr}
	}
	if out.SecureURL == "" {
		return "", &client.Error{Op: op, Kind: client.KindMalformed, Status: resp.StatusCode, Err: fmt.Errorf("response has no secure_url")}
	}

	u.log.Debug(ctx, "asset uploaded", "name", name, "url", out.SecureURL)
	return out.SecureURL, nil
}

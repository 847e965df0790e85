// Package assets uploads images to an external host and returns the
// reference that entity payloads carry instead of raw bytes.
package assets

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/clubportal/internal/client/config"
	"github.com/dmitrijs2005/clubportal/internal/logging"
)

// Uploader stores one file and returns its public reference. A nil error
// always comes with a non-empty reference.
type Uploader interface {
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
}

// New builds the uploader selected by cfg.Driver.
func New(ctx context.Context, cfg config.Assets, log logging.Logger) (Uploader, error) {
	switch cfg.Driver {
	case config.AssetsDriverForm, "":
		return NewFormUploader(cfg.FormUploadURL(), cfg.UploadPreset, cfg.CloudName, WithLogger(log)), nil
	case config.AssetsDriverS3:
		return NewS3Uploader(ctx, S3Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.PublicBaseURL,
		})
	}
	return nil, fmt.Errorf("unknown assets driver %q", cfg.Driver)
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings for the club portal CLI.
type Config struct {
	BaseURL        string        `env:"BASE_URL"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	PollInterval   time.Duration `env:"POLL_INTERVAL"`
	DBPath         string        `env:"DB_PATH"`
	LogFormat      string        `env:"LOG_FORMAT"`
	LogLevel       string        `env:"LOG_LEVEL"`

	Assets Assets `envPrefix:"ASSETS_"`
	Chat   Chat   `envPrefix:"CHAT_"`
}

// Assets selects and configures the image host.
type Assets struct {
	// Driver is "form" (multipart upload to a CDN endpoint) or "s3".
	Driver       string `env:"DRIVER"`
	UploadURL    string `env:"UPLOAD_URL"`
	UploadPreset string `env:"UPLOAD_PRESET"`
	CloudName    string `env:"CLOUD_NAME"`

	S3Bucket      string `env:"S3_BUCKET"`
	S3Region      string `env:"S3_REGION"`
	S3Endpoint    string `env:"S3_ENDPOINT"`
	S3AccessKey   string `env:"S3_ACCESS_KEY"`
	S3SecretKey   string `env:"S3_SECRET_KEY"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`
}

type Chat struct {
	APIKey      string  `env:"API_KEY"`
	Model       string  `env:"MODEL"`
	Temperature float32 `env:"TEMPERATURE"`
}

const (
	AssetsDriverForm = "form"
	AssetsDriverS3   = "s3"

	envPrefix = "CLUBPORTAL_"
)

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:3000"
	c.RequestTimeout = 10 * time.Second
	c.PollInterval = 4 * time.Second
	c.DBPath = "clubportal.db"
	c.LogFormat = "text"
	c.LogLevel = "info"
	c.Assets = Assets{
		Driver:       AssetsDriverForm,
		UploadPreset: "club_management",
		S3Region:     "us-east-1",
	}
	c.Chat = Chat{
		Model:       "gemini-2.5-flash",
		Temperature: 0.7,
	}
}

// LoadConfig builds a Config from defaults, then the JSON file, then
// CLUBPORTAL_* environment variables, then flags. Later sources win.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:], env.ToMap(os.Environ()))
}

func load(args []string, environ map[string]string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, environ); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the client cannot start without.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base url %q", c.BaseURL)
	}
	if c.PollInterval <= 0 {
		return errors.New("poll interval must be positive")
	}
	switch c.Assets.Driver {
	case AssetsDriverForm:
	case AssetsDriverS3:
		if c.Assets.S3Bucket == "" {
			return errors.New("s3 asset driver requires a bucket")
		}
	default:
		return fmt.Errorf("unknown assets driver %q", c.Assets.Driver)
	}
	return nil
}

// FormUploadURL returns the upload endpoint of the form driver. Without an
// explicit URL it is derived from the cloud name.
func (a Assets) FormUploadURL() string {
	if a.UploadURL != "" || a.CloudName == "" {
		return a.UploadURL
	}
	return fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", url.PathEscape(a.CloudName))
}

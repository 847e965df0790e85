package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/clubportal/internal/flagx"
	"github.com/dmitrijs2005/clubportal/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// timex.Duration so the file may say "4s" or give integer nanoseconds.
type JsonConfig struct {
	BaseURL        string         `json:"base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	PollInterval   timex.Duration `json:"poll_interval"`
	DBPath         string         `json:"db_path"`
	LogFormat      string         `json:"log_format"`
	LogLevel       string         `json:"log_level"`

	Assets struct {
		Driver        string `json:"driver"`
		UploadURL     string `json:"upload_url"`
		UploadPreset  string `json:"upload_preset"`
		CloudName     string `json:"cloud_name"`
		S3Bucket      string `json:"s3_bucket"`
		S3Region      string `json:"s3_region"`
		S3Endpoint    string `json:"s3_endpoint"`
		S3AccessKey   string `json:"s3_access_key"`
		S3SecretKey   string `json:"s3_secret_key"`
		PublicBaseURL string `json:"public_base_url"`
	} `json:"assets"`

	Chat struct {
		APIKey      string   `json:"api_key"`
		Model       string   `json:"model"`
		Temperature *float32 `json:"temperature"`
	} `json:"chat"`
}

// parseJSON overlays cfg with the file named by -c/-config in args. Keys
// missing from the file keep their current value.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	setString(&cfg.BaseURL, jc.BaseURL)
	setString(&cfg.DBPath, jc.DBPath)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.PollInterval.Duration > 0 {
		cfg.PollInterval = jc.PollInterval.Duration
	}

	a := &cfg.Assets
	setString(&a.Driver, jc.Assets.Driver)
	setString(&a.UploadURL, jc.Assets.UploadURL)
	setString(&a.UploadPreset, jc.Assets.UploadPreset)
	setString(&a.CloudName, jc.Assets.CloudName)
	setString(&a.S3Bucket, jc.Assets.S3Bucket)
	setString(&a.S3Region, jc.Assets.S3Region)
	setString(&a.S3Endpoint, jc.Assets.S3Endpoint)
	setString(&a.S3AccessKey, jc.Assets.S3AccessKey)
	setString(&a.S3SecretKey, jc.Assets.S3SecretKey)
	setString(&a.PublicBaseURL, jc.Assets.PublicBaseURL)

	setString(&cfg.Chat.APIKey, jc.Chat.APIKey)
	setString(&cfg.Chat.Model, jc.Chat.Model)
	if jc.Chat.Temperature != nil {
		cfg.Chat.Temperature = *jc.Chat.Temperature
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

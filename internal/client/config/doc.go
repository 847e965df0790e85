// Package config loads runtime configuration for the club portal CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment variables prefixed with CLUBPORTAL_, for example
//     CLUBPORTAL_BASE_URL or CLUBPORTAL_ASSETS_S3_BUCKET.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the portal API
//	-i int      registration poll interval (seconds)
//	-d string   path of the local SQLite store
//
// # JSON schema
//
//	{
//	  "base_url": "https://portal.example.edu/api",
//	  "request_timeout": "10s",
//	  "poll_interval": "4s",
//	  "db_path": "clubportal.db",
//	  "log_format": "console",
//	  "assets": {"driver": "form", "cloud_name": "campus", "upload_preset": "club_management"},
//	  "chat": {"model": "gemini-2.5-flash", "temperature": 0.7}
//	}
package config

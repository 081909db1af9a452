// Package cloudinary stores media files on Cloudinary through its signed REST API.
package cloudinary

import (
	"time"

	"shopdesk_backend/internal/platform/config"
)

// Config holds the credentials and endpoint for the Cloudinary API.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	BaseURL   string        // e.g. "https://api.cloudinary.com/v1_1"
	Timeout   time.Duration // HTTP request timeout
}

// ConfigFrom extracts the Cloudinary settings from the application config.
func ConfigFrom(cfg config.Config) Config {
	return Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		BaseURL:   cfg.CloudinaryBaseURL,
		Timeout:   cfg.MediaTimeout,
	}
}

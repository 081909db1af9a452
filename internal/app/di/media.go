// Package di builds the application's components from configuration.
package di

import (
	"time"

	"shopdesk_backend/internal/platform/config"
	"shopdesk_backend/internal/platform/externalapi/cloudinary"
	platformhttp "shopdesk_backend/internal/platform/http"
	"shopdesk_backend/internal/platform/media"
	"shopdesk_backend/internal/shared/ratelimiter"
)

// NewMediaStore returns the Cloudinary client or the local disk store.
// localDir is empty unless files must be served from /uploads.
func NewMediaStore(cfg config.Config) (store media.Store, localDir string, err error) {
	if cfg.MediaDriver == config.MediaCloudinary {
		ccfg := cloudinary.ConfigFrom(cfg)
		httpClient := platformhttp.NewHTTPClient(ccfg.Timeout)
		limiter := ratelimiter.NewRateLimiter(cfg.MediaRateLimit, time.Minute)
		return cloudinary.NewClient(ccfg, httpClient, limiter), "", nil
	}
	local, err := media.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		return nil, "", err
	}
	return local, local.Dir(), nil
}

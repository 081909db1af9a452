package cloudinary

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"shopdesk_backend/internal/platform/externalapi/cloudinary/dto"
	"shopdesk_backend/internal/platform/media"
	"shopdesk_backend/internal/shared/ratelimiter"
)

// Client is a media.Store backed by Cloudinary's image endpoints.
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
	now     func() time.Time
}

var _ media.Store = (*Client)(nil)

// NewClient creates a Cloudinary client. limiter throttles every API call.
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.Limiter) *Client {
	return &Client{cfg: cfg, client: client, limiter: limiter, now: time.Now}
}

// Upload sends r to image/upload inside folder and returns the secure URL.
func (c *Client) Upload(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	params := map[string]string{
		"folder":    folder,
		"timestamp": strconv.FormatInt(c.now().Unix(), 10),
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range c.signed(params) {
		if err := mw.WriteField(k, v); err != nil {
			return "", err
		}
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(fw, r); err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	var body dto.UploadResponse
	if err := c.post(ctx, "upload", mw.FormDataContentType(), &buf, &body); err != nil {
		return "", err
	}
	if body.Error != nil {
		return "", fmt.Errorf("cloudinary upload: %s", body.Error.Message)
	}
	if body.SecureURL != "" {
		return body.SecureURL, nil
	}
	return body.URL, nil
}

// Delete destroys the image behind rawURL. A "not found" result is not an error.
func (c *Client) Delete(ctx context.Context, rawURL string) error {
	publicID, err := PublicID(rawURL)
	if err != nil {
		return err
	}
	params := map[string]string{
		"public_id": publicID,
		"timestamp": strconv.FormatInt(c.now().Unix(), 10),
	}
	form := url.Values{}
	for k, v := range c.signed(params) {
		form.Set(k, v)
	}

	var body dto.DestroyResponse
	if err := c.post(ctx, "destroy", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), &body); err != nil {
		return err
	}
	if body.Error != nil {
		return fmt.Errorf("cloudinary destroy: %s", body.Error.Message)
	}
	switch body.Result {
	case "ok":
		return nil
	case "not found":
		slog.Warn("cloudinary image already gone", "public_id", publicID)
		return nil
	default:
		return fmt.Errorf("cloudinary destroy %s: unexpected result %q", publicID, body.Result)
	}
}

func (c *Client) post(ctx context.Context, action, contentType string, payload io.Reader, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := fmt.Sprintf("%s/%s/image/%s", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.CloudName, action)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		if res.StatusCode >= 400 {
			return fmt.Errorf("cloudinary http %d", res.StatusCode)
		}
		return fmt.Errorf("decode cloudinary response: %w", err)
	}
	if res.StatusCode >= 400 {
		if msg := apiErrorMessage(out); msg != "" {
			return fmt.Errorf("cloudinary http %d: %s", res.StatusCode, msg)
		}
		return fmt.Errorf("cloudinary http %d", res.StatusCode)
	}
	return nil
}

// signed returns params plus api_key and the SHA-1 request signature.
func (c *Client) signed(params map[string]string) map[string]string {
	out := make(map[string]string, len(params)+2)
	for k, v := range params {
		out[k] = v
	}
	out["signature"] = Sign(params, c.cfg.APISecret)
	out["api_key"] = c.cfg.APIKey
	return out
}

// Sign computes Cloudinary's signature: the params sorted by key, joined as
// k=v pairs with "&", with the secret appended, hashed with SHA-1.
func Sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + params[k]
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}

// PublicID derives "<folder>/<name>" from a delivery URL such as
// https://res.cloudinary.com/demo/image/upload/v123/products/abc.jpg.
func PublicID(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse media url: %w", err)
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) < 2 || segs[len(segs)-1] == "" || segs[len(segs)-2] == "" {
		return "", errors.New("media url has no folder/name")
	}
	name := segs[len(segs)-1]
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return "", errors.New("media url has no folder/name")
	}
	return segs[len(segs)-2] + "/" + name, nil
}

func apiErrorMessage(v any) string {
	switch b := v.(type) {
	case *dto.UploadResponse:
		if b.Error != nil {
			return b.Error.Message
		}
	case *dto.DestroyResponse:
		if b.Error != nil {
			return b.Error.Message
		}
	}
	return ""
}

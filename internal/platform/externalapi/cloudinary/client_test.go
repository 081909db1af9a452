package cloudinary

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopdesk_backend/internal/shared/ratelimiter"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c := NewClient(Config{
		CloudName: "demo",
		APIKey:    "key-1",
		APISecret: "shh",
		BaseURL:   srv.URL,
	}, srv.Client(), ratelimiter.NewRateLimiter(0, time.Minute))
	c.now = func() time.Time { return time.Unix(1700000000, 0) }
	return c
}

func TestSign(t *testing.T) {
	t.Parallel()

	// sha1("folder=products&timestamp=1700000000shh")
	got := Sign(map[string]string{"timestamp": "1700000000", "folder": "products", "empty": ""}, "shh")
	assert.Len(t, got, 40)
	assert.Equal(t, got, Sign(map[string]string{"folder": "products", "timestamp": "1700000000"}, "shh"))
	assert.NotEqual(t, got, Sign(map[string]string{"folder": "products", "timestamp": "1700000000"}, "other"))
}

func TestClient_Upload_Success(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/demo/image/upload", r.URL.Path)

		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "products", r.FormValue("folder"))
		assert.Equal(t, "1700000000", r.FormValue("timestamp"))
		assert.Equal(t, "key-1", r.FormValue("api_key"))
		assert.Equal(t, Sign(map[string]string{"folder": "products", "timestamp": "1700000000"}, "shh"), r.FormValue("signature"))

		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "a.jpg", hdr.Filename)
		assert.Equal(t, "jpeg-bytes", string(data))

		_, _ = w.Write([]byte(`{"public_id":"products/abc","secure_url":"https://res.cloudinary.com/demo/image/upload/v1/products/abc.jpg"}`))
	})

	url, err := c.Upload(context.Background(), "products", "a.jpg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/v1/products/abc.jpg", url)
}

func TestClient_Upload_APIError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid Signature"}}`))
	})

	_, err := c.Upload(context.Background(), "products", "a.jpg", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Invalid Signature")
}

func TestClient_Upload_NonJSONError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	})

	_, err := c.Upload(context.Background(), "products", "a.jpg", strings.NewReader("x"))
	assert.EqualError(t, err, "cloudinary http 502")
}

func TestClient_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		result  string
		wantErr bool
	}{
		{"ok", "ok", false},
		{"already gone", "not found", false},
		{"unexpected", "error", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/demo/image/destroy", r.URL.Path)
				assert.NoError(t, r.ParseForm())
				assert.Equal(t, "employees/abc", r.PostFormValue("public_id"))
				assert.Equal(t, "key-1", r.PostFormValue("api_key"))
				assert.NotEmpty(t, r.PostFormValue("signature"))
				_, _ = w.Write([]byte(`{"result":"` + tt.result + `"}`))
			})

			err := c.Delete(context.Background(), "https://res.cloudinary.com/demo/image/upload/v17/employees/abc.png")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClient_Delete_BadURL(t *testing.T) {
	t.Parallel()

	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	assert.Error(t, c.Delete(context.Background(), "nourl"))
	assert.False(t, called)
}

func TestClient_ContextCancelled(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	c.limiter = ratelimiter.NewRateLimiter(1, time.Hour)
	require.NoError(t, c.limiter.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Upload(ctx, "products", "a.jpg", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPublicID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1712/products/abc123.jpg", "products/abc123", false},
		{"https://res.cloudinary.com/demo/image/upload/employees/x.y.png", "employees/x", false},
		{"https://res.cloudinary.com/demo/image/upload/v1/users/noext", "users/noext", false},
		{"nourl", "", true},
		{"https://res.cloudinary.com/", "", true},
		{"https://host/folder/.jpg", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()

			got, err := PublicID(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

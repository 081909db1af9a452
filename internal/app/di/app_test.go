package di

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopdesk_backend/internal/feature/product/domain/entity"
	"shopdesk_backend/internal/platform/config"
	"shopdesk_backend/internal/platform/db/dbtest"
	"shopdesk_backend/internal/platform/media"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:          "test-secret",
		AccessTokenTTL:     time.Hour,
		MaxSessionsPerUser: 3,
		CacheTTL:           time.Minute,
		BillingDraftTTL:    time.Hour,
		CurrencySymbol:     "₹",
	}
}

func newTestApp(t *testing.T, withRedis bool) (*gin.Engine, *Repositories) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := NewGormRepositories(dbtest.Open(t, Models()...))
	var rdb *redis.Client
	if withRedis {
		mr := miniredis.RunT(t)
		rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })
	}
	store, err := media.NewLocalStore(t.TempDir(), "")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r, _ := build(testConfig(), logger, repos, rdb, store, store.Dir())
	return r, repos
}

func call(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestApp_CheckoutFlow(t *testing.T) {
	for _, withRedis := range []bool{false, true} {
		name := "memory"
		if withRedis {
			name = "redis"
		}
		t.Run(name, func(t *testing.T) {
			r, repos := newTestApp(t, withRedis)
			require.NoError(t, repos.Products.Create(context.Background(), &entity.Product{
				Name: "PVC pipe", Price: decimal.RequireFromString("149.50"), Qty: 5, Image: "/uploads/products/a.jpg",
			}))

			w := call(r, http.MethodGet, "/healthz", "", "")
			assert.Equal(t, http.StatusOK, w.Code)

			w = call(r, http.MethodPost, "/api/billing", "", "")
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			w = call(r, http.MethodPost, "/api/user/signup", "", `{"name":"Owner","email":"owner@example.com","password":"hunter2hunter2"}`)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
			w = call(r, http.MethodPost, "/api/user/signup", "", `{"name":"Owner","email":"owner@example.com","password":"hunter2hunter2"}`)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			w = call(r, http.MethodPost, "/api/user/login", "", `{"email":"owner@example.com","password":"hunter2hunter2"}`)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			var login struct {
				Token string `json:"token"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

			w = call(r, http.MethodPost, "/api/billing", login.Token, "")
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
			var bill struct {
				BillNo string `json:"billNo"`
				Items  []struct {
					ID string `json:"id"`
				} `json:"items"`
				Products []struct {
					ProductID string `json:"productId"`
					Available int    `json:"available"`
				} `json:"products"`
				Total float64 `json:"total"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bill))
			require.Len(t, bill.Products, 1)
			productID := bill.Products[0].ProductID

			w = call(r, http.MethodPost, "/api/billing/"+bill.BillNo+"/items", login.Token, `{"productId":"`+productID+`","quantity":2}`)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bill))
			assert.InDelta(t, 299.0, bill.Total, 1e-9)

			w = call(r, http.MethodPost, "/api/billing/"+bill.BillNo+"/items", login.Token, `{"productId":"`+productID+`","quantity":4}`)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"message":"not enough stock"}`, w.Body.String())

			// the catalog is never written back
			p, err := repos.Products.FindByID(context.Background(), productID)
			require.NoError(t, err)
			assert.Equal(t, 5, p.Qty)

			w = call(r, http.MethodPost, "/api/user/logout", login.Token, "")
			assert.Equal(t, http.StatusOK, w.Code)
			w = call(r, http.MethodGet, "/api/billing/"+bill.BillNo, login.Token, "")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestApp_PayrollRequiresSession(t *testing.T) {
	r, _ := newTestApp(t, false)

	w := call(r, http.MethodGet, "/api/employee/payroll?month=2024-03", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(r, http.MethodGet, "/api/employee/allEmp", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = call(r, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `route="/api/employee/allEmp"`)
}

func TestNewSessionRepository_Fallbacks(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	gdb := dbtest.Open(t, Models()...)

	assert.Equal(t, "*session.SessionRedis", typeName(NewSessionRepository(rdb, gdb)))
	assert.Equal(t, "*adapters.sessionGorm", typeName(NewSessionRepository(nil, gdb)))
	assert.Equal(t, "*adapters.sessionMemory", typeName(NewSessionRepository(nil, nil)))
}

func TestNewMediaStore(t *testing.T) {
	cfg := config.Config{MediaDriver: config.MediaLocal, UploadDir: t.TempDir()}
	store, dir, err := NewMediaStore(cfg)
	require.NoError(t, err)
	assert.IsType(t, &media.LocalStore{}, store)
	assert.Equal(t, cfg.UploadDir, dir)

	cfg = config.Config{MediaDriver: config.MediaCloudinary, CloudinaryCloudName: "demo", CloudinaryAPIKey: "k", CloudinaryAPISecret: "s", MediaTimeout: time.Second}
	store, dir, err = NewMediaStore(cfg)
	require.NoError(t, err)
	assert.NotNil(t, store)
	assert.Empty(t, dir)
}

func typeName(v any) string { return fmt.Sprintf("%T", v) }

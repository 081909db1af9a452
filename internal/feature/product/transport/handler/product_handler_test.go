package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopdesk_backend/internal/feature/product/domain/entity"
	"shopdesk_backend/internal/feature/product/transport/handler"
	"shopdesk_backend/internal/feature/product/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type mockProductUsecase struct {
	CreateFunc func(ctx context.Context, in usecase.ProductInput) (*entity.Product, error)
	ListFunc   func(ctx context.Context) ([]entity.Product, error)
	GetFunc    func(ctx context.Context, id string) (*entity.Product, error)
	UpdateFunc func(ctx context.Context, id string, in usecase.ProductInput) (*entity.Product, error)
	DeleteFunc func(ctx context.Context, id string) error
}

func (m *mockProductUsecase) Create(ctx context.Context, in usecase.ProductInput) (*entity.Product, error) {
	return m.CreateFunc(ctx, in)
}
func (m *mockProductUsecase) List(ctx context.Context) ([]entity.Product, error) {
	return m.ListFunc(ctx)
}
func (m *mockProductUsecase) Get(ctx context.Context, id string) (*entity.Product, error) {
	return m.GetFunc(ctx, id)
}
func (m *mockProductUsecase) Update(ctx context.Context, id string, in usecase.ProductInput) (*entity.Product, error) {
	return m.UpdateFunc(ctx, id, in)
}
func (m *mockProductUsecase) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

func newRouter(uc handler.ProductUsecase) *gin.Engine {
	h := handler.NewProductHandler(uc)
	r := gin.New()
	g := r.Group("/api/product")
	g.POST("/create", h.Create)
	g.GET("/allProduct", h.List)
	g.GET("/ProductById/:id", h.Get)
	g.PUT("/update/:id", h.Update)
	g.DELETE("/delete/:id", h.Delete)
	return r
}

func multipartBody(t *testing.T, fields map[string]string, file string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != "" {
		fw, err := mw.CreateFormFile("ProductImage", file)
		require.NoError(t, err)
		_, _ = fw.Write([]byte("image-bytes"))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

var ts = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func TestProductHandler_Create(t *testing.T) {
	valid := map[string]string{"ProductName": "Pipe", "price": "149.50", "qty": "5"}

	tests := []struct {
		name       string
		fields     map[string]string
		file       string
		createErr  error
		wantStatus int
		wantBody   string
	}{
		{
			name: "success", fields: valid, file: "pipe.jpg", wantStatus: http.StatusCreated,
			wantBody: `{"_id":"p1","ProductName":"Pipe","price":149.5,"qty":5,"ProductImage":"https://cdn/products/pipe.jpg","createdAt":"2024-03-01T00:00:00Z","updatedAt":"2024-03-01T00:00:00Z"}`,
		},
		{name: "missing image", fields: valid, wantStatus: http.StatusBadRequest, wantBody: `{"message":"Product image is required"}`},
		{name: "missing name", fields: map[string]string{"price": "1", "qty": "1"}, file: "a.jpg", wantStatus: http.StatusBadRequest},
		{name: "bad price", fields: map[string]string{"ProductName": "x", "price": "abc", "qty": "1"}, file: "a.jpg", wantStatus: http.StatusBadRequest, wantBody: `{"message":"price must be a number"}`},
		{name: "bad qty", fields: map[string]string{"ProductName": "x", "price": "1", "qty": "1.5"}, file: "a.jpg", wantStatus: http.StatusBadRequest, wantBody: `{"message":"qty must be an integer"}`},
		{name: "upload failure", fields: valid, file: "a.jpg", createErr: usecase.ErrImageUpload, wantStatus: http.StatusBadRequest, wantBody: `{"message":"Image upload failed"}`},
		{name: "negative qty", fields: map[string]string{"ProductName": "x", "price": "1", "qty": "-1"}, file: "a.jpg", createErr: usecase.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "storage failure", fields: valid, file: "a.jpg", createErr: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockProductUsecase{CreateFunc: func(_ context.Context, in usecase.ProductInput) (*entity.Product, error) {
				if tt.createErr != nil {
					return nil, tt.createErr
				}
				data, _ := io.ReadAll(in.Image.Content)
				assert.Equal(t, "image-bytes", string(data))
				assert.True(t, decimal.RequireFromString("149.5").Equal(in.Price))
				return &entity.Product{ID: "p1", Name: in.Name, Price: in.Price, Qty: in.Qty,
					Image: "https://cdn/products/" + in.Image.Filename, CreatedAt: ts, UpdatedAt: ts}, nil
			}}

			body, ct := multipartBody(t, tt.fields, tt.file)
			req := httptest.NewRequest(http.MethodPost, "/api/product/create", body)
			req.Header.Set("Content-Type", ct)
			w := httptest.NewRecorder()
			newRouter(uc).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestProductHandler_List(t *testing.T) {
	uc := &mockProductUsecase{ListFunc: func(context.Context) ([]entity.Product, error) {
		return []entity.Product{{ID: "p1", Name: "Pipe", Price: decimal.NewFromInt(10), Qty: 1, Image: "i"}}, nil
	}}

	w := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/product/allProduct", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Pipe", got[0]["ProductName"])
	assert.Equal(t, float64(10), got[0]["price"])
}

func TestProductHandler_List_Empty(t *testing.T) {
	uc := &mockProductUsecase{ListFunc: func(context.Context) ([]entity.Product, error) { return nil, nil }}

	w := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/product/allProduct", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	uc := &mockProductUsecase{GetFunc: func(_ context.Context, id string) (*entity.Product, error) {
		assert.Equal(t, "missing", id)
		return nil, usecase.ErrProductNotFound
	}}

	w := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/product/ProductById/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Product not found"}`, w.Body.String())
}

func TestProductHandler_Update_WithoutImage(t *testing.T) {
	uc := &mockProductUsecase{UpdateFunc: func(_ context.Context, id string, in usecase.ProductInput) (*entity.Product, error) {
		assert.Equal(t, "p1", id)
		assert.Nil(t, in.Image)
		return &entity.Product{ID: id, Name: in.Name, Price: in.Price, Qty: in.Qty, Image: "old"}, nil
	}}

	body, ct := multipartBody(t, map[string]string{"ProductName": "Pipe", "price": "5", "qty": "2"}, "")
	req := httptest.NewRequest(http.MethodPut, "/api/product/update/p1", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ProductImage":"old"`)
}

func TestProductHandler_Delete(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"success", nil, http.StatusOK, `{"message":"Product deleted successfully"}`},
		{"not found", usecase.ErrProductNotFound, http.StatusNotFound, `{"message":"Product not found"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockProductUsecase{DeleteFunc: func(context.Context, string) error { return tt.err }}
			w := httptest.NewRecorder()
			newRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/product/delete/p1", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

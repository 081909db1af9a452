// Package handler exposes the catalog over HTTP.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"shopdesk_backend/internal/api"
	"shopdesk_backend/internal/feature/product/domain/entity"
	"shopdesk_backend/internal/feature/product/transport/http/dto"
	"shopdesk_backend/internal/feature/product/usecase"
	"shopdesk_backend/internal/platform/logging"
)

// ProductUsecase is the catalog behaviour the handler needs.
type ProductUsecase interface {
	Create(ctx context.Context, in usecase.ProductInput) (*entity.Product, error)
	List(ctx context.Context) ([]entity.Product, error)
	Get(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, id string, in usecase.ProductInput) (*entity.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductHandler serves /api/product.
type ProductHandler struct {
	uc ProductUsecase
}

func NewProductHandler(uc ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create handles POST /create (multipart, image field "ProductImage").
func (h *ProductHandler) Create(c *gin.Context) {
	in, release, ok := bindProductForm(c)
	if !ok {
		return
	}
	defer release()
	if in.Image == nil {
		api.Abort(c, http.StatusBadRequest, "Product image is required")
		return
	}

	p, err := h.uc.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "create product failed", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewProductRes(*p))
}

// List handles GET /allProduct.
func (h *ProductHandler) List(c *gin.Context) {
	ps, err := h.uc.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list products failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductList(ps))
}

// Get handles GET /ProductById/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get product failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductRes(*p))
}

// Update handles PUT /update/:id. The image is optional.
func (h *ProductHandler) Update(c *gin.Context) {
	in, release, ok := bindProductForm(c)
	if !ok {
		return
	}
	defer release()
	p, err := h.uc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.fail(c, "update product failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductRes(*p))
}

// Delete handles DELETE /delete/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.uc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "delete product failed", err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Product deleted successfully"})
}

func (h *ProductHandler) fail(c *gin.Context, msg string, err error) {
	log := logging.FromContext(c.Request.Context())
	switch {
	case errors.Is(err, usecase.ErrProductNotFound):
		log.Warn(msg, "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusNotFound, "Product not found")
	case errors.Is(err, usecase.ErrInvalidInput):
		log.Warn(msg, "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrImageRequired):
		log.Warn(msg, "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusBadRequest, "Product image is required")
	case errors.Is(err, usecase.ErrImageUpload):
		log.Warn(msg, "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusBadRequest, "Image upload failed")
	default:
		log.Error(msg, slog.Any("error", err))
		_ = c.Error(err)
		api.Abort(c, http.StatusInternalServerError, "Internal server error")
	}
}

// bindProductForm parses the multipart fields and optional image. On failure
// it has already written a 400. release closes the opened image.
func bindProductForm(c *gin.Context) (in usecase.ProductInput, release func(), ok bool) {
	release = func() {}
	var form dto.ProductForm
	if err := c.ShouldBind(&form); err != nil {
		logging.FromContext(c.Request.Context()).Warn("product validation failed", "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusBadRequest, "ProductName, price and qty are required")
		return usecase.ProductInput{}, release, false
	}
	price, err := decimal.NewFromString(form.Price)
	if err != nil {
		api.Abort(c, http.StatusBadRequest, "price must be a number")
		return usecase.ProductInput{}, release, false
	}
	qty, err := strconv.Atoi(form.Qty)
	if err != nil {
		api.Abort(c, http.StatusBadRequest, "qty must be an integer")
		return usecase.ProductInput{}, release, false
	}

	in = usecase.ProductInput{Name: form.ProductName, Price: price, Qty: qty}
	fh, err := api.OptionalFile(c, "ProductImage")
	if err != nil {
		api.Abort(c, http.StatusBadRequest, "invalid ProductImage upload")
		return usecase.ProductInput{}, release, false
	}
	if fh != nil {
		f, err := fh.Open()
		if err != nil {
			api.Abort(c, http.StatusBadRequest, "invalid ProductImage upload")
			return usecase.ProductInput{}, release, false
		}
		release = func() { _ = f.Close() }
		in.Image = &usecase.Image{Filename: fh.Filename, Content: f}
	}
	return in, release, true
}

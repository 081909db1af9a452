// Package handler exposes billing checkout over HTTP.
package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopdesk_backend/internal/api"
	"shopdesk_backend/internal/feature/billing/domain"
	"shopdesk_backend/internal/feature/billing/transport/http/dto"
	"shopdesk_backend/internal/feature/billing/usecase"
	"shopdesk_backend/internal/platform/logging"
)

type BillingUsecase interface {
	Start(ctx context.Context) (*domain.Bill, error)
	Get(ctx context.Context, billNo string) (*domain.Bill, error)
	AddItem(ctx context.Context, billNo, productID string, qty int) (*domain.Bill, error)
	SetQuantity(ctx context.Context, billNo, lineID string, qty int) (*domain.Bill, error)
	RemoveItem(ctx context.Context, billNo, lineID string) (*domain.Bill, error)
	SetCustomer(ctx context.Context, billNo string, c domain.Customer) (*domain.Bill, error)
	Next(ctx context.Context, billNo string) (*domain.Bill, error)
	Back(ctx context.Context, billNo string) (*domain.Bill, error)
	Invoice(ctx context.Context, billNo string) (*domain.Bill, error)
	Discard(ctx context.Context, billNo string) error
}

// InvoiceRenderer writes a final bill.
type InvoiceRenderer interface {
	HTML(w io.Writer, b *domain.Bill) error
	Text(w io.Writer, b *domain.Bill) error
}

// BillingHandler serves /api/billing.
type BillingHandler struct {
	uc       BillingUsecase
	invoices InvoiceRenderer
}

func NewBillingHandler(uc BillingUsecase, invoices InvoiceRenderer) *BillingHandler {
	return &BillingHandler{uc: uc, invoices: invoices}
}

// Start handles POST /.
func (h *BillingHandler) Start(c *gin.Context) {
	b, err := h.uc.Start(c.Request.Context())
	if err != nil {
		h.fail(c, "start bill failed", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewBillRes(b))
}

// Get handles GET /:billNo.
func (h *BillingHandler) Get(c *gin.Context) {
	b, err := h.uc.Get(c.Request.Context(), c.Param("billNo"))
	h.respond(c, "get bill failed", b, err)
}

// AddItem handles POST /:billNo/items.
func (h *BillingHandler) AddItem(c *gin.Context) {
	var req dto.ItemReq
	if !bindJSON(c, &req, "productId is required") {
		return
	}
	b, err := h.uc.AddItem(c.Request.Context(), c.Param("billNo"), req.ProductID, req.Qty())
	h.respond(c, "add item failed", b, err)
}

// SetQuantity handles PATCH /:billNo/items/:lineId.
func (h *BillingHandler) SetQuantity(c *gin.Context) {
	var req dto.QuantityReq
	if !bindJSON(c, &req, "quantity is required") {
		return
	}
	b, err := h.uc.SetQuantity(c.Request.Context(), c.Param("billNo"), c.Param("lineId"), req.Quantity)
	h.respond(c, "set quantity failed", b, err)
}

// RemoveItem handles DELETE /:billNo/items/:lineId.
func (h *BillingHandler) RemoveItem(c *gin.Context) {
	b, err := h.uc.RemoveItem(c.Request.Context(), c.Param("billNo"), c.Param("lineId"))
	h.respond(c, "remove item failed", b, err)
}

// SetCustomer handles PUT /:billNo/customer.
func (h *BillingHandler) SetCustomer(c *gin.Context) {
	var req dto.CustomerReq
	if !bindJSON(c, &req, "customer name is required") {
		return
	}
	b, err := h.uc.SetCustomer(c.Request.Context(), c.Param("billNo"), req.ToDomain())
	h.respond(c, "set customer failed", b, err)
}

// Next handles POST /:billNo/next.
func (h *BillingHandler) Next(c *gin.Context) {
	b, err := h.uc.Next(c.Request.Context(), c.Param("billNo"))
	h.respond(c, "advance bill failed", b, err)
}

// Back handles POST /:billNo/back.
func (h *BillingHandler) Back(c *gin.Context) {
	b, err := h.uc.Back(c.Request.Context(), c.Param("billNo"))
	h.respond(c, "rewind bill failed", b, err)
}

// Invoice handles GET /:billNo/invoice. ?format=text returns plain text,
// anything else the printable HTML page.
func (h *BillingHandler) Invoice(c *gin.Context) {
	b, err := h.uc.Invoice(c.Request.Context(), c.Param("billNo"))
	if err != nil {
		h.fail(c, "invoice failed", err)
		return
	}

	var buf bytes.Buffer
	contentType := "text/html; charset=utf-8"
	render := h.invoices.HTML
	if c.Query("format") == "text" {
		contentType = "text/plain; charset=utf-8"
		render = h.invoices.Text
	}
	if err := render(&buf, b); err != nil {
		h.fail(c, "render invoice failed", err)
		return
	}
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// Discard handles DELETE /:billNo.
func (h *BillingHandler) Discard(c *gin.Context) {
	if err := h.uc.Discard(c.Request.Context(), c.Param("billNo")); err != nil {
		h.fail(c, "discard bill failed", err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Bill discarded"})
}

func (h *BillingHandler) respond(c *gin.Context, msg string, b *domain.Bill, err error) {
	if err != nil {
		h.fail(c, msg, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBillRes(b))
}

func bindJSON(c *gin.Context, req any, msg string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		logging.FromContext(c.Request.Context()).Warn("billing validation failed", "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusBadRequest, msg)
		return false
	}
	return true
}

func (h *BillingHandler) fail(c *gin.Context, msg string, err error) {
	log := logging.FromContext(c.Request.Context())
	switch {
	case errors.Is(err, usecase.ErrBillNotFound):
		log.Warn(msg, "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusNotFound, "Bill not found")
	case errors.Is(err, domain.ErrOutOfStock):
		log.Warn(msg, "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusBadRequest, "Product out of stock")
	case errors.Is(err, domain.ErrNotEnoughStock):
		log.Warn(msg, "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusBadRequest, "not enough stock")
	case errors.Is(err, domain.ErrLineNotFound), errors.Is(err, domain.ErrUnknownProduct):
		log.Warn(msg, "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrCustomerRequired),
		errors.Is(err, domain.ErrWrongStage):
		log.Warn(msg, "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusBadRequest, err.Error())
	default:
		log.Error(msg, slog.Any("error", err))
		_ = c.Error(err)
		api.Abort(c, http.StatusInternalServerError, "Internal server error")
	}
}

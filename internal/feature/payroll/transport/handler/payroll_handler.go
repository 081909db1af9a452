// Package handler exposes payroll summaries over HTTP.
package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shopdesk_backend/internal/api"
	"shopdesk_backend/internal/feature/payroll/domain"
	"shopdesk_backend/internal/feature/payroll/transport/http/dto"
	"shopdesk_backend/internal/platform/logging"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PayrollUsecase interface {
	Summary(ctx context.Context, month domain.Month) (domain.Summary, error)
	Export(ctx context.Context, month domain.Month, w io.Writer) error
}

// PayrollHandler serves /api/employee/payroll.
type PayrollHandler struct {
	uc  PayrollUsecase
	now func() time.Time
}

func NewPayrollHandler(uc PayrollUsecase) *PayrollHandler {
	return &PayrollHandler{uc: uc, now: time.Now}
}

// month reads ?month=YYYY-MM, defaulting to the current month.
func (h *PayrollHandler) month(c *gin.Context) (domain.Month, bool) {
	q := c.Query("month")
	if q == "" {
		return domain.MonthOf(h.now()), true
	}
	m, err := domain.ParseMonth(q)
	if err != nil {
		logging.FromContext(c.Request.Context()).Warn("payroll month invalid", "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusBadRequest, "month must be YYYY-MM")
		return domain.Month{}, false
	}
	return m, true
}

// Summary handles GET /payroll.
func (h *PayrollHandler) Summary(c *gin.Context) {
	m, ok := h.month(c)
	if !ok {
		return
	}
	s, err := h.uc.Summary(c.Request.Context(), m)
	if err != nil {
		h.internal(c, "payroll summary failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSummaryRes(s))
}

// Export handles GET /payroll/export and returns an XLSX attachment.
func (h *PayrollHandler) Export(c *gin.Context) {
	m, ok := h.month(c)
	if !ok {
		return
	}
	// Buffer first so a failure can still become a JSON 500.
	var buf bytes.Buffer
	if err := h.uc.Export(c.Request.Context(), m, &buf); err != nil {
		h.internal(c, "payroll export failed", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="payroll-%s.xlsx"`, m))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *PayrollHandler) internal(c *gin.Context, msg string, err error) {
	logging.FromContext(c.Request.Context()).Error(msg, slog.Any("error", err))
	_ = c.Error(err)
	api.Abort(c, http.StatusInternalServerError, "Internal server error")
}

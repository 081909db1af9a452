// Package handler exposes employees and attendance over HTTP.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"

	"shopdesk_backend/internal/api"
	"shopdesk_backend/internal/feature/employee/domain/entity"
	"shopdesk_backend/internal/feature/employee/transport/http/dto"
	"shopdesk_backend/internal/feature/employee/usecase"
	"shopdesk_backend/internal/platform/logging"
)

// EmployeeUsecase is the employee behaviour the handler needs.
type EmployeeUsecase interface {
	Create(ctx context.Context, in usecase.EmployeeInput) (*entity.Employee, error)
	List(ctx context.Context) ([]entity.Employee, error)
	Get(ctx context.Context, id string) (*entity.Employee, error)
	Update(ctx context.Context, id string, p usecase.EmployeePatch) (*entity.Employee, error)
	Delete(ctx context.Context, id string) error
	SetAttendance(ctx context.Context, id string, day civil.Date, present bool) (*entity.Employee, error)
	ClearAttendance(ctx context.Context, id string, day civil.Date) (*entity.Employee, error)
}

// EmployeeHandler serves /api/employee.
type EmployeeHandler struct {
	uc EmployeeUsecase
}

func NewEmployeeHandler(uc EmployeeUsecase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// Create handles POST /createEmp (multipart, photo in field "image").
func (h *EmployeeHandler) Create(c *gin.Context) {
	var form dto.EmployeeForm
	if err := c.ShouldBind(&form); err != nil {
		logging.FromContext(c.Request.Context()).Warn("employee validation failed", "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusBadRequest, "name, email, mobileNo, position and dailyWage are required")
		return
	}
	wage, err := decimal.NewFromString(form.DailyWage)
	if err != nil {
		api.Abort(c, http.StatusBadRequest, "dailyWage must be a number")
		return
	}
	img, release, ok := openImage(c)
	if !ok {
		return
	}
	defer release()
	if img == nil {
		api.Abort(c, http.StatusBadRequest, "Image file is required")
		return
	}

	e, err := h.uc.Create(c.Request.Context(), usecase.EmployeeInput{
		Name:      form.Name,
		Email:     form.Email,
		MobileNo:  form.MobileNo,
		Position:  form.Position,
		DailyWage: wage,
		Image:     img,
	})
	if err != nil {
		h.fail(c, "create employee failed", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewEmployeeRes(*e))
}

// List handles GET /allEmp.
func (h *EmployeeHandler) List(c *gin.Context) {
	es, err := h.uc.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list employees failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewEmployeeList(es))
}

// Get handles GET /getById/:id.
func (h *EmployeeHandler) Get(c *gin.Context) {
	e, err := h.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get employee failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewEmployeeRes(*e))
}

// Update handles PUT /update/:id with either a JSON or a multipart body.
// Only the supplied fields change.
func (h *EmployeeHandler) Update(c *gin.Context) {
	var patch usecase.EmployeePatch
	if c.ContentType() == binding.MIMEJSON {
		var req dto.EmployeePatchJSON
		if err := c.ShouldBindJSON(&req); err != nil {
			logging.FromContext(c.Request.Context()).Warn("employee validation failed", "error", err, "remote_addr", c.ClientIP())
			api.Abort(c, http.StatusBadRequest, "invalid employee data")
			return
		}
		patch = usecase.EmployeePatch{Name: req.Name, Email: req.Email, MobileNo: req.MobileNo, Position: req.Position, DailyWage: req.DailyWage}
	} else {
		var form dto.EmployeePatchForm
		if err := c.ShouldBind(&form); err != nil {
			logging.FromContext(c.Request.Context()).Warn("employee validation failed", "error", err, "remote_addr", c.ClientIP())
			api.Abort(c, http.StatusBadRequest, "invalid employee data")
			return
		}
		patch = usecase.EmployeePatch{Name: form.Name, Email: form.Email, MobileNo: form.MobileNo, Position: form.Position}
		if form.DailyWage != nil {
			wage, err := decimal.NewFromString(*form.DailyWage)
			if err != nil {
				api.Abort(c, http.StatusBadRequest, "dailyWage must be a number")
				return
			}
			patch.DailyWage = &wage
		}
		img, release, ok := openImage(c)
		if !ok {
			return
		}
		defer release()
		patch.Image = img
	}

	e, err := h.uc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.fail(c, "update employee failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewEmployeeRes(*e))
}

// Delete handles DELETE /delete/:id.
func (h *EmployeeHandler) Delete(c *gin.Context) {
	if err := h.uc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "delete employee failed", err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Employee deleted successfully"})
}

// SetAttendance handles PUT and POST /attendance/:id with {date, status}.
func (h *EmployeeHandler) SetAttendance(c *gin.Context) {
	var req dto.AttendanceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		logging.FromContext(c.Request.Context()).Warn("attendance validation failed", "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusBadRequest, "date and status are required")
		return
	}
	day, err := civil.ParseDate(req.Date)
	if err != nil {
		api.Abort(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	e, err := h.uc.SetAttendance(c.Request.Context(), c.Param("id"), day, *req.Status)
	if err != nil {
		h.fail(c, "update attendance failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.AttendanceRes{Message: "Attendance updated", Employee: dto.NewEmployeeRes(*e)})
}

// ClearAttendance handles DELETE /attendance/:id/:date.
func (h *EmployeeHandler) ClearAttendance(c *gin.Context) {
	day, err := civil.ParseDate(c.Param("date"))
	if err != nil {
		api.Abort(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	e, err := h.uc.ClearAttendance(c.Request.Context(), c.Param("id"), day)
	if err != nil {
		h.fail(c, "clear attendance failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.AttendanceRes{Message: "Attendance cleared", Employee: dto.NewEmployeeRes(*e)})
}

func (h *EmployeeHandler) fail(c *gin.Context, msg string, err error) {
	log := logging.FromContext(c.Request.Context())
	switch {
	case errors.Is(err, usecase.ErrEmployeeNotFound):
		log.Warn(msg, "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusNotFound, "Employee not found")
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		log.Warn(msg, "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusBadRequest, "email already exists")
	case errors.Is(err, usecase.ErrInvalidInput):
		log.Warn(msg, "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrImageRequired):
		log.Warn(msg, "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusBadRequest, "Image file is required")
	case errors.Is(err, usecase.ErrImageUpload):
		log.Warn(msg, "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusBadRequest, "Image upload failed")
	default:
		log.Error(msg, slog.Any("error", err))
		_ = c.Error(err)
		api.Abort(c, http.StatusInternalServerError, "Internal server error")
	}
}

// openImage opens the optional "image" upload. On failure it has already
// written a 400.
func openImage(c *gin.Context) (img *usecase.Image, release func(), ok bool) {
	release = func() {}
	fh, err := api.OptionalFile(c, "image")
	if err != nil {
		api.Abort(c, http.StatusBadRequest, "invalid image upload")
		return nil, release, false
	}
	if fh == nil {
		return nil, release, true
	}
	f, err := fh.Open()
	if err != nil {
		api.Abort(c, http.StatusBadRequest, "invalid image upload")
		return nil, release, false
	}
	return &usecase.Image{Filename: fh.Filename, Content: f}, func() { _ = f.Close() }, true
}

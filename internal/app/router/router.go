// Package router mounts every feature's handlers on a gin engine.
package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authhandler "shopdesk_backend/internal/feature/auth/transport/handler"
	billinghandler "shopdesk_backend/internal/feature/billing/transport/handler"
	employeehandler "shopdesk_backend/internal/feature/employee/transport/handler"
	payrollhandler "shopdesk_backend/internal/feature/payroll/transport/handler"
	producthandler "shopdesk_backend/internal/feature/product/transport/handler"
	platformhandler "shopdesk_backend/internal/platform/http/handler"
	"shopdesk_backend/internal/platform/logging"
	"shopdesk_backend/internal/platform/media"
	"shopdesk_backend/internal/platform/metrics"
)

// Deps is everything the router mounts.
type Deps struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	// Auth rejects requests without a live session.
	Auth     gin.HandlerFunc
	User     *authhandler.AuthHandler
	Employee *employeehandler.EmployeeHandler
	Payroll  *payrollhandler.PayrollHandler
	Product  *producthandler.ProductHandler
	Billing  *billinghandler.BillingHandler

	// UploadDir is served under /uploads when media is stored locally.
	UploadDir string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger(d.Logger), d.Metrics.Middleware())

	r.GET("/healthz", platformhandler.Health)
	r.HEAD("/healthz", platformhandler.Health)
	r.OPTIONS("/healthz", platformhandler.Health)
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	if d.UploadDir != "" {
		r.Static(media.URLPrefix, d.UploadDir)
	}

	user := r.Group("/api/user")
	{
		user.POST("/signup", d.User.Signup)
		user.POST("/login", d.User.Login)

		authed := user.Group("", d.Auth)
		authed.GET("/userDetail", d.User.Detail)
		authed.PUT("/updateProfile", d.User.UpdateProfile)
		authed.POST("/logout", d.User.Logout)
	}

	emp := r.Group("/api/employee")
	{
		emp.GET("/allEmp", d.Employee.List)
		emp.GET("/getById/:id", d.Employee.Get)
		emp.POST("/createEmp", d.Employee.Create)
		emp.PUT("/update/:id", d.Employee.Update)
		emp.DELETE("/delete/:id", d.Employee.Delete)
		emp.PUT("/attendance/:id", d.Employee.SetAttendance)
		emp.POST("/attendance/:id", d.Employee.SetAttendance)
		emp.DELETE("/attendance/:id/:date", d.Employee.ClearAttendance)

		payroll := emp.Group("/payroll", d.Auth)
		payroll.GET("", d.Payroll.Summary)
		payroll.GET("/export", d.Payroll.Export)
	}

	product := r.Group("/api/product")
	{
		product.POST("/create", d.Product.Create)
		product.GET("/allProduct", d.Product.List)
		product.GET("/ProductById/:id", d.Product.Get)
		product.PUT("/update/:id", d.Product.Update)
		product.DELETE("/delete/:id", d.Product.Delete)
	}

	billing := r.Group("/api/billing", d.Auth)
	{
		billing.POST("", d.Billing.Start)
		billing.GET("/:billNo", d.Billing.Get)
		billing.DELETE("/:billNo", d.Billing.Discard)
		billing.POST("/:billNo/items", d.Billing.AddItem)
		billing.PATCH("/:billNo/items/:lineId", d.Billing.SetQuantity)
		billing.DELETE("/:billNo/items/:lineId", d.Billing.RemoveItem)
		billing.PUT("/:billNo/customer", d.Billing.SetCustomer)
		billing.POST("/:billNo/next", d.Billing.Next)
		billing.POST("/:billNo/back", d.Billing.Back)
		billing.GET("/:billNo/invoice", d.Billing.Invoice)
	}

	return r
}

package di

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"shopdesk_backend/internal/app/router"
	authhandler "shopdesk_backend/internal/feature/auth/transport/handler"
	authusecase "shopdesk_backend/internal/feature/auth/usecase"
	billingadapters "shopdesk_backend/internal/feature/billing/adapters"
	billinghandler "shopdesk_backend/internal/feature/billing/transport/handler"
	billingusecase "shopdesk_backend/internal/feature/billing/usecase"
	employeehandler "shopdesk_backend/internal/feature/employee/transport/handler"
	employeeusecase "shopdesk_backend/internal/feature/employee/usecase"
	payrolladapters "shopdesk_backend/internal/feature/payroll/adapters"
	payrollhandler "shopdesk_backend/internal/feature/payroll/transport/handler"
	payrollusecase "shopdesk_backend/internal/feature/payroll/usecase"
	producthandler "shopdesk_backend/internal/feature/product/transport/handler"
	productusecase "shopdesk_backend/internal/feature/product/usecase"
	"shopdesk_backend/internal/platform/cache"
	"shopdesk_backend/internal/platform/config"
	jwtmw "shopdesk_backend/internal/platform/jwt"
	"shopdesk_backend/internal/platform/media"
	"shopdesk_backend/internal/platform/metrics"
	platformredis "shopdesk_backend/internal/platform/redis"
)

// SessionPurger drops expired sessions on a schedule.
type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// App is the assembled server.
type App struct {
	Router   *gin.Engine
	Sessions SessionPurger

	repos *Repositories
	rdb   *redis.Client
}

// NewApp connects the stores and wires every feature.
func NewApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	repos, err := NewRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if cfg.RedisEnabled() {
		if c, err := platformredis.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword); err != nil {
			logger.Warn("Redis unavailable, running without cache", "error", err)
		} else {
			rdb = c
		}
	}

	mediaStore, uploadDir, err := NewMediaStore(cfg)
	if err != nil {
		_ = repos.Close(ctx)
		return nil, err
	}

	a := &App{repos: repos, rdb: rdb}
	a.Router, a.Sessions = build(cfg, logger, repos, rdb, mediaStore, uploadDir)
	return a, nil
}

func build(cfg config.Config, logger *slog.Logger, repos *Repositories, rdb *redis.Client, mediaStore media.Store, uploadDir string) (*gin.Engine, SessionPurger) {
	products := repos.Products
	if rdb != nil {
		products = cache.NewCachingProductRepository(rdb, cfg.CacheTTL, products, "products")
	}

	tokens := jwtmw.NewGenerator(cfg.JWTSecret, cfg.AccessTokenTTL)
	sessions := NewSessionRepository(rdb, repos.DB)
	authUC := authusecase.NewAuthUsecase(repos.Users, sessions, tokens, mediaStore, cfg.MaxSessionsPerUser)
	employeeUC := employeeusecase.NewEmployeeUsecase(repos.Employees, mediaStore)
	payrollUC := payrollusecase.NewPayrollUsecase(repos.Employees, payrolladapters.XLSXSheet{})
	productUC := productusecase.NewProductUsecase(products, mediaStore)
	billingUC := billingusecase.NewBillingUsecase(products, NewDraftStore(rdb, cfg.BillingDraftTTL))

	r := router.NewRouter(router.Deps{
		Logger:    logger,
		Metrics:   metrics.New(),
		Auth:      jwtmw.AuthRequired(tokens, authUC),
		User:      authhandler.NewAuthHandler(authUC),
		Employee:  employeehandler.NewEmployeeHandler(employeeUC),
		Payroll:   payrollhandler.NewPayrollHandler(payrollUC),
		Product:   producthandler.NewProductHandler(productUC),
		Billing:   billinghandler.NewBillingHandler(billingUC, billingadapters.NewInvoiceRenderer(time.Local, cfg.CurrencySymbol)),
		UploadDir: uploadDir,
	})
	return r, authUC
}

// Close releases Redis and the record store.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.rdb != nil {
		errs = append(errs, a.rdb.Close())
	}
	errs = append(errs, a.repos.Close(ctx))
	return errors.Join(errs...)
}

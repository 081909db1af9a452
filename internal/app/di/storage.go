package di

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"gorm.io/gorm"

	authadapters "shopdesk_backend/internal/feature/auth/adapters"
	authusecase "shopdesk_backend/internal/feature/auth/usecase"
	empadapters "shopdesk_backend/internal/feature/employee/adapters"
	empusecase "shopdesk_backend/internal/feature/employee/usecase"
	productadapters "shopdesk_backend/internal/feature/product/adapters"
	productusecase "shopdesk_backend/internal/feature/product/usecase"
	"shopdesk_backend/internal/platform/config"
	"shopdesk_backend/internal/platform/db"
	"shopdesk_backend/internal/platform/mongodb"
)

// Repositories are the record stores for the configured STORAGE_DRIVER.
// DB is nil for the document backend.
type Repositories struct {
	Users     authusecase.UserRepository
	Employees empusecase.EmployeeRepository
	Products  productusecase.ProductRepository
	DB        *gorm.DB

	close func(ctx context.Context) error
}

// Close releases the underlying connection.
func (r *Repositories) Close(ctx context.Context) error {
	if r.close == nil {
		return nil
	}
	return r.close(ctx)
}

// Models lists the GORM models migrated at startup.
func Models() []any {
	return []any{
		&authadapters.UserModel{},
		&authadapters.SessionModel{},
		&empadapters.EmployeeModel{},
		&productadapters.ProductModel{},
	}
}

// NewRepositories connects to the configured backend.
func NewRepositories(ctx context.Context, cfg config.Config) (*Repositories, error) {
	if cfg.StorageDriver == config.StorageMongo {
		return newMongoRepositories(ctx, cfg)
	}

	gdb, err := db.OpenDB(cfg, Models()...)
	if err != nil {
		return nil, err
	}
	slog.Info("relational storage ready", "driver", cfg.StorageDriver)
	return NewGormRepositories(gdb), nil
}

// NewGormRepositories wires the relational adapters to an open connection.
func NewGormRepositories(gdb *gorm.DB) *Repositories {
	return &Repositories{
		Users:     authadapters.NewUserGorm(gdb),
		Employees: empadapters.NewEmployeeGorm(gdb),
		Products:  productadapters.NewProductGorm(gdb),
		DB:        gdb,
		close: func(context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

func newMongoRepositories(ctx context.Context, cfg config.Config) (*Repositories, error) {
	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	mdb := client.Database(cfg.MongoDatabase)
	if err := mongodb.EnsureIndexes(ctx, mdb); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo indexes: %w", err)
	}
	return newMongoAdapters(mdb, client), nil
}

func newMongoAdapters(mdb *mongo.Database, client *mongo.Client) *Repositories {
	return &Repositories{
		Users:     authadapters.NewUserMongo(mdb),
		Employees: empadapters.NewEmployeeMongo(mdb),
		Products:  productadapters.NewProductMongo(mdb),
		close:     client.Disconnect,
	}
}

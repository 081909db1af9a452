// Package mongodb connects to the document database.
package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names.
const (
	UsersCollection     = "users"
	EmployeesCollection = "employees"
	ProductsCollection  = "products"
)

// Connect opens a client and pings the primary.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri).SetServerSelectionTimeout(10 * time.Second))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	slog.Info("mongo connected", "uri_host", hostOf(uri))
	return client, nil
}

// EnsureIndexes creates the unique email indexes users and employees rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, name := range []string{UsersCollection, EmployeesCollection} {
		_, err := db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		})
		if err != nil {
			return fmt.Errorf("create %s email index: %w", name, err)
		}
	}
	return nil
}

// hostOf strips the scheme and credentials from a mongo URI for logging.
func hostOf(uri string) string {
	if i := strings.LastIndex(uri, "@"); i >= 0 {
		return uri[i+1:]
	}
	uri = strings.TrimPrefix(uri, "mongodb+srv://")
	return strings.TrimPrefix(uri, "mongodb://")
}

// Now returns the current time at the precision BSON dates keep.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

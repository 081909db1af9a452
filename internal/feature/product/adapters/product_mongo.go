// Package adapters provides the catalog's storage implementations.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"shopdesk_backend/internal/feature/product/domain/entity"
	"shopdesk_backend/internal/feature/product/usecase"
	"shopdesk_backend/internal/platform/mongodb"
)

// productDoc mirrors the documents the original catalog wrote, so existing
// collections keep working. Price is a double there.
type productDoc struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"ProductName"`
	Price     float64       `bson:"price"`
	Qty       int           `bson:"qty"`
	Image     string        `bson:"ProductImage"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

func (d productDoc) toEntity() entity.Product {
	return entity.Product{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Price:     decimal.NewFromFloat(d.Price),
		Qty:       d.Qty,
		Image:     d.Image,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func productDocFrom(p *entity.Product) productDoc {
	return productDoc{
		Name:      p.Name,
		Price:     p.Price.InexactFloat64(),
		Qty:       p.Qty,
		Image:     p.Image,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type productMongo struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ usecase.ProductRepository = (*productMongo)(nil)

// NewProductMongo stores products in the products collection of db.
func NewProductMongo(db *mongo.Database) *productMongo {
	return &productMongo{coll: db.Collection(mongodb.ProductsCollection), now: mongodb.Now}
}

func (r *productMongo) Create(ctx context.Context, p *entity.Product) error {
	now := r.now()
	p.CreatedAt, p.UpdatedAt = now, now

	doc := productDocFrom(p)
	doc.ID = bson.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	p.ID = doc.ID.Hex()
	return nil
}

func (r *productMongo) FindAll(ctx context.Context) ([]entity.Product, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	out := make([]entity.Product, len(docs))
	for i, d := range docs {
		out[i] = d.toEntity()
	}
	return out, nil
}

func (r *productMongo) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, usecase.ErrProductNotFound
	}
	var d productDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	p := d.toEntity()
	return &p, nil
}

func (r *productMongo) Update(ctx context.Context, p *entity.Product) error {
	oid, err := bson.ObjectIDFromHex(p.ID)
	if err != nil {
		return usecase.ErrProductNotFound
	}
	p.UpdatedAt = r.now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"ProductName":  p.Name,
		"price":        p.Price.InexactFloat64(),
		"qty":          p.Qty,
		"ProductImage": p.Image,
		"updatedAt":    p.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return usecase.ErrProductNotFound
	}
	return nil
}

func (r *productMongo) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return usecase.ErrProductNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return usecase.ErrProductNotFound
	}
	return nil
}

// Package adapters provides the employee storage implementations.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"shopdesk_backend/internal/feature/employee/domain/entity"
	"shopdesk_backend/internal/feature/employee/usecase"
	"shopdesk_backend/internal/platform/mongodb"
)

// employeeDoc matches the documents of the original employees collection.
type employeeDoc struct {
	ID         bson.ObjectID   `bson:"_id,omitempty"`
	Name       string          `bson:"name"`
	Email      string          `bson:"email"`
	MobileNo   string          `bson:"mobileNo"`
	Position   string          `bson:"position"`
	DailyWage  float64         `bson:"dailyWage"`
	Image      string          `bson:"image,omitempty"`
	Attendance map[string]bool `bson:"attendance"`
	CreatedAt  time.Time       `bson:"createdAt"`
	UpdatedAt  time.Time       `bson:"updatedAt"`
}

func (d employeeDoc) toEntity() (entity.Employee, error) {
	att, err := entity.AttendanceFromStrings(d.Attendance)
	if err != nil {
		return entity.Employee{}, fmt.Errorf("employee %s attendance: %w", d.ID.Hex(), err)
	}
	return entity.Employee{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Email:      d.Email,
		MobileNo:   d.MobileNo,
		Position:   d.Position,
		DailyWage:  decimal.NewFromFloat(d.DailyWage),
		Image:      d.Image,
		Attendance: att,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}, nil
}

type employeeMongo struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ usecase.EmployeeRepository = (*employeeMongo)(nil)

// NewEmployeeMongo stores employees in the employees collection of db.
func NewEmployeeMongo(db *mongo.Database) *employeeMongo {
	return &employeeMongo{coll: db.Collection(mongodb.EmployeesCollection), now: mongodb.Now}
}

func (r *employeeMongo) Create(ctx context.Context, e *entity.Employee) error {
	now := r.now()
	e.CreatedAt, e.UpdatedAt = now, now
	doc := employeeDoc{
		ID:         bson.NewObjectID(),
		Name:       e.Name,
		Email:      e.Email,
		MobileNo:   e.MobileNo,
		Position:   e.Position,
		DailyWage:  e.DailyWage.InexactFloat64(),
		Image:      e.Image,
		Attendance: e.Attendance.Strings(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	e.ID = doc.ID.Hex()
	return nil
}

func (r *employeeMongo) FindAll(ctx context.Context) ([]entity.Employee, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find employees: %w", err)
	}
	var docs []employeeDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode employees: %w", err)
	}
	out := make([]entity.Employee, 0, len(docs))
	for _, d := range docs {
		e, err := d.toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *employeeMongo) FindByID(ctx context.Context, id string) (*entity.Employee, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, usecase.ErrEmployeeNotFound
	}
	return r.decodeOne(r.coll.FindOne(ctx, bson.M{"_id": oid}))
}

func (r *employeeMongo) decodeOne(res *mongo.SingleResult) (*entity.Employee, error) {
	var d employeeDoc
	if err := res.Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	e, err := d.toEntity()
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *employeeMongo) Update(ctx context.Context, e *entity.Employee) error {
	oid, err := bson.ObjectIDFromHex(e.ID)
	if err != nil {
		return usecase.ErrEmployeeNotFound
	}
	e.UpdatedAt = r.now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":      e.Name,
		"email":     e.Email,
		"mobileNo":  e.MobileNo,
		"position":  e.Position,
		"dailyWage": e.DailyWage.InexactFloat64(),
		"image":     e.Image,
		"updatedAt": e.UpdatedAt,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update employee: %w", err)
	}
	if res.MatchedCount == 0 {
		return usecase.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeMongo) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return usecase.ErrEmployeeNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if res.DeletedCount == 0 {
		return usecase.ErrEmployeeNotFound
	}
	return nil
}

// attendancePath is the dotted field path of one day in the attendance map.
func attendancePath(day civil.Date) string {
	return "attendance." + day.String()
}

// SetAttendance updates a single key of the map in place, so concurrent
// marks for other days are never overwritten.
func (r *employeeMongo) SetAttendance(ctx context.Context, id string, day civil.Date, present bool) (*entity.Employee, error) {
	return r.modify(ctx, id, bson.M{"$set": bson.M{attendancePath(day): present, "updatedAt": r.now()}})
}

func (r *employeeMongo) ClearAttendance(ctx context.Context, id string, day civil.Date) (*entity.Employee, error) {
	return r.modify(ctx, id, bson.M{
		"$unset": bson.M{attendancePath(day): ""},
		"$set":   bson.M{"updatedAt": r.now()},
	})
}

func (r *employeeMongo) modify(ctx context.Context, id string, update bson.M) (*entity.Employee, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, usecase.ErrEmployeeNotFound
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return r.decodeOne(r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts))
}

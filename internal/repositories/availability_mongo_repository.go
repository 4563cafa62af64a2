package repositories

import (
	"context"
	"errors"
	"time"

	"staffing-backend/internal/models"
	"staffing-backend/internal/timeutil"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAvailabilityRepository stores the registry as one document per staff
// member: {_id: staffId, dates: {"2026-05-01": "available"}, updated_at}.
type MongoAvailabilityRepository struct {
	Collection *mongo.Collection
}

func NewMongoAvailabilityRepository(db *mongo.Database) *MongoAvailabilityRepository {
	return &MongoAvailabilityRepository{Collection: db.Collection("availability")}
}

type availabilityDoc struct {
	StaffID   string                               `bson:"_id"`
	Dates     map[string]models.AvailabilityStatus `bson:"dates"`
	UpdatedAt time.Time                            `bson:"updated_at"`
}

func (d *availabilityDoc) model() *models.Availability {
	a := &models.Availability{StaffID: d.StaffID, Dates: d.Dates, UpdatedAt: d.UpdatedAt}
	if a.Dates == nil {
		a.Dates = map[string]models.AvailabilityStatus{}
	}
	return a
}

func (r *MongoAvailabilityRepository) decode(staffID string, res *mongo.SingleResult) (*models.Availability, error) {
	var doc availabilityDoc
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return emptyAvailability(staffID), nil
		}
		return nil, err
	}
	return doc.model(), nil
}

func (r *MongoAvailabilityRepository) Get(ctx context.Context, staffID string) (*models.Availability, error) {
	return r.decode(staffID, r.Collection.FindOne(ctx, bson.M{"_id": staffID}))
}

func (r *MongoAvailabilityRepository) Merge(ctx context.Context, staffID string, dates map[string]models.AvailabilityStatus) (*models.Availability, error) {
	set := bson.M{"updated_at": timeutil.Now()}
	for date, status := range dates {
		set["dates."+date] = status
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	return r.decode(staffID, r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": staffID}, bson.M{"$set": set}, opts))
}

func (r *MongoAvailabilityRepository) Clear(ctx context.Context, staffID string, dates []string) (*models.Availability, error) {
	unset := bson.M{}
	for _, date := range dates {
		unset["dates."+date] = ""
	}
	update := bson.M{"$unset": unset, "$set": bson.M{"updated_at": timeutil.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return r.decode(staffID, r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": staffID}, update, opts))
}

func (r *MongoAvailabilityRepository) StatusOnDate(ctx context.Context, staffIDs []string, date string) (map[string]models.AvailabilityStatus, error) {
	out := make(map[string]models.AvailabilityStatus)
	if len(staffIDs) == 0 {
		return out, nil
	}
	filter := bson.M{
		"_id":           bson.M{"$in": staffIDs},
		"dates." + date: bson.M{"$exists": true},
	}
	cursor, err := r.Collection.Find(ctx, filter, options.Find().SetProjection(bson.M{"dates." + date: 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc availabilityDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		if status, ok := doc.Dates[date]; ok {
			out[doc.StaffID] = status
		}
	}
	return out, cursor.Err()
}

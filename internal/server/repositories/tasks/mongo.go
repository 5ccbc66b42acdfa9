package tasks

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database, collection string) *MongoRepository {
	if collection == "" {
		collection = DefaultCollection
	}
	return &MongoRepository{coll: db.Collection(collection)}
}

func streamOptions(batchSize int32) *options.FindOptions {
	opts := options.Find().
		SetProjection(bson.D{{Key: "_id", Value: 1}, {Key: UserIDField, Value: 1}}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	if batchSize > 0 {
		opts.SetBatchSize(batchSize)
	}
	return opts
}

func (r *MongoRepository) Stream(ctx context.Context, batchSize int32) (Cursor, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, streamOptions(batchSize))
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	return cur, nil
}

func setUserIDUpdate(id primitive.ObjectID, from string, to primitive.ObjectID) (bson.D, bson.D) {
	filter := bson.D{{Key: "_id", Value: id}, {Key: UserIDField, Value: from}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: UserIDField, Value: to}}}}
	return filter, update
}

func (r *MongoRepository) SetUserID(ctx context.Context, id primitive.ObjectID, from string, to primitive.ObjectID) (bool, error) {
	filter, update := setUserIDUpdate(id, from, to)
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("update task %s: %w", id.Hex(), err)
	}
	return res.MatchedCount == 1, nil
}

package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tuktask/internal/common"
	"github.com/dmitrijs2005/tuktask/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName   = "users"
	EmailUniqueIndex = "email_unique"
)

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name,omitempty"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func toDocument(u *models.User) userDocument {
	return userDocument{
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.PasswordHash,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (d userDocument) toModel() *models.User {
	return &models.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// MongoRepository keeps users in a MongoDB collection.
type MongoRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName), now: time.Now}
}

// EnsureIndexes creates the unique index on email that backs duplicate
// detection under concurrent registrations.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName(EmailUniqueIndex).SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create index %s: %w", EmailUniqueIndex, err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	now := r.now().UTC().Truncate(time.Millisecond)
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, toDocument(user))
	if err != nil {
		return nil, translateError(err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}

	user.ID = id.Hex()
	return user, nil
}

func (r *MongoRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrorNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translateError(err)
	}
	return doc.toModel(), nil
}

func translateError(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return common.ErrorNotFound
	case mongo.IsDuplicateKeyError(err):
		return common.ErrorAlreadyExists
	default:
		return fmt.Errorf("db error: %w", err)
	}
}

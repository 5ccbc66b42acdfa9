package users

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/tuktask/internal/common"
	"github.com/dmitrijs2005/tuktask/internal/server/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestTranslateError(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}}}

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"no documents", mongo.ErrNoDocuments, common.ErrorNotFound},
		{"duplicate key", dup, common.ErrorAlreadyExists},
		{"other", errors.New("boom"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.in)
			if tt.want != nil {
				assert.ErrorIs(t, got, tt.want)
				return
			}
			assert.ErrorContains(t, got, "db error: boom")
			assert.NotErrorIs(t, got, common.ErrorNotFound)
			assert.NotErrorIs(t, got, common.ErrorAlreadyExists)
		})
	}
}

func TestUserDocument_RoundTrip(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	in := &models.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "h", CreatedAt: now, UpdatedAt: now}

	doc := toDocument(in)
	assert.True(t, doc.ID.IsZero(), "id is assigned by the store")

	raw, err := bson.Marshal(doc)
	assert.NoError(t, err)
	_, idErr := bson.Raw(raw).LookupErr("_id")
	assert.Error(t, idErr, "zero id must be omitted so the driver generates one")

	doc.ID = primitive.NewObjectID()
	out := doc.toModel()

	want := *in
	want.ID = doc.ID.Hex()
	if diff := cmp.Diff(want, *out); diff != "" {
		t.Errorf("toModel mismatch (-want +got):\n%s", diff)
	}
}

func TestUserDocument_PasswordFieldName(t *testing.T) {
	raw, err := bson.Marshal(toDocument(&models.User{Email: "a@b.c", PasswordHash: "hash"}))
	assert.NoError(t, err)

	assert.Equal(t, "hash", bson.Raw(raw).Lookup("password").StringValue())
	assert.Equal(t, "a@b.c", bson.Raw(raw).Lookup("email").StringValue())
}

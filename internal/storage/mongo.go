package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// KVCollection is the collection Mongo keeps its documents in.
const KVCollection = "kv"

type kvDocument struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Mongo stores the blob as a single document keyed by _id.
type Mongo struct {
	collection *mongo.Collection
	key        string
}

func NewMongo(db *mongo.Database, key string) *Mongo {
	if key == "" {
		key = DefaultKey
	}
	return &Mongo{
		collection: db.Collection(KVCollection),
		key:        key,
	}
}

func (m *Mongo) Read(ctx context.Context) ([]byte, bool, error) {
	var doc kvDocument
	err := m.collection.FindOne(ctx, bson.M{"_id": m.key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("mongo find %q: %w", m.key, err)
	}
	return doc.Value, true, nil
}

func (m *Mongo) Write(ctx context.Context, data []byte) error {
	doc := kvDocument{Key: m.key, Value: data, UpdatedAt: time.Now()}
	_, err := m.collection.ReplaceOne(ctx, bson.M{"_id": m.key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo replace %q: %w", m.key, err)
	}
	return nil
}

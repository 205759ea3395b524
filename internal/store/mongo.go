package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoStore is the primary backend. Document identifiers are kept as string
// UUIDs under Mongo's _id; the codec renames between "id" and "_id" so the
// layers above never see the Mongo-specific key.
type mongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects to the configured MongoDB deployment and pings it
// before returning.
func NewMongoStore(uri, database string) (Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &mongoStore{client: client, db: client.Database(database)}, nil
}

func (s *mongoStore) Create(ctx context.Context, collection string, id uuid.UUID, doc interface{}) error {
	fields, err := toDocument(doc)
	if err != nil {
		return err
	}
	delete(fields, "id")
	fields["_id"] = id.String()

	if _, err := s.db.Collection(collection).InsertOne(ctx, fields); err != nil {
		return fmt.Errorf("failed to create document in %s: %w", collection, err)
	}
	return nil
}

func (s *mongoStore) Get(ctx context.Context, collection string, id uuid.UUID, out interface{}) error {
	var doc map[string]interface{}
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get document from %s: %w", collection, err)
	}

	doc["id"] = doc["_id"]
	delete(doc, "_id")
	return fromDocument(doc, out)
}

func (s *mongoStore) Update(ctx context.Context, collection string, id uuid.UUID, fields map[string]interface{}) error {
	res, err := s.db.Collection(collection).UpdateOne(ctx,
		bson.M{"_id": id.String()},
		bson.M{"$set": fields},
	)
	if err != nil {
		return fmt.Errorf("failed to update document in %s: %w", collection, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoStore) List(ctx context.Context, collection string, filters []Filter, out interface{}) error {
	query := bson.M{}
	for _, f := range filters {
		query[f.Field] = f.Value
	}

	cursor, err := s.db.Collection(collection).Find(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to list documents in %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var docs []map[string]interface{}
	if err := cursor.All(ctx, &docs); err != nil {
		return fmt.Errorf("failed to read documents from %s: %w", collection, err)
	}
	for _, doc := range docs {
		doc["id"] = doc["_id"]
		delete(doc, "_id")
	}
	return fromDocuments(docs, out)
}

func (s *mongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

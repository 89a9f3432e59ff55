package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements DocumentStore on a mongo database, one collection
// per record type.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) List(ctx context.Context, collection string) ([]Document, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("MongoStore.List %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var docs []Document
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("MongoStore.List %s: decode: %w", collection, err)
		}
		docs = append(docs, documentFromRaw(raw))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("MongoStore.List %s: %w", collection, err)
	}
	return docs, nil
}

func (s *MongoStore) Get(ctx context.Context, collection, id string) (Document, bool, error) {
	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, idFilter(id)).Decode(&raw)
	if err == mongo.ErrNoDocuments {
		return Document{}, false, nil
	}
	if err != nil {
		return Document{}, false, fmt.Errorf("MongoStore.Get %s/%s: %w", collection, id, err)
	}
	return documentFromRaw(raw), true, nil
}

func (s *MongoStore) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, bson.M(fields))
	if err != nil {
		return "", fmt.Errorf("MongoStore.Add %s: %w", collection, err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprintf("%v", res.InsertedID), nil
}

func (s *MongoStore) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	doc := bson.M{"_id": id}
	for key, value := range fields {
		doc[key] = value
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.db.Collection(collection).ReplaceOne(ctx, idFilter(id), doc, opts); err != nil {
		return fmt.Errorf("MongoStore.Set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *MongoStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	res, err := s.db.Collection(collection).UpdateOne(ctx, idFilter(id), bson.M{"$set": bson.M(fields)})
	if err != nil {
		return fmt.Errorf("MongoStore.Update %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.db.Collection(collection).DeleteOne(ctx, idFilter(id)); err != nil {
		return fmt.Errorf("MongoStore.Delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// idFilter matches either a driver-assigned ObjectID (listings, dealerships)
// or a caller-assigned string id (users).
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": oid}
	}
	return bson.M{"_id": id}
}

func documentFromRaw(raw bson.M) Document {
	doc := Document{Fields: map[string]any(raw)}
	switch id := raw["_id"].(type) {
	case primitive.ObjectID:
		doc.ID = id.Hex()
	case string:
		doc.ID = id
	}
	delete(raw, "_id")
	return doc
}

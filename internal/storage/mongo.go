package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const mongoOpTimeout = 5 * time.Second

// stateDoc is one persisted blob: _id is the state key, data the JSON value.
type stateDoc struct {
	Key  string `bson:"_id"`
	Data []byte `bson:"data"`
}

// MongoGateway stores state blobs in a single `state` collection.
type MongoGateway struct {
	states *mongo.Collection
}

// ConnectMongo dials MongoDB and verifies the connection with a ping.
func ConnectMongo(ctx context.Context, uri, dbName string) (*MongoGateway, error) {
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &MongoGateway{states: client.Database(dbName).Collection("state")}, nil
}

func (g *MongoGateway) Load(ctx context.Context, key string) ([]byte, error) {
	opCtx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	var doc stateDoc
	err := g.states.FindOne(opCtx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrKeyMissing
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return doc.Data, nil
}

func (g *MongoGateway) Save(ctx context.Context, key string, value []byte) error {
	opCtx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	_, err := g.states.ReplaceOne(
		opCtx,
		bson.M{"_id": key},
		stateDoc{Key: key, Data: value},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (g *MongoGateway) Close(ctx context.Context) error {
	return g.states.Database().Client().Disconnect(ctx)
}

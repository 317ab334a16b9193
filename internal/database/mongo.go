package database

import (
	"context"
	"fmt"
	"log"
	"strings"

	"catalog/internal/config"
	"catalog/internal/repositories"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func openMongo(ctx context.Context, uri, dbName string) (*Stores, error) {
	opts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Printf("MongoDB connected: %s", strings.Join(opts.Hosts, ","))

	db := client.Database(dbName)
	return &Stores{
		Products: repositories.NewMongoProductRepository(db),
		Users:    repositories.NewMongoUserRepository(db),
		Backend:  config.DriverMongo,
		closeFn:  client.Disconnect,
	}, nil
}

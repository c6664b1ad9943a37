package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ProductsCollection *mongo.Collection
	Client             *mongo.Client
)

// Connect dials MongoDB and binds the catalog collection. The catalog source
// is optional: callers fall back to the seed provider when this fails.
func Connect(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}

	Client = client
	ProductsCollection = client.Database("storefront").Collection("products")
	return nil
}

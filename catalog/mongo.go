package catalog

import (
	"context"
	"time"

	"vitrina/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoProvider reads the product collection from MongoDB, for deployments
// that seed the catalog out of band.
type MongoProvider struct {
	coll *mongo.Collection
}

func NewMongoProvider(coll *mongo.Collection) *MongoProvider {
	return &MongoProvider{coll: coll}
}

func (p *MongoProvider) Products(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := p.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

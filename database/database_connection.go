package database

import (
	"context"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

var (
	dbClient *mongo.Client
	dialOnce sync.Once
)

// Connect dials Mongo once and keeps the client for the process lifetime.
func Connect() *mongo.Client {
	dialOnce.Do(func() {
		serverAPI := options.ServerAPI(options.ServerAPIVersion1)
		if err := godotenv.Load(); err != nil {
			logrus.Debug("no .env file found, using system environment variables")
		}
		uri := os.Getenv("MONGODB_URI")
		opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)
		client, err := mongo.Connect(opts)
		if err != nil {
			logrus.WithError(err).Fatal("mongo connect failed")
		}
		if err := client.Ping(context.Background(), readpref.Primary()); err != nil {
			logrus.WithError(err).Fatal("mongo ping failed")
		}
		logrus.Info("connected to MongoDB")
		dbClient = client
	})
	return dbClient
}

// OpenCollection returns a handle into the configured database.
func OpenCollection(collectionName string) *mongo.Collection {
	client := Connect()
	return client.Database(os.Getenv("DATABASE_NAME")).Collection(collectionName)
}

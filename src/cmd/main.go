package main

import (
	"log"

	"github.com/joho/godotenv"

	"carscout/src/app"
	cfg "carscout/src/configuration"
	"carscout/src/repository"
	"carscout/src/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded")
	}
	config := cfg.ReadProperties()

	client, err := app.NewMongoClient(config.Mongo.URI, config.Mongo.ConnectTimeout)
	if err != nil {
		log.Fatalf("could not connect to mongo: %v", err)
	}
	store := repository.NewMongoStore(client.Database(config.Mongo.Database))

	blobs, err := app.NewMinioS3Client(
		config.S3.Host,
		config.S3.AccessKey,
		config.S3.SecretKey,
		config.S3.Bucket,
		config.S3.UseSSL)
	if err != nil {
		log.Fatalf("could not connect to minio: %v", err)
	}

	server.RunServer(config, store, blobs)
}

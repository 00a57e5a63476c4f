// migrate creates the MongoDB indexes the backend relies on: unique keys on
// users.email and students.student_id. Safe to run repeatedly.
package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shakthii1407/student-app/app/config"
)

func main() {
	log.Println("Starting index migration...")

	config.LoadEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.Env.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(config.Env.MongoDB)

	ensureIndex(ctx, db.Collection("users"), "email")
	ensureIndex(ctx, db.Collection("students"), "student_id")

	log.Println("Index migration completed successfully!")
}

func ensureIndex(ctx context.Context, coll *mongo.Collection, field string) {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("Error creating %s index on %s: %v", field, coll.Name(), err)
		return
	}
	log.Printf("Ensured unique index on %s.%s", coll.Name(), field)
}

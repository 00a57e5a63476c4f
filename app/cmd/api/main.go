package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shakthii1407/student-app/app/config"
	"github.com/shakthii1407/student-app/app/server"
)

func connectMongo() *mongo.Database {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.Env.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}

	log.Println("Connected to MongoDB successfully")
	return client.Database(config.Env.MongoDB)
}

func main() {
	config.LoadEnv()

	if config.Env.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	db := connectMongo()

	app := fiber.New()
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	srv := server.New(
		server.NewMongoUserStore(db),
		server.NewMongoStudentStore(db),
		config.Env.JWTSecret,
	)
	srv.SetupRoutes(app)

	log.Println("API listening on :" + config.Env.APIPort)
	log.Fatal(app.Listen(":" + config.Env.APIPort))
}

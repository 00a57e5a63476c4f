// add_user creates a dashboard account directly in MongoDB, bypassing the
// /signup endpoint. Handy for seeding a first login on a fresh database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/shakthii1407/student-app/app/config"
	"github.com/shakthii1407/student-app/app/models"
	"github.com/shakthii1407/student-app/app/server"
)

func main() {
	name := flag.String("name", "", "Account name")
	email := flag.String("email", "", "Account email")
	password := flag.String("password", "", "Account password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("--email and --password are required")
	}

	config.LoadEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.Env.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer client.Disconnect(ctx)

	users := server.NewMongoUserStore(client.Database(config.Env.MongoDB))

	if _, err := users.FindByEmail(ctx, *email); err == nil {
		log.Fatalf("User %s already exists", *email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	user := &models.User{
		ID:        uuid.NewString(),
		Name:      *name,
		Email:     *email,
		Password:  string(hashed),
		CreatedAt: time.Now(),
	}
	if err := users.Insert(ctx, user); err != nil {
		log.Fatal("Failed to create user:", err)
	}

	fmt.Printf("User created successfully: %s (%s)\n", user.Name, user.Email)
}

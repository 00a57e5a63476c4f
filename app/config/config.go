package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type EnvConfig struct {
	AppPort   string // dashboard web app listen port
	APIPort   string // backend API listen port
	APIURL    string // base URL the dashboard uses to reach the backend
	MongoURI  string
	MongoDB   string
	JWTSecret string
}

var Env EnvConfig

// LoadEnv reads .env (if present) and environment variables into Env.
// Development defaults are filled in for everything except JWT_SECRET,
// which the API service refuses to run without.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	Env.AppPort = getenv("APP_PORT", "3000")
	Env.APIPort = getenv("API_PORT", "8000")
	Env.APIURL = getenv("API_URL", "http://localhost:8000")
	Env.MongoURI = getenv("MONGO_URI", "mongodb://localhost:27017")
	Env.MongoDB = getenv("MONGO_DB_NAME", "backend")
	Env.JWTSecret = os.Getenv("JWT_SECRET")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

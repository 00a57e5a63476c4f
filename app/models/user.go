package models

import "time"

// User is a dashboard account stored by the backend service. The password
// field holds the bcrypt hash and is never serialized into responses.
type User struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Password  string    `json:"-" bson:"password"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

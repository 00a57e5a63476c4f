package server

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shakthii1407/student-app/app/models"
)

// ErrNotFound is returned by stores when no document matches the lookup key.
var ErrNotFound = errors.New("not found")

// UserStore persists dashboard accounts.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
}

// StudentStore persists student records keyed by student_id.
type StudentStore interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	Insert(ctx context.Context, s *models.Student) error
	Update(ctx context.Context, id string, s *models.Student) error
	Delete(ctx context.Context, id string) error
}

// MongoUserStore keeps users in the "users" collection.
type MongoUserStore struct {
	coll *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{coll: db.Collection("users")}
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) Insert(ctx context.Context, user *models.User) error {
	_, err := s.coll.InsertOne(ctx, user)
	return err
}

// MongoStudentStore keeps students in the "students" collection.
type MongoStudentStore struct {
	coll *mongo.Collection
}

func NewMongoStudentStore(db *mongo.Database) *MongoStudentStore {
	return &MongoStudentStore{coll: db.Collection("students")}
}

func (s *MongoStudentStore) List(ctx context.Context) ([]models.Student, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	students := []models.Student{}
	if err := cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (s *MongoStudentStore) FindByID(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	err := s.coll.FindOne(ctx, bson.M{"student_id": id}).Decode(&student)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *MongoStudentStore) Insert(ctx context.Context, student *models.Student) error {
	_, err := s.coll.InsertOne(ctx, student)
	return err
}

func (s *MongoStudentStore) Update(ctx context.Context, id string, student *models.Student) error {
	result, err := s.coll.UpdateOne(ctx, bson.M{"student_id": id}, bson.M{"$set": student})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStudentStore) Delete(ctx context.Context, id string) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"student_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

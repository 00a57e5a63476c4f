package models

// Student is the single record type the dashboard manages. StudentID is the
// stable key used for search, update and delete; it never changes after
// creation.
type Student struct {
	StudentID  string `json:"student_id" bson:"student_id"`
	Name       string `json:"name" bson:"name"`
	Age        int    `json:"age" bson:"age"`
	Email      string `json:"email" bson:"email"`
	Department string `json:"department" bson:"department"`
	Gender     string `json:"gender" bson:"gender"`
}

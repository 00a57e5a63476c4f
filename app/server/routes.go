// Package server implements the student backend REST API: signup/login with
// bcrypt-hashed passwords and JWT bearer tokens, plus the student CRUD
// endpoints the dashboard consumes. Errors travel as {"detail": "..."} JSON.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// Server wires the stores and signing secret into the API handlers.
type Server struct {
	Users     UserStore
	Students  StudentStore
	JWTSecret string
}

func New(users UserStore, students StudentStore, jwtSecret string) *Server {
	return &Server{Users: users, Students: students, JWTSecret: jwtSecret}
}

func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", s.RootAPI)
	app.Post("/signup", s.SignupAPI)
	app.Post("/login", s.LoginAPI)

	students := app.Group("/students", s.BearerAuth())
	students.Post("/", s.AddStudentAPI)
	students.Get("/", s.GetStudentsAPI)
	students.Get("/:id", s.GetStudentAPI)
	students.Put("/:id", s.UpdateStudentAPI)
	students.Delete("/:id", s.DeleteStudentAPI)
}

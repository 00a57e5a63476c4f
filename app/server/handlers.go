package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shakthii1407/student-app/app/models"
)

func (s *Server) RootAPI(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Student backend is running!"})
}

func (s *Server) SignupAPI(c *fiber.Ctx) error {
	type SignupRequest struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"detail": "Invalid request"})
	}

	if _, err := s.Users.FindByEmail(c.Context(), req.Email); err == nil {
		return c.Status(400).JSON(fiber.Map{"detail": "Email already exists"})
	} else if !errors.Is(err, ErrNotFound) {
		return c.Status(500).JSON(fiber.Map{"detail": "Database error"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"detail": "Failed to hash password"})
	}

	user := &models.User{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashed),
		CreatedAt: time.Now(),
	}
	if err := s.Users.Insert(c.Context(), user); err != nil {
		return c.Status(500).JSON(fiber.Map{"detail": "Database error"})
	}

	return c.Status(201).JSON(fiber.Map{"message": "User created successfully"})
}

func (s *Server) LoginAPI(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"detail": "Invalid request"})
	}

	user, err := s.Users.FindByEmail(c.Context(), req.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(400).JSON(fiber.Map{"detail": "Email not found"})
		}
		return c.Status(500).JSON(fiber.Map{"detail": "Database error"})
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return c.Status(401).JSON(fiber.Map{"detail": "Incorrect password"})
	}

	token, err := s.CreateToken(user.Email)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"detail": "Failed to generate token"})
	}

	return c.JSON(fiber.Map{"access_token": token, "token_type": "bearer"})
}

func (s *Server) AddStudentAPI(c *fiber.Ctx) error {
	var student models.Student
	if err := c.BodyParser(&student); err != nil {
		return c.Status(400).JSON(fiber.Map{"detail": "Invalid request"})
	}

	if _, err := s.Students.FindByID(c.Context(), student.StudentID); err == nil {
		return c.Status(400).JSON(fiber.Map{"detail": "Student ID already exists"})
	} else if !errors.Is(err, ErrNotFound) {
		return c.Status(500).JSON(fiber.Map{"detail": "Database error"})
	}

	if err := s.Students.Insert(c.Context(), &student); err != nil {
		return c.Status(500).JSON(fiber.Map{"detail": "Database error"})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Student added successfully"})
}

func (s *Server) GetStudentsAPI(c *fiber.Ctx) error {
	students, err := s.Students.List(c.Context())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"detail": "Database error"})
	}
	return c.JSON(students)
}

func (s *Server) GetStudentAPI(c *fiber.Ctx) error {
	student, err := s.Students.FindByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"detail": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"detail": "Database error"})
	}
	return c.JSON(student)
}

func (s *Server) UpdateStudentAPI(c *fiber.Ctx) error {
	var student models.Student
	if err := c.BodyParser(&student); err != nil {
		return c.Status(400).JSON(fiber.Map{"detail": "Invalid request"})
	}

	id := c.Params("id")
	if err := s.Students.Update(c.Context(), id, &student); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"detail": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"detail": "Database error"})
	}

	updated, err := s.Students.FindByID(c.Context(), id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"detail": "Database error"})
	}

	return c.JSON(fiber.Map{"message": "Student updated successfully", "student": updated})
}

func (s *Server) DeleteStudentAPI(c *fiber.Ctx) error {
	if err := s.Students.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"detail": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"detail": "Database error"})
	}
	return c.JSON(fiber.Map{"message": "Student deleted successfully"})
}

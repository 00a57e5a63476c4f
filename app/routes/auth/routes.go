package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shakthii1407/student-app/app/api"
	"github.com/shakthii1407/student-app/app/session"
)

// Handler serves the auth view: the login/signup card shown whenever no
// session token is present.
type Handler struct {
	API  *api.Client
	Gate *session.Gate
}

func New(client *api.Client, gate *session.Gate) *Handler {
	return &Handler{API: client, Gate: gate}
}

func (h *Handler) SetupAuthRoutes(app *fiber.App) {
	app.Get("/login", h.Gate.RedirectAuthed(), h.ShowLoginPage)
	app.Post("/login", h.LoginAPI)
	app.Post("/signup", h.SignupAPI)
}

// ShowLoginPage renders the auth card. ?mode=signup switches the form into
// signup mode; the toggle is a plain link, nothing about request outcomes
// decides the mode.
func (h *Handler) ShowLoginPage(c *fiber.Ctx) error {
	return c.Render("auth/login", fiber.Map{
		"Title":  "Login - Student Dashboard",
		"Mode":   mode(c.Query("mode")),
		"Name":   "",
		"Email":  "",
		"Notice": session.PopFlash(c),
	}, "")
}

func mode(m string) string {
	if m == "signup" {
		return "signup"
	}
	return "login"
}

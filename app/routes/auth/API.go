package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/shakthii1407/student-app/app/api"
	"github.com/shakthii1407/student-app/app/session"
)

// LoginAPI submits the login form to the backend. On success the issued
// access token is handed to the session gate and the dashboard takes over.
// On any failure the card is re-rendered in login mode with a notice; no
// session state changes.
func (h *Handler) LoginAPI(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	token, err := h.API.Login(email, password)
	if err != nil {
		return h.renderFailure(c, "login", "", email, err, "Error")
	}

	h.Gate.SetToken(c, token)
	return c.Redirect("/dashboard")
}

// SignupAPI submits the signup form. Success does not authenticate: the card
// switches back to login mode with a notice, exactly once.
func (h *Handler) SignupAPI(c *fiber.Ctx) error {
	name := c.FormValue("name")
	email := c.FormValue("email")
	password := c.FormValue("password")

	if err := h.API.Signup(name, email, password); err != nil {
		return h.renderFailure(c, "signup", name, email, err, "Error")
	}

	session.Flash(c, "Signup successful. Please login.")
	return c.Redirect("/login")
}

// renderFailure re-renders the auth card after a failed submit. Transport
// failures get the generic unreachable notice; backend failures surface the
// backend's detail message, falling back to fallback when none was provided.
func (h *Handler) renderFailure(c *fiber.Ctx, mode, name, email string, err error, fallback string) error {
	notice := fallback
	if errors.Is(err, api.ErrBackendUnreachable) {
		notice = "Backend not reachable"
	} else {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Detail != "" {
			notice = apiErr.Detail
		}
	}

	return c.Render("auth/login", fiber.Map{
		"Title":  "Login - Student Dashboard",
		"Mode":   mode,
		"Name":   name,
		"Email":  email,
		"Notice": notice,
	}, "")
}

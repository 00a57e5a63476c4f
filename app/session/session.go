package session

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	tokenCookie  = "session_token"
	noticeCookie = "notice"
)

// Gate owns the session token. It is the single decision point for whether a
// request sees the auth view or the dashboard: token present means dashboard,
// token absent means auth. The token lives in an HTTP-only cookie so it
// survives restarts until an explicit logout or a forbidden response clears it.
type Gate struct {
	// TTL bounds how long the browser keeps the token cookie. The backend
	// expires the token itself well before this.
	TTL time.Duration
}

func NewGate() *Gate {
	return &Gate{TTL: 24 * time.Hour}
}

// Token returns the current session token, or "" when logged out.
func (g *Gate) Token(c *fiber.Ctx) string {
	return c.Cookies(tokenCookie)
}

// SetToken stores token in the session cookie. An empty token removes the
// cookie, which is how both logout and forbidden-response fallback work.
func (g *Gate) SetToken(c *fiber.Ctx, token string) {
	if token == "" {
		c.Cookie(&fiber.Cookie{
			Name:     tokenCookie,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			SameSite: "Lax",
		})
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     tokenCookie,
		Value:    token,
		Expires:  time.Now().Add(g.TTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// Require redirects to the login page when no token is present.
func (g *Gate) Require() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if g.Token(c) == "" {
			return c.Redirect("/login")
		}
		return c.Next()
	}
}

// RedirectAuthed sends already-logged-in users straight to the dashboard when
// they hit an auth page.
func (g *Gate) RedirectAuthed() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if g.Token(c) != "" {
			return c.Redirect("/dashboard")
		}
		return c.Next()
	}
}

// Flash stores a one-shot notice shown on the next rendered page. It carries
// the messages the dashboard surfaces after a redirect (signup success,
// delete confirmation prompts aside, load failures and the like).
func Flash(c *fiber.Ctx, msg string) {
	// Cookie values cannot carry spaces, so the notice travels URL-encoded.
	c.Cookie(&fiber.Cookie{
		Name:     noticeCookie,
		Value:    url.QueryEscape(msg),
		Expires:  time.Now().Add(time.Minute),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// PopFlash returns the pending notice, if any, and clears it.
func PopFlash(c *fiber.Ctx) string {
	msg, err := url.QueryUnescape(c.Cookies(noticeCookie))
	if err != nil {
		msg = ""
	}
	if msg != "" {
		c.Cookie(&fiber.Cookie{
			Name:     noticeCookie,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			SameSite: "Lax",
		})
	}
	return msg
}

package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"

	"github.com/shakthii1407/student-app/app/api"
	"github.com/shakthii1407/student-app/app/config"
	"github.com/shakthii1407/student-app/app/routes/auth"
	"github.com/shakthii1407/student-app/app/routes/dashboard"
	"github.com/shakthii1407/student-app/app/session"
)

// customErrorHandler renders unexpected errors as a plain error page instead
// of fiber's default text response.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).Render("error", fiber.Map{
		"Title":        "Error - Student Dashboard",
		"ErrorCode":    code,
		"ErrorMessage": err.Error(),
	}, "")
}

func main() {
	config.LoadEnv()

	// Initialize template engine
	engine := html.New("./app/templates", ".html")

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Static files
	app.Static("/static", "./static")

	gate := session.NewGate()
	client := api.NewClient(config.Env.APIURL)

	// The root route is the session gate: token present renders the
	// dashboard, token absent renders the auth card.
	app.Get("/", func(c *fiber.Ctx) error {
		if gate.Token(c) != "" {
			return c.Redirect("/dashboard")
		}
		return c.Redirect("/login")
	})

	auth.New(client, gate).SetupAuthRoutes(app)
	dashboard.New(client, gate).SetupDashboardRoutes(app)

	log.Println("Dashboard listening on :" + config.Env.AppPort)
	log.Fatal(app.Listen(":" + config.Env.AppPort))
}

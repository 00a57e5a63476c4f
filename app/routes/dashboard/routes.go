package dashboard

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/shakthii1407/student-app/app/api"
	"github.com/shakthii1407/student-app/app/models"
	"github.com/shakthii1407/student-app/app/session"
)

// Handler serves the dashboard view: the student table, the search box and
// the add/edit form. Every backend call it makes carries the session token as
// a bearer credential; a 403 on any of them clears the session and falls back
// to the auth view.
type Handler struct {
	API  *api.Client
	Gate *session.Gate
}

func New(client *api.Client, gate *session.Gate) *Handler {
	return &Handler{API: client, Gate: gate}
}

func (h *Handler) SetupDashboardRoutes(app *fiber.App) {
	app.Get("/dashboard", h.Gate.Require(), h.GetDashboard)

	students := app.Group("/students", h.Gate.Require())
	students.Post("/", h.AddStudentAPI)
	students.Post("/:id", h.UpdateStudentAPI)
	students.Post("/:id/delete", h.DeleteStudentAPI)

	app.Post("/logout", h.LogoutAPI)
}

// viewState is everything the dashboard template renders. The form section of
// the page is driven by ShowForm/IsEdit; the table always shows Students.
type viewState struct {
	Students []models.Student
	SearchID string
	ShowForm bool
	IsEdit   bool
	Form     models.Student
	AgeInput string // raw age text, redisplayed verbatim while the form is open
	Notice   string
}

// GetDashboard renders the student table. The query string carries the view
// state: search_id narrows the table to one record, form=add / form=edit&id=...
// opens the form. A plain /dashboard is always a full, fresh list.
func (h *Handler) GetDashboard(c *fiber.Ctx) error {
	token := h.Gate.Token(c)

	state := viewState{Notice: session.PopFlash(c)}

	students, err := h.API.ListStudents(token)
	if err != nil {
		if api.IsForbidden(err) {
			h.Gate.SetToken(c, "")
			return c.Redirect("/login")
		}
		// Transport failure: keep the page up with an empty table and a
		// notice, matching the original behavior.
		state.Notice = "Cannot load students"
		return h.render(c, state)
	}
	state.Students = students

	// Search supersedes the full listing until the next plain reload.
	if searchID, ok := c.Queries()["search_id"]; ok {
		state.SearchID = searchID
		trimmed := strings.TrimSpace(searchID)
		if trimmed == "" {
			state.Notice = "Enter Student ID"
		} else if student, err := h.API.GetStudent(token, trimmed); err != nil {
			if api.IsForbidden(err) {
				h.Gate.SetToken(c, "")
				return c.Redirect("/login")
			}
			state.Notice = "Student not found"
		} else {
			state.Students = []models.Student{*student}
		}
	}

	switch c.Query("form") {
	case "add":
		state.ShowForm = true
	case "edit":
		// Edit prefills the form from the row the button was clicked on; the
		// student_id field is the update key and stays immutable.
		id := c.Query("id")
		for _, s := range state.Students {
			if s.StudentID == id {
				state.ShowForm = true
				state.IsEdit = true
				state.Form = s
				break
			}
		}
	}

	return h.render(c, state)
}

func (h *Handler) render(c *fiber.Ctx, state viewState) error {
	ageInput := state.AgeInput
	if ageInput == "" && state.ShowForm && state.IsEdit {
		ageInput = strconv.Itoa(state.Form.Age)
	}
	return c.Render("dashboard/index", fiber.Map{
		"Title":    "Student Dashboard",
		"Students": state.Students,
		"SearchID": state.SearchID,
		"ShowForm": state.ShowForm,
		"IsEdit":   state.IsEdit,
		"Form":     state.Form,
		"AgeInput": ageInput,
		"Notice":   state.Notice,
	}, "")
}

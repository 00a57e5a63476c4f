package dashboard

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/shakthii1407/student-app/app/api"
	"github.com/shakthii1407/student-app/app/models"
)

// formStudent reads the add/edit form into a Student, coercing the age text
// to an integer the way the original did (blank or garbage becomes zero; the
// backend is the authority on whether that is acceptable).
func formStudent(c *fiber.Ctx) (models.Student, string) {
	ageInput := c.FormValue("age")
	age, _ := strconv.Atoi(strings.TrimSpace(ageInput))
	return models.Student{
		StudentID:  c.FormValue("student_id"),
		Name:       c.FormValue("name"),
		Age:        age,
		Email:      c.FormValue("email"),
		Department: c.FormValue("department"),
		Gender:     c.FormValue("gender"),
	}, ageInput
}

// AddStudentAPI submits the add form. Failure keeps the form open with the
// submitted values so the user can correct and resubmit; success closes it
// and redirects, which reloads the list fresh from the backend.
func (h *Handler) AddStudentAPI(c *fiber.Ctx) error {
	student, ageInput := formStudent(c)

	if err := h.API.AddStudent(h.Gate.Token(c), student); err != nil {
		if api.IsForbidden(err) {
			h.Gate.SetToken(c, "")
			return c.Redirect("/login")
		}
		return h.renderFormFailure(c, student, ageInput, false, err, "Add failed")
	}

	return c.Redirect("/dashboard")
}

// UpdateStudentAPI submits the edit form. The update is keyed by the path
// id the edit was opened with, never by anything typed into the form.
func (h *Handler) UpdateStudentAPI(c *fiber.Ctx) error {
	id := c.Params("id")
	student, ageInput := formStudent(c)
	student.StudentID = id

	if err := h.API.UpdateStudent(h.Gate.Token(c), id, student); err != nil {
		if api.IsForbidden(err) {
			h.Gate.SetToken(c, "")
			return c.Redirect("/login")
		}
		return h.renderFormFailure(c, student, ageInput, true, err, "Update failed")
	}

	return c.Redirect("/dashboard")
}

// DeleteStudentAPI removes a student. The outcome of the delete request is
// deliberately not inspected: the list is reloaded regardless, reproducing
// the original's behavior (delete failures are never surfaced).
func (h *Handler) DeleteStudentAPI(c *fiber.Ctx) error {
	_ = h.API.DeleteStudent(h.Gate.Token(c), c.Params("id"))
	return c.Redirect("/dashboard")
}

// LogoutAPI clears the session. No backend call is involved.
func (h *Handler) LogoutAPI(c *fiber.Ctx) error {
	h.Gate.SetToken(c, "")
	return c.Redirect("/login")
}

// renderFormFailure re-renders the dashboard with the form still open after a
// failed mutation. The list behind the form is reloaded so the table stays
// server-truth; the notice carries the backend's detail when it sent one.
func (h *Handler) renderFormFailure(c *fiber.Ctx, form models.Student, ageInput string, isEdit bool, err error, fallback string) error {
	notice := fallback
	if errors.Is(err, api.ErrBackendUnreachable) {
		notice = "Backend not reachable"
	} else {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Detail != "" {
			notice = apiErr.Detail
		}
	}

	state := viewState{
		ShowForm: true,
		IsEdit:   isEdit,
		Form:     form,
		AgeInput: ageInput,
		Notice:   notice,
	}
	if students, lerr := h.API.ListStudents(h.Gate.Token(c)); lerr == nil {
		state.Students = students
	}
	return h.render(c, state)
}

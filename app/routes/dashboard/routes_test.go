package dashboard

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shakthii1407/student-app/app/api"
	"github.com/shakthii1407/student-app/app/models"
	"github.com/shakthii1407/student-app/app/session"
)

// fakeBackend is a minimal stand-in for the student API. It records how the
// dashboard talks to it and serves a fixed list of students.
type fakeBackend struct {
	students []models.Student

	listCalls   int
	lastAuth    string
	lastBody    []byte
	lastMethod  string
	lastPath    string
	failStatus  int    // non-zero: mutations answer this status
	failDetail  string // detail body sent with failStatus
	forbidAll   bool   // every request answers 403
	missSearch  bool   // GET /students/{id} answers 404
	deleteCalls int
}

func (f *fakeBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.lastAuth = r.Header.Get("Authorization")
		f.lastMethod = r.Method
		f.lastPath = r.URL.Path
		f.lastBody, _ = io.ReadAll(r.Body)

		if f.forbidAll {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid or expired token"})
			return
		}

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/students":
			f.listCalls++
			json.NewEncoder(w).Encode(f.students)
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/students/"):
			if f.missSearch {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(map[string]string{"detail": "Student not found"})
				return
			}
			id := strings.TrimPrefix(r.URL.Path, "/students/")
			for _, s := range f.students {
				if s.StudentID == id {
					json.NewEncoder(w).Encode(s)
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Student not found"})
		case r.Method == http.MethodDelete:
			f.deleteCalls++
			if f.failStatus != 0 {
				w.WriteHeader(f.failStatus)
				json.NewEncoder(w).Encode(map[string]string{"detail": f.failDetail})
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"message": "Student deleted successfully"})
		default: // POST /students, PUT /students/{id}
			if f.failStatus != 0 {
				w.WriteHeader(f.failStatus)
				json.NewEncoder(w).Encode(map[string]string{"detail": f.failDetail})
				return
			}
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
		}
	})
}

func newTestApp(backendURL string) *fiber.App {
	engine := html.New("../../templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	New(api.NewClient(backendURL), session.NewGate()).SetupDashboardRoutes(app)
	return app
}

func authedRequest(method, path string, form url.Values) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.AddCookie(&http.Cookie{Name: "session_token", Value: "tok1"})
	return req
}

func page(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "session_token" {
			return c
		}
	}
	return nil
}

var sampleStudents = []models.Student{
	{StudentID: "S1", Name: "Alice", Age: 20, Email: "alice@x.com", Department: "CS", Gender: "F"},
	{StudentID: "S2", Name: "Bob", Age: 22, Email: "bob@x.com", Department: "EE", Gender: "M"},
}

func TestDashboardRendersFullList(t *testing.T) {
	backend := &fakeBackend{students: sampleStudents}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	app := newTestApp(srv.URL)
	resp, err := app.Test(authedRequest(http.MethodGet, "/dashboard", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, backend.listCalls, "one fresh list fetch per render")
	assert.Equal(t, "Bearer tok1", backend.lastAuth)

	body := page(t, resp)
	assert.Contains(t, body, "Alice")
	assert.Contains(t, body, "Bob")
}

func TestForbiddenClearsSessionAndFallsBack(t *testing.T) {
	backend := &fakeBackend{forbidAll: true}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	app := newTestApp(srv.URL)
	resp, err := app.Test(authedRequest(http.MethodGet, "/dashboard", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie, "token cookie must be cleared")
	assert.Empty(t, cookie.Value)
}

func TestForbiddenOnMutationAlsoFallsBack(t *testing.T) {
	backend := &fakeBackend{forbidAll: true}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	app := newTestApp(srv.URL)
	resp, err := app.Test(authedRequest(http.MethodPost, "/students", url.Values{
		"student_id": {"S1"}, "name": {"A"}, "age": {"20"},
	}))
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}

func TestBackendUnreachableShowsNotice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	app := newTestApp(srv.URL)
	resp, err := app.Test(authedRequest(http.MethodGet, "/dashboard", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, page(t, resp), "Cannot load students")
}

func TestSearchBlankPrompts(t *testing.T) {
	backend := &fakeBackend{students: sampleStudents}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	app := newTestApp(srv.URL)
	resp, err := app.Test(authedRequest(http.MethodGet, "/dashboard?search_id=++", nil))
	require.NoError(t, err)

	body := page(t, resp)
	assert.Contains(t, body, "Enter Student ID")
	assert.Contains(t, body, "Alice", "full list stays visible")
}

func TestSearchMissLeavesListUnchanged(t *testing.T) {
	backend := &fakeBackend{students: sampleStudents, missSearch: true}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	app := newTestApp(srv.URL)
	resp, err := app.Test(authedRequest(http.MethodGet, "/dashboard?search_id=S9", nil))
	require.NoError(t, err)

	body := page(t, resp)
	assert.Contains(t, body, "Student not found")
	assert.Contains(t, body, "Alice")
	assert.Contains(t, body, "Bob")
}

func TestSearchHitSupersedesList(t *testing.T) {
	backend := &fakeBackend{students: sampleStudents}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	app := newTestApp(srv.URL)
	resp, err := app.Test(authedRequest(http.MethodGet, "/dashboard?search_id=S1", nil))
	require.NoError(t, err)

	body := page(t, resp)
	assert.Contains(t, body, "Alice")
	assert.NotContains(t, body, "Bob", "search result supersedes the full listing")

	// a plain reload restores the complete list
	resp, err = app.Test(authedRequest(http.MethodGet, "/dashboard", nil))
	require.NoError(t, err)
	body = page(t, resp)
	assert.Contains(t, body, "Alice")
	assert.Contains(t, body, "Bob")
}

func TestAddFormOpensEmpty(t *testing.T) {
	backend := &fakeBackend{students: sampleStudents}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	app := newTestApp(srv.URL)
	resp, err := app.Test(authedRequest(http.MethodGet, "/dashboard?form=add", nil))
	require.NoError(t, err)

	body := page(t, resp)
	assert.Contains(t, body, `action="/students"`)
	assert.Contains(t, body, ">Save<")
	assert.NotContains(t, body, "disabled")
}

func TestEditFormPrefillsFromRow(t *testing.T) {
	backend := &fakeBackend{students: sampleStudents}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	app := newTestApp(srv.URL)
	resp, err := app.Test(authedRequest(http.MethodGet, "/dashboard?form=edit&id=S2", nil))
	require.NoError(t, err)

	body := page(t, resp)
	assert.Contains(t, body, `action="/students/S2"`)
	assert.Contains(t, body, `value="Bob"`)
	assert.Contains(t, body, `value="22"`)
	// the key field cannot be edited
	assert.Contains(t, body, `value="S2" disabled`)
	assert.Contains(t, body, ">Update<")
}

func TestAddStudentSendsIntegerAgeAndReloads(t *testing.T) {
	backend := &fakeBackend{students: sampleStudents}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	app := newTestApp(srv.URL)
	resp, err := app.Test(authedRequest(http.MethodPost, "/students", url.Values{
		"student_id": {"S3"}, "name": {"Cara"}, "age": {"20"},
		"email": {"cara@x.com"}, "department": {"ME"}, "gender": {"F"},
	}))
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

	require.Equal(t, http.MethodPost, backend.lastMethod)
	var sent models.Student
	require.NoError(t, json.Unmarshal(backend.lastBody, &sent))
	assert.Equal(t, 20, sent.Age, "age travels as an integer")
	assert.Equal(t, "S3", sent.StudentID)

	// following the redirect performs exactly one fresh list fetch
	require.Equal(t, 0, backend.listCalls)
	_, err = app.Test(authedRequest(http.MethodGet, "/dashboard", nil))
	require.NoError(t, err)
	assert.Equal(t, 1, backend.listCalls)
}

func TestAddFailureKeepsFormOpen(t *testing.T) {
	backend := &fakeBackend{students: sampleStudents, failStatus: 400, failDetail: "Student ID already exists"}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	app := newTestApp(srv.URL)
	resp, err := app.Test(authedRequest(http.MethodPost, "/students", url.Values{
		"student_id": {"S1"}, "name": {"Dupe"}, "age": {"21"},
	}))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := page(t, resp)
	assert.Contains(t, body, "Student ID already exists")
	assert.Contains(t, body, `value="Dupe"`, "submitted values stay in the open form")
	assert.Contains(t, body, `value="21"`)
	assert.Contains(t, body, ">Save<")
}

func TestUpdateTargetsPathID(t *testing.T) {
	backend := &fakeBackend{students: sampleStudents}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	app := newTestApp(srv.URL)
	// the disabled student_id input is not submitted by the browser; the
	// update is keyed by the path alone
	resp, err := app.Test(authedRequest(http.MethodPost, "/students/S2", url.Values{
		"name": {"Bobby"}, "age": {"23"}, "email": {"bob@x.com"},
		"department": {"EE"}, "gender": {"M"},
	}))
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, http.MethodPut, backend.lastMethod)
	assert.Equal(t, "/students/S2", backend.lastPath)

	var sent models.Student
	require.NoError(t, json.Unmarshal(backend.lastBody, &sent))
	assert.Equal(t, "S2", sent.StudentID, "body carries the original id")
	assert.Equal(t, 23, sent.Age)
}

func TestUpdateFailureStaysInEditMode(t *testing.T) {
	backend := &fakeBackend{students: sampleStudents, failStatus: 400, failDetail: "Update failed upstream"}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	app := newTestApp(srv.URL)
	resp, err := app.Test(authedRequest(http.MethodPost, "/students/S2", url.Values{
		"name": {"Bobby"}, "age": {"23"},
	}))
	require.NoError(t, err)

	body := page(t, resp)
	assert.Contains(t, body, "Update failed upstream")
	assert.Contains(t, body, ">Update<")
	assert.Contains(t, body, `value="S2" disabled`)
}

func TestDeleteAlwaysReloads(t *testing.T) {
	backend := &fakeBackend{students: sampleStudents, failStatus: 500, failDetail: "boom"}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	app := newTestApp(srv.URL)
	resp, err := app.Test(authedRequest(http.MethodPost, "/students/S1/delete", nil))
	require.NoError(t, err)

	// delete failures are swallowed: redirect (and thus reload) regardless
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
	assert.Equal(t, 1, backend.deleteCalls)
}

func TestLogoutClearsSessionWithoutBackendCall(t *testing.T) {
	backend := &fakeBackend{students: sampleStudents}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	app := newTestApp(srv.URL)
	resp, err := app.Test(authedRequest(http.MethodPost, "/logout", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.Empty(t, backend.lastMethod, "logout issues no backend request")

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}

func TestDashboardRequiresToken(t *testing.T) {
	backend := &fakeBackend{students: sampleStudents}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	app := newTestApp(srv.URL)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.Equal(t, 0, backend.listCalls)
}

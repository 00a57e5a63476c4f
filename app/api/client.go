package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shakthii1407/student-app/app/models"
)

// ErrBackendUnreachable reports a transport-level failure: the backend could
// not be reached at all, as opposed to the backend answering with an error.
var ErrBackendUnreachable = errors.New("backend not reachable")

// APIError is a failure the backend reported with a non-2xx status. Detail
// carries the backend's {"detail": ...} message and may be empty.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Detail)
}

// IsForbidden reports whether err is a 403 from the backend, which the
// dashboard treats as an expired session.
func IsForbidden(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusForbidden
}

// Client talks to the student backend REST API. Every student operation
// attaches the caller's session token as a bearer credential.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Signup creates a new account. Success carries no payload the caller needs.
func (c *Client) Signup(name, email, password string) error {
	return c.do(http.MethodPost, "/signup", "", signupRequest{Name: name, Email: email, Password: password}, nil)
}

// Login exchanges credentials for an access token.
func (c *Client) Login(email, password string) (string, error) {
	var resp loginResponse
	if err := c.do(http.MethodPost, "/login", "", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// ListStudents fetches the full student list.
func (c *Client) ListStudents(token string) ([]models.Student, error) {
	var students []models.Student
	if err := c.do(http.MethodGet, "/students", token, nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// GetStudent fetches a single student by id.
func (c *Client) GetStudent(token, id string) (*models.Student, error) {
	var student models.Student
	if err := c.do(http.MethodGet, "/students/"+id, token, nil, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// AddStudent creates a student record.
func (c *Client) AddStudent(token string, s models.Student) error {
	return c.do(http.MethodPost, "/students", token, s, nil)
}

// UpdateStudent replaces the student stored under id. The id in the path is
// the lookup key; s.StudentID travels in the body unchanged.
func (c *Client) UpdateStudent(token, id string, s models.Student) error {
	return c.do(http.MethodPut, "/students/"+id, token, s, nil)
}

// DeleteStudent removes the student stored under id.
func (c *Client) DeleteStudent(token, id string) error {
	return c.do(http.MethodDelete, "/students/"+id, token, nil, nil)
}

// do issues one request and decodes the response. A transport error maps to
// ErrBackendUnreachable; a non-2xx status maps to *APIError with the backend's
// detail message when one was provided.
func (c *Client) do(method, path, token string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return ErrBackendUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var detail struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&detail)
		return &APIError{Status: resp.StatusCode, Detail: detail.Detail}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

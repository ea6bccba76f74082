package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// stubMailer records the last submission and returns a preset error.
type stubMailer struct {
	sent []Submission
	err  error
}

func (m *stubMailer) Send(_ context.Context, sub Submission) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sub)
	return nil
}

func newTestServer(m Mailer) *Server {
	logger := log.New(io.Discard)
	return NewServer(logger, &Validator{}, m, "example.com")
}

func postContact(t *testing.T, s *Server, contentType, body string) (*httptest.ResponseRecorder, contactResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	var resp contactResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return rec, resp
}

func TestContactDeliversValidSubmission(t *testing.T) {
	mailer := &stubMailer{}
	s := newTestServer(mailer)

	rec, resp := postContact(t, s, "application/json",
		`{"name":"Ada","email":"Ada@Example.com","message":"Hello there"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !resp.Success {
		t.Errorf("success = false, message = %q", resp.Message)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("mailer received %d submissions, want 1", len(mailer.sent))
	}
	sub := mailer.sent[0]
	if sub.Email != "ada@example.com" {
		t.Errorf("email not normalized: %q", sub.Email)
	}
	if sub.Timestamp.IsZero() {
		t.Errorf("submission not timestamped")
	}
}

func TestContactRejectsInvalidFields(t *testing.T) {
	mailer := &stubMailer{}
	s := newTestServer(mailer)

	rec, resp := postContact(t, s, "application/json",
		`{"name":"","email":"bad","message":""}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp.Success {
		t.Errorf("success = true for invalid submission")
	}
	// All field errors come back joined in one message.
	if !strings.Contains(resp.Message, "Name is required") ||
		!strings.Contains(resp.Message, "Invalid email format") ||
		!strings.Contains(resp.Message, "Message is required") ||
		!strings.Contains(resp.Message, " | ") {
		t.Errorf("joined error message = %q", resp.Message)
	}
	if len(mailer.sent) != 0 {
		t.Errorf("mailer must not run for invalid submissions")
	}
}

func TestContactRejectsNonJSON(t *testing.T) {
	s := newTestServer(&stubMailer{})

	rec, resp := postContact(t, s, "text/plain", "name=Ada")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp.Message != msgInvalidFormat {
		t.Errorf("message = %q, want %q", resp.Message, msgInvalidFormat)
	}

	rec, _ = postContact(t, s, "application/json", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body: status = %d, want 400", rec.Code)
	}
}

func TestContactRejectsWrongMethod(t *testing.T) {
	s := newTestServer(&stubMailer{})

	req := httptest.NewRequest(http.MethodGet, "/api/contact", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestContactReportsDeliveryFailure(t *testing.T) {
	mailer := &stubMailer{err: errors.New("smtp: connection refused")}
	s := newTestServer(mailer)

	rec, resp := postContact(t, s, "application/json",
		`{"name":"Ada","email":"ada@example.com","message":"Hello"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if resp.Success || resp.Message != msgSendFailed {
		t.Errorf("response = %+v, want delivery failure message", resp)
	}
}

func TestIndexServesPageWithSSHHost(t *testing.T) {
	s := newTestServer(&stubMailer{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "ssh starfield@example.com") {
		t.Errorf("page does not advertise the configured SSH host")
	}
	if strings.Contains(body, "{{.SSHHost}}") {
		t.Errorf("placeholder left unsubstituted")
	}
}

func TestUnknownPathIs404(t *testing.T) {
	s := newTestServer(&stubMailer{})

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

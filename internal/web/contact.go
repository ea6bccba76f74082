package web

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type contactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

const (
	msgInvalidFormat = "Invalid request format."
	msgSent          = "Thank you for reaching out! Your message has been sent successfully. I will get back to you soon!"
	msgSendFailed    = "Failed to send email. Please try again later."
)

// handleContact accepts a JSON contact submission, validates it, and mails
// it to the site owner. Validation failures and delivery failures both come
// back as {success, message} with an appropriate status; nothing here is
// fatal to the page.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, contactResponse{false, msgInvalidFormat})
		return
	}
	if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		writeJSON(w, http.StatusBadRequest, contactResponse{false, msgInvalidFormat})
		return
	}

	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, contactResponse{false, msgInvalidFormat})
		return
	}

	if errs := s.validator.Validate(r.Context(), req.Name, req.Email, req.Message); len(errs) > 0 {
		s.logger.Info("contact submission rejected", "errors", strings.Join(errs, "; "))
		writeJSON(w, http.StatusBadRequest, contactResponse{false, strings.Join(errs, " | ")})
		return
	}

	sub := Submission{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Message:   strings.TrimSpace(req.Message),
		Timestamp: time.Now(),
		RemoteIP:  remoteIP(r),
	}

	if err := s.mailer.Send(r.Context(), sub); err != nil {
		s.logger.Error("contact mail delivery failed", "err", err, "from", sub.Email)
		writeJSON(w, http.StatusInternalServerError, contactResponse{false, msgSendFailed})
		return
	}

	s.logger.Info("contact submission delivered", "from", sub.Email)
	writeJSON(w, http.StatusOK, contactResponse{true, msgSent})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

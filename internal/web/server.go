package web

import (
	_ "embed"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
)

//go:embed index.html
var indexPage string

// Server is the portfolio site: the landing page plus the contact API.
type Server struct {
	mux       *http.ServeMux
	logger    *log.Logger
	validator *Validator
	mailer    Mailer
	page      []byte
}

// NewServer wires the routes. sshHost is advertised on the landing page as
// the address of the SSH starfield.
func NewServer(logger *log.Logger, validator *Validator, mailer Mailer, sshHost string) *Server {
	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		validator: validator,
		mailer:    mailer,
		page:      []byte(strings.ReplaceAll(indexPage, "{{.SSHHost}}", sshHost)),
	}
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/api/contact", s.handleContact)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(s.page)
}

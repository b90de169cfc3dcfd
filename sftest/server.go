// Package sftest provides a fake Site Factory API for tests. Every backup endpoint echoes
// the request it received back as JSON.
package sftest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/julienschmidt/httprouter"
)

// Echo is the response body of every endpoint.
type Echo struct {
	URI    string `json:"uri"`
	Body   string `json:"body"`
	Method string `json:"method"`
}

type failure struct {
	code    int
	message string
}

type Server struct {
	*httptest.Server
	user     string
	apiKey   string
	mu       sync.Mutex
	requests []Echo
	failure  *failure
}

func NewServer(user, apiKey string) *Server {
	s := &Server{user: user, apiKey: apiKey}
	router := httprouter.New()
	setupRoutes(router, s)
	s.Server = httptest.NewServer(router)
	return s
}

func setupRoutes(router *httprouter.Router, s *Server) {
	router.GET("/api/v1/sites/:nid/backups", s.BasicAuth(s.echo))
	router.GET("/api/v1/sites/:nid/backups/:bid/url", s.BasicAuth(s.echo))
	router.DELETE("/api/v1/sites/:nid/backups/:bid", s.BasicAuth(s.echo))
	router.POST("/api/v1/sites/:nid/backup", s.BasicAuth(s.echo))
	router.GET("/api/v1/backup-expiration/", s.BasicAuth(s.echo))
	router.PUT("/api/v1/backup-expiration/", s.BasicAuth(s.echo))
}

// FailWith makes every following request fail with the given status and message.
func (s *Server) FailWith(code int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = &failure{code: code, message: message}
}

// Requests returns the requests received so far, oldest first.
func (s *Server) Requests() []Echo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Echo(nil), s.requests...)
}

func (s *Server) BasicAuth(h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		user, password, hasAuth := r.BasicAuth()
		if hasAuth && user == s.user && password == s.apiKey {
			h(w, r, ps)
			return
		}
		writeJSON(w, http.StatusForbidden, map[string]string{"message": "Access denied"})
	}
}

func (s *Server) echo(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	req := Echo{
		URI:    "http://" + r.Host + r.URL.RequestURI(),
		Body:   string(body),
		Method: strings.ToLower(r.Method),
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	f := s.failure
	s.mu.Unlock()

	if f != nil {
		writeJSON(w, f.code, map[string]string{"message": f.message})
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

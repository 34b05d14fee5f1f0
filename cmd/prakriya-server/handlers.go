package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rs/cors"

	"github.com/drdhaval2785/prakriya/pkg/prakriya"
	"github.com/drdhaval2785/prakriya/pkg/translit"
)

type errorResponse struct {
	Error string `json:"error"`
}

type formsResponse struct {
	Form   string `json:"form"`
	Field  string `json:"field,omitempty"`
	Result any    `json:"result"`
}

type generateResponse struct {
	Root  string              `json:"root"`
	Forms map[string][]string `json:"forms"`
}

type server struct {
	base *prakriya.Prakriya
	log  *slog.Logger
}

func newHandler(p *prakriya.Prakriya, origins []string, logger *slog.Logger) http.Handler {
	s := &server{base: p, log: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/forms", s.handleForms)
	mux.HandleFunc("GET /api/generate", s.handleGenerate)
	mux.HandleFunc("GET /api/tree", s.handleTree)
	mux.HandleFunc("GET /api/info", s.handleInfo)
	mux.HandleFunc("GET /api/schemes", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, translit.Names())
	})
	mux.HandleFunc("GET /api/fields", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, prakriya.Fields())
	})

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	})
	return c.Handler(mux)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		slog.Error("encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps a query error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, prakriya.ErrInvalidScript),
		errors.Is(err, prakriya.ErrUnknownField),
		errors.Is(err, prakriya.ErrInvalidTense),
		errors.Is(err, prakriya.ErrInvalidPerson),
		errors.Is(err, prakriya.ErrInvalidVachana),
		errors.Is(err, prakriya.ErrInvalidSuffix):
		return http.StatusBadRequest
	case errors.Is(err, prakriya.ErrUnknownForm),
		errors.Is(err, prakriya.ErrUnknownVerb),
		errors.Is(err, prakriya.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, prakriya.ErrDatasetUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeError(w, status, err.Error())
}

// session derives a per-request session from the in/out query parameters.
func (s *server) session(w http.ResponseWriter, r *http.Request) (*prakriya.Prakriya, bool) {
	q := r.URL.Query()
	p, err := s.base.WithSchemes(q.Get("in"), q.Get("out"))
	if err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	return p, true
}

func (s *server) handleForms(w http.ResponseWriter, r *http.Request) {
	form := r.URL.Query().Get("form")
	if form == "" {
		writeError(w, http.StatusBadRequest, "missing 'form' query parameter")
		return
	}
	p, ok := s.session(w, r)
	if !ok {
		return
	}
	field := r.URL.Query().Get("field")
	res, err := p.LookupField(r.Context(), form, field)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, formsResponse{Form: form, Field: field, Result: res})
}

func (s *server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	root := q.Get("root")
	if root == "" {
		writeError(w, http.StatusBadRequest, "missing 'root' query parameter")
		return
	}
	p, ok := s.session(w, r)
	if !ok {
		return
	}
	forms, err := p.Generate(r.Context(), prakriya.GenerateQuery{
		Root:    root,
		Lakara:  q.Get("lakara"),
		Purusha: q.Get("purusha"),
		Vachana: q.Get("vachana"),
		Suffix:  q.Get("suffix"),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, generateResponse{Root: root, Forms: forms})
}

func (s *server) handleTree(w http.ResponseWriter, r *http.Request) {
	root := r.URL.Query().Get("root")
	if root == "" {
		writeError(w, http.StatusBadRequest, "missing 'root' query parameter")
		return
	}
	p, ok := s.session(w, r)
	if !ok {
		return
	}
	tree, err := p.FormTree(r.Context(), root)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

func (s *server) handleInfo(w http.ResponseWriter, r *http.Request) {
	root := r.URL.Query().Get("root")
	if root == "" {
		writeError(w, http.StatusBadRequest, "missing 'root' query parameter")
		return
	}
	p, ok := s.session(w, r)
	if !ok {
		return
	}
	info, err := p.RootInfo(r.Context(), root)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}
